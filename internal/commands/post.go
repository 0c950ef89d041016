package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/books/internal/intent"
	"github.com/cleared-dev/books/internal/model"
	"github.com/cleared-dev/books/internal/render"
)

type postFlags struct {
	amount       string
	vatCode      string
	account      string
	bank         string
	date         string
	description  string
	reference    string
	netPay       string
	employerPRSI string
	paye         string
	usc          string
	employeePRSI string
	dryRun       bool
}

func newPostCommand(g *globalFlags) *cobra.Command {
	f := &postFlags{}

	kinds := make([]string, 0, len(intent.Kinds()))
	for _, k := range intent.Kinds() {
		kinds = append(kinds, string(k))
	}

	cmd := &cobra.Command{
		Use:   "post <kind>",
		Short: "Post a guided transaction",
		Long: `Post a guided transaction. The kind picks the posting template:

  ` + strings.Join(kinds, ", ") + `

Amounts are gross (VAT inclusive) for VAT-bearing kinds. For payroll,
--amount is gross pay.`,
		Example: `  books post invoice --amount 1230 --vat vat_23 --description "Web development"
  books post expense --amount 113.50 --vat vat_135 --account acc_6400 --description "ESB"
  books post payroll --amount 4800 --employer-prsi 550 --net-pay 3300 --description "March payroll"`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPost(cmd, g, f, args[0])
		},
	}

	cmd.Flags().StringVar(&f.amount, "amount", "", "amount; gross for VAT-bearing kinds (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&f.vatCode, "vat", "", "VAT code id, e.g. vat_23")
	cmd.Flags().StringVar(&f.account, "account", "", "target account id or code")
	cmd.Flags().StringVar(&f.bank, "bank", "", "bank account id or code (default the bank role)")
	cmd.Flags().StringVar(&f.date, "date", "", "transaction date YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "description (required)")
	_ = cmd.MarkFlagRequired("description")
	cmd.Flags().StringVar(&f.reference, "reference", "", "document reference (default next in sequence)")
	cmd.Flags().StringVar(&f.netPay, "net-pay", "", "payroll: net pay from the bank")
	cmd.Flags().StringVar(&f.employerPRSI, "employer-prsi", "", "payroll: employer PRSI")
	cmd.Flags().StringVar(&f.paye, "paye", "", "payroll: PAYE deducted")
	cmd.Flags().StringVar(&f.usc, "usc", "", "payroll: USC deducted")
	cmd.Flags().StringVar(&f.employeePRSI, "employee-prsi", "", "payroll: employee PRSI deducted")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "show the journal without posting")

	return cmd
}

func (f *postFlags) params() (intent.Params, error) {
	p := intent.Params{VatCodeID: f.vatCode}
	amounts := []struct {
		field string
		in    string
		out   *decimal.Decimal
	}{
		{"amount", f.amount, &p.Amount},
		{"net_pay", f.netPay, &p.NetPay},
		{"employer_prsi", f.employerPRSI, &p.EmployerPRSI},
		{"paye", f.paye, &p.PAYE},
		{"usc", f.usc, &p.USC},
		{"employee_prsi", f.employeePRSI, &p.EmployeePRSI},
	}
	for _, a := range amounts {
		d, err := parseAmount(a.field, a.in)
		if err != nil {
			return p, err
		}
		*a.out = d
	}
	return p, nil
}

func runPost(cmd *cobra.Command, g *globalFlags, f *postFlags, kindArg string) error {
	kind, err := intent.ParseKind(kindArg)
	if err != nil {
		return err
	}
	if kind.VatBearing() && f.vatCode == "" {
		return &model.ValidationError{Field: "vat_code", Reason: fmt.Sprintf("--vat is required for %s", kind)}
	}
	date, err := parseDate(f.date)
	if err != nil {
		return err
	}
	params, err := f.params()
	if err != nil {
		return err
	}

	w, err := openWorkspace(cmd, g)
	if err != nil {
		return err
	}
	defer w.Close()

	if f.account != "" {
		acct, err := resolveAccount(w.Store, f.account)
		if err != nil {
			return err
		}
		params.AccountID = acct.ID
	}

	in, err := intent.FromParams(kind, params)
	if err != nil {
		return err
	}

	ref := f.reference
	if ref == "" {
		if ref, err = w.NextReference(kind, date); err != nil {
			return err
		}
	}

	compiler := w.Compiler()
	if f.bank != "" {
		acct, err := resolveAccount(w.Store, f.bank)
		if err != nil {
			return err
		}
		compiler = compiler.WithBank(acct.ID)
	}

	tx, err := compiler.Compile(intent.Header{Date: date, Description: f.description, Reference: ref}, in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	render.Journal(out, tx, accountName(w.Store))

	if pr, ok := in.(intent.Payroll); ok && hasDeductions(pr) && !pr.Liability().Equal(pr.ExpectedLiability()) {
		render.Warning(out, "Payroll liabilities %s do not match PAYE + USC + PRSI %s",
			render.Money(pr.Liability()), render.Money(pr.ExpectedLiability()))
	}

	if f.dryRun {
		render.Muted(out, "Dry run: nothing posted")
		return nil
	}

	msg := fmt.Sprintf("%s: %s %s", kind, ref, tx.Description)
	hash, err := w.Post(cmd.Context(), "post", msg, tx)
	if err != nil {
		return err
	}
	slog.Debug("posted", "kind", kind, "reference", ref, "commit", hash)
	render.Success(out, "Posted %s %s", kind.Label(), ref)
	return nil
}

func hasDeductions(p intent.Payroll) bool {
	return !p.PAYE.IsZero() || !p.USC.IsZero() || !p.EmployeePRSI.IsZero()
}
