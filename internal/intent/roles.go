package intent

// Roles maps each posting role to an account id in the chart.
type Roles struct {
	Receivable           string `yaml:"receivable"`
	Sales                string `yaml:"sales"`
	VatPayable           string `yaml:"vat_payable"`
	VatRecoverable       string `yaml:"vat_recoverable"`
	Bank                 string `yaml:"bank"`
	Payable              string `yaml:"payable"`
	DirectorLoan         string `yaml:"director_loan"`
	Wages                string `yaml:"wages"`
	EmployerPRSI         string `yaml:"employer_prsi"`
	PayrollLiabilities   string `yaml:"payroll_liabilities"`
	DefaultExpense       string `yaml:"default_expense"`
	DefaultDirectorSpend string `yaml:"default_director_spend"`
	FixedAssets          string `yaml:"fixed_assets"`
}

// DefaultRoles matches accounts.DefaultChart.
func DefaultRoles() Roles {
	return Roles{
		Receivable:           "acc_1100",
		Sales:                "acc_4000",
		VatPayable:           "acc_2100",
		VatRecoverable:       "acc_1300",
		Bank:                 "acc_1000",
		Payable:              "acc_2000",
		DirectorLoan:         "acc_3200",
		Wages:                "acc_6000",
		EmployerPRSI:         "acc_6010",
		PayrollLiabilities:   "acc_2200",
		DefaultExpense:       "acc_6700",
		DefaultDirectorSpend: "acc_6600",
		FixedAssets:          "acc_1500",
	}
}

// WithDefaults fills empty roles from d.
func (r Roles) WithDefaults(d Roles) Roles {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&r.Receivable, d.Receivable)
	fill(&r.Sales, d.Sales)
	fill(&r.VatPayable, d.VatPayable)
	fill(&r.VatRecoverable, d.VatRecoverable)
	fill(&r.Bank, d.Bank)
	fill(&r.Payable, d.Payable)
	fill(&r.DirectorLoan, d.DirectorLoan)
	fill(&r.Wages, d.Wages)
	fill(&r.EmployerPRSI, d.EmployerPRSI)
	fill(&r.PayrollLiabilities, d.PayrollLiabilities)
	fill(&r.DefaultExpense, d.DefaultExpense)
	fill(&r.DefaultDirectorSpend, d.DefaultDirectorSpend)
	fill(&r.FixedAssets, d.FixedAssets)
	return r
}
