package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/books/internal/buildinfo"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	dir   string
	debug bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "books",
		Short: "Double-entry bookkeeping for a small Irish limited company",
		Long: `books records financial events as balanced journal transactions and
derives the Profit & Loss, Balance Sheet and VAT return on demand.

Example:
  books init --name "Emerald Tech Solutions Ltd"
  books post invoice --amount 1230 --vat vat_23 --description "Web development"
  books report vat`,
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel := slog.LevelInfo
			if g.debug {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: logLevel,
			}))
			slog.SetDefault(logger)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.dir, "dir", "C", ".", "books directory")
	rootCmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newInitCommand(g),
		newPostCommand(g),
		newJournalCommand(g),
		newAccountsCommand(g),
		newBalanceCommand(g),
		newReportCommand(g),
		newImportCommand(g),
		newLogCommand(g),
		newVersionCommand(),
	)

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "books", buildinfo.String())
		},
	}
}
