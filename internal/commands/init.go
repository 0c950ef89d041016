package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/books/internal/render"
	"github.com/cleared-dev/books/internal/workspace"
)

func newInitCommand(g *globalFlags) *cobra.Command {
	var opts workspace.InitOptions

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new set of books",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := g.dir
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			w, err := workspace.Init(cmd.Context(), absDir, opts)
			if err != nil {
				return err
			}
			defer w.Close()

			render.Success(cmd.OutOrStdout(), "Initialized books for %s at %s", opts.Name, absDir)
			if opts.Demo {
				render.Muted(cmd.OutOrStdout(), "Seeded %d demo transactions", w.Store.Len())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "company name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&opts.EntityType, "entity-type", "ie_ltd", "entity type")
	cmd.Flags().StringVar(&opts.Backend, "backend", "", "storage backend: file, bolt or sqlite")
	cmd.Flags().StringVar(&opts.ChartPath, "chart", "", "chart of accounts CSV to use instead of the default")
	cmd.Flags().BoolVar(&opts.Demo, "demo", false, "seed demo transactions")

	return cmd
}
