package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/books/internal/activity"
	"github.com/cleared-dev/books/internal/render"
)

func newLogCommand(g *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd, g)
			if err != nil {
				return err
			}
			defer w.Close()

			entries, err := activity.Read(w.Dir)
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}
			render.Activity(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show the last n entries (0 for all)")
	return cmd
}
