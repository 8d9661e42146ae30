package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	var (
		asJSON bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List completed activities, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return errors.New("--limit must not be negative")
			}

			sess, err := app.openSession(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			history, err := sess.log.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list completions: %w", err)
			}
			if limit > 0 && len(history) > limit {
				history = history[:limit]
			}

			if asJSON {
				entries := make([]completionOutput, 0, len(history))
				for _, activity := range history {
					entries = append(entries, newCompletionOutput(activity))
				}
				return writeJSON(cmd.OutOrStdout(), entries)
			}

			out := cmd.OutOrStdout()
			if len(history) == 0 {
				_, err := fmt.Fprintln(out, "No completed activities yet.")
				return err
			}
			for _, activity := range history {
				if _, err := fmt.Fprintf(out, "%s  %s\n", activity.Timestamp.Local().Format("2006-01-02 15:04"), activity.Description); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most N entries (0 shows all)")
	return cmd
}
