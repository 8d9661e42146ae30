package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newDoneCmd(app *app) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "done",
		Short: "Mark today's activity as completed",
		Long:  "Record a completion for today's suggested activity, or for the description given with --text.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sess, err := app.openSession(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			var completed domain.CompletedActivity
			if cmd.Flags().Changed("text") {
				completed, err = sess.recorder.Confirm(ctx, text)
			} else {
				var suggestion domain.SuggestionResult
				suggestion, err = resolveSuggestion(cmd, app, true)
				if err != nil {
					return err
				}
				completed, err = sess.recorder.ConfirmSuggestion(ctx, suggestion)
			}
			if err != nil {
				if errors.Is(err, domain.ErrNoSuggestion) {
					return fmt.Errorf("%w: pass --text to record another activity", err)
				}
				return fmt.Errorf("record completion: %w", err)
			}

			tier, err := sess.classifier.TierFromLog(ctx)
			if err != nil {
				return fmt.Errorf("compute engagement tier: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Completed: %s\nTier: %s\n", completed.Description, tier)
			return err
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Description of the completed activity")
	return cmd
}
