package cmd

import (
	"fmt"

	"github.com/bnema/daily-activity-cli/internal/application"
	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newTierCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tier",
		Short: "Show the current engagement tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := app.openSession(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			history, err := sess.log.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list completions: %w", err)
			}
			summary := application.SummarizeTier(history)
			app.metrics.SetTier(summary.Tier)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			return writeTierSummary(cmd, summary)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func writeTierSummary(cmd *cobra.Command, summary application.TierSummary) error {
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Tier: %s\nCompletions: %d\nDistinct days: %d\nStreak: %d\n",
		summary.Tier, summary.Completions, summary.DistinctDays, summary.Streak); err != nil {
		return err
	}

	next, target, byStreak, ok := domain.NextTierTarget(summary.Tier)
	if !ok {
		_, err := fmt.Fprintln(out, "Highest tier reached")
		return err
	}

	if byStreak {
		_, err := fmt.Fprintf(out, "Next: %s at a %d day streak\n", next, target)
		return err
	}
	_, err := fmt.Fprintf(out, "Next: %s at %d completions\n", next, target)
	return err
}
