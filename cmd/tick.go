package cmd

import (
	"fmt"
	"time"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/spf13/cobra"
)

type tickOutput struct {
	At       time.Time `json:"at"`
	Hour     *int      `json:"hour,omitempty"`
	Decision string    `json:"decision"`
}

func newTickCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Run one reminder check",
		Long:  "Run one reminder check and exit. Meant for cron jobs and systemd timers; see `da daemon` for a long running scheduler.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := app.openSession(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			result := sess.engine.OnScheduledTick(cmd.Context())

			if asJSON {
				output := tickOutput{At: result.At, Decision: string(result.Decision)}
				if result.Decision != domain.DecisionOutsideWindow {
					hour := result.Hour
					output.Hour = &hour
				}
				return writeJSON(cmd.OutOrStdout(), output)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", result.At.Format("2006-01-02 15:04"), result.Decision)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
