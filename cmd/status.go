package cmd

import (
	"context"
	"fmt"
	"time"

	statusadapter "github.com/bnema/daily-activity-cli/internal/adapters/render/status"
	schedule "github.com/bnema/daily-activity-cli/internal/adapters/schedule/cron"
	"github.com/bnema/daily-activity-cli/internal/application"
	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/spf13/cobra"
)

// maxScheduleScan bounds the search for the next activation that falls
// inside the notification window.
const maxScheduleScan = 10_000

func newStatusCmd(app *app) *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's activity, engagement tier and recent history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := app.openSession(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			var dashboard application.Dashboard
			build := func(ctx context.Context) error {
				var err error
				dashboard, err = application.BuildDashboard(ctx, app.resolver, sess.log, app.clock, recent)
				return err
			}
			if err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Loading status...", build); err != nil {
				return fmt.Errorf("build dashboard: %w", err)
			}

			scheduler, err := app.newScheduler()
			if err != nil {
				return err
			}

			now := app.clock.Now()
			rendered, err := app.statusRenderer(dashboard, statusadapter.RenderOptions{
				Now:          now,
				NextReminder: nextReminder(scheduler, domain.DefaultNotificationWindow(), now),
			})
			if err != nil {
				return fmt.Errorf("render status: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().IntVar(&recent, "recent", 5, "Number of recent completions to show")
	return cmd
}

// nextReminder returns the first scheduler activation after now that lands
// inside window, or the zero time when none is found.
func nextReminder(scheduler *schedule.Scheduler, window domain.NotificationWindow, now time.Time) time.Time {
	at := now
	for range maxScheduleScan {
		at = scheduler.Next(at)
		if at.IsZero() {
			return time.Time{}
		}
		if _, ok := window.Match(at); ok {
			return at
		}
	}
	return time.Time{}
}
