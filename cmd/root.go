package cmd

import (
	"github.com/bnema/daily-activity-cli/internal/ports"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd(nil).Execute()
}

func newRootCmd(clock ports.Clock) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "da",
		Short:         "Daily Activity (da): one suggested activity per day",
		Long:          "da picks one activity a day from a remote list, records what you complete, tracks your engagement tier and reminds you at set hours when today's activity is still open.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp(clock)
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newTodayCmd(app),
		newDoneCmd(app),
		newHistoryCmd(app),
		newTierCmd(app),
		newStatusCmd(app),
		newTickCmd(app),
		newDaemonCmd(app),
		newCacheCmd(app),
	)

	return rootCmd
}
