package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newTodayCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's suggested activity",
		Long:  "Show the activity suggested for today. The first call of the day fetches the candidate list; later calls reuse the saved choice.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := resolveSuggestion(cmd, app, asJSON)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), newSuggestionOutput(result))
			}
			return writeSuggestion(cmd, result)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// resolveSuggestion resolves today's suggestion, behind a spinner unless
// quiet is set.
func resolveSuggestion(cmd *cobra.Command, app *app, quiet bool) (domain.SuggestionResult, error) {
	var result domain.SuggestionResult
	resolve := func(ctx context.Context) error {
		var err error
		result, err = app.resolver.Resolve(ctx)
		return err
	}

	var err error
	if quiet {
		err = resolve(cmd.Context())
	} else {
		err = runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching today's activity...", resolve)
	}
	if err != nil {
		return domain.SuggestionResult{}, fmt.Errorf("resolve suggestion: %w", err)
	}
	return result, nil
}

func writeSuggestion(cmd *cobra.Command, result domain.SuggestionResult) error {
	out := cmd.OutOrStdout()
	if !result.Available() {
		_, err := fmt.Fprintln(out, result.Text)
		return err
	}

	if _, err := fmt.Fprintf(out, "Today (%s): %s\n", result.Day, result.Text); err != nil {
		return err
	}
	if result.Degraded() {
		_, err := fmt.Fprintln(out, "offline: showing a suggestion from the last fetched list")
		return err
	}
	return nil
}
