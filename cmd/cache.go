package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local suggestion cache",
	}

	cmd.AddCommand(newCacheClearCmd(app))
	return cmd
}

func newCacheClearCmd(app *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget today's suggestion so the next call picks again",
		Long:  "Forget today's saved suggestion. The last fetched candidate list is kept as an offline fallback unless --all is given, which removes the whole cache file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all {
				if err := app.cacheFile.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("remove cache file: %w", err)
				}
				app.cache.Purge()
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", app.cacheFile.Path())
				return err
			}

			if err := app.resolver.ClearSelection(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Cleared today's suggestion")
			return err
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Also remove the cached candidate list and reminder marks")
	return cmd
}
