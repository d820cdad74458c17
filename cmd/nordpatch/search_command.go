package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nordpatch/internal/library"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search indexed patches by name",
		Long: `Search matches the query against patch names and file names. Matching
is case and accent insensitive and results are ordered by relevance,
so the closest name comes first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			query := strings.Join(args, " ")

			var entries []*library.Entry
			err := ctx.withStore(func(store *library.Store) error {
				var searchErr error
				entries, searchErr = store.Search(cmd.Context(), query)
				return searchErr
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, buildEntryJSON(entries))
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No patches match %q\n", query)
				return nil
			}
			fmt.Fprintln(out, renderTable(entryListHeaders, buildEntryRows(entries), entryListAligns))
			fmt.Fprintln(out, countLabel(len(entries), "match", "matches"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit matches as JSON")
	return cmd
}
