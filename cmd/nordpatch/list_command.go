package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nordpatch/internal/library"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		bank       int
		category   int
		pianoOn    bool
		organOn    bool
		synthOn    bool
		legacyOnly bool
		failedOnly bool
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed patches",
		Long: `List prints the indexed patches in slot order. Filters combine, so
"list --bank 2 --synth" shows only bank 2 patches with the synth
section switched on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			filter := library.Filter{
				PianoOn:    pianoOn,
				OrganOn:    organOn,
				SynthOn:    synthOn,
				LegacyOnly: legacyOnly,
				FailedOnly: failedOnly,
				Limit:      limit,
			}
			if cmd.Flags().Changed("bank") {
				filter.Bank = &bank
			}
			if cmd.Flags().Changed("category") {
				filter.Category = &category
			}

			var entries []*library.Entry
			err := ctx.withStore(func(store *library.Store) error {
				var listErr error
				entries, listErr = store.List(cmd.Context(), filter)
				return listErr
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, buildEntryJSON(entries))
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No patches in the index. Run \"nordpatch scan\" first.")
				return nil
			}
			fmt.Fprintln(out, renderTable(entryListHeaders, buildEntryRows(entries), entryListAligns))
			fmt.Fprintln(out, countLabel(len(entries), "patch", "patches"))
			return nil
		},
	}

	cmd.Flags().IntVar(&bank, "bank", 0, "only patches in this bank")
	cmd.Flags().IntVar(&category, "category", 0, "only patches with this category code")
	cmd.Flags().BoolVar(&pianoOn, "piano", false, "only patches with the piano section on")
	cmd.Flags().BoolVar(&organOn, "organ", false, "only patches with the organ section on")
	cmd.Flags().BoolVar(&synthOn, "synth", false, "only patches with the synth section on")
	cmd.Flags().BoolVar(&legacyOnly, "legacy", false, "only patches with the legacy header layout")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "only files that failed to decode")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of rows, 0 for all")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit entries as JSON")
	return cmd
}
