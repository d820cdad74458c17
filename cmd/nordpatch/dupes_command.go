package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nordpatch/internal/library"
)

type duplicateGroupJSON struct {
	Fingerprint string      `json:"fingerprint"`
	Entries     []entryJSON `json:"entries"`
}

func newDupesCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "dupes",
		Short: "List groups of byte-identical patches",
		Long: `Dupes groups indexed files by content fingerprint and reports every
fingerprint stored more than once. A raw patch and a zipped copy of
the same patch count as duplicates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}

			var groups []library.DuplicateGroup
			err := ctx.withStore(func(store *library.Store) error {
				var dupErr error
				groups, dupErr = store.Duplicates(cmd.Context())
				return dupErr
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				out := make([]duplicateGroupJSON, 0, len(groups))
				for _, group := range groups {
					out = append(out, duplicateGroupJSON{
						Fingerprint: group.Fingerprint,
						Entries:     buildEntryJSON(group.Entries),
					})
				}
				return writeJSON(cmd, out)
			}

			out := cmd.OutOrStdout()
			if len(groups) == 0 {
				fmt.Fprintln(out, "No duplicate patches found.")
				return nil
			}
			for i, group := range groups {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, renderFieldLine("Fingerprint", shortDigest(group.Fingerprint)))
				rows := make([][]string, 0, len(group.Entries))
				for _, e := range group.Entries {
					name := e.PatchName
					if !e.Decoded() {
						name = "(undecodable)"
					} else if name == "" {
						name = "(unnamed)"
					}
					rows = append(rows, []string{formatSlot(e.Bank, e.Location), name, e.Path})
				}
				fmt.Fprintln(out, renderTable([]string{"Slot", "Name", "Path"}, rows, nil))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, countLabel(len(groups), "duplicated patch", "duplicated patches"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit duplicate groups as JSON")
	return cmd
}

func shortDigest(fingerprint string) string {
	if len(fingerprint) > 12 {
		return fingerprint[:12]
	}
	return fingerprint
}
