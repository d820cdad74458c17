package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"nordpatch/internal/library"
)

type healthReport struct {
	DBPath           string   `json:"db_path"`
	DatabaseExists   bool     `json:"database_exists"`
	DatabaseReadable bool     `json:"database_readable"`
	TableExists      bool     `json:"table_exists"`
	MissingColumns   []string `json:"missing_columns,omitempty"`
	IntegrityCheck   bool     `json:"integrity_check"`
	TotalEntries     int      `json:"total_entries"`
	Error            string   `json:"error,omitempty"`
}

func newHealthCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the patch index database",
		Long: `Health opens the index database and verifies its schema and
integrity. Use it when scans fail or listings look wrong.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}

			var health library.DatabaseHealth
			err := ctx.withStore(func(store *library.Store) error {
				var checkErr error
				health, checkErr = store.CheckHealth(cmd.Context())
				return checkErr
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, healthReport{
					DBPath:           health.DBPath,
					DatabaseExists:   health.DatabaseExists,
					DatabaseReadable: health.DatabaseReadable,
					TableExists:      health.TableExists,
					MissingColumns:   health.MissingColumns,
					IntegrityCheck:   health.IntegrityCheck,
					TotalEntries:     health.TotalEntries,
					Error:            health.Error,
				})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Patch index", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Database",
				boolKind(health.DatabaseExists && health.DatabaseReadable), health.DBPath, colorize))
			fmt.Fprintln(out, renderStatusLine("Table", boolKind(health.TableExists), "patches", colorize))
			columnsKind := statusOK
			columnsMsg := strconv.Itoa(len(health.ColumnsPresent)) + " present"
			if len(health.MissingColumns) > 0 {
				columnsKind = statusError
				columnsMsg = "missing " + strings.Join(health.MissingColumns, ", ")
			}
			fmt.Fprintln(out, renderStatusLine("Columns", columnsKind, columnsMsg, colorize))
			fmt.Fprintln(out, renderStatusLine("Integrity", boolKind(health.IntegrityCheck), "", colorize))
			fmt.Fprintln(out, renderFieldLine("Entries", strconv.Itoa(health.TotalEntries)))
			if health.Error != "" {
				fmt.Fprintln(out, renderStatusLine("Detail", statusError, health.Error, colorize))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the health report as JSON")
	return cmd
}

func boolKind(ok bool) statusKind {
	if ok {
		return statusOK
	}
	return statusError
}
