package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"nordpatch/internal/config"
	"nordpatch/internal/library"
	"nordpatch/internal/logging"
)

type scanReport struct {
	ScanID        string `json:"scan_id"`
	Root          string `json:"root"`
	Seen          int    `json:"seen"`
	Decoded       int    `json:"decoded"`
	Failed        int    `json:"failed"`
	Removed       int    `json:"removed"`
	Duration      string `json:"duration"`
	LibraryTotal  int    `json:"library_total"`
	LibraryFailed int    `json:"library_failed"`
	LibraryLegacy int    `json:"library_legacy"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Walk a patch directory and refresh the library index",
		Long: `Scan walks the configured library directory (or the one given as an
argument), decodes every patch file it finds, and refreshes the index.
Entries for files that no longer exist under the scanned root are
pruned afterwards.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			root := cfg.Paths.LibraryDir
			if len(args) == 1 {
				root, err = config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve %s: %w", args[0], err)
				}
			}

			var result *library.Result
			var stats library.Stats
			err = ctx.withStore(func(store *library.Store) error {
				var scanErr error
				result, scanErr = library.Scan(cmd.Context(), cfg, store, logger, root)
				if scanErr != nil {
					return scanErr
				}
				stats, scanErr = store.Stats(cmd.Context())
				return scanErr
			})
			if err != nil {
				return err
			}

			logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
				Dir:     cfg.Paths.LogDir,
				Pattern: "nordpatch*.log",
				Exclude: []string{filepath.Join(cfg.Paths.LogDir, logging.LogFileName)},
			})

			if jsonOutput {
				return writeJSON(cmd, scanReport{
					ScanID:        result.ScanID,
					Root:          result.Root,
					Seen:          result.Seen,
					Decoded:       result.Decoded,
					Failed:        result.Failed,
					Removed:       result.Removed,
					Duration:      result.Duration.Round(time.Millisecond).String(),
					LibraryTotal:  stats.Total,
					LibraryFailed: stats.Failed,
					LibraryLegacy: stats.Legacy,
				})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Scan "+result.Root, colorize) {
				fmt.Fprintln(out, line)
			}
			kind := statusOK
			if result.Failed > 0 {
				kind = statusWarn
			}
			fmt.Fprintln(out, renderStatusLine("Result", kind,
				fmt.Sprintf("%d decoded, %d failed", result.Decoded, result.Failed), colorize))
			fmt.Fprintln(out, renderFieldLine("Scan ID", result.ScanID))
			fmt.Fprintln(out, renderFieldLine("Files seen", strconv.Itoa(result.Seen)))
			fmt.Fprintln(out, renderFieldLine("Removed", strconv.Itoa(result.Removed)))
			fmt.Fprintln(out, renderFieldLine("Duration", result.Duration.Round(time.Millisecond).String()))
			fmt.Fprintln(out, renderFieldLine("Library total", strconv.Itoa(stats.Total)))
			if stats.Legacy > 0 {
				fmt.Fprintln(out, renderFieldLine("Legacy headers", strconv.Itoa(stats.Legacy)))
			}
			if stats.Failed > 0 {
				fmt.Fprintln(out, renderStatusLine("Undecodable", statusWarn,
					strconv.Itoa(stats.Failed)+" in index", colorize))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the scan result as JSON")
	return cmd
}
