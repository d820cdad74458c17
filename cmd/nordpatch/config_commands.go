package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"nordpatch/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the nordpatch configuration file",
	}
	cmd.AddCommand(newConfigInitCommand(ctx))
	cmd.AddCommand(newConfigValidateCommand(ctx))
	cmd.AddCommand(newConfigShowCommand(ctx))
	return cmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			"skipConfigLoad": "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(*ctx.configFlag)
			var err error
			if target == "" {
				target, err = config.DefaultConfigPath()
			} else {
				target, err = config.ExpandPath(target)
			}
			if err != nil {
				return err
			}
			if _, statErr := os.Stat(target); statErr == nil && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", target)
			} else if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
				return fmt.Errorf("check %s: %w", target, statErr)
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample config to %s\n", target)
			fmt.Fprintln(cmd.OutOrStdout(), "Edit the paths section, then run \"nordpatch scan\".")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Args:  cobra.NoArgs,
		// Config loading is deferred to RunE so a broken file is reported
		// as a status line instead of dying in the persistent pre-run.
		Annotations: map[string]string{
			"skipConfigLoad": "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			cfg, err := ctx.ensureConfig()
			if err != nil {
				fmt.Fprintln(out, renderStatusLine("Config", statusError, err.Error(), colorize))
				return err
			}
			source := ctx.configPath
			if !ctx.configExists {
				source = "built-in defaults (no config file)"
			}
			fmt.Fprintln(out, renderStatusLine("Config", statusOK, source, colorize))
			fmt.Fprintln(out, renderFieldLine("Library dir", cfg.Paths.LibraryDir))
			fmt.Fprintln(out, renderFieldLine("Cache dir", cfg.Paths.CacheDir))
			fmt.Fprintln(out, renderFieldLine("Log dir", cfg.Paths.LogDir))
			fmt.Fprintln(out, renderFieldLine("Export dir", cfg.Paths.ExportDir))
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"config_path":   ctx.configPath,
					"config_exists": ctx.configExists,
					"paths": map[string]string{
						"library_dir": cfg.Paths.LibraryDir,
						"cache_dir":   cfg.Paths.CacheDir,
						"log_dir":     cfg.Paths.LogDir,
						"export_dir":  cfg.Paths.ExportDir,
					},
					"decode": map[string]any{
						"allow_legacy_header": cfg.Decode.AllowLegacyHeader,
						"strict_length":       cfg.Decode.StrictLength,
					},
					"scan": map[string]any{
						"workers":         cfg.Scan.Workers,
						"follow_symlinks": cfg.Scan.FollowSymlinks,
					},
					"logging": map[string]any{
						"format":         cfg.Logging.Format,
						"level":          cfg.Logging.Level,
						"retention_days": cfg.Logging.RetentionDays,
					},
				})
			}

			out := cmd.OutOrStdout()
			source := ctx.configPath
			if !ctx.configExists {
				source = "built-in defaults (no config file)"
			}
			fmt.Fprintln(out, renderFieldLine("Config", source))
			fmt.Fprintln(out)
			rows := [][]string{
				{"paths.library_dir", cfg.Paths.LibraryDir},
				{"paths.cache_dir", cfg.Paths.CacheDir},
				{"paths.log_dir", cfg.Paths.LogDir},
				{"paths.export_dir", cfg.Paths.ExportDir},
				{"decode.allow_legacy_header", strconv.FormatBool(cfg.Decode.AllowLegacyHeader)},
				{"decode.strict_length", strconv.FormatBool(cfg.Decode.StrictLength)},
				{"scan.workers", strconv.Itoa(cfg.Scan.Workers)},
				{"scan.follow_symlinks", strconv.FormatBool(cfg.Scan.FollowSymlinks)},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
				{"logging.retention_days", strconv.Itoa(cfg.Logging.RetentionDays)},
			}
			fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the resolved configuration as JSON")
	return cmd
}
