package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"nordpatch/internal/config"
	"nordpatch/internal/fileutil"
	"nordpatch/internal/ns3"
	"nordpatch/internal/textutil"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <patch>",
		Short: "Decode a patch file and write it out as JSON",
		Long: `Export decodes a patch file and writes the full parameter tree as
indented JSON. By default the file lands in the configured export
directory under a name derived from the patch name; -o selects a
different destination and "-o -" streams to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[0], err)
			}
			prog, err := ns3.DecodeWith(path, decodeOptions(cfg))
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			if outputPath == "-" {
				return writeJSON(cmd, prog)
			}

			target, err := resolveExportPath(cfg, outputPath, prog)
			if err != nil {
				return err
			}
			payload, err := json.MarshalIndent(prog, "", "  ")
			if err != nil {
				return fmt.Errorf("encode %s: %w", prog.FileName, err)
			}
			payload = append(payload, '\n')
			if err := fileutil.EnsureDir(filepath.Dir(target)); err != nil {
				return err
			}
			if err := fileutil.WriteFileAtomic(target, payload, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", prog.FileName, target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file, directory, or - for stdout")
	return cmd
}

// resolveExportPath picks the JSON destination. An explicit file path wins,
// an existing directory gets the derived file name appended, and an empty
// flag falls back to the configured export directory.
func resolveExportPath(cfg *config.Config, outputPath string, prog *ns3.Program) (string, error) {
	if outputPath == "" {
		return filepath.Join(cfg.Paths.ExportDir, exportFileName(prog)), nil
	}
	expanded, err := config.ExpandPath(outputPath)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", outputPath, err)
	}
	if info, err := os.Stat(expanded); err == nil && info.IsDir() {
		return filepath.Join(expanded, exportFileName(prog)), nil
	}
	return expanded, nil
}

func exportFileName(prog *ns3.Program) string {
	name := textutil.SanitizeFileName(prog.Name)
	if name == "" {
		stem := strings.TrimSuffix(prog.FileName, filepath.Ext(prog.FileName))
		name = textutil.SanitizeToken(stem)
	}
	return name + ".json"
}
