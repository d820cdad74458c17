package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"nordpatch/internal/config"
	"nordpatch/internal/ns3"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <patch>",
		Short: "Decode a patch file and display its settings",
		Long: `Show decodes a single .ns3f or .ns3fp patch file and prints the
program header plus every panel section that is switched on. Disabled
panels are reported as a single status line.`,
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
			if jsonOutput {
				return writeJSON(cmd, prog)
			}
			renderProgram(cmd.OutOrStdout(), prog)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the decoded program as JSON")
	return cmd
}

func renderProgram(out io.Writer, prog *ns3.Program) {
	colorize := shouldColorize(out)

	for _, line := range renderSectionHeader("Program", colorize) {
		fmt.Fprintln(out, line)
	}
	for _, row := range buildSummaryRows(prog) {
		fmt.Fprintln(out, renderFieldLine(row[0], row[1]))
	}
	fmt.Fprintln(out)

	renderPanelSection(out, colorize, "Piano", prog.Piano.Enabled, buildPianoRows(prog.Piano))
	renderPanelSection(out, colorize, "Organ", prog.Organ.Enabled, buildOrganRows(prog.Organ))
	if prog.Organ.Enabled {
		aligns := make([]columnAlignment, len(drawbarHeaders))
		for i := range aligns {
			aligns[i] = alignRight
		}
		aligns[0] = alignLeft
		fmt.Fprintln(out, renderTable(drawbarHeaders, buildDrawbarRows(prog.Organ), aligns))
		fmt.Fprintln(out)
	}
	renderPanelSection(out, colorize, "Synth", prog.Synth.Enabled, buildSynthRows(prog.Synth))

	for _, line := range renderSectionHeader("Effects", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderTable([]string{"Effect", "Setting"}, buildEffectsRows(prog.Effects), nil))
}

func renderPanelSection(out io.Writer, colorize bool, title string, enabled bool, rows [][]string) {
	if !enabled {
		fmt.Fprintln(out, renderStatusLine(title, statusInfo, "disabled", colorize))
		fmt.Fprintln(out)
		return
	}
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderTable([]string{"Parameter", "Value"}, rows, nil))
	fmt.Fprintln(out)
}
