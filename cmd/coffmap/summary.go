package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/coffmap/coffmap/internal/layout"
	"github.com/coffmap/coffmap/internal/mapfile"
)

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [layout.yaml]",
		Short: "Summarize a layout snapshot as a Markdown table",
		Long: `Summary prints a per-section size overview of a layout snapshot.

For each output section it shows the base address, virtual size, the
number of placed input-section chunks, the number of contributing object
files, and the number of symbols the map file would report. This is the
quick size-regression view; use 'coffmap render' for the full map file.

Examples:
  # Print the summary to stdout
  coffmap summary build/kernel.yaml

  # Write the summary to a file
  coffmap summary -o kernel-summary.md build/kernel.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runSummaryCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Write the summary to the specified file instead of stdout")

	return cmd
}

// runSummaryCmd executes the summary command.
func runSummaryCmd(cmd *cobra.Command, args []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	sections, err := layout.LoadSnapshot(args[0])
	if err != nil {
		return fmt.Errorf("failed to load layout snapshot: %w", err)
	}

	var out io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create summary file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return writeSummary(out, args[0], sections)
}

// writeSummary renders the per-section overview as Markdown.
func writeSummary(w io.Writer, snapshot string, sections []*layout.OutputSection) error {
	md := markdown.NewMarkdown(w)

	md.H1("Layout Summary")
	md.PlainText("")
	md.PlainTextf("Snapshot: `%s`", snapshot)
	md.PlainText("")

	rows := make([][]string, 0, len(sections))
	var totalSize uint64
	for _, sec := range sections {
		chunks, files, symbols := sectionCounts(sec)
		rows = append(rows, []string{
			sec.Name,
			fmt.Sprintf("%08x", sec.Addr),
			fmt.Sprintf("%08x", sec.VirtualSize),
			fmt.Sprintf("%d", chunks),
			fmt.Sprintf("%d", files),
			fmt.Sprintf("%d", symbols),
		})
		totalSize += sec.VirtualSize
	}

	md.Table(markdown.TableSet{
		Header: []string{"Section", "Address", "Size", "Chunks", "Files", "Symbols"},
		Rows:   rows,
	})
	md.PlainText("")
	md.PlainTextf("Total virtual size: `0x%x` across %d sections.", totalSize, len(sections))

	return md.Build()
}

// sectionCounts tallies what the map file would show for one section:
// placed input-section chunks, distinct contributing object files, and
// reportable symbols.
func sectionCounts(sec *layout.OutputSection) (chunks, files, symbols int) {
	seen := make(map[*layout.ObjectFile]bool)
	for _, c := range sec.Chunks {
		if c.Kind != layout.ChunkSection {
			continue
		}
		chunks++
		if c.File == nil {
			continue
		}
		if !seen[c.File] {
			seen[c.File] = true
			files++
		}
		for _, sym := range c.File.Symbols {
			if mapfile.ReportableSymbol(sym, c) {
				symbols++
			}
		}
	}
	return chunks, files, symbols
}
