// Package main provides the entry point for the coffmap CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for coffmap.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coffmap",
		Short: "Linker map file generator",
		Long: `coffmap renders linker map files from finalized layout snapshots.

A map file lists, in order and hierarchically, the output sections of a
linked binary, the input sections placed in them, the object files that
contributed each input section, and the symbols defined within. It is
the report toolchain engineers reach for when diagnosing binary layout,
size regressions, or symbol placement.

The layout is supplied as a YAML snapshot of a finished link; coffmap
computes nothing about placement itself.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewSummaryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
