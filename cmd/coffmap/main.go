// Package main provides the entry point for the coffmap CLI.
//
// coffmap renders linker map files: hierarchical text reports showing,
// for every output section of a linked binary, the input sections that
// compose it, the object files that contributed them, and the symbols
// defined within. The layout itself is supplied as a YAML snapshot of a
// finished link.
//
// Usage:
//
//	coffmap render <layout.yaml>
//	coffmap render --stdout <layout.yaml>
//	coffmap summary <layout.yaml>
//
// See --help for all available options.
package main

// main is the entry point for coffmap.
func main() {
	Execute()
}
