// Package layout defines the finalized linker layout model consumed by
// the map file renderer.
//
// The model mirrors what a linker knows once address assignment is done:
// output sections composed of placed chunks, the object files that
// contributed input-section chunks, and the symbols those files define.
// Nothing in this package computes addresses, sizes, or alignment; a
// layout is taken as already final and is never mutated by consumers.
//
// Back-references between entities (chunk to contributing file, symbol to
// defining chunk) are plain non-owning pointers. Ownership always runs
// downward: sections own chunks, files own symbols. The snapshot codec in
// this package is the only constructor and never creates ownership cycles.
package layout
