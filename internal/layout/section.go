package layout

// OutputSection is a named, contiguous region of the final linked binary.
//
// Chunks holds the placed content in address order. Invariant (enforced
// by the snapshot codec, assumed by all consumers): chunks are sorted by
// ascending address and do not overlap.
type OutputSection struct {
	Name string

	// Addr is the base address of the section in the final image.
	Addr uint64

	// VirtualSize is the in-memory extent of the section, which may
	// exceed the sum of its chunk sizes (uninitialized tails, padding).
	VirtualSize uint64

	// Align is the section's own alignment requirement. Note that the
	// map file does not display this value on section rows; see the
	// mapfile package for the page-size convention.
	Align uint64

	Chunks []*Chunk
}
