package layout

// ChunkKind discriminates the variants of placed content inside an output
// section. Only ChunkSection chunks originate from a compiled object file
// and carry a displayable section name; the other kinds are synthesized by
// the linker and contribute nothing to the map file.
//
// Design decision: We model chunk variants as a kind discriminator on a
// single struct rather than an interface hierarchy. Consumers filter on
// the discriminator during traversal, which keeps the traversal total:
// an unknown or irrelevant kind is skipped, never an error.
type ChunkKind int

const (
	// ChunkSection is a placed input section from an object file.
	ChunkSection ChunkKind = iota

	// ChunkPadding is alignment padding between placed sections.
	ChunkPadding

	// ChunkSynthetic is linker-generated content such as headers,
	// import thunks, or jump tables.
	ChunkSynthetic
)

// String returns the snapshot spelling of the chunk kind.
func (k ChunkKind) String() string {
	switch k {
	case ChunkSection:
		return "section"
	case ChunkPadding:
		return "padding"
	case ChunkSynthetic:
		return "synthetic"
	default:
		return "unknown"
	}
}

// Chunk is the smallest unit of placed content within an OutputSection.
//
// Name is the input-section name (".text", ".rdata.str", ...) and is only
// meaningful for ChunkSection chunks. File points at the object file that
// contributed the chunk; it is nil for chunks with no single originating
// file and for non-section kinds. The pointer is non-owning: object files
// are owned by the layout that produced them.
type Chunk struct {
	Kind  ChunkKind
	Name  string
	Addr  uint64
	Size  uint64
	Align uint64
	File  *ObjectFile
}
