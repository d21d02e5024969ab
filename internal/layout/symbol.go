package layout

// SymbolKind discriminates how a symbol resolved during the link.
// Only SymbolDefined symbols have a concrete location in the image.
type SymbolKind int

const (
	// SymbolDefined is a regular symbol defined at a concrete address
	// inside a chunk.
	SymbolDefined SymbolKind = iota

	// SymbolUndefined never resolved to a definition.
	SymbolUndefined

	// SymbolCommon is a tentative (common-block) definition.
	SymbolCommon

	// SymbolImported resolves to another image via an import table.
	SymbolImported
)

// String returns the snapshot spelling of the symbol kind.
func (k SymbolKind) String() string {
	switch k {
	case SymbolDefined:
		return "defined"
	case SymbolUndefined:
		return "undefined"
	case SymbolCommon:
		return "common"
	case SymbolImported:
		return "imported"
	default:
		return "unknown"
	}
}

// Symbol is a named, addressable definition carried by an object file.
//
// Chunk points at the chunk the symbol is defined in and is nil for
// symbols without a concrete definition. The pointer is non-owning:
// chunks are owned by their output section. SectionDefinition marks the
// bookkeeping symbol a compiler emits for the section itself; such
// symbols are carried in the model but never reported.
type Symbol struct {
	Name              string
	Addr              uint64
	Kind              SymbolKind
	SectionDefinition bool
	Chunk             *Chunk
}
