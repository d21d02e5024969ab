package layout

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Snapshot is the YAML description of a finalized layout. It is the wire
// form a linker (or a test fixture) uses to hand coffmap its placement
// results.
//
// Addresses and sizes accept YAML integers in any base, so hexadecimal
// values can be written the way linkers print them (0x201000).
type Snapshot struct {
	Sections []SnapshotSection `yaml:"sections"`
	Files    []SnapshotFile    `yaml:"files"`
}

// SnapshotSection describes one output section and its placed chunks.
type SnapshotSection struct {
	Name    string          `yaml:"name"`
	Address uint64          `yaml:"address"`
	Size    uint64          `yaml:"size"`
	Align   uint64          `yaml:"align"`
	Chunks  []SnapshotChunk `yaml:"chunks"`
}

// SnapshotChunk describes one placed chunk. Kind defaults to "section"
// when omitted. ID is an optional handle that symbols use to name their
// defining chunk; it must be unique across the whole snapshot.
type SnapshotChunk struct {
	Kind    string `yaml:"kind"`
	ID      string `yaml:"id"`
	Section string `yaml:"section"`
	Address uint64 `yaml:"address"`
	Size    uint64 `yaml:"size"`
	Align   uint64 `yaml:"align"`
	File    string `yaml:"file"`
}

// SnapshotFile describes an object file and its symbol table, in the
// order the file stores it.
type SnapshotFile struct {
	Name    string           `yaml:"name"`
	Symbols []SnapshotSymbol `yaml:"symbols"`
}

// SnapshotSymbol describes one symbol table entry. Chunk names the ID of
// the defining chunk and may be empty for symbols without a concrete
// definition. Kind defaults to "defined" when omitted.
type SnapshotSymbol struct {
	Name              string `yaml:"name"`
	Address           uint64 `yaml:"address"`
	Kind              string `yaml:"kind"`
	SectionDefinition bool   `yaml:"section-definition"`
	Chunk             string `yaml:"chunk"`
}

// Snapshot decode errors. Structural problems are reported at decode
// time so that traversal of a loaded layout never has to fail.
var (
	// ErrDuplicateChunkID is returned when two chunks share an ID.
	ErrDuplicateChunkID = errors.New("duplicate chunk id")

	// ErrUnknownChunkID is returned when a symbol references a chunk
	// ID that no chunk declares.
	ErrUnknownChunkID = errors.New("unknown chunk id")

	// ErrChunkOrder is returned when a section's chunks are not in
	// ascending address order or overlap.
	ErrChunkOrder = errors.New("chunks must be address-ordered and non-overlapping")

	// ErrMissingSectionName is returned when an input-section chunk
	// has no section name.
	ErrMissingSectionName = errors.New("input-section chunk missing section name")
)

// LoadSnapshot reads a YAML layout snapshot from path and links it into
// the in-memory model.
func LoadSnapshot(path string) ([]*OutputSection, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided snapshot path is intentional
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sections, err := DecodeSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sections, nil
}

// DecodeSnapshot decodes a YAML layout snapshot from r and links it into
// the in-memory model: file names are resolved to shared ObjectFile
// entries, symbol chunk references are resolved to chunk pointers, and
// the per-section chunk ordering invariant is checked.
func DecodeSnapshot(r io.Reader) ([]*OutputSection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return snap.Link()
}

// Link turns the decoded snapshot into the linked layout model.
//
// Object files referenced by chunks but never declared under "files" are
// created with an empty symbol table, so a minimal snapshot does not
// need a files block at all.
func (s *Snapshot) Link() ([]*OutputSection, error) {
	files := make(map[string]*ObjectFile)
	fileFor := func(name string) *ObjectFile {
		if f, ok := files[name]; ok {
			return f
		}
		f := &ObjectFile{Name: name}
		files[name] = f
		return f
	}

	chunkByID := make(map[string]*Chunk)

	sections := make([]*OutputSection, 0, len(s.Sections))
	for _, ss := range s.Sections {
		sec := &OutputSection{
			Name:        ss.Name,
			Addr:        ss.Address,
			VirtualSize: ss.Size,
			Align:       ss.Align,
		}

		var prevEnd uint64
		for i, sc := range ss.Chunks {
			kind, err := parseChunkKind(sc.Kind)
			if err != nil {
				return nil, fmt.Errorf("section %s chunk %d: %w", ss.Name, i, err)
			}

			c := &Chunk{
				Kind:  kind,
				Name:  sc.Section,
				Addr:  sc.Address,
				Size:  sc.Size,
				Align: sc.Align,
			}
			if kind == ChunkSection {
				if sc.Section == "" {
					return nil, fmt.Errorf("section %s chunk %d: %w", ss.Name, i, ErrMissingSectionName)
				}
				if sc.File != "" {
					c.File = fileFor(sc.File)
				}
			}

			if i > 0 && c.Addr < prevEnd {
				return nil, fmt.Errorf("section %s chunk %d: %w", ss.Name, i, ErrChunkOrder)
			}
			prevEnd = c.Addr + c.Size

			if sc.ID != "" {
				if _, ok := chunkByID[sc.ID]; ok {
					return nil, fmt.Errorf("section %s chunk %d: %w: %s", ss.Name, i, ErrDuplicateChunkID, sc.ID)
				}
				chunkByID[sc.ID] = c
			}

			sec.Chunks = append(sec.Chunks, c)
		}

		sections = append(sections, sec)
	}

	for _, sf := range s.Files {
		file := fileFor(sf.Name)
		for i, sy := range sf.Symbols {
			kind, err := parseSymbolKind(sy.Kind)
			if err != nil {
				return nil, fmt.Errorf("file %s symbol %d: %w", sf.Name, i, err)
			}

			sym := &Symbol{
				Name:              sy.Name,
				Addr:              sy.Address,
				Kind:              kind,
				SectionDefinition: sy.SectionDefinition,
			}
			if sy.Chunk != "" {
				c, ok := chunkByID[sy.Chunk]
				if !ok {
					return nil, fmt.Errorf("file %s symbol %s: %w: %s", sf.Name, sy.Name, ErrUnknownChunkID, sy.Chunk)
				}
				sym.Chunk = c
			}
			file.Symbols = append(file.Symbols, sym)
		}
	}

	return sections, nil
}

// parseChunkKind maps the snapshot spelling to a ChunkKind. The empty
// string means "section", the overwhelmingly common case.
func parseChunkKind(s string) (ChunkKind, error) {
	switch s {
	case "", "section":
		return ChunkSection, nil
	case "padding":
		return ChunkPadding, nil
	case "synthetic":
		return ChunkSynthetic, nil
	default:
		return 0, fmt.Errorf("unknown chunk kind %q", s)
	}
}

// parseSymbolKind maps the snapshot spelling to a SymbolKind. The empty
// string means "defined".
func parseSymbolKind(s string) (SymbolKind, error) {
	switch s {
	case "", "defined":
		return SymbolDefined, nil
	case "undefined":
		return SymbolUndefined, nil
	case "common":
		return SymbolCommon, nil
	case "imported":
		return SymbolImported, nil
	default:
		return 0, fmt.Errorf("unknown symbol kind %q", s)
	}
}
