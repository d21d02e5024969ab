package layout

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// validSnapshot is the canonical single-section snapshot used across
// the decode tests.
const validSnapshot = `
sections:
  - name: .text
    address: 0x201000
    size: 0x15
    align: 16
    chunks:
      - id: text0
        section: .text
        address: 0x201000
        size: 0xe
        align: 4
        file: test.o
files:
  - name: test.o
    symbols:
      - name: local
        address: 0x20100e
        chunk: text0
      - name: f(int)
        address: 0x201005
        kind: defined
        chunk: text0
`

// TestDecodeSnapshot tests decoding and linking of layout snapshots.
func TestDecodeSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("links the canonical snapshot", func(t *testing.T) {
		t.Parallel()

		sections, err := DecodeSnapshot(strings.NewReader(validSnapshot))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(sections) != 1 {
			t.Fatalf("expected 1 section, got %d", len(sections))
		}
		sec := sections[0]
		if sec.Name != ".text" || sec.Addr != 0x201000 || sec.VirtualSize != 0x15 {
			t.Errorf("unexpected section: %+v", sec)
		}
		if len(sec.Chunks) != 1 {
			t.Fatalf("expected 1 chunk, got %d", len(sec.Chunks))
		}

		chunk := sec.Chunks[0]
		if chunk.Kind != ChunkSection || chunk.Name != ".text" || chunk.Size != 0xe {
			t.Errorf("unexpected chunk: %+v", chunk)
		}
		if chunk.File == nil || chunk.File.Name != "test.o" {
			t.Fatalf("expected chunk to reference test.o, got %+v", chunk.File)
		}

		syms := chunk.File.Symbols
		if len(syms) != 2 {
			t.Fatalf("expected 2 symbols, got %d", len(syms))
		}
		if syms[0].Name != "local" || syms[0].Chunk != chunk {
			t.Errorf("unexpected first symbol: %+v", syms[0])
		}
		if syms[1].Name != "f(int)" || syms[1].Kind != SymbolDefined {
			t.Errorf("unexpected second symbol: %+v", syms[1])
		}
	})

	t.Run("creates object files not declared under files", func(t *testing.T) {
		t.Parallel()

		const snap = `
sections:
  - name: .data
    address: 0x3000
    size: 0x10
    chunks:
      - section: .data
        address: 0x3000
        size: 0x10
        file: undeclared.o
`
		sections, err := DecodeSnapshot(strings.NewReader(snap))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		file := sections[0].Chunks[0].File
		if file == nil || file.Name != "undeclared.o" {
			t.Fatalf("expected implicit object file, got %+v", file)
		}
		if len(file.Symbols) != 0 {
			t.Errorf("expected empty symbol table, got %d entries", len(file.Symbols))
		}
	})

	t.Run("shares one object file across chunks", func(t *testing.T) {
		t.Parallel()

		const snap = `
sections:
  - name: .text
    address: 0x1000
    size: 0x20
    chunks:
      - section: .text
        address: 0x1000
        size: 0x10
        file: shared.o
      - section: .text
        address: 0x1010
        size: 0x10
        file: shared.o
`
		sections, err := DecodeSnapshot(strings.NewReader(snap))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		chunks := sections[0].Chunks
		if chunks[0].File != chunks[1].File {
			t.Error("expected both chunks to share one ObjectFile")
		}
	})

	t.Run("symbols without a chunk reference stay unlinked", func(t *testing.T) {
		t.Parallel()

		const snap = `
sections: []
files:
  - name: ext.o
    symbols:
      - name: memcpy
        kind: undefined
`
		_, err := DecodeSnapshot(strings.NewReader(snap))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("decode errors", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			name     string
			snapshot string
			wantErr  error
		}{
			{
				name: "duplicate chunk id",
				snapshot: `
sections:
  - name: .text
    address: 0x1000
    size: 0x20
    chunks:
      - {id: c0, section: .text, address: 0x1000, size: 0x10}
      - {id: c0, section: .text, address: 0x1010, size: 0x10}
`,
				wantErr: ErrDuplicateChunkID,
			},
			{
				name: "unknown chunk id",
				snapshot: `
sections: []
files:
  - name: a.o
    symbols:
      - {name: f, chunk: nope}
`,
				wantErr: ErrUnknownChunkID,
			},
			{
				name: "overlapping chunks",
				snapshot: `
sections:
  - name: .text
    address: 0x1000
    size: 0x20
    chunks:
      - {section: .text, address: 0x1000, size: 0x10}
      - {section: .text, address: 0x100f, size: 0x10}
`,
				wantErr: ErrChunkOrder,
			},
			{
				name: "chunks out of address order",
				snapshot: `
sections:
  - name: .text
    address: 0x1000
    size: 0x20
    chunks:
      - {section: .text, address: 0x1010, size: 0x10}
      - {section: .text, address: 0x1000, size: 0x10}
`,
				wantErr: ErrChunkOrder,
			},
			{
				name: "input-section chunk without a section name",
				snapshot: `
sections:
  - name: .text
    address: 0x1000
    size: 0x20
    chunks:
      - {address: 0x1000, size: 0x10}
`,
				wantErr: ErrMissingSectionName,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				_, err := DecodeSnapshot(strings.NewReader(tc.snapshot))
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("expected %v, got %v", tc.wantErr, err)
				}
			})
		}
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		t.Parallel()

		const snap = `
sections:
  - name: .text
    address: 0x1000
    size: 0x10
    chunks:
      - {kind: mystery, section: .text, address: 0x1000, size: 0x10}
`
		if _, err := DecodeSnapshot(strings.NewReader(snap)); err == nil {
			t.Error("expected error for unknown chunk kind")
		}
	})
}

// TestLoadSnapshot tests reading snapshots from disk.
func TestLoadSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("loads a snapshot file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "layout.yaml")
		if err := os.WriteFile(path, []byte(validSnapshot), 0o600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		sections, err := LoadSnapshot(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sections) != 1 || sections[0].Name != ".text" {
			t.Errorf("unexpected sections: %+v", sections)
		}
	})

	t.Run("missing file returns an error", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing snapshot")
		}
	})

	t.Run("decode errors name the file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("sections: [not a section]"), 0o600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		_, err := LoadSnapshot(path)
		if err == nil {
			t.Fatal("expected decode error")
		}
		if !strings.Contains(err.Error(), "bad.yaml") {
			t.Errorf("expected error to name the file, got: %v", err)
		}
	})
}
