package mapfile

import (
	"fmt"
	"io"

	"github.com/coffmap/coffmap/internal/layout"
)

// DefaultPageSize is the align figure shown on every output-section row.
//
// Design decision: Out rows deliberately display the image page size
// rather than the section's own alignment, so all top-level rows show a
// uniform figure. Existing report consumers key on the literal numbers,
// so this convention is preserved rather than "fixed". 4096 is the COFF
// image page size.
const DefaultPageSize = 4096

// Renderer emits the map file report for a finalized layout.
// It holds no state between Render calls beyond its configuration; the
// input-section dedup cursor is scoped to a single traversal.
type Renderer struct {
	out      io.Writer
	pageSize uint64
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithPageSize overrides the align figure shown on output-section rows.
// A zero value is ignored and keeps DefaultPageSize.
func WithPageSize(n uint64) RendererOption {
	return func(r *Renderer) {
		if n > 0 {
			r.pageSize = n
		}
	}
}

// NewRenderer creates a Renderer that writes the report to out.
func NewRenderer(out io.Writer, opts ...RendererOption) *Renderer {
	r := &Renderer{
		out:      out,
		pageSize: DefaultPageSize,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render writes the full report: one header line, then one row per
// output section, per maximal run of same-named consecutive
// input-section chunks, per contributing object file, and per reportable
// symbol, in that hierarchical order. The traversal is total: entities
// that do not meet the reporting criteria are skipped silently.
func (r *Renderer) Render(sections []*layout.OutputSection) error {
	if err := r.writeHeader(); err != nil {
		return err
	}

	for _, sec := range sections {
		if err := r.writeLine(outSecLine(sec.Addr, sec.VirtualSize, r.pageSize, sec.Name)); err != nil {
			return err
		}

		// The dedup cursor resets per output section: the first
		// input-section chunk always gets an In row.
		prevName := ""
		for _, c := range sec.Chunks {
			if c.Kind != layout.ChunkSection {
				continue
			}
			if err := r.writeSectionChunk(c, &prevName); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeSectionChunk emits the In/File/Symbol rows for one input-section
// chunk. prevName is the dedup cursor: consecutive chunks sharing an
// input-section name collapse into a single In row, even across
// different contributing files.
func (r *Renderer) writeSectionChunk(c *layout.Chunk, prevName *string) error {
	if c.Name != *prevName {
		if err := r.writeLine(inSecLine(c.Addr, c.Size, c.Align, c.Name)); err != nil {
			return err
		}
		*prevName = c.Name
	}

	file := c.File
	if file == nil {
		return nil
	}

	// Files have no independent size figure; the chunk's size is shown.
	if err := r.writeLine(fileLine(c.Addr, c.Size, c.Align, file.Name)); err != nil {
		return err
	}

	for _, sym := range file.Symbols {
		if !ReportableSymbol(sym, c) {
			continue
		}
		if err := r.writeLine(symbolLine(sym.Addr, c.Size, sym.Name)); err != nil {
			return err
		}
	}

	return nil
}

// ReportableSymbol reports whether sym appears in the map file under
// chunk c: it must be a concretely defined symbol, defined in exactly
// this chunk, and not the compiler's section-definition marker.
func ReportableSymbol(sym *layout.Symbol, c *layout.Chunk) bool {
	return sym.Kind == layout.SymbolDefined &&
		sym.Chunk == c &&
		!sym.SectionDefinition
}

func (r *Renderer) writeHeader() error {
	_, err := fmt.Fprintf(r.out, "%-8s %-8s %-5s %-7s %-7s %-7s Symbol\n",
		"Address", "Size", "Align", "Out", "In", "File")
	return err
}

func (r *Renderer) writeLine(line string) error {
	_, err := io.WriteString(r.out, line+"\n")
	return err
}

// The row builders compose by prefixing an empty label, so each level's
// name lands one label column further right than its parent's.

func outSecLine(addr, size, align uint64, name string) string {
	return fmt.Sprintf("%08x %08x %5d %-7s", addr, size, align, name)
}

func inSecLine(addr, size, align uint64, name string) string {
	return outSecLine(addr, size, align, "") + " " + leftJustify(name)
}

func fileLine(addr, size, align uint64, name string) string {
	return inSecLine(addr, size, align, "") + " " + leftJustify(name)
}

func symbolLine(addr, size uint64, name string) string {
	return fileLine(addr, size, 0, "") + " " + leftJustify(name)
}

func leftJustify(name string) string {
	return fmt.Sprintf("%-7s", name)
}
