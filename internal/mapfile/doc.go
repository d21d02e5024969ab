// Package mapfile renders linker map files: the hierarchical
// Address/Size/Align/Out/In/File/Symbol report describing how code and
// data were placed in the final binary.
//
// The package has two halves. The Renderer walks a finalized layout in a
// fixed order and emits one column-aligned row per reportable entity,
// suppressing repeated input-section names so that the text reads as a
// tree. WriteFile wraps the renderer with the atomic publishing
// discipline: output is staged in a temporary file beside the
// destination and renamed into place, so a reader never observes a
// partially written report and a failure leaves the destination
// untouched.
//
// The column format is a compatibility surface. Every row carries an
// 8-digit zero-padded hex address and size, a 5-wide right-justified
// align figure, and four 7-wide left-justified label columns; blank
// labels still occupy their full width, which is what produces the
// visual nesting. Consumers parse these reports by column, so the bytes
// emitted here must not change.
package mapfile
