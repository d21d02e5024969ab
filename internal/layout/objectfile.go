package layout

// ObjectFile is a contributor of one or more input-section chunks: a
// compiled translation unit or an archive member.
//
// Name is the display identity used in reports, either a plain path
// ("test.o") or an archive-member form ("libc.a(printf.o)"). Symbols
// holds the file's symbol table in the order the file stores it; the
// map file preserves that order and performs no sorting.
type ObjectFile struct {
	Name    string
	Symbols []*Symbol
}
