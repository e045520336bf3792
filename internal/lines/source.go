// Package lines implements the line-source abstraction the MW parser scans
// over: a sequence of already-decoded lines, with one line of pushback and a
// running line number for diagnostics (spec.md §6.1).
package lines

// Source is the external line-source contract the parser is built against.
// It mirrors the Scanner/ErrScanner split the teacher uses for bufio-style
// scanners (internal/scanio.Scanner): callers drive it with ReadLine, can
// push back at most one line with UnreadLine, and ask LineNumber for
// diagnostics.
type Source interface {
	// ReadLine returns the next line, with its line terminator stripped,
	// as a slice of runes so the parser can index it by code point. ok is
	// false at end of input, in which case line is nil and err is the
	// reason (nil for a clean EOF).
	ReadLine() (line []rune, ok bool, err error)

	// UnreadLine pushes the most recently read line back, so the next
	// ReadLine returns it again. It is only valid to call this once
	// between reads; a second call without an intervening ReadLine is a
	// programming error.
	UnreadLine()

	// LineNumber returns the 1-based number of the line last returned by
	// ReadLine, for use in diagnostics.
	LineNumber() int
}
