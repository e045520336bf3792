package mw_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These exercise mw/escape.go's escape table and findClosingQuote through
// the public Parse entry point, since both are unexported.

func TestEscapeNamedControlChars(t *testing.T) {
	v := mustParse(t, `"a\n\t\r\a\b\f\v"`+"\n")
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "a\n\t\r\a\b\f\v", s)
}

func TestEscapeQuoteAndBackslashLiterals(t *testing.T) {
	v := mustParse(t, `"\'\"\?\\"`+"\n")
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, `'"?\`, s)
}

func TestEscapeUnrecognizedPassesThrough(t *testing.T) {
	v := mustParse(t, `"\q"`+"\n")
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, `\q`, s)
}

func TestEscapeOctal(t *testing.T) {
	// \101 octal = 65 decimal = 'A'.
	v := mustParse(t, `"\o101"`+"\n")
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "A", s)
}

func TestEscapeOctalShortAtEndOfRangeIsAccepted(t *testing.T) {
	// A single octal digit immediately followed by the closing quote is
	// accepted (fewer than 3 digits is fine so long as at least one was read).
	v := mustParse(t, `"\o1"`+"\n")
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "\x01", s)
}

func TestEscapeOctalZeroDigitsIsError(t *testing.T) {
	pe := parseErr(t, `"\o"`+"\n")
	assert.Equal(t, "Incomplete octal value", pe.Desc)
}

func TestEscapeOctalBadDigitIsError(t *testing.T) {
	pe := parseErr(t, `"\o8"`+"\n")
	assert.Equal(t, "Bad octal value", pe.Desc)
}

func TestEscapeHex(t *testing.T) {
	v := mustParse(t, `"\x41"`+"\n")
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "A", s)
}

func TestEscapeHexIncompleteIsError(t *testing.T) {
	pe := parseErr(t, `"\x1"`+"\n")
	assert.Equal(t, "Incomplete hexadecimal value", pe.Desc)
}

func TestEscapeHexBadDigitIsError(t *testing.T) {
	pe := parseErr(t, `"\xZZ"`+"\n")
	assert.Equal(t, "Bad hexadecimal value", pe.Desc)
}

func TestEscapeUnicodeShortEscape(t *testing.T) {
	v := mustParse(t, "\"\\u0041\"\n")
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "A", s)
}

func TestEscapeUnicodeLong(t *testing.T) {
	v := mustParse(t, `"\U00000041"`+"\n")
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "A", s)
}

// findClosingQuote's redesign: an even run of backslashes before a quote
// leaves it unescaped (the true closing quote); the naive "single preceding
// backslash" rule the original C used would have misread this one.
func TestFindClosingQuoteEvenBackslashesNotEscaped(t *testing.T) {
	v := mustParse(t, "\"a\\\\\"\n")
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "a\\", s)
}

// An odd run (one backslash) really does escape the quote, so parsing
// continues to the next, true closing quote.
func TestFindClosingQuoteOddBackslashesEscaped(t *testing.T) {
	v := mustParse(t, "\"a\\\"b\"\n")
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, `a"b`, s)
}

// A line of a multi-line quoted string ending in a single unmatched
// backslash (no character follows it on that line) passes the backslash
// through literally instead of erroring.
func TestEscapeLoneTrailingBackslashInMultilineString(t *testing.T) {
	doc := "\"abc\\\n def\"\n"
	v := mustParse(t, doc)
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "abc\\ def", s)
}
