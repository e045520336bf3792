// Package mw implements a parser for MW, an indentation-sensitive markup
// language that is a superset of JSON: every value is introduced by its
// indentation level rather than explicit delimiters, with JSON syntax
// available inline wherever a compact literal is wanted.
package mw

import (
	"github.com/petbrain/myaw/internal/lines"
	"github.com/petbrain/myaw/pkg/value"
)

// maxRecursionDepth bounds both nested-block and embedded-JSON recursion,
// mirroring myaw.h's MW_MAX_RECURSION_DEPTH.
const maxRecursionDepth = 100

// commentChar introduces a comment that runs to the end of the line.
const commentChar = '#'

// blockParserFunc parses the current nested block and returns its value.
// It is the Go analogue of myaw.h's MwBlockParserFunc.
type blockParserFunc func(p *Parser) (value.Value, error)

// Parser holds the state of one parse: the line source, the current line
// and its measured indentation, and the nested-block/JSON recursion
// counters. Grounded on myaw.h's MwParser struct; blocklevel and json_depth
// both start at 1, not 0, matching the original so that maxRecursionDepth
// comparisons behave identically.
type Parser struct {
	src lines.Source

	currentLine   []rune
	currentIndent int
	lineNumber    int

	blockIndent   int
	blockLevel    int
	jsonDepth     int
	skipComments  bool
	eof           bool

	customParsers map[string]blockParserFunc
}

// NewParser creates a parser reading from src. Grounded on
// myaw_parser.c's mw_create_parser: the default conversion specifiers
// (:raw:, :literal:, :folded:, :datetime:, :timestamp:, :json:) are
// registered up front, the same set mw_create_parser wires into
// parser->custom_parsers.
func NewParser(src lines.Source) *Parser {
	p := &Parser{
		src:          src,
		blockLevel:   1,
		jsonDepth:    1,
		skipComments: true,
	}
	p.customParsers = map[string]blockParserFunc{
		"raw":       parseRawValue,
		"literal":   parseLiteralString,
		"folded":    parseFoldedString,
		"datetime":  parseDatetimeValue,
		"timestamp": parseTimestampValue,
		"json":      jsonParserFunc,
	}
	return p
}

// Close releases the parser's reference to its line source. A Parser is
// not reusable afterwards. This is the Go analogue of mw_delete_parser;
// unlike the C original there is no manual deallocation to perform, but
// the method is kept so embedders have a single, symmetrical place to
// release whatever src itself needs closed.
func (p *Parser) Close() error {
	if closer, ok := p.src.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// SetCustomParser registers parserFunc for convspec, overriding or adding
// to the default conversion specifiers. Grounded on
// myaw_parser.c's mw_set_custom_parser.
func (p *Parser) SetCustomParser(convspec string, parserFunc func(p *Parser) (value.Value, error)) {
	p.customParsers[convspec] = parserFunc
}

func (p *Parser) haveCustomParser(convspec string) bool {
	_, ok := p.customParsers[convspec]
	return ok
}

func (p *Parser) getCustomParser(convspec string) blockParserFunc {
	return p.customParsers[convspec]
}

// Parse parses markup read from src as MW (spec.md's top-level entry
// point). Grounded on myaw_parser.c's mw_parse.
func Parse(src lines.Source) (value.Value, error) {
	return NewParser(src).ParseDocument()
}

// ParseDocument runs a full MW parse using p's already-configured
// conversion specifiers, so an embedder can SetCustomParser before
// parsing begins. Grounded on myaw_parser.c's mw_parse, including its
// PW_ERROR_EOF result when the document holds only blank lines and/or
// comments -- that case is distinct from a document whose sole value is
// literal null, and so must not collapse to (Null, nil).
func (p *Parser) ParseDocument() (value.Value, error) {
	if err := p.nextBlockLine(); err != nil {
		if isEndOfBlock(err) && p.eof {
			return value.Null(), ErrEOF
		}
		return value.Null(), err
	}

	result, err := valueParserFunc(p)
	if err != nil {
		return value.Null(), err
	}

	err = p.nextBlockLine()
	if !p.eof {
		if err != nil && !isEndOfBlock(err) {
			return value.Null(), err
		}
		return value.Null(), newParseError(p.lineNumber, p.currentIndent, "Extra data after parsed value")
	}
	return result, nil
}

// charAt returns the rune at pos in the current line, and whether pos is
// within range.
func (p *Parser) charAt(pos int) (rune, bool) {
	if pos < 0 || pos >= len(p.currentLine) {
		return 0, false
	}
	return p.currentLine[pos], true
}

// endOfLine reports whether pos is beyond the end of the current line.
func (p *Parser) endOfLine(pos int) bool {
	return pos < 0 || pos >= len(p.currentLine)
}

// skipSpaces returns the position of the first non-space rune in the
// current line at or after pos, or len(line) if there is none.
func (p *Parser) skipSpaces(pos int) int {
	for pos < len(p.currentLine) && isSpace(p.currentLine[pos]) {
		pos++
	}
	return pos
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' }

// isSpaceOrEOLAt reports whether pos is past the end of line or holds
// whitespace. Grounded on myaw_parser.c's isspace_or_eol_at.
func (p *Parser) isSpaceOrEOLAt(pos int) bool {
	if p.endOfLine(pos) {
		return true
	}
	r, _ := p.charAt(pos)
	return isSpace(r)
}

func isDecDigit(r rune) bool { return '0' <= r && r <= '9' }

// substringEq reports whether the current line holds literal s starting
// at pos. Grounded on myaw_parser.c's pw_substring_eq, used there to
// match the "null"/"true"/"false" keywords.
func (p *Parser) substringEq(pos int, s string) bool {
	if pos < 0 || pos+len(s) > len(p.currentLine) {
		return false
	}
	for i, r := range s {
		if p.currentLine[pos+i] != r {
			return false
		}
	}
	return true
}
