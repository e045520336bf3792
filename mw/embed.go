package mw

import "github.com/petbrain/myaw/pkg/value"

// This file exposes the primitives an embedder needs to write its own
// conversion-specifier function for SetCustomParser, mirroring the
// non-static declarations in myaw.h (_mw_read_block_line,
// _mw_read_block, _mw_get_start_position, _mw_comment_or_end_of_line):
// those were part of the library's public C API specifically so that
// custom MwBlockParserFunc implementations outside myaw_parser.c could
// drive the same block machinery the built-in parsers use.

// ErrEndOfBlock is returned by ReadBlockLine once the current block has
// no more lines. A custom parser function should treat it as the normal
// way a block ends, not as a failure.
var ErrEndOfBlock = endOfBlock

// IsEndOfBlock reports whether err is ErrEndOfBlock.
func IsEndOfBlock(err error) bool { return isEndOfBlock(err) }

// ReadBlockLine reads the next line of the block currently being parsed.
func (p *Parser) ReadBlockLine() error { return p.nextBlockLine() }

// ReadBlock collects every remaining line of the current block, with the
// block's indentation stripped; indentation beyond it is kept.
func (p *Parser) ReadBlock() ([]string, error) { return p.readBlock() }

// StartPosition returns the position of the first non-space rune in the
// current block.
func (p *Parser) StartPosition() int { return p.startPosition() }

// CommentOrEndOfLine reports whether the current line ends at position,
// possibly after trailing spaces, or continues only with a comment.
func (p *Parser) CommentOrEndOfLine(position int) bool { return p.commentOrEndOfLine(position) }

// CurrentLine returns the current line as runes. Callers must not modify
// the returned slice.
func (p *Parser) CurrentLine() []rune { return p.currentLine }

// LineNumber returns the 1-based number of the current line.
func (p *Parser) LineNumber() int { return p.lineNumber }

// Errorf builds a ParseError anchored at the current line and the given
// position.
func (p *Parser) Errorf(pos int, format string, args ...interface{}) error {
	return newParseError(p.lineNumber, pos, format, args...)
}

// ParseNumber parses a number at startPos with the given sign (-1 or 1).
func (p *Parser) ParseNumber(startPos, sign int) (value.Value, int, error) {
	return p.parseNumberValue(startPos, sign)
}
