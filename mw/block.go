package mw

import "github.com/petbrain/myaw/pkg/value"

// readLine reads the next physical line into p.currentLine, trims
// trailing whitespace, and measures its indentation. Grounded on
// myaw_parser.c's read_line.
func (p *Parser) readLine() (bool, error) {
	line, ok, err := p.src.ReadLine()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	line = rtrimSpace(line)
	p.currentLine = line
	p.currentIndent = p.skipSpaces(0)
	p.lineNumber = p.src.LineNumber()
	return true, nil
}

func rtrimSpace(line []rune) []rune {
	end := len(line)
	for end > 0 && isSpace(line[end-1]) {
		end--
	}
	return line[:end]
}

// isCommentLine reports whether the current line's first non-space rune
// is the comment character. Grounded on myaw_parser.c's is_comment_line.
func (p *Parser) isCommentLine() bool {
	r, ok := p.charAt(p.currentIndent)
	return ok && r == commentChar
}

// nextBlockLine reads the next line belonging to the current block,
// skipping comments and blank lines while skipComments is set, and
// signals endOfBlock once a line's indentation drops below blockIndent.
// Grounded 1:1 on myaw_parser.c's _mw_read_block_line.
func (p *Parser) nextBlockLine() error {
	if p.eof {
		if p.blockLevel > 0 {
			return endOfBlock
		}
		return errEOF
	}
	for {
		ok, err := p.readLine()
		if err != nil {
			return err
		}
		if !ok {
			p.eof = true
			p.currentLine = nil
			return endOfBlock
		}

		if p.skipComments {
			if len(p.currentLine) == 0 {
				continue
			}
			if p.isCommentLine() {
				continue
			}
			p.skipComments = false
		}
		if len(p.currentLine) == 0 {
			return nil
		}
		if p.currentIndent >= p.blockIndent {
			return nil
		}
		// unindent detected
		if p.isCommentLine() {
			continue
		}
		p.src.UnreadLine()
		p.currentLine = nil
		return endOfBlock
	}
}

// readBlock collects every remaining line of the current block, each
// with blockIndent columns stripped from the front. Grounded on
// myaw_parser.c's _mw_read_block.
func (p *Parser) readBlock() ([]string, error) {
	var lines []string
	for {
		line := p.currentLine
		if p.blockIndent <= len(line) {
			line = line[p.blockIndent:]
		} else {
			line = nil
		}
		lines = append(lines, string(line))

		err := p.nextBlockLine()
		if isEndOfBlock(err) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// parseNestedBlock temporarily sets blockIndent to blockPos and invokes
// parserFunc, restoring the previous indent and recursion depth
// afterwards. Grounded on myaw_parser.c's parse_nested_block.
func (p *Parser) parseNestedBlock(blockPos int, parserFunc blockParserFunc) (value.Value, error) {
	if p.blockLevel >= maxRecursionDepth {
		return value.Null(), newParseError(p.lineNumber, p.currentIndent, "Too many nested blocks")
	}

	p.blockLevel++
	savedBlockIndent := p.blockIndent
	p.blockIndent = blockPos

	result, err := parserFunc(p)

	p.blockIndent = savedBlockIndent
	p.blockLevel--

	return result, err
}

// parseNestedBlockFromNextLine reads the next line, sets blockIndent to
// one past the current indent, and invokes parserFunc. Grounded on
// myaw_parser.c's parse_nested_block_from_next_line.
func (p *Parser) parseNestedBlockFromNextLine(parserFunc blockParserFunc) (value.Value, error) {
	p.blockIndent++
	p.skipComments = true
	err := p.nextBlockLine()
	p.blockIndent--

	if isEndOfBlock(err) {
		return value.Null(), newParseError(p.lineNumber, p.currentIndent, "Empty block")
	}
	if err != nil {
		return value.Null(), err
	}

	return p.parseNestedBlock(p.blockIndent+1, parserFunc)
}

// startPosition returns the position of the first non-space rune in the
// current block; the block may start inside currentLine for nested list
// or map values. Grounded on myaw_parser.c's _mw_get_start_position.
func (p *Parser) startPosition() int {
	if p.blockIndent < p.currentIndent {
		return p.currentIndent
	}
	return p.skipSpaces(p.blockIndent)
}

// commentOrEndOfLine reports whether the current line ends at position,
// possibly after trailing spaces, or continues only with a comment.
// Grounded on myaw_parser.c's _mw_comment_or_end_of_line.
func (p *Parser) commentOrEndOfLine(position int) bool {
	position = p.skipSpaces(position)
	if p.endOfLine(position) {
		return true
	}
	r, _ := p.charAt(position)
	return r == commentChar
}
