package mw

import (
	"strings"

	"github.com/petbrain/myaw/pkg/value"
)

// dedent returns lines with the minimum common leading-space run shared by
// every non-blank line stripped from each; the input slice is not modified.
// Blank lines are left alone.
// Grounded on myaw_parser.c's calls to pw_array_dedent ahead of literal
// and folded string assembly.
func dedent(lines []string) []string {
	min := -1
	for _, line := range lines {
		if line == "" {
			continue
		}
		n := 0
		for n < len(line) && line[n] == ' ' {
			n++
		}
		if n == len(line) {
			continue
		}
		if min < 0 || n < min {
			min = n
		}
	}
	if min <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= min {
			out[i] = line[min:]
		} else {
			out[i] = ""
		}
	}
	return out
}

// parseRawValue returns the current block's lines joined with '\n',
// without dedenting or folding. Grounded on myaw_parser.c's
// parse_raw_value.
func parseRawValue(p *Parser) (value.Value, error) {
	block, err := p.readBlock()
	if err != nil {
		return value.Null(), err
	}
	return value.NewString(joinWithTrailingBreak(block)), nil
}

// parseLiteralString dedents the current block, drops blank trailing
// lines, and joins what remains with '\n'. Grounded on myaw_parser.c's
// parse_literal_string.
func parseLiteralString(p *Parser) (value.Value, error) {
	block, err := p.readBlock()
	if err != nil {
		return value.Null(), err
	}
	block = dedent(block)
	for len(block) > 0 && block[len(block)-1] == "" {
		block = block[:len(block)-1]
	}
	return value.NewString(joinWithTrailingBreak(block)), nil
}

// joinWithTrailingBreak joins lines with '\n', and appends one more
// trailing '\n' when there is more than one line, matching the original's
// "append one empty line for ending line break" behavior.
func joinWithTrailingBreak(lines []string) string {
	if len(lines) > 1 {
		lines = append(append([]string(nil), lines...), "")
	}
	return strings.Join(lines, "\n")
}

// foldLines dedents lines, drops leading/trailing blank lines, and joins
// what remains: a blank line becomes a line feed in the output, and two
// non-blank lines are separated by a single space unless the following
// line already starts with whitespace. If quote is nonzero, each
// remaining line is unescaped up to its own length, using lineNumbers[i]
// for diagnostics. Grounded on myaw_parser.c's fold_lines.
func (p *Parser) foldLines(lines []string, quote rune, lineNumbers []int) (string, error) {
	lines = dedent(lines)

	start := 0
	for start < len(lines) && lines[start] == "" {
		start++
	}
	if start == len(lines) {
		return "", nil
	}
	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}
	if end == 0 {
		return "", nil
	}

	var b strings.Builder
	prevLF := false
	for i := start; i < end; i++ {
		line := lines[i]
		if i > start {
			if line == "" {
				b.WriteByte('\n')
				prevLF = true
				continue
			}
			if prevLF {
				prevLF = false
			} else if len(line) > 0 && isSpace(rune(line[0])) {
				// line already starts with space, no separator needed
			} else {
				b.WriteByte(' ')
			}
		}
		if quote != 0 {
			runes := []rune(line)
			lineNum := 0
			if i < len(lineNumbers) {
				lineNum = lineNumbers[i]
			}
			unescaped, err := p.unescapeLine(runes, lineNum, quote, 0, len(runes))
			if err != nil {
				return "", err
			}
			b.WriteString(unescaped)
		} else {
			b.WriteString(line)
		}
	}
	return b.String(), nil
}

// parseFoldedString reads the current block and folds it with no
// unescaping. Grounded on myaw_parser.c's parse_folded_string.
func parseFoldedString(p *Parser) (value.Value, error) {
	block, err := p.readBlock()
	if err != nil {
		return value.Null(), err
	}
	s, err := p.foldLines(block, 0, nil)
	if err != nil {
		return value.Null(), err
	}
	return value.NewString(s), nil
}

// parseQuotedString parses a quoted string starting at openingQuotePos in
// the current line, returning the unescaped value and the position just
// past the closing quote. A string whose closing quote isn't on the
// opening line becomes a nested block read line by line until a line
// holding an unescaped closing quote; if the block ends first, the next
// line closes the string only when it starts with the quote rune at the
// opening quote's column.
// Grounded on myaw_parser.c's parse_quoted_string.
func (p *Parser) parseQuotedString(openingQuotePos int) (value.Value, int, error) {
	quote, _ := p.charAt(openingQuotePos)

	if closingPos, found := findClosingQuote(p.currentLine, quote, openingQuotePos+1); found {
		s, err := p.unescapeLine(p.currentLine, p.lineNumber, quote, openingQuotePos+1, closingPos)
		if err != nil {
			return value.Null(), 0, err
		}
		return value.NewString(s), closingPos + 1, nil
	}

	blockIndent := openingQuotePos + 1
	savedBlockIndent := p.blockIndent
	p.blockIndent = blockIndent
	p.blockLevel++

	var lineBuf []string
	var lineNumbers []int
	endPos := 0
	closingQuoteDetected := false

	for {
		lineNumbers = append(lineNumbers, p.lineNumber)

		if closingPos, found := findClosingQuote(p.currentLine, quote, blockIndent); found {
			final := ""
			if blockIndent <= len(p.currentLine) && closingPos <= len(p.currentLine) {
				final = string(rtrimSpace(p.currentLine[blockIndent:closingPos]))
			}
			lineBuf = append(lineBuf, final)
			endPos = closingPos + 1
			closingQuoteDetected = true
			break
		}
		rest := ""
		if blockIndent <= len(p.currentLine) {
			rest = string(p.currentLine[blockIndent:])
		}
		lineBuf = append(lineBuf, rest)

		err := p.nextBlockLine()
		if isEndOfBlock(err) {
			break
		}
		if err != nil {
			p.blockIndent = savedBlockIndent
			p.blockLevel--
			return value.Null(), 0, err
		}
	}

	p.blockIndent = savedBlockIndent
	p.blockLevel--

	if !closingQuoteDetected {
		const unterminated = "String has no closing quote"
		err := p.nextBlockLine()
		if isEndOfBlock(err) {
			return value.Null(), 0, newParseError(p.lineNumber, p.currentIndent, unterminated)
		}
		r, ok := p.charAt(p.currentIndent)
		if p.currentIndent == openingQuotePos && ok && r == quote {
			endPos = openingQuotePos + 1
		} else {
			return value.Null(), 0, newParseError(p.lineNumber, p.currentIndent, unterminated)
		}
	}

	s, err := p.foldLines(lineBuf, quote, lineNumbers)
	if err != nil {
		return value.Null(), 0, err
	}
	return value.NewString(s), endPos, nil
}
