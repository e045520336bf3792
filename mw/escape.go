package mw

import "strings"

// findClosingQuote searches line for quote starting at startPos, skipping
// escaped occurrences, and returns its position and whether one was found.
//
// REDESIGNED relative to myaw_parser.c's _mw_find_closing_quote, which
// treats a quote as escaped whenever it is immediately preceded by a
// single backslash — so "\\" (an escaped backslash followed by an
// unescaped quote) is misread as an escaped quote. This version counts
// the run of backslashes immediately before the candidate quote and
// treats it as escaped only when that count is odd, which is what the
// escape processor in unescapeLine actually implements.
func findClosingQuote(line []rune, quote rune, startPos int) (int, bool) {
	pos := startPos
	for {
		idx := indexRune(line, quote, pos)
		if idx < 0 {
			return 0, false
		}
		if trailingBackslashes(line, idx)%2 == 1 {
			pos = idx + 1
			continue
		}
		return idx, true
	}
}

func indexRune(line []rune, r rune, from int) int {
	for i := from; i < len(line); i++ {
		if line[i] == r {
			return i
		}
	}
	return -1
}

func trailingBackslashes(line []rune, pos int) int {
	n := 0
	for i := pos - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}
	return n
}

// unescapeLine processes escape sequences in line[startPos:endPos],
// stopping early at an unescaped quote rune if quote is nonzero. Grounded
// on myaw_parser.c's _mw_unescape_line, including its exact escape table
// and its "preserve" handling of \o (error only if zero octal digits were
// consumed; 1-2 digits followed by end-of-range are accepted silently).
func (p *Parser) unescapeLine(line []rune, lineNumber int, quote rune, startPos, endPos int) (string, error) {
	var b strings.Builder
	pos := startPos
	for pos < endPos {
		chr := line[pos]
		if quote != 0 && chr == quote {
			break
		}
		if chr != '\\' {
			b.WriteRune(chr)
			pos++
			continue
		}
		pos++
		if pos >= endPos {
			b.WriteRune('\\')
			break
		}
		chr = line[pos]
		switch chr {
		case '\'', '"', '?', '\\':
			b.WriteRune(chr)
		case 'a':
			b.WriteRune(0x07)
		case 'b':
			b.WriteRune(0x08)
		case 'f':
			b.WriteRune(0x0c)
		case 'n':
			b.WriteRune(0x0a)
		case 'r':
			b.WriteRune(0x0d)
		case 't':
			b.WriteRune(0x09)
		case 'v':
			b.WriteRune(0x0b)
		case 'o':
			var v rune
			for i := 0; i < 3; i++ {
				pos++
				if pos >= endPos {
					if i == 0 {
						return "", newParseError(lineNumber, pos, "Incomplete octal value")
					}
					break
				}
				c := line[pos]
				if c < '0' || c > '7' {
					return "", newParseError(lineNumber, pos, "Bad octal value")
				}
				v = v<<3 + (c - '0')
			}
			b.WriteRune(v)
		case 'x':
			v, newPos, err := readHexEscape(line, pos, endPos, 2, lineNumber)
			if err != nil {
				return "", err
			}
			pos = newPos
			b.WriteRune(v)
		case 'u':
			v, newPos, err := readHexEscape(line, pos, endPos, 4, lineNumber)
			if err != nil {
				return "", err
			}
			pos = newPos
			b.WriteRune(v)
		case 'U':
			v, newPos, err := readHexEscape(line, pos, endPos, 8, lineNumber)
			if err != nil {
				return "", err
			}
			pos = newPos
			b.WriteRune(v)
		default:
			b.WriteRune('\\')
			b.WriteRune(chr)
		}
		pos++
	}
	return b.String(), nil
}

// readHexEscape reads exactly hexlen hex digits starting right after pos
// (which indexes the 'x'/'u'/'U' introducer) and returns the decoded rune
// along with the position of its last digit.
func readHexEscape(line []rune, pos, endPos, hexlen, lineNumber int) (rune, int, error) {
	var v rune
	for i := 0; i < hexlen; i++ {
		pos++
		if pos >= endPos {
			return 0, pos, newParseError(lineNumber, pos, "Incomplete hexadecimal value")
		}
		c := line[pos]
		switch {
		case '0' <= c && c <= '9':
			v = v<<4 + (c - '0')
		case 'a' <= c && c <= 'f':
			v = v<<4 + (c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			v = v<<4 + (c - 'A' + 10)
		default:
			return 0, pos, newParseError(lineNumber, pos, "Bad hexadecimal value")
		}
	}
	return v, pos, nil
}
