package mw

import (
	"strings"

	"github.com/petbrain/myaw/pkg/value"
)

// parseConvspec extracts a conversion specifier starting at
// openingColonPos in the current line. ok is false if no conversion
// specifier is present (the colon means something else) or the name
// between colons isn't registered. Grounded on myaw_parser.c's
// parse_convspec.
func (p *Parser) parseConvspec(openingColonPos int) (convspec string, valuePos int, ok bool, err error) {
	startPos := openingColonPos + 1
	closingColonPos := indexRune(p.currentLine, ':', startPos)
	if closingColonPos < 0 {
		return "", 0, false, nil
	}
	if closingColonPos == startPos {
		return "", 0, false, nil
	}
	if !p.isSpaceOrEOLAt(closingColonPos + 1) {
		return "", 0, false, nil
	}
	name := strings.TrimSpace(string(p.currentLine[startPos:closingColonPos]))
	if !p.haveCustomParser(name) {
		return "", 0, false, nil
	}
	return name, closingColonPos + 2, true, nil
}

// isKVSeparator reports whether colonPos is followed by end of line,
// space, or a valid conversion specifier — any of which mark it as a
// key-value separator rather than a plain character in a literal string.
// Grounded on myaw_parser.c's is_kv_separator.
func (p *Parser) isKVSeparator(colonPos int) (isSep bool, convspec string, valuePos int, err error) {
	nextPos := colonPos + 1

	if p.endOfLine(nextPos) {
		return true, "", nextPos, nil
	}
	chr, _ := p.charAt(nextPos)
	if isSpace(chr) {
		valuePos = nextPos + 1
		nextPos = p.skipSpaces(nextPos)
		// the line is r-trimmed, so nextPos cannot be past end of line here
		chr, _ = p.charAt(nextPos)
		if chr != ':' {
			return true, "", valuePos, nil
		}
	} else if chr != ':' {
		return false, "", 0, nil
	}

	convspec, valuePos2, ok, err := p.parseConvspec(nextPos)
	if err != nil {
		return false, "", 0, err
	}
	if ok {
		return true, convspec, valuePos2, nil
	}
	if valuePos > 0 {
		// colon followed by space, then text that is not a conversion specifier
		return true, "", valuePos, nil
	}
	return false, "", 0, nil
}

// checkValueEnd is the shared tail of every scalar branch in parseValue:
// it checks whether val is immediately followed by a key-value separator
// (in which case, unless wantKey, it parses the rest as a map with val as
// the first key) or by end of line/comment. Grounded on myaw_parser.c's
// check_value_end.
func (p *Parser) checkValueEnd(val value.Value, endPos int, wantKey bool) (value.Value, int, string, error) {
	endPos = p.skipSpaces(endPos)
	if p.endOfLine(endPos) {
		if wantKey {
			return value.Null(), 0, "", newParseError(p.lineNumber, endPos, "Map key expected")
		}
		err := p.nextBlockLine()
		if err != nil && !isEndOfBlock(err) {
			return value.Null(), 0, "", err
		}
		return val, 0, "", nil
	}

	chr, _ := p.charAt(endPos)
	if chr == ':' {
		isSep, convspec, valuePos, err := p.isKVSeparator(endPos)
		if err != nil {
			return value.Null(), 0, "", err
		}
		if isSep {
			if wantKey {
				return val, valuePos, convspec, nil
			}
			v, err := p.parseMap(val, convspec, valuePos)
			return v, 0, "", err
		}
		return value.Null(), 0, "", newParseError(p.lineNumber, endPos+1, "Bad character encountered")
	}

	if chr != commentChar {
		return value.Null(), 0, "", newParseError(p.lineNumber, endPos, "Bad character encountered")
	}

	err := p.nextBlockLine()
	if err != nil && !isEndOfBlock(err) {
		return value.Null(), 0, "", err
	}
	return val, 0, "", nil
}

// parseValue parses a value starting at the current block's start
// position. If wantKey is set, the value is expected to be a map key: it
// must end with a key-value separator, and the position just past the
// separator (plus any conversion specifier) is returned instead of being
// consumed into a nested map. Grounded 1:1 on myaw_parser.c's parse_value.
func (p *Parser) parseValue(wantKey bool) (value.Value, int, string, error) {
	startPos := p.startPosition()
	chr, hasChr := p.charAt(startPos)

	if hasChr && chr == ':' {
		if wantKey {
			return value.Null(), 0, "", newParseError(p.lineNumber, startPos,
				"Map key expected and it cannot start with colon")
		}
		convspec, valuePos, ok, err := p.parseConvspec(startPos)
		if err != nil {
			return value.Null(), 0, "", err
		}
		if !ok {
			v, err := parseLiteralString(p)
			return v, 0, "", err
		}
		if p.endOfLine(valuePos) {
			err := p.nextBlockLine()
			if isEndOfBlock(err) {
				return value.Null(), 0, "", newParseError(p.lineNumber, p.currentIndent, "Empty block")
			}
			if err != nil {
				return value.Null(), 0, "", err
			}
			v, err := p.getCustomParser(convspec)(p)
			return v, 0, "", err
		}
		v, err := p.parseNestedBlock(valuePos, p.getCustomParser(convspec))
		return v, 0, "", err
	}

	if hasChr && chr == '-' {
		nextPos := startPos + 1
		nextChr, hasNext := p.charAt(nextPos)
		if hasNext && isDecDigit(nextChr) {
			num, endPos, err := p.parseNumberValue(nextPos, -1)
			if err != nil {
				return value.Null(), 0, "", err
			}
			return p.checkValueEnd(num, endPos, wantKey)
		}
		if p.isSpaceOrEOLAt(nextPos) {
			if wantKey {
				return value.Null(), 0, "", newParseError(p.lineNumber, startPos,
					"Map key expected and it cannot be a list")
			}
			v, err := p.parseList()
			return v, 0, "", err
		}
		return p.parseLiteralStringOrMap(startPos, wantKey)
	}

	if hasChr && (chr == '"' || chr == '\'') {
		startLine := p.lineNumber
		str, endPos, err := p.parseQuotedString(startPos)
		if err != nil {
			return value.Null(), 0, "", err
		}
		endLine := p.lineNumber
		if endLine == startLine {
			return p.checkValueEnd(str, endPos, wantKey)
		}
		if p.commentOrEndOfLine(endPos) {
			return str, 0, "", nil
		}
		return value.Null(), 0, "", newParseError(p.lineNumber, endPos, "Bad character after quoted string")
	}

	if p.substringEq(startPos, "null") {
		return p.checkValueEnd(value.Null(), startPos+4, wantKey)
	}
	if p.substringEq(startPos, "true") {
		return p.checkValueEnd(value.NewBool(true), startPos+4, wantKey)
	}
	if p.substringEq(startPos, "false") {
		return p.checkValueEnd(value.NewBool(false), startPos+5, wantKey)
	}

	if hasChr && chr == '+' {
		nextChr, hasNext := p.charAt(startPos + 1)
		if hasNext && isDecDigit(nextChr) {
			startPos++
			chr = nextChr
		}
	}
	if hasChr && isDecDigit(chr) {
		num, endPos, err := p.parseNumberValue(startPos, 1)
		if err != nil {
			return value.Null(), 0, "", err
		}
		return p.checkValueEnd(num, endPos, wantKey)
	}

	return p.parseLiteralStringOrMap(startPos, wantKey)
}

// parseLiteralStringOrMap scans forward from startPos for a key-value
// separator; if one is found the text before it is a map key and parsing
// continues as a map, otherwise the whole block is a literal string.
// Grounded on the "parse_literal_string_or_map" tail of myaw_parser.c's
// parse_value.
func (p *Parser) parseLiteralStringOrMap(startPos int, wantKey bool) (value.Value, int, string, error) {
	for pos := startPos; ; {
		colonPos := indexRune(p.currentLine, ':', pos)
		if colonPos < 0 {
			break
		}
		isSep, convspec, valuePos, err := p.isKVSeparator(colonPos)
		if err != nil {
			return value.Null(), 0, "", err
		}
		if isSep {
			key := value.NewString(string(rtrimSpace(p.currentLine[startPos:colonPos])))
			if wantKey {
				return key, valuePos, convspec, nil
			}
			v, err := p.parseMap(key, convspec, valuePos)
			return v, 0, "", err
		}
		pos = colonPos + 1
	}

	if wantKey {
		return value.Null(), 0, "", newParseError(p.lineNumber, p.currentIndent, "Not a key")
	}
	v, err := parseLiteralString(p)
	return v, 0, "", err
}

// valueParserFunc adapts parseValue to the blockParserFunc shape used by
// custom conversion specifiers and nested-block calls. Grounded on
// myaw_parser.c's value_parser_func.
func valueParserFunc(p *Parser) (value.Value, error) {
	v, _, _, err := p.parseValue(false)
	return v, err
}

// parseList parses a '-' introduced list, where every item shares the
// indentation of the first hyphen. Grounded on myaw_parser.c's parse_list.
func (p *Parser) parseList() (value.Value, error) {
	list := &value.List{}
	itemIndent := p.startPosition()

	for {
		nextPos := itemIndent + 1
		if !p.isSpaceOrEOLAt(nextPos) {
			return value.Null(), newParseError(p.lineNumber, itemIndent, "Bad list item")
		}

		var item value.Value
		var err error
		if p.commentOrEndOfLine(nextPos) {
			item, err = p.parseNestedBlockFromNextLine(valueParserFunc)
		} else {
			item, err = p.parseNestedBlock(nextPos+1, valueParserFunc)
		}
		if err != nil {
			return value.Null(), err
		}
		list.Append(item)

		err = p.nextBlockLine()
		if isEndOfBlock(err) {
			break
		}
		if err != nil {
			return value.Null(), err
		}
		if p.currentIndent != itemIndent {
			return value.Null(), newParseError(p.lineNumber, p.currentIndent, "Bad indentation of list item")
		}
	}
	return value.NewList(list), nil
}

// mapKeyString renders key as the string a map entry is stored under.
// Scalar keys of any non-collection kind are valid (spec.md §3: "Scalar
// keys in maps are values of any non-collection kind"), matching
// myaw_parser.c's parse_map, which stores whatever pw_value parse_value
// returned via pw_map_update without demanding a string -- so `1: a` and
// `true: a` parse the same as `"1": a` and `"true": a` do.
func mapKeyString(p *Parser, key value.Value, keyIndent int) (string, error) {
	if s, err := key.AsString(); err == nil {
		return s, nil
	}
	switch key.Kind() {
	case value.KindList, value.KindMap:
		return "", newParseError(p.lineNumber, keyIndent, "Map key must be a scalar")
	default:
		return key.String(), nil
	}
}

// parseMap parses the remainder of a map whose first key (already parsed)
// is firstKey, with its value starting at valuePos possibly under
// convspec. Every subsequent key must share firstKey's indentation.
// Grounded on myaw_parser.c's parse_map.
func (p *Parser) parseMap(firstKey value.Value, convspec string, valuePos int) (value.Value, error) {
	m := &value.Map{}
	key := firstKey
	keyIndent := p.startPosition()

	for {
		parserFunc := valueParserFunc
		if convspec != "" {
			parserFunc = p.getCustomParser(convspec)
		}

		var val value.Value
		var err error
		if p.commentOrEndOfLine(valuePos) {
			val, err = p.parseNestedBlockFromNextLine(parserFunc)
		} else {
			val, err = p.parseNestedBlock(valuePos, parserFunc)
		}
		if err != nil {
			return value.Null(), err
		}

		keyStr, err := mapKeyString(p, key, keyIndent)
		if err != nil {
			return value.Null(), err
		}
		m.Set(keyStr, val)

		err = p.nextBlockLine()
		if isEndOfBlock(err) {
			break
		}
		if err != nil {
			return value.Null(), err
		}
		if p.currentIndent != keyIndent {
			return value.Null(), newParseError(p.lineNumber, p.currentIndent, "Bad indentation of map key")
		}

		key, valuePos, convspec, err = p.parseValue(true)
		if err != nil {
			return value.Null(), err
		}
	}
	return value.NewMap(m), nil
}
