package mw

import (
	"github.com/petbrain/myaw/internal/lines"
	"github.com/petbrain/myaw/pkg/value"
)

// jsonNumberTerminators is the terminator set for numbers inside an
// embedded JSON value: in addition to comment/colon, a number may also be
// immediately followed by a comma or closing bracket. Grounded on
// myaw_json.c's number_terminators.
var jsonNumberTerminators = []rune{commentChar, ':', ',', '}', ']'}

// skipSpacesJSON skips whitespace and comments ahead of a JSON structural
// element, reading further block lines as needed, and returns the first
// significant rune and its position. Grounded on myaw_json.c's
// skip_spaces.
func (p *Parser) skipSpacesJSON(pos int) (rune, int, error) {
	for {
		pos = p.skipSpaces(pos)
		if !p.endOfLine(pos) {
			chr, _ := p.charAt(pos)
			if chr != commentChar {
				return chr, pos, nil
			}
		}
		err := p.nextBlockLine()
		if isEndOfBlock(err) {
			return 0, pos, newParseError(p.lineNumber, p.currentIndent, "Unexpected end of block")
		}
		if err != nil {
			return 0, pos, err
		}
		pos = p.currentIndent
	}
}

// parseNumberJSON parses a number at startPos, which points to the sign
// or first digit. Grounded on myaw_json.c's parse_number.
func (p *Parser) parseNumberJSON(startPos int) (value.Value, int, error) {
	sign := 1
	chr, _ := p.charAt(startPos)
	switch chr {
	case '+':
		startPos++
	case '-':
		sign = -1
		startPos++
	}
	v, endPos, err := value.ParseNumber(p.currentLine, startPos, sign, jsonNumberTerminators)
	if err != nil {
		if ne, ok := err.(*value.NumberError); ok && ne.Overflow {
			return value.Null(), endPos, newParseError(p.lineNumber, startPos, "Numeric overflow")
		}
		return value.Null(), endPos, newParseError(p.lineNumber, startPos, "Bad number")
	}
	return v, endPos, nil
}

// parseStringJSON parses a double-quoted JSON string starting at
// startPos, which points to the opening quote. Grounded on
// myaw_json.c's parse_string.
func (p *Parser) parseStringJSON(startPos int) (value.Value, int, error) {
	closingPos, found := findClosingQuote(p.currentLine, '"', startPos+1)
	if !found {
		return value.Null(), 0, newParseError(p.lineNumber, p.currentIndent, "String has no closing quote")
	}
	s, err := p.unescapeLine(p.currentLine, p.lineNumber, '"', startPos+1, closingPos)
	if err != nil {
		return value.Null(), 0, err
	}
	return value.NewString(s), closingPos + 1, nil
}

// parseArrayJSON parses a JSON array starting at startPos, which points
// just past the opening bracket. Grounded on myaw_json.c's parse_array.
func (p *Parser) parseArrayJSON(startPos int) (value.Value, int, error) {
	p.jsonDepth++
	defer func() { p.jsonDepth-- }()

	list := &value.List{}

	chr, pos, err := p.skipSpacesJSON(startPos)
	if err != nil {
		return value.Null(), 0, err
	}
	if chr == ']' {
		return value.NewList(list), pos + 1, nil
	}

	item, pos, err := p.parseJSONValue(pos)
	if err != nil {
		return value.Null(), 0, err
	}
	list.Append(item)

	for {
		chr, pos, err = p.skipSpacesJSON(pos)
		if err != nil {
			return value.Null(), 0, err
		}
		if chr == ']' {
			return value.NewList(list), pos + 1, nil
		}
		if chr != ',' {
			return value.Null(), 0, newParseError(p.lineNumber, p.currentIndent,
				"Array items must be separated with comma")
		}
		item, pos, err = p.parseJSONValue(pos + 1)
		if err != nil {
			return value.Null(), 0, err
		}
		list.Append(item)
	}
}

// parseObjectMemberJSON parses one "key": value pair starting at pos and
// sets it on m, returning the position just past the value. Grounded on
// myaw_json.c's parse_object_member.
func (p *Parser) parseObjectMemberJSON(pos int, m *value.Map) (int, error) {
	_, pos, err := p.skipSpacesJSON(pos)
	if err != nil {
		return 0, err
	}
	key, pos, err := p.parseStringJSON(pos)
	if err != nil {
		return 0, err
	}

	chr, pos, err := p.skipSpacesJSON(pos)
	if err != nil {
		return 0, err
	}
	if chr != ':' {
		return 0, newParseError(p.lineNumber, pos, "Values must be separated from keys with colon")
	}
	pos++

	val, pos, err := p.parseJSONValue(pos)
	if err != nil {
		return 0, err
	}
	keyStr, _ := key.AsString()
	m.Set(keyStr, val)
	return pos, nil
}

// parseObjectJSON parses a JSON object starting at startPos, which points
// just past the opening brace. Grounded on myaw_json.c's parse_object.
func (p *Parser) parseObjectJSON(startPos int) (value.Value, int, error) {
	p.jsonDepth++
	defer func() { p.jsonDepth-- }()

	m := &value.Map{}

	chr, pos, err := p.skipSpacesJSON(startPos)
	if err != nil {
		return value.Null(), 0, err
	}
	if chr == '}' {
		return value.NewMap(m), pos + 1, nil
	}

	pos, err = p.parseObjectMemberJSON(pos, m)
	if err != nil {
		return value.Null(), 0, err
	}

	for {
		chr, pos, err = p.skipSpacesJSON(pos)
		if err != nil {
			return value.Null(), 0, err
		}
		if chr == '}' {
			return value.NewMap(m), pos + 1, nil
		}
		if chr != ',' {
			return value.Null(), 0, newParseError(p.lineNumber, p.currentIndent,
				"Object members must be separated with comma")
		}
		pos++
		pos, err = p.parseObjectMemberJSON(pos, m)
		if err != nil {
			return value.Null(), 0, err
		}
	}
}

// parseJSONValue parses one JSON value starting at startPos, dispatching
// on its first significant rune. Grounded on myaw_json.c's
// _mw_parse_json_value.
func (p *Parser) parseJSONValue(startPos int) (value.Value, int, error) {
	if p.jsonDepth >= maxRecursionDepth {
		return value.Null(), 0, newParseError(p.lineNumber, p.currentIndent, "Maximum recursion depth exceeded")
	}

	chr, pos, err := p.skipSpacesJSON(startPos)
	if err != nil {
		return value.Null(), 0, err
	}

	switch {
	case chr == '[':
		return p.parseArrayJSON(pos + 1)
	case chr == '{':
		return p.parseObjectJSON(pos + 1)
	case chr == '"':
		return p.parseStringJSON(pos)
	case chr == '+' || chr == '-' || isDecDigit(chr):
		return p.parseNumberJSON(pos)
	}
	if p.substringEq(pos, "null") {
		return value.Null(), pos + 4, nil
	}
	if p.substringEq(pos, "true") {
		return value.NewBool(true), pos + 4, nil
	}
	if p.substringEq(pos, "false") {
		return value.NewBool(false), pos + 5, nil
	}
	return value.Null(), 0, newParseError(p.lineNumber, pos, "Unexpected character")
}

// jsonParserFunc backs the ":json:" conversion specifier: it parses one
// embedded JSON value from the current block and rejects any trailing
// data in that block. Grounded on myaw_json.c's _mw_json_parser_func.
func jsonParserFunc(p *Parser) (value.Value, error) {
	val, endPos, err := p.parseJSONValue(p.startPosition())
	if err != nil {
		return value.Null(), err
	}

	const garbage = "Garbage after JSON value"
	if p.commentOrEndOfLine(endPos) {
		err := p.nextBlockLine()
		if !isEndOfBlock(err) {
			if err != nil {
				return value.Null(), err
			}
			return value.Null(), newParseError(p.lineNumber, p.currentIndent, garbage)
		}
	} else {
		return value.Null(), newParseError(p.lineNumber, p.currentIndent, garbage)
	}
	return val, nil
}

// ParseJSON parses markup read from src as pure JSON, ignoring MW's
// block/indentation syntax entirely except for its comment convention.
// Grounded on myaw_json.c's mw_parse_json.
func ParseJSON(src lines.Source) (value.Value, error) {
	p := NewParser(src)

	if err := p.nextBlockLine(); err != nil {
		if isEndOfBlock(err) {
			return value.Null(), newParseError(p.lineNumber, p.currentIndent, "Unexpected end of input")
		}
		return value.Null(), err
	}

	val, endPos, err := p.parseJSONValue(0)
	if err != nil {
		return value.Null(), err
	}

	const extraData = "Extra data after parsed value"
	if !p.commentOrEndOfLine(endPos) {
		return value.Null(), newParseError(p.lineNumber, p.currentIndent, extraData)
	}

	err = p.nextBlockLine()
	if !p.eof {
		if err != nil && !isEndOfBlock(err) {
			return value.Null(), err
		}
		return value.Null(), newParseError(p.lineNumber, p.currentIndent, extraData)
	}
	return val, nil
}
