package mw

import "github.com/petbrain/myaw/pkg/value"

// allowedDatetimeTerminators is the terminator set parse_datetime and
// parse_timestamp pass to the value library in myaw_parser.c: just the
// comment character, since these values are always parsed to end of line.
var allowedDatetimeTerminators = []rune{commentChar}

// numberTerminators is the terminator set value-position numbers are
// allowed to stop at. Grounded on myaw_parser.c's number_terminators.
var numberTerminators = []rune{commentChar, ':'}

// parseDatetimeValue parses a datetime value starting at the current
// block's start position. Grounded on myaw_parser.c's parse_datetime.
func parseDatetimeValue(p *Parser) (value.Value, error) {
	const badDatetime = "Bad date/time"
	startPos := p.startPosition()
	dt, endPos, err := value.ParseDateTime(p.currentLine, startPos, allowedDatetimeTerminators)
	if err != nil {
		return value.Null(), newParseError(p.lineNumber, startPos, badDatetime)
	}
	if p.commentOrEndOfLine(endPos) {
		return value.NewDateTime(dt), nil
	}
	return value.Null(), newParseError(p.lineNumber, startPos, badDatetime)
}

// parseTimestampValue parses a timestamp value starting at the current
// block's start position. Grounded on myaw_parser.c's parse_timestamp.
func parseTimestampValue(p *Parser) (value.Value, error) {
	const badTimestamp = "Bad timestamp"
	startPos := p.startPosition()
	ts, endPos, err := value.ParseTimestamp(p.currentLine, startPos, allowedDatetimeTerminators)
	if err != nil {
		if ne, ok := err.(*value.NumberError); ok && ne.Overflow {
			return value.Null(), newParseError(p.lineNumber, startPos, "Numeric overflow")
		}
		return value.Null(), newParseError(p.lineNumber, startPos, badTimestamp)
	}
	if p.commentOrEndOfLine(endPos) {
		return value.NewTimestamp(ts), nil
	}
	return value.Null(), newParseError(p.lineNumber, endPos, badTimestamp)
}

// parseNumberValue parses a number at startPos with the given sign (-1 or
// 1), translating value-library errors to ParseErrors. Grounded on
// myaw_parser.c's _mw_parse_number.
func (p *Parser) parseNumberValue(startPos, sign int) (value.Value, int, error) {
	v, endPos, err := value.ParseNumber(p.currentLine, startPos, sign, numberTerminators)
	if err != nil {
		if ne, ok := err.(*value.NumberError); ok && ne.Overflow {
			return value.Null(), endPos, newParseError(p.lineNumber, startPos, "Numeric overflow")
		}
		return value.Null(), endPos, newParseError(p.lineNumber, startPos, "Bad number")
	}
	return v, endPos, nil
}
