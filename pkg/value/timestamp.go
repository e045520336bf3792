package value

import (
	"strconv"
	"strings"
	"time"
)

// Timestamp is an absolute instant expressed as Unix seconds plus a
// nanosecond remainder, distinct from DateTime's variably-grained civil
// representation (spec.md §3: "Timestamp: absolute point in time").
type Timestamp struct {
	sec  int64
	nsec int64
}

// NewTimestampFromUnix builds a Timestamp from Unix seconds and a
// nanosecond remainder in [0, 1e9).
func NewTimestampFromUnix(sec, nsec int64) Timestamp {
	return Timestamp{sec: sec, nsec: nsec}
}

// NewTimestampFromTime builds a Timestamp from a standard time.Time.
func NewTimestampFromTime(t time.Time) Timestamp {
	return Timestamp{sec: t.Unix(), nsec: int64(t.Nanosecond())}
}

// Unix returns the number of seconds elapsed since January 1, 1970 UTC.
func (t Timestamp) Unix() int64 { return t.sec }

// Nanosecond returns the nanosecond remainder, in [0, 1e9).
func (t Timestamp) Nanosecond() int64 { return t.nsec }

// Time returns the equivalent standard time.Time, in UTC.
func (t Timestamp) Time() time.Time {
	return time.Unix(t.sec, t.nsec).UTC()
}

// Equal reports whether two Timestamps denote the same instant.
func (t Timestamp) Equal(other Timestamp) bool {
	return t.sec == other.sec && t.nsec == other.nsec
}

// String renders the timestamp as Unix seconds, with a fractional part
// when the nanosecond remainder is nonzero.
func (t Timestamp) String() string {
	if t.nsec == 0 {
		return strconv.FormatInt(t.sec, 10)
	}
	frac := strconv.FormatInt(t.nsec, 10)
	for len(frac) < 9 {
		frac = "0" + frac
	}
	frac = strings.TrimRight(frac, "0")
	return strconv.FormatInt(t.sec, 10) + "." + frac
}

// ParseTimestamp parses a Unix timestamp, an integer optionally followed
// by a '.' and a fractional-second part, at pos in line. This backs the
// ":timestamp:" conversion specifier (spec.md §4.9).
func ParseTimestamp(line []rune, pos int, terminators []rune) (Timestamp, int, error) {
	start := pos
	n := len(line)

	sign := int64(1)
	if pos < n && (line[pos] == '+' || line[pos] == '-') {
		if line[pos] == '-' {
			sign = -1
		}
		pos++
	}

	var secDigits strings.Builder
	for pos < n && isDigit(line[pos]) {
		secDigits.WriteRune(line[pos])
		pos++
	}
	if secDigits.Len() == 0 {
		return Timestamp{}, start, &NumberError{Reason: "bad timestamp"}
	}

	var nsec int64
	if pos < n && line[pos] == '.' && pos+1 < n && isDigit(line[pos+1]) {
		pos++
		var fracDigits strings.Builder
		for pos < n && isDigit(line[pos]) {
			fracDigits.WriteRune(line[pos])
			pos++
		}
		frac := fracDigits.String()
		for len(frac) < 9 {
			frac += "0"
		}
		frac = frac[:9]
		v, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return Timestamp{}, start, &NumberError{Reason: "bad timestamp"}
		}
		nsec = v
	}

	var next rune
	hasNext := pos < n
	if hasNext {
		next = line[pos]
	}
	if !isTerminator(next, hasNext, terminators) {
		return Timestamp{}, start, &NumberError{Reason: "bad timestamp"}
	}

	sec, err := strconv.ParseInt(secDigits.String(), 10, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return Timestamp{}, start, &NumberError{Overflow: true, Reason: "timestamp overflow"}
		}
		return Timestamp{}, start, &NumberError{Reason: "bad timestamp"}
	}
	return Timestamp{sec: sign * sec, nsec: nsec}, pos, nil
}
