package value

import (
	"time"
)

// Grain represents the granularity of a DateTime: how many of its
// components are actually set.
type Grain uint

// Grain constants, from unset zero, down to second.
const (
	GrainNone Grain = iota
	GrainYear
	GrainMonth
	GrainDay
	GrainHour
	GrainMinute
	GrainSecond
)

// DateTime is a variably-grained civil time: a year, month, day, hour,
// minute or second, optionally with a time zone once grain reaches
// GrainHour. Adapted from the teacher's internal/isotime.GrainedTime.
type DateTime struct {
	grain  Grain
	year   int
	month  time.Month
	day    int
	hour   int
	minute int
	second int
	loc    *time.Location
}

// Grain returns the receiver's granularity.
func (t DateTime) Grain() Grain { return t.grain }

// Year returns the year component, or zero if ungrained.
func (t DateTime) Year() int {
	if t.grain >= GrainYear {
		return t.year
	}
	return 0
}

// Month returns the month component, or zero if not set.
func (t DateTime) Month() time.Month {
	if t.grain >= GrainMonth {
		return t.month
	}
	return 0
}

// Day returns the day component, or zero if not set.
func (t DateTime) Day() int {
	if t.grain >= GrainDay {
		return t.day
	}
	return 0
}

// Hour returns the hour component, or zero if not set.
func (t DateTime) Hour() int {
	if t.grain >= GrainHour {
		return t.hour
	}
	return 0
}

// Minute returns the minute component, or zero if not set.
func (t DateTime) Minute() int {
	if t.grain >= GrainMinute {
		return t.minute
	}
	return 0
}

// Second returns the second component, or zero if not set.
func (t DateTime) Second() int {
	if t.grain >= GrainSecond {
		return t.second
	}
	return 0
}

// Location returns the receiver's time zone, which may be nil if unset.
func (t DateTime) Location() *time.Location { return t.loc }

// Time returns the standard time.Time for the first instant in the
// receiver's range.
func (t DateTime) Time() time.Time {
	loc := t.loc
	if loc == nil {
		loc = time.UTC
	}
	switch t.grain {
	case GrainYear:
		return time.Date(t.year, 1, 1, 0, 0, 0, 0, loc)
	case GrainMonth:
		return time.Date(t.year, t.month, 1, 0, 0, 0, 0, loc)
	case GrainDay:
		return time.Date(t.year, t.month, t.day, 0, 0, 0, 0, loc)
	case GrainHour:
		return time.Date(t.year, t.month, t.day, t.hour, 0, 0, 0, loc)
	case GrainMinute:
		return time.Date(t.year, t.month, t.day, t.hour, t.minute, 0, 0, loc)
	case GrainSecond:
		return time.Date(t.year, t.month, t.day, t.hour, t.minute, t.second, 0, loc)
	}
	return time.Time{}
}

// Equal reports whether two DateTimes have the same granularity and equal
// components up to that grain.
func (t DateTime) Equal(other DateTime) bool {
	if other.grain != t.grain {
		return false
	}
	switch t.grain {
	case GrainSecond:
		if other.second != t.second {
			return false
		}
		fallthrough
	case GrainMinute:
		if other.minute != t.minute {
			return false
		}
		fallthrough
	case GrainHour:
		if other.hour != t.hour {
			return false
		}
		fallthrough
	case GrainDay:
		if other.day != t.day {
			return false
		}
		fallthrough
	case GrainMonth:
		if other.month != t.month {
			return false
		}
		fallthrough
	case GrainYear:
		if other.year != t.year {
			return false
		}
	}
	return true
}

// String renders an ISO-8601 string covering only the set components.
func (t DateTime) String() string {
	tt := t.Time()
	zone := ""
	if t.loc != nil {
		zone = "Z0700"
	}
	switch t.grain {
	case GrainYear:
		return tt.Format("2006")
	case GrainMonth:
		return tt.Format("2006-01")
	case GrainDay:
		return tt.Format("2006-01-02")
	case GrainHour:
		return tt.Format("2006-01-02T15" + zone)
	case GrainMinute:
		return tt.Format("2006-01-02T15:04" + zone)
	case GrainSecond:
		return tt.Format("2006-01-02T15:04:05" + zone)
	}
	return ""
}

// ParseDateTime parses an ISO-8601-flavored date/time at pos in line:
// YYYY[-MM[-DD[THH[:MM[:SS]]][Z|±HH:MM]]]. It stops at the first
// terminator rune, whitespace, or end of line, exactly like
// myaw_parser.c's parse_datetime/_pw_parse_datetime contract
// (spec.md §4.6): the only allowed terminator is '#'.
func ParseDateTime(line []rune, pos int, terminators []rune) (DateTime, int, error) {
	start := pos
	n := len(line)

	readDigits := func(max int) (int, int, bool) {
		v, count := 0, 0
		for count < max && pos < n && isDigit(line[pos]) {
			v = v*10 + int(line[pos]-'0')
			pos++
			count++
		}
		return v, count, count > 0
	}

	year, yn, ok := readDigits(4)
	if !ok || yn != 4 {
		return DateTime{}, start, &NumberError{Reason: "bad date/time"}
	}
	t := DateTime{grain: GrainYear, year: year}

	consumeSep := func(seps ...rune) bool {
		if pos < n {
			for _, s := range seps {
				if line[pos] == s {
					pos++
					return true
				}
			}
		}
		return false
	}

	if consumeSep('-') {
		month, mn, ok := readDigits(2)
		if !ok || mn != 2 || month < 1 || month > 12 {
			return DateTime{}, start, &NumberError{Reason: "bad date/time"}
		}
		t.grain = GrainMonth
		t.month = time.Month(month)

		if consumeSep('-') {
			day, dn, ok := readDigits(2)
			if !ok || dn != 2 || day < 1 || day > 31 {
				return DateTime{}, start, &NumberError{Reason: "bad date/time"}
			}
			t.grain = GrainDay
			t.day = day

			// a space separates date and time only when a digit follows it
			spaceSep := pos+1 < n && line[pos] == ' ' && isDigit(line[pos+1])
			if spaceSep {
				pos++
			}
			if spaceSep || consumeSep('T', 't') {
				hour, hn, ok := readDigits(2)
				if !ok || hn != 2 || hour > 23 {
					return DateTime{}, start, &NumberError{Reason: "bad date/time"}
				}
				t.grain = GrainHour
				t.hour = hour

				if consumeSep(':') {
					minute, mn, ok := readDigits(2)
					if !ok || mn != 2 || minute > 59 {
						return DateTime{}, start, &NumberError{Reason: "bad date/time"}
					}
					t.grain = GrainMinute
					t.minute = minute

					if consumeSep(':') {
						second, sn, ok := readDigits(2)
						if !ok || sn != 2 || second > 60 {
							return DateTime{}, start, &NumberError{Reason: "bad date/time"}
						}
						t.grain = GrainSecond
						t.second = second
					}
				}

				// time zone: Z, or ±HH:MM
				if pos < n && (line[pos] == 'Z' || line[pos] == 'z') {
					pos++
					t.loc = time.UTC
				} else if pos < n && (line[pos] == '+' || line[pos] == '-') {
					sign := line[pos]
					save := pos
					pos++
					oh, ohn, ok1 := readDigits(2)
					ok2 := consumeSep(':')
					om, omn, ok3 := readDigits(2)
					if ok1 && ohn == 2 && ok2 && ok3 && omn == 2 {
						secs := oh*3600 + om*60
						if sign == '-' {
							secs = -secs
						}
						t.loc = time.FixedZone("", secs)
					} else {
						pos = save
					}
				}
			}
		}
	}

	var next rune
	hasNext := pos < n
	if hasNext {
		next = line[pos]
	}
	if !isTerminator(next, hasNext, terminators) {
		return DateTime{}, start, &NumberError{Reason: "bad date/time"}
	}
	return t, pos, nil
}
