// Package value implements the dynamic, tagged value type shared by the MW
// parser: null, booleans, signed/unsigned integers, floats, strings,
// datetimes, timestamps, ordered lists and ordered maps.
package value

import (
	"fmt"
	"strconv"
)

// Kind identifies which field of a Value is meaningful.
type Kind int

// Kind constants for every value the MW grammar can produce.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUnsigned
	KindFloat
	KindString
	KindDateTime
	KindTimestamp
	KindList
	KindMap
	numKinds
)

var kindNames = [numKinds]string{
	"null", "bool", "int", "unsigned", "float", "string",
	"datetime", "timestamp", "list", "map",
}

// String returns the name of the kind, or "<unknown>" if out of range.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "<unknown>"
	}
	return kindNames[k]
}

// Value is a tagged union over the MW data model (spec.md §3). The zero
// Value is Null.
type Value struct {
	kind      Kind
	boolVal   bool
	intVal    int64
	uintVal   uint64
	floatVal  float64
	stringVal string
	timeVal   DateTime
	stampVal  Timestamp
	listVal   *List
	mapVal    *Map
}

// Null returns the null value.
func Null() Value { return Value{} }

// NewBool returns a boolean value.
func NewBool(b bool) Value { return Value{kind: KindBool, boolVal: b} }

// NewInt returns a signed integer value.
func NewInt(n int64) Value { return Value{kind: KindInt, intVal: n} }

// NewUnsigned returns an unsigned integer value.
func NewUnsigned(n uint64) Value { return Value{kind: KindUnsigned, uintVal: n} }

// NewFloat returns a floating point value.
func NewFloat(f float64) Value { return Value{kind: KindFloat, floatVal: f} }

// NewString returns a string value.
func NewString(s string) Value { return Value{kind: KindString, stringVal: s} }

// NewDateTime returns a datetime value.
func NewDateTime(t DateTime) Value { return Value{kind: KindDateTime, timeVal: t} }

// NewTimestamp returns a timestamp value.
func NewTimestamp(t Timestamp) Value { return Value{kind: KindTimestamp, stampVal: t} }

// NewList wraps an existing List.
func NewList(l *List) Value { return Value{kind: KindList, listVal: l} }

// NewMap wraps an existing Map.
func NewMap(m *Map) Value { return Value{kind: KindMap, mapVal: m} }

// Kind returns the receiver's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the receiver is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// ErrType is returned by the As* accessors when the value is of a
// different kind than requested.
type ErrType struct {
	Want, Got Kind
}

func (e *ErrType) Error() string {
	return fmt.Sprintf("value is %s, not %s", e.Got, e.Want)
}

// AsBool extracts a bool, or ErrType if the receiver isn't one.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, &ErrType{KindBool, v.kind}
	}
	return v.boolVal, nil
}

// AsInt extracts a signed integer, or ErrType if the receiver isn't one.
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, &ErrType{KindInt, v.kind}
	}
	return v.intVal, nil
}

// AsUnsigned extracts an unsigned integer, or ErrType if the receiver isn't one.
func (v Value) AsUnsigned() (uint64, error) {
	if v.kind != KindUnsigned {
		return 0, &ErrType{KindUnsigned, v.kind}
	}
	return v.uintVal, nil
}

// AsFloat extracts a float, or ErrType if the receiver isn't one.
func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, &ErrType{KindFloat, v.kind}
	}
	return v.floatVal, nil
}

// AsString extracts a string, or ErrType if the receiver isn't one.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", &ErrType{KindString, v.kind}
	}
	return v.stringVal, nil
}

// AsDateTime extracts a DateTime, or ErrType if the receiver isn't one.
func (v Value) AsDateTime() (DateTime, error) {
	if v.kind != KindDateTime {
		return DateTime{}, &ErrType{KindDateTime, v.kind}
	}
	return v.timeVal, nil
}

// AsTimestamp extracts a Timestamp, or ErrType if the receiver isn't one.
func (v Value) AsTimestamp() (Timestamp, error) {
	if v.kind != KindTimestamp {
		return Timestamp{}, &ErrType{KindTimestamp, v.kind}
	}
	return v.stampVal, nil
}

// AsList extracts the underlying *List, or ErrType if the receiver isn't one.
func (v Value) AsList() (*List, error) {
	if v.kind != KindList {
		return nil, &ErrType{KindList, v.kind}
	}
	return v.listVal, nil
}

// AsMap extracts the underlying *Map, or ErrType if the receiver isn't one.
func (v Value) AsMap() (*Map, error) {
	if v.kind != KindMap {
		return nil, &ErrType{KindMap, v.kind}
	}
	return v.mapVal, nil
}

// Equal reports whether two values are structurally equal: same kind and
// recursively equal contents, in the same order for lists and maps.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == other.boolVal
	case KindInt:
		return v.intVal == other.intVal
	case KindUnsigned:
		return v.uintVal == other.uintVal
	case KindFloat:
		return v.floatVal == other.floatVal
	case KindString:
		return v.stringVal == other.stringVal
	case KindDateTime:
		return v.timeVal.Equal(other.timeVal)
	case KindTimestamp:
		return v.stampVal.Equal(other.stampVal)
	case KindList:
		return v.listVal.equal(other.listVal)
	case KindMap:
		return v.mapVal.equal(other.mapVal)
	default:
		return false
	}
}

// String renders a debug representation of the value. It is not guaranteed
// to be valid MW or JSON syntax; use a dedicated encoder for that.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.intVal, 10)
	case KindUnsigned:
		return strconv.FormatUint(v.uintVal, 10)
	case KindFloat:
		return strconv.FormatFloat(v.floatVal, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.stringVal)
	case KindDateTime:
		return v.timeVal.String()
	case KindTimestamp:
		return v.stampVal.String()
	case KindList:
		return v.listVal.String()
	case KindMap:
		return v.mapVal.String()
	default:
		return "<unknown>"
	}
}
