package value

import (
	"strconv"
	"strings"
)

// Map is an ordered mapping of string keys to Values: insertion order is
// preserved, keys are unique, and inserting an existing key replaces its
// value in place without moving it to the end (spec.md §3).
type Map struct {
	keys   []string
	values []Value
	index  map[string]int
}

// NewMapOf builds a Map from the given keys/values, in order. Later
// duplicate keys replace earlier ones, following Map.Set semantics.
func NewMapOf(keys []string, values []Value) *Map {
	m := &Map{}
	for i, k := range keys {
		m.Set(k, values[i])
	}
	return m
}

func (m *Map) ensureIndex() {
	if m.index == nil {
		m.index = make(map[string]int, len(m.keys))
		for i, k := range m.keys {
			m.index[k] = i
		}
	}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Set inserts key/value, or replaces the value of an existing key in place.
func (m *Map) Set(key string, v Value) {
	m.ensureIndex()
	if i, ok := m.index[key]; ok {
		m.values[i] = v
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values = append(m.values, v)
}

// Get looks up key, returning its value and whether it was present.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	m.ensureIndex()
	i, ok := m.index[key]
	if !ok {
		return Value{}, false
	}
	return m.values[i], true
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in insertion order. The slice must not be mutated.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Item returns the i'th key/value pair in insertion order.
func (m *Map) Item(i int) (string, Value) {
	return m.keys[i], m.values[i]
}

func (m *Map) equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i, k := range m.keys {
		ok, v := other.keys[i], other.values[i]
		if k != ok || !m.values[i].Equal(v) {
			return false
		}
	}
	return true
}

// String renders the map as a braced, comma-separated debug string, in
// insertion order.
func (m *Map) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(k))
		b.WriteString(": ")
		b.WriteString(m.values[i].String())
	}
	b.WriteByte('}')
	return b.String()
}
