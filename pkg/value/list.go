package value

import "strings"

// List is an ordered sequence of Values (spec.md §3).
type List struct {
	items []Value
}

// NewListOf builds a List from the given items, in order.
func NewListOf(items ...Value) *List {
	l := &List{items: append([]Value(nil), items...)}
	return l
}

// Len returns the number of items.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Append adds an item to the end of the list.
func (l *List) Append(v Value) {
	l.items = append(l.items, v)
}

// Item returns the i'th item. Panics if i is out of range.
func (l *List) Item(i int) Value {
	return l.items[i]
}

// Items returns the list's items as a slice. The slice must not be mutated.
func (l *List) Items() []Value {
	if l == nil {
		return nil
	}
	return l.items
}

func (l *List) equal(other *List) bool {
	if l.Len() != other.Len() {
		return false
	}
	for i, item := range l.items {
		if !item.Equal(other.items[i]) {
			return false
		}
	}
	return true
}

// String renders the list as a bracketed, comma-separated debug string.
func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range l.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	b.WriteByte(']')
	return b.String()
}
