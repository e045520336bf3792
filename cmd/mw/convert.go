package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/petbrain/myaw/internal/socutil"
	"github.com/petbrain/myaw/pkg/value"
)

// writeJSON renders v as JSON into buf, indenting nested lists and maps by
// two spaces per level. Grounded on the recursive tree-walking style of
// cmd/poc/main.go's markdownWriter, applied here to the MW value model
// instead of a Stream-Of-Consciousness document tree. buf is a
// *socutil.WriteBuffer rather than a plain io.Writer so that
// writeJSONList/writeJSONMap can drain it through MaybeFlush as they go,
// the way socutil.WriteBuffer's own doc comment shows it used in a loop,
// instead of buffering the whole rendered document before the one Flush
// at the end of main.
func writeJSON(buf *socutil.WriteBuffer, v value.Value) error {
	return writeJSONIndent(buf, v, 0)
}

func writeJSONIndent(w *socutil.WriteBuffer, v value.Value, depth int) error {
	switch v.Kind() {
	case value.KindNull:
		_, err := io.WriteString(w, "null")
		return err
	case value.KindBool:
		b, _ := v.AsBool()
		_, err := io.WriteString(w, strconv.FormatBool(b))
		return err
	case value.KindInt:
		n, _ := v.AsInt()
		_, err := io.WriteString(w, strconv.FormatInt(n, 10))
		return err
	case value.KindUnsigned:
		n, _ := v.AsUnsigned()
		_, err := io.WriteString(w, strconv.FormatUint(n, 10))
		return err
	case value.KindFloat:
		f, _ := v.AsFloat()
		_, err := io.WriteString(w, strconv.FormatFloat(f, 'g', -1, 64))
		return err
	case value.KindString:
		s, _ := v.AsString()
		_, err := io.WriteString(w, quoteJSON(s))
		return err
	case value.KindDateTime:
		dt, _ := v.AsDateTime()
		_, err := io.WriteString(w, strconv.Quote(dt.String()))
		return err
	case value.KindTimestamp:
		ts, _ := v.AsTimestamp()
		_, err := io.WriteString(w, strconv.Quote(ts.String()))
		return err
	case value.KindList:
		l, _ := v.AsList()
		return writeJSONList(w, l, depth)
	case value.KindMap:
		m, _ := v.AsMap()
		return writeJSONMap(w, m, depth)
	default:
		return fmt.Errorf("convert: unhandled value kind %v", v.Kind())
	}
}

// writeJSONList renders l and, after each item, drains w through
// MaybeFlush -- one "thing" per loop iteration, matching the usage
// socutil.WriteBuffer's own doc comment shows.
func writeJSONList(w *socutil.WriteBuffer, l *value.List, depth int) error {
	if l.Len() == 0 {
		_, err := io.WriteString(w, "[]")
		return err
	}
	if _, err := io.WriteString(w, "[\n"); err != nil {
		return err
	}
	indent := indentString(depth + 1)
	for i, item := range l.Items() {
		if _, err := io.WriteString(w, indent); err != nil {
			return err
		}
		if err := writeJSONIndent(w, item, depth+1); err != nil {
			return err
		}
		if i < l.Len()-1 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := w.MaybeFlush(); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s]", indentString(depth))
	return err
}

// writeJSONMap renders m and, after each member, drains w through
// MaybeFlush; see writeJSONList.
func writeJSONMap(w *socutil.WriteBuffer, m *value.Map, depth int) error {
	if m.Len() == 0 {
		_, err := io.WriteString(w, "{}")
		return err
	}
	if _, err := io.WriteString(w, "{\n"); err != nil {
		return err
	}
	indent := indentString(depth + 1)
	for i := 0; i < m.Len(); i++ {
		key, val := m.Item(i)
		if _, err := fmt.Fprintf(w, "%s%s: ", indent, quoteJSON(key)); err != nil {
			return err
		}
		if err := writeJSONIndent(w, val, depth+1); err != nil {
			return err
		}
		if i < m.Len()-1 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := w.MaybeFlush(); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s}", indentString(depth))
	return err
}

// quoteJSON renders s as a JSON string literal.
func quoteJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func indentString(depth int) string {
	const unit = "  "
	out := make([]byte, 0, len(unit)*depth)
	for i := 0; i < depth; i++ {
		out = append(out, unit...)
	}
	return string(out)
}
