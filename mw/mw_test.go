package mw_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petbrain/myaw/internal/lines"
	"github.com/petbrain/myaw/mw"
	"github.com/petbrain/myaw/pkg/value"
)

func parse(t *testing.T, doc string) (value.Value, error) {
	t.Helper()
	src := lines.NewReader(strings.NewReader(doc))
	return mw.Parse(src)
}

func mustParse(t *testing.T, doc string) value.Value {
	t.Helper()
	v, err := parse(t, doc)
	require.NoError(t, err, "doc:\n%s", doc)
	return v
}

func parseErr(t *testing.T, doc string) *mw.ParseError {
	t.Helper()
	_, err := parse(t, doc)
	require.Error(t, err, "doc:\n%s", doc)
	pe, ok := err.(*mw.ParseError)
	require.True(t, ok, "expected *mw.ParseError, got %T: %v", err, err)
	return pe
}

// Scenario 1 from spec.md §8.
func TestParseBool(t *testing.T) {
	v := mustParse(t, "true\n")
	b, err := v.AsBool()
	require.NoError(t, err)
	assert.True(t, b)
}

func TestParseNull(t *testing.T) {
	v := mustParse(t, "null\n")
	assert.True(t, v.IsNull())
}

// Scenario 2.
func TestParseFlatMap(t *testing.T) {
	v := mustParse(t, "a: 1\nb: 2\n")
	m, err := v.AsMap()
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"a", "b"}, m.Keys())

	av, _ := m.Get("a")
	n, _ := av.AsUnsigned()
	assert.Equal(t, uint64(1), n)

	bv, _ := m.Get("b")
	n, _ = bv.AsUnsigned()
	assert.Equal(t, uint64(2), n)
}

// Scenario 3.
func TestParseFlatList(t *testing.T) {
	v := mustParse(t, "- 1\n- 2\n- 3\n")
	l, err := v.AsList()
	require.NoError(t, err)
	require.Equal(t, 3, l.Len())
	for i := 0; i < 3; i++ {
		n, err := l.Item(i).AsUnsigned()
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1), n)
	}
}

// Scenario 4: embedded JSON reached via a conversion specifier.
func TestParseEmbeddedJSON(t *testing.T) {
	v := mustParse(t, "root:\n  :json: [1, 2, {\"k\": true}]\n")
	m, err := v.AsMap()
	require.NoError(t, err)
	rootVal, ok := m.Get("root")
	require.True(t, ok)
	l, err := rootVal.AsList()
	require.NoError(t, err)
	require.Equal(t, 3, l.Len())

	n, _ := l.Item(0).AsUnsigned()
	assert.Equal(t, uint64(1), n)
	n, _ = l.Item(1).AsUnsigned()
	assert.Equal(t, uint64(2), n)

	inner, err := l.Item(2).AsMap()
	require.NoError(t, err)
	kv, _ := inner.Get("k")
	b, _ := kv.AsBool()
	assert.True(t, b)
}

// Scenario 5.
func TestParseLiteralBlock(t *testing.T) {
	v := mustParse(t, ":literal:\n  hello\n  world\n")
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", s)
}

// Scenario 6.
func TestParseUnterminatedQuotedStringError(t *testing.T) {
	pe := parseErr(t, "\"unterminated\nmore\n")
	assert.Equal(t, "String has no closing quote", pe.Desc)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, 0, pe.Position)
}

func TestParseNegativeAndFloat(t *testing.T) {
	v := mustParse(t, "-3.5\n")
	f, err := v.AsFloat()
	require.NoError(t, err)
	assert.Equal(t, -3.5, f)
}

func TestParseSignedPositive(t *testing.T) {
	v := mustParse(t, "+5\n")
	u, err := v.AsUnsigned()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), u)
}

func TestParseQuotedStringSingleLine(t *testing.T) {
	v := mustParse(t, `"hello \"there\""` + "\n")
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, `hello "there"`, s)
}

func TestParseQuotedStringMultiLine(t *testing.T) {
	doc := "\"first\n more\n closing\"\n"
	v := mustParse(t, doc)
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "first more closing", s)
}

func TestParseQuotedStringBareClosingLine(t *testing.T) {
	doc := "\"first\n more\n\"\n"
	v := mustParse(t, doc)
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "first more", s)
}

func TestParseFoldedString(t *testing.T) {
	doc := ":folded:\n  one\n  two\n\n  three\n"
	v := mustParse(t, doc)
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "one two\nthree", s)
}

// Unlike :literal:, :raw: never dedents: at the top level (where
// block_indent is never advanced past 0 for the document's bare value) its
// content comes back exactly as written, whitespace and all.
func TestParseRawString(t *testing.T) {
	doc := ":raw:\n  one\n    two\n"
	v := mustParse(t, doc)
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "  one\n    two\n", s)
}

func TestParseNestedMapAndList(t *testing.T) {
	doc := "name: top\nitems:\n  - a\n  - b\nmeta:\n  owner: me\n  count: 2\n"
	v := mustParse(t, doc)
	m, err := v.AsMap()
	require.NoError(t, err)

	nameVal, _ := m.Get("name")
	s, _ := nameVal.AsString()
	assert.Equal(t, "top", s)

	itemsVal, _ := m.Get("items")
	l, err := itemsVal.AsList()
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())
	s0, _ := l.Item(0).AsString()
	s1, _ := l.Item(1).AsString()
	assert.Equal(t, "a", s0)
	assert.Equal(t, "b", s1)

	metaVal, _ := m.Get("meta")
	meta, err := metaVal.AsMap()
	require.NoError(t, err)
	ownerVal, _ := meta.Get("owner")
	owner, _ := ownerVal.AsString()
	assert.Equal(t, "me", owner)
	countVal, _ := meta.Get("count")
	count, _ := countVal.AsUnsigned()
	assert.Equal(t, uint64(2), count)
}

func TestParseDuplicateKeyReplaces(t *testing.T) {
	v := mustParse(t, "a: 1\na: 2\n")
	m, err := v.AsMap()
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
	av, _ := m.Get("a")
	n, _ := av.AsUnsigned()
	assert.Equal(t, uint64(2), n)
}

func TestParseScalarMapKeys(t *testing.T) {
	v := mustParse(t, "1: a\ntrue: b\n")
	m, err := v.AsMap()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "true"}, m.Keys())

	av, _ := m.Get("1")
	s, _ := av.AsString()
	assert.Equal(t, "a", s)

	bv, _ := m.Get("true")
	s, _ = bv.AsString()
	assert.Equal(t, "b", s)
}

func TestParseCommentsAndBlankLinesSkipped(t *testing.T) {
	doc := "# a leading comment\n\na: 1 # trailing comment\n# another comment\nb: 2\n"
	v := mustParse(t, doc)
	m, err := v.AsMap()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
}

func TestParseDatetimeSpecifier(t *testing.T) {
	doc := "when:\n  :datetime: 2024-03-15\n"
	v := mustParse(t, doc)
	m, err := v.AsMap()
	require.NoError(t, err)
	whenVal, _ := m.Get("when")
	dt, err := whenVal.AsDateTime()
	require.NoError(t, err)
	assert.Equal(t, value.GrainDay, dt.Grain())
	assert.Equal(t, 15, dt.Day())
}

func TestParseTimestampSpecifier(t *testing.T) {
	doc := ":timestamp: 1700000000\n"
	v := mustParse(t, doc)
	ts, err := v.AsTimestamp()
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), ts.Unix())
}

func TestParseCustomSpecifier(t *testing.T) {
	src := lines.NewReader(strings.NewReader(":upper: hello\n"))
	p := mw.NewParser(src)
	p.SetCustomParser("upper", func(p *mw.Parser) (value.Value, error) {
		block, err := p.ReadBlock()
		if err != nil {
			return value.Null(), err
		}
		return value.NewString(strings.ToUpper(strings.Join(block, "\n"))), nil
	})
	v, err := p.ParseDocument()
	require.NoError(t, err)
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "HELLO", s)
}

func TestParseEmptyInputReturnsEof(t *testing.T) {
	v, err := parse(t, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, mw.ErrEOF)
	assert.True(t, v.IsNull())
}

func TestParseOnlyCommentsReturnsEof(t *testing.T) {
	v, err := parse(t, "# just a comment\n\n# another\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, mw.ErrEOF)
	assert.True(t, v.IsNull())
}

func TestParseExtraDataAfterValueIsError(t *testing.T) {
	pe := parseErr(t, "true\nextra\n")
	assert.Equal(t, "Extra data after parsed value", pe.Desc)
}

// nestedListDoc builds a chain of bareDashes nested lists, each one level
// deeper than the last ("-" alone recurses into the next, more indented,
// block line), terminated by a line holding a plain scalar item.
func nestedListDoc(bareDashes int) string {
	var b strings.Builder
	for i := 0; i < bareDashes; i++ {
		b.WriteString(strings.Repeat("  ", i))
		b.WriteString("-\n")
	}
	b.WriteString(strings.Repeat("  ", bareDashes))
	b.WriteString("- x\n")
	return b.String()
}

// The exact boundary of MW_MAX_RECURSION_DEPTH = 100 (spec.md §8) depends on
// counting conventions (blocklevel starts at 1, the check runs before the
// increment); rather than pin that exact off-by-one, these two tests stay
// comfortably on either side of it.
func TestParseTooManyNestedBlocks(t *testing.T) {
	pe := parseErr(t, nestedListDoc(150))
	assert.Equal(t, "Too many nested blocks", pe.Desc)
}

func TestParseModeratelyNestedListsSucceed(t *testing.T) {
	const depth = 10
	v, err := parse(t, nestedListDoc(depth))
	require.NoError(t, err)
	for i := 0; i < depth; i++ {
		l, err := v.AsList()
		require.NoError(t, err, "depth %d", i)
		require.Equal(t, 1, l.Len())
		v = l.Item(0)
	}
	l, err := v.AsList()
	require.NoError(t, err)
	require.Equal(t, 1, l.Len())
	s, err := l.Item(0).AsString()
	require.NoError(t, err)
	assert.Equal(t, "x", s)
}

func TestParseBadIndentationOfListItem(t *testing.T) {
	doc := "- 1\n  - 2\n"
	pe := parseErr(t, doc)
	assert.Contains(t, pe.Desc, "list")
}

func TestParseUnregisteredSpecifierFallsBackToLiteral(t *testing.T) {
	doc := "a:\n  :badspec: 1\n"
	// :badspec: isn't registered, so this falls through to a literal string
	// value for key "a" rather than erroring -- verify the fallback.
	v := mustParse(t, doc)
	m, err := v.AsMap()
	require.NoError(t, err)
	av, _ := m.Get("a")
	s, err := av.AsString()
	require.NoError(t, err)
	assert.Equal(t, ":badspec: 1", s)
}
