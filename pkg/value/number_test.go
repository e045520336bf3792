package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petbrain/myaw/pkg/value"
)

func parseNumber(t *testing.T, s string, sign int, terminators ...rune) (value.Value, int) {
	t.Helper()
	v, pos, err := value.ParseNumber([]rune(s), 0, sign, terminators)
	require.NoError(t, err)
	return v, pos
}

func TestParseNumberInteger(t *testing.T) {
	v, pos := parseNumber(t, "123", 1)
	assert.Equal(t, value.KindUnsigned, v.Kind())
	u, _ := v.AsUnsigned()
	assert.Equal(t, uint64(123), u)
	assert.Equal(t, 3, pos)

	v, pos = parseNumber(t, "123", -1)
	assert.Equal(t, value.KindInt, v.Kind())
	n, _ := v.AsInt()
	assert.Equal(t, int64(-123), n)
	assert.Equal(t, 3, pos)
}

func TestParseNumberFloat(t *testing.T) {
	v, _ := parseNumber(t, "3.14", 1)
	assert.Equal(t, value.KindFloat, v.Kind())
	f, _ := v.AsFloat()
	assert.Equal(t, 3.14, f)

	v, _ = parseNumber(t, "1e10", 1)
	assert.Equal(t, value.KindFloat, v.Kind())
	f, _ = v.AsFloat()
	assert.Equal(t, 1e10, f)

	v, _ = parseNumber(t, "2.5e-3", -1)
	f, _ = v.AsFloat()
	assert.Equal(t, -2.5e-3, f)
}

func TestParseNumberHex(t *testing.T) {
	v, pos := parseNumber(t, "0xFF", 1)
	assert.Equal(t, value.KindUnsigned, v.Kind())
	u, _ := v.AsUnsigned()
	assert.Equal(t, uint64(255), u)
	assert.Equal(t, 4, pos)

	v, _ = parseNumber(t, "0x10", -1)
	n, _ := v.AsInt()
	assert.Equal(t, int64(-16), n)
}

func TestParseNumberDigitGroupSeparators(t *testing.T) {
	v, _ := parseNumber(t, "1_000_000", 1)
	u, _ := v.AsUnsigned()
	assert.Equal(t, uint64(1000000), u)

	v, _ = parseNumber(t, "1'000", 1)
	u, _ = v.AsUnsigned()
	assert.Equal(t, uint64(1000), u)
}

func TestParseNumberTerminators(t *testing.T) {
	line := []rune("123: rest")
	v, pos, err := value.ParseNumber(line, 0, 1, []rune{':'})
	require.NoError(t, err)
	u, _ := v.AsUnsigned()
	assert.Equal(t, uint64(123), u)
	assert.Equal(t, 3, pos)

	// A terminator that isn't in the allowed set is a bad number.
	_, _, err = value.ParseNumber([]rune("123,rest"), 0, 1, []rune{':'})
	assert.Error(t, err)
}

func TestParseNumberLeadingZeroRejected(t *testing.T) {
	_, _, err := value.ParseNumber([]rune("007"), 0, 1, nil)
	require.Error(t, err)
	numErr, isNumErr := err.(*value.NumberError)
	require.True(t, isNumErr)
	assert.False(t, numErr.Overflow)
}

func TestParseNumberOverflow(t *testing.T) {
	_, _, err := value.ParseNumber([]rune("99999999999999999999"), 0, 1, nil)
	require.Error(t, err)
	ne, isNe := err.(*value.NumberError)
	require.True(t, isNe)
	assert.True(t, ne.Overflow)
}

func TestParseNumberBadInput(t *testing.T) {
	_, _, err := value.ParseNumber([]rune("abc"), 0, 1, nil)
	assert.Error(t, err)

	_, _, err = value.ParseNumber([]rune("0x"), 0, 1, nil)
	assert.Error(t, err)
}
