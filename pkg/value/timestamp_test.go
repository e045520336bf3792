package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petbrain/myaw/pkg/value"
)

func TestParseTimestampSeconds(t *testing.T) {
	ts, pos, err := value.ParseTimestamp([]rune("1700000000"), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), ts.Unix())
	assert.Equal(t, int64(0), ts.Nanosecond())
	assert.Equal(t, 10, pos)
}

func TestParseTimestampFraction(t *testing.T) {
	ts, pos, err := value.ParseTimestamp([]rune("1700000000.5"), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), ts.Unix())
	assert.Equal(t, int64(500000000), ts.Nanosecond())
	assert.Equal(t, 12, pos)
}

func TestParseTimestampNegative(t *testing.T) {
	ts, _, err := value.ParseTimestamp([]rune("-5"), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), ts.Unix())
}

func TestParseTimestampTerminator(t *testing.T) {
	ts, pos, err := value.ParseTimestamp([]rune("123#comment"), 0, []rune{'#'})
	require.NoError(t, err)
	assert.Equal(t, int64(123), ts.Unix())
	assert.Equal(t, 3, pos)
}

func TestParseTimestampBad(t *testing.T) {
	_, _, err := value.ParseTimestamp([]rune("abc"), 0, nil)
	assert.Error(t, err)

	_, _, err = value.ParseTimestamp([]rune(""), 0, nil)
	assert.Error(t, err)
}

func TestParseTimestampOverflow(t *testing.T) {
	_, _, err := value.ParseTimestamp([]rune("99999999999999999999"), 0, nil)
	require.Error(t, err)
	ne, ok := err.(*value.NumberError)
	require.True(t, ok)
	assert.True(t, ne.Overflow)
}

func TestTimestampEqualAndString(t *testing.T) {
	a := value.NewTimestampFromUnix(100, 0)
	b := value.NewTimestampFromUnix(100, 0)
	c := value.NewTimestampFromUnix(100, 1)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, "100", a.String())

	frac := value.NewTimestampFromUnix(100, 500000000)
	assert.Equal(t, "100.5", frac.String())
}
