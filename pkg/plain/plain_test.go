package plain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooleanBitPacking(t *testing.T) {
	var b []byte
	bits := []bool{true, false, true, true, false, false, false, true, true}
	for i, v := range bits {
		b = AppendBoolean(b, i, v)
	}
	for i, want := range bits {
		got, err := ReadBoolean(b, i)
		require.NoError(t, err)
		assert.Equal(t, want, got, "bit %d", i)
	}
}

func TestInt32RoundTrip(t *testing.T) {
	b := AppendInt32(nil, -1234567)
	got, err := ReadInt32(b, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(-1234567), got)
}

func TestInt64RoundTrip(t *testing.T) {
	b := AppendInt64(nil, 1<<40)
	got, err := ReadInt64(b, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1<<40), got)
}

func TestInt96RoundTrip(t *testing.T) {
	want := [3]uint32{1, 2, 3}
	b := AppendInt96(nil, want)
	assert.Len(t, b, 12)
	got, err := ReadInt96(b, 0)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFloatDoubleRoundTrip(t *testing.T) {
	bf := AppendFloat(nil, 3.5)
	gf, err := ReadFloat(bf, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), gf)

	bd := AppendDouble(nil, -2.25)
	gd, err := ReadDouble(bd, 0)
	require.NoError(t, err)
	assert.Equal(t, -2.25, gd)
}

func TestByteArrayRoundTrip(t *testing.T) {
	b := AppendByteArray(nil, []byte("hello"))
	assert.Len(t, b, 4+5)
	got, n, err := ReadByteArray(b, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
	assert.Equal(t, 9, n)
}

func TestByteArrayConcatenation(t *testing.T) {
	var b []byte
	b = AppendByteArray(b, []byte("a"))
	b = AppendByteArray(b, []byte("bc"))

	v1, n1, err := ReadByteArray(b, 0)
	require.NoError(t, err)
	assert.Equal(t, "a", string(v1))

	v2, n2, err := ReadByteArray(b, n1)
	require.NoError(t, err)
	assert.Equal(t, "bc", string(v2))
	assert.Equal(t, len(b), n1+n2)
}

func TestFixedLenByteArrayRoundTrip(t *testing.T) {
	b := AppendFixedLenByteArray(nil, []byte{1, 2, 3, 4})
	got, err := ReadFixedLenByteArray(b, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, got)
}

func TestReadByteArrayTruncated(t *testing.T) {
	b := AppendByteArray(nil, []byte("hello"))
	_, _, err := ReadByteArray(b[:6], 0)
	require.Error(t, err)
}
