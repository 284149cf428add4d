// Package plain implements the PLAIN value encoding (§4.5): fixed
// little-endian layouts for the numeric primitive types, a bit-packed
// boolean stream, and length-prefixed byte arrays, grounded on
// segmentio/parquet-go's encoding/plain package.
package plain

import (
	"encoding/binary"
	"math"

	"github.com/tempodb-io/parquetcore/pkg/perr"
)

// AppendBoolean packs one boolean into the destination bit position,
// least-significant-bit-first, growing b as needed.
func AppendBoolean(b []byte, bitPos int, v bool) []byte {
	byteIdx := bitPos / 8
	for len(b) <= byteIdx {
		b = append(b, 0)
	}
	if v {
		b[byteIdx] |= 1 << uint(bitPos%8)
	}
	return b
}

// ReadBoolean reads one bit at bitPos, least-significant-bit-first.
func ReadBoolean(b []byte, bitPos int) (bool, error) {
	byteIdx := bitPos / 8
	if byteIdx >= len(b) {
		return false, perr.New(perr.KindCorruptStream, "plain: boolean stream truncated at bit %d", bitPos)
	}
	return b[byteIdx]&(1<<uint(bitPos%8)) != 0, nil
}

func AppendInt32(b []byte, v int32) []byte {
	var x [4]byte
	binary.LittleEndian.PutUint32(x[:], uint32(v))
	return append(b, x[:]...)
}

func AppendInt64(b []byte, v int64) []byte {
	var x [8]byte
	binary.LittleEndian.PutUint64(x[:], uint64(v))
	return append(b, x[:]...)
}

// AppendInt96 writes 12 little-endian bytes, encoded as three 32-bit words.
func AppendInt96(b []byte, v [3]uint32) []byte {
	var x [12]byte
	binary.LittleEndian.PutUint32(x[0:4], v[0])
	binary.LittleEndian.PutUint32(x[4:8], v[1])
	binary.LittleEndian.PutUint32(x[8:12], v[2])
	return append(b, x[:]...)
}

func AppendFloat(b []byte, v float32) []byte {
	var x [4]byte
	binary.LittleEndian.PutUint32(x[:], math.Float32bits(v))
	return append(b, x[:]...)
}

func AppendDouble(b []byte, v float64) []byte {
	var x [8]byte
	binary.LittleEndian.PutUint64(x[:], math.Float64bits(v))
	return append(b, x[:]...)
}

// AppendByteArray writes a 4-byte little-endian length prefix then v.
func AppendByteArray(b, v []byte) []byte {
	i := len(b)
	b = append(b, 0, 0, 0, 0)
	b = append(b, v...)
	binary.LittleEndian.PutUint32(b[i:i+4], uint32(len(v)))
	return b
}

// AppendFixedLenByteArray writes exactly len(v) bytes with no prefix; the
// caller is responsible for v having the schema's typeLength.
func AppendFixedLenByteArray(b, v []byte) []byte {
	return append(b, v...)
}

func ReadInt32(b []byte, off int) (int32, error) {
	if off+4 > len(b) {
		return 0, perr.New(perr.KindCorruptStream, "plain: int32 truncated at offset %d", off)
	}
	return int32(binary.LittleEndian.Uint32(b[off : off+4])), nil
}

func ReadInt64(b []byte, off int) (int64, error) {
	if off+8 > len(b) {
		return 0, perr.New(perr.KindCorruptStream, "plain: int64 truncated at offset %d", off)
	}
	return int64(binary.LittleEndian.Uint64(b[off : off+8])), nil
}

func ReadInt96(b []byte, off int) ([3]uint32, error) {
	var v [3]uint32
	if off+12 > len(b) {
		return v, perr.New(perr.KindCorruptStream, "plain: int96 truncated at offset %d", off)
	}
	v[0] = binary.LittleEndian.Uint32(b[off : off+4])
	v[1] = binary.LittleEndian.Uint32(b[off+4 : off+8])
	v[2] = binary.LittleEndian.Uint32(b[off+8 : off+12])
	return v, nil
}

func ReadFloat(b []byte, off int) (float32, error) {
	v, err := ReadInt32(b, off)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

func ReadDouble(b []byte, off int) (float64, error) {
	v, err := ReadInt64(b, off)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(v)), nil
}

// ReadByteArray reads a length-prefixed byte array, returning the value and
// the number of bytes consumed (4 + length).
func ReadByteArray(b []byte, off int) ([]byte, int, error) {
	if off+4 > len(b) {
		return nil, 0, perr.New(perr.KindCorruptStream, "plain: byte array length truncated at offset %d", off)
	}
	n := int(binary.LittleEndian.Uint32(b[off : off+4]))
	if n < 0 || off+4+n > len(b) {
		return nil, 0, perr.New(perr.KindCorruptStream, "plain: byte array of length %d exceeds buffer at offset %d", n, off)
	}
	return b[off+4 : off+4+n], 4 + n, nil
}

// ReadFixedLenByteArray reads exactly n bytes with no prefix.
func ReadFixedLenByteArray(b []byte, off, n int) ([]byte, error) {
	if off+n > len(b) {
		return nil, perr.New(perr.KindCorruptStream, "plain: fixed-length byte array truncated at offset %d", off)
	}
	return b[off : off+n], nil
}
