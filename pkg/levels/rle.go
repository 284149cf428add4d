// Package levels implements the RLE/bit-packed hybrid encoding used for the
// Parquet definition- and repetition-level streams (§4.4), grounded on the
// varint-header framing segmentio/parquet-go's encoding/rle package produces
// but specialized to the small uint32 alphabet levels use rather than a
// generic byte-width encoder.
package levels

import (
	"encoding/binary"

	"github.com/tempodb-io/parquetcore/pkg/perr"
)

// minRunLength is the shortest repeated run worth encoding as RLE instead of
// folding into a bit-packed group; below this, framing overhead dominates.
const minRunLength = 8

// EncodeRaw hybrid-encodes values (each < 2^bitWidth) with no length prefix,
// the framing data page v2 uses.
func EncodeRaw(values []uint32, bitWidth int) []byte {
	if bitWidth == 0 || len(values) == 0 {
		return nil
	}
	var out []byte
	i := 0
	for i < len(values) {
		runLen := sameRunLength(values, i)
		if runLen >= minRunLength {
			out = appendUvarint(out, uint64(runLen)<<1)
			out = appendLEValue(out, values[i], bitWidth)
			i += runLen
			continue
		}
		start := i
		for i < len(values) && sameRunLength(values, i) < minRunLength {
			i++
		}
		// A bit-packed group's byte region is always a whole number of
		// 8-value groups. If this segment isn't already 8-aligned and more
		// data follows, borrow the next run's leading values (they're
		// packed identically to how the run would encode them, so this
		// loses nothing) to pad out to a group boundary instead of
		// stuffing zero padding ahead of real data. Only the segment that
		// reaches the very end of values may be padded with zeros, since
		// DecodeRaw stops consuming values once it has count of them.
		if rem := (i - start) % 8; rem != 0 && i < len(values) {
			i += 8 - rem
		}
		out = appendBitPackGroup(out, values[start:i], bitWidth)
	}
	return out
}

// EncodeEnveloped hybrid-encodes values and prefixes the payload with its
// byte length as a 32-bit little-endian integer, the framing data page v1
// uses.
func EncodeEnveloped(values []uint32, bitWidth int) []byte {
	payload := EncodeRaw(values, bitWidth)
	out := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(out, uint32(len(payload)))
	copy(out[4:], payload)
	return out
}

// DecodeRaw decodes exactly count values from data with no length prefix,
// returning the values and the number of bytes consumed. Consuming more or
// fewer bytes than the stream actually contains for those count values is
// CorruptStream.
func DecodeRaw(data []byte, bitWidth, count int) ([]uint32, int, error) {
	if bitWidth == 0 {
		return make([]uint32, count), 0, nil
	}
	if count == 0 {
		return nil, 0, nil
	}
	values := make([]uint32, 0, count)
	pos := 0
	for len(values) < count {
		if pos >= len(data) {
			return nil, 0, perr.New(perr.KindCorruptStream, "level stream truncated: need %d more values", count-len(values))
		}
		header, n := binary.Uvarint(data[pos:])
		if n <= 0 {
			return nil, 0, perr.New(perr.KindCorruptStream, "level stream: invalid varint header")
		}
		pos += n

		if header&1 == 0 {
			runLen := header >> 1
			if runLen == 0 {
				return nil, 0, perr.New(perr.KindCorruptStream, "level stream: run of length 0")
			}
			byteWidth := (bitWidth + 7) / 8
			if pos+byteWidth > len(data) {
				return nil, 0, perr.New(perr.KindCorruptStream, "level stream: run value truncated")
			}
			val := decodeLEValue(data[pos:pos+byteWidth], bitWidth)
			pos += byteWidth
			for i := uint64(0); i < runLen; i++ {
				values = append(values, val)
			}
		} else {
			groups := int(header >> 1)
			byteLen := groups * bitWidth
			if pos+byteLen > len(data) {
				return nil, 0, perr.New(perr.KindCorruptStream, "level stream: bit-packed group truncated")
			}
			decoded := unpackBits(data[pos:pos+byteLen], bitWidth, groups*8)
			pos += byteLen
			// Only the final bit-packed group in the stream may carry
			// zero padding past the values actually needed; trim it here
			// rather than trusting groups*8 to equal count exactly.
			if remaining := count - len(values); remaining < len(decoded) {
				decoded = decoded[:remaining]
			}
			values = append(values, decoded...)
		}
	}
	if len(values) != count {
		return nil, 0, perr.New(perr.KindCorruptStream, "level stream: decoded %d values, wanted %d", len(values), count)
	}
	return values[:count], pos, nil
}

// DecodeEnveloped reads the 4-byte length prefix, decodes count values from
// the payload it declares, and verifies the payload was consumed exactly.
func DecodeEnveloped(data []byte, bitWidth, count int) ([]uint32, int, error) {
	if len(data) < 4 {
		return nil, 0, perr.New(perr.KindCorruptStream, "level stream: envelope header truncated")
	}
	length := int(binary.LittleEndian.Uint32(data))
	if length < 0 || 4+length > len(data) {
		return nil, 0, perr.New(perr.KindCorruptStream, "level stream: envelope length %d exceeds buffer", length)
	}
	payload := data[4 : 4+length]
	values, consumed, err := DecodeRaw(payload, bitWidth, count)
	if err != nil {
		return nil, 0, err
	}
	if consumed != length {
		return nil, 0, perr.New(perr.KindCorruptStream, "level stream: envelope declared %d bytes, consumed %d", length, consumed)
	}
	return values, 4 + length, nil
}

func sameRunLength(values []uint32, start int) int {
	n := 1
	for start+n < len(values) && values[start+n] == values[start] {
		n++
	}
	return n
}

func appendBitPackGroup(out []byte, values []uint32, bitWidth int) []byte {
	groups := (len(values) + 7) / 8
	padded := make([]uint32, groups*8)
	copy(padded, values)
	out = appendUvarint(out, uint64(groups)<<1|1)
	out = append(out, packBits(padded, bitWidth)...)
	return out
}

func appendUvarint(out []byte, v uint64) []byte {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	return append(out, buf[:n]...)
}

func appendLEValue(out []byte, v uint32, bitWidth int) []byte {
	byteWidth := (bitWidth + 7) / 8
	for i := 0; i < byteWidth; i++ {
		out = append(out, byte(v>>(8*i)))
	}
	return out
}

func decodeLEValue(b []byte, bitWidth int) uint32 {
	var v uint32
	for i, c := range b {
		v |= uint32(c) << (8 * i)
	}
	if bitWidth < 32 {
		v &= (1 << uint(bitWidth)) - 1
	}
	return v
}

// packBits bit-packs values (n must be a multiple of 8), each bitWidth bits
// wide, least-significant-bit-first within a byte and across byte
// boundaries, matching the PLAIN BOOLEAN convention (§4.5).
func packBits(values []uint32, bitWidth int) []byte {
	totalBits := len(values) * bitWidth
	out := make([]byte, (totalBits+7)/8)
	bitPos := 0
	for _, v := range values {
		for b := 0; b < bitWidth; b++ {
			if v&(1<<uint(b)) != 0 {
				out[bitPos/8] |= 1 << uint(bitPos%8)
			}
			bitPos++
		}
	}
	return out
}

func unpackBits(data []byte, bitWidth, count int) []uint32 {
	out := make([]uint32, count)
	bitPos := 0
	for i := 0; i < count; i++ {
		var v uint32
		for b := 0; b < bitWidth; b++ {
			byteIdx := bitPos / 8
			if byteIdx < len(data) && data[byteIdx]&(1<<uint(bitPos%8)) != 0 {
				v |= 1 << uint(b)
			}
			bitPos++
		}
		out[i] = v
	}
	return out
}

// BitWidth returns the minimum bit width needed to represent values up to
// and including maxValue (e.g. a leaf's dLevelMax/rLevelMax).
func BitWidth(maxValue int) int {
	w := 0
	for (1 << uint(w)) <= maxValue {
		w++
	}
	return w
}
