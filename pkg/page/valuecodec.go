// Package page implements the data page / column-chunk codec (§4.6, §4.7):
// assembling a leaf's shredded streams into one or more v1/v2 data pages
// with compression and statistics, and the inverse on read. It sits on top
// of pkg/plain, pkg/levels, and pkg/compress the way hangxie/parquet-go's
// layer.go composes its own page reader/writer from the same building
// blocks.
package page

import (
	"fmt"

	"github.com/tempodb-io/parquetcore/pkg/parquetschema"
	"github.com/tempodb-io/parquetcore/pkg/perr"
	"github.com/tempodb-io/parquetcore/pkg/plain"
)

// encodePlainValues PLAIN-encodes values according to leaf's primitive
// type, accepting the handful of Go types a shredder or caller would
// naturally produce for each Parquet type.
func encodePlainValues(leaf *parquetschema.Node, values []any) ([]byte, error) {
	if leaf.Type == parquetschema.Boolean {
		var out []byte
		for i, v := range values {
			b, ok := v.(bool)
			if !ok {
				return nil, perr.New(perr.KindSchemaMismatch, "column %q: value %d: expected bool, got %T", leaf.PathString(), i, v)
			}
			out = plain.AppendBoolean(out, i, b)
		}
		return out, nil
	}

	var out []byte
	for i, v := range values {
		var err error
		out, err = encodePlainValue(leaf, out, v)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
	}
	return out, nil
}

func encodePlainValue(leaf *parquetschema.Node, out []byte, v any) ([]byte, error) {
	switch leaf.Type {
	case parquetschema.Boolean:
		b, ok := v.(bool)
		if !ok {
			return nil, perr.New(perr.KindSchemaMismatch, "column %q: expected bool, got %T", leaf.PathString(), v)
		}
		// A single boolean's PLAIN form: one byte, value in the lowest bit.
		return append(out, plain.AppendBoolean(nil, 0, b)...), nil
	case parquetschema.Int32:
		n, err := toInt64(leaf, v)
		if err != nil {
			return nil, err
		}
		return plain.AppendInt32(out, int32(n)), nil
	case parquetschema.Int64:
		n, err := toInt64(leaf, v)
		if err != nil {
			return nil, err
		}
		return plain.AppendInt64(out, n), nil
	case parquetschema.Int96:
		w, ok := v.([3]uint32)
		if !ok {
			return nil, perr.New(perr.KindSchemaMismatch, "column %q: expected [3]uint32, got %T", leaf.PathString(), v)
		}
		return plain.AppendInt96(out, w), nil
	case parquetschema.Float:
		f, err := toFloat64(leaf, v)
		if err != nil {
			return nil, err
		}
		return plain.AppendFloat(out, float32(f)), nil
	case parquetschema.Double:
		f, err := toFloat64(leaf, v)
		if err != nil {
			return nil, err
		}
		return plain.AppendDouble(out, f), nil
	case parquetschema.ByteArray:
		b, err := toBytes(leaf, v)
		if err != nil {
			return nil, err
		}
		return plain.AppendByteArray(out, b), nil
	case parquetschema.FixedLenByteArray:
		b, err := toBytes(leaf, v)
		if err != nil {
			return nil, err
		}
		if len(b) != leaf.TypeLength {
			return nil, perr.New(perr.KindSchemaMismatch, "column %q: expected %d bytes, got %d", leaf.PathString(), leaf.TypeLength, len(b))
		}
		return plain.AppendFixedLenByteArray(out, b), nil
	default:
		return nil, perr.New(perr.KindUnsupported, "unknown primitive type %d", leaf.Type)
	}
}

// decodePlainValues decodes exactly count values of leaf's primitive type
// from data, returning Go-native values (int64, float64, string/[]byte,
// bool, [3]uint32).
func decodePlainValues(leaf *parquetschema.Node, data []byte, count int) ([]any, error) {
	if leaf.Type == parquetschema.Boolean {
		out := make([]any, 0, count)
		for i := 0; i < count; i++ {
			v, err := plain.ReadBoolean(data, i)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
			out = append(out, v)
		}
		return out, nil
	}

	out := make([]any, 0, count)
	off := 0
	for i := 0; i < count; i++ {
		var v any
		var err error
		v, off, err = decodePlainValue(leaf, data, off)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func decodePlainValue(leaf *parquetschema.Node, data []byte, off int) (any, int, error) {
	switch leaf.Type {
	case parquetschema.Int32:
		v, err := plain.ReadInt32(data, off)
		return int64(v), off + 4, err
	case parquetschema.Int64:
		v, err := plain.ReadInt64(data, off)
		return v, off + 8, err
	case parquetschema.Int96:
		v, err := plain.ReadInt96(data, off)
		return v, off + 12, err
	case parquetschema.Float:
		v, err := plain.ReadFloat(data, off)
		return float64(v), off + 4, err
	case parquetschema.Double:
		v, err := plain.ReadDouble(data, off)
		return v, off + 8, err
	case parquetschema.ByteArray:
		v, n, err := plain.ReadByteArray(data, off)
		return byteArrayValue(leaf, v), off + n, err
	case parquetschema.FixedLenByteArray:
		v, err := plain.ReadFixedLenByteArray(data, off, leaf.TypeLength)
		return byteArrayValue(leaf, v), off + leaf.TypeLength, err
	default:
		return nil, off, perr.New(perr.KindUnsupported, "unknown primitive type %d", leaf.Type)
	}
}

// byteArrayValue returns a string for UTF8-annotated columns, matching the
// Go type the shredder would have been handed, and a copied []byte
// otherwise (data may be reused by the caller's buffer).
func byteArrayValue(leaf *parquetschema.Node, v []byte) any {
	cp := append([]byte(nil), v...)
	if leaf.LogicalType == parquetschema.UTF8 {
		return string(cp)
	}
	return cp
}

func toInt64(leaf *parquetschema.Node, v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	default:
		return 0, perr.New(perr.KindSchemaMismatch, "column %q: expected integer, got %T", leaf.PathString(), v)
	}
}

func toFloat64(leaf *parquetschema.Node, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	default:
		return 0, perr.New(perr.KindSchemaMismatch, "column %q: expected float, got %T", leaf.PathString(), v)
	}
}

func toBytes(leaf *parquetschema.Node, v any) ([]byte, error) {
	switch b := v.(type) {
	case string:
		return []byte(b), nil
	case []byte:
		return b, nil
	default:
		return nil, perr.New(perr.KindSchemaMismatch, "column %q: expected string or []byte, got %T", leaf.PathString(), v)
	}
}
