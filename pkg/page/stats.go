package page

import (
	"bytes"
	"fmt"

	"github.com/tempodb-io/parquetcore/pkg/format"
	"github.com/tempodb-io/parquetcore/pkg/parquetschema"
)

// statsAccumulator tracks null_count, an advisory distinct_count, and
// min/max over one leaf's emitted values (§4.7). min/max comparison is
// type-aware; distinct_count keys on the value's PLAIN encoding since
// Parquet gives no ordering requirement for it.
type statsAccumulator struct {
	leaf      *parquetschema.Node
	nullCount int64
	distinct  map[string]struct{}
	haveMinMax bool
	min, max  any
}

func newStatsAccumulator(leaf *parquetschema.Node) *statsAccumulator {
	return &statsAccumulator{leaf: leaf, distinct: map[string]struct{}{}}
}

func (s *statsAccumulator) observeNull() { s.nullCount++ }

func (s *statsAccumulator) observe(v any) error {
	enc, err := encodePlainValue(s.leaf, nil, v)
	if err != nil {
		return err
	}
	s.distinct[string(enc)] = struct{}{}

	if s.leaf.Type == parquetschema.Int96 {
		return nil // no defined ordering
	}
	if !s.haveMinMax {
		s.min, s.max = v, v
		s.haveMinMax = true
		return nil
	}
	lt, err := lessThan(s.leaf, v, s.min)
	if err != nil {
		return err
	}
	if lt {
		s.min = v
	}
	gt, err := lessThan(s.leaf, s.max, v)
	if err != nil {
		return err
	}
	if gt {
		s.max = v
	}
	return nil
}

func (s *statsAccumulator) finish() (*format.Statistics, error) {
	nullCount := s.nullCount
	distinctCount := int64(len(s.distinct))
	st := &format.Statistics{
		NullCount:     &nullCount,
		DistinctCount: &distinctCount,
	}
	if s.haveMinMax {
		minEnc, err := encodePlainValue(s.leaf, nil, s.min)
		if err != nil {
			return nil, err
		}
		maxEnc, err := encodePlainValue(s.leaf, nil, s.max)
		if err != nil {
			return nil, err
		}
		st.MinValue, st.MaxValue = minEnc, maxEnc
		st.Min, st.Max = minEnc, maxEnc
	}
	return st, nil
}

// lessThan reports whether a orders strictly before b for leaf's type.
func lessThan(leaf *parquetschema.Node, a, b any) (bool, error) {
	switch leaf.Type {
	case parquetschema.Boolean:
		av, bv := a.(bool), b.(bool)
		return !av && bv, nil
	case parquetschema.Int32, parquetschema.Int64:
		av, err := toInt64(leaf, a)
		if err != nil {
			return false, err
		}
		bv, err := toInt64(leaf, b)
		if err != nil {
			return false, err
		}
		return av < bv, nil
	case parquetschema.Float, parquetschema.Double:
		av, err := toFloat64(leaf, a)
		if err != nil {
			return false, err
		}
		bv, err := toFloat64(leaf, b)
		if err != nil {
			return false, err
		}
		return av < bv, nil
	case parquetschema.ByteArray, parquetschema.FixedLenByteArray:
		av, err := toBytes(leaf, a)
		if err != nil {
			return false, err
		}
		bv, err := toBytes(leaf, b)
		if err != nil {
			return false, err
		}
		return bytes.Compare(av, bv) < 0, nil
	default:
		return false, fmt.Errorf("column %q: no ordering defined for type %d", leaf.PathString(), leaf.Type)
	}
}
