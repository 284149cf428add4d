// Package shred implements the Dremel record shredder (§4.2): it walks a
// nested record against a schema and appends each leaf's contribution to
// three parallel per-column streams (values, definition levels, repetition
// levels), following the emission rules worked through in fraugster's
// recursiveAddColumnData/readColumnSchema recursion but generalized to the
// schema tree's own derived level maxima instead of re-deriving them.
package shred

import (
	"github.com/pkg/errors"

	"github.com/tempodb-io/parquetcore/pkg/parquetschema"
	"github.com/tempodb-io/parquetcore/pkg/perr"
)

// Record is a nested record: field name to scalar value, nested Record, or
// []any for a repeated field's elements (each a scalar or a Record).
type Record = map[string]any

// ColumnStream accumulates one leaf's shredded contribution to a row group.
type ColumnStream struct {
	Values  []any
	DLevels []uint32
	RLevels []uint32

	nullCount int64
}

// NullCount returns the number of positions where dLevel < the leaf's
// dLevelMax, i.e. the leaf (or an ancestor) was absent (§4.7).
func (c *ColumnStream) NullCount() int64 { return c.nullCount }

// WriteBuffer accumulates shredded column streams for one row group.
type WriteBuffer struct {
	Schema   *parquetschema.Schema
	Streams  map[string]*ColumnStream
	RowCount int
}

// NewWriteBuffer allocates an empty write buffer for schema.
func NewWriteBuffer(schema *parquetschema.Schema) *WriteBuffer {
	streams := make(map[string]*ColumnStream, len(schema.Leaves))
	for _, leaf := range schema.Leaves {
		streams[leaf.PathString()] = &ColumnStream{}
	}
	return &WriteBuffer{Schema: schema, Streams: streams}
}

// ShredRecord appends record's contribution to every leaf column stream and
// increments the row count by one.
func ShredRecord(schema *parquetschema.Schema, record Record, buf *WriteBuffer) error {
	if err := shredGroup(buf, schema.Root.Children, record, 0, 0); err != nil {
		return err
	}
	buf.RowCount++
	return nil
}

func shredGroup(buf *WriteBuffer, children []*parquetschema.Node, rec Record, dLevel, rLevel int) error {
	for _, child := range children {
		var val any
		if rec != nil {
			val = rec[child.Name]
		}
		if err := shredNode(buf, child, val, dLevel, rLevel); err != nil {
			return errors.Wrapf(err, "field %q", child.Name)
		}
	}
	return nil
}

func shredNode(buf *WriteBuffer, n *parquetschema.Node, val any, parentDLevel, rLevel int) error {
	if n.Repetition == parquetschema.Repeated {
		return shredRepeated(buf, n, val, parentDLevel, rLevel)
	}

	present := val != nil
	if _, isArray := val.([]any); isArray {
		return perr.New(perr.KindSchemaMismatch, "field %q is not repeated but got an array", n.PathString())
	}

	if n.Kind == parquetschema.KindLeaf {
		if present {
			buf.appendLeaf(n, val, n.DLevelMax, rLevel, true)
			return nil
		}
		if n.Repetition == parquetschema.Required {
			return perr.New(perr.KindSchemaMismatch, "required field %q is missing", n.PathString())
		}
		buf.appendLeaf(n, nil, parentDLevel, rLevel, false)
		return nil
	}

	// Group.
	if present {
		rec, ok := val.(Record)
		if !ok {
			return perr.New(perr.KindSchemaMismatch, "field %q: expected a record, got %T", n.PathString(), val)
		}
		return shredGroup(buf, n.Children, rec, n.DLevelMax, rLevel)
	}
	if n.Repetition == parquetschema.Required {
		return perr.New(perr.KindSchemaMismatch, "required field %q is missing", n.PathString())
	}
	emitAbsentSubtree(buf, n, parentDLevel, rLevel)
	return nil
}

func shredRepeated(buf *WriteBuffer, n *parquetschema.Node, val any, parentDLevel, rLevel int) error {
	elems, err := toSlice(val)
	if err != nil {
		return errors.Wrapf(err, "field %q", n.PathString())
	}
	if len(elems) == 0 {
		emitAbsentSubtree(buf, n, parentDLevel, rLevel)
		return nil
	}

	for i, e := range elems {
		r := rLevel
		if i > 0 {
			r = n.RLevelMax
		}
		if n.Kind == parquetschema.KindLeaf {
			if e == nil {
				return perr.New(perr.KindSchemaMismatch, "field %q: repeated element %d is nil", n.PathString(), i)
			}
			buf.appendLeaf(n, e, n.DLevelMax, r, true)
			continue
		}
		rec, ok := e.(Record)
		if !ok {
			return perr.New(perr.KindSchemaMismatch, "field %q: repeated element %d: expected a record, got %T", n.PathString(), i, e)
		}
		if err := shredGroup(buf, n.Children, rec, n.DLevelMax, r); err != nil {
			return err
		}
	}
	return nil
}

// toSlice normalizes a repeated field's raw value: nil stays nil (zero
// elements), a []any is used as-is, and any other non-nil value is coerced
// into a one-element slice (spec's decision for the "scalar where repeated
// expected" open question — see DESIGN.md).
func toSlice(val any) ([]any, error) {
	if val == nil {
		return nil, nil
	}
	if s, ok := val.([]any); ok {
		return s, nil
	}
	return []any{val}, nil
}

// emitAbsentSubtree places one placeholder, at the given level pair, into
// every leaf beneath n (n included if n is itself a leaf) — a single absent
// ancestor produces exactly one row-position per leaf below it, never one
// per (nonexistent) repeated element.
func emitAbsentSubtree(buf *WriteBuffer, n *parquetschema.Node, dLevel, rLevel int) {
	if n.Kind == parquetschema.KindLeaf {
		buf.appendLeaf(n, nil, dLevel, rLevel, false)
		return
	}
	for _, c := range n.Children {
		emitAbsentSubtree(buf, c, dLevel, rLevel)
	}
}

func (buf *WriteBuffer) appendLeaf(n *parquetschema.Node, val any, dLevel, rLevel int, hasValue bool) {
	s := buf.Streams[n.PathString()]
	s.DLevels = append(s.DLevels, uint32(dLevel))
	s.RLevels = append(s.RLevels, uint32(rLevel))
	if hasValue {
		s.Values = append(s.Values, val)
	} else {
		s.nullCount++
	}
}
