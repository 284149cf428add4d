// Package assemble implements the Dremel record assembler (§4.3): given a
// schema and the per-column streams a shredder produced, it reconstructs
// whole records or, for a single leaf path, a lazy pull-based sequence of
// values — the read-side mirror of pkg/shred.
package assemble

import (
	"github.com/tempodb-io/parquetcore/pkg/parquetschema"
	"github.com/tempodb-io/parquetcore/pkg/perr"
	"github.com/tempodb-io/parquetcore/pkg/shred"
)

// Record is a nested record, structurally identical to shred.Record.
type Record = shred.Record

// ColumnStream is the read-side view of a leaf's shredded stream.
type ColumnStream struct {
	Values  []any
	DLevels []uint32
	RLevels []uint32
}

// rowCursor walks one leaf's DLevels/RLevels/Values arrays one row at a
// time, tracking separate positions since Values only holds entries where
// dLevel == dLevelMax.
type rowCursor struct {
	leaf     *parquetschema.Node
	stream   *ColumnStream
	pos      int
	valuePos int
}

func newRowCursor(leaf *parquetschema.Node, s *ColumnStream) *rowCursor {
	return &rowCursor{leaf: leaf, stream: s}
}

func (c *rowCursor) done() bool { return c.pos >= len(c.stream.DLevels) }

// nextEntry consumes one (d, r[, value]) triple.
func (c *rowCursor) nextEntry() (d int, r int, value any, hasValue bool, err error) {
	if c.done() {
		return 0, 0, nil, false, perr.New(perr.KindCorruptStream, "column %q: row boundary before exhausting stream", c.leaf.PathString())
	}
	d = int(c.stream.DLevels[c.pos])
	r = int(c.stream.RLevels[c.pos])
	c.pos++
	if d > c.leaf.DLevelMax {
		return 0, 0, nil, false, perr.New(perr.KindCorruptStream, "column %q: dLevel %d exceeds max %d", c.leaf.PathString(), d, c.leaf.DLevelMax)
	}
	if r > c.leaf.RLevelMax {
		return 0, 0, nil, false, perr.New(perr.KindCorruptStream, "column %q: rLevel %d exceeds max %d", c.leaf.PathString(), r, c.leaf.RLevelMax)
	}
	if d == c.leaf.DLevelMax {
		if c.valuePos >= len(c.stream.Values) {
			return 0, 0, nil, false, perr.New(perr.KindCorruptStream, "column %q: value stream exhausted", c.leaf.PathString())
		}
		value = c.stream.Values[c.valuePos]
		c.valuePos++
		hasValue = true
	}
	return d, r, value, hasValue, nil
}

// readRow consumes all entries belonging to the next row: the first entry
// (rLevel = 0) and every subsequent entry until the next rLevel = 0 or the
// stream ends.
func (c *rowCursor) readRow() ([]levelEntry, error) {
	d, r, v, hasValue, err := c.nextEntry()
	if err != nil {
		return nil, err
	}
	if r != 0 {
		return nil, perr.New(perr.KindCorruptStream, "column %q: row does not start at rLevel 0", c.leaf.PathString())
	}
	entries := []levelEntry{{d: d, r: r, value: v, hasValue: hasValue}}
	for !c.done() {
		peekR := int(c.stream.RLevels[c.pos])
		if peekR == 0 {
			break
		}
		d, r, v, hasValue, err := c.nextEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, levelEntry{d: d, r: r, value: v, hasValue: hasValue})
	}
	return entries, nil
}

type levelEntry struct {
	d, r     int
	value    any
	hasValue bool
}

func pathNodesOf(leaf *parquetschema.Node) []*parquetschema.Node {
	var nodes []*parquetschema.Node
	for n := leaf; n != nil && n.Parent != nil; n = n.Parent {
		nodes = append([]*parquetschema.Node{n}, nodes...)
	}
	return nodes
}

// MaterializeRecords reconstructs exactly rowCount records from streams,
// one entry per leaf in schema.Leaves.
func MaterializeRecords(schema *parquetschema.Schema, streams map[string]*ColumnStream, rowCount int) ([]Record, error) {
	records := make([]Record, rowCount)
	for i := range records {
		records[i] = Record{}
	}

	for _, leaf := range schema.Leaves {
		s, ok := streams[leaf.PathString()]
		if !ok {
			return nil, perr.New(perr.KindCorruptStream, "missing column stream for %q", leaf.PathString())
		}
		cur := newRowCursor(leaf, s)
		nodes := pathNodesOf(leaf)
		idx := make([]int, leaf.RLevelMax+1)

		for row := 0; row < rowCount; row++ {
			entries, err := cur.readRow()
			if err != nil {
				return nil, err
			}
			for k := range idx {
				idx[k] = 0
			}
			for _, e := range entries {
				updateRepeatIndex(idx, e.r, leaf.RLevelMax)
				placeRecursive(records[row], nodes, 0, e.d, idx, e.value, e.hasValue)
			}
		}
		if !cur.done() {
			return nil, perr.New(perr.KindCorruptStream, "column %q: %d entries left over after %d rows", leaf.PathString(), len(s.DLevels)-cur.pos, rowCount)
		}
		if cur.valuePos != len(s.Values) {
			return nil, perr.New(perr.KindCorruptStream, "column %q: consumed %d of %d values", leaf.PathString(), cur.valuePos, len(s.Values))
		}
	}
	return records, nil
}

// updateRepeatIndex advances the per-repeated-ancestor element index array
// for one consumed (d, r) entry: ordinals deeper than r start a fresh
// element (index 0), the ordinal equal to r starts its next element, and
// shallower ordinals are untouched — the Dremel record-assembly automaton.
func updateRepeatIndex(idx []int, r, maxOrdinal int) {
	for k := 1; k <= maxOrdinal; k++ {
		switch {
		case k > r:
			idx[k] = 0
		case k == r:
			idx[k]++
		}
	}
}

// placeRecursive writes one leaf entry into the shared record tree,
// creating intermediate group maps and repeated-field slices as needed.
func placeRecursive(container Record, nodes []*parquetschema.Node, pos, d int, idx []int, val any, hasValue bool) {
	n := nodes[pos]
	isLast := pos == len(nodes)-1

	switch n.Repetition {
	case parquetschema.Required:
		if isLast {
			if hasValue {
				container[n.Name] = val
			}
			return
		}
		child := childRecord(container, n.Name)
		placeRecursive(child, nodes, pos+1, d, idx, val, hasValue)

	case parquetschema.Optional:
		if d < n.DLevelMax {
			return
		}
		if isLast {
			if hasValue {
				container[n.Name] = val
			}
			return
		}
		child := childRecord(container, n.Name)
		placeRecursive(child, nodes, pos+1, d, idx, val, hasValue)

	case parquetschema.Repeated:
		if d < n.DLevelMax {
			return
		}
		i := idx[n.RLevelMax]
		slice, _ := container[n.Name].([]any)
		for len(slice) <= i {
			if isLast {
				slice = append(slice, nil)
			} else {
				slice = append(slice, Record{})
			}
		}
		container[n.Name] = slice
		if isLast {
			if hasValue {
				slice[i] = val
			}
			return
		}
		child, ok := slice[i].(Record)
		if !ok {
			child = Record{}
			slice[i] = child
		}
		placeRecursive(child, nodes, pos+1, d, idx, val, hasValue)
	}
}

func childRecord(container Record, name string) Record {
	child, ok := container[name].(Record)
	if !ok {
		child = Record{}
		container[name] = child
	}
	return child
}

// MaterializeColumn reconstructs, one row at a time, the value at path:
// nil if absent, a scalar if present, or nested []any through any repeated
// ancestors along the path.
func MaterializeColumn(schema *parquetschema.Schema, stream *ColumnStream, path string) (*ColumnIterator, error) {
	leaf, ok := schema.LeafByPath(path)
	if !ok {
		return nil, perr.New(perr.KindSchemaMismatch, "no such column %q", path)
	}
	return &ColumnIterator{
		leaf:  leaf,
		nodes: pathNodesOf(leaf),
		cur:   newRowCursor(leaf, stream),
		idx:   make([]int, leaf.RLevelMax+1),
	}, nil
}

// ColumnIterator is a restartable, pull-based lazy sequence over one
// column's materialized values.
type ColumnIterator struct {
	leaf  *parquetschema.Node
	nodes []*parquetschema.Node
	cur   *rowCursor
	idx   []int
	err   error
	closed bool
}

// Next returns the next row's value, or ok=false once the column is
// exhausted or the iterator has been closed.
func (it *ColumnIterator) Next() (value any, ok bool, err error) {
	if it.closed || it.err != nil || it.cur.done() {
		return nil, false, it.err
	}
	entries, err := it.cur.readRow()
	if err != nil {
		it.err = err
		return nil, false, err
	}
	scratch := Record{}
	for k := range it.idx {
		it.idx[k] = 0
	}
	for _, e := range entries {
		updateRepeatIndex(it.idx, e.r, it.leaf.RLevelMax)
		placeRecursive(scratch, it.nodes, 0, e.d, it.idx, e.value, e.hasValue)
	}
	return extractPath(scratch, it.nodes[0].Name, it.nodes, 0), true, nil
}

// Close releases the iterator; it is safe to call more than once.
func (it *ColumnIterator) Close() { it.closed = true }

func extractPath(root Record, rootName string, nodes []*parquetschema.Node, pos int) any {
	raw, exists := root[rootName]
	if !exists {
		return nil
	}
	return extractValue(raw, nodes, pos)
}

func extractValue(v any, nodes []*parquetschema.Node, pos int) any {
	if v == nil {
		return nil
	}
	n := nodes[pos]
	isLast := pos == len(nodes)-1

	if n.Repetition == parquetschema.Repeated {
		slice, ok := v.([]any)
		if !ok {
			return nil
		}
		if isLast {
			return slice
		}
		out := make([]any, len(slice))
		for i, elem := range slice {
			rec, _ := elem.(Record)
			if rec == nil {
				out[i] = nil
				continue
			}
			out[i] = extractPath(rec, nodes[pos+1].Name, nodes, pos+1)
		}
		return out
	}

	if isLast {
		return v
	}
	rec, ok := v.(Record)
	if !ok {
		return nil
	}
	return extractPath(rec, nodes[pos+1].Name, nodes, pos+1)
}
