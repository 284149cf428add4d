package parquetfile

import (
	"github.com/tempodb-io/parquetcore/pkg/assemble"
)

// Cursor iterates a file's records row group by row group, decoding and
// materializing one row group at a time (§4.3, §4.8) rather than holding
// the whole file's records in memory.
type Cursor struct {
	reader   *Reader
	rowGroup int

	records []assemble.Record
	pos     int
	err     error
}

// GetCursor returns a Cursor positioned before the file's first record.
func (fr *Reader) GetCursor() *Cursor {
	return &Cursor{reader: fr}
}

// Next advances the cursor and returns the next record, or ok=false once
// every row group has been consumed (or a decode error occurred, in which
// case err is non-nil).
func (c *Cursor) Next() (rec assemble.Record, ok bool, err error) {
	if c.err != nil {
		return nil, false, c.err
	}
	for c.pos >= len(c.records) {
		if c.rowGroup >= c.reader.RowGroupCount() {
			return nil, false, nil
		}
		if err := c.loadRowGroup(c.rowGroup); err != nil {
			c.err = err
			return nil, false, err
		}
		c.rowGroup++
		c.pos = 0
	}
	rec = c.records[c.pos]
	c.pos++
	return rec, true, nil
}

func (c *Cursor) loadRowGroup(idx int) error {
	schema := c.reader.schema
	streams := make(map[string]*assemble.ColumnStream, len(schema.Leaves))

	for col, leaf := range schema.Leaves {
		dp, err := c.reader.ColumnChunk(idx, col)
		if err != nil {
			return err
		}
		streams[leaf.PathString()] = &assemble.ColumnStream{
			Values:  dp.Values,
			DLevels: dp.DLevels,
			RLevels: dp.RLevels,
		}
	}

	rowCount := int(c.reader.metadata.RowGroups[idx].NumRows)
	records, err := assemble.MaterializeRecords(schema, streams, rowCount)
	if err != nil {
		return err
	}
	c.records = records
	return nil
}

// Close releases the current row group's records; Next returns no further
// records afterward, including any left in that row group. Safe to call
// more than once.
func (c *Cursor) Close() {
	c.records = nil
	c.pos = 0
	c.rowGroup = c.reader.RowGroupCount()
}
