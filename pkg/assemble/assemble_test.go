package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempodb-io/parquetcore/pkg/parquetschema"
	"github.com/tempodb-io/parquetcore/pkg/shred"
)

func dremelDocSchema(t *testing.T) *parquetschema.Schema {
	t.Helper()
	fields := []parquetschema.FieldDescriptor{
		{Name: "DocId", Leaf: &parquetschema.LeafDescriptor{Type: parquetschema.Int64}},
		{
			Name: "Links",
			Group: &parquetschema.GroupDescriptor{
				Optional: true,
				Fields: []parquetschema.FieldDescriptor{
					{Name: "Backward", Leaf: &parquetschema.LeafDescriptor{Type: parquetschema.Int64, Repeated: true}},
					{Name: "Forward", Leaf: &parquetschema.LeafDescriptor{Type: parquetschema.Int64, Repeated: true}},
				},
			},
		},
		{
			Name: "Name",
			Group: &parquetschema.GroupDescriptor{
				Repeated: true,
				Fields: []parquetschema.FieldDescriptor{
					{
						Name: "Language",
						Group: &parquetschema.GroupDescriptor{
							Repeated: true,
							Fields: []parquetschema.FieldDescriptor{
								{Name: "Code", Leaf: &parquetschema.LeafDescriptor{Type: parquetschema.ByteArray, LogicalType: parquetschema.UTF8}},
								{Name: "Country", Leaf: &parquetschema.LeafDescriptor{Type: parquetschema.ByteArray, Optional: true, LogicalType: parquetschema.UTF8}},
							},
						},
					},
					{Name: "Url", Leaf: &parquetschema.LeafDescriptor{Type: parquetschema.ByteArray, Optional: true, LogicalType: parquetschema.UTF8}},
				},
			},
		},
	}
	s, err := parquetschema.Build(fields)
	require.NoError(t, err)
	return s
}

func toAssembleStreams(buf *shred.WriteBuffer) map[string]*ColumnStream {
	out := make(map[string]*ColumnStream, len(buf.Streams))
	for path, s := range buf.Streams {
		out[path] = &ColumnStream{Values: s.Values, DLevels: s.DLevels, RLevels: s.RLevels}
	}
	return out
}

func recordA() shred.Record {
	return shred.Record{
		"DocId": int64(10),
		"Links": shred.Record{
			"Forward": []any{int64(20), int64(40), int64(60)},
		},
		"Name": []any{
			shred.Record{
				"Language": []any{
					shred.Record{"Code": "en-us", "Country": "us"},
					shred.Record{"Code": "en"},
				},
				"Url": "http://A",
			},
			shred.Record{"Url": "http://B"},
			shred.Record{
				"Language": []any{
					shred.Record{"Code": "en-gb", "Country": "gb"},
				},
			},
		},
	}
}

func recordB() shred.Record {
	return shred.Record{
		"DocId": int64(20),
		"Links": shred.Record{
			"Backward": []any{int64(10), int64(30)},
			"Forward":  []any{int64(80)},
		},
		"Name": []any{
			shred.Record{"Url": "http://C"},
		},
	}
}

func TestMaterializeDremelExample(t *testing.T) {
	schema := dremelDocSchema(t)
	buf := shred.NewWriteBuffer(schema)
	require.NoError(t, shred.ShredRecord(schema, recordA(), buf))
	require.NoError(t, shred.ShredRecord(schema, recordB(), buf))

	records, err := MaterializeRecords(schema, toAssembleStreams(buf), buf.RowCount)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Record(recordA()), records[0])
	assert.Equal(t, Record(recordB()), records[1])
}

func fruitSchema(t *testing.T) *parquetschema.Schema {
	t.Helper()
	fields := []parquetschema.FieldDescriptor{
		{
			Name: "fruit",
			Group: &parquetschema.GroupDescriptor{
				Optional: true,
				Fields: []parquetschema.FieldDescriptor{
					{Name: "color", Leaf: &parquetschema.LeafDescriptor{Type: parquetschema.ByteArray, Repeated: true, LogicalType: parquetschema.UTF8}},
					{Name: "type", Leaf: &parquetschema.LeafDescriptor{Type: parquetschema.ByteArray, Optional: true, LogicalType: parquetschema.UTF8}},
				},
			},
		},
	}
	s, err := parquetschema.Build(fields)
	require.NoError(t, err)
	return s
}

func TestMaterializeOptionalEmptyNestedCanonicalizesToAbsent(t *testing.T) {
	schema := fruitSchema(t)
	buf := shred.NewWriteBuffer(schema)

	input := []shred.Record{
		{},
		{"fruit": shred.Record{}},
		{"fruit": shred.Record{"color": []any{}}},
		{"fruit": shred.Record{"color": []any{"red", "blue"}, "type": "x"}},
	}
	for _, r := range input {
		require.NoError(t, shred.ShredRecord(schema, r, buf))
	}

	records, err := MaterializeRecords(schema, toAssembleStreams(buf), buf.RowCount)
	require.NoError(t, err)

	want := []Record{
		{},
		{"fruit": Record{}},
		{"fruit": Record{}},
		{"fruit": Record{"color": []any{"red", "blue"}, "type": "x"}},
	}
	assert.Equal(t, want, records)
}

func TestMaterializeColumnNestedArray(t *testing.T) {
	schema := dremelDocSchema(t)
	buf := shred.NewWriteBuffer(schema)
	require.NoError(t, shred.ShredRecord(schema, recordA(), buf))
	require.NoError(t, shred.ShredRecord(schema, recordB(), buf))

	streams := toAssembleStreams(buf)
	it, err := MaterializeColumn(schema, streams["Name.Url"], "Name.Url")
	require.NoError(t, err)

	v, ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []any{"http://A", "http://B", nil}, v)

	v, ok, err = it.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []any{"http://C"}, v)

	_, ok, err = it.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMaterializeRejectsUnknownColumn(t *testing.T) {
	schema := dremelDocSchema(t)
	_, err := MaterializeColumn(schema, &ColumnStream{}, "NoSuchField")
	require.Error(t, err)
}

func TestMaterializeDetectsRowBoundaryCorruption(t *testing.T) {
	schema := dremelDocSchema(t)
	streams := map[string]*ColumnStream{
		"DocId":                 {DLevels: []uint32{0}, RLevels: []uint32{0}, Values: []any{int64(1)}},
		"Links.Backward":        {},
		"Links.Forward":         {},
		"Name.Url":              {},
		"Name.Language.Code":    {},
		"Name.Language.Country": {},
	}
	_, err := MaterializeRecords(schema, streams, 2)
	require.Error(t, err)
}
