package shred

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempodb-io/parquetcore/pkg/parquetschema"
)

// dremelDocSchema builds the DocId/Links/Name schema from the canonical
// Dremel nested-repeated worked example.
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

func recordA() Record {
	return Record{
		"DocId": int64(10),
		"Links": Record{
			"Forward": []any{int64(20), int64(40), int64(60)},
		},
		"Name": []any{
			Record{
				"Language": []any{
					Record{"Code": "en-us", "Country": "us"},
					Record{"Code": "en"},
				},
				"Url": "http://A",
			},
			Record{"Url": "http://B"},
			Record{
				"Language": []any{
					Record{"Code": "en-gb", "Country": "gb"},
				},
			},
		},
	}
}

func recordB() Record {
	return Record{
		"DocId": int64(20),
		"Links": Record{
			"Backward": []any{int64(10), int64(30)},
			"Forward":  []any{int64(80)},
		},
		"Name": []any{
			Record{"Url": "http://C"},
		},
	}
}

func TestShredDremelExample(t *testing.T) {
	schema := dremelDocSchema(t)
	buf := NewWriteBuffer(schema)

	require.NoError(t, ShredRecord(schema, recordA(), buf))
	require.NoError(t, ShredRecord(schema, recordB(), buf))
	assert.Equal(t, 2, buf.RowCount)

	docID := buf.Streams["DocId"]
	assert.Equal(t, []uint32{0, 0}, docID.DLevels)
	assert.Equal(t, []uint32{0, 0}, docID.RLevels)
	assert.Equal(t, []any{int64(10), int64(20)}, docID.Values)

	forward := buf.Streams["Links.Forward"]
	assert.Equal(t, []uint32{2, 2, 2, 2}, forward.DLevels)
	assert.Equal(t, []uint32{0, 1, 1, 0}, forward.RLevels)
	assert.Equal(t, []any{int64(20), int64(40), int64(60), int64(80)}, forward.Values)

	backward := buf.Streams["Links.Backward"]
	assert.Equal(t, []uint32{1, 2, 2}, backward.DLevels)
	assert.Equal(t, []uint32{0, 0, 1}, backward.RLevels)
	assert.Equal(t, []any{int64(10), int64(30)}, backward.Values)

	url := buf.Streams["Name.Url"]
	assert.Equal(t, []uint32{2, 2, 1, 2}, url.DLevels)
	assert.Equal(t, []uint32{0, 1, 1, 0}, url.RLevels)
	assert.Equal(t, []any{"http://A", "http://B", "http://C"}, url.Values)

	code := buf.Streams["Name.Language.Code"]
	assert.Equal(t, []uint32{2, 2, 1, 2, 1}, code.DLevels)
	assert.Equal(t, []uint32{0, 2, 1, 1, 0}, code.RLevels)
	assert.Equal(t, []any{"en-us", "en", "en-gb"}, code.Values)

	country := buf.Streams["Name.Language.Country"]
	assert.Equal(t, []uint32{3, 2, 1, 3, 1}, country.DLevels)
	assert.Equal(t, []uint32{0, 2, 1, 1, 0}, country.RLevels)
	assert.Equal(t, []any{"us", "gb"}, country.Values)
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

func TestShredOptionalEmptyNested(t *testing.T) {
	schema := fruitSchema(t)
	buf := NewWriteBuffer(schema)

	records := []Record{
		{},
		{"fruit": Record{}},
		{"fruit": Record{"color": []any{}}},
		{"fruit": Record{"color": []any{"red", "blue"}, "type": "x"}},
	}
	for _, r := range records {
		require.NoError(t, ShredRecord(schema, r, buf))
	}
	assert.Equal(t, 4, buf.RowCount)

	color := schema.Root.Children[0].Children[0] // fruit.color
	assert.Equal(t, 2, color.DLevelMax)
	assert.Equal(t, 1, color.RLevelMax)
}

func TestShredRequiredFieldMissing(t *testing.T) {
	schema := dremelDocSchema(t)
	buf := NewWriteBuffer(schema)
	err := ShredRecord(schema, Record{}, buf)
	require.Error(t, err)
}

func TestShredNonRepeatedGivenArray(t *testing.T) {
	schema := dremelDocSchema(t)
	buf := NewWriteBuffer(schema)
	err := ShredRecord(schema, Record{"DocId": []any{int64(1), int64(2)}}, buf)
	require.Error(t, err)
}
