package parquetfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempodb-io/parquetcore/pkg/format"
	"github.com/tempodb-io/parquetcore/pkg/parquetschema"
	"github.com/tempodb-io/parquetcore/pkg/perr"
	"github.com/tempodb-io/parquetcore/pkg/shred"
)

func personSchema(t *testing.T) *parquetschema.Schema {
	t.Helper()
	fields := []parquetschema.FieldDescriptor{
		{Name: "id", Leaf: &parquetschema.LeafDescriptor{Type: parquetschema.Int64}},
		{Name: "name", Leaf: &parquetschema.LeafDescriptor{Type: parquetschema.ByteArray, Optional: true, LogicalType: parquetschema.UTF8}},
		{Name: "score", Leaf: &parquetschema.LeafDescriptor{Type: parquetschema.Double, Optional: true}},
	}
	s, err := parquetschema.Build(fields)
	require.NoError(t, err)
	return s
}

func TestWriteReadRoundTripSimpleSchema(t *testing.T) {
	schema := personSchema(t)
	var buf bytes.Buffer

	w, err := OpenWriter(&buf, schema, WriterConfig{CreatedBy: "parquetfile_test writer 1.0"})
	require.NoError(t, err)
	w.SetMetadata("created_by", "parquetfile_test")

	rows := []shred.Record{
		{"id": int64(1), "name": "alice", "score": 9.5},
		{"id": int64(2), "score": 3.25},
		{"id": int64(3), "name": "carol"},
	}
	for _, r := range rows {
		require.NoError(t, w.AppendRow(r))
	}
	require.NoError(t, w.Close())

	fr, err := OpenReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, int64(3), fr.NumRows())
	assert.Equal(t, 1, fr.RowGroupCount())
	assert.Equal(t, "parquetfile_test", fr.Metadata()["created_by"])
	assert.Equal(t, "parquetfile_test writer 1.0", fr.CreatedBy())

	cur := fr.GetCursor()
	var got []shred.Record
	for {
		rec, ok, err := cur.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, rec)
	}
	require.Len(t, got, 3)
	assert.Equal(t, shred.Record{"id": int64(1), "name": "alice", "score": 9.5}, got[0])
	assert.Equal(t, shred.Record{"id": int64(2), "score": 3.25}, got[1])
	assert.Equal(t, shred.Record{"id": int64(3), "name": "carol"}, got[2])
}

func TestFileEnvelopeCompressionAndVersionMatrix(t *testing.T) {
	schema := personSchema(t)
	codecs := []format.CompressionCodec{
		format.CompressionUncompressed,
		format.CompressionSnappy,
		format.CompressionGzip,
		format.CompressionBrotli,
		format.CompressionLZ4,
	}

	const numRows = 250
	rows := make([]shred.Record, numRows)
	for i := 0; i < numRows; i++ {
		r := shred.Record{"id": int64(i)}
		if i%3 != 0 {
			r["name"] = fmt.Sprintf("row-%d", i)
		}
		if i%5 != 0 {
			r["score"] = float64(i) / 2
		}
		rows[i] = r
	}

	for _, codec := range codecs {
		for _, useV2 := range []bool{false, true} {
			var buf bytes.Buffer
			w, err := OpenWriter(&buf, schema, WriterConfig{
				RowGroupSize:  100,
				UseDataPageV2: useV2,
				Compression:   codec,
			})
			require.NoError(t, err, "codec=%v v2=%v", codec, useV2)
			for _, r := range rows {
				require.NoError(t, w.AppendRow(r))
			}
			require.NoError(t, w.Close())

			fr, err := OpenReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
			require.NoError(t, err, "codec=%v v2=%v", codec, useV2)
			assert.Equal(t, int64(numRows), fr.NumRows())
			assert.Equal(t, 3, fr.RowGroupCount()) // 100 + 100 + 50

			cur := fr.GetCursor()
			var got []shred.Record
			for {
				rec, ok, err := cur.Next()
				require.NoError(t, err, "codec=%v v2=%v", codec, useV2)
				if !ok {
					break
				}
				got = append(got, rec)
			}
			require.Len(t, got, numRows, "codec=%v v2=%v", codec, useV2)
			assert.Equal(t, rows, got, "codec=%v v2=%v", codec, useV2)
		}
	}
}

func TestStatisticsAcrossRowGroups(t *testing.T) {
	schema := personSchema(t)
	var buf bytes.Buffer

	w, err := OpenWriter(&buf, schema, WriterConfig{RowGroupSize: 2000})
	require.NoError(t, err)

	names := []string{"north", "south", "east", "west"}
	const numRows = 4000
	const nullEvery = 2 // half the rows omit "name" -> 2000 nulls
	for i := 0; i < numRows; i++ {
		r := shred.Record{"id": int64(i)}
		if i%nullEvery != 0 {
			r["name"] = names[i%len(names)]
		}
		require.NoError(t, w.AppendRow(r))
	}
	require.NoError(t, w.Close())

	fr, err := OpenReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Equal(t, 2, fr.RowGroupCount())

	nameColumn := -1
	for i, leaf := range fr.Schema().Leaves {
		if leaf.PathString() == "name" {
			nameColumn = i
		}
	}
	require.NotEqual(t, -1, nameColumn)

	var totalNulls int64
	for rg := 0; rg < fr.RowGroupCount(); rg++ {
		st := fr.metadata.RowGroups[rg].Columns[nameColumn].MetaData.Statistics
		require.NotNil(t, st)
		require.NotNil(t, st.NullCount)
		totalNulls += *st.NullCount
		require.NotNil(t, st.DistinctCount)
		assert.LessOrEqual(t, *st.DistinctCount, int64(len(names)))
	}
	assert.Equal(t, int64(numRows/nullEvery), totalNulls)
}

func TestCorruptTruncatedTrailerMagicRejected(t *testing.T) {
	schema := personSchema(t)
	var buf bytes.Buffer
	w, err := OpenWriter(&buf, schema, WriterConfig{})
	require.NoError(t, err)
	require.NoError(t, w.AppendRow(shred.Record{"id": int64(1)}))
	require.NoError(t, w.Close())

	corrupted := append([]byte(nil), buf.Bytes()...)
	copy(corrupted[len(corrupted)-4:], "XXXX")

	_, err = OpenReader(bytes.NewReader(corrupted), int64(len(corrupted)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, perr.CorruptStream))
}

func TestCorruptOversizedFooterLengthRejected(t *testing.T) {
	schema := personSchema(t)
	var buf bytes.Buffer
	w, err := OpenWriter(&buf, schema, WriterConfig{})
	require.NoError(t, err)
	require.NoError(t, w.AppendRow(shred.Record{"id": int64(1)}))
	require.NoError(t, w.Close())

	corrupted := append([]byte(nil), buf.Bytes()...)
	binary.LittleEndian.PutUint32(corrupted[len(corrupted)-8:], uint32(len(corrupted)*10))

	_, err = OpenReader(bytes.NewReader(corrupted), int64(len(corrupted)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, perr.CorruptStream))
}

func TestCorruptHeaderMagicRejected(t *testing.T) {
	schema := personSchema(t)
	var buf bytes.Buffer
	w, err := OpenWriter(&buf, schema, WriterConfig{})
	require.NoError(t, err)
	require.NoError(t, w.AppendRow(shred.Record{"id": int64(1)}))
	require.NoError(t, w.Close())

	corrupted := append([]byte(nil), buf.Bytes()...)
	copy(corrupted[:4], "XXXX")

	_, err = OpenReader(bytes.NewReader(corrupted), int64(len(corrupted)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, perr.CorruptStream))
}
