package format

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileMetaDataRoundTrip(t *testing.T) {
	ctx := context.Background()

	strType := TypeInt64
	rep := Optional
	nullCount := int64(3)

	meta := &FileMetaData{
		Version: 1,
		Schema: []*SchemaElement{
			{Name: "root", NumChildren: int32Ptr(1)},
			{Name: "id", Type: &strType, RepetitionType: &rep},
		},
		NumRows: 42,
		RowGroups: []*RowGroup{
			{
				TotalByteSize: 100,
				NumRows:       42,
				Columns: []*ColumnChunk{
					{
						FileOffset: 4,
						MetaData: &ColumnMetaData{
							Type:                  TypeInt64,
							Encodings:             []Encoding{EncodingPlain, EncodingRLE},
							PathInSchema:          []string{"id"},
							Codec:                 CompressionSnappy,
							NumValues:             42,
							TotalUncompressedSize: 336,
							TotalCompressedSize:   200,
							DataPageOffset:        4,
							Statistics: &Statistics{
								Min:       []byte{0, 0, 0, 0, 0, 0, 0, 0},
								Max:       []byte{41, 0, 0, 0, 0, 0, 0, 0},
								NullCount: &nullCount,
							},
						},
					},
				},
			},
		},
		KeyValueMetadata: []*KeyValue{
			{Key: "writer", Value: strPtr("parquetcore")},
		},
	}

	b, err := Marshal(ctx, meta)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	got := &FileMetaData{}
	n, err := Unmarshal(ctx, b, got)
	require.NoError(t, err)
	assert.Equal(t, len(b), n)

	assert.Equal(t, meta.Version, got.Version)
	assert.Equal(t, meta.NumRows, got.NumRows)
	require.Len(t, got.Schema, 2)
	assert.Equal(t, "id", got.Schema[1].Name)
	require.NotNil(t, got.Schema[1].Type)
	assert.Equal(t, TypeInt64, *got.Schema[1].Type)
	require.Len(t, got.RowGroups, 1)
	require.Len(t, got.RowGroups[0].Columns, 1)
	cm := got.RowGroups[0].Columns[0].MetaData
	require.NotNil(t, cm)
	assert.Equal(t, CompressionSnappy, cm.Codec)
	assert.Equal(t, []Encoding{EncodingPlain, EncodingRLE}, cm.Encodings)
	require.NotNil(t, cm.Statistics)
	require.NotNil(t, cm.Statistics.NullCount)
	assert.Equal(t, int64(3), *cm.Statistics.NullCount)
	require.Len(t, got.KeyValueMetadata, 1)
	assert.Equal(t, "writer", got.KeyValueMetadata[0].Key)
	require.NotNil(t, got.KeyValueMetadata[0].Value)
	assert.Equal(t, "parquetcore", *got.KeyValueMetadata[0].Value)
}

func TestPageHeaderRoundTripV1(t *testing.T) {
	ctx := context.Background()

	ph := &PageHeader{
		Type:                 PageTypeDataPage,
		UncompressedPageSize: 128,
		CompressedPageSize:   96,
		DataPageHeader: &DataPageHeader{
			NumValues:               10,
			Encoding:                EncodingPlain,
			DefinitionLevelEncoding: EncodingRLE,
			RepetitionLevelEncoding: EncodingRLE,
		},
	}

	b, err := Marshal(ctx, ph)
	require.NoError(t, err)

	got := &PageHeader{}
	n, err := Unmarshal(ctx, b, got)
	require.NoError(t, err)
	assert.Equal(t, len(b), n)
	assert.Equal(t, PageTypeDataPage, got.Type)
	require.NotNil(t, got.DataPageHeader)
	assert.Equal(t, int32(10), got.DataPageHeader.NumValues)
	assert.Nil(t, got.DataPageHeaderV2)
}

func TestPageHeaderRoundTripV2(t *testing.T) {
	ctx := context.Background()
	isCompressed := true

	ph := &PageHeader{
		Type:                 PageTypeDataPageV2,
		UncompressedPageSize: 256,
		CompressedPageSize:   256,
		DataPageHeaderV2: &DataPageHeaderV2{
			NumValues:                  20,
			NumNulls:                   2,
			NumRows:                    18,
			Encoding:                   EncodingPlain,
			DefinitionLevelsByteLength: 8,
			RepetitionLevelsByteLength: 0,
			IsCompressed:               &isCompressed,
		},
	}

	b, err := Marshal(ctx, ph)
	require.NoError(t, err)

	got := &PageHeader{}
	_, err = Unmarshal(ctx, b, got)
	require.NoError(t, err)
	require.NotNil(t, got.DataPageHeaderV2)
	assert.Equal(t, int32(20), got.DataPageHeaderV2.NumValues)
	require.NotNil(t, got.DataPageHeaderV2.IsCompressed)
	assert.True(t, *got.DataPageHeaderV2.IsCompressed)
}

func TestUnmarshalStopsAtStructEnd(t *testing.T) {
	ctx := context.Background()
	ph := &PageHeader{Type: PageTypeDataPage, UncompressedPageSize: 1, CompressedPageSize: 1}
	b, err := Marshal(ctx, ph)
	require.NoError(t, err)

	trailer := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	buf := append(append([]byte{}, b...), trailer...)

	got := &PageHeader{}
	n, err := Unmarshal(ctx, buf, got)
	require.NoError(t, err)
	assert.Equal(t, len(b), n, "must not consume bytes past the struct")
}

func strPtr(s string) *string { return &s }
