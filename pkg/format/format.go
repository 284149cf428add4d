// Package format holds the on-disk Thrift structures of the Parquet file
// footer and page headers (§4.6, §4.8), serialized with the Thrift compact
// binary protocol. The types below are hand-written in the same idiom
// Thrift codegen produces (a Read/Write pair per struct driven by
// thrift.TProtocol), the way hangxie/parquet-go's vendored `parquet`
// package does for the same wire structures.
package format

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
)

// Type is the on-disk primitive physical type enum.
type Type int32

const (
	TypeBoolean Type = iota
	TypeInt32
	TypeInt64
	TypeInt96
	TypeFloat
	TypeDouble
	TypeByteArray
	TypeFixedLenByteArray
)

// ConvertedType is the legacy logical type enum used alongside LogicalType
// annotations; the core only round-trips the handful spec §6 names.
type ConvertedType int32

const (
	ConvertedUTF8 ConvertedType = iota
	ConvertedDate
	ConvertedTimestampMillis
	ConvertedTimestampMicros
	ConvertedInterval
	ConvertedBSON
)

// FieldRepetitionType mirrors parquet.thrift's FieldRepetitionType.
type FieldRepetitionType int32

const (
	Required FieldRepetitionType = iota
	Optional
	Repeated
)

// Encoding is the value/level encoding enum. Only Plain and RLE are
// produced by this core; the others are recognized so Unsupported can be
// reported precisely instead of failing as a generic decode error.
type Encoding int32

const (
	EncodingPlain                Encoding = 0
	EncodingPlainDictionary      Encoding = 2
	EncodingRLE                  Encoding = 3
	EncodingBitPacked            Encoding = 4 // deprecated on-wire code, recognized only
	EncodingDeltaBinaryPacked    Encoding = 5
	EncodingDeltaLengthByteArray Encoding = 6
	EncodingDeltaByteArray       Encoding = 7
	EncodingRLEDictionary        Encoding = 8
	EncodingByteStreamSplit      Encoding = 9
)

// CompressionCodec is the compression algorithm enum (§6).
type CompressionCodec int32

const (
	CompressionUncompressed CompressionCodec = iota
	CompressionSnappy
	CompressionGzip
	CompressionLZO
	CompressionBrotli
	CompressionLZ4
	CompressionZstd
)

// PageType distinguishes the four page kinds; this core writes and reads
// only DataPage and DataPageV2 (§4.6).
type PageType int32

const (
	PageTypeDataPage PageType = iota
	PageTypeIndexPage
	PageTypeDictionaryPage
	PageTypeDataPageV2
)

// SchemaElement is one pre-order entry of FileMetaData.Schema (§4.1, §4.8).
type SchemaElement struct {
	Type           *Type
	TypeLength     *int32
	RepetitionType *FieldRepetitionType
	Name           string
	NumChildren    *int32
	ConvertedType  *ConvertedType
	Scale          *int32
	Precision      *int32
	FieldID        *int32
}

// Statistics is a column chunk's per-row-group statistics (§4.7).
type Statistics struct {
	Min          []byte
	Max          []byte
	NullCount    *int64
	DistinctCount *int64
	MinValue     []byte
	MaxValue     []byte
}

// ColumnMetaData describes one column chunk's encodings, codec, path, and
// byte offsets/sizes (§4.6, §4.8).
type ColumnMetaData struct {
	Type                  Type
	Encodings             []Encoding
	PathInSchema          []string
	Codec                 CompressionCodec
	NumValues             int64
	TotalUncompressedSize int64
	TotalCompressedSize   int64
	DataPageOffset        int64
	DictionaryPageOffset  *int64
	Statistics            *Statistics
}

// ColumnChunk is one column's stored region within a row group.
type ColumnChunk struct {
	FileOffset int64
	MetaData   *ColumnMetaData
}

// RowGroup is a horizontal partition of the dataset (§3).
type RowGroup struct {
	Columns             []*ColumnChunk
	TotalByteSize       int64
	NumRows             int64
	FileOffset          *int64
	TotalCompressedSize *int64
}

// KeyValue is one user metadata entry.
type KeyValue struct {
	Key   string
	Value *string
}

// FileMetaData is the footer payload (§4.8).
type FileMetaData struct {
	Version          int32
	Schema           []*SchemaElement
	NumRows          int64
	RowGroups        []*RowGroup
	KeyValueMetadata []*KeyValue
	CreatedBy        *string
}

// DataPageHeader is the v1 data page header (§4.6).
type DataPageHeader struct {
	NumValues               int32
	Encoding                Encoding
	DefinitionLevelEncoding Encoding
	RepetitionLevelEncoding Encoding
	Statistics              *Statistics
}

// DataPageHeaderV2 is the v2 data page header (§4.6): rep/def-level byte
// lengths are carried explicitly and only the values portion is ever
// compressed.
type DataPageHeaderV2 struct {
	NumValues                  int32
	NumNulls                   int32
	NumRows                    int32
	Encoding                   Encoding
	DefinitionLevelsByteLength int32
	RepetitionLevelsByteLength int32
	IsCompressed               *bool
	Statistics                 *Statistics
}

// PageHeader precedes every page in a column chunk.
type PageHeader struct {
	Type                 PageType
	UncompressedPageSize int32
	CompressedPageSize   int32
	DataPageHeader       *DataPageHeader
	DataPageHeaderV2     *DataPageHeaderV2
}

var thriftCfg = &thrift.TConfiguration{}

// NewCompactProtocol wraps a transport with the Thrift compact binary
// protocol, matching hangxie/parquet-go's ReadPageHeader/DataPageCompress
// use of thrift.NewTCompactProtocolConf.
func NewCompactProtocol(t thrift.TTransport) thrift.TProtocol {
	return thrift.NewTCompactProtocolConf(t, thriftCfg)
}

// Marshal serializes a Thrift struct (PageHeader or FileMetaData) using the
// compact protocol, mirroring hangxie/parquet-go's thrift.NewTSerializer
// usage in DataPageCompress.
func Marshal(ctx context.Context, w thrift.TStruct) ([]byte, error) {
	ts := thrift.NewTSerializer()
	ts.Protocol = thrift.NewTCompactProtocolFactoryConf(thriftCfg).GetProtocol(ts.Transport)
	return ts.Write(ctx, w)
}

// Unmarshal deserializes a Thrift struct previously produced by Marshal,
// returning the number of bytes consumed from b.
func Unmarshal(ctx context.Context, b []byte, r thrift.TStruct) (int, error) {
	tr := newCountingTransport(b)
	proto := NewCompactProtocol(tr)
	if err := r.Read(ctx, proto); err != nil {
		return 0, err
	}
	return tr.pos, nil
}
