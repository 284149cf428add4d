package page

import (
	"context"

	"github.com/tempodb-io/parquetcore/pkg/format"
	"github.com/tempodb-io/parquetcore/pkg/parquetschema"
	"github.com/tempodb-io/parquetcore/pkg/perr"
)

// EncodedChunk is one column's fully assembled byte region, ready to be
// written verbatim into a row group, plus the ColumnMetaData describing it.
type EncodedChunk struct {
	Bytes    []byte
	MetaData *format.ColumnMetaData
}

// EncodeColumnChunk writes one leaf's entire column as a single data page
// (§4.6). One page per chunk keeps the writer simple; DecodeColumnChunk
// still loops to support chunks with more than one page on read.
func EncodeColumnChunk(leaf *parquetschema.Node, values []any, dLevels, rLevels []uint32, opts WriteOptions) (*EncodedChunk, error) {
	pg, err := EncodeDataPage(leaf, values, dLevels, rLevels, opts)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, len(pg.Header)+len(pg.Body))
	buf = append(buf, pg.Header...)
	buf = append(buf, pg.Body...)

	md := &format.ColumnMetaData{
		Type:                  format.Type(leaf.Type),
		Encodings:             []format.Encoding{format.EncodingPlain, format.EncodingRLE},
		PathInSchema:          leaf.Path,
		Codec:                 opts.Compression,
		NumValues:             int64(pg.NumValues),
		TotalUncompressedSize: int64(pg.UncompressedSize),
		TotalCompressedSize:   int64(len(buf)),
		Statistics:            pg.Statistics,
	}
	return &EncodedChunk{Bytes: buf, MetaData: md}, nil
}

// DecodeColumnChunk reads pages from data (the chunk's byte region, of
// exactly totalCompressedSize bytes) until it is exhausted, concatenating
// each page's streams in order (§4.6).
func DecodeColumnChunk(leaf *parquetschema.Node, data []byte, totalCompressedSize int64, codecID format.CompressionCodec) (*DecodedPage, error) {
	var values []any
	var dLevels, rLevels []uint32

	pos := int64(0)
	for pos < totalCompressedSize {
		header := &format.PageHeader{}
		n, err := format.Unmarshal(context.Background(), data[pos:], header)
		if err != nil {
			return nil, perr.Wrap(perr.KindCorruptStream, err, "page header")
		}
		pos += int64(n)

		bodyEnd := pos + int64(header.CompressedPageSize)
		if bodyEnd > int64(len(data)) {
			return nil, perr.New(perr.KindCorruptStream, "page body extends past available data")
		}

		dp, err := DecodeDataPage(leaf, header, codecID, data[pos:bodyEnd])
		if err != nil {
			return nil, err
		}
		pos = bodyEnd

		values = append(values, dp.Values...)
		dLevels = append(dLevels, dp.DLevels...)
		rLevels = append(rLevels, dp.RLevels...)
	}
	if pos != totalCompressedSize {
		return nil, perr.New(perr.KindCorruptStream, "column chunk: consumed %d of %d declared bytes", pos, totalCompressedSize)
	}
	return &DecodedPage{Values: values, DLevels: dLevels, RLevels: rLevels}, nil
}
