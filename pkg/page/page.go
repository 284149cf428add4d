package page

import (
	"context"

	"github.com/tempodb-io/parquetcore/pkg/compress"
	"github.com/tempodb-io/parquetcore/pkg/format"
	"github.com/tempodb-io/parquetcore/pkg/levels"
	"github.com/tempodb-io/parquetcore/pkg/parquetschema"
	"github.com/tempodb-io/parquetcore/pkg/perr"
)

// WriteOptions configures how one column's pages are produced (§4.6, §6).
type WriteOptions struct {
	UseDataPageV2 bool
	Compression   format.CompressionCodec
}

// EncodedPage is a page ready to append to a column chunk's byte region:
// Header immediately followed by Body.
type EncodedPage struct {
	Header           []byte
	Body             []byte
	NumValues        int
	UncompressedSize int
	Statistics       *format.Statistics
}

// EncodeDataPage builds one v1 or v2 data page holding an entire column's
// leaf streams (§4.6). dLevels/rLevels cover every position, including
// nulls; values holds only the positions where dLevel == leaf.DLevelMax.
func EncodeDataPage(leaf *parquetschema.Node, values []any, dLevels, rLevels []uint32, opts WriteOptions) (*EncodedPage, error) {
	numValues := len(dLevels)
	numNulls := numValues - len(values)
	numRows := countRowStarts(rLevels)

	stats := newStatsAccumulator(leaf)
	valueIdx := 0
	for _, d := range dLevels {
		if int(d) == leaf.DLevelMax {
			if err := stats.observe(values[valueIdx]); err != nil {
				return nil, err
			}
			valueIdx++
		} else {
			stats.observeNull()
		}
	}
	statistics, err := stats.finish()
	if err != nil {
		return nil, err
	}

	valBytes, err := encodePlainValues(leaf, values)
	if err != nil {
		return nil, err
	}

	dBitWidth := levels.BitWidth(leaf.DLevelMax)
	rBitWidth := levels.BitWidth(leaf.RLevelMax)

	if opts.UseDataPageV2 {
		return encodeDataPageV2(dLevels, rLevels, valBytes, dBitWidth, rBitWidth, int32(numValues), int32(numNulls), int32(numRows), statistics, opts.Compression)
	}
	return encodeDataPageV1(dLevels, rLevels, valBytes, dBitWidth, rBitWidth, int32(numValues), statistics, opts.Compression)
}

func encodeDataPageV1(dLevels, rLevels []uint32, valBytes []byte, dBitWidth, rBitWidth int, numValues int32, statistics *format.Statistics, codecID format.CompressionCodec) (*EncodedPage, error) {
	rBytes := levels.EncodeEnveloped(rLevels, rBitWidth)
	dBytes := levels.EncodeEnveloped(dLevels, dBitWidth)

	body := make([]byte, 0, len(rBytes)+len(dBytes)+len(valBytes))
	body = append(body, rBytes...)
	body = append(body, dBytes...)
	body = append(body, valBytes...)
	uncompressedSize := len(body)

	codec, err := compress.Get(codecID)
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Encode(nil, body)
	if err != nil {
		return nil, err
	}

	header := &format.PageHeader{
		Type:                 format.PageTypeDataPage,
		UncompressedPageSize: int32(uncompressedSize),
		CompressedPageSize:   int32(len(compressed)),
		DataPageHeader: &format.DataPageHeader{
			NumValues:               numValues,
			Encoding:                format.EncodingPlain,
			DefinitionLevelEncoding: format.EncodingRLE,
			RepetitionLevelEncoding: format.EncodingRLE,
			Statistics:              statistics,
		},
	}
	headerBytes, err := format.Marshal(context.Background(), header)
	if err != nil {
		return nil, err
	}
	return &EncodedPage{Header: headerBytes, Body: compressed, NumValues: int(numValues), UncompressedSize: uncompressedSize, Statistics: statistics}, nil
}

func encodeDataPageV2(dLevels, rLevels []uint32, valBytes []byte, dBitWidth, rBitWidth int, numValues, numNulls, numRows int32, statistics *format.Statistics, codecID format.CompressionCodec) (*EncodedPage, error) {
	rBytes := levels.EncodeRaw(rLevels, rBitWidth)
	dBytes := levels.EncodeRaw(dLevels, dBitWidth)

	codec, err := compress.Get(codecID)
	if err != nil {
		return nil, err
	}
	isCompressed := codecID != format.CompressionUncompressed
	compressedValues, err := codec.Encode(nil, valBytes)
	if err != nil {
		return nil, err
	}

	uncompressedSize := len(rBytes) + len(dBytes) + len(valBytes)
	body := make([]byte, 0, len(rBytes)+len(dBytes)+len(compressedValues))
	body = append(body, rBytes...)
	body = append(body, dBytes...)
	body = append(body, compressedValues...)

	header := &format.PageHeader{
		Type:                 format.PageTypeDataPageV2,
		UncompressedPageSize: int32(uncompressedSize),
		CompressedPageSize:   int32(len(body)),
		DataPageHeaderV2: &format.DataPageHeaderV2{
			NumValues:                  numValues,
			NumNulls:                   numNulls,
			NumRows:                    numRows,
			Encoding:                   format.EncodingPlain,
			DefinitionLevelsByteLength: int32(len(dBytes)),
			RepetitionLevelsByteLength: int32(len(rBytes)),
			IsCompressed:               &isCompressed,
			Statistics:                 statistics,
		},
	}
	headerBytes, err := format.Marshal(context.Background(), header)
	if err != nil {
		return nil, err
	}
	return &EncodedPage{Header: headerBytes, Body: body, NumValues: int(numValues), UncompressedSize: uncompressedSize, Statistics: statistics}, nil
}

// DecodedPage is one data page's reconstructed leaf streams.
type DecodedPage struct {
	Values  []any
	DLevels []uint32
	RLevels []uint32
}

// DecodeDataPage parses header.CompressedPageSize bytes of body (the page
// body only, header already consumed) into a leaf's streams, given the
// column chunk's compression codec.
func DecodeDataPage(leaf *parquetschema.Node, header *format.PageHeader, codecID format.CompressionCodec, body []byte) (*DecodedPage, error) {
	switch header.Type {
	case format.PageTypeDataPage:
		return decodeDataPageV1(leaf, header, codecID, body)
	case format.PageTypeDataPageV2:
		return decodeDataPageV2(leaf, header, codecID, body)
	case format.PageTypeDictionaryPage:
		return nil, perr.New(perr.KindUnsupported, "dictionary pages are not implemented")
	case format.PageTypeIndexPage:
		return nil, perr.New(perr.KindUnsupported, "index pages are not implemented")
	default:
		return nil, perr.New(perr.KindUnsupported, "unknown page type %d", header.Type)
	}
}

func decodeDataPageV1(leaf *parquetschema.Node, header *format.PageHeader, codecID format.CompressionCodec, body []byte) (*DecodedPage, error) {
	dph := header.DataPageHeader
	if dph == nil {
		return nil, perr.New(perr.KindCorruptStream, "data page v1 missing data_page_header")
	}
	if dph.Encoding != format.EncodingPlain {
		return nil, perr.New(perr.KindUnsupported, "value encoding %d is not implemented", dph.Encoding)
	}
	if int(header.CompressedPageSize) != len(body) {
		return nil, perr.New(perr.KindCorruptStream, "page body length %d does not match header %d", len(body), header.CompressedPageSize)
	}

	codec, err := compress.Get(codecID)
	if err != nil {
		return nil, err
	}
	uncompressed, err := codec.Decode(nil, body, int(header.UncompressedPageSize))
	if err != nil {
		return nil, err
	}

	numValues := int(dph.NumValues)
	rBitWidth := levels.BitWidth(leaf.RLevelMax)
	dBitWidth := levels.BitWidth(leaf.DLevelMax)

	rLevels, n, err := levels.DecodeEnveloped(uncompressed, rBitWidth, numValues)
	if err != nil {
		return nil, err
	}
	uncompressed = uncompressed[n:]

	dLevels, n, err := levels.DecodeEnveloped(uncompressed, dBitWidth, numValues)
	if err != nil {
		return nil, err
	}
	uncompressed = uncompressed[n:]

	numPresent := countPresent(dLevels, leaf.DLevelMax)
	values, err := decodePlainValues(leaf, uncompressed, numPresent)
	if err != nil {
		return nil, err
	}
	return &DecodedPage{Values: values, DLevels: dLevels, RLevels: rLevels}, nil
}

func decodeDataPageV2(leaf *parquetschema.Node, header *format.PageHeader, codecID format.CompressionCodec, body []byte) (*DecodedPage, error) {
	dph := header.DataPageHeaderV2
	if dph == nil {
		return nil, perr.New(perr.KindCorruptStream, "data page v2 missing data_page_header_v2")
	}
	if dph.Encoding != format.EncodingPlain {
		return nil, perr.New(perr.KindUnsupported, "value encoding %d is not implemented", dph.Encoding)
	}
	if int(header.CompressedPageSize) != len(body) {
		return nil, perr.New(perr.KindCorruptStream, "page body length %d does not match header %d", len(body), header.CompressedPageSize)
	}

	repLen := int(dph.RepetitionLevelsByteLength)
	defLen := int(dph.DefinitionLevelsByteLength)
	if repLen+defLen > len(body) {
		return nil, perr.New(perr.KindCorruptStream, "level byte lengths %d+%d exceed page body %d", repLen, defLen, len(body))
	}

	numValues := int(dph.NumValues)
	rBitWidth := levels.BitWidth(leaf.RLevelMax)
	dBitWidth := levels.BitWidth(leaf.DLevelMax)

	rLevels, n, err := levels.DecodeRaw(body[:repLen], rBitWidth, numValues)
	if err != nil {
		return nil, err
	}
	if n != repLen {
		return nil, perr.New(perr.KindCorruptStream, "repetition levels: declared %d bytes, consumed %d", repLen, n)
	}

	dLevels, n, err := levels.DecodeRaw(body[repLen:repLen+defLen], dBitWidth, numValues)
	if err != nil {
		return nil, err
	}
	if n != defLen {
		return nil, perr.New(perr.KindCorruptStream, "definition levels: declared %d bytes, consumed %d", defLen, n)
	}

	valuesBody := body[repLen+defLen:]
	isCompressed := dph.IsCompressed != nil && *dph.IsCompressed
	if isCompressed {
		uncompressedValSize := int(header.UncompressedPageSize) - repLen - defLen
		codec, err := compress.Get(codecID)
		if err != nil {
			return nil, err
		}
		valuesBody, err = codec.Decode(nil, valuesBody, uncompressedValSize)
		if err != nil {
			return nil, err
		}
	}

	numPresent := countPresent(dLevels, leaf.DLevelMax)
	values, err := decodePlainValues(leaf, valuesBody, numPresent)
	if err != nil {
		return nil, err
	}
	return &DecodedPage{Values: values, DLevels: dLevels, RLevels: rLevels}, nil
}

func countRowStarts(rLevels []uint32) int {
	n := 0
	for _, r := range rLevels {
		if r == 0 {
			n++
		}
	}
	return n
}

func countPresent(dLevels []uint32, dLevelMax int) int {
	n := 0
	for _, d := range dLevels {
		if int(d) == dLevelMax {
			n++
		}
	}
	return n
}
