package parquetfile

import (
	"context"
	"encoding/binary"

	"github.com/tempodb-io/parquetcore/pkg/format"
	"github.com/tempodb-io/parquetcore/pkg/page"
	"github.com/tempodb-io/parquetcore/pkg/parquetschema"
	"github.com/tempodb-io/parquetcore/pkg/perr"
)

// ReaderAt is the byte-range source a Reader pulls from; *os.File and
// bytes.Reader both satisfy it.
type ReaderAt interface {
	ReadAt(p []byte, off int64) (n int, err error)
}

// Reader opens a parquet file's footer and exposes its row groups without
// touching any column-chunk bytes until Cursor reads them (§4.8).
type Reader struct {
	r        ReaderAt
	size     int64
	metadata *format.FileMetaData
	schema   *parquetschema.Schema
}

// OpenReader validates both magic markers, parses the footer, and
// reconstructs the schema.
func OpenReader(r ReaderAt, size int64) (*Reader, error) {
	if size < int64(len(magic))*2+4 {
		return nil, perr.New(perr.KindCorruptStream, "file too small to contain a parquet envelope")
	}

	head := make([]byte, len(magic))
	if _, err := r.ReadAt(head, 0); err != nil {
		return nil, perr.Wrap(perr.KindIO, err, "reading file magic")
	}
	if string(head) != magic {
		return nil, perr.New(perr.KindCorruptStream, "invalid header magic %q", head)
	}

	tail := make([]byte, 8)
	if _, err := r.ReadAt(tail, size-8); err != nil {
		return nil, perr.Wrap(perr.KindIO, err, "reading file trailer")
	}
	if string(tail[4:]) != magic {
		return nil, perr.New(perr.KindCorruptStream, "invalid trailer magic %q", tail[4:])
	}

	footerLen := int64(binary.LittleEndian.Uint32(tail[:4]))
	footerOffset := size - 8 - footerLen
	if footerOffset < int64(len(magic)) {
		return nil, perr.New(perr.KindCorruptStream, "metadata offset %d is before the file header", footerOffset)
	}

	footerData := make([]byte, footerLen)
	if _, err := r.ReadAt(footerData, footerOffset); err != nil {
		return nil, perr.Wrap(perr.KindIO, err, "reading footer")
	}

	meta := &format.FileMetaData{}
	if _, err := format.Unmarshal(context.Background(), footerData, meta); err != nil {
		return nil, perr.Wrap(perr.KindCorruptStream, err, "decoding footer")
	}

	schema, err := parquetschema.FromSchemaElements(meta.Schema)
	if err != nil {
		return nil, err
	}

	return &Reader{r: r, size: size, metadata: meta, schema: schema}, nil
}

// Schema returns the file's reconstructed schema.
func (fr *Reader) Schema() *parquetschema.Schema { return fr.schema }

// NumRows returns the total row count recorded in the footer.
func (fr *Reader) NumRows() int64 { return fr.metadata.NumRows }

// RowGroupCount returns the number of row groups in the file.
func (fr *Reader) RowGroupCount() int { return len(fr.metadata.RowGroups) }

// CreatedBy returns the footer's created_by string, or "" if absent.
func (fr *Reader) CreatedBy() string {
	if fr.metadata.CreatedBy == nil {
		return ""
	}
	return *fr.metadata.CreatedBy
}

// Metadata returns the user key/value pairs stored in the footer.
func (fr *Reader) Metadata() map[string]string {
	out := make(map[string]string, len(fr.metadata.KeyValueMetadata))
	for _, kv := range fr.metadata.KeyValueMetadata {
		if kv.Value != nil {
			out[kv.Key] = *kv.Value
		}
	}
	return out
}

// ColumnMetaData returns the stored metadata (sizes, codec, statistics) for
// one row group's column chunk without decoding its bytes.
func (fr *Reader) ColumnMetaData(rowGroup, column int) (*format.ColumnMetaData, error) {
	if rowGroup < 0 || rowGroup >= len(fr.metadata.RowGroups) {
		return nil, perr.New(perr.KindCorruptStream, "row group %d out of range", rowGroup)
	}
	rg := fr.metadata.RowGroups[rowGroup]
	if column < 0 || column >= len(rg.Columns) {
		return nil, perr.New(perr.KindCorruptStream, "column %d out of range in row group %d", column, rowGroup)
	}
	cc := rg.Columns[column]
	if cc.MetaData == nil {
		return nil, perr.New(perr.KindCorruptStream, "row group %d column %d missing meta_data", rowGroup, column)
	}
	return cc.MetaData, nil
}

// ColumnChunk decodes one row group's one column chunk into its leaf
// streams.
func (fr *Reader) ColumnChunk(rowGroup, column int) (*page.DecodedPage, error) {
	if rowGroup < 0 || rowGroup >= len(fr.metadata.RowGroups) {
		return nil, perr.New(perr.KindCorruptStream, "row group %d out of range", rowGroup)
	}
	rg := fr.metadata.RowGroups[rowGroup]
	if column < 0 || column >= len(rg.Columns) {
		return nil, perr.New(perr.KindCorruptStream, "column %d out of range in row group %d", column, rowGroup)
	}
	cc := rg.Columns[column]
	if cc.MetaData == nil {
		return nil, perr.New(perr.KindCorruptStream, "row group %d column %d missing meta_data", rowGroup, column)
	}

	leaf := fr.schema.Leaves[column]
	data := make([]byte, cc.MetaData.TotalCompressedSize)
	if _, err := fr.r.ReadAt(data, cc.MetaData.DataPageOffset); err != nil {
		return nil, perr.Wrap(perr.KindIO, err, "reading column chunk %s", leaf.PathString())
	}
	return page.DecodeColumnChunk(leaf, data, cc.MetaData.TotalCompressedSize, cc.MetaData.Codec)
}
