// Package parquetfile implements the file envelope (§4.8): the magic
// header/trailer, row-group byte regions, and the Thrift compact binary
// FileMetaData footer, layered on top of pkg/page and pkg/shred/pkg/assemble.
// The write path mirrors grafana-pyroscope's segmentio-derived
// writer.go (writeFileHeader/writeRowGroup/writeFileFooter); the read path
// mirrors grafana-loki's file.go (OpenFile's magic/footer arithmetic).
package parquetfile

import (
	"context"
	"encoding/binary"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"

	"github.com/tempodb-io/parquetcore/pkg/format"
	"github.com/tempodb-io/parquetcore/pkg/page"
	"github.com/tempodb-io/parquetcore/pkg/parquetschema"
	"github.com/tempodb-io/parquetcore/pkg/perr"
	"github.com/tempodb-io/parquetcore/pkg/plog"
	"github.com/tempodb-io/parquetcore/pkg/shred"
)

const magic = "PAR1"

// WriterConfig configures row-group sizing and page encoding for a Writer.
type WriterConfig struct {
	// RowGroupSize is the number of buffered records flushed as one row
	// group. Zero means "buffer every record into a single row group,
	// flushed on Close".
	RowGroupSize int
	UseDataPageV2 bool
	Compression   format.CompressionCodec
	CreatedBy     string
}

func (c WriterConfig) pageOptions() page.WriteOptions {
	return page.WriteOptions{UseDataPageV2: c.UseDataPageV2, Compression: c.Compression}
}

// Writer produces one parquet file, row group at a time, to an io.Writer.
type Writer struct {
	w      io.Writer
	schema *parquetschema.Schema
	config WriterConfig

	offset  int64
	rowGrps []*format.RowGroup
	kv      []*format.KeyValue

	buf    *shred.WriteBuffer
	closed bool
}

// OpenWriter writes the file's magic header and returns a Writer ready to
// accept records.
func OpenWriter(w io.Writer, schema *parquetschema.Schema, config WriterConfig) (*Writer, error) {
	if _, err := io.WriteString(w, magic); err != nil {
		return nil, perr.Wrap(perr.KindIO, err, "writing file magic")
	}
	return &Writer{
		w:      w,
		schema: schema,
		config: config,
		offset: int64(len(magic)),
		buf:    shred.NewWriteBuffer(schema),
	}, nil
}

// SetMetadata records one user key/value pair in the footer.
func (fw *Writer) SetMetadata(key, value string) {
	fw.kv = append(fw.kv, &format.KeyValue{Key: key, Value: &value})
}

// AppendRow shreds record against the writer's schema and buffers it. Once
// config.RowGroupSize records are buffered, the row group is flushed
// automatically.
func (fw *Writer) AppendRow(record shred.Record) error {
	if err := shred.ShredRecord(fw.schema, record, fw.buf); err != nil {
		return err
	}
	if fw.config.RowGroupSize > 0 && fw.buf.RowCount >= fw.config.RowGroupSize {
		return fw.Flush()
	}
	return nil
}

// Flush writes the currently buffered records as one row group. It is a
// no-op if nothing has been buffered since the last flush.
func (fw *Writer) Flush() error {
	if fw.buf.RowCount == 0 {
		return nil
	}

	fileOffset := fw.offset
	columns := make([]*format.ColumnChunk, len(fw.schema.Leaves))
	totalByteSize, totalCompressedSize := int64(0), int64(0)

	for i, leaf := range fw.schema.Leaves {
		stream := fw.buf.Streams[leaf.PathString()]
		chunk, err := page.EncodeColumnChunk(leaf, stream.Values, stream.DLevels, stream.RLevels, fw.config.pageOptions())
		if err != nil {
			return perr.Wrap(perr.KindIO, err, "encoding column %q", leaf.PathString())
		}

		chunk.MetaData.DataPageOffset = fw.offset
		if _, err := fw.w.Write(chunk.Bytes); err != nil {
			return perr.Wrap(perr.KindIO, err, "writing column %q", leaf.PathString())
		}
		columns[i] = &format.ColumnChunk{FileOffset: fw.offset, MetaData: chunk.MetaData}
		fw.offset += int64(len(chunk.Bytes))

		totalByteSize += chunk.MetaData.TotalUncompressedSize
		totalCompressedSize += chunk.MetaData.TotalCompressedSize
	}

	numRows := int64(fw.buf.RowCount)
	fw.rowGrps = append(fw.rowGrps, &format.RowGroup{
		Columns:             columns,
		TotalByteSize:       totalByteSize,
		NumRows:             numRows,
		FileOffset:          &fileOffset,
		TotalCompressedSize: &totalCompressedSize,
	})

	level.Debug(plog.Logger).Log("msg", "flushed row group", "rows", numRows, "bytes", humanize.Bytes(uint64(totalCompressedSize)))

	fw.buf = shred.NewWriteBuffer(fw.schema)
	return nil
}

// Close flushes any buffered rows, writes the footer, and returns. The
// Writer must not be used afterward.
func (fw *Writer) Close() error {
	if fw.closed {
		return nil
	}
	fw.closed = true

	if err := fw.Flush(); err != nil {
		return err
	}

	numRows := int64(0)
	for _, rg := range fw.rowGrps {
		numRows += rg.NumRows
	}

	meta := &format.FileMetaData{
		Version:          1,
		Schema:           parquetschema.ToSchemaElements(fw.schema),
		NumRows:          numRows,
		RowGroups:        fw.rowGrps,
		KeyValueMetadata: fw.kv,
	}
	if fw.config.CreatedBy != "" {
		meta.CreatedBy = &fw.config.CreatedBy
	}
	footer, err := format.Marshal(context.Background(), meta)
	if err != nil {
		return perr.Wrap(perr.KindIO, err, "marshaling footer")
	}

	length := len(footer)
	trailer := make([]byte, 4, 8)
	binary.LittleEndian.PutUint32(trailer, uint32(length))
	trailer = append(trailer, magic...)

	if _, err := fw.w.Write(footer); err != nil {
		return perr.Wrap(perr.KindIO, err, "writing footer")
	}
	if _, err := fw.w.Write(trailer); err != nil {
		return perr.Wrap(perr.KindIO, err, "writing trailer")
	}

	level.Info(plog.Logger).Log("msg", "closed parquet file", "rows", numRows, "row_groups", len(fw.rowGrps), "footer_bytes", length)
	return nil
}
