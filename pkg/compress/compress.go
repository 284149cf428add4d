// Package compress wires the page codec's pluggable compressor: the core
// only names an algorithm and hands it buffers, following the reader/writer
// pool split grafana-tempo's tempodb/encoding/v1 keeps per codec instead of
// allocating fresh gzip/lz4 state on every page (snappy's block API and
// brotli keep no reusable state, so those two are not pooled).
package compress

import (
	"bytes"
	"io"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"

	"github.com/tempodb-io/parquetcore/pkg/format"
	"github.com/tempodb-io/parquetcore/pkg/perr"
)

// Codec compresses and decompresses one page or column-chunk body for a
// single format.CompressionCodec.
type Codec interface {
	Encode(dst, src []byte) ([]byte, error)
	Decode(dst, src []byte, uncompressedSize int) ([]byte, error)
	Wire() format.CompressionCodec
}

// Get returns the codec for c, or an Unsupported error for LZO and any
// codec not named in the supported set.
func Get(c format.CompressionCodec) (Codec, error) {
	switch c {
	case format.CompressionUncompressed:
		return noopCodec{}, nil
	case format.CompressionSnappy:
		return &snappyCodec{}, nil
	case format.CompressionGzip:
		return &gzipCodec{}, nil
	case format.CompressionBrotli:
		return &brotliCodec{}, nil
	case format.CompressionLZ4:
		return &lz4Codec{}, nil
	case format.CompressionLZO:
		return nil, perr.New(perr.KindUnsupported, "LZO compression is recognized but not implemented")
	default:
		return nil, perr.New(perr.KindUnsupported, "unknown compression codec %d", c)
	}
}

type noopCodec struct{}

func (noopCodec) Encode(dst, src []byte) ([]byte, error) { return append(dst, src...), nil }
func (noopCodec) Decode(dst, src []byte, _ int) ([]byte, error) {
	return append(dst, src...), nil
}
func (noopCodec) Wire() format.CompressionCodec { return format.CompressionUncompressed }

// snappyCodec uses golang/snappy's raw block format (Encode/Decode), the
// same framing segmentio/parquet-go's SNAPPY codec writes — not the xerial
// streaming format snappy.Writer/Reader produce, which parquet readers
// outside this package wouldn't recognize.
type snappyCodec struct{}

func (snappyCodec) Wire() format.CompressionCodec { return format.CompressionSnappy }

func (snappyCodec) Encode(dst, src []byte) ([]byte, error) {
	return append(dst, snappy.Encode(nil, src)...), nil
}

func (snappyCodec) Decode(dst, src []byte, uncompressedSize int) ([]byte, error) {
	out, err := snappy.Decode(nil, src)
	if err != nil {
		return nil, perr.Wrap(perr.KindCorruptStream, err, "snappy decompress")
	}
	if len(out) != uncompressedSize {
		return nil, perr.New(perr.KindCorruptStream, "snappy decompress: got %d bytes, wanted %d", len(out), uncompressedSize)
	}
	return append(dst, out...), nil
}

// gzipCodec pools its writer and reader, matching tempo's GzipPool.
type gzipCodec struct {
	writers sync.Pool
	readers sync.Pool
}

func (c *gzipCodec) Wire() format.CompressionCodec { return format.CompressionGzip }

func (c *gzipCodec) Encode(dst, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	var w *gzip.Writer
	if pooled := c.writers.Get(); pooled != nil {
		w = pooled.(*gzip.Writer)
		w.Reset(&buf)
	} else {
		var err error
		w, err = gzip.NewWriterLevel(&buf, gzip.DefaultCompression)
		if err != nil {
			return nil, perr.Wrap(perr.KindIO, err, "gzip compress")
		}
	}
	defer c.writers.Put(w)

	if _, err := w.Write(src); err != nil {
		return nil, perr.Wrap(perr.KindIO, err, "gzip compress")
	}
	if err := w.Close(); err != nil {
		return nil, perr.Wrap(perr.KindIO, err, "gzip compress")
	}
	return append(dst, buf.Bytes()...), nil
}

func (c *gzipCodec) Decode(dst, src []byte, uncompressedSize int) ([]byte, error) {
	var r *gzip.Reader
	br := bytes.NewReader(src)
	if pooled := c.readers.Get(); pooled != nil {
		r = pooled.(*gzip.Reader)
		if err := r.Reset(br); err != nil {
			return nil, perr.Wrap(perr.KindCorruptStream, err, "gzip decompress")
		}
	} else {
		var err error
		r, err = gzip.NewReader(br)
		if err != nil {
			return nil, perr.Wrap(perr.KindCorruptStream, err, "gzip decompress")
		}
	}
	defer c.readers.Put(r)

	out := make([]byte, uncompressedSize)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, perr.Wrap(perr.KindCorruptStream, err, "gzip decompress")
	}
	return append(dst, out...), nil
}

// brotliCodec has no reader/writer Reset in the andybalholm/brotli API, so
// it allocates fresh state per call rather than pooling.
type brotliCodec struct{}

func (brotliCodec) Wire() format.CompressionCodec { return format.CompressionBrotli }

func (brotliCodec) Encode(dst, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	if _, err := w.Write(src); err != nil {
		return nil, perr.Wrap(perr.KindIO, err, "brotli compress")
	}
	if err := w.Close(); err != nil {
		return nil, perr.Wrap(perr.KindIO, err, "brotli compress")
	}
	return append(dst, buf.Bytes()...), nil
}

func (brotliCodec) Decode(dst, src []byte, uncompressedSize int) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(src))
	out := make([]byte, uncompressedSize)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, perr.Wrap(perr.KindCorruptStream, err, "brotli decompress")
	}
	return append(dst, out...), nil
}

// lz4Codec pools its writer and reader, matching tempo's LZ4Pool.
type lz4Codec struct {
	writers sync.Pool
	readers sync.Pool
}

func (c *lz4Codec) Wire() format.CompressionCodec { return format.CompressionLZ4 }

func (c *lz4Codec) Encode(dst, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	var w *lz4.Writer
	if pooled := c.writers.Get(); pooled != nil {
		w = pooled.(*lz4.Writer)
		w.Reset(&buf)
	} else {
		w = lz4.NewWriter(&buf)
	}
	defer c.writers.Put(w)

	if _, err := w.Write(src); err != nil {
		return nil, perr.Wrap(perr.KindIO, err, "lz4 compress")
	}
	if err := w.Close(); err != nil {
		return nil, perr.Wrap(perr.KindIO, err, "lz4 compress")
	}
	return append(dst, buf.Bytes()...), nil
}

func (c *lz4Codec) Decode(dst, src []byte, uncompressedSize int) ([]byte, error) {
	var r *lz4.Reader
	br := bytes.NewReader(src)
	if pooled := c.readers.Get(); pooled != nil {
		r = pooled.(*lz4.Reader)
		r.Reset(br)
	} else {
		r = lz4.NewReader(br)
	}
	defer c.readers.Put(r)

	out := make([]byte, uncompressedSize)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, perr.Wrap(perr.KindCorruptStream, err, "lz4 decompress")
	}
	return append(dst, out...), nil
}
