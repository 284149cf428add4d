package format

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
)

// countingTransport wraps a byte slice in a thrift.TMemoryBuffer so
// Unmarshal can report exactly how many bytes a Read consumed — the page
// header and footer metadata are followed immediately by more file bytes,
// so the caller needs the struct's on-wire length, not just its value.
type countingTransport struct {
	buf *thrift.TMemoryBuffer
	pos int
}

func newCountingTransport(b []byte) *countingTransport {
	mb := thrift.NewTMemoryBufferLen(len(b))
	mb.Write(b) //nolint:errcheck // bytes.Buffer.Write never errors
	return &countingTransport{buf: mb}
}

func (c *countingTransport) Read(p []byte) (int, error) {
	before := c.buf.Buffer.Len()
	n, err := c.buf.Read(p)
	c.pos += before - c.buf.Buffer.Len()
	return n, err
}

func (c *countingTransport) Write(p []byte) (int, error)  { return c.buf.Write(p) }
func (c *countingTransport) Close() error                 { return c.buf.Close() }
func (c *countingTransport) Flush(ctx context.Context) error { return c.buf.Flush(ctx) }
func (c *countingTransport) Open() error                  { return c.buf.Open() }
func (c *countingTransport) IsOpen() bool                 { return c.buf.IsOpen() }
func (c *countingTransport) RemainingBytes() uint64       { return c.buf.RemainingBytes() }

var _ thrift.TTransport = (*countingTransport)(nil)
