package compress

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempodb-io/parquetcore/pkg/format"
	"github.com/tempodb-io/parquetcore/pkg/perr"
)

func TestRoundTripAllSupportedCodecs(t *testing.T) {
	codecs := []format.CompressionCodec{
		format.CompressionUncompressed,
		format.CompressionSnappy,
		format.CompressionGzip,
		format.CompressionBrotli,
		format.CompressionLZ4,
	}
	src := make([]byte, 4096)
	for i := range src {
		src[i] = byte(i * 7)
	}

	for _, wire := range codecs {
		c, err := Get(wire)
		require.NoError(t, err, wire)

		encoded, err := c.Encode(nil, src)
		require.NoError(t, err, wire)

		decoded, err := c.Decode(nil, encoded, len(src))
		require.NoError(t, err, wire)
		assert.Equal(t, src, decoded, wire)
	}
}

func TestLZOUnsupported(t *testing.T) {
	_, err := Get(format.CompressionLZO)
	require.Error(t, err)
	assert.True(t, errors.Is(err, perr.Unsupported))
}

func TestUnknownCodecUnsupported(t *testing.T) {
	_, err := Get(format.CompressionCodec(99))
	require.Error(t, err)
}
