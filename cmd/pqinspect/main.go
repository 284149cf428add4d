// Command pqinspect dumps a parquet file's schema and per-column-chunk sizes,
// exercising the file envelope (pkg/parquetfile) end to end the way
// tempo-cli's view-pq-schema command exercises vparquet.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/tempodb-io/parquetcore/pkg/format"
	"github.com/tempodb-io/parquetcore/pkg/parquetfile"
	"github.com/tempodb-io/parquetcore/pkg/parquetschema"
	"github.com/tempodb-io/parquetcore/pkg/plog"
)

type globalOptions struct {
	LogLevel string `help:"log level (debug, info, warn, error)." default:"info" enum:"debug,info,warn,error"`
}

type cli struct {
	globalOptions
	Inspect inspectCmd `cmd:"" help:"Print a parquet file's schema and column-chunk sizes."`
}

func main() {
	var c cli
	ctx := kong.Parse(&c, kong.Name("pqinspect"), kong.Description("Inspect a parquet file's envelope, schema and column chunks."))
	plog.InitLogger(os.Stderr, c.LogLevel)
	ctx.FatalIfErrorf(ctx.Run(&c.globalOptions))
}

type inspectCmd struct {
	File string `arg:"" help:"Path to a parquet file."`
}

func (cmd *inspectCmd) Run(_ *globalOptions) error {
	runID := uuid.New()
	level.Debug(plog.Logger).Log("msg", "opening file", "run_id", runID, "file", cmd.File)

	f, err := os.Open(cmd.File)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	fr, err := parquetfile.OpenReader(f, info.Size())
	if err != nil {
		return err
	}

	fmt.Printf("file:       %s\n", cmd.File)
	fmt.Printf("size:       %s\n", humanize.Bytes(uint64(info.Size())))
	fmt.Printf("rows:       %d\n", fr.NumRows())
	fmt.Printf("row groups: %d\n", fr.RowGroupCount())
	if cb := fr.CreatedBy(); cb != "" {
		fmt.Printf("created by: %s\n", cb)
	}

	fmt.Println("\nschema:")
	dumpSchema(fr.Schema().Root, 0)

	fmt.Println()
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"row group", "column", "compressed", "uncompressed", "codec", "nulls"})
	for rg := 0; rg < fr.RowGroupCount(); rg++ {
		for col, leaf := range fr.Schema().Leaves {
			meta, err := fr.ColumnMetaData(rg, col)
			if err != nil {
				return err
			}
			nulls := "-"
			if meta.Statistics != nil && meta.Statistics.NullCount != nil {
				nulls = fmt.Sprint(*meta.Statistics.NullCount)
			}
			table.Append([]string{
				fmt.Sprint(rg),
				leaf.PathString(),
				humanize.Bytes(uint64(meta.TotalCompressedSize)),
				humanize.Bytes(uint64(meta.TotalUncompressedSize)),
				codecName(meta.Codec),
				nulls,
			})
		}
	}
	table.Render()

	level.Info(plog.Logger).Log("msg", "inspect complete", "run_id", runID, "rows", fr.NumRows())
	return nil
}

func dumpSchema(n *parquetschema.Node, depth int) {
	if n.Kind == parquetschema.KindGroup {
		for _, c := range n.Children {
			dumpSchema(c, depth+1)
		}
		return
	}
	fmt.Printf("%*s%-20s %-8s %s\n", depth*2, "", n.PathString(), n.Repetition, typeName(n.Type))
}

func typeName(t parquetschema.Type) string {
	switch t {
	case parquetschema.Boolean:
		return "BOOLEAN"
	case parquetschema.Int32:
		return "INT32"
	case parquetschema.Int64:
		return "INT64"
	case parquetschema.Int96:
		return "INT96"
	case parquetschema.Float:
		return "FLOAT"
	case parquetschema.Double:
		return "DOUBLE"
	case parquetschema.ByteArray:
		return "BYTE_ARRAY"
	case parquetschema.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}

func codecName(c format.CompressionCodec) string {
	switch c {
	case format.CompressionUncompressed:
		return "UNCOMPRESSED"
	case format.CompressionSnappy:
		return "SNAPPY"
	case format.CompressionGzip:
		return "GZIP"
	case format.CompressionLZO:
		return "LZO"
	case format.CompressionBrotli:
		return "BROTLI"
	case format.CompressionLZ4:
		return "LZ4"
	case format.CompressionZstd:
		return "ZSTD"
	default:
		return "UNKNOWN"
	}
}
