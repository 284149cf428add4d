package format

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
)

// Write/Read pairs below follow the shape Thrift codegen produces for each
// parquet.thrift struct: a WriteStructBegin/WriteFieldBegin/.../WriteFieldStop
// sequence for Write, and a ReadFieldBegin loop dispatching on field ID for
// Read. Optional fields are Go pointers and are only written when non-nil.

func writeOptI32(ctx context.Context, p thrift.TProtocol, name string, id int16, v *int32) error {
	if v == nil {
		return nil
	}
	if err := p.WriteFieldBegin(ctx, name, thrift.I32, id); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, *v); err != nil {
		return err
	}
	return p.WriteFieldEnd(ctx)
}

func writeOptI64(ctx context.Context, p thrift.TProtocol, name string, id int16, v *int64) error {
	if v == nil {
		return nil
	}
	if err := p.WriteFieldBegin(ctx, name, thrift.I64, id); err != nil {
		return err
	}
	if err := p.WriteI64(ctx, *v); err != nil {
		return err
	}
	return p.WriteFieldEnd(ctx)
}

func writeOptBinary(ctx context.Context, p thrift.TProtocol, name string, id int16, v []byte) error {
	if v == nil {
		return nil
	}
	if err := p.WriteFieldBegin(ctx, name, thrift.STRING, id); err != nil {
		return err
	}
	if err := p.WriteBinary(ctx, v); err != nil {
		return err
	}
	return p.WriteFieldEnd(ctx)
}

// --- SchemaElement ---

func (s *SchemaElement) Write(ctx context.Context, p thrift.TProtocol) error {
	if err := p.WriteStructBegin(ctx, "SchemaElement"); err != nil {
		return err
	}
	if s.Type != nil {
		if err := writeOptI32(ctx, p, "type", 1, int32Ptr(int32(*s.Type))); err != nil {
			return err
		}
	}
	if err := writeOptI32(ctx, p, "type_length", 2, s.TypeLength); err != nil {
		return err
	}
	if s.RepetitionType != nil {
		if err := writeOptI32(ctx, p, "repetition_type", 3, int32Ptr(int32(*s.RepetitionType))); err != nil {
			return err
		}
	}
	if err := p.WriteFieldBegin(ctx, "name", thrift.STRING, 4); err != nil {
		return err
	}
	if err := p.WriteString(ctx, s.Name); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := writeOptI32(ctx, p, "num_children", 5, s.NumChildren); err != nil {
		return err
	}
	if s.ConvertedType != nil {
		if err := writeOptI32(ctx, p, "converted_type", 6, int32Ptr(int32(*s.ConvertedType))); err != nil {
			return err
		}
	}
	if err := writeOptI32(ctx, p, "scale", 7, s.Scale); err != nil {
		return err
	}
	if err := writeOptI32(ctx, p, "precision", 8, s.Precision); err != nil {
		return err
	}
	if err := writeOptI32(ctx, p, "field_id", 9, s.FieldID); err != nil {
		return err
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func (s *SchemaElement) Read(ctx context.Context, p thrift.TProtocol) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, ftype, id, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		switch id {
		case 1:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			t := Type(v)
			s.Type = &t
		case 2:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			s.TypeLength = &v
		case 3:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			rt := FieldRepetitionType(v)
			s.RepetitionType = &rt
		case 4:
			v, err := p.ReadString(ctx)
			if err != nil {
				return err
			}
			s.Name = v
		case 5:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			s.NumChildren = &v
		case 6:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			ct := ConvertedType(v)
			s.ConvertedType = &ct
		case 7:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			s.Scale = &v
		case 8:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			s.Precision = &v
		case 9:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			s.FieldID = &v
		default:
			if err := p.Skip(ctx, ftype); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

// --- Statistics ---

func (s *Statistics) Write(ctx context.Context, p thrift.TProtocol) error {
	if err := p.WriteStructBegin(ctx, "Statistics"); err != nil {
		return err
	}
	if err := writeOptBinary(ctx, p, "max", 1, s.Max); err != nil {
		return err
	}
	if err := writeOptBinary(ctx, p, "min", 2, s.Min); err != nil {
		return err
	}
	if err := writeOptI64(ctx, p, "null_count", 3, s.NullCount); err != nil {
		return err
	}
	if err := writeOptI64(ctx, p, "distinct_count", 4, s.DistinctCount); err != nil {
		return err
	}
	if err := writeOptBinary(ctx, p, "max_value", 5, s.MaxValue); err != nil {
		return err
	}
	if err := writeOptBinary(ctx, p, "min_value", 6, s.MinValue); err != nil {
		return err
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func (s *Statistics) Read(ctx context.Context, p thrift.TProtocol) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, ftype, id, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		switch id {
		case 1:
			v, err := p.ReadBinary(ctx)
			if err != nil {
				return err
			}
			s.Max = v
		case 2:
			v, err := p.ReadBinary(ctx)
			if err != nil {
				return err
			}
			s.Min = v
		case 3:
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			s.NullCount = &v
		case 4:
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			s.DistinctCount = &v
		case 5:
			v, err := p.ReadBinary(ctx)
			if err != nil {
				return err
			}
			s.MaxValue = v
		case 6:
			v, err := p.ReadBinary(ctx)
			if err != nil {
				return err
			}
			s.MinValue = v
		default:
			if err := p.Skip(ctx, ftype); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

// --- ColumnMetaData ---

func (c *ColumnMetaData) Write(ctx context.Context, p thrift.TProtocol) error {
	if err := p.WriteStructBegin(ctx, "ColumnMetaData"); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "type", thrift.I32, 1); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, int32(c.Type)); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := p.WriteFieldBegin(ctx, "encodings", thrift.LIST, 2); err != nil {
		return err
	}
	if err := p.WriteListBegin(ctx, thrift.I32, len(c.Encodings)); err != nil {
		return err
	}
	for _, e := range c.Encodings {
		if err := p.WriteI32(ctx, int32(e)); err != nil {
			return err
		}
	}
	if err := p.WriteListEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := p.WriteFieldBegin(ctx, "path_in_schema", thrift.LIST, 3); err != nil {
		return err
	}
	if err := p.WriteListBegin(ctx, thrift.STRING, len(c.PathInSchema)); err != nil {
		return err
	}
	for _, s := range c.PathInSchema {
		if err := p.WriteString(ctx, s); err != nil {
			return err
		}
	}
	if err := p.WriteListEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := p.WriteFieldBegin(ctx, "codec", thrift.I32, 4); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, int32(c.Codec)); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := p.WriteFieldBegin(ctx, "num_values", thrift.I64, 5); err != nil {
		return err
	}
	if err := p.WriteI64(ctx, c.NumValues); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := p.WriteFieldBegin(ctx, "total_uncompressed_size", thrift.I64, 6); err != nil {
		return err
	}
	if err := p.WriteI64(ctx, c.TotalUncompressedSize); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := p.WriteFieldBegin(ctx, "total_compressed_size", thrift.I64, 7); err != nil {
		return err
	}
	if err := p.WriteI64(ctx, c.TotalCompressedSize); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := p.WriteFieldBegin(ctx, "data_page_offset", thrift.I64, 9); err != nil {
		return err
	}
	if err := p.WriteI64(ctx, c.DataPageOffset); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := writeOptI64(ctx, p, "dictionary_page_offset", 11, c.DictionaryPageOffset); err != nil {
		return err
	}

	if c.Statistics != nil {
		if err := p.WriteFieldBegin(ctx, "statistics", thrift.STRUCT, 12); err != nil {
			return err
		}
		if err := c.Statistics.Write(ctx, p); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}

	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func (c *ColumnMetaData) Read(ctx context.Context, p thrift.TProtocol) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, ftype, id, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		switch id {
		case 1:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			c.Type = Type(v)
		case 2:
			_, size, err := p.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			for i := 0; i < size; i++ {
				v, err := p.ReadI32(ctx)
				if err != nil {
					return err
				}
				c.Encodings = append(c.Encodings, Encoding(v))
			}
			if err := p.ReadListEnd(ctx); err != nil {
				return err
			}
		case 3:
			_, size, err := p.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			for i := 0; i < size; i++ {
				v, err := p.ReadString(ctx)
				if err != nil {
					return err
				}
				c.PathInSchema = append(c.PathInSchema, v)
			}
			if err := p.ReadListEnd(ctx); err != nil {
				return err
			}
		case 4:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			c.Codec = CompressionCodec(v)
		case 5:
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			c.NumValues = v
		case 6:
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			c.TotalUncompressedSize = v
		case 7:
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			c.TotalCompressedSize = v
		case 9:
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			c.DataPageOffset = v
		case 11:
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			c.DictionaryPageOffset = &v
		case 12:
			st := &Statistics{}
			if err := st.Read(ctx, p); err != nil {
				return err
			}
			c.Statistics = st
		default:
			if err := p.Skip(ctx, ftype); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

// --- ColumnChunk ---

func (c *ColumnChunk) Write(ctx context.Context, p thrift.TProtocol) error {
	if err := p.WriteStructBegin(ctx, "ColumnChunk"); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "file_offset", thrift.I64, 2); err != nil {
		return err
	}
	if err := p.WriteI64(ctx, c.FileOffset); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if c.MetaData != nil {
		if err := p.WriteFieldBegin(ctx, "meta_data", thrift.STRUCT, 3); err != nil {
			return err
		}
		if err := c.MetaData.Write(ctx, p); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func (c *ColumnChunk) Read(ctx context.Context, p thrift.TProtocol) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, ftype, id, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		switch id {
		case 2:
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			c.FileOffset = v
		case 3:
			md := &ColumnMetaData{}
			if err := md.Read(ctx, p); err != nil {
				return err
			}
			c.MetaData = md
		default:
			if err := p.Skip(ctx, ftype); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

// --- RowGroup ---

func (r *RowGroup) Write(ctx context.Context, p thrift.TProtocol) error {
	if err := p.WriteStructBegin(ctx, "RowGroup"); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "columns", thrift.LIST, 1); err != nil {
		return err
	}
	if err := p.WriteListBegin(ctx, thrift.STRUCT, len(r.Columns)); err != nil {
		return err
	}
	for _, c := range r.Columns {
		if err := c.Write(ctx, p); err != nil {
			return err
		}
	}
	if err := p.WriteListEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := p.WriteFieldBegin(ctx, "total_byte_size", thrift.I64, 2); err != nil {
		return err
	}
	if err := p.WriteI64(ctx, r.TotalByteSize); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := p.WriteFieldBegin(ctx, "num_rows", thrift.I64, 3); err != nil {
		return err
	}
	if err := p.WriteI64(ctx, r.NumRows); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := writeOptI64(ctx, p, "file_offset", 5, r.FileOffset); err != nil {
		return err
	}
	if err := writeOptI64(ctx, p, "total_compressed_size", 6, r.TotalCompressedSize); err != nil {
		return err
	}

	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func (r *RowGroup) Read(ctx context.Context, p thrift.TProtocol) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, ftype, id, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		switch id {
		case 1:
			_, size, err := p.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			for i := 0; i < size; i++ {
				cc := &ColumnChunk{}
				if err := cc.Read(ctx, p); err != nil {
					return err
				}
				r.Columns = append(r.Columns, cc)
			}
			if err := p.ReadListEnd(ctx); err != nil {
				return err
			}
		case 2:
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			r.TotalByteSize = v
		case 3:
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			r.NumRows = v
		case 5:
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			r.FileOffset = &v
		case 6:
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			r.TotalCompressedSize = &v
		default:
			if err := p.Skip(ctx, ftype); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

// --- KeyValue ---

func (kv *KeyValue) Write(ctx context.Context, p thrift.TProtocol) error {
	if err := p.WriteStructBegin(ctx, "KeyValue"); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "key", thrift.STRING, 1); err != nil {
		return err
	}
	if err := p.WriteString(ctx, kv.Key); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if kv.Value != nil {
		if err := p.WriteFieldBegin(ctx, "value", thrift.STRING, 2); err != nil {
			return err
		}
		if err := p.WriteString(ctx, *kv.Value); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func (kv *KeyValue) Read(ctx context.Context, p thrift.TProtocol) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, ftype, id, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		switch id {
		case 1:
			v, err := p.ReadString(ctx)
			if err != nil {
				return err
			}
			kv.Key = v
		case 2:
			v, err := p.ReadString(ctx)
			if err != nil {
				return err
			}
			kv.Value = &v
		default:
			if err := p.Skip(ctx, ftype); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

// --- FileMetaData ---

func (f *FileMetaData) Write(ctx context.Context, p thrift.TProtocol) error {
	if err := p.WriteStructBegin(ctx, "FileMetaData"); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "version", thrift.I32, 1); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, f.Version); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := p.WriteFieldBegin(ctx, "schema", thrift.LIST, 2); err != nil {
		return err
	}
	if err := p.WriteListBegin(ctx, thrift.STRUCT, len(f.Schema)); err != nil {
		return err
	}
	for _, se := range f.Schema {
		if err := se.Write(ctx, p); err != nil {
			return err
		}
	}
	if err := p.WriteListEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := p.WriteFieldBegin(ctx, "num_rows", thrift.I64, 3); err != nil {
		return err
	}
	if err := p.WriteI64(ctx, f.NumRows); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if err := p.WriteFieldBegin(ctx, "row_groups", thrift.LIST, 4); err != nil {
		return err
	}
	if err := p.WriteListBegin(ctx, thrift.STRUCT, len(f.RowGroups)); err != nil {
		return err
	}
	for _, rg := range f.RowGroups {
		if err := rg.Write(ctx, p); err != nil {
			return err
		}
	}
	if err := p.WriteListEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}

	if len(f.KeyValueMetadata) > 0 {
		if err := p.WriteFieldBegin(ctx, "key_value_metadata", thrift.LIST, 5); err != nil {
			return err
		}
		if err := p.WriteListBegin(ctx, thrift.STRUCT, len(f.KeyValueMetadata)); err != nil {
			return err
		}
		for _, kv := range f.KeyValueMetadata {
			if err := kv.Write(ctx, p); err != nil {
				return err
			}
		}
		if err := p.WriteListEnd(ctx); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}

	if f.CreatedBy != nil {
		if err := p.WriteFieldBegin(ctx, "created_by", thrift.STRING, 6); err != nil {
			return err
		}
		if err := p.WriteString(ctx, *f.CreatedBy); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}

	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func (f *FileMetaData) Read(ctx context.Context, p thrift.TProtocol) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, ftype, id, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		switch id {
		case 1:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			f.Version = v
		case 2:
			_, size, err := p.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			for i := 0; i < size; i++ {
				se := &SchemaElement{}
				if err := se.Read(ctx, p); err != nil {
					return err
				}
				f.Schema = append(f.Schema, se)
			}
			if err := p.ReadListEnd(ctx); err != nil {
				return err
			}
		case 3:
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			f.NumRows = v
		case 4:
			_, size, err := p.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			for i := 0; i < size; i++ {
				rg := &RowGroup{}
				if err := rg.Read(ctx, p); err != nil {
					return err
				}
				f.RowGroups = append(f.RowGroups, rg)
			}
			if err := p.ReadListEnd(ctx); err != nil {
				return err
			}
		case 5:
			_, size, err := p.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			for i := 0; i < size; i++ {
				kv := &KeyValue{}
				if err := kv.Read(ctx, p); err != nil {
					return err
				}
				f.KeyValueMetadata = append(f.KeyValueMetadata, kv)
			}
			if err := p.ReadListEnd(ctx); err != nil {
				return err
			}
		case 6:
			v, err := p.ReadString(ctx)
			if err != nil {
				return err
			}
			f.CreatedBy = &v
		default:
			if err := p.Skip(ctx, ftype); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

// --- DataPageHeader / DataPageHeaderV2 / PageHeader ---

func (d *DataPageHeader) Write(ctx context.Context, p thrift.TProtocol) error {
	if err := p.WriteStructBegin(ctx, "DataPageHeader"); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "num_values", thrift.I32, 1); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, d.NumValues); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "encoding", thrift.I32, 2); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, int32(d.Encoding)); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "definition_level_encoding", thrift.I32, 3); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, int32(d.DefinitionLevelEncoding)); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "repetition_level_encoding", thrift.I32, 4); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, int32(d.RepetitionLevelEncoding)); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if d.Statistics != nil {
		if err := p.WriteFieldBegin(ctx, "statistics", thrift.STRUCT, 5); err != nil {
			return err
		}
		if err := d.Statistics.Write(ctx, p); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func (d *DataPageHeader) Read(ctx context.Context, p thrift.TProtocol) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, ftype, id, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		switch id {
		case 1:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			d.NumValues = v
		case 2:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			d.Encoding = Encoding(v)
		case 3:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			d.DefinitionLevelEncoding = Encoding(v)
		case 4:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			d.RepetitionLevelEncoding = Encoding(v)
		case 5:
			st := &Statistics{}
			if err := st.Read(ctx, p); err != nil {
				return err
			}
			d.Statistics = st
		default:
			if err := p.Skip(ctx, ftype); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

func (d *DataPageHeaderV2) Write(ctx context.Context, p thrift.TProtocol) error {
	if err := p.WriteStructBegin(ctx, "DataPageHeaderV2"); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "num_values", thrift.I32, 1); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, d.NumValues); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "num_nulls", thrift.I32, 2); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, d.NumNulls); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "num_rows", thrift.I32, 3); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, d.NumRows); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "encoding", thrift.I32, 4); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, int32(d.Encoding)); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "definition_levels_byte_length", thrift.I32, 5); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, d.DefinitionLevelsByteLength); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "repetition_levels_byte_length", thrift.I32, 6); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, d.RepetitionLevelsByteLength); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if d.IsCompressed != nil {
		if err := p.WriteFieldBegin(ctx, "is_compressed", thrift.BOOL, 7); err != nil {
			return err
		}
		if err := p.WriteBool(ctx, *d.IsCompressed); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if d.Statistics != nil {
		if err := p.WriteFieldBegin(ctx, "statistics", thrift.STRUCT, 8); err != nil {
			return err
		}
		if err := d.Statistics.Write(ctx, p); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func (d *DataPageHeaderV2) Read(ctx context.Context, p thrift.TProtocol) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, ftype, id, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		switch id {
		case 1:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			d.NumValues = v
		case 2:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			d.NumNulls = v
		case 3:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			d.NumRows = v
		case 4:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			d.Encoding = Encoding(v)
		case 5:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			d.DefinitionLevelsByteLength = v
		case 6:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			d.RepetitionLevelsByteLength = v
		case 7:
			v, err := p.ReadBool(ctx)
			if err != nil {
				return err
			}
			d.IsCompressed = &v
		case 8:
			st := &Statistics{}
			if err := st.Read(ctx, p); err != nil {
				return err
			}
			d.Statistics = st
		default:
			if err := p.Skip(ctx, ftype); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

func (h *PageHeader) Write(ctx context.Context, p thrift.TProtocol) error {
	if err := p.WriteStructBegin(ctx, "PageHeader"); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "type", thrift.I32, 1); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, int32(h.Type)); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "uncompressed_page_size", thrift.I32, 2); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, h.UncompressedPageSize); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "compressed_page_size", thrift.I32, 3); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, h.CompressedPageSize); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if h.DataPageHeader != nil {
		if err := p.WriteFieldBegin(ctx, "data_page_header", thrift.STRUCT, 5); err != nil {
			return err
		}
		if err := h.DataPageHeader.Write(ctx, p); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if h.DataPageHeaderV2 != nil {
		if err := p.WriteFieldBegin(ctx, "data_page_header_v2", thrift.STRUCT, 8); err != nil {
			return err
		}
		if err := h.DataPageHeaderV2.Write(ctx, p); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func (h *PageHeader) Read(ctx context.Context, p thrift.TProtocol) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, ftype, id, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		switch id {
		case 1:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			h.Type = PageType(v)
		case 2:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			h.UncompressedPageSize = v
		case 3:
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			h.CompressedPageSize = v
		case 5:
			dph := &DataPageHeader{}
			if err := dph.Read(ctx, p); err != nil {
				return err
			}
			h.DataPageHeader = dph
		case 8:
			dph := &DataPageHeaderV2{}
			if err := dph.Read(ctx, p); err != nil {
				return err
			}
			h.DataPageHeaderV2 = dph
		default:
			if err := p.Skip(ctx, ftype); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

func int32Ptr(v int32) *int32 { return &v }
