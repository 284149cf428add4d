package parquetschema

import (
	"github.com/pkg/errors"

	"github.com/tempodb-io/parquetcore/pkg/format"
	"github.com/tempodb-io/parquetcore/pkg/perr"
)

// ToSchemaElements flattens a Schema into the pre-order SchemaElement list
// stored in FileMetaData.Schema (§4.1, §4.8): the message root first, each
// group immediately followed by its children, depth-first.
func ToSchemaElements(s *Schema) []*format.SchemaElement {
	out := []*format.SchemaElement{{
		Name:        "root",
		NumChildren: i32Ptr(int32(len(s.Root.Children))),
	}}
	for _, c := range s.Root.Children {
		out = appendElement(out, c)
	}
	return out
}

func appendElement(out []*format.SchemaElement, n *Node) []*format.SchemaElement {
	rt := repetitionToFormat(n.Repetition)
	se := &format.SchemaElement{
		Name:           n.Name,
		RepetitionType: &rt,
	}
	if n.Kind == KindGroup {
		se.NumChildren = i32Ptr(int32(len(n.Children)))
	} else {
		t := typeToFormat(n.Type)
		se.Type = &t
		if n.Type == FixedLenByteArray {
			se.TypeLength = i32Ptr(int32(n.TypeLength))
		}
		if ct, ok := convertedTypeOf(n.LogicalType); ok {
			se.ConvertedType = &ct
			if n.LogicalType == Interval {
				se.TypeLength = i32Ptr(int32(n.TypeLength))
			}
		}
	}
	out = append(out, se)
	for _, c := range n.Children {
		out = appendElement(out, c)
	}
	return out
}

// FromSchemaElements reconstructs a Schema from a pre-order SchemaElement
// list read off a file footer, then re-derives levels with Build so a
// reader's schema is identical to what a writer using the same field
// layout would have produced.
func FromSchemaElements(elems []*format.SchemaElement) (*Schema, error) {
	if len(elems) == 0 {
		return nil, perr.New(perr.KindCorruptStream, "empty schema element list")
	}
	root := elems[0]
	if root.NumChildren == nil {
		return nil, perr.New(perr.KindCorruptStream, "schema root missing num_children")
	}

	fields, next, err := readFields(elems, 1, int(*root.NumChildren))
	if err != nil {
		return nil, err
	}
	if next != len(elems) {
		return nil, perr.New(perr.KindCorruptStream, "schema element list has %d trailing entries", len(elems)-next)
	}
	return Build(fields)
}

func readFields(elems []*format.SchemaElement, idx, count int) ([]FieldDescriptor, int, error) {
	fields := make([]FieldDescriptor, 0, count)
	for i := 0; i < count; i++ {
		if idx >= len(elems) {
			return nil, 0, perr.New(perr.KindCorruptStream, "schema element list truncated")
		}
		fd, next, err := readField(elems, idx)
		if err != nil {
			return nil, 0, err
		}
		fields = append(fields, fd)
		idx = next
	}
	return fields, idx, nil
}

func readField(elems []*format.SchemaElement, idx int) (FieldDescriptor, int, error) {
	e := elems[idx]
	if e.RepetitionType == nil {
		return FieldDescriptor{}, 0, perr.New(perr.KindCorruptStream, "schema element %q missing repetition_type", e.Name)
	}
	optional, repeated := repetitionFromFormat(*e.RepetitionType)

	if e.Type == nil {
		// Group.
		if e.NumChildren == nil {
			return FieldDescriptor{}, 0, perr.New(perr.KindCorruptStream, "group %q missing num_children", e.Name)
		}
		children, next, err := readFields(elems, idx+1, int(*e.NumChildren))
		if err != nil {
			return FieldDescriptor{}, 0, errors.Wrapf(err, "group %q", e.Name)
		}
		return FieldDescriptor{
			Name: e.Name,
			Group: &GroupDescriptor{
				Optional: optional,
				Repeated: repeated,
				Fields:   children,
			},
		}, next, nil
	}

	ld := &LeafDescriptor{
		Type:     typeFromFormat(*e.Type),
		Optional: optional,
		Repeated: repeated,
	}
	if e.TypeLength != nil {
		ld.TypeLength = int(*e.TypeLength)
	}
	if e.ConvertedType != nil {
		ld.LogicalType = logicalTypeFromConverted(*e.ConvertedType)
	}
	return FieldDescriptor{Name: e.Name, Leaf: ld}, idx + 1, nil
}

func repetitionToFormat(r Repetition) format.FieldRepetitionType {
	switch r {
	case Optional:
		return format.Optional
	case Repeated:
		return format.Repeated
	default:
		return format.Required
	}
}

func repetitionFromFormat(rt format.FieldRepetitionType) (optional, repeated bool) {
	switch rt {
	case format.Optional:
		return true, false
	case format.Repeated:
		return false, true
	default:
		return false, false
	}
}

func typeToFormat(t Type) format.Type { return format.Type(t) }
func typeFromFormat(t format.Type) Type { return Type(t) }

func convertedTypeOf(lt LogicalType) (format.ConvertedType, bool) {
	switch lt {
	case UTF8:
		return format.ConvertedUTF8, true
	case Date:
		return format.ConvertedDate, true
	case TimestampMillis:
		return format.ConvertedTimestampMillis, true
	case TimestampMicros:
		return format.ConvertedTimestampMicros, true
	case Interval:
		return format.ConvertedInterval, true
	case BSON:
		return format.ConvertedBSON, true
	default:
		return 0, false
	}
}

func logicalTypeFromConverted(ct format.ConvertedType) LogicalType {
	switch ct {
	case format.ConvertedUTF8:
		return UTF8
	case format.ConvertedDate:
		return Date
	case format.ConvertedTimestampMillis:
		return TimestampMillis
	case format.ConvertedTimestampMicros:
		return TimestampMicros
	case format.ConvertedInterval:
		return Interval
	case format.ConvertedBSON:
		return BSON
	default:
		return NoLogicalType
	}
}

func i32Ptr(v int32) *int32 { return &v }
