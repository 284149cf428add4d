// Package parquetschema builds the internal, immutable schema tree that the
// shredder and assembler walk: for every leaf it derives the maximum
// definition level, the maximum repetition level, and a stable column path,
// following the Dremel level arithmetic (dremel.pb §4, spec §3).
package parquetschema

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/tempodb-io/parquetcore/pkg/perr"
)

// Repetition is one of REQUIRED, OPTIONAL, REPEATED.
type Repetition int

const (
	Required Repetition = iota
	Optional
	Repeated
)

func (r Repetition) String() string {
	switch r {
	case Required:
		return "REQUIRED"
	case Optional:
		return "OPTIONAL"
	case Repeated:
		return "REPEATED"
	default:
		return "UNKNOWN"
	}
}

// Type is a Parquet primitive physical type. The numeric values match the
// on-disk Type enum used by format.SchemaElement.
type Type int32

const (
	Boolean Type = iota
	Int32
	Int64
	Int96
	Float
	Double
	ByteArray
	FixedLenByteArray
)

// LogicalType annotates a primitive Type and is stored as the schema
// element's converted_type. The shredder and assembler do not convert
// values by it: a DATE, TIMESTAMP or INTERVAL column takes and returns the
// Go value of its primitive type. The only use on the value path is in
// pkg/page, which returns UTF8 byte arrays as Go strings.
type LogicalType int

const (
	NoLogicalType LogicalType = iota
	UTF8
	Date
	TimestampMillis
	TimestampMicros
	Interval
	BSON
)

// Kind distinguishes a Group node (has Children) from a Leaf node (has a
// primitive Type).
type Kind int

const (
	KindGroup Kind = iota
	KindLeaf
)

// FieldDescriptor is the user-supplied, ordered description of one field:
// exactly one of Group or Leaf must be set.
type FieldDescriptor struct {
	Name  string
	Group *GroupDescriptor
	Leaf  *LeafDescriptor
}

// GroupDescriptor describes a group field or the schema root.
type GroupDescriptor struct {
	Optional bool
	Repeated bool
	Fields   []FieldDescriptor
}

// LeafDescriptor describes a scalar field.
type LeafDescriptor struct {
	Type        Type
	Optional    bool
	Repeated    bool
	TypeLength  int
	LogicalType LogicalType
	Compression string // named compression algorithm, see pkg/compress
}

// Node is one element of the derived, immutable schema tree.
type Node struct {
	Name       string
	Path       []string
	Kind       Kind
	Repetition Repetition

	DLevelMax int
	RLevelMax int

	// Leaf-only.
	Type        Type
	LogicalType LogicalType
	TypeLength  int
	Compression string

	// Group-only, in declaration order.
	Children []*Node

	Parent *Node
}

// PathString is the dot-joined column path, used as the stable stream key.
func (n *Node) PathString() string { return strings.Join(n.Path, ".") }

// Schema is an immutable, sharable schema tree plus derived indexes.
type Schema struct {
	Root   *Node   // synthetic REQUIRED group holding the top-level fields
	Leaves []*Node // depth-first, declaration order

	leafByPath map[string]*Node
}

// LeafByPath looks up a leaf by its dot-joined column path.
func (s *Schema) LeafByPath(path string) (*Node, bool) {
	n, ok := s.leafByPath[path]
	return n, ok
}

// Build derives a Schema from a top-level field list (the schema's message
// root, always REQUIRED and contributing nothing to level math per §3).
func Build(fields []FieldDescriptor) (*Schema, error) {
	root := &Node{
		Name:       "root",
		Path:       nil,
		Kind:       KindGroup,
		Repetition: Required,
	}

	if err := buildChildren(root, fields, map[string]bool{}); err != nil {
		return nil, err
	}

	s := &Schema{Root: root, leafByPath: map[string]*Node{}}
	collectLeaves(root, s)
	return s, nil
}

func buildChildren(parent *Node, fields []FieldDescriptor, seen map[string]bool) error {
	for _, fd := range fields {
		if fd.Name == "" {
			return perr.New(perr.KindInvalidConfig, "field name must not be empty")
		}
		if seen[fd.Name] {
			return perr.New(perr.KindInvalidConfig, "duplicate field name %q", fd.Name)
		}
		seen[fd.Name] = true

		child, err := buildNode(parent, fd)
		if err != nil {
			return errors.Wrapf(err, "field %q", fd.Name)
		}
		parent.Children = append(parent.Children, child)
	}
	return nil
}

func buildNode(parent *Node, fd FieldDescriptor) (*Node, error) {
	switch {
	case fd.Group != nil && fd.Leaf != nil:
		return nil, perr.New(perr.KindInvalidConfig, "field must not set both group and leaf")
	case fd.Group != nil:
		return buildGroup(parent, fd.Name, fd.Group)
	case fd.Leaf != nil:
		return buildLeaf(parent, fd.Name, fd.Leaf)
	default:
		return nil, perr.New(perr.KindInvalidConfig, "field must set either group or leaf")
	}
}

func buildGroup(parent *Node, name string, gd *GroupDescriptor) (*Node, error) {
	rep := repetitionOf(gd.Optional, gd.Repeated)

	n := &Node{
		Name:       name,
		Path:       append(append([]string{}, parent.Path...), name),
		Kind:       KindGroup,
		Repetition: rep,
		Parent:     parent,
		DLevelMax:  parent.DLevelMax + levelBump(rep, false),
		RLevelMax:  parent.RLevelMax + levelBump(rep, true),
	}

	if err := buildChildren(n, gd.Fields, map[string]bool{}); err != nil {
		return nil, err
	}
	if len(n.Children) == 0 {
		return nil, perr.New(perr.KindInvalidConfig, "group %q has no fields", name)
	}
	return n, nil
}

func buildLeaf(parent *Node, name string, ld *LeafDescriptor) (*Node, error) {
	rep := repetitionOf(ld.Optional, ld.Repeated)
	if err := validateLeafType(ld); err != nil {
		return nil, err
	}

	return &Node{
		Name:        name,
		Path:        append(append([]string{}, parent.Path...), name),
		Kind:        KindLeaf,
		Repetition:  rep,
		Parent:      parent,
		Type:        ld.Type,
		LogicalType: ld.LogicalType,
		TypeLength:  ld.TypeLength,
		Compression: ld.Compression,
		DLevelMax:   parent.DLevelMax + levelBump(rep, false),
		RLevelMax:   parent.RLevelMax + levelBump(rep, true),
	}, nil
}

// repetitionOf turns the {optional, repeated} flag pair into a Repetition.
// Both flags set is accepted as the "optional repeated list" variant named
// in spec §4.1: it behaves as REPEATED for level math, since a REPEATED
// field is already nullable-as-empty-array. Every combination of the two
// booleans is a valid Repetition, so there is no conflicting-flags case to
// reject.
func repetitionOf(optional, repeated bool) Repetition {
	switch {
	case repeated:
		return Repeated
	case optional:
		return Optional
	default:
		return Required
	}
}

func levelBump(rep Repetition, repetitionLevel bool) int {
	if repetitionLevel {
		if rep == Repeated {
			return 1
		}
		return 0
	}
	if rep == Optional || rep == Repeated {
		return 1
	}
	return 0
}

func validateLeafType(ld *LeafDescriptor) error {
	switch ld.Type {
	case Boolean, Int32, Int64, Int96, Float, Double, ByteArray, FixedLenByteArray:
	default:
		return perr.New(perr.KindInvalidConfig, "unknown primitive type %d", ld.Type)
	}
	needsLength := ld.Type == FixedLenByteArray || ld.LogicalType == Interval
	if needsLength && ld.TypeLength <= 0 {
		return perr.New(perr.KindInvalidConfig, "typeLength is required for %v", ld.Type)
	}
	if ld.LogicalType == Interval && ld.TypeLength != 12 {
		return perr.New(perr.KindInvalidConfig, "INTERVAL typeLength must be 12, got %d", ld.TypeLength)
	}
	return nil
}

func collectLeaves(n *Node, s *Schema) {
	if n.Kind == KindLeaf {
		s.Leaves = append(s.Leaves, n)
		s.leafByPath[n.PathString()] = n
		return
	}
	for _, c := range n.Children {
		collectLeaves(c, s)
	}
}
