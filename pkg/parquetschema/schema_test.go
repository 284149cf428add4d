package parquetschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// documentTestFields models: id (required int64), name (optional utf8),
// tags (repeated utf8), address.street (optional group / optional utf8),
// links.item (repeated group / required int64) — the nested-repeated shape
// used by the Dremel dLevel/rLevel worked examples.
func documentTestFields() []FieldDescriptor {
	return []FieldDescriptor{
		{Name: "id", Leaf: &LeafDescriptor{Type: Int64}},
		{Name: "name", Leaf: &LeafDescriptor{Type: ByteArray, Optional: true, LogicalType: UTF8}},
		{Name: "tags", Leaf: &LeafDescriptor{Type: ByteArray, Repeated: true, LogicalType: UTF8}},
		{
			Name: "address",
			Group: &GroupDescriptor{
				Optional: true,
				Fields: []FieldDescriptor{
					{Name: "street", Leaf: &LeafDescriptor{Type: ByteArray, Optional: true, LogicalType: UTF8}},
				},
			},
		},
		{
			Name: "links",
			Group: &GroupDescriptor{
				Repeated: true,
				Fields: []FieldDescriptor{
					{Name: "item", Leaf: &LeafDescriptor{Type: Int64}},
				},
			},
		},
	}
}

func TestBuildLevels(t *testing.T) {
	s, err := Build(documentTestFields())
	require.NoError(t, err)

	cases := []struct {
		path             string
		wantD, wantR int
	}{
		{"id", 0, 0},
		{"name", 1, 0},
		{"tags", 1, 1},
		{"address.street", 2, 0},
		{"links.item", 1, 1},
	}
	for _, c := range cases {
		n, ok := s.LeafByPath(c.path)
		require.True(t, ok, "missing leaf %q", c.path)
		assert.Equal(t, c.wantD, n.DLevelMax, "dLevelMax for %q", c.path)
		assert.Equal(t, c.wantR, n.RLevelMax, "rLevelMax for %q", c.path)
	}
	assert.Len(t, s.Leaves, 5)
}

func TestBuildRejectsEmptyName(t *testing.T) {
	_, err := Build([]FieldDescriptor{{Leaf: &LeafDescriptor{Type: Int64}}})
	require.Error(t, err)
}

func TestBuildRejectsDuplicateName(t *testing.T) {
	_, err := Build([]FieldDescriptor{
		{Name: "a", Leaf: &LeafDescriptor{Type: Int64}},
		{Name: "a", Leaf: &LeafDescriptor{Type: Int64}},
	})
	require.Error(t, err)
}

func TestBuildRejectsAmbiguousField(t *testing.T) {
	_, err := Build([]FieldDescriptor{{Name: "a", Group: &GroupDescriptor{}, Leaf: &LeafDescriptor{Type: Int64}}})
	require.Error(t, err)
}

func TestBuildRejectsEmptyGroup(t *testing.T) {
	_, err := Build([]FieldDescriptor{{Name: "g", Group: &GroupDescriptor{}}})
	require.Error(t, err)
}

func TestBuildFixedLenByteArrayRequiresTypeLength(t *testing.T) {
	_, err := Build([]FieldDescriptor{{Name: "f", Leaf: &LeafDescriptor{Type: FixedLenByteArray}}})
	require.Error(t, err)

	_, err = Build([]FieldDescriptor{{Name: "f", Leaf: &LeafDescriptor{Type: FixedLenByteArray, TypeLength: 16}}})
	require.NoError(t, err)
}

func TestBuildIntervalRequiresTypeLengthTwelve(t *testing.T) {
	_, err := Build([]FieldDescriptor{{Name: "f", Leaf: &LeafDescriptor{Type: FixedLenByteArray, TypeLength: 16, LogicalType: Interval}}})
	require.Error(t, err)

	_, err = Build([]FieldDescriptor{{Name: "f", Leaf: &LeafDescriptor{Type: FixedLenByteArray, TypeLength: 12, LogicalType: Interval}}})
	require.NoError(t, err)
}

func TestOptionalRepeatedBehavesAsRepeated(t *testing.T) {
	s, err := Build([]FieldDescriptor{{Name: "a", Leaf: &LeafDescriptor{Type: Int64, Optional: true, Repeated: true}}})
	require.NoError(t, err)
	n, ok := s.LeafByPath("a")
	require.True(t, ok)
	assert.Equal(t, Repeated, n.Repetition)
	assert.Equal(t, 1, n.DLevelMax)
	assert.Equal(t, 1, n.RLevelMax)
}

func TestSchemaElementRoundTrip(t *testing.T) {
	s, err := Build(documentTestFields())
	require.NoError(t, err)

	elems := ToSchemaElements(s)
	got, err := FromSchemaElements(elems)
	require.NoError(t, err)

	require.Len(t, got.Leaves, len(s.Leaves))
	for _, want := range s.Leaves {
		n, ok := got.LeafByPath(want.PathString())
		require.True(t, ok, "missing leaf %q after round trip", want.PathString())
		assert.Equal(t, want.DLevelMax, n.DLevelMax, want.PathString())
		assert.Equal(t, want.RLevelMax, n.RLevelMax, want.PathString())
		assert.Equal(t, want.Type, n.Type, want.PathString())
		assert.Equal(t, want.LogicalType, n.LogicalType, want.PathString())
		assert.Equal(t, want.Repetition, n.Repetition, want.PathString())
	}
}

func TestSchemaElementRoundTripFixedLenAndInterval(t *testing.T) {
	fields := []FieldDescriptor{
		{Name: "fixed", Leaf: &LeafDescriptor{Type: FixedLenByteArray, TypeLength: 16}},
		{Name: "iv", Leaf: &LeafDescriptor{Type: FixedLenByteArray, TypeLength: 12, LogicalType: Interval}},
	}
	s, err := Build(fields)
	require.NoError(t, err)

	elems := ToSchemaElements(s)
	got, err := FromSchemaElements(elems)
	require.NoError(t, err)

	n, ok := got.LeafByPath("fixed")
	require.True(t, ok)
	assert.Equal(t, 16, n.TypeLength)

	n, ok = got.LeafByPath("iv")
	require.True(t, ok)
	assert.Equal(t, 12, n.TypeLength)
	assert.Equal(t, Interval, n.LogicalType)
}
