package ron

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapOrderedInsertionOrderPreserved(t *testing.T) {
	t.Parallel()
	m := NewMap(true)
	m.Insert(StringValue("z"), NumberValue(NewInt(KindI8, 1)))
	m.Insert(StringValue("a"), NumberValue(NewInt(KindI8, 2)))
	m.Insert(StringValue("m"), NumberValue(NewInt(KindI8, 3)))

	var keys []string
	m.Range(func(k, v Value) bool {
		s, _ := k.String()
		keys = append(keys, s)
		return true
	})
	assert.Equal(t, []string{"z", "a", "m"}, keys)
}

func TestMapSortedBacking(t *testing.T) {
	t.Parallel()
	m := NewMap(false)
	m.Insert(StringValue("z"), UnitValue())
	m.Insert(StringValue("a"), UnitValue())
	m.Insert(StringValue("m"), UnitValue())

	var keys []string
	m.Range(func(k, v Value) bool {
		s, _ := k.String()
		keys = append(keys, s)
		return true
	})
	assert.Equal(t, []string{"a", "m", "z"}, keys)
}

func TestMapInsertOverwritePreservesPosition(t *testing.T) {
	t.Parallel()
	m := NewMap(true)
	m.Insert(StringValue("a"), NumberValue(NewInt(KindI8, 1)))
	m.Insert(StringValue("b"), NumberValue(NewInt(KindI8, 2)))
	replaced := m.Insert(StringValue("a"), NumberValue(NewInt(KindI8, 9)))
	assert.True(t, replaced)

	var keys []string
	m.Range(func(k, v Value) bool {
		s, _ := k.String()
		keys = append(keys, s)
		return true
	})
	assert.Equal(t, []string{"a", "b"}, keys)
	v, ok := m.Get(StringValue("a"))
	assert.True(t, ok)
	n, _ := v.Number()
	assert.Equal(t, int64(9), n.Int64())
}

func TestMapEqualityComparesOrder(t *testing.T) {
	t.Parallel()
	m1 := NewMap(true)
	m1.Insert(StringValue("a"), NumberValue(NewInt(KindI8, 1)))
	m1.Insert(StringValue("b"), NumberValue(NewInt(KindI8, 2)))

	m2 := NewMap(true)
	m2.Insert(StringValue("b"), NumberValue(NewInt(KindI8, 2)))
	m2.Insert(StringValue("a"), NumberValue(NewInt(KindI8, 1)))

	assert.False(t, m1.Equal(m2), "same entries in different order must not be equal")

	m3 := NewMap(true)
	m3.Insert(StringValue("a"), NumberValue(NewInt(KindI8, 1)))
	m3.Insert(StringValue("b"), NumberValue(NewInt(KindI8, 2)))
	assert.True(t, m1.Equal(m3))
}

func TestValueEqualAcrossKinds(t *testing.T) {
	t.Parallel()
	assert.True(t, UnitValue().Equal(UnitValue()))
	assert.True(t, BoolValue(true).Equal(BoolValue(true)))
	assert.False(t, BoolValue(true).Equal(BoolValue(false)))
	assert.True(t, StringValue("a").Equal(StringValue("a")))
	assert.True(t, NoneValue().Equal(NoneValue()))
	assert.True(t, SomeValue(StringValue("x")).Equal(SomeValue(StringValue("x"))))
	assert.False(t, SomeValue(StringValue("x")).Equal(NoneValue()))
	assert.True(t, BytesValue([]byte{1, 2}).Equal(BytesValue([]byte{1, 2})))
	assert.True(t, SeqValue([]Value{StringValue("a")}).Equal(SeqValue([]Value{StringValue("a")})))
	assert.False(t, StringValue("a").Equal(BoolValue(true)))
}

func TestRawValueRoundtripsVerbatim(t *testing.T) {
	t.Parallel()
	raw := RawValueOf("(1, 2, 3)")
	src, ok := raw.RawSource()
	assert.True(t, ok)
	assert.Equal(t, "(1, 2, 3)", src)
}
