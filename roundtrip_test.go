package ron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rtStruct and rtEnum exercise decode(encode(v)) == v across a
// struct/enum/seq combination.
type rtStruct struct {
	Name string   `ron:"name"`
	Tags []string `ron:"tags"`
	Next rtEnum   `ron:"next"`
}

type rtEnum struct {
	kind string
	a    int64
	b    int64
}

func (e *rtEnum) RONEnumVariant(name string) (VariantKind, []string, bool) {
	switch name {
	case "C":
		return VariantTuple, nil, true
	case "D":
		return VariantStruct, []string{"a", "b"}, true
	default:
		return 0, nil, false
	}
}

func (e *rtEnum) UnmarshalRONEnum(v Enum) error {
	e.kind = v.Variant
	switch v.Kind {
	case VariantTuple:
		n0, _ := v.Tuple[0].Number()
		n1, _ := v.Tuple[1].Number()
		e.a, e.b = n0.Int64(), n1.Int64()
	case VariantStruct:
		av, _ := v.Struct.Get(StringValue("a"))
		bv, _ := v.Struct.Get(StringValue("b"))
		na, _ := av.Number()
		nb, _ := bv.Number()
		e.a, e.b = na.Int64(), nb.Int64()
	}
	return nil
}

func (e rtEnum) MarshalRONEnum() Enum {
	switch e.kind {
	case "C":
		return EnumTuple("C", NumberValue(NewInt(KindI64, e.a)), NumberValue(NewInt(KindI64, e.b)))
	case "D":
		m := NewMap(true)
		m.Insert(StringValue("a"), NumberValue(NewInt(KindI64, e.a)))
		m.Insert(StringValue("b"), NumberValue(NewInt(KindI64, e.b)))
		return EnumStruct("D", m)
	default:
		return Enum{}
	}
}

func TestRoundTripStructEnumSeq(t *testing.T) {
	t.Parallel()

	want := rtStruct{
		Name: "widget",
		Tags: []string{"a", "b", "c"},
		Next: rtEnum{kind: "D", a: 2, b: 3},
	}

	data, err := Marshal(want, nil)
	require.NoError(t, err)

	var got rtStruct
	require.NoError(t, Unmarshal(data, &got, nil))

	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Tags, got.Tags)
	assert.Equal(t, want.Next.kind, got.Next.kind)
	assert.Equal(t, want.Next.a, got.Next.a)
	assert.Equal(t, want.Next.b, got.Next.b)
}

func TestRoundTripTupleVariant(t *testing.T) {
	t.Parallel()

	want := rtEnum{kind: "C", a: 1, b: 2}
	data, err := Marshal(&want, nil)
	require.NoError(t, err)

	var got rtEnum
	require.NoError(t, Unmarshal(data, &got, nil))
	assert.Equal(t, want, got)
}

func TestRoundTripEmptyStruct(t *testing.T) {
	t.Parallel()
	type emptyStruct1 struct{}

	data, err := Marshal(emptyStruct1{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "()", string(data))

	var got emptyStruct1
	require.NoError(t, Unmarshal(data, &got, nil))
}

func TestRoundTripStructNamesCompact(t *testing.T) {
	t.Parallel()
	cfg := DefaultPrettyConfig().Compact()
	cfg.StructNames = true

	data, err := MarshalPretty(point{X: 4, Y: 7}, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "point(x: 4.0, y: 7.0)", string(data))

	var got point
	require.NoError(t, Unmarshal(data, &got, nil))
	assert.Equal(t, point{X: 4, Y: 7}, got)
}

func TestRoundTripByteBufferEscapeFormsAreEquivalent(t *testing.T) {
	t.Parallel()

	var a, b []byte
	require.NoError(t, Unmarshal([]byte(`b"\x41\x42"`), &a, nil))
	require.NoError(t, Unmarshal([]byte(`b"AB"`), &b, nil))
	assert.Equal(t, a, b)
	assert.Equal(t, []byte("AB"), a)

	var s1, s2 string
	require.NoError(t, Unmarshal([]byte(`"\u{48}\u{49}"`), &s1, nil))
	require.NoError(t, Unmarshal([]byte(`"HI"`), &s2, nil))
	assert.Equal(t, s1, s2)
}

func TestRoundTripMapOfStructs(t *testing.T) {
	t.Parallel()

	want := map[string]nestedMsg{
		"x": {Field: 1},
		"y": {Field: 2},
	}
	data, err := Marshal(want, nil)
	require.NoError(t, err)

	var got map[string]nestedMsg
	require.NoError(t, Unmarshal(data, &got, nil))
	assert.Equal(t, want, got)
}

func TestDefaultOptionsMatchDocumentedDefaults(t *testing.T) {
	t.Parallel()
	opts := (&Options{}).withDefaults()
	assert.Equal(t, Extensions(0), opts.Extensions)
	assert.Equal(t, 0, opts.RecursionLimit)
	assert.False(t, opts.Allow128Bit)
	assert.False(t, opts.OrderedMaps)
}

func TestDefaultPrettyConfigMatchesDocumentedDefaults(t *testing.T) {
	t.Parallel()
	cfg := DefaultPrettyConfig()
	assert.Equal(t, "\n", cfg.NewLine)
	assert.Equal(t, "    ", cfg.Indentor)
	assert.True(t, cfg.EscapeStrings)
	assert.False(t, cfg.StructNames)
	assert.False(t, cfg.CompactArrays)
}
