package ron

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValueUntypedMapFromIdentKeys(t *testing.T) {
	t.Parallel()
	v, _, err := ParseValue([]byte(`(a: 1, b: 2)`), nil)
	require.NoError(t, err)
	assert.Equal(t, KindValueMap, v.Kind())
	m, _ := v.Map()
	got, ok := m.Get(StringValue("a"))
	require.True(t, ok)
	n, _ := got.Number()
	assert.Equal(t, int64(1), n.Int64())
}

func TestParseValueUntypedTupleShapedBecomesSeq(t *testing.T) {
	t.Parallel()
	v, _, err := ParseValue([]byte(`(1, 2, 3)`), nil)
	require.NoError(t, err)
	assert.Equal(t, KindSeq, v.Kind())
	items, _ := v.Seq()
	assert.Len(t, items, 3)
}

func TestParseValueNamedStructDiscardsName(t *testing.T) {
	t.Parallel()
	v, _, err := ParseValue([]byte(`MyStruct(a: 1)`), nil)
	require.NoError(t, err)
	assert.Equal(t, KindValueMap, v.Kind())
}

func TestParseValueBareIdentIsUnitVariant(t *testing.T) {
	t.Parallel()
	v, _, err := ParseValue([]byte(`SomeUnitVariant`), nil)
	require.NoError(t, err)
	assert.Equal(t, KindUnit, v.Kind())
}

func TestParseValueEmptyParensIsUnit(t *testing.T) {
	t.Parallel()
	v, _, err := ParseValue([]byte(`()`), nil)
	require.NoError(t, err)
	assert.Equal(t, KindUnit, v.Kind())
}

func TestParseValueExplicitSomeNone(t *testing.T) {
	t.Parallel()
	v, _, err := ParseValue([]byte(`Some(1)`), nil)
	require.NoError(t, err)
	inner, some, isOpt := v.Option()
	require.True(t, isOpt)
	require.True(t, some)
	n, _ := inner.Number()
	assert.Equal(t, int64(1), n.Int64())

	v2, _, err := ParseValue([]byte(`None`), nil)
	require.NoError(t, err)
	_, some2, isOpt2 := v2.Option()
	assert.True(t, isOpt2)
	assert.False(t, some2)
}

func TestParseValueSeqAndMapAndString(t *testing.T) {
	t.Parallel()

	v, _, err := ParseValue([]byte(`[1, 2, 3]`), nil)
	require.NoError(t, err)
	items, ok := v.Seq()
	require.True(t, ok)
	assert.Len(t, items, 3)

	v2, _, err := ParseValue([]byte(`{1: 2, 3: 4}`), nil)
	require.NoError(t, err)
	m, ok := v2.Map()
	require.True(t, ok)
	assert.Equal(t, 2, m.Len())

	v3, _, err := ParseValue([]byte(`"hello"`), nil)
	require.NoError(t, err)
	s, ok := v3.String()
	require.True(t, ok)
	assert.Equal(t, "hello", s)
}

func TestParseValueAnyNumPicksNarrowest(t *testing.T) {
	t.Parallel()
	v, _, err := ParseValue([]byte(`255`), nil)
	require.NoError(t, err)
	n, _ := v.Number()
	assert.Equal(t, KindU8, n.Kind)

	v2, _, err := ParseValue([]byte(`-128`), nil)
	require.NoError(t, err)
	n2, _ := v2.Number()
	assert.Equal(t, KindI8, n2.Kind)
}

func TestParseValueByteCharCompactForms(t *testing.T) {
	t.Parallel()
	v, _, err := ParseValue([]byte(`b"hi"`), nil)
	require.NoError(t, err)
	by, ok := v.Bytes()
	require.True(t, ok)
	assert.Equal(t, []byte("hi"), by)

	v2, _, err := ParseValue([]byte(`'x'`), nil)
	require.NoError(t, err)
	c, ok := v2.Char()
	require.True(t, ok)
	assert.Equal(t, 'x', c)
}

func TestParseValueMissingCommaErrors(t *testing.T) {
	t.Parallel()
	_, _, err := ParseValue([]byte(`[1 2]`), nil)
	require.Error(t, err)
}

func TestParseValueBareInfAndNaNAreNumbers(t *testing.T) {
	t.Parallel()

	v, _, err := ParseValue([]byte(`inf`), nil)
	require.NoError(t, err)
	n, ok := v.Number()
	require.True(t, ok)
	assert.True(t, math.IsInf(n.Float64(), 1))

	v2, _, err := ParseValue([]byte(`NaN`), nil)
	require.NoError(t, err)
	n2, ok := v2.Number()
	require.True(t, ok)
	assert.True(t, math.IsNaN(n2.Float64()))

	// "infinity" is not the bare "inf" keyword; it's an identifier, so it
	// still resolves to a unit enum variant under the untyped driver.
	v3, _, err := ParseValue([]byte(`infinity`), nil)
	require.NoError(t, err)
	assert.Equal(t, KindUnit, v3.Kind())
}

func TestParseValueTrailingCommaAccepted(t *testing.T) {
	t.Parallel()
	_, _, err := ParseValue([]byte(`[1, 2, 3,]`), nil)
	require.NoError(t, err)

	_, _, err = ParseValue([]byte(`{a: 1, b: 2,}`), nil)
	require.NoError(t, err)

	_, _, err = ParseValue([]byte(`(a: 1, b: 2,)`), nil)
	require.NoError(t, err)
}
