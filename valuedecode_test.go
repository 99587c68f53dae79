package ron

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueDecodeScalars(t *testing.T) {
	t.Parallel()

	var b bool
	require.NoError(t, BoolValue(true).Decode(&b, nil))
	assert.True(t, b)

	var s string
	require.NoError(t, StringValue("hi").Decode(&s, nil))
	assert.Equal(t, "hi", s)

	var i int
	require.NoError(t, NumberValue(NewInt(KindI64, -4)).Decode(&i, nil))
	assert.Equal(t, -4, i)

	var f float64
	require.NoError(t, NumberValue(NewFloat64(1.5)).Decode(&f, nil))
	assert.Equal(t, 1.5, f)
}

func TestValueDecodeKindMismatchIsInvalidValueForType(t *testing.T) {
	t.Parallel()

	var b bool
	err := StringValue("nope").Decode(&b, nil)
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindInvalidValueForType, perr.Kind)
	assert.Equal(t, "a string", perr.Found)

	var i int
	err = NumberValue(NewFloat64(1.5)).Decode(&i, nil)
	require.Error(t, err)
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindInvalidValueForType, perr.Kind)
}

func TestValueDecodeStruct(t *testing.T) {
	t.Parallel()

	v, _, err := ParseValue([]byte(`(field: 7)`), nil)
	require.NoError(t, err)

	var got nestedMsg
	require.NoError(t, v.Decode(&got, nil))
	assert.Equal(t, nestedMsg{Field: 7}, got)

	v2, _, err := ParseValue([]byte(`(bogus: 7)`), nil)
	require.NoError(t, err)
	err = v2.Decode(&got, nil)
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindNoSuchStructField, perr.Kind)
}

func TestValueDecodeSeqMapOption(t *testing.T) {
	t.Parallel()

	var ints []int
	require.NoError(t, SeqValue([]Value{
		NumberValue(NewInt(KindI64, 1)),
		NumberValue(NewInt(KindI64, 2)),
	}).Decode(&ints, nil))
	assert.Equal(t, []int{1, 2}, ints)

	m := NewMap(true)
	m.Insert(StringValue("a"), NumberValue(NewInt(KindI64, 1)))
	var gm map[string]int
	require.NoError(t, MapValue(m).Decode(&gm, nil))
	assert.Equal(t, map[string]int{"a": 1}, gm)

	var p *int
	require.NoError(t, NoneValue().Decode(&p, nil))
	assert.Nil(t, p)
	require.NoError(t, SomeValue(NumberValue(NewInt(KindI64, 3))).Decode(&p, nil))
	require.NotNil(t, p)
	assert.Equal(t, 3, *p)
}

func TestValueDecodeArrayLengthMismatch(t *testing.T) {
	t.Parallel()
	var arr [3]int
	err := SeqValue([]Value{NumberValue(NewInt(KindI64, 1))}).Decode(&arr, nil)
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindExpectedDifferentLength, perr.Kind)
}

func TestUnmarshalIntoValueTarget(t *testing.T) {
	t.Parallel()
	var v Value
	require.NoError(t, Unmarshal([]byte(`[1, 2, 3]`), &v, nil))
	assert.Equal(t, KindSeq, v.Kind())
	items, _ := v.Seq()
	assert.Len(t, items, 3)
}
