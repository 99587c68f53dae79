package ron

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawMarshalUnmarshalVerbatim(t *testing.T) {
	t.Parallel()

	got, err := Marshal(Raw("SomeWeirdThing(1, 2, 3)"), nil)
	require.NoError(t, err)
	assert.Equal(t, "SomeWeirdThing(1, 2, 3)", string(got))

	var r Raw
	require.NoError(t, Unmarshal([]byte("  SomeWeirdThing(1, 2, 3)  "), &r, nil))
	assert.Equal(t, Raw("SomeWeirdThing(1, 2, 3)"), r)
}

func TestNewRawValidates(t *testing.T) {
	t.Parallel()

	r, err := NewRaw("  [1, 2, 3]  ", nil)
	require.NoError(t, err)
	assert.Equal(t, Raw("[1, 2, 3]"), r)

	_, err = NewRaw("[1, 2", nil)
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindExpectedRawValue, perr.Kind)

	_, err = NewRaw("1 2", nil)
	require.Error(t, err)
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindExpectedRawValue, perr.Kind)
}

func TestRawFieldInStructPreservesExactSource(t *testing.T) {
	t.Parallel()

	type holder struct {
		Payload Raw `ron:"payload"`
	}

	var h holder
	require.NoError(t, Unmarshal([]byte(`(payload: [1, 2, 3])`), &h, nil))
	assert.Equal(t, Raw("[1, 2, 3]"), h.Payload)

	out, err := Marshal(h, nil)
	require.NoError(t, err)
	assert.Equal(t, "(payload: [1, 2, 3])", string(out))
}
