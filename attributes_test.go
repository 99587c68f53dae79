package ron

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrologueSingleAndMultiple(t *testing.T) {
	t.Parallel()

	s := newScanner([]byte(`#![enable(implicit_some)] 5`))
	exts, err := s.parsePrologue()
	require.NoError(t, err)
	assert.True(t, exts.Has(ExtImplicitSome))

	s2 := newScanner([]byte(`#![enable(implicit_some, unwrap_newtypes)] 5`))
	exts2, err := s2.parsePrologue()
	require.NoError(t, err)
	assert.True(t, exts2.Has(ExtImplicitSome))
	assert.True(t, exts2.Has(ExtUnwrapNewtypes))

	s3 := newScanner([]byte(`#![enable(implicit_some)]
#![enable(unwrap_variant_newtypes)]
5`))
	exts3, err := s3.parsePrologue()
	require.NoError(t, err)
	assert.True(t, exts3.Has(ExtImplicitSome))
	assert.True(t, exts3.Has(ExtUnwrapVariantNewtypes))
}

func TestParsePrologueUnknownExtension(t *testing.T) {
	t.Parallel()
	s := newScanner([]byte(`#![enable(bogus_extension)] 5`))
	_, err := s.parsePrologue()
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindNoSuchExtension, perr.Kind)
}

func TestParsePrologueMalformedAttribute(t *testing.T) {
	t.Parallel()
	s := newScanner([]byte(`#[enable(implicit_some)] 5`))
	_, err := s.parsePrologue()
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindExpectedAttribute, perr.Kind)
}

func TestParsePrologueNoAttributes(t *testing.T) {
	t.Parallel()
	s := newScanner([]byte(`5`))
	exts, err := s.parsePrologue()
	require.NoError(t, err)
	assert.Equal(t, Extensions(0), exts)
}

func TestExtensionsMonotonicity(t *testing.T) {
	t.Parallel()

	// A document valid without IMPLICIT_SOME must still be valid with it
	// enabled (enabling extensions never rejects previously accepted input).
	var got *int
	require.NoError(t, Unmarshal([]byte(`Some(3)`), &got, nil))
	require.NotNil(t, got)

	var got2 *int
	require.NoError(t, Unmarshal([]byte(`Some(3)`), &got2, &Options{Extensions: ExtImplicitSome}))
	require.NotNil(t, got2)
	assert.Equal(t, *got, *got2)
}

func TestExtensionsString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "()", Extensions(0).String())
	assert.Equal(t, "(implicit_some)", ExtImplicitSome.String())
	assert.Equal(t, "(unwrap_newtypes, implicit_some)", (ExtUnwrapNewtypes | ExtImplicitSome).String())
}
