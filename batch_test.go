package ron

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManyConcurrentlyPopulatesEachTarget(t *testing.T) {
	t.Parallel()

	var a, b, c int
	docs := []Document{
		{Data: []byte("1"), Into: &a},
		{Data: []byte("2"), Into: &b},
		{Data: []byte("3"), Into: &c},
	}
	require.NoError(t, ParseManyConcurrently(context.Background(), docs, nil))
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 3, c)
}

func TestParseManyConcurrentlySharesOptions(t *testing.T) {
	t.Parallel()

	var p1, p2 *int
	docs := []Document{
		{Data: []byte("Some(1)"), Into: &p1},
		{Data: []byte("Some(2)"), Into: &p2},
	}
	require.NoError(t, ParseManyConcurrently(context.Background(), docs, &Options{Extensions: ExtImplicitSome}))
	require.NotNil(t, p1)
	require.NotNil(t, p2)
	assert.Equal(t, 1, *p1)
	assert.Equal(t, 2, *p2)
}

func TestParseManyConcurrentlyReturnsFirstError(t *testing.T) {
	t.Parallel()

	var a, b int
	docs := []Document{
		{Data: []byte("1"), Into: &a},
		{Data: []byte("not a number"), Into: &b},
	}
	err := ParseManyConcurrently(context.Background(), docs, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), ":"), "errors from the scanner carry a position prefix")
}

func TestParseManyConcurrentlyEmpty(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ParseManyConcurrently(context.Background(), nil, nil))
}
