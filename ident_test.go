package ron

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPlainIdentifier(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		want bool
	}{
		{"hello", true},
		{"_foo", true},
		{"foo_bar123", true},
		{"", false},
		{"1abc", false},
		{"foo-bar", false},
		{"foo.bar", false},
	} {
		assert.Equal(t, tc.want, isValidPlainIdentifier(tc.name), tc.name)
	}
}

func TestIsValidRawIdentifierBody(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		want bool
	}{
		{"foo-bar", true},
		{"foo.bar.baz", true},
		{"foo+bar", true},
		{"plain", true},
		{"", false},
		{"foo bar", false},
		{"foo#bar", false},
	} {
		assert.Equal(t, tc.want, isValidRawIdentifierBody(tc.name), tc.name)
	}
}
