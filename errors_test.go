package ron

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorDisplayFormat(t *testing.T) {
	t.Parallel()

	e := newError(KindExpectedComma)
	se := &SpannedError{Err: e, Span: Span{Start: Position{Line: 2, Col: 3}, End: Position{Line: 2, Col: 4}}}
	assert.Equal(t, "2:3-2:4: expected comma", se.Error())
}

func TestErrorDisplayZeroWidthSpanIsJustPosition(t *testing.T) {
	t.Parallel()
	e := newError(KindEOF)
	p := Position{Line: 1, Col: 1}
	se := &SpannedError{Err: e, Span: Span{Start: p, End: p}}
	assert.Equal(t, "1:1: unexpected end of RON", se.Error())
}

func TestIdentForDisplayUpgradesToRawForm(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "`hello`", identForDisplay("hello"))
	assert.Equal(t, "`r#foo-bar`", identForDisplay("foo-bar"))
}

func TestErrorMessagesMentionFields(t *testing.T) {
	t.Parallel()

	e := newError(KindNoSuchStructField)
	e.Found = "bogus"
	e.Outer = "Widget"
	e.ExpectedList = []string{"a", "b"}
	msg := e.Error()
	assert.True(t, strings.Contains(msg, "bogus"))
	assert.True(t, strings.Contains(msg, "Widget"))
	assert.True(t, strings.Contains(msg, "a"))
	assert.True(t, strings.Contains(msg, "b"))
}

func TestSpanSubstringUsesRuneIndexing(t *testing.T) {
	t.Parallel()
	src := "héllo wörld"
	s := Span{StartOff: 6, EndOff: 11}
	assert.Equal(t, "wörld", s.Substring(src))

	clamped := Span{StartOff: -3, EndOff: 99}
	assert.Equal(t, src, clamped.Substring(src))
}

func TestWithSpanPreservesInnermostSpan(t *testing.T) {
	t.Parallel()
	inner := &SpannedError{Err: newError(KindEOF), Span: Span{Start: Position{Line: 5, Col: 5}}}
	outer := withSpan(inner, Span{Start: Position{Line: 1, Col: 1}})
	se, ok := outer.(*SpannedError)
	assert.True(t, ok)
	assert.Equal(t, Position{Line: 5, Col: 5}, se.Span.Start)
}

func TestWithOuterEnrichesOnce(t *testing.T) {
	t.Parallel()
	e := newError(KindMissingStructField)
	e.Expected = "field"
	se := &SpannedError{Err: e}
	withOuter(se, "Outer1")
	withOuter(se, "Outer2")
	assert.Equal(t, "Outer1", se.Err.Outer)
}
