package ron

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the category of a parse or serialization error, mirroring
// the error enum described by the grammar: one member per distinct failure
// mode the lexer, driver or emitter can raise.
type Kind int

const (
	KindEOF Kind = iota
	KindTrailingCharacters
	KindExpectedComma
	KindUnclosedBlockComment
	KindUnclosedLineComment
	KindUnexpectedChar
	KindExceededRecursionLimit

	KindExpectedArray
	KindExpectedArrayEnd
	KindExpectedMap
	KindExpectedMapColon
	KindExpectedMapEnd
	KindExpectedStructLike
	KindExpectedStructLikeEnd
	KindExpectedNamedStructLike
	KindExpectedOption
	KindExpectedOptionEnd
	KindExpectedUnit
	KindExpectedInteger
	KindExpectedFloat
	KindExpectedBoolean
	KindExpectedString
	KindExpectedStringEnd
	KindExpectedByteString
	KindExpectedIdentifier
	KindExpectedChar
	KindExpectedAttribute
	KindExpectedAttributeEnd
	KindExpectedStructName
	KindExpectedRawValue

	KindIntegerOutOfBounds
	KindInvalidIntegerDigit
	KindFloatUnderscore
	KindUnderscoreAtBeginning

	KindInvalidEscape
	KindUtf8Error
	KindNoSuchExtension
	KindInvalidIdentifier
	KindSuggestRawIdentifier

	KindExpectedDifferentStructName
	KindNoSuchStructField
	KindMissingStructField
	KindDuplicateStructField
	KindNoSuchEnumVariant
	KindInvalidValueForType
	KindExpectedDifferentLength

	KindBase64Error
	KindIO
	KindFmt
	KindMessage
)

// Error is the single error type raised anywhere in this package. Only the
// fields relevant to Kind are populated; the rest are left at their zero
// value. Use [errors.As] to recover an *Error from a wrapped error returned
// by the public API.
type Error struct {
	Kind Kind

	// Expected/Found are used by the "expected one thing, found another"
	// family of errors (struct names, enum variants, struct fields).
	Expected     string
	ExpectedList []string
	Found        string
	// Outer names the enclosing struct/enum, when known at the point the
	// error is enriched on its way out of the driver.
	Outer string

	Digit rune
	Base  int

	Length        int
	ExpectedLen   int
	Reason        string
	Message       string
	WrappedErr    error
}

// newError constructs an *Error of the given kind.
func newError(kind Kind) *Error {
	return &Error{Kind: kind}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindEOF:
		return "unexpected end of RON"
	case KindTrailingCharacters:
		return "trailing characters"
	case KindExpectedComma:
		return "expected comma"
	case KindUnclosedBlockComment:
		return "unclosed block comment"
	case KindUnclosedLineComment:
		return "unclosed line comment"
	case KindUnexpectedChar:
		return fmt.Sprintf("unexpected char %q", e.Found)
	case KindExceededRecursionLimit:
		return "exceeded the recursion limit"

	case KindExpectedArray:
		return "expected opening `[`"
	case KindExpectedArrayEnd:
		return "expected closing `]`"
	case KindExpectedMap:
		return "expected opening `{`"
	case KindExpectedMapColon:
		return "expected colon"
	case KindExpectedMapEnd:
		return "expected closing `}`"
	case KindExpectedStructLike:
		return "expected opening `(`"
	case KindExpectedStructLikeEnd:
		return "expected closing `)`"
	case KindExpectedNamedStructLike:
		if e.Expected == "" {
			return "expected only opening `(`, no name, for un-nameable struct"
		}
		return fmt.Sprintf("expected opening `(` for struct %s", identForDisplay(e.Expected))
	case KindExpectedOption:
		return "expected `Some` or `None`"
	case KindExpectedOptionEnd:
		return "expected closing `)`"
	case KindExpectedUnit:
		return "expected unit"
	case KindExpectedInteger:
		return "expected integer"
	case KindExpectedFloat:
		return "expected float"
	case KindExpectedBoolean:
		return "expected boolean"
	case KindExpectedString:
		return "expected string"
	case KindExpectedStringEnd:
		return "expected end of string"
	case KindExpectedByteString:
		return "expected byte string"
	case KindExpectedIdentifier:
		return "expected identifier"
	case KindExpectedChar:
		return "expected char"
	case KindExpectedAttribute:
		return "expected an `#![enable(...)]` attribute"
	case KindExpectedAttributeEnd:
		return "expected closing `)]` after the enable attribute"
	case KindExpectedStructName:
		return fmt.Sprintf("expected struct name %s", identForDisplay(e.Expected))
	case KindExpectedRawValue:
		return "expected a raw value"

	case KindIntegerOutOfBounds:
		if e.Reason != "" {
			return "integer out of bounds: " + e.Reason
		}
		return "integer out of bounds"
	case KindInvalidIntegerDigit:
		return fmt.Sprintf("invalid digit %q for base %d integers", e.Digit, e.Base)
	case KindFloatUnderscore:
		return "unexpected underscore in float"
	case KindUnderscoreAtBeginning:
		return "unexpected underscore at the beginning of a digit run"

	case KindInvalidEscape:
		return fmt.Sprintf("invalid escape: %s", e.Reason)
	case KindUtf8Error:
		return "input is not valid UTF-8"
	case KindNoSuchExtension:
		return fmt.Sprintf("no RON extension named %s", identForDisplay(e.Found))
	case KindInvalidIdentifier:
		return fmt.Sprintf("invalid identifier %s", identForDisplay(e.Found))
	case KindSuggestRawIdentifier:
		return fmt.Sprintf("identifier %s needs to be written as a raw identifier: %s", identForDisplay(e.Found), identForDisplay("r#"+e.Found))

	case KindExpectedDifferentStructName:
		return fmt.Sprintf("expected struct %s but found %s", identForDisplay(e.Expected), identForDisplay(e.Found))
	case KindNoSuchStructField:
		return fmt.Sprintf("no such struct field %s%s%s", identForDisplay(e.Found), outerSuffix(e.Outer), expectedFieldsSuffix(e.ExpectedList))
	case KindMissingStructField:
		return fmt.Sprintf("missing struct field %s%s", identForDisplay(e.Expected), outerSuffix(e.Outer))
	case KindDuplicateStructField:
		return fmt.Sprintf("duplicate struct field %s%s", identForDisplay(e.Expected), outerSuffix(e.Outer))
	case KindNoSuchEnumVariant:
		return fmt.Sprintf("unknown variant %s%s%s", identForDisplay(e.Found), outerSuffix(e.Outer), expectedFieldsSuffix(e.ExpectedList))
	case KindInvalidValueForType:
		return fmt.Sprintf("invalid value: expected %s, found %s", e.Expected, e.Found)
	case KindExpectedDifferentLength:
		return fmt.Sprintf("expected length %d but found length %d", e.ExpectedLen, e.Length)

	case KindBase64Error:
		return fmt.Sprintf("invalid base64 byte string: %s", e.Reason)
	case KindIO:
		return e.Message
	case KindFmt:
		return "formatting RON failed"
	case KindMessage:
		return e.Message
	default:
		return "unknown RON error"
	}
}

func (e *Error) Unwrap() error {
	return e.WrappedErr
}

func outerSuffix(outer string) string {
	if outer == "" {
		return ""
	}
	return fmt.Sprintf(" in %s", identForDisplay(outer))
}

func expectedFieldsSuffix(expected []string) string {
	if len(expected) == 0 {
		return ""
	}
	quoted := make([]string, len(expected))
	for i, name := range expected {
		quoted[i] = identForDisplay(name)
	}
	return fmt.Sprintf(", expected one of %s", strings.Join(quoted, ", "))
}

// identForDisplay renders an identifier in backticks, upgrading it to its
// r#-prefixed raw form when it is not a valid plain identifier.
func identForDisplay(name string) string {
	if name == "" {
		return "``"
	}
	if strings.HasPrefix(name, "r#") {
		return "`" + name + "`"
	}
	if isValidPlainIdentifier(name) {
		return "`" + name + "`"
	}
	return "`r#" + name + "`"
}

// SpannedError wraps an *Error with the source [Span] at which it was
// raised. Parse errors raised at a known source position are returned in
// this form; errors without a position are returned as a bare *Error.
type SpannedError struct {
	Err  *Error
	Span Span
}

func (e *SpannedError) Error() string {
	if e.Span.Start == (Position{}) && e.Span.End == (Position{}) {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Span, e.Err.Error())
}

func (e *SpannedError) Unwrap() error {
	return e.Err
}

// withSpan wraps err (an *Error) with the given span, unless err is already
// a *SpannedError, in which case it passes through unchanged so the
// innermost (most precise) span wins.
func withSpan(err error, span Span) error {
	if err == nil {
		return nil
	}
	var se *SpannedError
	if errors.As(err, &se) {
		return se
	}
	var e *Error
	if errors.As(err, &e) {
		return &SpannedError{Err: e, Span: span}
	}
	return &SpannedError{Err: &Error{Kind: KindMessage, Message: err.Error()}, Span: span}
}

// withOuter enriches a struct/enum related error with the name of the
// enclosing type, once the driver has unwound far enough to know it. It
// leaves other error kinds and already-enriched errors untouched.
func withOuter(err error, outer string) error {
	var se *SpannedError
	if errors.As(err, &se) && se.Err.Outer == "" {
		switch se.Err.Kind {
		case KindNoSuchStructField, KindMissingStructField, KindDuplicateStructField, KindNoSuchEnumVariant:
			se.Err.Outer = outer
		}
	}
	return err
}
