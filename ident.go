package ron

import "unicode"

// isIdentFirst reports whether r may start an ordinary identifier: the
// standard Unicode identifier-start class, plus underscore.
func isIdentFirst(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// isIdentContinue reports whether r may continue an ordinary identifier.
func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isRawIdentExtra reports whether r is one of the extra characters a raw
// identifier's body may contain beyond the ordinary identifier set.
func isRawIdentExtra(r rune) bool {
	return r == '+' || r == '-' || r == '.'
}

func isRawIdentChar(r rune) bool {
	return isIdentContinue(r) || isRawIdentExtra(r)
}

// isValidPlainIdentifier reports whether name is a valid ordinary
// identifier: a non-empty ident_first followed by zero or more
// ident_continue runes, with no raw-only characters.
func isValidPlainIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 {
			if !isIdentFirst(r) {
				return false
			}
			continue
		}
		if !isIdentContinue(r) {
			return false
		}
	}
	return true
}

// isValidRawIdentifierBody reports whether name could legally follow an r#
// prefix: non-empty, and built only from the raw identifier character set.
func isValidRawIdentifierBody(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !isRawIdentChar(r) {
			return false
		}
	}
	return true
}

// identToken is the result of scanning one identifier-shaped token: either
// an ordinary identifier, an explicit raw identifier (r#...), or a bare
// token that used raw-only characters without the r# prefix (which is
// always a grammar error, caught by the caller via NeedsRaw).
type identToken struct {
	Text     string
	WasRaw   bool // written with an explicit r# prefix
	NeedsRaw bool // lexically required r# but didn't have it
	Span     Span
}

// scanIdentLike scans one identifier-shaped token at the cursor. It does
// not itself decide whether the result is acceptable in context (callers
// compare Text against expected struct/variant/field names and raise
// ExpectedIdentifier, SuggestRawIdentifier, etc. as appropriate); it only
// reports what was lexically present.
func (s *scanner) scanIdentLike() (identToken, error) {
	startPos, startOff := s.startSpan()

	if b, ok := s.peekByte(); ok && b == 'r' {
		if n, ok2 := s.peekByteAt(1); ok2 && n == '#' {
			s.advanceBytes(2)
			bodyStart := s.pos
			for {
				r, _, ok := s.peekRune()
				if !ok || !isRawIdentChar(r) {
					break
				}
				s.advanceRune()
			}
			if s.pos == bodyStart {
				return identToken{}, s.errorAt(KindExpectedIdentifier, startPos, startOff)
			}
			text := string(s.data[bodyStart:s.pos])
			return identToken{Text: text, WasRaw: true, Span: s.span(startPos, startOff)}, nil
		}
	}

	startBytePos := s.pos
	r, _, ok := s.peekRune()
	if !ok || !isIdentFirst(r) {
		return identToken{}, s.errorAt(KindExpectedIdentifier, startPos, startOff)
	}
	s.advanceRune()
	for {
		r, _, ok := s.peekRune()
		if !ok || !isIdentContinue(r) {
			break
		}
		s.advanceRune()
	}
	// Lexical lookahead: if raw-only characters immediately continue the
	// run with no intervening whitespace, the author almost certainly meant
	// a raw identifier but omitted the r# prefix.
	needsRaw := false
	for {
		r, _, ok := s.peekRune()
		if !ok || !isRawIdentChar(r) {
			break
		}
		needsRaw = true
		s.advanceRune()
	}
	fullText := string(s.data[startBytePos:s.pos])
	return identToken{Text: fullText, NeedsRaw: needsRaw, Span: s.span(startPos, startOff)}, nil
}
