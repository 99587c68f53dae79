package ron

import "unicode/utf8"

// scanner is the byte-cursor primitive the parser is built on. It exposes
// one method per grammar terminal building block (peek/advance a rune, skip
// whitespace and comments) and tracks the current (line, col) position so
// every error raised above it can carry a precise [Span]. Unlike a
// conventional tokenizer, there is no separate token stream: every
// production in the parser calls these primitives directly.
type scanner struct {
	data []byte
	pos  int // byte offset
	roff int // rune offset, used for Span.StartOff/EndOff
	line int
	col  int
}

func newScanner(data []byte) *scanner {
	return &scanner{data: data, line: 1, col: 1}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.data)
}

func (s *scanner) position() Position {
	return Position{Line: s.line, Col: s.col}
}

func (s *scanner) startSpan() (Position, int) {
	return s.position(), s.roff
}

func (s *scanner) span(startPos Position, startOff int) Span {
	return Span{Start: startPos, End: s.position(), StartOff: startOff, EndOff: s.roff}
}

func (s *scanner) errorAt(kind Kind, startPos Position, startOff int) error {
	return withSpan(newError(kind), s.span(startPos, startOff))
}

func (s *scanner) errorHere(kind Kind) error {
	p := s.position()
	return withSpan(newError(kind), Span{Start: p, End: p, StartOff: s.roff, EndOff: s.roff})
}

// wrapHere attaches the current zero-width position as the span of an
// already-constructed *Error, for the error kinds that carry extra fields
// beyond Kind (ExpectedDifferentLength, NoSuchStructField, and similar).
func (s *scanner) wrapHere(e *Error) error {
	p := s.position()
	return withSpan(e, Span{Start: p, End: p, StartOff: s.roff, EndOff: s.roff})
}

// peekByte returns the next byte without consuming it.
func (s *scanner) peekByte() (byte, bool) {
	if s.eof() {
		return 0, false
	}
	return s.data[s.pos], true
}

// peekByteAt returns the byte n positions ahead of the cursor, without
// consuming anything.
func (s *scanner) peekByteAt(n int) (byte, bool) {
	if s.pos+n >= len(s.data) {
		return 0, false
	}
	return s.data[s.pos+n], true
}

// peekRune decodes, without consuming, the rune at the cursor.
func (s *scanner) peekRune() (rune, int, bool) {
	if s.eof() {
		return 0, 0, false
	}
	r, n := utf8.DecodeRune(s.data[s.pos:])
	return r, n, true
}

// advanceByte consumes exactly one byte, which must not begin a multi-byte
// rune (callers that might see non-ASCII must use advanceRune instead).
func (s *scanner) advanceByte() {
	if s.eof() {
		return
	}
	if s.data[s.pos] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos++
	s.roff++
}

// advanceRune consumes exactly one rune, however many bytes it occupies.
func (s *scanner) advanceRune() (rune, bool) {
	r, n, ok := s.peekRune()
	if !ok {
		return 0, false
	}
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos += n
	s.roff++
	return r, true
}

// advanceBytes consumes n raw bytes, none of which may be '\n' (used after a
// caller has already validated an ASCII run, e.g. a keyword match).
func (s *scanner) advanceBytes(n int) {
	for i := 0; i < n; i++ {
		s.advanceByte()
	}
}

// consumeLiteral consumes the literal ASCII string lit if the input matches
// it at the cursor, reporting whether it did.
func (s *scanner) consumeLiteral(lit string) bool {
	if s.pos+len(lit) > len(s.data) {
		return false
	}
	if string(s.data[s.pos:s.pos+len(lit)]) != lit {
		return false
	}
	s.advanceBytes(len(lit))
	return true
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// skipWS advances past any run of whitespace, line comments and (possibly
// nested) block comments. It fails only on an unclosed comment: an
// unclosed block comment is a fatal error carrying the span of its opening
// `/*`.
func (s *scanner) skipWS() error {
	for {
		advanced := false
		for {
			b, ok := s.peekByte()
			if !ok || !isSpaceByte(b) {
				break
			}
			s.advanceByte()
			advanced = true
		}
		if b, ok := s.peekByte(); ok && b == '/' {
			if next, ok2 := s.peekByteAt(1); ok2 && next == '/' {
				startPos, startOff := s.startSpan()
				s.advanceBytes(2)
				for {
					b, ok := s.peekByte()
					if !ok {
						return s.errorAt(KindUnclosedLineComment, startPos, startOff)
					}
					if b == '\n' {
						break
					}
					s.advanceRune()
				}
				advanced = true
				continue
			}
			if next, ok2 := s.peekByteAt(1); ok2 && next == '*' {
				startPos, startOff := s.startSpan()
				s.advanceBytes(2)
				depth := 1
				for depth > 0 {
					if s.eof() {
						return s.errorAt(KindUnclosedBlockComment, startPos, startOff)
					}
					b, _ := s.peekByte()
					if b == '/' {
						if n, ok := s.peekByteAt(1); ok && n == '*' {
							s.advanceBytes(2)
							depth++
							continue
						}
					}
					if b == '*' {
						if n, ok := s.peekByteAt(1); ok && n == '/' {
							s.advanceBytes(2)
							depth--
							continue
						}
					}
					s.advanceRune()
				}
				advanced = true
				continue
			}
		}
		if !advanced {
			return nil
		}
	}
}
