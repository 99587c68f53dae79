package ron

// parsePrologue consumes zero or more `#![enable(ext1, ext2, …)]` attribute
// blocks from the front of the document, OR-ing their flags together. It
// must run before the first value token; attributes may be interleaved with
// whitespace and comments.
func (s *scanner) parsePrologue() (Extensions, error) {
	var exts Extensions
	for {
		if err := s.skipWS(); err != nil {
			return exts, err
		}
		if b, ok := s.peekByte(); !ok || b != '#' {
			return exts, nil
		}
		startPos, startOff := s.startSpan()
		if !s.consumeLiteral("#![enable(") {
			return exts, s.errorAt(KindExpectedAttribute, startPos, startOff)
		}
		for {
			if err := s.skipWS(); err != nil {
				return exts, err
			}
			if s.consumeLiteral(")]") {
				break
			}
			tok, err := s.scanIdentLike()
			if err != nil {
				return exts, err
			}
			if tok.NeedsRaw || tok.WasRaw {
				return exts, s.errorAt(KindNoSuchExtension, tok.Span.Start, tok.Span.StartOff)
			}
			flag, ok := extensionFromIdent(tok.Text)
			if !ok {
				e := newError(KindNoSuchExtension)
				e.Found = tok.Text
				return exts, withSpan(e, tok.Span)
			}
			exts |= flag
			if err := s.skipWS(); err != nil {
				return exts, err
			}
			if s.consumeLiteral(")]") {
				break
			}
			if !s.consumeLiteral(",") {
				return exts, s.errorAt(KindExpectedAttributeEnd, startPos, startOff)
			}
		}
	}
}
