package ron

// ParseValue parses one complete RON document into an untyped [Value],
// honouring any attribute prologue and requiring the remainder of the
// document to be whitespace after the value.
func ParseValue(data []byte, opts *Options) (Value, Extensions, error) {
	opts = opts.withDefaults()
	d, err := newDecoder(data, opts)
	if err != nil {
		return Value{}, 0, err
	}
	v, err := d.parseAnyValue(false)
	if err != nil {
		return Value{}, d.exts, err
	}
	if err := d.end(); err != nil {
		return Value{}, d.exts, err
	}
	return v, d.exts, nil
}

// parseAnyValue parses one value with no outside type hint, resolving the
// grammar's ambiguity from lexical lookahead alone. mapKeyPos marks that we
// are parsing an untyped map key, where a bare identifier is taken as a
// string rather than a unit enum variant.
func (d *decoder) parseAnyValue(mapKeyPos bool) (Value, error) {
	if err := d.s.skipWS(); err != nil {
		return Value{}, err
	}
	if d.s.eof() {
		return Value{}, d.s.errorHere(KindEOF)
	}

	save := *d.s
	if d.s.consumeLiteral("true") && !identTailFollows(d.s) {
		return BoolValue(true), nil
	}
	*d.s = save
	if d.s.consumeLiteral("false") && !identTailFollows(d.s) {
		return BoolValue(false), nil
	}
	*d.s = save
	if d.s.consumeLiteral("None") && !identTailFollows(d.s) {
		return NoneValue(), nil
	}
	*d.s = save
	if d.s.consumeLiteral("Some") && !identTailFollows(d.s) {
		if err := d.s.skipWS(); err != nil {
			return Value{}, err
		}
		if !d.s.consumeLiteral("(") {
			return Value{}, d.s.errorHere(KindExpectedOption)
		}
		inner, err := d.withDepth(func() (Value, error) { return d.parseAnyValue(false) })
		if err != nil {
			return Value{}, err
		}
		if err := d.s.skipWS(); err != nil {
			return Value{}, err
		}
		if !d.s.consumeLiteral(")") {
			return Value{}, d.s.errorHere(KindExpectedOptionEnd)
		}
		return SomeValue(inner), nil
	}
	*d.s = save
	if d.s.consumeLiteral("()") {
		return UnitValue(), nil
	}
	*d.s = save
	if d.s.consumeLiteral("inf") && !identTailFollows(d.s) {
		*d.s = save
		return d.parseAnyNumberLiteral()
	}
	*d.s = save
	if d.s.consumeLiteral("NaN") && !identTailFollows(d.s) {
		*d.s = save
		return d.parseAnyNumberLiteral()
	}
	*d.s = save

	b, _ := d.s.peekByte()
	switch {
	case b == '(':
		return d.parseAnyStructLike()
	case b == '[':
		return d.parseAnySeq()
	case b == '{':
		return d.parseAnyMap()
	case b == '"':
		str, _, err := d.s.scanStringLiteral()
		if err != nil {
			return Value{}, err
		}
		return StringValue(str), nil
	case b == '\'':
		c, _, err := d.s.scanCharLiteral()
		if err != nil {
			return Value{}, err
		}
		return CharValue(c), nil
	case isDigit(b) || b == '+' || b == '-' || b == '.':
		return d.parseAnyNumberLiteral()
	case b == 'b' && startsByteString(d.s):
		by, _, err := d.s.scanByteStringLiteral()
		if err != nil {
			return Value{}, err
		}
		return BytesValue(by), nil
	case b == 'r' && startsRawString(d.s):
		str, _, err := d.s.scanStringLiteral()
		if err != nil {
			return Value{}, err
		}
		return StringValue(str), nil
	default:
		r, _, ok := d.s.peekRune()
		if !ok || !isIdentFirst(r) {
			return Value{}, d.s.errorHere(KindUnexpectedChar)
		}
		tok, err := d.s.scanIdentLike()
		if err != nil {
			return Value{}, err
		}
		if tok.NeedsRaw {
			return Value{}, d.s.errorAt(KindSuggestRawIdentifier, tok.Span.Start, tok.Span.StartOff)
		}
		if mapKeyPos {
			return StringValue(tok.Text), nil
		}
		save2 := *d.s
		if err := d.s.skipWS(); err != nil {
			return Value{}, err
		}
		if nb, ok := d.s.peekByte(); ok && nb == '(' {
			return d.parseAnyStructLike()
		}
		*d.s = save2
		// A bare identifier with no following '(' is an enum unit variant,
		// which the untyped tree has no distinct representation for, so it
		// collapses to Unit — mirroring how the reference driver's untyped
		// path discards the identifier entirely in this position.
		return UnitValue(), nil
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseAnyNumberLiteral scans and interprets one number literal (including
// the bare inf/NaN keyword spellings) under the untyped any_num ladder.
func (d *decoder) parseAnyNumberLiteral() (Value, error) {
	lit, err := d.s.scanNumber()
	if err != nil {
		return Value{}, err
	}
	n, err := lit.toNumber(nil, d.allow128)
	if err != nil {
		return Value{}, err
	}
	return NumberValue(n), nil
}

// startsByteString reports whether the cursor, known to be at 'b', actually
// opens a byte-string literal (b"..." or br"..."/br#"..."#) rather than
// merely being the first letter of an identifier like "bool".
func startsByteString(s *scanner) bool {
	n, ok := s.peekByteAt(1)
	if !ok {
		return false
	}
	if n == '"' {
		return true
	}
	if n != 'r' {
		return false
	}
	n2, ok := s.peekByteAt(2)
	return ok && (n2 == '"' || n2 == '#')
}

// startsRawString reports whether the cursor, known to be at 'r', opens a
// raw string literal (r"..."/r#"..."#) rather than an ordinary identifier
// like "red" or a raw identifier (r#ident, with no immediately following
// quote after the hashes).
func startsRawString(s *scanner) bool {
	n, ok := s.peekByteAt(1)
	if !ok {
		return false
	}
	if n == '"' {
		return true
	}
	if n != '#' {
		return false
	}
	i := 1
	for {
		b, ok := s.peekByteAt(i)
		if !ok || b != '#' {
			break
		}
		i++
	}
	b, ok := s.peekByteAt(i)
	return ok && b == '"'
}

// identTailFollows reports whether the cursor sits immediately after a
// keyword but an identifier-continue character follows with no gap, meaning
// the keyword was actually a prefix of a longer identifier (e.g. "truefoo").
func identTailFollows(s *scanner) bool {
	r, _, ok := s.peekRune()
	return ok && isIdentContinue(r)
}

// parseAnyStructLike parses a parenthesised body with no identifier prefix
// (the prefix, if any, was already consumed by the caller). Bare '(' is
// a tuple-or-struct body; a body whose first element opens with `ident:`
// is parsed as a field list and becomes a Map with string keys, and any
// other body is parsed as a tuple and becomes a Seq. Either way the struct/variant name itself, if one preceded
// this call, is discarded: the untyped Value has no tagged-structured-value
// variant.
func (d *decoder) parseAnyStructLike() (Value, error) {
	if !d.s.consumeLiteral("(") {
		return Value{}, d.s.errorHere(KindExpectedStructLike)
	}
	if err := d.s.skipWS(); err != nil {
		return Value{}, err
	}
	if d.s.consumeLiteral(")") {
		return UnitValue(), nil
	}

	isStruct, err := d.looksLikeFieldList()
	if err != nil {
		return Value{}, err
	}

	return d.withDepth(func() (Value, error) {
		if isStruct {
			return d.parseAnyFieldBody()
		}
		return d.parseAnyTupleBody()
	})
}

// looksLikeFieldList peeks (without consuming) whether the upcoming body
// opens with `ident :`, which is the only lexical signal distinguishing a
// struct body from a tuple body once the name has already been stripped.
func (d *decoder) looksLikeFieldList() (bool, error) {
	save := *d.s
	defer func() { *d.s = save }()

	tok, err := d.s.scanIdentLike()
	if err != nil {
		return false, nil
	}
	if tok.NeedsRaw {
		return false, nil
	}
	if err := d.s.skipWS(); err != nil {
		return false, err
	}
	b, ok := d.s.peekByte()
	return ok && b == ':', nil
}

func (d *decoder) parseAnyFieldBody() (Value, error) {
	m := d.newMap()
	for {
		if err := d.s.skipWS(); err != nil {
			return Value{}, err
		}
		if d.s.consumeLiteral(")") {
			return MapValue(m), nil
		}
		tok, err := d.s.scanIdentLike()
		if err != nil {
			return Value{}, err
		}
		if tok.NeedsRaw {
			return Value{}, d.s.errorAt(KindSuggestRawIdentifier, tok.Span.Start, tok.Span.StartOff)
		}
		if err := d.s.skipWS(); err != nil {
			return Value{}, err
		}
		if !d.s.consumeLiteral(":") {
			return Value{}, d.s.errorHere(KindExpectedMapColon)
		}
		val, err := d.parseAnyValue(false)
		if err != nil {
			return Value{}, err
		}
		m.Insert(StringValue(tok.Text), val)
		if err := d.s.skipWS(); err != nil {
			return Value{}, err
		}
		if d.s.consumeLiteral(")") {
			return MapValue(m), nil
		}
		if !d.s.consumeLiteral(",") {
			return Value{}, d.s.errorHere(KindExpectedComma)
		}
	}
}

func (d *decoder) parseAnyTupleBody() (Value, error) {
	var items []Value
	for {
		if err := d.s.skipWS(); err != nil {
			return Value{}, err
		}
		if d.s.consumeLiteral(")") {
			return SeqValue(items), nil
		}
		v, err := d.parseAnyValue(false)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
		if err := d.s.skipWS(); err != nil {
			return Value{}, err
		}
		if d.s.consumeLiteral(")") {
			return SeqValue(items), nil
		}
		if !d.s.consumeLiteral(",") {
			return Value{}, d.s.errorHere(KindExpectedComma)
		}
	}
}

func (d *decoder) parseAnySeq() (Value, error) {
	if !d.s.consumeLiteral("[") {
		return Value{}, d.s.errorHere(KindExpectedArray)
	}
	return d.withDepth(func() (Value, error) {
		var items []Value
		for {
			if err := d.s.skipWS(); err != nil {
				return Value{}, err
			}
			if d.s.consumeLiteral("]") {
				return SeqValue(items), nil
			}
			v, err := d.parseAnyValue(false)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
			if err := d.s.skipWS(); err != nil {
				return Value{}, err
			}
			if d.s.consumeLiteral("]") {
				return SeqValue(items), nil
			}
			if !d.s.consumeLiteral(",") {
				return Value{}, d.s.errorHere(KindExpectedComma)
			}
		}
	})
}

func (d *decoder) parseAnyMap() (Value, error) {
	if !d.s.consumeLiteral("{") {
		return Value{}, d.s.errorHere(KindExpectedMap)
	}
	return d.withDepth(func() (Value, error) {
		m := d.newMap()
		for {
			if err := d.s.skipWS(); err != nil {
				return Value{}, err
			}
			if d.s.consumeLiteral("}") {
				return MapValue(m), nil
			}
			key, err := d.parseAnyValue(true)
			if err != nil {
				return Value{}, err
			}
			if err := d.s.skipWS(); err != nil {
				return Value{}, err
			}
			if !d.s.consumeLiteral(":") {
				return Value{}, d.s.errorHere(KindExpectedMapColon)
			}
			val, err := d.parseAnyValue(false)
			if err != nil {
				return Value{}, err
			}
			m.Insert(key, val)
			if err := d.s.skipWS(); err != nil {
				return Value{}, err
			}
			if d.s.consumeLiteral("}") {
				return MapValue(m), nil
			}
			if !d.s.consumeLiteral(",") {
				return Value{}, d.s.errorHere(KindExpectedComma)
			}
		}
	})
}
