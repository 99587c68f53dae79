package ron

import "reflect"

// decodeStruct parses a struct body, `[name] ( field: value, ... )`, into
// rv: unknown fields, missing fields and duplicate fields are each their
// own error kind, and the struct name is required under
// ExtExplicitStructNames and otherwise optional-but-checked.
func (d *decoder) decodeStruct(rv reflect.Value, name string) error {
	fields := ronFields(rv.Type())
	if isNewtypeStruct(fields) {
		return d.decodeNewtypeStruct(rv, name, fields[0])
	}
	if err := d.consumeOptionalName(name); err != nil {
		return err
	}
	if err := d.s.skipWS(); err != nil {
		return err
	}
	if !d.s.consumeLiteral("(") {
		if len(fields) == 0 {
			return d.s.errorHere(KindExpectedUnit)
		}
		if name != "" {
			e := newError(KindExpectedNamedStructLike)
			e.Expected = name
			return d.s.wrapHere(e)
		}
		return d.s.errorHere(KindExpectedStructLike)
	}
	return d.withDepthErr(func() error {
		seen := make([]bool, len(fields))
		for {
			if err := d.s.skipWS(); err != nil {
				return err
			}
			if d.s.consumeLiteral(")") {
				return checkMissingFields(fields, seen, name)
			}
			tok, err := d.s.scanIdentLike()
			if err != nil {
				return err
			}
			if tok.NeedsRaw {
				e := newError(KindSuggestRawIdentifier)
				e.Found = tok.Text
				return withSpan(e, tok.Span)
			}
			idx := indexOfField(fields, tok.Text)
			if idx < 0 {
				e := newError(KindNoSuchStructField)
				e.Found = tok.Text
				e.Outer = name
				e.ExpectedList = fieldNames(fields)
				return withSpan(e, tok.Span)
			}
			if seen[idx] {
				e := newError(KindDuplicateStructField)
				e.Expected = tok.Text
				e.Outer = name
				return withSpan(e, tok.Span)
			}
			seen[idx] = true
			if err := d.s.skipWS(); err != nil {
				return err
			}
			if !d.s.consumeLiteral(":") {
				return d.s.errorHere(KindExpectedMapColon)
			}
			if err := d.decodeValue(rv.Field(fields[idx].Index)); err != nil {
				return err
			}
			if err := d.s.skipWS(); err != nil {
				return err
			}
			if d.s.consumeLiteral(")") {
				return checkMissingFields(fields, seen, name)
			}
			if !d.s.consumeLiteral(",") {
				return d.s.errorHere(KindExpectedComma)
			}
		}
	})
}

// decodeNewtypeStruct parses a newtype struct: `[Name](inner)`, or just
// `inner` once ExtUnwrapNewtypes is active and no name/parens are present.
// ExtExplicitStructNames escalates the name to mandatory the same way it
// does for a named-field struct, overriding the unwrap shortcut.
func (d *decoder) decodeNewtypeStruct(rv reflect.Value, name string, field ronField) error {
	wrapped := func() error {
		if err := d.withDepthErr(func() error { return d.decodeValue(rv.Field(field.Index)) }); err != nil {
			return err
		}
		if err := d.s.skipWS(); err != nil {
			return err
		}
		if !d.s.consumeLiteral(")") {
			return d.s.errorHere(KindExpectedStructLikeEnd)
		}
		return nil
	}

	if err := d.s.skipWS(); err != nil {
		return err
	}

	if d.exts.Has(ExtExplicitStructNames) {
		if err := d.consumeOptionalName(name); err != nil {
			return err
		}
		if err := d.s.skipWS(); err != nil {
			return err
		}
		if !d.s.consumeLiteral("(") {
			return d.s.errorHere(KindExpectedStructLike)
		}
		return wrapped()
	}

	if b, ok := d.s.peekByte(); ok && b == '(' {
		d.s.advanceByte()
		return wrapped()
	}

	save := *d.s
	tok, err := d.s.scanIdentLike()
	if err == nil {
		if tok.NeedsRaw {
			e := newError(KindSuggestRawIdentifier)
			e.Found = tok.Text
			return withSpan(e, tok.Span)
		}
		if tok.Text != name {
			e := newError(KindExpectedDifferentStructName)
			e.Expected = name
			e.Found = tok.Text
			return withSpan(e, tok.Span)
		}
		if err := d.s.skipWS(); err != nil {
			return err
		}
		if !d.s.consumeLiteral("(") {
			return d.s.errorHere(KindExpectedStructLike)
		}
		return wrapped()
	}
	*d.s = save

	if !d.exts.Has(ExtUnwrapNewtypes) {
		return d.s.errorHere(KindExpectedStructLike)
	}
	return d.withDepthErr(func() error { return d.decodeValue(rv.Field(field.Index)) })
}

func indexOfField(fields []ronField, name string) int {
	for i, f := range fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func checkMissingFields(fields []ronField, seen []bool, outer string) error {
	for i, ok := range seen {
		if !ok {
			e := newError(KindMissingStructField)
			e.Expected = fields[i].Name
			e.Outer = outer
			return e
		}
	}
	return nil
}

// consumeOptionalName consumes a leading struct-name identifier if one is
// lexically present, checking it against the declared name. With no
// extension active the name may be omitted entirely (the body's `(` is
// simply next); with ExtExplicitStructNames it is mandatory.
func (d *decoder) consumeOptionalName(name string) error {
	if err := d.s.skipWS(); err != nil {
		return err
	}
	if b, ok := d.s.peekByte(); ok && b == '(' {
		if d.exts.Has(ExtExplicitStructNames) {
			e := newError(KindExpectedStructName)
			e.Expected = name
			return d.s.wrapHere(e)
		}
		return nil
	}
	save := *d.s
	tok, err := d.s.scanIdentLike()
	if err != nil {
		*d.s = save
		return nil
	}
	if tok.NeedsRaw {
		e := newError(KindSuggestRawIdentifier)
		e.Found = tok.Text
		return withSpan(e, tok.Span)
	}
	if tok.Text != name {
		e := newError(KindExpectedDifferentStructName)
		e.Expected = name
		e.Found = tok.Text
		return withSpan(e, tok.Span)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// decodeEnum parses a variant identifier and dispatches on the shape
// eu.RONEnumVariant reports for it.
func (d *decoder) decodeEnum(eu EnumUnmarshaler) error {
	if err := d.s.skipWS(); err != nil {
		return err
	}
	tok, err := d.s.scanIdentLike()
	if err != nil {
		return err
	}
	if tok.NeedsRaw {
		e := newError(KindSuggestRawIdentifier)
		e.Found = tok.Text
		return withSpan(e, tok.Span)
	}
	kind, structFields, ok := eu.RONEnumVariant(tok.Text)
	if !ok {
		e := newError(KindNoSuchEnumVariant)
		e.Found = tok.Text
		return withSpan(e, tok.Span)
	}

	switch kind {
	case VariantUnit:
		return eu.UnmarshalRONEnum(EnumUnit(tok.Text))
	case VariantNewtype:
		return d.withDepthErr(func() error {
			v, err := d.decodeNewtypeBody()
			if err != nil {
				return err
			}
			return eu.UnmarshalRONEnum(EnumNewtype(tok.Text, v))
		})
	case VariantTuple:
		return d.withDepthErr(func() error {
			vals, err := d.decodeTupleBody()
			if err != nil {
				return err
			}
			return eu.UnmarshalRONEnum(EnumTuple(tok.Text, vals...))
		})
	case VariantStruct:
		return d.withDepthErr(func() error {
			m, err := d.decodeEnumStructBody(tok.Text, structFields)
			if err != nil {
				return err
			}
			return eu.UnmarshalRONEnum(EnumStruct(tok.Text, m))
		})
	default:
		e := newError(KindMessage)
		e.Message = "unknown variant kind"
		return e
	}
}

// decodeNewtypeBody parses a newtype variant's payload. Under
// ExtUnwrapVariantNewtypes the wrapping parentheses are optional (both
// forms are accepted, so a document that worked before the extension was
// enabled still works after).
func (d *decoder) decodeNewtypeBody() (Value, error) {
	if err := d.s.skipWS(); err != nil {
		return Value{}, err
	}
	if b, ok := d.s.peekByte(); ok && b == '(' {
		d.s.advanceByte()
		v, err := d.parseAnyValue(false)
		if err != nil {
			return Value{}, err
		}
		if err := d.s.skipWS(); err != nil {
			return Value{}, err
		}
		if !d.s.consumeLiteral(")") {
			return Value{}, d.s.errorHere(KindExpectedStructLikeEnd)
		}
		return v, nil
	}
	if !d.exts.Has(ExtUnwrapVariantNewtypes) {
		return Value{}, d.s.errorHere(KindExpectedStructLike)
	}
	return d.parseAnyValue(false)
}

func (d *decoder) decodeTupleBody() ([]Value, error) {
	if err := d.s.skipWS(); err != nil {
		return nil, err
	}
	if !d.s.consumeLiteral("(") {
		return nil, d.s.errorHere(KindExpectedStructLike)
	}
	var vals []Value
	for {
		if err := d.s.skipWS(); err != nil {
			return nil, err
		}
		if d.s.consumeLiteral(")") {
			return vals, nil
		}
		v, err := d.parseAnyValue(false)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
		if err := d.s.skipWS(); err != nil {
			return nil, err
		}
		if d.s.consumeLiteral(")") {
			return vals, nil
		}
		if !d.s.consumeLiteral(",") {
			return nil, d.s.errorHere(KindExpectedComma)
		}
	}
}

func (d *decoder) decodeEnumStructBody(variant string, declared []string) (*Map, error) {
	if err := d.s.skipWS(); err != nil {
		return nil, err
	}
	if !d.s.consumeLiteral("(") {
		return nil, d.s.errorHere(KindExpectedStructLike)
	}
	m := d.newMap()
	var seenNames []string
	for {
		if err := d.s.skipWS(); err != nil {
			return nil, err
		}
		if d.s.consumeLiteral(")") {
			return m, nil
		}
		tok, err := d.s.scanIdentLike()
		if err != nil {
			return nil, err
		}
		if tok.NeedsRaw {
			e := newError(KindSuggestRawIdentifier)
			e.Found = tok.Text
			return nil, withSpan(e, tok.Span)
		}
		if declared != nil && !contains(declared, tok.Text) {
			e := newError(KindNoSuchStructField)
			e.Found = tok.Text
			e.Outer = variant
			e.ExpectedList = declared
			return nil, withSpan(e, tok.Span)
		}
		if contains(seenNames, tok.Text) {
			e := newError(KindDuplicateStructField)
			e.Expected = tok.Text
			e.Outer = variant
			return nil, withSpan(e, tok.Span)
		}
		seenNames = append(seenNames, tok.Text)
		if err := d.s.skipWS(); err != nil {
			return nil, err
		}
		if !d.s.consumeLiteral(":") {
			return nil, d.s.errorHere(KindExpectedMapColon)
		}
		v, err := d.parseAnyValue(false)
		if err != nil {
			return nil, err
		}
		m.Insert(StringValue(tok.Text), v)
		if err := d.s.skipWS(); err != nil {
			return nil, err
		}
		if d.s.consumeLiteral(")") {
			return m, nil
		}
		if !d.s.consumeLiteral(",") {
			return nil, d.s.errorHere(KindExpectedComma)
		}
	}
}
