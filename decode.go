package ron

import (
	"encoding/base64"
	"math/big"
	"reflect"
)

// Unmarshal parses data as RON into v, which must be a non-nil pointer.
// The Go type of v (and, recursively, of every field reached through it)
// supplies the type hint that disambiguates the grammar.
func Unmarshal(data []byte, v any, opts *Options) error {
	opts = opts.withDefaults()
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		e := newError(KindMessage)
		e.Message = "Unmarshal target must be a non-nil pointer"
		return e
	}
	d, err := newDecoder(data, opts)
	if err != nil {
		return err
	}
	if err := d.decodeValue(rv.Elem()); err != nil {
		return err
	}
	return d.end()
}

var (
	bigIntType = reflect.TypeOf(big.Int{})
	valueType  = reflect.TypeOf(Value{})
)

// decodeValue dispatches on rv's Go type, consuming exactly one RON value
// at the cursor. Pointer fields are treated as options; everything else
// maps structurally onto the corresponding RON production.
func (d *decoder) decodeValue(rv reflect.Value) error {
	if err := d.s.skipWS(); err != nil {
		return err
	}
	if rv.CanAddr() {
		if u, ok := rv.Addr().Interface().(Unmarshaler); ok {
			raw, err := d.scanRawValue()
			if err != nil {
				return err
			}
			return u.UnmarshalRON(raw)
		}
		if eu, ok := rv.Addr().Interface().(EnumUnmarshaler); ok {
			return withOuter(d.decodeEnum(eu), rv.Type().Name())
		}
	}

	if rv.Type() == bigIntType {
		return d.decodeBigInt(rv)
	}
	if rv.Type() == valueType {
		val, err := d.parseAnyValue(false)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(val))
		return nil
	}

	switch rv.Kind() {
	case reflect.Pointer:
		return d.decodeOption(rv)
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			e := newError(KindMessage)
			e.Message = "cannot decode into a non-empty interface"
			return e
		}
		// The untyped Value tree is the faithful target here: a Go-native
		// map[string]any would lose non-string map keys, which RON permits.
		val, err := d.parseAnyValue(false)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(val))
		return nil
	case reflect.Bool:
		return d.decodeBool(rv)
	case reflect.String:
		s, _, err := d.s.scanStringLiteral()
		if err != nil {
			return err
		}
		rv.SetString(s)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return d.decodeInt(rv)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return d.decodeUint(rv)
	case reflect.Float32, reflect.Float64:
		return d.decodeFloat(rv)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return d.decodeBytes(rv)
		}
		return d.decodeSeq(rv)
	case reflect.Array:
		return d.decodeArray(rv)
	case reflect.Map:
		return d.decodeMap(rv)
	case reflect.Struct:
		return d.decodeStruct(rv, rv.Type().Name())
	default:
		e := newError(KindMessage)
		e.Message = "unsupported Go type " + rv.Type().String()
		return e
	}
}

func (d *decoder) decodeBool(rv reflect.Value) error {
	save := *d.s
	if d.s.consumeLiteral("true") && !identTailFollows(d.s) {
		rv.SetBool(true)
		return nil
	}
	*d.s = save
	if d.s.consumeLiteral("false") && !identTailFollows(d.s) {
		rv.SetBool(false)
		return nil
	}
	*d.s = save
	return d.s.errorHere(KindExpectedBoolean)
}

func numKindFor(k reflect.Kind) NumKind {
	switch k {
	case reflect.Int8:
		return KindI8
	case reflect.Int16:
		return KindI16
	case reflect.Int32:
		return KindI32
	case reflect.Int, reflect.Int64:
		return KindI64
	case reflect.Uint8:
		return KindU8
	case reflect.Uint16:
		return KindU16
	case reflect.Uint32:
		return KindU32
	case reflect.Uint, reflect.Uint64:
		return KindU64
	case reflect.Float32:
		return KindF32
	default:
		return KindF64
	}
}

func (d *decoder) decodeInt(rv reflect.Value) error {
	want := numKindFor(rv.Kind())
	lit, err := d.s.scanNumber()
	if err != nil {
		return err
	}
	n, err := lit.toNumber(&want, d.allow128)
	if err != nil {
		return err
	}
	rv.SetInt(n.Int64())
	return nil
}

func (d *decoder) decodeUint(rv reflect.Value) error {
	want := numKindFor(rv.Kind())
	lit, err := d.s.scanNumber()
	if err != nil {
		return err
	}
	n, err := lit.toNumber(&want, d.allow128)
	if err != nil {
		return err
	}
	rv.SetUint(n.Uint64())
	return nil
}

func (d *decoder) decodeFloat(rv reflect.Value) error {
	want := numKindFor(rv.Kind())
	lit, err := d.s.scanNumber()
	if err != nil {
		return err
	}
	n, err := lit.toNumber(&want, d.allow128)
	if err != nil {
		return err
	}
	rv.SetFloat(n.Float64())
	return nil
}

func (d *decoder) decodeBigInt(rv reflect.Value) error {
	want := KindI128
	lit, err := d.s.scanNumber()
	if err != nil {
		return err
	}
	n, err := lit.toNumber(&want, d.allow128)
	if err != nil {
		return err
	}
	v := n.BigInt()
	if v == nil {
		v = big.NewInt(n.Int64())
	}
	rv.Set(reflect.ValueOf(*v))
	return nil
}

// decodeBytes accepts a b"..." literal, or (legacy compatibility)
// falls back to base64-decoding a regular string when no byte-string prefix
// is present.
func (d *decoder) decodeBytes(rv reflect.Value) error {
	if b, ok := d.s.peekByte(); ok && b == 'b' {
		by, _, err := d.s.scanByteStringLiteral()
		if err != nil {
			return err
		}
		rv.SetBytes(by)
		return nil
	}
	s, span, err := d.s.scanStringLiteral()
	if err != nil {
		return err
	}
	by, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		e := newError(KindBase64Error)
		e.Reason = err.Error()
		return withSpan(e, span)
	}
	rv.SetBytes(by)
	return nil
}

func (d *decoder) decodeOption(rv reflect.Value) error {
	elemType := rv.Type().Elem()
	save := *d.s
	if err := d.s.skipWS(); err != nil {
		return err
	}
	if d.s.consumeLiteral("None") && !identTailFollows(d.s) {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	*d.s = save
	if err := d.s.skipWS(); err != nil {
		return err
	}
	if d.s.consumeLiteral("Some") && !identTailFollows(d.s) {
		if err := d.s.skipWS(); err != nil {
			return err
		}
		if !d.s.consumeLiteral("(") {
			return d.s.errorHere(KindExpectedOption)
		}
		inner := reflect.New(elemType)
		if err := d.withDepthErr(func() error { return d.decodeValue(inner.Elem()) }); err != nil {
			return err
		}
		if err := d.s.skipWS(); err != nil {
			return err
		}
		if !d.s.consumeLiteral(")") {
			return d.s.errorHere(KindExpectedOptionEnd)
		}
		rv.Set(inner)
		return nil
	}
	*d.s = save
	if !d.exts.Has(ExtImplicitSome) {
		return d.s.errorHere(KindExpectedOption)
	}
	if elemType.Kind() == reflect.Pointer {
		// Refuse to collapse Some(Some(v)) into Some(v): a nested option
		// requires the explicit Some/None spelling.
		return d.s.errorHere(KindExpectedOption)
	}
	inner := reflect.New(elemType)
	if err := d.decodeValue(inner.Elem()); err != nil {
		return err
	}
	rv.Set(inner)
	return nil
}

func (d *decoder) decodeSeq(rv reflect.Value) error {
	if err := d.s.skipWS(); err != nil {
		return err
	}
	if !d.s.consumeLiteral("[") {
		return d.s.errorHere(KindExpectedArray)
	}
	return d.withDepthErr(func() error {
		out := reflect.MakeSlice(rv.Type(), 0, 0)
		for {
			if err := d.s.skipWS(); err != nil {
				return err
			}
			if d.s.eof() {
				return d.s.errorHere(KindExpectedArrayEnd)
			}
			if d.s.consumeLiteral("]") {
				rv.Set(out)
				return nil
			}
			elem := reflect.New(rv.Type().Elem()).Elem()
			if err := d.decodeValue(elem); err != nil {
				return err
			}
			out = reflect.Append(out, elem)
			if err := d.s.skipWS(); err != nil {
				return err
			}
			if d.s.eof() {
				return d.s.errorHere(KindExpectedArrayEnd)
			}
			if d.s.consumeLiteral("]") {
				rv.Set(out)
				return nil
			}
			if !d.s.consumeLiteral(",") {
				return d.s.errorHere(KindExpectedComma)
			}
		}
	})
}

// decodeArray maps a Go array onto a RON tuple: `(v1, v2, ...)` with a
// length fixed by the array's own length, enforced exactly.
func (d *decoder) decodeArray(rv reflect.Value) error {
	if err := d.s.skipWS(); err != nil {
		return err
	}
	if !d.s.consumeLiteral("(") {
		return d.s.errorHere(KindExpectedStructLike)
	}
	return d.withDepthErr(func() error {
		n := rv.Len()
		i := 0
		for {
			if err := d.s.skipWS(); err != nil {
				return err
			}
			if d.s.consumeLiteral(")") {
				if i != n {
					e := newError(KindExpectedDifferentLength)
					e.ExpectedLen = n
					e.Length = i
					return d.s.wrapHere(e)
				}
				return nil
			}
			if i >= n {
				e := newError(KindExpectedDifferentLength)
				e.ExpectedLen = n
				return d.s.wrapHere(e)
			}
			if err := d.decodeValue(rv.Index(i)); err != nil {
				return err
			}
			i++
			if err := d.s.skipWS(); err != nil {
				return err
			}
			if d.s.consumeLiteral(")") {
				if i != n {
					e := newError(KindExpectedDifferentLength)
					e.ExpectedLen = n
					e.Length = i
					return d.s.wrapHere(e)
				}
				return nil
			}
			if !d.s.consumeLiteral(",") {
				return d.s.errorHere(KindExpectedComma)
			}
		}
	})
}

func (d *decoder) decodeMap(rv reflect.Value) error {
	if err := d.s.skipWS(); err != nil {
		return err
	}
	if !d.s.consumeLiteral("{") {
		return d.s.errorHere(KindExpectedMap)
	}
	return d.withDepthErr(func() error {
		out := reflect.MakeMap(rv.Type())
		for {
			if err := d.s.skipWS(); err != nil {
				return err
			}
			if d.s.eof() {
				return d.s.errorHere(KindExpectedMapEnd)
			}
			if d.s.consumeLiteral("}") {
				rv.Set(out)
				return nil
			}
			key := reflect.New(rv.Type().Key()).Elem()
			if err := d.decodeValue(key); err != nil {
				return err
			}
			if err := d.s.skipWS(); err != nil {
				return err
			}
			if !d.s.consumeLiteral(":") {
				return d.s.errorHere(KindExpectedMapColon)
			}
			val := reflect.New(rv.Type().Elem()).Elem()
			if err := d.decodeValue(val); err != nil {
				return err
			}
			out.SetMapIndex(key, val)
			if err := d.s.skipWS(); err != nil {
				return err
			}
			if d.s.eof() {
				return d.s.errorHere(KindExpectedMapEnd)
			}
			if d.s.consumeLiteral("}") {
				rv.Set(out)
				return nil
			}
			if !d.s.consumeLiteral(",") {
				return d.s.errorHere(KindExpectedComma)
			}
		}
	})
}
