package ron

import (
	"math"
	"reflect"
)

// Decode re-dispatches v's variant onto target, which must be a non-nil
// pointer, the same way Unmarshal dispatches source text: the Value tree
// stands in for the document. Targets that implement [Unmarshaler] receive
// the value re-rendered as compact source text; enum targets are not
// supported, since the untyped tree does not retain variant names.
func (v Value) Decode(target any, opts *Options) error {
	opts = opts.withDefaults()
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		e := newError(KindMessage)
		e.Message = "Decode target must be a non-nil pointer"
		return e
	}
	return decodeFromValue(v, rv.Elem(), opts)
}

// describe names v's variant for InvalidValueForType messages.
func (v Value) describe() string {
	switch v.kind {
	case KindUnit:
		return "a unit value"
	case KindBool:
		return "a boolean"
	case KindChar:
		return "a character"
	case KindNumber:
		return "a number"
	case KindString:
		return "a string"
	case KindBytes:
		return "a byte string"
	case KindOption:
		return "an option"
	case KindSeq:
		return "a sequence"
	case KindValueMap:
		return "a map"
	case KindRawValue:
		return "a raw value"
	default:
		return "a value"
	}
}

func invalidValueFor(expected string, v Value) error {
	e := newError(KindInvalidValueForType)
	e.Expected = expected
	e.Found = v.describe()
	return e
}

func decodeFromValue(v Value, rv reflect.Value, opts *Options) error {
	if rv.Type() == valueType {
		rv.Set(reflect.ValueOf(v))
		return nil
	}
	if rv.CanAddr() {
		if u, ok := rv.Addr().Interface().(Unmarshaler); ok {
			if raw, ok := v.RawSource(); ok {
				return u.UnmarshalRON([]byte(raw))
			}
			text, err := Marshal(v, opts)
			if err != nil {
				return err
			}
			return u.UnmarshalRON(text)
		}
	}

	switch rv.Kind() {
	case reflect.Pointer:
		inner, some, isOpt := v.Option()
		if !isOpt {
			// A bare value stands for Some, mirroring IMPLICIT_SOME; None
			// has no other spelling in the tree, so no ambiguity arises.
			inner, some = v, true
		}
		if !some {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		p := reflect.New(rv.Type().Elem())
		if err := decodeFromValue(inner, p.Elem(), opts); err != nil {
			return err
		}
		rv.Set(p)
		return nil
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return invalidValueFor("an empty interface target", v)
		}
		rv.Set(reflect.ValueOf(v))
		return nil
	case reflect.Bool:
		b, ok := v.Bool()
		if !ok {
			return invalidValueFor("a boolean", v)
		}
		rv.SetBool(b)
		return nil
	case reflect.String:
		if s, ok := v.String(); ok {
			rv.SetString(s)
			return nil
		}
		if c, ok := v.Char(); ok {
			rv.SetString(string(c))
			return nil
		}
		return invalidValueFor("a string", v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := v.Number()
		if !ok || n.Kind.isFloat() {
			return invalidValueFor("an integer", v)
		}
		i := n.Int64()
		if err := checkSignedRange(numKindFor(rv.Kind()), i); err != nil {
			return err
		}
		rv.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := v.Number()
		if !ok || n.Kind.isFloat() {
			return invalidValueFor("an integer", v)
		}
		if n.Kind.isSigned() && n.Int64() < 0 {
			return newError(KindIntegerOutOfBounds)
		}
		u := n.Uint64()
		if err := checkUnsignedRange(numKindFor(rv.Kind()), u); err != nil {
			return err
		}
		rv.SetUint(u)
		return nil
	case reflect.Float32, reflect.Float64:
		n, ok := v.Number()
		if !ok {
			return invalidValueFor("a float", v)
		}
		f := n.Float64()
		if rv.Kind() == reflect.Float32 && !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
			return newError(KindIntegerOutOfBounds)
		}
		rv.SetFloat(f)
		return nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			by, ok := v.Bytes()
			if !ok {
				return invalidValueFor("a byte string", v)
			}
			rv.SetBytes(append([]byte(nil), by...))
			return nil
		}
		items, ok := v.Seq()
		if !ok {
			return invalidValueFor("a sequence", v)
		}
		out := reflect.MakeSlice(rv.Type(), len(items), len(items))
		for i, item := range items {
			if err := decodeFromValue(item, out.Index(i), opts); err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil
	case reflect.Array:
		items, ok := v.Seq()
		if !ok {
			return invalidValueFor("a sequence", v)
		}
		if len(items) != rv.Len() {
			e := newError(KindExpectedDifferentLength)
			e.ExpectedLen = rv.Len()
			e.Length = len(items)
			return e
		}
		for i, item := range items {
			if err := decodeFromValue(item, rv.Index(i), opts); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		m, ok := v.Map()
		if !ok {
			return invalidValueFor("a map", v)
		}
		out := reflect.MakeMap(rv.Type())
		var rangeErr error
		m.Range(func(k, val Value) bool {
			key := reflect.New(rv.Type().Key()).Elem()
			if err := decodeFromValue(k, key, opts); err != nil {
				rangeErr = err
				return false
			}
			elem := reflect.New(rv.Type().Elem()).Elem()
			if err := decodeFromValue(val, elem, opts); err != nil {
				rangeErr = err
				return false
			}
			out.SetMapIndex(key, elem)
			return true
		})
		if rangeErr != nil {
			return rangeErr
		}
		rv.Set(out)
		return nil
	case reflect.Struct:
		return decodeStructFromValue(v, rv, opts)
	default:
		return invalidValueFor("a supported Go type", v)
	}
}

// decodeStructFromValue maps a field-shaped map (or a unit value, for an
// empty struct) onto a Go struct's tagged fields, under the same
// unknown/missing-field rules the text driver applies.
func decodeStructFromValue(v Value, rv reflect.Value, opts *Options) error {
	fields := ronFields(rv.Type())
	name := rv.Type().Name()
	if isNewtypeStruct(fields) {
		return decodeFromValue(v, rv.Field(fields[0].Index), opts)
	}
	seen := make([]bool, len(fields))
	if v.Kind() == KindUnit {
		// `()` parses to a unit value, which is an empty struct body here.
		return checkMissingFields(fields, seen, name)
	}
	m, ok := v.Map()
	if !ok {
		return invalidValueFor("a struct body", v)
	}
	var rangeErr error
	m.Range(func(k, val Value) bool {
		key, ok := k.String()
		if !ok {
			rangeErr = invalidValueFor("a field name", k)
			return false
		}
		idx := indexOfField(fields, key)
		if idx < 0 {
			e := newError(KindNoSuchStructField)
			e.Found = key
			e.Outer = name
			e.ExpectedList = fieldNames(fields)
			rangeErr = e
			return false
		}
		seen[idx] = true
		if err := decodeFromValue(val, rv.Field(fields[idx].Index), opts); err != nil {
			rangeErr = err
			return false
		}
		return true
	})
	if rangeErr != nil {
		return rangeErr
	}
	return checkMissingFields(fields, seen, name)
}
