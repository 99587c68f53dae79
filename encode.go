package ron

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Marshal renders v as RON using a compact single-line layout, the
// equivalent of ron-rs's `to_string`.
func Marshal(v any, opts *Options) ([]byte, error) {
	return MarshalPretty(v, DefaultPrettyConfig().Compact(), opts)
}

// MarshalPretty renders v as RON under the given layout configuration.
func MarshalPretty(v any, cfg PrettyConfig, opts *Options) ([]byte, error) {
	opts = opts.withDefaults()
	e := &encoder{cfg: cfg, exts: cfg.Extensions | opts.Extensions}
	if e.exts.Has(ExtExplicitStructNames) {
		e.cfg.StructNames = true
	}
	if names := e.exts.names(); len(names) > 0 {
		e.buf.WriteString("#![enable(")
		e.buf.WriteString(strings.Join(names, ", "))
		e.buf.WriteString(")]")
		e.buf.WriteString(e.cfg.NewLine)
	}
	rv := reflect.ValueOf(v)
	if err := e.encodeValue(rv, 0); err != nil {
		return nil, err
	}
	return []byte(e.buf.String()), nil
}

type encoder struct {
	buf  strings.Builder
	cfg  PrettyConfig
	exts Extensions
}

// checkDepth bounds structure nesting by the configured DepthLimit, where
// zero leaves it unbounded.
func (e *encoder) checkDepth(depth int) error {
	if e.cfg.DepthLimit > 0 && depth >= e.cfg.DepthLimit {
		return newError(KindExceededRecursionLimit)
	}
	return nil
}

func (e *encoder) writeIndent(depth int) {
	if e.cfg.Indentor == "" {
		return
	}
	for i := 0; i < depth; i++ {
		e.buf.WriteString(e.cfg.Indentor)
	}
}

func (e *encoder) encodeValue(rv reflect.Value, depth int) error {
	if err := e.checkDepth(depth); err != nil {
		return err
	}
	if !rv.IsValid() {
		e.buf.WriteString("()")
		return nil
	}
	if m, ok := rv.Interface().(Marshaler); ok {
		b, err := m.MarshalRON()
		if err != nil {
			return err
		}
		e.buf.Write(b)
		return nil
	}
	if em, ok := rv.Interface().(EnumMarshaler); ok {
		return e.encodeEnum(em.MarshalRONEnum(), depth)
	}
	if v, ok := rv.Interface().(Value); ok {
		return e.encodeUntyped(v, depth)
	}
	if rv.Type() == bigIntType {
		bi := rv.Interface().(big.Int)
		e.buf.WriteString(bi.String())
		if e.cfg.NumberSuffixes {
			e.buf.WriteString(suffixFor(KindI128))
		}
		return nil
	}

	switch rv.Kind() {
	case reflect.Pointer:
		return e.encodeOption(rv, depth)
	case reflect.Interface:
		return e.encodeValue(rv.Elem(), depth)
	case reflect.Bool:
		if rv.Bool() {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
		return nil
	case reflect.String:
		e.writeString(rv.String())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.writeSignedNumber(numKindFor(rv.Kind()), rv.Int())
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		e.writeUnsignedNumber(numKindFor(rv.Kind()), rv.Uint())
		return nil
	case reflect.Float32, reflect.Float64:
		e.writeFloat(numKindFor(rv.Kind()), rv.Float())
		return nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			e.writeByteString(rv.Bytes())
			return nil
		}
		return e.encodeSeq(sliceLen(rv), rv.Index, depth)
	case reflect.Array:
		return e.encodeTuple(rv.Len(), rv.Index, depth)
	case reflect.Map:
		return e.encodeMap(rv, depth)
	case reflect.Struct:
		return e.encodeStruct(rv, rv.Type().Name(), depth)
	default:
		err := newError(KindMessage)
		err.Message = "unsupported Go type " + rv.Type().String()
		return err
	}
}

func sliceLen(rv reflect.Value) int { return rv.Len() }

func (e *encoder) encodeOption(rv reflect.Value, depth int) error {
	if rv.IsNil() {
		e.buf.WriteString("None")
		return nil
	}
	e.buf.WriteString("Some(")
	if err := e.encodeValue(rv.Elem(), depth); err != nil {
		return err
	}
	e.buf.WriteByte(')')
	return nil
}

func (e *encoder) encodeSeq(n int, at func(int) reflect.Value, depth int) error {
	if n == 0 {
		e.buf.WriteString("[]")
		return nil
	}
	e.buf.WriteByte('[')
	compact := e.cfg.CompactArrays
	for i := 0; i < n; i++ {
		if !compact {
			e.buf.WriteString(e.cfg.NewLine)
			e.writeIndent(depth + 1)
		}
		if err := e.encodeValue(at(i), depth+1); err != nil {
			return err
		}
		if compact && i < n-1 {
			e.buf.WriteString(", ")
		} else if !compact {
			e.buf.WriteByte(',')
		}
	}
	if !compact {
		e.buf.WriteString(e.cfg.NewLine)
		e.writeIndent(depth)
	}
	e.buf.WriteByte(']')
	return nil
}

// encodeTuple emits `(v1, v2, ...)`, including the one-element
// trailing-comma disambiguation.
func (e *encoder) encodeTuple(n int, at func(int) reflect.Value, depth int) error {
	e.buf.WriteByte('(')
	for i := 0; i < n; i++ {
		if i > 0 {
			e.buf.WriteString(", ")
		}
		if err := e.encodeValue(at(i), depth+1); err != nil {
			return err
		}
	}
	if n == 1 {
		e.buf.WriteByte(',')
	}
	e.buf.WriteByte(')')
	return nil
}

func (e *encoder) encodeMap(rv reflect.Value, depth int) error {
	keys := rv.MapKeys()
	if len(keys) == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	e.buf.WriteByte('{')
	compact := e.cfg.CompactMaps
	for i, k := range keys {
		if !compact {
			e.buf.WriteString(e.cfg.NewLine)
			e.writeIndent(depth + 1)
		}
		if err := e.encodeValue(k, depth+1); err != nil {
			return err
		}
		e.buf.WriteByte(':')
		e.buf.WriteString(e.cfg.Separator)
		if err := e.encodeValue(rv.MapIndex(k), depth+1); err != nil {
			return err
		}
		if compact && i < len(keys)-1 {
			e.buf.WriteString(", ")
		} else if !compact {
			e.buf.WriteByte(',')
		}
	}
	if !compact {
		e.buf.WriteString(e.cfg.NewLine)
		e.writeIndent(depth)
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) encodeStruct(rv reflect.Value, name string, depth int) error {
	fields := ronFields(rv.Type())
	if isNewtypeStruct(fields) {
		return e.encodeNewtypeStruct(rv, name, fields[0], depth)
	}
	if e.cfg.StructNames {
		if err := e.writeIdent(name); err != nil {
			return err
		}
	}
	if len(fields) == 0 {
		e.buf.WriteString("()")
		return nil
	}
	e.buf.WriteByte('(')
	compact := e.cfg.CompactStructs
	for i, f := range fields {
		if !compact {
			e.buf.WriteString(e.cfg.NewLine)
			e.writeIndent(depth + 1)
		}
		if err := e.writeIdent(f.Name); err != nil {
			return err
		}
		e.buf.WriteByte(':')
		e.buf.WriteString(e.cfg.Separator)
		if err := e.encodeValue(rv.Field(f.Index), depth+1); err != nil {
			return err
		}
		if compact && i < len(fields)-1 {
			e.buf.WriteString(", ")
		} else if !compact {
			e.buf.WriteByte(',')
		}
	}
	if !compact {
		e.buf.WriteString(e.cfg.NewLine)
		e.writeIndent(depth)
	}
	e.buf.WriteByte(')')
	return nil
}

// encodeNewtypeStruct emits `Name(inner)` collapsing to bare `inner` under
// ExtUnwrapNewtypes, forced back on by StructNames/ExtExplicitStructNames.
func (e *encoder) encodeNewtypeStruct(rv reflect.Value, name string, field ronField, depth int) error {
	if e.exts.Has(ExtUnwrapNewtypes) && !e.cfg.StructNames {
		return e.encodeValue(rv.Field(field.Index), depth)
	}
	if e.cfg.StructNames {
		if err := e.writeIdent(name); err != nil {
			return err
		}
	}
	e.buf.WriteByte('(')
	if err := e.encodeValue(rv.Field(field.Index), depth+1); err != nil {
		return err
	}
	e.buf.WriteByte(')')
	return nil
}

func (e *encoder) encodeEnum(en Enum, depth int) error {
	switch en.Kind {
	case VariantUnit:
		return e.writeIdent(en.Variant)
	case VariantNewtype:
		if err := e.writeIdent(en.Variant); err != nil {
			return err
		}
		if e.exts.Has(ExtUnwrapVariantNewtypes) {
			e.buf.WriteByte(' ')
			return e.encodeUntyped(en.Newtype, depth)
		}
		e.buf.WriteByte('(')
		if err := e.encodeUntyped(en.Newtype, depth+1); err != nil {
			return err
		}
		e.buf.WriteByte(')')
		return nil
	case VariantTuple:
		if err := e.writeIdent(en.Variant); err != nil {
			return err
		}
		e.buf.WriteByte('(')
		for i, v := range en.Tuple {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			if err := e.encodeUntyped(v, depth+1); err != nil {
				return err
			}
		}
		if len(en.Tuple) == 1 {
			e.buf.WriteByte(',')
		}
		e.buf.WriteByte(')')
		return nil
	case VariantStruct:
		if err := e.writeIdent(en.Variant); err != nil {
			return err
		}
		e.buf.WriteByte('(')
		i := 0
		var rangeErr error
		en.Struct.Range(func(k, v Value) bool {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			name, _ := k.String()
			if err := e.writeIdent(name); err != nil {
				rangeErr = err
				return false
			}
			e.buf.WriteByte(':')
			e.buf.WriteString(e.cfg.Separator)
			if err := e.encodeUntyped(v, depth+1); err != nil {
				rangeErr = err
				return false
			}
			i++
			return true
		})
		if rangeErr != nil {
			return rangeErr
		}
		e.buf.WriteByte(')')
		return nil
	default:
		return newError(KindFmt)
	}
}

// writeSignedNumber/writeUnsignedNumber/writeFloat emit the shortest
// round-trip textual form for a number of a known width, appending the
// type suffix when NumberSuffixes is set.
func (e *encoder) writeSignedNumber(kind NumKind, v int64) {
	e.buf.WriteString(strconv.FormatInt(v, 10))
	if e.cfg.NumberSuffixes {
		e.buf.WriteString(suffixFor(kind))
	}
}

func (e *encoder) writeUnsignedNumber(kind NumKind, v uint64) {
	e.buf.WriteString(strconv.FormatUint(v, 10))
	if e.cfg.NumberSuffixes {
		e.buf.WriteString(suffixFor(kind))
	}
}

func (e *encoder) writeFloat(kind NumKind, f float64) {
	bits := 64
	if kind == KindF32 {
		bits = 32
	}
	switch {
	case math.IsNaN(f):
		if math.Signbit(f) {
			e.buf.WriteByte('-')
		}
		e.buf.WriteString("NaN")
	case math.IsInf(f, 1):
		e.buf.WriteString("inf")
	case math.IsInf(f, -1):
		e.buf.WriteString("-inf")
	default:
		s := strconv.FormatFloat(f, 'g', -1, bits)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		e.buf.WriteString(s)
	}
	if e.cfg.NumberSuffixes {
		e.buf.WriteString(suffixFor(kind))
	}
}

func suffixFor(kind NumKind) string {
	for suffix, k := range numberSuffixes {
		if k == kind {
			return suffix
		}
	}
	return ""
}

// writeIdent emits an identifier, upgrading it to its r#-prefixed raw form
// when it carries raw-only characters, and refusing names that are not
// representable even raw.
func (e *encoder) writeIdent(name string) error {
	if isValidPlainIdentifier(name) {
		e.buf.WriteString(name)
		return nil
	}
	if isValidRawIdentifierBody(name) {
		e.buf.WriteString("r#")
		e.buf.WriteString(name)
		return nil
	}
	err := newError(KindInvalidIdentifier)
	err.Found = name
	return err
}

func (e *encoder) writeChar(c rune) {
	e.buf.WriteByte('\'')
	switch c {
	case '\\':
		e.buf.WriteString(`\\`)
	case '\'':
		e.buf.WriteString(`\'`)
	default:
		e.buf.WriteRune(c)
	}
	e.buf.WriteByte('\'')
}

// writeString emits s in the shortest escape form when EscapeStrings is
// set, otherwise as a raw string with the smallest `#` count that doesn't
// collide with the payload.
func (e *encoder) writeString(s string) {
	if !e.cfg.EscapeStrings {
		if hashes, ok := rawHashCountFor(s); ok {
			e.buf.WriteByte('r')
			h := strings.Repeat("#", hashes)
			e.buf.WriteString(h)
			e.buf.WriteByte('"')
			e.buf.WriteString(s)
			e.buf.WriteByte('"')
			e.buf.WriteString(h)
			return
		}
	}
	e.buf.WriteByte('"')
	e.buf.WriteString(escapeRONString(s, false))
	e.buf.WriteByte('"')
}

func (e *encoder) writeByteString(b []byte) {
	if !e.cfg.EscapeStrings && isValidUTF8(b) {
		s := string(b)
		if hashes, ok := rawHashCountFor(s); ok {
			e.buf.WriteByte('b')
			e.buf.WriteByte('r')
			h := strings.Repeat("#", hashes)
			e.buf.WriteString(h)
			e.buf.WriteByte('"')
			e.buf.WriteString(s)
			e.buf.WriteByte('"')
			e.buf.WriteString(h)
			return
		}
	}
	e.buf.WriteString(`b"`)
	e.buf.WriteString(escapeRONBytes(b))
	e.buf.WriteByte('"')
}

// rawHashCountFor returns the number of '#' characters that makes a raw
// string with that many hashes around `"…"` unambiguous for payload s: one
// more than the longest run of '#' following any `"` in s, or 0 when s
// holds no `"`. ok is false only when s is not valid UTF-8.
func rawHashCountFor(s string) (int, bool) {
	if !isValidUTF8String(s) {
		return 0, false
	}
	longest := 0
	run := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			j := i + 1
			for j < len(s) && s[j] == '#' {
				j++
			}
			run = j - i - 1
			if run+1 > longest {
				longest = run + 1
			}
		}
	}
	return longest, true
}

func isValidUTF8String(s string) bool { return utf8.ValidString(s) }

func isValidUTF8(b []byte) bool { return utf8.Valid(b) }

// escapeRONString renders s using the shortest escape:
// backslash, quote, the named C-like escapes, \xNN for other control bytes
// and 0x7F, and \u{...} for the rest of non-ASCII.
func escapeRONString(s string, byteMode bool) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			switch {
			case r == 0x7F || (r < 0x20):
				fmt.Fprintf(&sb, `\x%02x`, r)
			case r > 0x7F && !byteMode:
				fmt.Fprintf(&sb, `\u{%x}`, r)
			default:
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

func escapeRONBytes(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		switch c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if c < 0x20 || c >= 0x7F {
				fmt.Fprintf(&sb, `\x%02x`, c)
			} else {
				sb.WriteByte(c)
			}
		}
	}
	return sb.String()
}

// encodeUntyped emits an untyped [Value], used both as the top-level
// encoding target and to splice enum-variant payloads (which the
// [EnumMarshaler] hook supplies as Values rather than further Go values).
func (e *encoder) encodeUntyped(v Value, depth int) error {
	if err := e.checkDepth(depth); err != nil {
		return err
	}
	switch v.Kind() {
	case KindUnit:
		e.buf.WriteString("()")
	case KindBool:
		b, _ := v.Bool()
		if b {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case KindChar:
		c, _ := v.Char()
		e.writeChar(c)
	case KindNumber:
		n, _ := v.Number()
		e.writeNumber(n)
	case KindString:
		s, _ := v.String()
		e.writeString(s)
	case KindBytes:
		by, _ := v.Bytes()
		e.writeByteString(by)
	case KindOption:
		inner, some, _ := v.Option()
		if !some {
			e.buf.WriteString("None")
			return nil
		}
		e.buf.WriteString("Some(")
		if err := e.encodeUntyped(inner, depth+1); err != nil {
			return err
		}
		e.buf.WriteByte(')')
	case KindSeq:
		items, _ := v.Seq()
		return e.encodeSeq(len(items), func(i int) reflect.Value { return reflect.ValueOf(items[i]) }, depth)
	case KindValueMap:
		m, _ := v.Map()
		return e.encodeUntypedMap(m, depth)
	case KindRawValue:
		raw, _ := v.RawSource()
		e.buf.WriteString(raw)
	default:
		return newError(KindFmt)
	}
	return nil
}

func (e *encoder) writeNumber(n Number) {
	switch {
	case n.Kind.isFloat():
		e.writeFloat(n.Kind, n.Float64())
	case n.Kind.isBig():
		if bi := n.BigInt(); bi != nil {
			e.buf.WriteString(bi.String())
		}
		if e.cfg.NumberSuffixes {
			e.buf.WriteString(suffixFor(n.Kind))
		}
	case n.Kind.isSigned():
		e.writeSignedNumber(n.Kind, n.Int64())
	default:
		e.writeUnsignedNumber(n.Kind, n.Uint64())
	}
}

func (e *encoder) encodeUntypedMap(m *Map, depth int) error {
	if m.Len() == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	e.buf.WriteByte('{')
	compact := e.cfg.CompactMaps
	i, n := 0, m.Len()
	var rangeErr error
	m.Range(func(k, val Value) bool {
		if !compact {
			e.buf.WriteString(e.cfg.NewLine)
			e.writeIndent(depth + 1)
		}
		if err := e.encodeUntyped(k, depth+1); err != nil {
			rangeErr = err
			return false
		}
		e.buf.WriteByte(':')
		e.buf.WriteString(e.cfg.Separator)
		if err := e.encodeUntyped(val, depth+1); err != nil {
			rangeErr = err
			return false
		}
		if compact && i < n-1 {
			e.buf.WriteString(", ")
		} else if !compact {
			e.buf.WriteByte(',')
		}
		i++
		return true
	})
	if rangeErr != nil {
		return rangeErr
	}
	if !compact {
		e.buf.WriteString(e.cfg.NewLine)
		e.writeIndent(depth)
	}
	e.buf.WriteByte('}')
	return nil
}
