package ron

// VariantKind tags the shape of an enum variant's body: unit, newtype,
// tuple or struct. Go has no sum-type declaration the driver can inspect,
// so a type that wants enum support implements [EnumUnmarshaler] and
// [EnumMarshaler], telling the driver the shape of each variant by name.
type VariantKind int

const (
	VariantUnit VariantKind = iota
	VariantNewtype
	VariantTuple
	VariantStruct
)

// Enum is the untyped shape of one parsed (or to-be-emitted) enum value:
// a variant name plus, depending on Kind, its payload.
type Enum struct {
	Variant string
	Kind    VariantKind
	Newtype Value
	Tuple   []Value
	Struct  *Map
}

func EnumUnit(variant string) Enum { return Enum{Variant: variant, Kind: VariantUnit} }
func EnumNewtype(variant string, v Value) Enum {
	return Enum{Variant: variant, Kind: VariantNewtype, Newtype: v}
}
func EnumTuple(variant string, vals ...Value) Enum {
	return Enum{Variant: variant, Kind: VariantTuple, Tuple: append([]Value(nil), vals...)}
}
func EnumStruct(variant string, m *Map) Enum {
	return Enum{Variant: variant, Kind: VariantStruct, Struct: m}
}

// EnumUnmarshaler lets a Go type participate in enum decoding. RONEnumVariant
// reports the wire shape of the named variant (and, for VariantStruct, its
// declared field names, used to raise NoSuchStructField/DuplicateStructField
// the same way a plain struct body does) or ok=false if no such variant is
// known, which the driver turns into NoSuchEnumVariant. UnmarshalRONEnum
// receives the fully parsed variant and applies it to the receiver.
type EnumUnmarshaler interface {
	RONEnumVariant(name string) (kind VariantKind, structFields []string, ok bool)
	UnmarshalRONEnum(e Enum) error
}

// EnumMarshaler is the encode-side counterpart: a type reports the Enum
// shape it currently holds, and the emitter writes it out in the matching
// variant form (including UNWRAP_VARIANT_NEWTYPES collapsing).
type EnumMarshaler interface {
	MarshalRONEnum() Enum
}

// Marshaler lets a type supply its own exact RON source text, spliced in
// verbatim with no further quoting or escaping, the mechanism behind [Raw].
type Marshaler interface {
	MarshalRON() ([]byte, error)
}

// Unmarshaler receives the verbatim, whitespace-trimmed source text of
// exactly one upcoming value, without any interpretation.
type Unmarshaler interface {
	UnmarshalRON(data []byte) error
}

// Raw holds a verbatim RON source fragment, preserved byte-for-byte rather
// than interpreted. Encoding writes it out unescaped and unquoted; decoding
// stores the exact token range it was parsed from.
type Raw string

func (r Raw) MarshalRON() ([]byte, error) { return []byte(r), nil }

func (r *Raw) UnmarshalRON(data []byte) error {
	*r = Raw(data)
	return nil
}

// NewRaw validates that src holds exactly one parseable value (plus
// optional surrounding whitespace) and returns it whitespace-trimmed as a
// Raw. Text that does not parse is rejected with ExpectedRawValue wrapping
// the underlying parse error.
func NewRaw(src string, opts *Options) (Raw, error) {
	opts = opts.withDefaults()
	d, err := newDecoder([]byte(src), opts)
	if err != nil {
		return "", rawValueError(err)
	}
	raw, err := d.scanRawValue()
	if err != nil {
		return "", rawValueError(err)
	}
	if err := d.end(); err != nil {
		return "", rawValueError(err)
	}
	return Raw(raw), nil
}

func rawValueError(cause error) error {
	e := newError(KindExpectedRawValue)
	e.WrappedErr = cause
	return e
}
