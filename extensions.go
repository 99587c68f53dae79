package ron

import "strings"

// Extensions is a bit set of syntactic extensions that alter the grammar
// accepted by [Unmarshal]/[ParseValue] or produced by [Marshal]/[MarshalPretty]. The zero value has
// every extension disabled.
type Extensions uint8

const (
	// ExtUnwrapNewtypes makes newtype structs emit/accept only the inner
	// value, without the wrapping `Name(...)`.
	ExtUnwrapNewtypes Extensions = 1 << iota
	// ExtImplicitSome lets a bare value stand for Some(value) wherever an
	// Option is expected.
	ExtImplicitSome
	// ExtUnwrapVariantNewtypes makes newtype enum variants emit/accept only
	// the inner value after the variant name, without wrapping parens.
	ExtUnwrapVariantNewtypes
	// ExtExplicitStructNames requires (on parse) and forces (on emit) every
	// struct literal to be preceded by its declared name.
	ExtExplicitStructNames

	extAll = ExtUnwrapNewtypes | ExtImplicitSome | ExtUnwrapVariantNewtypes | ExtExplicitStructNames
)

// Has reports whether every bit set in want is also set in e.
func (e Extensions) Has(want Extensions) bool {
	return e&want == want
}

// extensionFromIdent maps an `#![enable(...)]` identifier to its flag. The
// zero value and false are returned for unrecognized names.
func extensionFromIdent(ident string) (Extensions, bool) {
	switch ident {
	case "unwrap_newtypes":
		return ExtUnwrapNewtypes, true
	case "implicit_some":
		return ExtImplicitSome, true
	case "unwrap_variant_newtypes":
		return ExtUnwrapVariantNewtypes, true
	case "explicit_struct_names":
		return ExtExplicitStructNames, true
	default:
		return 0, false
	}
}

// names returns the canonical attribute identifiers for every flag set in e,
// in a stable, low-bit-first order, suitable for emitting an
// `#![enable(...)]` prologue.
func (e Extensions) names() []string {
	var out []string
	if e.Has(ExtUnwrapNewtypes) {
		out = append(out, "unwrap_newtypes")
	}
	if e.Has(ExtImplicitSome) {
		out = append(out, "implicit_some")
	}
	if e.Has(ExtUnwrapVariantNewtypes) {
		out = append(out, "unwrap_variant_newtypes")
	}
	if e.Has(ExtExplicitStructNames) {
		out = append(out, "explicit_struct_names")
	}
	return out
}

func (e Extensions) String() string {
	names := e.names()
	if len(names) == 0 {
		return "()"
	}
	return "(" + strings.Join(names, ", ") + ")"
}
