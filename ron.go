// Package ron implements Rusty Object Notation: a human-readable,
// self-describing data-interchange format whose textual form mirrors the
// literal syntax of a statically typed systems language: structs,
// tuple-structs, enums, options, maps, sequences, characters and byte
// strings, with base-prefixed and suffixed numeric literals.
//
// [Unmarshal] and [Marshal]/[MarshalPretty] drive a Go value through the
// grammar the same way encoding/json drives a struct through JSON, using
// `ron:"name"` struct tags in place of `json:"name"`. [ParseValue] exposes
// the untyped document tree directly, for callers that don't have (or
// don't want) a static Go type to decode into.
//
// Parse errors raised at a known source position are returned as a
// position-carrying [*SpannedError] wrapping a structured [*Error]; other
// failures (a non-pointer decode target, a missing struct field, an
// encoding error) are returned as a bare *Error. errors.As recovers the
// *Error in either case:
//
//	var perr *ron.Error
//	if errors.As(err, &perr) { ... }
package ron
