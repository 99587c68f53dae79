package ron

import "unicode/utf8"

// decoder holds the state shared by the untyped and typed parsing paths:
// the scanner cursor, the active extension set, the recursion budget, and
// the map-backing policy. Position information is tracked incrementally by
// the scanner rather than re-derived on error, so every error is O(1) to
// raise.
type decoder struct {
	s        *scanner
	exts     Extensions
	allow128 bool
	ordered  bool

	depth    int
	maxDepth int
}

func newDecoder(data []byte, opts *Options) (*decoder, error) {
	if !utf8.Valid(data) {
		return nil, &SpannedError{Err: newError(KindUtf8Error)}
	}
	s := newScanner(data)
	exts, err := s.parsePrologue()
	if err != nil {
		return nil, err
	}
	exts |= opts.Extensions
	maxDepth := opts.RecursionLimit
	if maxDepth == 0 {
		maxDepth = 128
	}
	return &decoder{
		s:        s,
		exts:     exts,
		allow128: opts.Allow128Bit,
		ordered:  opts.OrderedMaps,
		maxDepth: maxDepth,
	}, nil
}

func (d *decoder) newMap() *Map { return NewMap(d.ordered) }

// withDepth runs fn under one additional level of recursion budget, raising
// ExceededRecursionLimit without ever calling fn if the budget is already
// exhausted (so the Go call stack itself never grows past maxDepth levels
// of RON nesting).
func (d *decoder) withDepth(fn func() (Value, error)) (Value, error) {
	if d.depth >= d.maxDepth {
		return Value{}, d.s.errorHere(KindExceededRecursionLimit)
	}
	d.depth++
	v, err := fn()
	d.depth--
	return v, err
}

// withDepthErr is withDepth's counterpart for the typed driver, whose
// recursive steps report only an error.
func (d *decoder) withDepthErr(fn func() error) error {
	if d.depth >= d.maxDepth {
		return d.s.errorHere(KindExceededRecursionLimit)
	}
	d.depth++
	err := fn()
	d.depth--
	return err
}

// scanRawValue skips leading whitespace, then parses and discards exactly
// one value, returning the verbatim source bytes it spanned. This backs the
// [Unmarshaler] hook and [Raw]: the returned slice is whitespace-trimmed on
// both ends.
func (d *decoder) scanRawValue() ([]byte, error) {
	if err := d.s.skipWS(); err != nil {
		return nil, err
	}
	start := d.s.pos
	if _, err := d.parseAnyValue(false); err != nil {
		return nil, err
	}
	return d.s.data[start:d.s.pos], nil
}

// end requires that nothing but whitespace/comments remains.
func (d *decoder) end() error {
	if err := d.s.skipWS(); err != nil {
		return err
	}
	if !d.s.eof() {
		return d.s.errorHere(KindTrailingCharacters)
	}
	return nil
}
