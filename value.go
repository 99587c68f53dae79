package ron

import "sort"

// ValueKind tags the variant held by a [Value].
type ValueKind int

const (
	KindUnit ValueKind = iota
	KindBool
	KindChar
	KindNumber
	KindString
	KindBytes
	KindOption
	KindSeq
	KindValueMap
	KindRawValue
)

// Value is the untyped document tree: every RON document parses into one of
// these, and emitting a parsed Value back out reproduces an equal Value
// when re-parsed, except for number width: a Number re-parses as the kind
// its emitted literal selects, so without PrettyConfig.NumberSuffixes an
// f32 comes back as f64 and a suffixed integer as the narrowest kind that
// holds it. It is also a valid target/source for the typed driver:
// [Value.Decode] re-dispatches the tree onto a typed Go value, and
// [Marshal] accepts a Value anywhere it accepts any other Go value.
type Value struct {
	kind   ValueKind
	b      bool
	c      rune
	n      Number
	s      string
	by     []byte
	option *Value
	seq    []Value
	m      *Map
	raw    string
}

func UnitValue() Value            { return Value{kind: KindUnit} }
func BoolValue(b bool) Value      { return Value{kind: KindBool, b: b} }
func CharValue(c rune) Value      { return Value{kind: KindChar, c: c} }
func NumberValue(n Number) Value  { return Value{kind: KindNumber, n: n} }
func StringValue(s string) Value  { return Value{kind: KindString, s: s} }
func BytesValue(b []byte) Value   { return Value{kind: KindBytes, by: append([]byte(nil), b...)} }
func NoneValue() Value            { return Value{kind: KindOption} }
func SomeValue(v Value) Value     { return Value{kind: KindOption, option: &v} }
func SeqValue(items []Value) Value {
	return Value{kind: KindSeq, seq: append([]Value(nil), items...)}
}
func MapValue(m *Map) Value { return Value{kind: KindValueMap, m: m} }

// RawValueOf, unlike the other constructors, stores a verbatim, already
// whitespace-trimmed source substring rather than an interpreted value. It
// round-trips identically: the emitter writes the string back out with no
// surrounding tokens or re-validation.
func RawValueOf(source string) Value { return Value{kind: KindRawValue, raw: source} }

// RawSource returns the verbatim text of a RawValue.
func (v Value) RawSource() (string, bool) { return v.raw, v.kind == KindRawValue }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) Bool() (bool, bool)     { return v.b, v.kind == KindBool }
func (v Value) Char() (rune, bool)     { return v.c, v.kind == KindChar }
func (v Value) Number() (Number, bool) { return v.n, v.kind == KindNumber }
func (v Value) String() (string, bool) { return v.s, v.kind == KindString }
func (v Value) Bytes() ([]byte, bool)  { return v.by, v.kind == KindBytes }
func (v Value) Seq() ([]Value, bool)   { return v.seq, v.kind == KindSeq }
func (v Value) Map() (*Map, bool)      { return v.m, v.kind == KindValueMap }

// Option reports whether v is an Option, and if so whether it is Some, and
// its inner value if so.
func (v Value) Option() (inner Value, some bool, isOption bool) {
	if v.kind != KindOption {
		return Value{}, false, false
	}
	if v.option == nil {
		return Value{}, false, true
	}
	return *v.option, true, true
}

// Equal reports whether v and other are the same Value, recursively. Number
// equality uses total-ordering float rules; Map equality compares both
// entries and order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindUnit:
		return true
	case KindBool:
		return v.b == other.b
	case KindChar:
		return v.c == other.c
	case KindNumber:
		return v.n.Equal(other.n)
	case KindString:
		return v.s == other.s
	case KindBytes:
		if len(v.by) != len(other.by) {
			return false
		}
		for i := range v.by {
			if v.by[i] != other.by[i] {
				return false
			}
		}
		return true
	case KindOption:
		if (v.option == nil) != (other.option == nil) {
			return false
		}
		if v.option == nil {
			return true
		}
		return v.option.Equal(*other.option)
	case KindSeq:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	case KindValueMap:
		return v.m.Equal(other.m)
	case KindRawValue:
		return v.raw == other.raw
	default:
		return false
	}
}

// Compare imposes a total, arbitrary-but-consistent order across Values,
// used to keep a sorted Map's entries ordered. Values of different kinds
// order by kind tag; within a kind, by the natural order of the payload.
func (v Value) Compare(other Value) int {
	if v.kind != other.kind {
		if v.kind < other.kind {
			return -1
		}
		return 1
	}
	switch v.kind {
	case KindUnit:
		return 0
	case KindBool:
		return boolCompare(v.b, other.b)
	case KindChar:
		return runeCompare(v.c, other.c)
	case KindNumber:
		return v.n.Compare(other.n)
	case KindString:
		return stringCompare(v.s, other.s)
	case KindBytes:
		return bytesCompare(v.by, other.by)
	case KindOption:
		if v.option == nil && other.option == nil {
			return 0
		}
		if v.option == nil {
			return -1
		}
		if other.option == nil {
			return 1
		}
		return v.option.Compare(*other.option)
	case KindSeq:
		for i := 0; i < len(v.seq) && i < len(other.seq); i++ {
			if c := v.seq[i].Compare(other.seq[i]); c != 0 {
				return c
			}
		}
		return intCompare(len(v.seq), len(other.seq))
	case KindValueMap:
		return v.m.Compare(other.m)
	case KindRawValue:
		return stringCompare(v.raw, other.raw)
	default:
		return 0
	}
}

func boolCompare(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}
func runeCompare(a, b rune) int   { return intCompare(int(a), int(b)) }
func stringCompare(a, b string) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
func bytesCompare(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return intCompare(int(a[i]), int(b[i]))
		}
	}
	return intCompare(len(a), len(b))
}
func intCompare(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// mapEntry is one key/value pair stored by a [Map].
type mapEntry struct {
	Key   Value
	Value Value
}

// Map is an ordered mapping from Value to Value. When Ordered is true,
// iteration and emission preserve insertion order; otherwise entries are
// kept sorted by [Value.Compare] so that output is deterministic without
// depending on insertion history.
type Map struct {
	entries []mapEntry
	Ordered bool
}

// NewMap creates an empty Map with the given ordering backing.
func NewMap(ordered bool) *Map {
	return &Map{Ordered: ordered}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Get looks up key, using linear scan under insertion order or binary
// search under the sorted backing.
func (m *Map) Get(key Value) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	if idx, ok := m.find(key); ok {
		return m.entries[idx].Value, true
	}
	return Value{}, false
}

func (m *Map) find(key Value) (int, bool) {
	if m.Ordered {
		for i, e := range m.entries {
			if e.Key.Equal(key) {
				return i, true
			}
		}
		return -1, false
	}
	i := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].Key.Compare(key) >= 0
	})
	if i < len(m.entries) && m.entries[i].Key.Equal(key) {
		return i, true
	}
	return -1, false
}

// Insert adds or overwrites the value for key, preserving the original
// insertion position on overwrite. It returns true if a prior entry was
// replaced.
func (m *Map) Insert(key, value Value) bool {
	if idx, ok := m.find(key); ok {
		m.entries[idx].Value = value
		return true
	}
	if m.Ordered {
		m.entries = append(m.entries, mapEntry{Key: key, Value: value})
		return false
	}
	i := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].Key.Compare(key) >= 0
	})
	m.entries = append(m.entries, mapEntry{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = mapEntry{Key: key, Value: value}
	return false
}

// Range iterates over entries in storage order (insertion order, or sorted
// order when the Map is not Ordered), stopping early if fn returns false.
func (m *Map) Range(fn func(key, value Value) bool) {
	if m == nil {
		return
	}
	for _, e := range m.entries {
		if !fn(e.Key, e.Value) {
			return
		}
	}
}

// Equal compares both entries and their order.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i := range m.entries {
		if !m.entries[i].Key.Equal(other.entries[i].Key) || !m.entries[i].Value.Equal(other.entries[i].Value) {
			return false
		}
	}
	return true
}

// Compare orders maps element-wise by key then value, with a map that is a
// prefix of the other sorting first, for use as a Map nested inside another sorted Map's keys.
func (m *Map) Compare(other *Map) int {
	for i := 0; i < m.Len() && i < other.Len(); i++ {
		if c := m.entries[i].Key.Compare(other.entries[i].Key); c != 0 {
			return c
		}
		if c := m.entries[i].Value.Compare(other.entries[i].Value); c != 0 {
			return c
		}
	}
	return intCompare(m.Len(), other.Len())
}
