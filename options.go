package ron

// Options configures [Unmarshal] and [ParseValue]. The zero value is
// usable: no extensions beyond whatever the document's own
// `#![enable(...)]` prologue requests, a 128-level recursion guard,
// 128-bit integers disabled, and a sorted (not insertion-ordered) backing
// for untyped maps.
type Options struct {
	// Extensions are OR-merged with whatever the document's attribute
	// prologue enables; they can only add syntax, never remove it.
	Extensions Extensions
	// RecursionLimit caps nested aggregate depth; 0 means the default, 128.
	RecursionLimit int
	// Allow128Bit gates the i128/u128 suffixes and the big.Int field type.
	// When false, a 128-bit literal raises IntegerOutOfBounds with a message
	// explaining the feature is disabled, rather than silently truncating.
	Allow128Bit bool
	// OrderedMaps selects the untyped Value Map's backing: true preserves
	// insertion order, false (the default) keeps entries sorted by
	// [Value.Compare] so output is deterministic independent of input order.
	OrderedMaps bool
}

func (o *Options) withDefaults() *Options {
	if o == nil {
		return &Options{}
	}
	cp := *o
	return &cp
}

// PrettyConfig configures [MarshalPretty]. Defaults (via [DefaultPrettyConfig])
// are a four-space indent, escaped strings, no extensions (so no prologue
// is written), and no struct-name emission unless ExplicitStructNames forces it.
type PrettyConfig struct {
	NewLine        string
	Indentor       string
	Separator      string
	StructNames    bool
	CompactArrays  bool
	CompactMaps    bool
	CompactStructs bool
	EscapeStrings  bool
	NumberSuffixes bool
	Extensions     Extensions
	DepthLimit     int // 0 means unbounded
}

// DefaultPrettyConfig returns the default layout configuration.
func DefaultPrettyConfig() PrettyConfig {
	return PrettyConfig{
		NewLine:       "\n",
		Indentor:      "    ",
		Separator:     " ",
		EscapeStrings: true,
	}
}

// Compact returns a copy of cfg with every layout option set to produce a
// single line of output: no newlines, no indentation, arrays/maps/structs
// all compact.
func (cfg PrettyConfig) Compact() PrettyConfig {
	cfg.NewLine = ""
	cfg.Indentor = ""
	cfg.CompactArrays = true
	cfg.CompactMaps = true
	cfg.CompactStructs = true
	return cfg
}
