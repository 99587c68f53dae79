package ron

import (
	"math"
	"math/big"
)

// NumKind identifies which primitive width a [Number] holds.
type NumKind int

const (
	KindI8 NumKind = iota
	KindI16
	KindI32
	KindI64
	KindI128
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindF32
	KindF64
)

func (k NumKind) String() string {
	switch k {
	case KindI8:
		return "i8"
	case KindI16:
		return "i16"
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindI128:
		return "i128"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindU128:
		return "u128"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	default:
		return "?"
	}
}

func (k NumKind) isSigned() bool {
	return k == KindI8 || k == KindI16 || k == KindI32 || k == KindI64 || k == KindI128
}

func (k NumKind) isUnsigned() bool {
	return k == KindU8 || k == KindU16 || k == KindU32 || k == KindU64 || k == KindU128
}

func (k NumKind) isFloat() bool {
	return k == KindF32 || k == KindF64
}

func (k NumKind) isBig() bool {
	return k == KindI128 || k == KindU128
}

// Number is a tagged union over every numeric width the grammar supports.
// Integers up to 64 bits are stored natively; the 128-bit widths (gated by
// [Options.Allow128Bit]) fall back to [big.Int]. Floats use the
// IEEE-754 total-ordering rule for Equal/Compare: two NaNs with the same
// sign bit compare equal, and NaN sorts above +Inf (or below -Inf for a
// negative sign bit), rather than comparing unordered as `==` would.
type Number struct {
	Kind NumKind
	i    int64
	u    uint64
	f    float64
	big  *big.Int
}

// NewInt builds a signed Number of the requested kind.
func NewInt(kind NumKind, v int64) Number { return Number{Kind: kind, i: v} }

// NewUint builds an unsigned Number of the requested kind.
func NewUint(kind NumKind, v uint64) Number { return Number{Kind: kind, u: v} }

// NewFloat32 builds an f32 Number.
func NewFloat32(v float32) Number { return Number{Kind: KindF32, f: float64(v)} }

// NewFloat64 builds an f64 Number.
func NewFloat64(v float64) Number { return Number{Kind: KindF64, f: v} }

// NewBigInt builds an i128/u128 Number backed by a [big.Int].
func NewBigInt(kind NumKind, v *big.Int) Number { return Number{Kind: kind, big: v} }

// Int64 returns the number as an int64, truncating/reinterpreting as needed.
func (n Number) Int64() int64 {
	switch {
	case n.Kind.isFloat():
		return int64(n.f)
	case n.Kind.isBig():
		if n.big == nil {
			return 0
		}
		return n.big.Int64()
	case n.Kind.isUnsigned():
		return int64(n.u)
	default:
		return n.i
	}
}

// Uint64 returns the number as a uint64, truncating/reinterpreting as needed.
func (n Number) Uint64() uint64 {
	switch {
	case n.Kind.isFloat():
		return uint64(n.f)
	case n.Kind.isBig():
		if n.big == nil {
			return 0
		}
		return n.big.Uint64()
	case n.Kind.isUnsigned():
		return n.u
	default:
		return uint64(n.i)
	}
}

// Float64 returns the [f64] representation of the Number regardless of
// whether it is stored as a float or an integer.
func (n Number) Float64() float64 {
	switch {
	case n.Kind.isFloat():
		return n.f
	case n.Kind.isBig():
		if n.big == nil {
			return 0
		}
		f, _ := new(big.Float).SetInt(n.big).Float64()
		return f
	case n.Kind.isUnsigned():
		return float64(n.u)
	default:
		return float64(n.i)
	}
}

// BigInt returns the backing [big.Int] for 128-bit widths, or nil otherwise.
func (n Number) BigInt() *big.Int { return n.big }

// totalOrderBits returns a uint64 ordering key for a float64 such that
// comparing the keys as unsigned integers reproduces the total-ordering
// rule: ordinary numeric order for all non-NaN values, with -0.0 < +0.0,
// and NaN (canonicalised per sign) sorting above +Inf / below -Inf.
func totalOrderBits(f float64) uint64 {
	if math.IsNaN(f) {
		f = math.Copysign(math.NaN(), f)
	}
	bits := math.Float64bits(f)
	if bits&(1<<63) != 0 {
		return ^bits
	}
	return bits | (1 << 63)
}

// Equal reports whether n and other denote the same Number under
// total-ordering float equality: same kind and, for floats, the same sign's
// NaN compares equal to itself.
func (n Number) Equal(other Number) bool {
	if n.Kind != other.Kind {
		return false
	}
	switch {
	case n.Kind.isFloat():
		return totalOrderBits(n.f) == totalOrderBits(other.f)
	case n.Kind.isBig():
		if n.big == nil || other.big == nil {
			return n.big == other.big
		}
		return n.big.Cmp(other.big) == 0
	case n.Kind.isUnsigned():
		return n.u == other.u
	default:
		return n.i == other.i
	}
}

// Compare orders n relative to other using the total-ordering rule for
// floats described on [Number].
func (n Number) Compare(other Number) int {
	if n.Kind != other.Kind {
		if n.Kind < other.Kind {
			return -1
		}
		return 1
	}
	switch {
	case n.Kind.isFloat():
		a, b := totalOrderBits(n.f), totalOrderBits(other.f)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	case n.Kind.isBig():
		if n.big == nil || other.big == nil {
			return 0
		}
		return n.big.Cmp(other.big)
	case n.Kind.isUnsigned():
		switch {
		case n.u < other.u:
			return -1
		case n.u > other.u:
			return 1
		default:
			return 0
		}
	default:
		switch {
		case n.i < other.i:
			return -1
		case n.i > other.i:
			return 1
		default:
			return 0
		}
	}
}

var (
	maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	minI128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// anyNum selects the narrowest integer variant that losslessly represents an
// un-suffixed literal, given its decimal magnitude text and base: the
// smallest unsigned width for non-negative literals, the smallest signed
// width for negative ones. Widths widen monotonically with magnitude all
// the way to i128/u128 (gated by allow128) rather than
// stopping at 64 bits; a magnitude that doesn't fit even there raises
// IntegerOutOfBounds.
func anyNum(negative bool, digits string, base int, allow128 bool, span Span) (Number, error) {
	mag := new(big.Int)
	if _, ok := mag.SetString(digits, base); !ok {
		return Number{}, withSpan(newError(KindIntegerOutOfBounds), span)
	}

	if negative {
		v := new(big.Int).Neg(mag)
		if v.IsInt64() {
			i := v.Int64()
			switch {
			case i >= math.MinInt8 && i <= math.MaxInt8:
				return NewInt(KindI8, i), nil
			case i >= math.MinInt16 && i <= math.MaxInt16:
				return NewInt(KindI16, i), nil
			case i >= math.MinInt32 && i <= math.MaxInt32:
				return NewInt(KindI32, i), nil
			default:
				return NewInt(KindI64, i), nil
			}
		}
		if !allow128 {
			e := newError(KindIntegerOutOfBounds)
			e.Reason = "128-bit integers are not enabled"
			return Number{}, withSpan(e, span)
		}
		if v.Cmp(minI128) < 0 {
			return Number{}, withSpan(newError(KindIntegerOutOfBounds), span)
		}
		return NewBigInt(KindI128, v), nil
	}

	if mag.IsUint64() {
		u := mag.Uint64()
		switch {
		case u <= math.MaxUint8:
			return NewUint(KindU8, u), nil
		case u <= math.MaxUint16:
			return NewUint(KindU16, u), nil
		case u <= math.MaxUint32:
			return NewUint(KindU32, u), nil
		default:
			return NewUint(KindU64, u), nil
		}
	}
	if !allow128 {
		e := newError(KindIntegerOutOfBounds)
		e.Reason = "128-bit integers are not enabled"
		return Number{}, withSpan(e, span)
	}
	if mag.Cmp(maxU128) > 0 {
		return Number{}, withSpan(newError(KindIntegerOutOfBounds), span)
	}
	return NewBigInt(KindU128, mag), nil
}
