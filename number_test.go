package ron

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnyNumNarrowing(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		desc     string
		negative bool
		digits   string
		wantKind NumKind
	}{
		{"zero", false, "0", KindU8},
		{"u8-max", false, "255", KindU8},
		{"u16-min", false, "256", KindU16},
		{"u16-max", false, "65535", KindU16},
		{"u32-min", false, "65536", KindU32},
		{"u64-min", false, "4294967296", KindU64},
		{"i8-min", true, "128", KindI8},
		{"i16-min", true, "129", KindI16},
		{"i32-min", true, "32769", KindI32},
		{"i64-min", true, "2147483649", KindI64},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			tc := tc
			t.Parallel()
			n, err := anyNum(tc.negative, tc.digits, 10, false, Span{})
			assert.NoError(t, err)
			assert.Equal(t, tc.wantKind, n.Kind)
		})
	}
}

func TestAnyNumWidensPastI64U64(t *testing.T) {
	t.Parallel()

	// u64 max magnitude, positive: still fits u64.
	n, err := anyNum(false, "18446744073709551615", 10, false, Span{})
	assert.NoError(t, err)
	assert.Equal(t, KindU64, n.Kind)

	// One past u64 max: requires u128, and only widens when allowed.
	_, err = anyNum(false, "18446744073709551616", 10, false, Span{})
	assert.Error(t, err)
	n, err = anyNum(false, "18446744073709551616", 10, true, Span{})
	if assert.NoError(t, err) {
		assert.Equal(t, KindU128, n.Kind)
		require.NotNil(t, n.BigInt())
		assert.Equal(t, "18446744073709551616", n.BigInt().String())
	}

	// A negative magnitude in (2^63, 2^64) must not silently wrap to the
	// wrong sign: it needs i128, not a truncated i64.
	_, err = anyNum(true, "9223372036854775809", 10, false, Span{})
	assert.Error(t, err)
	n, err = anyNum(true, "9223372036854775809", 10, true, Span{})
	if assert.NoError(t, err) {
		assert.Equal(t, KindI128, n.Kind)
		require.NotNil(t, n.BigInt())
		assert.Equal(t, "-9223372036854775809", n.BigInt().String())
	}

	// Exactly math.MinInt64's magnitude still fits the native i64 width.
	n, err = anyNum(true, "9223372036854775808", 10, false, Span{})
	if assert.NoError(t, err) {
		assert.Equal(t, KindI64, n.Kind)
		assert.Equal(t, int64(math.MinInt64), n.Int64())
	}
}

func TestNumberTotalOrderingFloatEquality(t *testing.T) {
	t.Parallel()

	nan1 := NewFloat64(math.NaN())
	nan2 := NewFloat64(math.NaN())
	assert.True(t, nan1.Equal(nan2), "NaN must equal NaN under total ordering")

	negNan := NewFloat64(math.Copysign(math.NaN(), -1))
	assert.False(t, negNan.Equal(nan1), "-NaN and +NaN are distinct in ordering")
	assert.NotEqual(t, 0, negNan.Compare(nan1))

	negZero := NewFloat64(math.Copysign(0, -1))
	posZero := NewFloat64(0)
	assert.False(t, negZero.Equal(posZero))
	assert.Equal(t, -1, negZero.Compare(posZero))

	posInf := NewFloat64(math.Inf(1))
	assert.Equal(t, -1, posInf.Compare(nan1), "NaN sorts above +Inf")

	negInf := NewFloat64(math.Inf(-1))
	assert.Equal(t, 1, negInf.Compare(negNan), "-NaN sorts below -Inf")
}

func TestNumberBigIntRoundtrip(t *testing.T) {
	t.Parallel()

	var v Value
	var err error
	v, _, err = ParseValue([]byte("170141183460469231731687303715884105727i128"), &Options{Allow128Bit: true})
	if assert.NoError(t, err) {
		n, ok := v.Number()
		if assert.True(t, ok) {
			assert.Equal(t, KindI128, n.Kind)
			assert.NotNil(t, n.BigInt())
		}
	}
}

func TestNumber128BitDisabledByDefault(t *testing.T) {
	t.Parallel()
	_, _, err := ParseValue([]byte("1i128"), nil)
	assert.Error(t, err)
	var perr *Error
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, KindIntegerOutOfBounds, perr.Kind)
}
