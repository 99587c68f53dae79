package ron

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// numLit is the fully-scanned, uninterpreted shape of one number literal:
// sign, base, the three digit runs and an optional suffix. toNumber turns
// it into a concrete [Number], narrowing or honouring the suffix.
type numLit struct {
	Span        Span
	Negative    bool
	Base        int
	IntDigits   string
	HasFrac     bool
	FracDigits  string
	HasExponent bool
	ExpNegative bool
	ExpDigits   string
	Suffix      string
	Special     string // "inf" or "nan", when the token was a keyword float
}

var numberSuffixes = map[string]NumKind{
	"i8": KindI8, "i16": KindI16, "i32": KindI32, "i64": KindI64, "i128": KindI128,
	"u8": KindU8, "u16": KindU16, "u32": KindU32, "u64": KindU64, "u128": KindU128,
	"f32": KindF32, "f64": KindF64,
}

func digitValueForBase(r rune, base int) (int, bool) {
	var v int
	switch {
	case r >= '0' && r <= '9':
		v = int(r - '0')
	case r >= 'a' && r <= 'f':
		v = int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		v = int(r-'A') + 10
	default:
		return 0, false
	}
	if v >= base {
		return 0, false
	}
	return v, true
}

// scanDigitRun scans a run of digits valid for base, with '_' permitted
// between digits (never at the start). It returns the digits with
// underscores stripped.
func (s *scanner) scanDigitRun(base int) (string, error) {
	if b, ok := s.peekByte(); ok && b == '_' {
		return "", s.errorHere(KindUnderscoreAtBeginning)
	}
	var sb strings.Builder
	sawDigit := false
	for {
		r, _, ok := s.peekRune()
		if !ok {
			break
		}
		if r == '_' {
			if !sawDigit {
				return "", s.errorHere(KindUnderscoreAtBeginning)
			}
			s.advanceRune()
			continue
		}
		if _, ok := digitValueForBase(r, base); !ok {
			break
		}
		sb.WriteRune(r)
		sawDigit = true
		s.advanceRune()
	}
	return sb.String(), nil
}

func isSuffixContinue(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// scanNumber scans one number literal, including the special float keywords
// inf/-inf/NaN, at the cursor.
func (s *scanner) scanNumber() (numLit, error) {
	startPos, startOff := s.startSpan()
	var lit numLit
	lit.Base = 10

	if b, ok := s.peekByte(); ok && (b == '+' || b == '-') {
		lit.Negative = b == '-'
		s.advanceByte()
	}

	save := *s
	if s.consumeLiteral("inf") {
		if r, _, ok := s.peekRune(); !ok || !isSuffixContinue(r) {
			lit.Special = "inf"
			lit.Span = s.span(startPos, startOff)
			return lit, nil
		}
		*s = save
	}
	if s.consumeLiteral("NaN") {
		lit.Special = "nan"
		lit.Span = s.span(startPos, startOff)
		return lit, nil
	}

	if b, ok := s.peekByte(); ok && b == '0' {
		if n, ok2 := s.peekByteAt(1); ok2 {
			switch n {
			case 'x', 'X':
				lit.Base = 16
				s.advanceBytes(2)
			case 'b':
				lit.Base = 2
				s.advanceBytes(2)
			case 'o':
				lit.Base = 8
				s.advanceBytes(2)
			}
		}
	}

	digits, err := s.scanDigitRun(lit.Base)
	if err != nil {
		return numLit{}, err
	}
	if lit.Base != 10 {
		if b, ok := s.peekByte(); ok && b >= '0' && b <= '9' {
			e := newError(KindInvalidIntegerDigit)
			e.Digit = rune(b)
			e.Base = lit.Base
			return numLit{}, s.wrapHere(e)
		}
	}
	lit.IntDigits = digits

	if lit.Base == 10 {
		if b, ok := s.peekByte(); ok && b == '.' {
			// Rust float literal rule: at least one digit on one side of
			// the dot, so both `.5` and `1.` are accepted but `.` is not.
			if n, ok2 := s.peekByteAt(1); ok2 && n == '_' {
				s.advanceByte()
				return numLit{}, s.errorHere(KindFloatUnderscore)
			}
			nextIsDigit := false
			if n, ok2 := s.peekByteAt(1); ok2 && n >= '0' && n <= '9' {
				nextIsDigit = true
			}
			if nextIsDigit || digits != "" {
				s.advanceByte()
				frac, err := s.scanDigitRun(10)
				if err != nil {
					return numLit{}, err
				}
				lit.HasFrac = true
				lit.FracDigits = frac
			}
		}
		if b, ok := s.peekByte(); ok && (b == 'e' || b == 'E') {
			save := *s
			s.advanceByte()
			neg := false
			if b2, ok := s.peekByte(); ok && (b2 == '+' || b2 == '-') {
				neg = b2 == '-'
				s.advanceByte()
			}
			expDigits, err := s.scanDigitRun(10)
			if err != nil || expDigits == "" {
				*s = save
			} else {
				lit.HasExponent = true
				lit.ExpNegative = neg
				lit.ExpDigits = expDigits
			}
		}
	}

	if lit.IntDigits == "" && !lit.HasFrac {
		return numLit{}, s.errorAt(KindExpectedInteger, startPos, startOff)
	}
	if lit.IntDigits == "" {
		lit.IntDigits = "0"
	}

	// Suffix: a maximal run of lowercase-alnum characters immediately
	// following the digits, which must exactly name a known width.
	suffixStart := s.pos
	for {
		r, _, ok := s.peekRune()
		if !ok || !isSuffixContinue(r) {
			break
		}
		s.advanceRune()
	}
	if s.pos != suffixStart {
		suffix := string(s.data[suffixStart:s.pos])
		if _, ok := numberSuffixes[suffix]; !ok {
			return numLit{}, s.errorAt(KindExpectedInteger, startPos, startOff)
		}
		lit.Suffix = suffix
	}

	lit.Span = s.span(startPos, startOff)
	return lit, nil
}

// toNumber interprets a scanned literal as a specific requested kind (when
// want != nil) or, for the untyped path, as the narrowest kind that holds it
// losslessly. allow128 gates the i128/u128 suffixes.
func (lit numLit) toNumber(want *NumKind, allow128 bool) (Number, error) {
	if lit.Special != "" {
		f := math.NaN()
		if lit.Special == "inf" {
			f = math.Inf(1)
		}
		if lit.Negative {
			if lit.Special == "inf" {
				f = math.Inf(-1)
			} else {
				f = math.Copysign(math.NaN(), -1)
			}
		}
		kind := KindF64
		if want != nil && *want == KindF32 {
			kind = KindF32
		}
		if kind == KindF32 {
			return NewFloat32(float32(f)), nil
		}
		return NewFloat64(f), nil
	}

	isFloatLiteral := lit.HasFrac || lit.HasExponent
	suffixKind, hasSuffix := numberSuffixes[lit.Suffix]

	if isFloatLiteral || (hasSuffix && suffixKind.isFloat()) || (want != nil && want.isFloat() && !hasSuffix && lit.Base == 10) {
		text := lit.floatText()
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			e := newError(KindExpectedFloat)
			return Number{}, withSpan(e, lit.Span)
		}
		kind := KindF64
		if hasSuffix {
			kind = suffixKind
		} else if want != nil && *want == KindF32 {
			kind = KindF32
		}
		if kind == KindF32 {
			return NewFloat32(float32(f)), nil
		}
		return NewFloat64(f), nil
	}

	// Integer path. Base-prefixed literals are unsigned magnitudes with an
	// optional sign applied afterwards.
	kind := suffixKind
	if !hasSuffix {
		if want != nil {
			kind = *want
		}
	}

	if kind.isBig() {
		if !allow128 {
			e := newError(KindIntegerOutOfBounds)
			e.Reason = "128-bit integers are not enabled"
			return Number{}, withSpan(e, lit.Span)
		}
		v := new(big.Int)
		if _, ok := v.SetString(lit.IntDigits, lit.Base); !ok {
			e := newError(KindIntegerOutOfBounds)
			return Number{}, withSpan(e, lit.Span)
		}
		if lit.Negative {
			v.Neg(v)
		}
		return NewBigInt(kind, v), nil
	}

	if !hasSuffix && want == nil {
		return anyNum(lit.Negative, lit.IntDigits, lit.Base, allow128, lit.Span)
	}

	magnitude, err := strconv.ParseUint(lit.IntDigits, lit.Base, 64)
	if err != nil {
		e := newError(KindIntegerOutOfBounds)
		return Number{}, withSpan(e, lit.Span)
	}

	if kind.isSigned() {
		if lit.Negative {
			if magnitude > 1<<63 {
				e := newError(KindIntegerOutOfBounds)
				return Number{}, withSpan(e, lit.Span)
			}
			v := -int64(magnitude)
			if err := checkSignedRange(kind, v); err != nil {
				return Number{}, withSpan(err, lit.Span)
			}
			return NewInt(kind, v), nil
		}
		if magnitude > math.MaxInt64 {
			e := newError(KindIntegerOutOfBounds)
			return Number{}, withSpan(e, lit.Span)
		}
		v := int64(magnitude)
		if err := checkSignedRange(kind, v); err != nil {
			return Number{}, withSpan(err, lit.Span)
		}
		return NewInt(kind, v), nil
	}

	// Unsigned.
	if lit.Negative {
		e := newError(KindIntegerOutOfBounds)
		return Number{}, withSpan(e, lit.Span)
	}
	if err := checkUnsignedRange(kind, magnitude); err != nil {
		return Number{}, withSpan(err, lit.Span)
	}
	return NewUint(kind, magnitude), nil
}

func (lit numLit) floatText() string {
	var sb strings.Builder
	if lit.Negative {
		sb.WriteByte('-')
	}
	sb.WriteString(lit.IntDigits)
	if lit.HasFrac {
		sb.WriteByte('.')
		sb.WriteString(lit.FracDigits)
	}
	if lit.HasExponent {
		sb.WriteByte('e')
		if lit.ExpNegative {
			sb.WriteByte('-')
		}
		sb.WriteString(lit.ExpDigits)
	}
	return sb.String()
}

func checkSignedRange(kind NumKind, v int64) *Error {
	var min, max int64
	switch kind {
	case KindI8:
		min, max = math.MinInt8, math.MaxInt8
	case KindI16:
		min, max = math.MinInt16, math.MaxInt16
	case KindI32:
		min, max = math.MinInt32, math.MaxInt32
	default:
		return nil
	}
	if v < min || v > max {
		return newError(KindIntegerOutOfBounds)
	}
	return nil
}

func checkUnsignedRange(kind NumKind, v uint64) *Error {
	var max uint64
	switch kind {
	case KindU8:
		max = math.MaxUint8
	case KindU16:
		max = math.MaxUint16
	case KindU32:
		max = math.MaxUint32
	default:
		return nil
	}
	if v > max {
		return newError(KindIntegerOutOfBounds)
	}
	return nil
}
