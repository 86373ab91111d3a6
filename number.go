package parsec

import "math"

// NumberKind tags the arm of the Number tagged union produced by Number().
type NumberKind int

const (
	NumberInt NumberKind = iota
	NumberFloat
)

// Number is the tagged-union result of Number(): either an integer or a
// floating-point value, never both.
type Number struct {
	Kind       NumberKind
	IntValue   int64
	FloatValue float64
}

func digitValue(d rune) int64 {
	switch {
	case d >= '0' && d <= '9':
		return int64(d - '0')
	case d >= 'a' && d <= 'f':
		return int64(d-'a') + 10
	case d >= 'A' && d <= 'F':
		return int64(d-'A') + 10
	default:
		return 0
	}
}

func parseBaseDigits(ds []rune, base int64) int64 {
	var v int64
	for _, d := range ds {
		v = v*base + digitValue(d)
	}
	return v
}

// digitsToInt folds digits in the given base into an int64, failing with
// "integer overflow" rather than silently wrapping.
func digitsToInt[U any](digits Parser[rune, U, []rune], base int64) Parser[rune, U, int64] {
	return Bind(digits, func(ds []rune) Parser[rune, U, int64] {
		var v int64
		for _, d := range ds {
			dv := digitValue(d)
			if v > (math.MaxInt64-dv)/base {
				return Fail[rune, U, int64]("integer overflow")
			}
			v = v*base + dv
		}
		return Return[rune, U, int64](v)
	})
}

// pow10 computes 10^exp without ever calling a library pow with a negative
// exponent: negative exponents are the reciprocal of the positive-exponent
// power, computed by repeated squaring, per spec.md §9's bit-for-bit
// reproducibility note.
func pow10(exp int) float64 {
	if exp < 0 {
		return 1 / pow10(-exp)
	}
	result := 1.0
	base := 10.0
	for e := exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			result *= base
		}
		base *= base
	}
	return result
}

func applyExponent(mantissa float64, exp int) float64 {
	return mantissa * pow10(exp)
}

// fractionFromDigits folds fractional digits right-associatively
// (d1/10 + (d2/10 + (... + dn/10)/10)/10) rather than left-to-right, to
// avoid compounding floating-point error, per spec.md §9.
func fractionFromDigits(ds []rune) float64 {
	var acc float64
	for i := len(ds) - 1; i >= 0; i-- {
		acc = (float64(digitValue(ds[i])) + acc) / 10
	}
	return acc
}

func intSign[U any]() Parser[rune, U, int] {
	return Alt(
		Map(Character[U]('-'), func(rune) int { return -1 }),
		Alt(
			Map(Character[U]('+'), func(rune) int { return 1 }),
			Return[rune, U, int](1),
		),
	)
}

// naturalRaw parses an optional base prefix (0x/0X hex, 0o/0O octal, bare
// leading 0 decimal-zero fallback) followed by digits in the chosen base.
func (tp *TokenParser[U]) naturalRaw() Parser[rune, U, int64] {
	zeroPrefixed := Bind(Character[U]('0'), func(rune) Parser[rune, U, int64] {
		hex := Bind(OneOf[U]("xX"), func(rune) Parser[rune, U, int64] {
			return digitsToInt[U](Many1(HexDigitChar[U]()), 16)
		})
		oct := Bind(OneOf[U]("oO"), func(rune) Parser[rune, U, int64] {
			return digitsToInt[U](Many1(OctDigitChar[U]()), 8)
		})
		dec := Alt(digitsToInt[U](Many1(DigitChar[U]()), 10), Return[rune, U, int64](0))
		return Choice([]Parser[rune, U, int64]{hex, oct, dec})
	})
	bare := digitsToInt[U](Many1(DigitChar[U]()), 10)
	return Alt(zeroPrefixed, bare)
}

// Natural is the lexeme wrapping naturalRaw.
func (tp *TokenParser[U]) Natural() Parser[rune, U, int64] {
	return Lexeme[U, int64](tp, tp.naturalRaw())
}

func (tp *TokenParser[U]) integerRaw() Parser[rune, U, int64] {
	return Bind(intSign[U](), func(s int) Parser[rune, U, int64] {
		return Map(tp.naturalRaw(), func(n int64) int64 { return int64(s) * n })
	})
}

// Integer is Natural with an optional leading sign.
func (tp *TokenParser[U]) Integer() Parser[rune, U, int64] {
	return Lexeme[U, int64](tp, tp.integerRaw())
}

func (tp *TokenParser[U]) exponentRaw() Parser[rune, U, int] {
	return Bind(OneOf[U]("eE"), func(rune) Parser[rune, U, int] {
		return Bind(intSign[U](), func(s int) Parser[rune, U, int] {
			return Map(digitsToInt[U](Many1(DigitChar[U]()), 10), func(v int64) int { return s * int(v) })
		})
	})
}

// IntegerAsFloat parses a signed integer with an optional exponent
// (no mandatory fractional part), returning a float64 — the "exponent-only"
// numeric form spec.md §4.6 calls out.
func (tp *TokenParser[U]) IntegerAsFloat() Parser[rune, U, float64] {
	return Lexeme[U, float64](tp, Bind(tp.integerRaw(), func(n int64) Parser[rune, U, float64] {
		return Map(Option(tp.exponentRaw(), 0), func(exp int) float64 { return applyExponent(float64(n), exp) })
	}))
}

func (tp *TokenParser[U]) floatRaw() Parser[rune, U, float64] {
	return Bind(intSign[U](), func(sgn int) Parser[rune, U, float64] {
		return Bind(Many1(DigitChar[U]()), func(intDigits []rune) Parser[rune, U, float64] {
			var ip float64
			for _, d := range intDigits {
				ip = ip*10 + float64(digitValue(d))
			}
			return Bind(Character[U]('.'), func(rune) Parser[rune, U, float64] {
				return Bind(Many1(DigitChar[U]()), func(fracDigits []rune) Parser[rune, U, float64] {
					mantissa := float64(sgn) * (ip + fractionFromDigits(fracDigits))
					return Map(Option(tp.exponentRaw(), 0), func(exp int) float64 { return applyExponent(mantissa, exp) })
				})
			})
		})
	})
}

// Float requires an integer part, a mandatory fractional part introduced
// by '.', and an optional exponent.
func (tp *TokenParser[U]) Float() Parser[rune, U, float64] {
	return Lexeme[U, float64](tp, tp.floatRaw())
}

// Number is the tagged union attempt(float) <|> integer: a bare digit run
// is ambiguous between the two shapes until a '.' or exponent marker is
// seen (or the input ends), which is exactly why attempt is required here.
func (tp *TokenParser[U]) Number() Parser[rune, U, Number] {
	asFloat := Map(tp.floatRaw(), func(f float64) Number { return Number{Kind: NumberFloat, FloatValue: f} })
	asInt := Map(tp.integerRaw(), func(n int64) Number { return Number{Kind: NumberInt, IntValue: n} })
	return Lexeme[U, Number](tp, Alt(Attempt(asFloat), asInt))
}

// Decimal, Hexadecimal, and Octal are single-base digit-run lexemes,
// distinct from Natural's prefix-sniffing: Hexadecimal/Octal still require
// their conventional "0x"/"0o" marker.
func (tp *TokenParser[U]) Decimal() Parser[rune, U, int64] {
	return Lexeme[U, int64](tp, digitsToInt[U](Many1(DigitChar[U]()), 10))
}

func (tp *TokenParser[U]) Hexadecimal() Parser[rune, U, int64] {
	return Lexeme[U, int64](tp, Bind(Character[U]('0'), func(rune) Parser[rune, U, int64] {
		return Bind(OneOf[U]("xX"), func(rune) Parser[rune, U, int64] {
			return digitsToInt[U](Many1(HexDigitChar[U]()), 16)
		})
	}))
}

func (tp *TokenParser[U]) Octal() Parser[rune, U, int64] {
	return Lexeme[U, int64](tp, Bind(Character[U]('0'), func(rune) Parser[rune, U, int64] {
		return Bind(OneOf[U]("oO"), func(rune) Parser[rune, U, int64] {
			return digitsToInt[U](Many1(OctDigitChar[U]()), 8)
		})
	}))
}
