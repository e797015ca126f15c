package value

import (
	"math"
	"strconv"
)

// Number is either an exact int64 or a float64. Arithmetic that would
// overflow int64 demotes to float, per SPEC_FULL.md §3.
type Number struct {
	isInt bool
	i     int64
	f     float64
}

func (n Number) Kind() Kind { return KindNumber }

func (n Number) String() string {
	if n.isInt {
		return strconv.FormatInt(n.i, 10)
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

func (n Number) GoString() string { return n.String() }

// Int constructs an exact integer Number.
func Int(i int64) Number { return Number{isInt: true, i: i} }

// Float constructs a floating-point Number.
func Float(f float64) Number { return Number{f: f} }

// IsInt reports whether n holds an exact int64.
func (n Number) IsInt() bool { return n.isInt }

// Int64 returns the exact integer value. Only meaningful when IsInt().
func (n Number) Int64() int64 { return n.i }

// Float64 returns n widened to float64, regardless of variant.
func (n Number) Float64() float64 {
	if n.isInt {
		return float64(n.i)
	}
	return n.f
}

// AsNumber type-asserts v as a Number, reporting ok=false otherwise.
func AsNumber(v Value) (Number, bool) {
	n, ok := v.(Number)
	return n, ok
}

// Add, Sub, Mul combine two numbers, demoting to float on int64 overflow.
// Overflow checks use the standard two's-complement sign trick: the sum
// overflowed iff both operands share a sign that differs from the result's.
func Add(a, b Number) Number {
	if a.isInt && b.isInt {
		sum := a.i + b.i
		if ((a.i ^ sum) & (b.i ^ sum)) < 0 {
			return Float(float64(a.i) + float64(b.i))
		}
		return Int(sum)
	}
	return Float(a.Float64() + b.Float64())
}

func Sub(a, b Number) Number {
	if a.isInt && b.isInt {
		diff := a.i - b.i
		if ((a.i ^ b.i) & (a.i ^ diff)) < 0 {
			return Float(float64(a.i) - float64(b.i))
		}
		return Int(diff)
	}
	return Float(a.Float64() - b.Float64())
}

func Mul(a, b Number) Number {
	if a.isInt && b.isInt {
		if a.i == 0 || b.i == 0 {
			return Int(0)
		}
		prod := a.i * b.i
		if prod/b.i == a.i && !(a.i == math.MinInt64 && b.i == -1) {
			return Int(prod)
		}
		return Float(float64(a.i) * float64(b.i))
	}
	return Float(a.Float64() * b.Float64())
}

// FloorDiv implements the "//" operator: floor division. The caller must
// have already rejected a zero divisor.
func FloorDiv(a, b Number) Number {
	if a.isInt && b.isInt && b.i != 0 {
		q := a.i / b.i
		if (a.i%b.i != 0) && ((a.i < 0) != (b.i < 0)) {
			q--
		}
		return Int(q)
	}
	return Float(math.Floor(a.Float64() / b.Float64()))
}

// Mod implements "%" with the sign of the divisor, matching Python-style
// modulo (spec.md §8 scenario: 10 % -3 == -2).
func Mod(a, b Number) Number {
	if a.isInt && b.isInt && b.i != 0 {
		r := a.i % b.i
		if r != 0 && (r < 0) != (b.i < 0) {
			r += b.i
		}
		return Int(r)
	}
	af, bf := a.Float64(), b.Float64()
	r := math.Mod(af, bf)
	if r != 0 && (r < 0) != (bf < 0) {
		r += bf
	}
	return Float(r)
}

// Compare returns -1, 0, or 1 comparing two numbers, total across the
// int/float domain.
func Compare(a, b Number) int {
	af, bf := a.Float64(), b.Float64()
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}
