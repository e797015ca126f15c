package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd_IntOverflowDemotesToFloat(t *testing.T) {
	a := Int(math.MaxInt64)
	b := Int(1)
	sum := Add(a, b)
	assert.False(t, sum.IsInt())
	assert.Equal(t, float64(math.MaxInt64)+1, sum.Float64())
}

func TestAdd_NoOverflowStaysInt(t *testing.T) {
	sum := Add(Int(2), Int(3))
	assert.True(t, sum.IsInt())
	assert.Equal(t, int64(5), sum.Int64())
}

func TestSub_IntUnderflowDemotesToFloat(t *testing.T) {
	diff := Sub(Int(math.MinInt64), Int(1))
	assert.False(t, diff.IsInt())
}

func TestMul_IntOverflowDemotesToFloat(t *testing.T) {
	big := Int(math.MaxInt64 / 2)
	prod := Mul(big, Int(3))
	assert.False(t, prod.IsInt())
}

func TestMul_ZeroShortCircuits(t *testing.T) {
	prod := Mul(Int(0), Int(math.MaxInt64))
	assert.True(t, prod.IsInt())
	assert.Equal(t, int64(0), prod.Int64())
}

func TestFloorDiv(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{7, 2, 3},
		{-7, 2, -4},
		{7, -2, -4},
		{-7, -2, 3},
	}
	for _, tc := range cases {
		got := FloorDiv(Int(tc.a), Int(tc.b))
		assert.Equal(t, tc.want, got.Int64(), "%d // %d", tc.a, tc.b)
	}
}

func TestMod_SignOfDivisor(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{10, 3, 1},
		{10, -3, -2},
		{-10, 3, 2},
		{-10, -3, -1},
	}
	for _, tc := range cases {
		got := Mod(Int(tc.a), Int(tc.b))
		assert.Equal(t, tc.want, got.Int64(), "%d %% %d", tc.a, tc.b)
	}
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, Compare(Int(1), Float(2.5)))
	assert.Equal(t, 0, Compare(Int(2), Float(2.0)))
	assert.Equal(t, 1, Compare(Float(3.5), Int(3)))
}

func TestAsNumber(t *testing.T) {
	n, ok := AsNumber(Int(5))
	assert.True(t, ok)
	assert.Equal(t, int64(5), n.Int64())

	_, ok = AsNumber(String("5"))
	assert.False(t, ok)
}

func TestNumber_String(t *testing.T) {
	assert.Equal(t, "5", Int(5).String())
	assert.Equal(t, "2.5", Float(2.5).String())
}
