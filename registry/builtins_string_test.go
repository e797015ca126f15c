package registry

import (
	"testing"

	"github.com/docexpr/docexpr/value"
	"github.com/stretchr/testify/assert"
)

func TestBuiltin_Contains_ArrayAndString(t *testing.T) {
	assert.Equal(t, value.True, call(t, "contains", value.Array{value.Int(1), value.Int(2)}, value.Int(2)))
	assert.Equal(t, value.False, call(t, "contains", value.Array{value.Int(1)}, value.Int(2)))
	assert.Equal(t, value.True, call(t, "contains", value.String("hello"), value.String("ell")))
}

func TestBuiltin_StartsEndsWith(t *testing.T) {
	assert.Equal(t, value.True, call(t, "starts_with", value.String("hello"), value.String("he")))
	assert.Equal(t, value.True, call(t, "ends_with", value.String("hello"), value.String("lo")))
}

func TestBuiltin_JoinSplit(t *testing.T) {
	joined := call(t, "join", value.String(","), value.Array{value.String("a"), value.String("b")})
	assert.Equal(t, value.String("a,b"), joined)

	split := call(t, "split", value.String("a,b,c"), value.String(","))
	assert.Equal(t, value.Array{value.String("a"), value.String("b"), value.String("c")}, split)
}

func TestBuiltin_Join_RejectsNonStringElements(t *testing.T) {
	r := NewRegistry()
	_, err := r.Call(noopInvoker{}, "join", []value.Value{value.String(","), value.Array{value.Int(1)}})
	assert.Error(t, err)
}

func TestBuiltin_LowerUpperTrim(t *testing.T) {
	assert.Equal(t, value.String("abc"), call(t, "lower", value.String("ABC")))
	assert.Equal(t, value.String("ABC"), call(t, "upper", value.String("abc")))
	assert.Equal(t, value.String("x"), call(t, "trim", value.String("  x  ")))
}

func TestBuiltin_PadLeftRight(t *testing.T) {
	assert.Equal(t, value.String("00x"), call(t, "pad_left", value.String("x"), value.Int(3), value.String("0")))
	assert.Equal(t, value.String("x00"), call(t, "pad_right", value.String("x"), value.Int(3), value.String("0")))
}

func TestBuiltin_Replace(t *testing.T) {
	assert.Equal(t, value.String("hexxo"), call(t, "replace", value.String("hello"), value.String("ll"), value.String("xx")))
}

func TestBuiltin_FindFirstLast(t *testing.T) {
	assert.Equal(t, value.Int(1), call(t, "find_first", value.String("abcabc"), value.String("b")))
	assert.Equal(t, value.Int(4), call(t, "find_last", value.String("abcabc"), value.String("b")))
	assert.Equal(t, value.Nil, call(t, "find_first", value.String("abc"), value.String("z")))
}

func TestBuiltin_ToString(t *testing.T) {
	assert.Equal(t, value.String("x"), call(t, "to_string", value.String("x")))
	assert.Equal(t, value.String("5"), call(t, "to_string", value.Int(5)))
}
