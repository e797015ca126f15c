package registry

import (
	"testing"

	"github.com/docexpr/docexpr/errs"
	"github.com/docexpr/docexpr/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noopInvoker is used by tests that don't exercise the higher-order
// builtins (map/sort_by/max_by/min_by/group_by).
type noopInvoker struct{}

func (noopInvoker) Invoke(ref value.Value, arg value.Value) (value.Value, error) {
	return value.Nil, nil
}

func TestRegistry_CallUnknownFunction(t *testing.T) {
	r := NewEmptyRegistry()
	_, err := r.Call(noopInvoker{}, "nope", nil)
	require.Error(t, err)
	var unknown *errs.UnknownFunction
	assert.ErrorAs(t, err, &unknown)
}

func TestRegistry_CallArityMismatch(t *testing.T) {
	r := NewRegistry()
	_, err := r.Call(noopInvoker{}, "abs", []value.Value{})
	require.Error(t, err)
	var arityErr *errs.InvalidArity
	assert.ErrorAs(t, err, &arityErr)
}

func TestRegistry_VariadicAcceptsMinOrMore(t *testing.T) {
	r := NewRegistry()
	v, err := r.Call(noopInvoker{}, "not_null", []value.Value{value.Nil, value.Nil, value.Int(3)})
	require.NoError(t, err)
	assert.Equal(t, value.Int(3), v)
}

func TestRegistry_Merge_OverlayShadowsBase(t *testing.T) {
	base := NewRegistry()
	overlay := NewEmptyRegistry()
	overlay.Register(&Builtin{
		Name: "abs",
		Sig:  Signature{Params: []ParamSpec{{Types: []ParamType{TAny}}}},
		Call: func(_ Invoker, args []value.Value) (value.Value, error) {
			return value.String("overridden"), nil
		},
	})
	merged := Merge(base, overlay)

	v, err := merged.Call(noopInvoker{}, "abs", []value.Value{value.Int(-1)})
	require.NoError(t, err)
	assert.Equal(t, value.String("overridden"), v)

	// names not present in overlay still resolve to base.
	v, err = merged.Call(noopInvoker{}, "floor", []value.Value{value.Float(1.5)})
	require.NoError(t, err)
	assert.Equal(t, value.Int(1), v)
}

func TestRegistry_Merge_NilOverlay(t *testing.T) {
	base := NewRegistry()
	merged := Merge(base, nil)
	_, ok := merged.Lookup("abs")
	assert.True(t, ok)
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	names := r.Names()
	assert.Contains(t, names, "abs")
	assert.Contains(t, names, "sort_by")
	assert.Contains(t, names, "length")
}
