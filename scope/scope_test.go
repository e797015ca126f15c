package scope

import (
	"testing"

	"github.com/docexpr/docexpr/value"
	"github.com/stretchr/testify/assert"
)

func TestScope_LookupWalksChain(t *testing.T) {
	root := NewRoot(value.String("doc"))
	child := root.Child(map[string]value.Value{"x": value.Int(1)})
	grandchild := child.Child(map[string]value.Value{"y": value.Int(2)})

	v, ok := grandchild.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, value.Int(1), v)

	v, ok = grandchild.Lookup("y")
	assert.True(t, ok)
	assert.Equal(t, value.Int(2), v)
}

func TestScope_LookupMissingReturnsNil(t *testing.T) {
	root := NewRoot(value.Nil)
	v, ok := root.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, value.Nil, v)
}

func TestScope_ChildShadowsParent(t *testing.T) {
	root := NewRoot(value.Nil).Child(map[string]value.Value{"x": value.Int(1)})
	child := root.Child(map[string]value.Value{"x": value.Int(2)})

	v, _ := child.Lookup("x")
	assert.Equal(t, value.Int(2), v)
	v, _ = root.Lookup("x")
	assert.Equal(t, value.Int(1), v)
}

func TestScope_RootIsInheritedByChildren(t *testing.T) {
	root := NewRoot(value.String("document"))
	child := root.Child(map[string]value.Value{"x": value.Int(1)})
	grandchild := child.Child(nil)

	assert.Equal(t, value.String("document"), grandchild.Root())
}
