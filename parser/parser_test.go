package parser

import (
	"testing"

	"github.com/docexpr/docexpr/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) Node {
	t.Helper()
	n, err := Parse(src, lexer.Options{})
	require.NoError(t, err)
	return n
}

func TestParse_FieldChain(t *testing.T) {
	n := mustParse(t, "a.b.c")
	sub, ok := n.(Subexpression)
	require.True(t, ok)
	assert.Equal(t, Field{Name: "c"}, sub.Right)
	inner, ok := sub.Left.(Subexpression)
	require.True(t, ok)
	assert.Equal(t, Field{Name: "a"}, inner.Left)
	assert.Equal(t, Field{Name: "b"}, inner.Right)
}

func TestParse_Index(t *testing.T) {
	n := mustParse(t, "a[0]")
	sub, ok := n.(Subexpression)
	require.True(t, ok)
	assert.Equal(t, Field{Name: "a"}, sub.Left)
	assert.Equal(t, Index{Value: 0}, sub.Right)
}

func TestParse_NegativeIndex(t *testing.T) {
	n := mustParse(t, "a[-1]")
	sub := n.(Subexpression)
	assert.Equal(t, Index{Value: -1}, sub.Right)
}

func TestParse_Slice(t *testing.T) {
	n := mustParse(t, "a[1:4:2]")
	sub := n.(Subexpression)
	sl, ok := sub.Right.(Slice)
	require.True(t, ok)
	require.NotNil(t, sl.Start)
	require.NotNil(t, sl.Stop)
	require.NotNil(t, sl.Step)
	assert.Equal(t, int64(1), *sl.Start)
	assert.Equal(t, int64(4), *sl.Stop)
	assert.Equal(t, int64(2), *sl.Step)
}

func TestParse_Slice_OmittedComponents(t *testing.T) {
	n := mustParse(t, "a[:4]")
	sub := n.(Subexpression)
	sl := sub.Right.(Slice)
	assert.Nil(t, sl.Start)
	require.NotNil(t, sl.Stop)
	assert.Equal(t, int64(4), *sl.Stop)
	assert.Nil(t, sl.Step)
}

func TestParse_WildcardProjection(t *testing.T) {
	n := mustParse(t, "a[*].b")
	proj, ok := n.(Projection)
	require.True(t, ok)
	assert.Equal(t, Field{Name: "a"}, proj.Left)
	assert.Equal(t, Field{Name: "b"}, proj.Right)
}

func TestParse_ProjectionStopsAtComparison(t *testing.T) {
	// a[*].b > 5 must compare the whole projected array, not element-wise:
	// the projection RHS absorbs only postfix tokens (Dot/Index/Filter/
	// Flatten), so the comparator sits above the projection in the tree.
	n := mustParse(t, "a[*].b > `5`")
	cmp, ok := n.(Comparator)
	require.True(t, ok)
	assert.Equal(t, OpGt, cmp.Op)
	_, ok = cmp.Left.(Projection)
	assert.True(t, ok, "left of comparator should be the whole projection")
}

func TestParse_ObjectValueProjection(t *testing.T) {
	n := mustParse(t, "a.*.b")
	proj, ok := n.(ValueProjection)
	require.True(t, ok)
	assert.Equal(t, Field{Name: "a"}, proj.Left)
	assert.Equal(t, Field{Name: "b"}, proj.Right)
}

func TestParse_Flatten(t *testing.T) {
	n := mustParse(t, "a[]")
	proj, ok := n.(Projection)
	require.True(t, ok)
	assert.Equal(t, Flatten{Left: Field{Name: "a"}}, proj.Left)
	assert.Equal(t, Identity{}, proj.Right)
}

func TestParse_FilterProjection(t *testing.T) {
	n := mustParse(t, "a[?b == `1`].c")
	fp, ok := n.(FilterProjection)
	require.True(t, ok)
	assert.Equal(t, Field{Name: "a"}, fp.Source)
	_, ok = fp.Predicate.(Comparator)
	assert.True(t, ok)
	assert.Equal(t, Field{Name: "c"}, fp.Continuation)
}

func TestParse_MultiSelectList(t *testing.T) {
	n := mustParse(t, "[a, b, c]")
	ms, ok := n.(MultiSelectList)
	require.True(t, ok)
	require.Len(t, ms.Children, 3)
	assert.Equal(t, Field{Name: "a"}, ms.Children[0])
}

func TestParse_MultiSelectDict(t *testing.T) {
	n := mustParse(t, "{x: a, y: b}")
	ms, ok := n.(MultiSelectDict)
	require.True(t, ok)
	require.Len(t, ms.Entries, 2)
	assert.Equal(t, "x", ms.Entries[0].Key)
	assert.Equal(t, Field{Name: "a"}, ms.Entries[0].Value)
}

func TestParse_MultiSelectDict_DuplicateKeyRejected(t *testing.T) {
	_, err := Parse("{x: a, x: b}", lexer.Options{})
	require.Error(t, err)
}

func TestParse_FunctionCall(t *testing.T) {
	n := mustParse(t, "length(a)")
	fn, ok := n.(FunctionExpression)
	require.True(t, ok)
	assert.Equal(t, "length", fn.Name)
	require.Len(t, fn.Args, 1)
	assert.Equal(t, Field{Name: "a"}, fn.Args[0])
}

func TestParse_DottedFunctionCall(t *testing.T) {
	n := mustParse(t, "a.length()")
	sub, ok := n.(Subexpression)
	require.True(t, ok)
	fn, ok := sub.Right.(FunctionExpression)
	require.True(t, ok)
	assert.Equal(t, "length", fn.Name)
	assert.Empty(t, fn.Args)
}

func TestParse_Expref(t *testing.T) {
	n := mustParse(t, "sort_by(a, &b)")
	fn := n.(FunctionExpression)
	require.Len(t, fn.Args, 2)
	ref, ok := fn.Args[1].(Expref)
	require.True(t, ok)
	assert.Equal(t, Field{Name: "b"}, ref.Child)
}

func TestParse_Pipe(t *testing.T) {
	n := mustParse(t, "a | b")
	p, ok := n.(Pipe)
	require.True(t, ok)
	assert.Equal(t, Field{Name: "a"}, p.Left)
	assert.Equal(t, Field{Name: "b"}, p.Right)
}

func TestParse_OrAndAndPrecedence(t *testing.T) {
	// && binds tighter than ||: a || b && c == a || (b && c).
	n := mustParse(t, "a || b && c")
	or, ok := n.(Or)
	require.True(t, ok)
	assert.Equal(t, Field{Name: "a"}, or.Left)
	and, ok := or.Right.(And)
	require.True(t, ok)
	assert.Equal(t, Field{Name: "b"}, and.Left)
	assert.Equal(t, Field{Name: "c"}, and.Right)
}

func TestParse_Not(t *testing.T) {
	n := mustParse(t, "!a")
	not, ok := n.(Not)
	require.True(t, ok)
	assert.Equal(t, Field{Name: "a"}, not.Child)
}

func TestParse_Arithmetic_PrecedenceAndAssociativity(t *testing.T) {
	// a + b * c == a + (b * c)
	n := mustParse(t, "a + b * c")
	add, ok := n.(Arithmetic)
	require.True(t, ok)
	assert.Equal(t, ArithAdd, add.Op)
	assert.Equal(t, Field{Name: "a"}, add.Left)
	mul, ok := add.Right.(Arithmetic)
	require.True(t, ok)
	assert.Equal(t, ArithMul, mul.Op)
}

func TestParse_ArithmeticUnary(t *testing.T) {
	n := mustParse(t, "-a")
	u, ok := n.(ArithmeticUnary)
	require.True(t, ok)
	assert.Equal(t, ArithSub, u.Op)
	assert.Equal(t, Field{Name: "a"}, u.Child)
}

func TestParse_BareNumberIsError(t *testing.T) {
	// bare numeric literals are only valid inside [...] index context.
	_, err := Parse("5", lexer.Options{})
	require.Error(t, err)
}

func TestParse_Ternary(t *testing.T) {
	n := mustParse(t, "a ? b : c")
	tern, ok := n.(Ternary)
	require.True(t, ok)
	assert.Equal(t, Field{Name: "a"}, tern.Cond)
	assert.Equal(t, Field{Name: "b"}, tern.Then)
	assert.Equal(t, Field{Name: "c"}, tern.Else)
}

func TestParse_Let_SequentialBindings(t *testing.T) {
	n := mustParse(t, "let $x = `1`, $y = $x in $y")
	let, ok := n.(LetExpression)
	require.True(t, ok)
	require.Len(t, let.Bindings, 2)
	assert.Equal(t, "x", let.Bindings[0].Name)
	assert.Equal(t, "y", let.Bindings[1].Name)
	ref, ok := let.Bindings[1].Expr.(VariableRef)
	require.True(t, ok)
	assert.Equal(t, "x", ref.Name)
	body, ok := let.Body.(VariableRef)
	require.True(t, ok)
	assert.Equal(t, "y", body.Name)
}

func TestParse_RootAndCurrent(t *testing.T) {
	n := mustParse(t, "$")
	assert.Equal(t, Root{}, n)

	n = mustParse(t, "@")
	assert.Equal(t, Current{}, n)
}

func TestParse_VariableRef(t *testing.T) {
	n := mustParse(t, "$foo")
	assert.Equal(t, VariableRef{Name: "foo"}, n)
}

func TestParse_QuotedIdentifierField(t *testing.T) {
	n := mustParse(t, `"field name"`)
	assert.Equal(t, Field{Name: "field name"}, n)
}

func TestParse_Literal(t *testing.T) {
	n := mustParse(t, "`42`")
	lit, ok := n.(Literal)
	require.True(t, ok)
	assert.Equal(t, "42", lit.Value.String())
}

func TestParse_EmptyExpressionIsError(t *testing.T) {
	_, err := Parse("", lexer.Options{})
	require.Error(t, err)
}

func TestParse_MismatchedBracketIsError(t *testing.T) {
	_, err := Parse("a[0", lexer.Options{})
	require.Error(t, err)
}

func TestCache_EvictsAllOnOverflow(t *testing.T) {
	c := NewCache(2)
	e1, err := CompileCached("a", lexer.Options{}, c)
	require.NoError(t, err)
	_, err = CompileCached("b", lexer.Options{}, c)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = CompileCached("c", lexer.Options{}, c)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len(), "overflow should evict all prior entries")

	got, ok := c.Get("a")
	assert.False(t, ok)
	assert.Nil(t, got)
	_ = e1
}

func TestCache_HitsReturnSameExpression(t *testing.T) {
	c := NewCache(DefaultCacheCapacity)
	e1, err := CompileCached("a.b", lexer.Options{}, c)
	require.NoError(t, err)
	e2, err := CompileCached("a.b", lexer.Options{}, c)
	require.NoError(t, err)
	assert.Same(t, e1, e2)
}

func TestCache_FreeCacheEntries(t *testing.T) {
	c := NewCache(DefaultCacheCapacity)
	_, err := CompileCached("a.b", lexer.Options{}, c)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	c.FreeCacheEntries()
	assert.Equal(t, 0, c.Len())
}

func TestExpression_StringPrintsTree(t *testing.T) {
	e, err := Compile("a.b", lexer.Options{})
	require.NoError(t, err)
	s := e.String()
	assert.NotEmpty(t, s)
	assert.Equal(t, "a.b", e.Source())
}
