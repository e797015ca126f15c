package docexpr

import (
	"github.com/docexpr/docexpr/eval"
	"github.com/docexpr/docexpr/parser"
	"github.com/docexpr/docexpr/registry"
	"github.com/docexpr/docexpr/value"
)

// defaultCache backs every Compile call that doesn't supply WithCache,
// so repeated top-level Search calls over the same source text reuse one
// parse across the whole process.
var defaultCache = parser.NewCache(parser.DefaultCacheCapacity)

// Expression is a compiled query ready to run against any number of
// documents. Compile it once and reuse it; construction is the only step
// that touches the cache or does real parsing work.
type Expression struct {
	compiled *parser.Expression
	opts     Options
}

// Compile parses text into a reusable Expression. An empty text returns
// errs.EmptyExpression; malformed text returns errs.LexerError or
// errs.ParseError.
func Compile(text string, opts ...Option) (*Expression, error) {
	o := resolve(opts)
	cache := o.cache
	if cache == nil {
		cache = defaultCache
	}
	compiled, err := parser.CompileCached(text, o.lexerOptions(), cache)
	if err != nil {
		return nil, err
	}
	return &Expression{compiled: compiled, opts: o}, nil
}

// Search evaluates the compiled expression against document.
func (e *Expression) Search(document value.Value) (value.Value, error) {
	ev := eval.New(e.functions(), e.opts.newObjectFunc())
	return ev.Search(e.compiled, document)
}

// String renders the compiled AST as an indented tree, for the `--ast`
// CLI flag and for debugging.
func (e *Expression) String() string {
	return e.compiled.String()
}

// Source returns the original query text.
func (e *Expression) Source() string {
	return e.compiled.Source()
}

func (e *Expression) functions() *registry.Registry {
	base := builtins
	if e.opts.functions == nil {
		return base
	}
	return registry.Merge(base, e.opts.functions)
}

// builtins is the shared, read-only built-in function registry every
// Expression falls back to.
var builtins = registry.NewRegistry()

// Search is the one-shot convenience form: compile text (consulting the
// shared default cache) and immediately evaluate it against document.
func Search(text string, document value.Value, opts ...Option) (value.Value, error) {
	expr, err := Compile(text, opts...)
	if err != nil {
		return nil, err
	}
	return expr.Search(document)
}
