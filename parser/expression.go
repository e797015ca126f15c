package parser

import (
	"bytes"
	"fmt"

	"github.com/docexpr/docexpr/lexer"
)

// Expression is a compiled query: its source text plus the AST Parse
// produced from it. It is immutable and safe to share and reuse across
// evaluations, documents, and goroutines.
type Expression struct {
	source string
	root   Node
}

// Source returns the original text the Expression was compiled from.
func (e *Expression) Source() string { return e.source }

// Root returns the compiled AST's top-level Node.
func (e *Expression) Root() Node { return e.root }

// Compile parses text under opts and returns the resulting Expression
// without consulting or populating any cache.
func Compile(text string, opts lexer.Options) (*Expression, error) {
	root, err := Parse(text, opts)
	if err != nil {
		return nil, err
	}
	return &Expression{source: text, root: root}, nil
}

// CompileCached behaves like Compile but checks cache first and stores the
// result in cache on a miss.
func CompileCached(text string, opts lexer.Options, cache *Cache) (*Expression, error) {
	if cache == nil {
		return Compile(text, opts)
	}
	if e, ok := cache.Get(text); ok {
		return e, nil
	}
	e, err := Compile(text, opts)
	if err != nil {
		return nil, err
	}
	cache.Put(text, e)
	return e, nil
}

const indentSize = 2

// String renders the AST as an indented tree, the spirit of the teacher's
// PrintingVisitor kept as a debugging aid for the `--ast` CLI flag, but
// driven by a type switch over the sealed Node set rather than a visitor
// interface (this package's dispatch style throughout).
func (e *Expression) String() string {
	var buf bytes.Buffer
	writeNode(&buf, e.root, 0)
	return buf.String()
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth*indentSize; i++ {
		buf.WriteByte(' ')
	}
}

func writeNode(buf *bytes.Buffer, n Node, depth int) {
	writeIndent(buf, depth)
	switch node := n.(type) {
	case Current:
		buf.WriteString("Current\n")
	case Root:
		buf.WriteString("Root\n")
	case Identity:
		buf.WriteString("Identity\n")
	case Field:
		fmt.Fprintf(buf, "Field(%q)\n", node.Name)
	case Index:
		fmt.Fprintf(buf, "Index(%d)\n", node.Value)
	case Slice:
		fmt.Fprintf(buf, "Slice(%s:%s:%s)\n", fmtIntPtr(node.Start), fmtIntPtr(node.Stop), fmtIntPtr(node.Step))
	case Literal:
		fmt.Fprintf(buf, "Literal(%s)\n", node.Value.String())
	case VariableRef:
		fmt.Fprintf(buf, "VariableRef($%s)\n", node.Name)
	case Subexpression:
		buf.WriteString("Subexpression\n")
		writeNode(buf, node.Left, depth+1)
		writeNode(buf, node.Right, depth+1)
	case Projection:
		buf.WriteString("Projection\n")
		writeNode(buf, node.Left, depth+1)
		writeNode(buf, node.Right, depth+1)
	case ValueProjection:
		buf.WriteString("ValueProjection\n")
		writeNode(buf, node.Left, depth+1)
		writeNode(buf, node.Right, depth+1)
	case FilterProjection:
		buf.WriteString("FilterProjection\n")
		writeNode(buf, node.Source, depth+1)
		writeNode(buf, node.Predicate, depth+1)
		writeNode(buf, node.Continuation, depth+1)
	case Flatten:
		buf.WriteString("Flatten\n")
		writeNode(buf, node.Left, depth+1)
	case MultiSelectList:
		buf.WriteString("MultiSelectList\n")
		for _, c := range node.Children {
			writeNode(buf, c, depth+1)
		}
	case MultiSelectDict:
		buf.WriteString("MultiSelectDict\n")
		for _, entry := range node.Entries {
			writeIndent(buf, depth+1)
			fmt.Fprintf(buf, "%s:\n", entry.Key)
			writeNode(buf, entry.Value, depth+2)
		}
	case Comparator:
		fmt.Fprintf(buf, "Comparator(%s)\n", node.Op)
		writeNode(buf, node.Left, depth+1)
		writeNode(buf, node.Right, depth+1)
	case Or:
		buf.WriteString("Or\n")
		writeNode(buf, node.Left, depth+1)
		writeNode(buf, node.Right, depth+1)
	case And:
		buf.WriteString("And\n")
		writeNode(buf, node.Left, depth+1)
		writeNode(buf, node.Right, depth+1)
	case Not:
		buf.WriteString("Not\n")
		writeNode(buf, node.Child, depth+1)
	case Pipe:
		buf.WriteString("Pipe\n")
		writeNode(buf, node.Left, depth+1)
		writeNode(buf, node.Right, depth+1)
	case FunctionExpression:
		fmt.Fprintf(buf, "FunctionExpression(%s)\n", node.Name)
		for _, a := range node.Args {
			writeNode(buf, a, depth+1)
		}
	case Expref:
		buf.WriteString("Expref\n")
		writeNode(buf, node.Child, depth+1)
	case Arithmetic:
		fmt.Fprintf(buf, "Arithmetic(%s)\n", node.Op)
		writeNode(buf, node.Left, depth+1)
		writeNode(buf, node.Right, depth+1)
	case ArithmeticUnary:
		fmt.Fprintf(buf, "ArithmeticUnary(%s)\n", node.Op)
		writeNode(buf, node.Child, depth+1)
	case LetExpression:
		buf.WriteString("LetExpression\n")
		for _, b := range node.Bindings {
			writeIndent(buf, depth+1)
			fmt.Fprintf(buf, "$%s =\n", b.Name)
			writeNode(buf, b.Expr, depth+2)
		}
		writeNode(buf, node.Body, depth+1)
	case Ternary:
		buf.WriteString("Ternary\n")
		writeNode(buf, node.Cond, depth+1)
		writeNode(buf, node.Then, depth+1)
		writeNode(buf, node.Else, depth+1)
	default:
		fmt.Fprintf(buf, "%T\n", node)
	}
}

func fmtIntPtr(p *int64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%d", *p)
}
