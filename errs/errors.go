// Package errs defines the five externally visible error kinds the query
// engine can raise (SPEC_FULL.md §8 / spec.md §7): syntax errors (lexer or
// parser), invalid-type, invalid-arity, unknown-function, and
// invalid-value. It has no dependencies on any other package in this
// module so that the lexer, parser, registry and evaluator can all raise
// these errors without an import cycle through the root package.
package errs

import "fmt"

// EmptyExpression is returned by Compile when given empty source text.
type EmptyExpression struct{}

func (e *EmptyExpression) Error() string { return "empty expression" }

// LexerError reports a scanning failure at a specific byte offset.
type LexerError struct {
	Offset int
	Char   rune
	Reason string
}

func (e *LexerError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("syntax error at offset %d: unexpected character %q", e.Offset, e.Char)
}

// ParseError reports a parser failure. Expected, when non-empty, names what
// the parser was looking for at the point of failure.
type ParseError struct {
	Offset   int
	Token    string
	Expected string
}

func (e *ParseError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("syntax error at offset %d: unexpected token %s, expected %s", e.Offset, e.Token, e.Expected)
	}
	return fmt.Sprintf("syntax error at offset %d: unexpected token %s", e.Offset, e.Token)
}

// InvalidType reports a runtime type mismatch: a builtin argument of the
// wrong kind. Arithmetic and comparison operands of the wrong kind yield
// null instead.
type InvalidType struct {
	Function string
	ArgIndex int
	Expected string
	Got      string
}

func (e *InvalidType) Error() string {
	if e.Function == "" {
		return fmt.Sprintf("invalid type: expected %s, got %s", e.Expected, e.Got)
	}
	return fmt.Sprintf("invalid type for argument %d of %s(): expected %s, got %s", e.ArgIndex, e.Function, e.Expected, e.Got)
}

// InvalidArity reports a builtin called with the wrong argument count.
type InvalidArity struct {
	Function string
	Expected string
	Got      int
}

func (e *InvalidArity) Error() string {
	return fmt.Sprintf("invalid arity for %s(): expected %s, got %d", e.Function, e.Expected, e.Got)
}

// UnknownFunction reports a call to a name with no registered builtin or
// custom function.
type UnknownFunction struct {
	Function string
}

func (e *UnknownFunction) Error() string {
	return fmt.Sprintf("unknown function: %s", e.Function)
}

// InvalidValue reports a runtime value that is well-typed but
// semantically unusable: divide by zero, slice step 0, a failed numeric
// conversion, sorting heterogeneous items, and similar.
type InvalidValue struct {
	Reason string
}

func (e *InvalidValue) Error() string {
	return fmt.Sprintf("invalid value: %s", e.Reason)
}
