package parser

import "github.com/docexpr/docexpr/lexer"

// Binding powers, low to high, exactly spec.md §4.2's precedence table.
// Higher binds tighter. Level 8 (prefix not/unary +-) is applied in nud.
// Level 9 postfix tokens (flatten/index/filter/dot) get postfixPower from
// ledPower; a call's '(' is consumed by maybeCall, not through this table.
const (
	lowestPower      = 0
	pipePower        = 10
	orPower          = 20
	andPower         = 30
	ternaryPower     = 40
	comparisonPower  = 50
	additivePower    = 60
	multiplicativePower = 70
	prefixPower      = 80
	postfixPower     = 90
)

// ledPower returns the left-binding power of tok when it appears as an
// infix/postfix operator, or lowestPower if tok never continues an
// expression.
func ledPower(tt lexer.TokenType) int {
	switch tt {
	case lexer.Pipe:
		return pipePower
	case lexer.Or:
		return orPower
	case lexer.And:
		return andPower
	case lexer.Question:
		return ternaryPower
	case lexer.Eq, lexer.Ne, lexer.Lt, lexer.Lte, lexer.Gt, lexer.Gte:
		return comparisonPower
	case lexer.Plus, lexer.Minus:
		return additivePower
	case lexer.Star, lexer.Multiply, lexer.Divide, lexer.Div, lexer.Modulo:
		return multiplicativePower
	case lexer.Dot, lexer.LBracket, lexer.Filter, lexer.Flatten:
		return postfixPower
	default:
		return lowestPower
	}
}
