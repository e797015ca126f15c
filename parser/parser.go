package parser

import (
	"strconv"

	"github.com/docexpr/docexpr/errs"
	"github.com/docexpr/docexpr/lexer"
	"github.com/docexpr/docexpr/value"
)

// Parser is a Pratt (operator-precedence) parser, grounded on the
// teacher's registered-nud/led-function-table shape
// (parser/parser_precedence.go's registerUnaryFuncs/registerBinaryFuncs)
// but specialized to this language's fixed grammar rather than a
// user-extensible one.
type Parser struct {
	lex      *lexer.Lexer
	cur      lexer.Token
	peek     lexer.Token
	lexErr   error
}

// Parse parses text into a Node (the compiled AST) under the given lexer
// options. It returns errs.EmptyExpression for empty input, and any
// lexer or parse failure as the *errs.LexerError or *errs.ParseError itself.
func Parse(text string, opts lexer.Options) (Node, error) {
	if text == "" {
		return nil, &errs.EmptyExpression{}
	}
	p := &Parser{lex: lexer.New(text, opts)}
	p.advance()
	p.advance()
	if p.lexErr != nil {
		return nil, p.lexErr
	}
	node, err := p.expression(lowestPower)
	if err != nil {
		return nil, err
	}
	if p.lexErr != nil {
		return nil, p.lexErr
	}
	if p.cur.Type != lexer.EOF {
		return nil, &errs.ParseError{Offset: p.cur.Start, Token: string(p.cur.Type), Expected: "end of expression"}
	}
	return node, nil
}

func (p *Parser) advance() {
	p.cur = p.peek
	tok, err := p.lex.NextToken()
	if err != nil && p.lexErr == nil {
		p.lexErr = err
		tok = lexer.Token{Type: lexer.EOF}
	}
	p.peek = tok
}

func (p *Parser) errorf(expected string) error {
	return &errs.ParseError{Offset: p.cur.Start, Token: string(p.cur.Type), Expected: expected}
}

func (p *Parser) expect(tt lexer.TokenType, expected string) error {
	if p.cur.Type != tt {
		return p.errorf(expected)
	}
	p.advance()
	return nil
}

// expression is the Pratt engine's core loop: parse a primary via nud,
// then keep absorbing infix/postfix operators whose binding power exceeds
// rbp.
func (p *Parser) expression(rbp int) (Node, error) {
	if p.lexErr != nil {
		return nil, p.lexErr
	}
	left, err := p.nud()
	if err != nil {
		return nil, err
	}
	for ledPower(p.cur.Type) > rbp {
		left, err = p.led(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// nud parses a primary expression: the "null denotation" of whatever
// token is current.
func (p *Parser) nud() (Node, error) {
	tok := p.cur
	switch tok.Type {
	case lexer.At:
		p.advance()
		return Current{}, nil
	case lexer.Root:
		p.advance()
		return Root{}, nil
	case lexer.Variable:
		p.advance()
		return VariableRef{Name: tok.Literal}, nil
	case lexer.UnquotedIdentifier, lexer.QuotedIdentifier:
		p.advance()
		return p.maybeCall(tok.Literal)
	case lexer.Literal:
		v, err := parseJSONLiteral(tok.Literal)
		if err != nil {
			return nil, &errs.ParseError{Offset: tok.Start, Token: "literal", Expected: "valid JSON literal"}
		}
		p.advance()
		return Literal{Value: v}, nil
	case lexer.RawString:
		p.advance()
		return Literal{Value: value.String(tok.Literal)}, nil
	case lexer.Not:
		p.advance()
		child, err := p.expression(prefixPower)
		if err != nil {
			return nil, err
		}
		return Not{Child: child}, nil
	case lexer.Plus, lexer.Minus:
		p.advance()
		op := ArithAdd
		if tok.Type == lexer.Minus {
			op = ArithSub
		}
		child, err := p.expression(prefixPower)
		if err != nil {
			return nil, err
		}
		return ArithmeticUnary{Op: op, Child: child}, nil
	case lexer.Expref:
		p.advance()
		child, err := p.expression(ternaryPower)
		if err != nil {
			return nil, err
		}
		return Expref{Child: child}, nil
	case lexer.LParen:
		p.advance()
		inner, err := p.expression(lowestPower)
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.LBrace:
		return p.parseMultiSelectDict()
	case lexer.LBracket:
		return p.parseBracketSpecifier(Current{})
	case lexer.Flatten:
		p.advance()
		rhs, err := p.parseProjectionRHS()
		if err != nil {
			return nil, err
		}
		return Projection{Left: Flatten{Left: Current{}}, Right: rhs}, nil
	case lexer.Filter:
		return p.parseFilter(Current{})
	case lexer.Let:
		return p.parseLet()
	case lexer.Star:
		p.advance()
		rhs, err := p.parseProjectionRHS()
		if err != nil {
			return nil, err
		}
		return Projection{Left: Current{}, Right: rhs}, nil
	default:
		return nil, p.errorf("an expression")
	}
}

// maybeCall turns a bare identifier into a FunctionExpression when
// immediately followed by '(' (spec.md §4.2: "A lparen immediately
// following an identifier (no dot) turns the identifier's field into a
// function_expression").
func (p *Parser) maybeCall(name string) (Node, error) {
	if p.cur.Type != lexer.LParen {
		return Field{Name: name}, nil
	}
	p.advance() // consume '('
	var args []Node
	if p.cur.Type != lexer.RParen {
		for {
			arg, err := p.expression(pipePower)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur.Type != lexer.Comma {
				break
			}
			p.advance()
		}
	}
	if err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	return FunctionExpression{Name: name, Args: args}, nil
}

// led parses the continuation of an expression given the already-parsed
// left operand: the "left denotation" of the current token.
func (p *Parser) led(left Node) (Node, error) {
	tok := p.cur
	switch tok.Type {
	case lexer.Pipe:
		p.advance()
		right, err := p.expression(pipePower)
		if err != nil {
			return nil, err
		}
		return Pipe{Left: left, Right: right}, nil
	case lexer.Or:
		p.advance()
		right, err := p.expression(orPower)
		if err != nil {
			return nil, err
		}
		return Or{Left: left, Right: right}, nil
	case lexer.And:
		p.advance()
		right, err := p.expression(andPower)
		if err != nil {
			return nil, err
		}
		return And{Left: left, Right: right}, nil
	case lexer.Question:
		p.advance()
		then, err := p.expression(ternaryPower + 1)
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.Colon, "':'"); err != nil {
			return nil, err
		}
		els, err := p.expression(ternaryPower)
		if err != nil {
			return nil, err
		}
		return Ternary{Cond: left, Then: then, Else: els}, nil
	case lexer.Eq, lexer.Ne, lexer.Lt, lexer.Lte, lexer.Gt, lexer.Gte:
		p.advance()
		right, err := p.expression(comparisonPower)
		if err != nil {
			return nil, err
		}
		return Comparator{Op: compareOpOf(tok.Type), Left: left, Right: right}, nil
	case lexer.Plus, lexer.Minus:
		p.advance()
		right, err := p.expression(additivePower)
		if err != nil {
			return nil, err
		}
		op := ArithAdd
		if tok.Type == lexer.Minus {
			op = ArithSub
		}
		return Arithmetic{Op: op, Left: left, Right: right}, nil
	case lexer.Star, lexer.Multiply, lexer.Divide, lexer.Div, lexer.Modulo:
		p.advance()
		right, err := p.expression(multiplicativePower)
		if err != nil {
			return nil, err
		}
		return Arithmetic{Op: arithOpOf(tok.Type), Left: left, Right: right}, nil
	case lexer.Dot:
		p.advance()
		return p.parseDotRHS(left)
	case lexer.LBracket:
		return p.parseBracketSpecifier(left)
	case lexer.Flatten:
		p.advance()
		rhs, err := p.parseProjectionRHS()
		if err != nil {
			return nil, err
		}
		return Projection{Left: Flatten{Left: left}, Right: rhs}, nil
	case lexer.Filter:
		return p.parseFilter(left)
	default:
		return nil, p.errorf("an operator")
	}
}

func compareOpOf(tt lexer.TokenType) CompareOp {
	switch tt {
	case lexer.Eq:
		return OpEq
	case lexer.Ne:
		return OpNe
	case lexer.Lt:
		return OpLt
	case lexer.Lte:
		return OpLte
	case lexer.Gt:
		return OpGt
	default:
		return OpGte
	}
}

func arithOpOf(tt lexer.TokenType) ArithOp {
	switch tt {
	case lexer.Star, lexer.Multiply:
		return ArithMul
	case lexer.Divide:
		return ArithDiv
	case lexer.Div:
		return ArithFloorDiv
	default:
		return ArithMod
	}
}

// parseDotRHS handles what follows `.`: a field/call, a wildcard
// (object-values projection), a multi-select-list, or a multi-select-dict.
func (p *Parser) parseDotRHS(left Node) (Node, error) {
	switch p.cur.Type {
	case lexer.Star:
		p.advance()
		rhs, err := p.parseProjectionRHS()
		if err != nil {
			return nil, err
		}
		return ValueProjection{Left: left, Right: rhs}, nil
	case lexer.LBracket:
		inner, err := p.parseMultiSelectList()
		if err != nil {
			return nil, err
		}
		return Subexpression{Left: left, Right: inner}, nil
	case lexer.LBrace:
		inner, err := p.parseMultiSelectDict()
		if err != nil {
			return nil, err
		}
		return Subexpression{Left: left, Right: inner}, nil
	case lexer.UnquotedIdentifier, lexer.QuotedIdentifier:
		name := p.cur.Literal
		p.advance()
		field, err := p.maybeCall(name)
		if err != nil {
			return nil, err
		}
		return Subexpression{Left: left, Right: field}, nil
	default:
		return nil, p.errorf("a field name, '*', '[' or '{' after '.'")
	}
}

// parseProjectionRHS parses what a projection (`[*]`, value-projection,
// `[]`) lifts over its elements: anything chained directly onto the
// element via '.', '[', a further filter, or another flatten, stopping at
// any lower-precedence operator (spec.md §4.2: "the parser greedily
// absorbs any postfix tail ... until a token of equal or lower binding
// power is met").
func (p *Parser) parseProjectionRHS() (Node, error) {
	switch p.cur.Type {
	case lexer.Dot:
		p.advance()
		rhs, err := p.parseDotRHS(Current{})
		if sub, ok := rhs.(Subexpression); ok && sub.Left == (Current{}) {
			rhs = sub.Right
		}
		for err == nil && ledPower(p.cur.Type) >= postfixPower {
			rhs, err = p.led(rhs)
		}
		return rhs, err
	case lexer.LBracket, lexer.Filter, lexer.Flatten:
		return p.expression(postfixPower - 1)
	default:
		return Identity{}, nil
	}
}

// parseBracketSpecifier parses the content of `[ ... ]` applied to left:
// an index, a slice, a list projection (`[*]`), or a multi-select-list
// when left is Current{} from nud and the contents are comma-separated
// expressions (spec.md §4.2).
func (p *Parser) parseBracketSpecifier(left Node) (Node, error) {
	if _, isCurrent := left.(Current); isCurrent {
		if node, handled, err := p.tryParseBracketOnCurrent(); handled || err != nil {
			return node, err
		}
	}
	p.advance() // consume '['
	switch p.cur.Type {
	case lexer.Star:
		p.advance()
		if err := p.expect(lexer.RBracket, "']'"); err != nil {
			return nil, err
		}
		rhs, err := p.parseProjectionRHS()
		if err != nil {
			return nil, err
		}
		return Projection{Left: left, Right: rhs}, nil
	case lexer.Colon:
		sl, err := p.parseSliceFrom(nil)
		if err != nil {
			return nil, err
		}
		return p.postIndexProjection(left, sl)
	case lexer.Number:
		n, err := strconv.ParseInt(p.cur.Literal, 10, 64)
		if err != nil {
			return nil, &errs.ParseError{Offset: p.cur.Start, Token: "number", Expected: "valid integer"}
		}
		p.advance()
		if p.cur.Type == lexer.Colon {
			sl, err := p.parseSliceFrom(&n)
			if err != nil {
				return nil, err
			}
			return p.postIndexProjection(left, sl)
		}
		if err := p.expect(lexer.RBracket, "']'"); err != nil {
			return nil, err
		}
		return Subexpression{Left: left, Right: Index{Value: n}}, nil
	default:
		return nil, p.errorf("an index, slice, or '*' inside '['")
	}
}

// tryParseBracketOnCurrent handles the nud-only multi-select-list form
// `[e1, e2, ...]`: only valid when nothing precedes the bracket. It
// returns handled=false when the bracket is actually an index/slice/
// projection on the implicit current document, so the caller falls
// through to the ordinary bracket-specifier parse.
func (p *Parser) tryParseBracketOnCurrent() (Node, bool, error) {
	switch p.peek.Type {
	case lexer.Number, lexer.Colon, lexer.Star:
		return nil, false, nil
	default:
		node, err := p.parseMultiSelectList()
		return node, true, err
	}
}

func (p *Parser) parseMultiSelectList() (Node, error) {
	if err := p.expect(lexer.LBracket, "'['"); err != nil {
		return nil, err
	}
	var children []Node
	for {
		child, err := p.expression(pipePower)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		if p.cur.Type != lexer.Comma {
			break
		}
		p.advance()
	}
	if err := p.expect(lexer.RBracket, "']'"); err != nil {
		return nil, err
	}
	return MultiSelectList{Children: children}, nil
}

func (p *Parser) parseMultiSelectDict() (Node, error) {
	if err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return nil, err
	}
	var entries []MultiSelectDictEntry
	seen := map[string]bool{}
	for {
		var key string
		switch p.cur.Type {
		case lexer.UnquotedIdentifier, lexer.QuotedIdentifier:
			key = p.cur.Literal
		default:
			return nil, p.errorf("a key name")
		}
		p.advance()
		if err := p.expect(lexer.Colon, "':'"); err != nil {
			return nil, err
		}
		if seen[key] {
			return nil, &errs.ParseError{Offset: p.cur.Start, Token: "key", Expected: "a unique key within this { }"}
		}
		seen[key] = true
		val, err := p.expression(pipePower)
		if err != nil {
			return nil, err
		}
		entries = append(entries, MultiSelectDictEntry{Key: key, Value: val})
		if p.cur.Type != lexer.Comma {
			break
		}
		p.advance()
	}
	if err := p.expect(lexer.RBrace, "'}'"); err != nil {
		return nil, err
	}
	return MultiSelectDict{Entries: entries}, nil
}

// parseFilter parses `[? predicate ]` applied to left.
func (p *Parser) parseFilter(left Node) (Node, error) {
	p.advance() // consume '[?'
	pred, err := p.expression(pipePower)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RBracket, "']'"); err != nil {
		return nil, err
	}
	cont, err := p.parseProjectionRHS()
	if err != nil {
		return nil, err
	}
	return FilterProjection{Source: left, Predicate: pred, Continuation: cont}, nil
}

// parseSliceFrom parses the remainder of a slice specifier, having
// already consumed (or not found) a leading start component. Assumes
// p.cur is ':' on entry.
func (p *Parser) parseSliceFrom(start *int64) (Slice, error) {
	sl := Slice{Start: start}
	if err := p.expect(lexer.Colon, "':'"); err != nil {
		return sl, err
	}
	if n, ok, err := p.maybeSliceInt(); err != nil {
		return sl, err
	} else if ok {
		sl.Stop = &n
	}
	if p.cur.Type == lexer.Colon {
		p.advance()
		if n, ok, err := p.maybeSliceInt(); err != nil {
			return sl, err
		} else if ok {
			sl.Step = &n
		}
	}
	if err := p.expect(lexer.RBracket, "']'"); err != nil {
		return sl, err
	}
	return sl, nil
}

func (p *Parser) maybeSliceInt() (int64, bool, error) {
	if p.cur.Type != lexer.Number {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(p.cur.Literal, 10, 64)
	if err != nil {
		return 0, false, &errs.ParseError{Offset: p.cur.Start, Token: "number", Expected: "valid integer"}
	}
	p.advance()
	return n, true, nil
}

func (p *Parser) postIndexProjection(left Node, sl Slice) (Node, error) {
	return Subexpression{Left: left, Right: sl}, nil
}

// parseLet parses `let $a = e1, $b = e2 in body`.
func (p *Parser) parseLet() (Node, error) {
	p.advance() // consume 'let'
	var bindings []Assign
	for {
		if p.cur.Type != lexer.Variable {
			return nil, p.errorf("a '$variable' binding")
		}
		name := p.cur.Literal
		p.advance()
		if err := p.expect(lexer.AssignOp, "'='"); err != nil {
			return nil, err
		}
		expr, err := p.expression(pipePower)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, Assign{Name: name, Expr: expr})
		if p.cur.Type != lexer.Comma {
			break
		}
		p.advance()
	}
	if err := p.expect(lexer.In, "'in'"); err != nil {
		return nil, err
	}
	body, err := p.expression(pipePower)
	if err != nil {
		return nil, err
	}
	return LetExpression{Bindings: bindings, Body: body}, nil
}
