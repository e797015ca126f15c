package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/docexpr/docexpr/errs"
)

// Lexer scans source text into a restartable stream of Tokens. It holds no
// state beyond the current scan position, so NextToken can be called
// repeatedly until it returns an EOF token whose Start equals len(Src).
type Lexer struct {
	Src     string
	pos     int // byte offset of the next unread rune
	options Options
}

// Options toggles lexer behavior that the library-level Options surface
// exposes (SPEC_FULL.md §4.7).
type Options struct {
	// LegacyLiterals enables the permissive backtick-fence lexing rule
	// (SPEC_FULL.md §4.1): content that fails to parse as JSON is
	// reparsed after wrapping it in quotes.
	LegacyLiterals bool
}

// New creates a Lexer over src. It does not itself fail on empty input;
// EmptyExpression is a compile-time concern, checked by the parser.
func New(src string, opts Options) *Lexer {
	return &Lexer{Src: src, options: opts}
}

func (l *Lexer) eof() bool { return l.pos >= len(l.Src) }

// peekByte returns the byte at the current position, or 0 past the end.
func (l *Lexer) peekByte() byte {
	if l.eof() {
		return 0
	}
	return l.Src[l.pos]
}

func (l *Lexer) peekByteAt(offset int) byte {
	i := l.pos + offset
	if i >= len(l.Src) {
		return 0
	}
	return l.Src[i]
}

func (l *Lexer) peekRune() (rune, int) {
	if l.eof() {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.Src[l.pos:])
}

// simpleTokens holds single-byte structural/punctuation tokens dispatched
// without any lookahead.
var simpleTokens = map[byte]TokenType{
	'.': Dot,
	',': Comma,
	':': Colon,
	'(': LParen,
	')': RParen,
	'{': LBrace,
	'}': RBrace,
	']': RBracket,
	'@': At,
}

// NextToken returns the next token in the stream. Once the source is
// exhausted it returns an EOF token forever.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()
	if l.eof() {
		return Token{Type: EOF, Start: len(l.Src), End: len(l.Src)}, nil
	}

	start := l.pos
	c := l.peekByte()

	switch {
	case c == '"':
		return l.readQuotedIdentifier(start)
	case c == '\'':
		return l.readRawString(start)
	case c == '`':
		return l.readLiteral(start)
	case c == '$':
		return l.readDollar(start)
	case c == '[':
		return l.readBracket(start)
	case c == '|':
		return l.readOneOrTwo(start, '|', Pipe, Or)
	case c == '&':
		return l.readAmpersand(start)
	case c == '=':
		return l.readEquals(start)
	case c == '!':
		return l.readOneOrTwo(start, '=', Not, Ne)
	case c == '<':
		return l.readOneOrTwo(start, '=', Lt, Lte)
	case c == '>':
		return l.readOneOrTwo(start, '=', Gt, Gte)
	case c == '+':
		l.advanceByte()
		return l.tok(Plus, start), nil
	case c == '-':
		return l.readMinus(start)
	case c == '*':
		l.advanceByte()
		return l.tok(Star, start), nil
	case c == '/':
		return l.readSlash(start)
	case c == '%':
		l.advanceByte()
		return l.tok(Modulo, start), nil
	case c == '?':
		l.advanceByte()
		return l.tok(Question, start), nil
	}
	if tt, ok := simpleTokens[c]; ok {
		l.advanceByte()
		return l.tok(tt, start), nil
	}

	r, size := l.peekRune()
	switch r {
	case '×':
		l.pos += size
		return l.tok(Multiply, start), nil
	case '÷':
		l.pos += size
		return l.tok(Divide, start), nil
	case '−': // U+2212 unicode minus
		l.pos += size
		return Token{Type: Minus, Literal: "-", Start: start, End: l.pos}, nil
	}

	if isIdentStart(r) {
		return l.readUnquotedIdentifier(start)
	}
	if isDigit(r) {
		return l.readNumber(start)
	}

	return Token{}, &errs.LexerError{Offset: start, Char: r}
}

func (l *Lexer) tok(tt TokenType, start int) Token {
	return Token{Type: tt, Literal: l.Src[start:l.pos], Start: start, End: l.pos}
}

func (l *Lexer) advanceByte() { l.pos++ }

func (l *Lexer) skipWhitespace() {
	for !l.eof() {
		switch l.Src[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

// readOneOrTwo handles the common "c or c+second" two-token ambiguity,
// e.g. '!' vs '!=', '|' vs '||'.
func (l *Lexer) readOneOrTwo(start int, second byte, oneType, twoType TokenType) (Token, error) {
	c := l.Src[start]
	l.advanceByte()
	if l.peekByte() == second {
		l.advanceByte()
		return Token{Type: twoType, Literal: string(c) + string(second), Start: start, End: l.pos}, nil
	}
	return l.tok(oneType, start), nil
}

func (l *Lexer) readAmpersand(start int) (Token, error) {
	l.advanceByte()
	if l.peekByte() == '&' {
		l.advanceByte()
		return l.tok(And, start), nil
	}
	return l.tok(Expref, start), nil
}

func (l *Lexer) readEquals(start int) (Token, error) {
	l.advanceByte()
	if l.peekByte() == '=' {
		l.advanceByte()
		return l.tok(Eq, start), nil
	}
	return l.tok(AssignOp, start), nil
}

func (l *Lexer) readSlash(start int) (Token, error) {
	l.advanceByte()
	if l.peekByte() == '/' {
		l.advanceByte()
		return l.tok(Div, start), nil
	}
	return l.tok(Divide, start), nil
}

// readMinus disambiguates a leading '-' that begins a signed integer
// literal from the minus operator, per SPEC_FULL.md §4.1: a '-' is a
// signed-number prefix only when immediately followed by a digit.
func (l *Lexer) readMinus(start int) (Token, error) {
	if isDigit(rune(l.peekByteAt(1))) {
		return l.readNumber(start)
	}
	l.advanceByte()
	return l.tok(Minus, start), nil
}

func (l *Lexer) readBracket(start int) (Token, error) {
	l.advanceByte() // consume '['
	switch l.peekByte() {
	case '?':
		l.advanceByte()
		return l.tok(Filter, start), nil
	case ']':
		l.advanceByte()
		return l.tok(Flatten, start), nil
	default:
		return l.tok(LBracket, start), nil
	}
}

func (l *Lexer) readDollar(start int) (Token, error) {
	l.advanceByte() // consume '$'
	r, _ := l.peekRune()
	if !isIdentStart(r) {
		return l.tok(Root, start), nil
	}
	nameStart := l.pos
	for {
		r, size := l.peekRune()
		if !isIdentPart(r) {
			break
		}
		l.pos += size
	}
	return Token{Type: Variable, Literal: l.Src[nameStart:l.pos], Start: start, End: l.pos}, nil
}

func (l *Lexer) readUnquotedIdentifier(start int) (Token, error) {
	for {
		r, size := l.peekRune()
		if !isIdentPart(r) {
			break
		}
		l.pos += size
	}
	literal := l.Src[start:l.pos]
	return Token{Type: lookupIdentifier(literal), Literal: literal, Start: start, End: l.pos}, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// readNumber scans an optionally signed run of decimal digits. The query
// language's bare number token is always an integer; floating-point
// values only ever arrive through the literal fence (SPEC_FULL.md §4.1).
func (l *Lexer) readNumber(start int) (Token, error) {
	i := l.pos
	if l.Src[i] == '-' {
		i++
	}
	digitsStart := i
	for i < len(l.Src) && isDigit(rune(l.Src[i])) {
		i++
	}
	if i == digitsStart {
		return Token{}, &errs.LexerError{Offset: start, Char: rune(l.Src[start]), Reason: "malformed number"}
	}
	l.pos = i
	return l.tok(Number, start), nil
}

// readQuotedIdentifier reads a "..."-delimited identifier, decoded using
// full JSON string escaping (including \uXXXX surrogate pairs).
func (l *Lexer) readQuotedIdentifier(start int) (Token, error) {
	raw, ok := l.readDelimitedRaw('"', '"')
	if !ok {
		return Token{}, &errs.LexerError{Offset: start, Reason: "unterminated quoted identifier"}
	}
	decoded, err := decodeJSONString(raw)
	if err != nil {
		return Token{}, &errs.LexerError{Offset: start, Reason: "invalid quoted identifier: " + err.Error()}
	}
	return Token{Type: QuotedIdentifier, Literal: decoded, Start: start, End: l.pos}, nil
}

// readDelimitedRaw consumes the opening delimiter, then raw bytes up to
// (and including) the closing delimiter, honoring a backslash before the
// closing delimiter as an escape so it isn't mistaken for the terminator.
// It returns the content between the delimiters (including any backslash
// escapes, undecoded) and whether a terminator was found.
func (l *Lexer) readDelimitedRaw(open, close byte) (string, bool) {
	if l.peekByte() != open {
		return "", false
	}
	l.advanceByte()
	start := l.pos
	for !l.eof() {
		c := l.Src[l.pos]
		if c == '\\' && l.pos+1 < len(l.Src) {
			l.pos += 2
			continue
		}
		if c == close {
			content := l.Src[start:l.pos]
			l.advanceByte()
			return content, true
		}
		l.pos++
	}
	return "", false
}

// readRawString reads a '...'-delimited raw string. Only \' and \\ are
// recognized escapes; every other backslash sequence is preserved
// literally (SPEC_FULL.md §4.1).
func (l *Lexer) readRawString(start int) (Token, error) {
	raw, ok := l.readDelimitedRaw('\'', '\'')
	if !ok {
		return Token{}, &errs.LexerError{Offset: start, Reason: "unterminated raw string"}
	}
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) && (raw[i+1] == '\'' || raw[i+1] == '\\') {
			b.WriteByte(raw[i+1])
			i++
			continue
		}
		b.WriteByte(raw[i])
	}
	return Token{Type: RawString, Literal: b.String(), Start: start, End: l.pos}, nil
}
