package lexer

import (
	"encoding/json"
	"strings"

	"github.com/docexpr/docexpr/errs"
)

// readLiteral scans a backtick-fenced embedded literal: a backslash before
// a backtick escapes it (SPEC_FULL.md §4.1). Standard mode requires the
// fence content to already be valid JSON; legacy mode additionally accepts
// content that becomes valid JSON once wrapped in quotes (a bare word,
// say).
func (l *Lexer) readLiteral(start int) (Token, error) {
	raw, ok := l.readDelimitedRaw('`', '`')
	if !ok {
		return Token{}, &errs.LexerError{Offset: start, Reason: "unterminated literal"}
	}
	content := strings.ReplaceAll(raw, "\\`", "`")
	if strings.ContainsRune(content, '\u2028') || strings.ContainsRune(content, '\u2029') {
		return Token{}, &errs.LexerError{Offset: start, Reason: "line/paragraph separator not allowed in literal"}
	}

	if json.Valid([]byte(content)) {
		return Token{Type: Literal, Literal: content, Start: start, End: l.pos}, nil
	}
	if l.options.LegacyLiterals {
		quoted, err := json.Marshal(content)
		if err == nil && json.Valid(quoted) {
			return Token{Type: Literal, Literal: string(quoted), Start: start, End: l.pos}, nil
		}
	}
	return Token{}, &errs.LexerError{Offset: start, Reason: "literal is not valid JSON"}
}

// decodeJSONString decodes the content between a pair of double quotes
// (the quotes themselves not included) using full JSON string escaping.
func decodeJSONString(content string) (string, error) {
	var out string
	if err := json.Unmarshal([]byte(`"`+content+`"`), &out); err != nil {
		return "", err
	}
	return out, nil
}
