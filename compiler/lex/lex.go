package lex

import (
	"context"
	"fmt"
)

type (
	LexicalError struct {
		Pos  int
		Char byte
	}
)

// Lex splits text into tokens.
// It stops at the first character which can't start a token.
func Lex(ctx context.Context, text []byte) (toks []Token, err error) {
	for i := skipSpaces(text, 0); i < len(text); i = skipSpaces(text, i) {
		var t Token

		t, i, err = token(text, i)
		if err != nil {
			return nil, err
		}

		toks = append(toks, t)
	}

	return toks, nil
}

func token(b []byte, st int) (t Token, i int, err error) {
	i = st
	c := b[i]

	switch {
	case isAlpha(c):
		i = skipWord(b, i+1)
		w := string(b[st:i])

		if k, ok := keywords[w]; ok {
			return Token{Kind: k, Pos: st, End: i}, i, nil
		}

		return Token{Kind: Ident, Text: w, Pos: st, End: i}, i, nil
	case isDigit(c):
		i = skipDigits(b, i+1)

		return Token{Kind: IntLit, Text: string(b[st:i]), Pos: st, End: i}, i, nil
	}

	var k Kind

	switch c {
	case '(':
		k = OpenParen
	case ')':
		k = CloseParen
	case ';':
		k = Semi
	case '=':
		k = Eq
	default:
		return Token{}, st, &LexicalError{Pos: st, Char: c}
	}

	return Token{Kind: k, Pos: st, End: st + 1}, st + 1, nil
}

func skipSpaces(b []byte, i int) int {
	for i < len(b) && isSpace(b[i]) {
		i++
	}

	return i
}

func skipWord(b []byte, i int) int {
	for i < len(b) && (isAlpha(b[i]) || isDigit(b[i])) {
		i++
	}

	return i
}

func skipDigits(b []byte, i int) int {
	for i < len(b) && isDigit(b[i]) {
		i++
	}

	return i
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}

	return false
}

func isAlpha(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (e *LexicalError) Error() string {
	return fmt.Sprintf("unexpected character %q", e.Char)
}

func (e *LexicalError) Position() int { return e.Pos }
