package parse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paskualo/paskualo/compiler/ast"
	"github.com/paskualo/paskualo/compiler/lex"
)

func lexText(t *testing.T, text string) []lex.Token {
	t.Helper()

	toks, err := lex.Lex(context.Background(), []byte(text))
	require.NoError(t, err)

	return toks
}

func TestParseLetExit(t *testing.T) {
	p, err := Parse(context.Background(), lexText(t, "jen x = 5; finu(x);"))
	require.NoError(t, err)

	exp := &ast.Program{
		Stmts: []ast.Stmt{
			ast.Let{
				Base: ast.Base{Pos: 0, End: 10},
				Name: ast.Ident{Base: ast.Base{Pos: 4, End: 5}, Name: "x"},
				Expr: ast.IntLit{Base: ast.Base{Pos: 8, End: 9}, Text: "5"},
			},
			ast.Exit{
				Base: ast.Base{Pos: 11, End: 19},
				Expr: ast.Ident{Base: ast.Base{Pos: 16, End: 17}, Name: "x"},
			},
		},
	}

	assert.Equal(t, exp, p)
}

func TestParseEmpty(t *testing.T) {
	p, err := Parse(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, p.Stmts)
}

func TestParseNoSemanticChecks(t *testing.T) {
	p, err := Parse(context.Background(), lexText(t, "jen x = 1; jen x = y; finu(z);"))
	require.NoError(t, err)
	assert.Len(t, p.Stmts, 3)
}

func TestParseStmtCountMatchesSemis(t *testing.T) {
	for _, text := range []string{
		"",
		"finu(0);",
		"jen a = 1; jen b = a; jen c = b; finu(c);",
		"finu(1); finu(2); jen q = 3;",
	} {
		toks := lexText(t, text)

		semis := 0
		for _, tk := range toks {
			if tk.Kind == lex.Semi {
				semis++
			}
		}

		p, err := Parse(context.Background(), toks)
		require.NoError(t, err, "%q", text)
		assert.Len(t, p.Stmts, semis, "%q", text)
	}
}

func TestParseIdempotent(t *testing.T) {
	toks := lexText(t, "jen a = 1; jen b = 22; finu(a);")

	p1, err := Parse(context.Background(), toks)
	require.NoError(t, err)

	p2, err := Parse(context.Background(), toks)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		in  string
		msg string
		pos int
		eof bool
	}{
		{in: "finu(1)", msg: "expected ';'", pos: 7, eof: true},
		{in: "finu(1", msg: "expected ')'", pos: 6, eof: true},
		{in: "finu(1;", msg: "expected ')'", pos: 6},
		{in: "finu();", msg: MsgInvalidExpr, pos: 5},
		{in: "finu(", msg: MsgInvalidExpr, pos: 5, eof: true},
		{in: "finu 1;", msg: MsgInvalidStmt, pos: 0},
		{in: "finu", msg: MsgInvalidStmt, pos: 0},
		{in: "jen x = ;", msg: MsgInvalidExpr, pos: 8},
		{in: "jen x = 1", msg: "expected ';'", pos: 9, eof: true},
		{in: "jen x = 1 2;", msg: "expected ';'", pos: 10},
		{in: "jen x 1;", msg: MsgInvalidStmt, pos: 0},
		{in: "jen 1 = 1;", msg: MsgInvalidStmt, pos: 0},
		{in: "x = 1;", msg: MsgInvalidStmt, pos: 0},
		{in: "finu(1); ;", msg: MsgInvalidStmt, pos: 9},
		{in: "jen x = (1);", msg: MsgInvalidExpr, pos: 8},
	} {
		p, err := Parse(context.Background(), lexText(t, tc.in))
		assert.Nil(t, p, "%q", tc.in)

		var serr *SyntaxError
		if assert.ErrorAs(t, err, &serr, "%q", tc.in) {
			assert.Equal(t, tc.msg, serr.Msg, "%q", tc.in)
			assert.Equal(t, tc.pos, serr.Pos, "%q", tc.in)
			assert.Equal(t, tc.eof, serr.Got == nil, "%q", tc.in)
		}
	}
}

func TestSyntaxErrorText(t *testing.T) {
	_, err := Parse(context.Background(), lexText(t, "finu(1)"))
	assert.EqualError(t, err, "expected ';', got end of input")

	_, err = Parse(context.Background(), lexText(t, "finu(1) x"))
	assert.EqualError(t, err, `expected ';', got identifier "x"`)
}
