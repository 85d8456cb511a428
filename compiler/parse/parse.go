package parse

import (
	"context"
	"fmt"

	"github.com/paskualo/paskualo/compiler/ast"
	"github.com/paskualo/paskualo/compiler/lex"
)

type (
	State struct {
		toks []lex.Token
		i    int
	}

	SyntaxError struct {
		Pos int
		Msg string

		Got *lex.Token // nil at end of input
	}
)

const (
	MsgInvalidStmt = "invalid statement"
	MsgInvalidExpr = "invalid expression"
)

func Parse(ctx context.Context, toks []lex.Token) (*ast.Program, error) {
	s := New(toks)

	return s.Parse(ctx)
}

func New(toks []lex.Token) *State {
	return &State{toks: toks}
}

// Parse consumes all the tokens.
// Any error is final, the parser doesn't try to resync on the next statement.
func (s *State) Parse(ctx context.Context) (p *ast.Program, err error) {
	p = &ast.Program{}

	for s.more() {
		var x ast.Stmt

		x, err = s.parseStmt(ctx)
		if err != nil {
			return nil, err
		}

		p.Stmts = append(p.Stmts, x)
	}

	return p, nil
}

func (s *State) parseStmt(ctx context.Context) (x ast.Stmt, err error) {
	st := s.i

	switch {
	case s.is(0, lex.Exit) && s.is(1, lex.OpenParen):
		s.i += 2

		var e ast.Expr

		e, err = s.parseExpr(ctx)
		if err != nil {
			return nil, err
		}

		if err = s.expect(lex.CloseParen); err != nil {
			return nil, err
		}

		if err = s.expect(lex.Semi); err != nil {
			return nil, err
		}

		return ast.Exit{Base: s.base(st), Expr: e}, nil
	case s.is(0, lex.Let) && s.is(1, lex.Ident) && s.is(2, lex.Eq):
		name := s.toks[s.i+1]
		s.i += 3

		var e ast.Expr

		e, err = s.parseExpr(ctx)
		if err != nil {
			return nil, err
		}

		if err = s.expect(lex.Semi); err != nil {
			return nil, err
		}

		return ast.Let{
			Base: s.base(st),
			Name: ast.Ident{
				Base: ast.Base{Pos: name.Pos, End: name.End},
				Name: name.Text,
			},
			Expr: e,
		}, nil
	}

	return nil, s.errorf(MsgInvalidStmt)
}

func (s *State) parseExpr(ctx context.Context) (x ast.Expr, err error) {
	t, ok := s.peek(0)
	if !ok {
		return nil, s.errorf(MsgInvalidExpr)
	}

	base := ast.Base{Pos: t.Pos, End: t.End}

	switch t.Kind {
	case lex.IntLit:
		x = ast.IntLit{Base: base, Text: t.Text}
	case lex.Ident:
		x = ast.Ident{Base: base, Name: t.Text}
	default:
		return nil, s.errorf(MsgInvalidExpr)
	}

	s.i++

	return x, nil
}

func (s *State) expect(k lex.Kind) error {
	if !s.is(0, k) {
		return s.errorf("expected %v", k)
	}

	s.i++

	return nil
}

func (s *State) more() bool { return s.i < len(s.toks) }

func (s *State) peek(off int) (lex.Token, bool) {
	if s.i+off >= len(s.toks) {
		return lex.Token{}, false
	}

	return s.toks[s.i+off], true
}

func (s *State) is(off int, k lex.Kind) bool {
	t, ok := s.peek(off)

	return ok && t.Kind == k
}

func (s *State) base(st int) ast.Base {
	return ast.Base{
		Pos: s.toks[st].Pos,
		End: s.toks[s.i-1].End,
	}
}

func (s *State) errorf(format string, args ...any) *SyntaxError {
	e := &SyntaxError{Msg: fmt.Sprintf(format, args...)}

	if t, ok := s.peek(0); ok {
		e.Pos = t.Pos
		e.Got = &t
	} else if len(s.toks) != 0 {
		e.Pos = s.toks[len(s.toks)-1].End
	}

	return e
}

func (e *SyntaxError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("%s, got end of input", e.Msg)
	}

	return fmt.Sprintf("%s, got %v", e.Msg, *e.Got)
}

func (e *SyntaxError) Position() int { return e.Pos }
