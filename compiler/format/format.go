package format

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/paskualo/paskualo/compiler/ast"
)

// Format appends canonical source text of x to b.
// Lexing and parsing the result gives back an equal tree, positions aside.
func Format(ctx context.Context, b []byte, x ast.Node) ([]byte, error) {
	switch x := x.(type) {
	case *ast.Program:
		return formatProgram(ctx, b, x)
	case ast.Stmt:
		return formatStmt(ctx, b, x)
	case ast.Expr:
		return formatExpr(ctx, b, x)
	default:
		return nil, errors.New("unsupported type: %T", x)
	}
}

func formatProgram(ctx context.Context, b []byte, x *ast.Program) (_ []byte, err error) {
	for i, s := range x.Stmts {
		b, err = formatStmt(ctx, b, s)
		if err != nil {
			return nil, errors.Wrap(err, "stmt %d", i)
		}

		b = append(b, '\n')
	}

	return b, nil
}

func formatStmt(ctx context.Context, b []byte, x ast.Stmt) (_ []byte, err error) {
	switch x := x.(type) {
	case ast.Exit:
		b = append(b, "finu("...)

		b, err = formatExpr(ctx, b, x.Expr)
		if err != nil {
			return nil, errors.Wrap(err, "expr")
		}

		b = append(b, ");"...)
	case ast.Let:
		b = hfmt.Appendf(b, "jen %s = ", x.Name.Name)

		b, err = formatExpr(ctx, b, x.Expr)
		if err != nil {
			return nil, errors.Wrap(err, "expr")
		}

		b = append(b, ';')
	default:
		return nil, errors.New("unsupported stmt: %T", x)
	}

	return b, nil
}

func formatExpr(ctx context.Context, b []byte, x ast.Expr) ([]byte, error) {
	switch x := x.(type) {
	case ast.Ident:
		b = append(b, x.Name...)
	case ast.IntLit:
		b = append(b, x.Text...)
	default:
		return nil, errors.New("unsupported expr: %T", x)
	}

	return b, nil
}
