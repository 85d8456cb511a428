package compiler

import (
	"tlog.app/go/errors"

	"github.com/paskualo/paskualo/compiler/compile"
	"github.com/paskualo/paskualo/compiler/lex"
	"github.com/paskualo/paskualo/compiler/parse"
)

type (
	positioner interface {
		error
		Position() int
	}
)

// ErrorPos returns the source offset the error points to.
func ErrorPos(err error) (pos int, ok bool) {
	var p positioner

	if !errors.As(err, &p) {
		return 0, false
	}

	return p.Position(), true
}

// Category names the pipeline stage which rejected the program.
func Category(err error) string {
	var (
		lerr *lex.LexicalError
		serr *parse.SyntaxError
		cerr *compile.SemanticError
	)

	switch {
	case errors.As(err, &lerr):
		return "lexical error"
	case errors.As(err, &serr):
		return "syntax error"
	case errors.As(err, &cerr):
		return "semantic error"
	}

	return "error"
}

// Cause returns the innermost pipeline error, without stage wrappers.
func Cause(err error) error {
	var p positioner

	if errors.As(err, &p) {
		return p
	}

	return err
}
