package compiler

import (
	"bytes"
	"context"
	"os"

	"github.com/zeebo/blake3"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/paskualo/paskualo/compiler/ast"
	"github.com/paskualo/paskualo/compiler/compile"
	"github.com/paskualo/paskualo/compiler/lex"
	"github.com/paskualo/paskualo/compiler/parse"
)

// CompileFile reads and compiles name.
// The source text is returned even on compile errors, to locate them.
func CompileFile(ctx context.Context, name string, c *compile.Compiler) (obj *compile.Object, text []byte, err error) {
	text, err = ReadFile(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	obj, err = Compile(ctx, name, text, c)

	return obj, text, err
}

func ReadFile(ctx context.Context, name string) ([]byte, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return text, nil
}

// Compile runs the whole pipeline. c == nil means compile.New().
func Compile(ctx context.Context, name string, text []byte, c *compile.Compiler) (obj *compile.Object, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile", "name", name, "size", len(text))
	defer tr.Finish("err", &err)

	prog, err := Parse(ctx, text)
	if err != nil {
		return nil, err
	}

	if c == nil {
		c = compile.New()
	}

	obj, err = c.CompileProgram(ctx, prog)
	if err != nil {
		return nil, errors.Wrap(err, "compile")
	}

	return obj, nil
}

func Parse(ctx context.Context, text []byte) (prog *ast.Program, err error) {
	toks, err := Lex(ctx, text)
	if err != nil {
		return nil, err
	}

	prog, err = parse.Parse(ctx, toks)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	tlog.SpanFromContext(ctx).Printw("parsed", "stmts", len(prog.Stmts))

	return prog, nil
}

func Lex(ctx context.Context, text []byte) (toks []lex.Token, err error) {
	toks, err = lex.Lex(ctx, text)
	if err != nil {
		return nil, errors.Wrap(err, "lex")
	}

	if tr := tlog.SpanFromContext(ctx); tr.If("dump_tokens") {
		for i, t := range toks {
			tr.Printw("token", "i", i, "token", t)
		}
	}

	return toks, nil
}

// WriteFile writes data to name unless the file already has the same content.
// It reports whether the file was written.
func WriteFile(name string, data []byte) (written bool, err error) {
	old, err := os.ReadFile(name)
	switch {
	case err == nil:
		if len(old) == len(data) && blake3.Sum256(old) == blake3.Sum256(data) {
			return false, nil
		}
	case !os.IsNotExist(err):
		return false, errors.Wrap(err, "read old")
	}

	err = os.WriteFile(name, data, 0o644)
	if err != nil {
		return false, errors.Wrap(err, "write")
	}

	return true, nil
}

// Locate converts byte offset pos into 1-based line and column.
func Locate(text []byte, pos int) (line, col int) {
	if pos > len(text) {
		pos = len(text)
	}

	line = 1 + bytes.Count(text[:pos], []byte{'\n'})
	col = 1 + pos - (bytes.LastIndexByte(text[:pos], '\n') + 1)

	return line, col
}
