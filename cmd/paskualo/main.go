package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/paskualo/paskualo/compiler"
	"github.com/paskualo/paskualo/compiler/asm"
	"github.com/paskualo/paskualo/compiler/compile"
	"github.com/paskualo/paskualo/compiler/format"
	"github.com/paskualo/paskualo/compiler/toolchain"
)

type (
	app struct {
		stdout io.Writer
		stderr io.Writer
	}
)

var (
	errUsage    = errors.New("usage: paskualo [flags] <file.pk>")
	errReported = errors.New("reported")

	locColor = color.New(color.Bold)
	errColor = color.New(color.FgRed, color.Bold)
)

func main() {
	os.Exit(run(os.Args, os.Environ(), os.Stdout, os.Stderr))
}

func run(args, env []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}

	cmd := &cli.Command{
		Name:        "paskualo",
		Description: "paskualo compiles a .pk program into x86-64 NASM assembly",
		Before:      before,
		Action:      a.compileAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("output,o", compile.DefaultOutput, "assembly output file"),
			cli.NewFlag("target", asm.MacOS.Name, "target os: macos or linux"),
			cli.NewFlag("emit", "asm", "what to produce: asm, tokens, ast or vars"),
			cli.NewFlag("build", false, "assemble and link the output with nasm and ld"),
			cli.NewFlag("verbose,v", "", "log topics: dump_tokens, dump_vars, emit, errors"),
			cli.HelpFlag,
		},
		Stdout: stdout,
		Stderr: stderr,
	}

	err := cli.Run(cmd, args, env)
	if err == nil {
		return 0
	}

	if !errors.Is(err, errReported) {
		_, _ = errColor.Fprintf(stderr, "paskualo: ")
		fmt.Fprintf(stderr, "%v\n", err)
	}

	return 1
}

func before(c *cli.Command) error {
	tlog.SetVerbosity(c.String("verbose"))

	return nil
}

func (a *app) compileAct(c *cli.Command) (err error) {
	if len(c.Args) != 1 {
		return errUsage
	}

	ctx := context.Background()

	if c.String("verbose") != "" {
		ctx = tlog.ContextWithSpan(ctx, tlog.Root())
	}

	name := c.Args[0]

	switch emit := c.String("emit"); emit {
	case "tokens", "ast":
		text, err := compiler.ReadFile(ctx, name)
		if err != nil {
			return err
		}

		if emit == "tokens" {
			return a.emitTokens(ctx, name, text)
		}

		return a.emitAST(ctx, name, text)
	case "asm", "vars":
	default:
		return errors.New("unsupported emit: %q", emit)
	}

	t, ok := asm.Targets[c.String("target")]
	if !ok {
		return errors.New("unsupported target: %q", c.String("target"))
	}

	out := c.String("output")

	cc := &compile.Compiler{
		Target: t,
		Output: out,
	}

	obj, text, err := compiler.CompileFile(ctx, name, cc)
	if text == nil && err != nil {
		return err
	}
	if err != nil {
		return a.report(name, text, err)
	}

	if c.String("emit") == "vars" {
		for _, v := range obj.Vars {
			line, col := compiler.Locate(text, v.Pos)
			fmt.Fprintf(a.stdout, "%-16s slot %-4d %s:%d:%d\n", v.Name, v.Slot, name, line, col)
		}

		return nil
	}

	written, err := compiler.WriteFile(out, obj.Text)
	if err != nil {
		return errors.Wrap(err, "output")
	}

	tlog.SpanFromContext(ctx).Printw("output", "file", out, "size", len(obj.Text), "written", written)

	if !c.Bool("build") {
		return nil
	}

	exe, err := toolchain.Build(ctx, t, out, nil)
	if err != nil {
		return errors.Wrap(err, "build")
	}

	fmt.Fprintf(a.stdout, "%s\n", exe)

	return nil
}

func (a *app) emitTokens(ctx context.Context, name string, text []byte) error {
	toks, err := compiler.Lex(ctx, text)
	if err != nil {
		return a.report(name, text, err)
	}

	for _, t := range toks {
		line, col := compiler.Locate(text, t.Pos)
		fmt.Fprintf(a.stdout, "%d:%d\t%v\n", line, col, t)
	}

	return nil
}

func (a *app) emitAST(ctx context.Context, name string, text []byte) error {
	prog, err := compiler.Parse(ctx, text)
	if err != nil {
		return a.report(name, text, err)
	}

	b, err := format.Format(ctx, nil, prog)
	if err != nil {
		return errors.Wrap(err, "format")
	}

	_, err = a.stdout.Write(b)

	return err
}

// report prints a short diagnostic for a rejected program.
func (a *app) report(name string, text []byte, err error) error {
	if pos, ok := compiler.ErrorPos(err); ok {
		line, col := compiler.Locate(text, pos)
		_, _ = locColor.Fprintf(a.stderr, "%s:%d:%d: ", name, line, col)
	}

	_, _ = errColor.Fprintf(a.stderr, "%s: ", compiler.Category(err))
	fmt.Fprintf(a.stderr, "%v\n", compiler.Cause(err))

	tlog.V("errors").Printw("compilation failed", "err", err)

	return errReported
}
