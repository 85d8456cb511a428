package compile

import (
	"context"
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/paskualo/paskualo/compiler/asm"
	"github.com/paskualo/paskualo/compiler/ast"
)

type (
	Compiler struct {
		Target asm.Target

		// Output is the assembly file path the build comments refer to.
		Output string
	}

	Object struct {
		Text []byte
		Vars []Var // ordered by slot

		Exited bool // program has its own exit, no default one added
	}

	SemanticError struct {
		Pos  int
		Name string
		Msg  string
	}

	progContext struct {
		*Compiler

		b []byte

		depth  int // stack words pushed so far
		vars   map[string]Var
		exited bool
	}
)

const (
	MsgAlreadyUsed = "identifier already used"
	MsgUndeclared  = "undeclared identifier"
)

const DefaultOutput = "./out.asm"

func New() *Compiler {
	return &Compiler{
		Target: asm.MacOS,
		Output: DefaultOutput,
	}
}

// CompileProgram generates the program text.
// The result depends only on prog and c.
func (c *Compiler) CompileProgram(ctx context.Context, prog *ast.Program) (_ *Object, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile program", "stmts", len(prog.Stmts), "target", c.Target.Name)
	defer tr.Finish("err", &err)

	p := &progContext{
		Compiler: c,
		vars:     make(map[string]Var),
	}

	p.b = c.Target.AppendHeader(p.b)

	for i, x := range prog.Stmts {
		err = p.compileStmt(ctx, x)
		if err != nil {
			return nil, errors.Wrap(err, "stmt %d", i)
		}
	}

	exited := p.exited

	if !exited {
		err = p.exit(asm.MovImm{Out: asm.RDI, Imm: "0"})
		if err != nil {
			return nil, errors.Wrap(err, "default exit")
		}
	}

	p.b = c.Target.AppendTrailer(p.b, c.Output)

	obj := &Object{
		Text:   p.b,
		Vars:   sortVars(p.vars),
		Exited: exited,
	}

	if tr.If("dump_vars") {
		for _, v := range obj.Vars {
			tr.Printw("var", "var", v)
		}
	}

	return obj, nil
}

func (p *progContext) compileStmt(ctx context.Context, x ast.Stmt) (err error) {
	switch x := x.(type) {
	case ast.Let:
		name := x.Name.Name

		if _, ok := p.vars[name]; ok {
			return &SemanticError{Pos: x.Name.Pos, Name: name, Msg: MsgAlreadyUsed}
		}

		// the slot is the one the initializer is about to be pushed to
		p.vars[name] = Var{Name: name, Slot: p.depth, Pos: x.Name.Pos}

		return p.compileExpr(ctx, x.Expr)
	case ast.Exit:
		err = p.compileExpr(ctx, x.Expr)
		if err != nil {
			return err
		}

		return p.exit(asm.Pop{Out: asm.RDI})
	default:
		return errors.New("unsupported statement: %T", x)
	}
}

func (p *progContext) compileExpr(ctx context.Context, x ast.Expr) (err error) {
	switch x := x.(type) {
	case ast.IntLit:
		err = p.emit(asm.MovImm{Out: asm.RAX, Imm: x.Text})
		if err != nil {
			return err
		}

		return p.emit(asm.Push{In: asm.RAX})
	case ast.Ident:
		v, ok := p.vars[x.Name]
		if !ok {
			return &SemanticError{Pos: x.Pos, Name: x.Name, Msg: MsgUndeclared}
		}

		return p.emit(asm.Push{In: asm.Mem{
			Base: asm.RSP,
			Disp: (p.depth - v.Slot - 1) * asm.WordSize,
		}})
	default:
		return errors.New("unsupported expression: %T", x)
	}
}

// exit emits the exit syscall with status set by arg.
func (p *progContext) exit(arg asm.Instr) (err error) {
	for _, x := range []asm.Instr{
		asm.MovImm{Out: asm.RAX, Imm: p.Target.ExitSyscall},
		arg,
		asm.Syscall{},
	} {
		err = p.emit(x)
		if err != nil {
			return err
		}
	}

	p.exited = true

	return nil
}

func (p *progContext) emit(x asm.Instr) (err error) {
	p.b, err = asm.Append(p.b, x)
	if err != nil {
		return errors.Wrap(err, "emit")
	}

	switch x.(type) {
	case asm.Push:
		p.depth++
	case asm.Pop:
		p.depth--
	}

	if tr := tlog.V("emit"); tr != nil {
		tr.Printw("emit", "instr", tlog.NextAsType, x, "val", x, "depth", p.depth, "from", loc.Caller(1))
	}

	return nil
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Msg, e.Name)
}

func (e *SemanticError) Position() int { return e.Pos }
