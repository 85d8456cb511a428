package asm

import (
	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"
)

type (
	Reg string

	Instr any

	Mem struct {
		Base Reg
		Disp int
	}

	MovImm struct {
		Out Reg
		Imm string
	}

	Push struct {
		In any // Reg or Mem
	}

	Pop struct {
		Out Reg
	}

	Syscall struct{}
)

const (
	RAX Reg = "rax"
	RDI Reg = "rdi"
	RSP Reg = "rsp"
)

// WordSize is the size of a stack slot in bytes.
const WordSize = 8

const indent = "    "

func Append(b []byte, x Instr) (_ []byte, err error) {
	switch x := x.(type) {
	case MovImm:
		b = hfmt.Appendf(b, indent+"mov %s, %s\n", x.Out, x.Imm)
	case Push:
		b = append(b, indent+"push "...)

		b, err = appendOperand(b, x.In)
		if err != nil {
			return nil, errors.Wrap(err, "push")
		}

		b = append(b, '\n')
	case Pop:
		b = hfmt.Appendf(b, indent+"pop %s\n", x.Out)
	case Syscall:
		b = append(b, indent+"syscall\n"...)
	default:
		return nil, errors.New("unsupported instruction: %T", x)
	}

	return b, nil
}

func appendOperand(b []byte, x any) ([]byte, error) {
	switch x := x.(type) {
	case Reg:
		return append(b, x...), nil
	case Mem:
		return hfmt.Appendf(b, "QWORD [%s + %d]", x.Base, x.Disp), nil
	default:
		return nil, errors.New("unsupported operand: %T", x)
	}
}
