package toolchain

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/paskualo/paskualo/compiler/asm"
)

type (
	// Runner runs one command line.
	Runner func(ctx context.Context, args []string) error

	CommandError struct {
		Args   []string
		Output []byte
		Err    error
	}
)

// Build assembles and links asmPath for target t and returns the executable path.
// run defaults to Exec.
func Build(ctx context.Context, t asm.Target, asmPath string, run Runner) (exe string, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "build", "target", t.Name, "asm", asmPath)
	defer tr.Finish("err", &err)

	if run == nil {
		run = Exec
	}

	for _, args := range t.Commands(asmPath) {
		tr.Printw("run", "cmd", strings.Join(args, " "))

		err = run(ctx, args)
		if err != nil {
			return "", errors.Wrap(err, "%v", args[0])
		}
	}

	_, exe = asm.Outputs(asmPath)

	return exe, nil
}

func Exec(ctx context.Context, args []string) error {
	var out bytes.Buffer

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if err != nil {
		return &CommandError{Args: args, Output: out.Bytes(), Err: err}
	}

	return nil
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(string(e.Output))
	if msg == "" {
		return e.Err.Error()
	}

	return e.Err.Error() + ": " + msg
}

func (e *CommandError) Unwrap() error { return e.Err }
