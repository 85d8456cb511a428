package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, text string) string {
	t.Helper()

	name := filepath.Join(t.TempDir(), "prog.pk")
	require.NoError(t, os.WriteFile(name, []byte(text), 0o644))

	return name
}

func runArgs(t *testing.T, args ...string) (rc int, stdout, stderr string) {
	t.Helper()

	color.NoColor = true

	var outb, errb bytes.Buffer

	rc = run(append([]string{"paskualo"}, args...), nil, &outb, &errb)

	t.Logf("run %q: rc %d\nstdout:\n%s\nstderr:\n%s", args, rc, outb.String(), errb.String())

	return rc, outb.String(), errb.String()
}

func TestUsage(t *testing.T) {
	src := writeSource(t, "finu(0);")

	for _, args := range [][]string{
		nil,
		{src, src},
	} {
		rc, stdout, stderr := runArgs(t, args...)
		assert.Equal(t, 1, rc, "args %q", args)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "usage: paskualo")
	}
}

func TestDiagnostics(t *testing.T) {
	for _, tc := range []struct {
		src  string
		diag string
	}{
		{"jen x = 1; jen x = 2;", ":1:16: semantic error: identifier already used: x\n"},
		{"finu(y);", ":1:6: semantic error: undeclared identifier: y\n"},
		{"finu(1)", ":1:8: syntax error: expected ';', got end of input\n"},
		{"jen a = 1;\n$", ":2:1: lexical error: unexpected character '$'\n"},
	} {
		src := writeSource(t, tc.src)

		rc, stdout, stderr := runArgs(t, "--output="+filepath.Join(filepath.Dir(src), "out.asm"), src)
		assert.Equal(t, 1, rc, "%q", tc.src)
		assert.Empty(t, stdout)
		assert.Equal(t, src+tc.diag, stderr, "%q", tc.src)

		assert.NoFileExists(t, filepath.Join(filepath.Dir(src), "out.asm"))
	}
}

func TestMissingFile(t *testing.T) {
	rc, _, stderr := runArgs(t, filepath.Join(t.TempDir(), "none.pk"))
	assert.Equal(t, 1, rc)
	assert.Contains(t, stderr, "paskualo: ")
	assert.Contains(t, stderr, "read file")
}

func TestWriteOutput(t *testing.T) {
	src := writeSource(t, "jen x = 5; finu(x);")
	out := filepath.Join(filepath.Dir(src), "build.asm")

	rc, stdout, stderr := runArgs(t, "--output="+out, src)
	require.Equal(t, 0, rc, stderr)
	assert.Empty(t, stdout)

	text, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.Contains(t, string(text), "_main:\n")
	assert.Contains(t, string(text), "    push QWORD [rsp + 0]\n")
	assert.Contains(t, string(text), "; nasm -f macho64 "+out+"\n")
}

func TestLinuxTarget(t *testing.T) {
	src := writeSource(t, "finu(3);")
	out := filepath.Join(filepath.Dir(src), "out.asm")

	rc, _, stderr := runArgs(t, "--target=linux", "-o="+out, src)
	require.Equal(t, 0, rc, stderr)

	text, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.Contains(t, string(text), "_start:\n")
	assert.Contains(t, string(text), "    mov rax, 60\n")
}

func TestEmitVars(t *testing.T) {
	src := writeSource(t, "jen a = 1;\njen b = a;\nfinu(b);")
	out := filepath.Join(filepath.Dir(src), "out.asm")

	rc, stdout, stderr := runArgs(t, "--emit=vars", "--output="+out, src)
	require.Equal(t, 0, rc, stderr)

	assert.Equal(t, ""+
		"a                slot 0    "+src+":1:5\n"+
		"b                slot 1    "+src+":2:5\n", stdout)

	assert.NoFileExists(t, out)
}

func TestEmitTokens(t *testing.T) {
	src := writeSource(t, "finu(7);")

	rc, stdout, stderr := runArgs(t, "--emit=tokens", src)
	require.Equal(t, 0, rc, stderr)

	assert.Equal(t, "1:1\tfinu\n1:5\t'('\n1:6\tint literal \"7\"\n1:7\t')'\n1:8\t';'\n", stdout)
}

func TestEmitAST(t *testing.T) {
	src := writeSource(t, "jen  x=5 ;finu( x );")

	rc, stdout, stderr := runArgs(t, "--emit=ast", src)
	require.Equal(t, 0, rc, stderr)

	assert.Contains(t, stdout, "jen x = 5;")
	assert.Contains(t, stdout, "finu(x);")
}

func TestRejectedFlags(t *testing.T) {
	src := writeSource(t, "finu(0);")

	for _, tc := range []struct {
		flag string
		msg  string
	}{
		{"--target=windows", `unsupported target: "windows"`},
		{"--emit=ir", `unsupported emit: "ir"`},
	} {
		rc, stdout, stderr := runArgs(t, tc.flag, "--output="+filepath.Join(filepath.Dir(src), "out.asm"), src)
		assert.Equal(t, 1, rc, tc.flag)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, tc.msg)
	}
}
