package asm

import (
	"path/filepath"
	"strings"

	"github.com/nikandfor/hacked/hfmt"
)

type (
	// Target is an OS flavour of x86-64: entry symbol, exit syscall
	// and the commands turning the assembly into an executable.
	Target struct {
		Name string

		Entry       string
		ExitSyscall string

		ObjFormat string
		LinkFlags []string
	}
)

var (
	MacOS = Target{
		Name:        "macos",
		Entry:       "_main",
		ExitSyscall: "0x2000001",
		ObjFormat:   "macho64",
		LinkFlags: []string{
			"-demangle", "-dynamic",
			"-macos_version_min", "11.0",
			"-L/usr/local/lib",
			"-syslibroot", "/Library/Developer/CommandLineTools/SDKs/MacOSX.sdk",
			"-lSystem", "-no_pie",
		},
	}

	Linux = Target{
		Name:        "linux",
		Entry:       "_start",
		ExitSyscall: "60",
		ObjFormat:   "elf64",
	}

	Targets = map[string]Target{
		MacOS.Name: MacOS,
		Linux.Name: Linux,
	}
)

func (t Target) AppendHeader(b []byte) []byte {
	return hfmt.Appendf(b, "; NASM output\nbits 64\nsection .text\n%sglobal %s\n%s:\n", indent, t.Entry, t.Entry)
}

// AppendTrailer appends the assemble and link commands as comments.
func (t Target) AppendTrailer(b []byte, asmPath string) []byte {
	b = append(b, '\n')

	for _, cmd := range t.Commands(asmPath) {
		b = hfmt.Appendf(b, "; %s\n", strings.Join(cmd, " "))
	}

	return b
}

// Commands returns nasm and ld command lines for the file at asmPath.
// The object file and the executable are placed next to it.
func (t Target) Commands(asmPath string) [][]string {
	obj, exe := Outputs(asmPath)

	ld := []string{"ld", obj, "-o", exe}
	ld = append(ld, t.LinkFlags...)

	return [][]string{
		{"nasm", "-f", t.ObjFormat, asmPath},
		ld,
	}
}

// Outputs returns the object file and executable names for asmPath.
// A file named only by its extension gives "out", a file with no extension
// gets ".out" appended to the executable name so it doesn't overwrite the source.
func Outputs(asmPath string) (obj, exe string) {
	p := filepath.Clean(asmPath)
	ext := filepath.Ext(p)
	stem := strings.TrimSuffix(p, ext)

	switch {
	case filepath.Base(p) == ext:
		stem = filepath.Join(filepath.Dir(p), "out")
		exe = stem
	case ext == "":
		exe = stem + ".out"
	default:
		exe = stem
	}

	return stem + ".o", exe
}
