package lex

import (
	"fmt"

	"tlog.app/go/tlog/tlwire"
)

type (
	Kind int

	Token struct {
		Kind Kind
		Text string // raw text for Ident and IntLit

		Pos int
		End int
	}
)

const (
	Semi Kind = iota
	IntLit
	OpenParen
	CloseParen
	Ident
	Exit
	Let
	Eq
)

var kindNames = [...]string{
	Semi:       "';'",
	IntLit:     "int literal",
	OpenParen:  "'('",
	CloseParen: "')'",
	Ident:      "identifier",
	Exit:       "finu",
	Let:        "jen",
	Eq:         "'='",
}

var keywords = map[string]Kind{
	"finu": Exit,
	"jen":  Let,
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

func (t Token) String() string {
	if t.Text != "" {
		return fmt.Sprintf("%v %q", t.Kind, t.Text)
	}

	return t.Kind.String()
}

func (t Token) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	n := 2
	if t.Text != "" {
		n++
	}

	b = e.AppendMap(b, n)

	b = e.AppendString(b, "kind")
	b = e.AppendString(b, t.Kind.String())

	if t.Text != "" {
		b = e.AppendString(b, "text")
		b = e.AppendString(b, t.Text)
	}

	b = e.AppendKeyInt(b, "pos", t.Pos)

	return b
}
