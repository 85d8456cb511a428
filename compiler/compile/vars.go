package compile

import (
	"nikand.dev/go/heap"
	"tlog.app/go/tlog/tlwire"
)

type (
	// Var is a variable binding.
	// Slot is the stack depth, in words, at which its value was pushed.
	Var struct {
		Name string
		Slot int
		Pos  int
	}
)

func sortVars(m map[string]Var) []Var {
	h := heap.Heap[Var]{Less: varsLess}

	for _, v := range m {
		h.Push(v)
	}

	vars := make([]Var, 0, len(m))

	for len(h.Data) != 0 {
		vars = append(vars, h.Pop())
	}

	return vars
}

func varsLess(d []Var, i, j int) bool {
	return d[i].Slot < d[j].Slot
}

func (v Var) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	b = e.AppendMap(b, 3)

	b = e.AppendString(b, "name")
	b = e.AppendString(b, v.Name)
	b = e.AppendKeyInt(b, "slot", v.Slot)
	b = e.AppendKeyInt(b, "pos", v.Pos)

	return b
}
