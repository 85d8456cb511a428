package ast

type (
	Node interface {
		node()
	}

	Stmt interface {
		Node
		stmt()
	}

	Expr interface {
		Node
		expr()
	}

	Base struct {
		Pos int
		End int
	}

	Program struct {
		Stmts []Stmt
	}

	Exit struct {
		Base `tlog:",embed"`

		Expr Expr
	}

	Let struct {
		Base `tlog:",embed"`

		Name Ident
		Expr Expr
	}

	IntLit struct {
		Base `tlog:",embed"`

		Text string
	}

	Ident struct {
		Base `tlog:",embed"`

		Name string
	}
)

func (*Program) node() {}

func (Exit) node() {}
func (Let) node()  {}

func (Exit) stmt() {}
func (Let) stmt()  {}

func (IntLit) node() {}
func (Ident) node()  {}

func (IntLit) expr() {}
func (Ident) expr()  {}
