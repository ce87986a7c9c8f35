package expr

import "fmt"

// Node is a parsed expression tree.
type Node interface {
	Eval() (Value, error)
	String() string
}

// Number is a literal.
type Number struct {
	Val Value
	Pos int
}

// Unary is a sign applied to an operand.
type Unary struct {
	Op  string // "+" or "-"
	X   Node
	Pos int
}

// Binary is a binary operation. Op is one of + - * / // % ^.
type Binary struct {
	Op   string
	L, R Node
	Pos  int
}

func (n *Number) Eval() (Value, error) { return n.Val, nil }

func (n *Number) String() string { return n.Val.String() }

func (n *Unary) Eval() (Value, error) {
	x, err := n.X.Eval()
	if err != nil {
		return Value{}, err
	}
	if n.Op == "-" {
		return negate(x), nil
	}
	return x, nil
}

func (n *Unary) String() string { return fmt.Sprintf("(%s%s)", n.Op, n.X) }

func (n *Binary) Eval() (Value, error) {
	l, err := n.L.Eval()
	if err != nil {
		return Value{}, err
	}
	r, err := n.R.Eval()
	if err != nil {
		return Value{}, err
	}
	return apply(n.Op, l, r, n.Pos)
}

func (n *Binary) String() string { return fmt.Sprintf("(%s %s %s)", n.L, n.Op, n.R) }
