package calcore

import (
	"strconv"
	"strings"
)

// Operator is an arithmetic operation.
type Operator int8

const (
	Add Operator = iota + 1
	Subtract
	Multiply
	Divide
	Mod
	Power
)

func (op Operator) String() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Mod:
		return "%"
	case Power:
		return "^"
	default:
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
}

// Expr is a node in the abstract syntax tree of an expression. The concrete
// types are Number, *UnaryOp, and *BinaryOp. A tree produced by Parse is never
// modified afterward, so it may be evaluated any number of times from any
// number of goroutines.
type Expr interface {
	// String formats the tree with every term bracketed, alternating round
	// and square brackets by depth.
	String() string

	fmt(b *strings.Builder, square bool)
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

// UnaryOp is a sign applied to a number. Op is Add or Subtract.
type UnaryOp struct {
	Op      Operator
	Operand Expr
}

// BinaryOp is an arithmetic operation on two terms.
type BinaryOp struct {
	Op          Operator
	Left, Right Expr
}

func (n Number) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *UnaryOp) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *BinaryOp) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func brackets(square bool) (l, r byte) {
	if square {
		return '[', ']'
	}
	return '(', ')'
}

func (n Number) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	b.WriteByte(r)
}

func (n *UnaryOp) fmt(b *strings.Builder, square bool) {
	if n == nil {
		b.WriteByte('$')
		return
	}
	l, r := brackets(square)
	b.WriteByte(l)
	defer b.WriteByte(r)
	b.WriteString(n.Op.String())
	fmtsub(b, n.Operand, !square)
}

func (n *BinaryOp) fmt(b *strings.Builder, square bool) {
	if n == nil {
		b.WriteByte('$')
		return
	}
	l, r := brackets(square)
	b.WriteByte(l)
	defer b.WriteByte(r)
	fmtsub(b, n.Left, !square)
	b.WriteByte(' ')
	b.WriteString(n.Op.String())
	b.WriteByte(' ')
	fmtsub(b, n.Right, !square)
}

// fmtsub formats a child node. Missing children are written as $, which
// cannot appear in a parsed expression.
func fmtsub(b *strings.Builder, n Expr, square bool) {
	if n == nil {
		b.WriteByte('$')
		return
	}
	n.fmt(b, square)
}

var (
	_ Expr = Number{}
	_ Expr = (*UnaryOp)(nil)
	_ Expr = (*BinaryOp)(nil)
)
