package calcore

import (
	"io"
	"math"
	"strings"
)

// precision is the scale to which final results are rounded.
const precision = 1e8

// EvalExpr evaluates an expression tree and rounds the result to 8 decimal
// places. The error is non-nil only if the tree is malformed, which a tree
// returned by Parse never is.
func EvalExpr(e Expr) (float64, error) {
	v, err := eval(e)
	if err != nil {
		return 0, err
	}
	return Round(v), nil
}

// Round rounds v to the nearest multiple of 1e-8. Infinities and NaN are
// unchanged, as are values so large that scaling them overflows.
func Round(v float64) float64 {
	return math.Round(v*precision) / precision
}

// eval computes the exact floating-point value of a subtree.
func eval(e Expr) (float64, error) {
	switch n := e.(type) {
	case Number:
		return n.Value, nil
	case *UnaryOp:
		if n == nil {
			return 0, &CalculateError{Node: e}
		}
		x, err := eval(n.Operand)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case Add:
			return x, nil
		case Subtract:
			return -x, nil
		default:
			return 0, &CalculateError{Node: e}
		}
	case *BinaryOp:
		if n == nil {
			return 0, &CalculateError{Node: e}
		}
		x, err := eval(n.Left)
		if err != nil {
			return 0, err
		}
		y, err := eval(n.Right)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case Add:
			return x + y, nil
		case Subtract:
			return x - y, nil
		case Multiply:
			return x * y, nil
		case Divide:
			// Division by zero is ±Inf or NaN, not an error.
			return x / y, nil
		case Mod:
			return math.Mod(x, y), nil
		case Power:
			return math.Pow(x, y), nil
		default:
			return 0, &CalculateError{Node: e}
		}
	default:
		return 0, &CalculateError{Node: e}
	}
}

// Eval is a shortcut to parse an expression and return its rounded result.
func Eval(src io.RuneScanner, opts ...ParseOption) (float64, error) {
	e, err := Parse(src, opts...)
	if err != nil {
		return 0, err
	}
	return EvalExpr(e)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ParseOption) (float64, error) {
	return Eval(strings.NewReader(src), opts...)
}

// CalculateError is an error from evaluating a tree that contains a node
// which cannot be reduced, such as a nil node or an unknown operator.
type CalculateError struct {
	// Node is the node which could not be evaluated.
	Node Expr
}

func (err *CalculateError) Error() string {
	if err.Node == nil {
		return "cannot evaluate missing node"
	}
	var b strings.Builder
	fmtsub(&b, err.Node, false)
	return "cannot evaluate node " + b.String()
}
