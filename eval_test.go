package calcore_test

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/calcore"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "1", 1},
		{"frac", ".25", 0.25},
		{"plus", "+7", 7},
		{"neg", "-7", -7},
		{"add", "4+5+6", 4 + 5 + 6},
		{"sub", "4-5-6", 4 - 5 - 6},
		{"mul", "4*5*6", 4 * 5 * 6},
		{"div", "1/3", 0.33333333},
		{"mod", "7%4", 3},
		{"mod-frac", "5.5%2", 1.5},
		{"mod-neg-lhs", "-5%3", -2},
		{"mod-neg-rhs", "5%-3", 2},
		{"pow", "2^10", 1024},
		{"pow-frac", "2^0.5", 1.41421356},
		{"pow-neg", "2^-1", 0.5},
		{"pow-left", "2^3^2", 64},
		{"prec", "2+3*4", 14},
		{"prec-rev", "2*3+4", 10},
		{"unary-first", "-3+4", 1},
		{"unary-mul", "2*-3", -6},
		{"unary-pow", "-2^2", 4},
		{"parens", "(2+3)*4", 20},
		{"nested", "((2+3)*(4-1))^2", 225},
		{"noise", "0.1+0.2", 0.3},
		{"tiny", "10^-9", 0},
		{"mixed", "1+2/3*4+(1%4)^1.2", 4.66666667},
		{"mixed-mod", "1+(2-3)*4/5%6^7", 0.2},
		{"whitespace", " 1 +\n 2 * 3 ", 7},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calcore.EvalString(c.src)
			require.NoError(t, err)
			if r != c.r {
				t.Errorf("%q: want %v, got %v", c.src, c.r, r)
			}
		})
	}
}

func TestEvalIEEE(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		check func(float64) bool
	}{
		{"div-zero", "5/0", func(x float64) bool { return math.IsInf(x, 1) }},
		{"div-neg-zero", "-5/0", func(x float64) bool { return math.IsInf(x, -1) }},
		{"zero-div-zero", "0/0", math.IsNaN},
		{"mod-zero", "5%0", math.IsNaN},
		{"pow-neg-frac", "(-8)^(1/3)", math.IsNaN},
		{"inf-sub-inf", "1/0-1/0", math.IsNaN},
		{"big", strings.Repeat("9", 400), func(x float64) bool { return math.IsInf(x, 1) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calcore.EvalString(c.src)
			require.NoError(t, err)
			if !c.check(r) {
				t.Errorf("%q gave %v", c.src, r)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want interface{}
	}{
		{"lex-number", "1+2.2.2", new(*calcore.LexError)},
		{"lex-char", "1+a", new(*calcore.LexError)},
		{"unclosed", "(1+2", new(*calcore.SyntaxError)},
		{"unary", "-(1)", new(*calcore.SyntaxError)},
		{"empty", "", new(*calcore.SyntaxError)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calcore.EvalString(c.src)
			require.Error(t, err)
			assert.Zero(t, r)
			assert.True(t, errors.As(err, c.want), "%#v has the wrong type", err)
			var ierr calcore.InputError
			assert.True(t, errors.As(err, &ierr), "%#v is not an InputError", err)
		})
	}
}

func TestEvalUnclosedMessage(t *testing.T) {
	_, err := calcore.EvalString("(1+2")
	require.Error(t, err)
	assert.Equal(t, "5: unexpected end of input, expected ')'", err.Error())
}

func TestEvalExprMalformed(t *testing.T) {
	one := calcore.Number{Value: 1}
	cases := []struct {
		name string
		n    calcore.Expr
	}{
		{"nil", nil},
		{"nil-binary", (*calcore.BinaryOp)(nil)},
		{"nil-unary", (*calcore.UnaryOp)(nil)},
		{"binary-op", &calcore.BinaryOp{Op: calcore.Operator(42), Left: one, Right: one}},
		{"binary-zero-op", &calcore.BinaryOp{Left: one, Right: one}},
		{"unary-op", &calcore.UnaryOp{Op: calcore.Multiply, Operand: one}},
		{"missing-left", &calcore.BinaryOp{Op: calcore.Add, Right: one}},
		{"missing-operand", &calcore.UnaryOp{Op: calcore.Subtract}},
		{"deep", &calcore.BinaryOp{
			Op:    calcore.Add,
			Left:  one,
			Right: &calcore.BinaryOp{Op: calcore.Power, Left: one, Right: nil},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calcore.EvalExpr(c.n)
			require.Error(t, err)
			assert.Zero(t, r)
			var cerr *calcore.CalculateError
			require.True(t, errors.As(err, &cerr), "%#v is not a *CalculateError", err)
			assert.NotEmpty(t, err.Error())
		})
	}
}

func TestEvalIdempotent(t *testing.T) {
	srcs := []string{"1+2/3*4+(1%4)^1.2", "0.1+0.2", "5/0", "5%0", "2^0.5"}
	for _, src := range srcs {
		a, err := calcore.EvalString(src)
		require.NoError(t, err)
		b, err := calcore.EvalString(src)
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(a), math.Float64bits(b), "%q", src)

		e, err := calcore.ParseString(src)
		require.NoError(t, err)
		c, err := calcore.EvalExpr(e)
		require.NoError(t, err)
		d, err := calcore.EvalExpr(e)
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(a), math.Float64bits(c), "%q", src)
		assert.Equal(t, math.Float64bits(c), math.Float64bits(d), "%q", src)
	}
}

// TestEvalPowReference checks powers against bigfloat at high precision.
func TestEvalPowReference(t *testing.T) {
	cases := []struct{ x, y string }{
		{"2", "10"},
		{"1.5", "2.5"},
		{"9", "0.5"},
		{"10", "2.5"},
		{"7", "1.1"},
		{"1.01", "100"},
		{"123.456", "1.75"},
	}
	for _, c := range cases {
		t.Run(c.x+"^"+c.y, func(t *testing.T) {
			x, err := strconv.ParseFloat(c.x, 64)
			require.NoError(t, err)
			y, err := strconv.ParseFloat(c.y, 64)
			require.NoError(t, err)
			z := new(big.Float).SetPrec(256)
			bigfloat.Pow(z, new(big.Float).SetPrec(256).SetFloat64(x), new(big.Float).SetPrec(256).SetFloat64(y))
			want, _ := z.Float64()

			got, err := calcore.EvalString(c.x + "^" + c.y)
			require.NoError(t, err)
			assert.InEpsilon(t, want, got, 1e-8)
		})
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.3, calcore.Round(0.1+0.2))
	assert.Equal(t, 1.23456789, calcore.Round(1.234567891))
	assert.Equal(t, -1.23456789, calcore.Round(-1.234567891))
	assert.True(t, math.IsInf(calcore.Round(math.Inf(-1)), -1))
	assert.True(t, math.IsNaN(calcore.Round(math.NaN())))
}

func BenchmarkEval(b *testing.B) {
	b.Run("parse", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			calcore.EvalString("1+2/3*4+(1%4)^1.2")
		}
	})
	b.Run("tree", func(b *testing.B) {
		b.ReportAllocs()
		e, err := calcore.ParseString("1+2/3*4+(1%4)^1.2")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			calcore.EvalExpr(e)
		}
	})
}

func Example() {
	for _, src := range []string{"2+3*4", "2^3^2", "-3+4", "1+2/3*4+(1%4)^1.2", "5/0", "(1+2"} {
		r, err := calcore.EvalString(src)
		if err != nil {
			fmt.Printf("%-18s error: %v\n", src, err)
			continue
		}
		fmt.Printf("%-18s = %g\n", src, r)
	}

	// Output:
	// 2+3*4              = 14
	// 2^3^2              = 64
	// -3+4               = 1
	// 1+2/3*4+(1%4)^1.2  = 4.66666667
	// 5/0                = +Inf
	// (1+2               error: 5: unexpected end of input, expected ')'
}
