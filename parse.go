package calcore

import (
	"io"
	"strings"
)

// Expr = Unit { binop Unit }
// Unit = num | ('+' | '-') num | '(' Expr ')'
// binop = '+' | '-' | '*' | '/' | '%' | '^'
//
// Binary operators are left-associative at every precedence level.

// Parser builds an expression tree from tokens with one token of lookahead.
// A Parser parses a single expression.
type Parser struct {
	lex   *Lexer
	peek  Token
	ctx   parsectx
	depth int
}

// NewParser creates a parser reading from src. The first token is scanned
// immediately, so the error is non-nil if it is invalid.
func NewParser(src io.RuneScanner, opts ...ParseOption) (*Parser, error) {
	p := Parser{
		lex: NewLexer(src),
		ctx: newParsectx(opts),
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &p, nil
}

// advance replaces the lookahead with the next token from the lexer.
func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

// ParseExpr parses the entire input as one expression.
func (p *Parser) ParseExpr() (Expr, error) {
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek.Kind != TokenEOF {
		return nil, unexpected(p.peek, "operator or end of input")
	}
	return n, nil
}

// parseExpr parses a full expression, stopping at the first token which
// cannot continue it.
func (p *Parser) parseExpr() (Expr, error) {
	lhs, err := p.parseUnit()
	if err != nil {
		return nil, err
	}
	return p.parseBinop(0, lhs)
}

// parseUnit parses a number, a signed number, or a parenthesized expression.
func (p *Parser) parseUnit() (Expr, error) {
	tok := p.peek
	switch tok.Kind {
	case TokenNumber:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return Number{Value: tok.Value}, nil
	case TokenPlus, TokenMinus:
		// A sign binds only to the literal right after it.
		op, _ := tok.Operator()
		if err := p.advance(); err != nil {
			return nil, err
		}
		num := p.peek
		if num.Kind != TokenNumber {
			return nil, unexpected(num, "number after unary "+op.String())
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &UnaryOp{Op: op, Operand: Number{Value: num.Value}}, nil
	case TokenOpenParen:
		if p.ctx.maxDepth > 0 && p.depth >= p.ctx.maxDepth {
			return nil, &DepthError{Col: tok.Pos, Max: p.ctx.maxDepth}
		}
		p.depth++
		defer func() { p.depth-- }()
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek.Kind != TokenCloseParen {
			return nil, unexpected(p.peek, "')'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, unexpected(tok, "number or '('")
	}
}

// parseBinop extends lhs with every following operator that binds at least
// as tightly as minPrec. An operator binding more tightly than the one before
// it pulls the right operand into its own subtree.
func (p *Parser) parseBinop(minPrec int, lhs Expr) (Expr, error) {
	for {
		op, ok := binop(p.peek)
		if !ok || op.prec < minPrec {
			return lhs, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseUnit()
		if err != nil {
			return nil, err
		}
		if next, ok := binop(p.peek); ok && next.prec > op.prec {
			rhs, err = p.parseBinop(op.prec+1, rhs)
			if err != nil {
				return nil, err
			}
		}
		lhs = &BinaryOp{Op: op.op, Left: lhs, Right: rhs}
	}
}

// Parse parses an expression.
func Parse(src io.RuneScanner, opts ...ParseOption) (Expr, error) {
	p, err := NewParser(src, opts...)
	if err != nil {
		return nil, err
	}
	return p.ParseExpr()
}

// ParseString is a shortcut to parse a string expression.
func ParseString(src string, opts ...ParseOption) (Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int
	// op is the operator to use in the parsed node.
	op Operator
}

// binop gets the binary operator for a token. The second result is false if
// the token is not an operator.
func binop(tok Token) (operator, bool) {
	op, ok := tok.Operator()
	if !ok {
		return operator{}, false
	}
	return operator{prec: precedence(op), op: op}, true
}

func precedence(op Operator) int {
	switch op {
	case Add, Subtract:
		return 5
	case Multiply, Divide, Mod:
		return 10
	case Power:
		return 15
	default:
		return 0
	}
}
