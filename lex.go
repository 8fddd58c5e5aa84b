package calcore

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a single lexical unit of an expression.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Value is the value of a TokenNumber. It is zero for other kinds.
	Value float64
	// Pos is the column of the first rune of the token, counting from 1.
	Pos int
}

func (t Token) String() string {
	if t.Kind == TokenNumber {
		return "number " + strconv.FormatFloat(t.Value, 'g', -1, 64)
	}
	return t.Kind.String()
}

// Operator returns the operator that t denotes. The second result is false if
// t is not an operator token.
func (t Token) Operator() (Operator, bool) {
	switch t.Kind {
	case TokenPlus:
		return Add, true
	case TokenMinus:
		return Subtract, true
	case TokenStar:
		return Multiply, true
	case TokenSlash:
		return Divide, true
	case TokenPercent:
		return Mod, true
	case TokenCaret:
		return Power, true
	default:
		return 0, false
	}
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	// TokenEOF indicates the end of the input.
	TokenEOF TokenKind = iota
	// TokenNumber is a numeric literal.
	TokenNumber
	TokenOpenParen
	TokenCloseParen
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenCaret
	TokenPercent
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenNumber:
		return "number"
	case TokenOpenParen:
		return "'('"
	case TokenCloseParen:
		return "')'"
	case TokenPlus:
		return "'+'"
	case TokenMinus:
		return "'-'"
	case TokenStar:
		return "'*'"
	case TokenSlash:
		return "'/'"
	case TokenCaret:
		return "'^'"
	case TokenPercent:
		return "'%'"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// symbols maps single-rune tokens to their kinds.
var symbols = map[rune]TokenKind{
	'(': TokenOpenParen,
	')': TokenCloseParen,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'^': TokenCaret,
	'%': TokenPercent,
}

// Lexer produces tokens from an expression one at a time.
type Lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	eof  bool
}

// NewLexer creates a lexer reading from src.
func NewLexer(src io.RuneScanner) *Lexer {
	return &Lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *Lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *Lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// Next scans the next token from the input. Once the input is exhausted, every
// call returns a TokenEOF token with a nil error.
func (l *Lexer) Next() (Token, error) {
	if l.eof {
		return Token{Kind: TokenEOF, Pos: l.rune + 1}, nil
	}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
				return Token{Kind: TokenEOF, Pos: l.rune + 1}, nil
			}
			return Token{Pos: l.rune}, err
		}
		pos := l.rune
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			v, err := l.scanNum()
			if err != nil {
				return Token{Pos: pos}, err
			}
			return Token{Kind: TokenNumber, Value: v, Pos: pos}, nil
		default:
			if k, ok := symbols[r]; ok {
				return Token{Kind: k, Pos: pos}, nil
			}
			return Token{Pos: pos}, &LexError{Kind: UnknownChar, Text: string(r), Col: pos}
		}
	}
}

// scanNum collects a run of digits and dots and parses it. Whether the run is
// a well-formed number is left entirely to strconv.
func (l *Lexer) scanNum() (float64, error) {
	defer l.buf.Reset()
	col := l.rune + 1
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, err
		}
		if !('0' <= r && r <= '9' || r == '.') {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	text := l.buf.String()
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &LexError{Kind: InvalidNumber, Text: text, Col: col}
	}
	// Out of range literals are ±Inf, which is what ParseFloat returns.
	return v, nil
}

// Tokenize scans all tokens of src. The last token of a successful result is
// always TokenEOF.
func Tokenize(src string) ([]Token, error) {
	l := NewLexer(strings.NewReader(src))
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

// LexErrorKind distinguishes the ways a lexer can fail.
type LexErrorKind int8

const (
	// InvalidNumber is a run of digits and dots that is not a number, e.g.
	// "1.2.3".
	InvalidNumber LexErrorKind = iota + 1
	// UnknownChar is a character that cannot appear in an expression.
	UnknownChar
)

func (k LexErrorKind) String() string {
	switch k {
	case InvalidNumber:
		return "invalid number"
	case UnknownChar:
		return "unknown character"
	default:
		return "LexErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Kind is the reason the token is invalid.
	Kind LexErrorKind
	// Text is the literal that failed to parse for InvalidNumber, or the
	// offending character for UnknownChar.
	Text string
	// Col is the position of the start of the invalid token.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, err.Kind.String()+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}
