package calcore

import (
	"errors"
	"strconv"
)

// SyntaxError is an error indicating a token that does not fit the grammar at
// its position. It implements InputError.
type SyntaxError struct {
	// Col is the position of the unexpected token.
	Col int
	// Found describes the unexpected token.
	Found string
	// Expected describes what the parser would have accepted instead.
	Expected string
	// eof records whether the unexpected token was the end of the input.
	eof bool
}

func (err *SyntaxError) Error() string {
	return errpos(err.Col, "unexpected "+err.Found+", expected "+err.Expected)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// Incomplete returns whether the input ended where more was expected, so that
// appending to the input could make it valid.
func (err *SyntaxError) Incomplete() bool {
	return err.eof
}

// unexpected creates a SyntaxError for tok.
func unexpected(tok Token, want string) *SyntaxError {
	return &SyntaxError{
		Col:      tok.Pos,
		Found:    tok.String(),
		Expected: want,
		eof:      tok.Kind == TokenEOF,
	}
}

// DepthError is an error indicating parentheses nested more deeply than the
// MaxDepth parse option allows. It implements InputError.
type DepthError struct {
	// Col is the position of the open parenthesis that exceeded the limit.
	Col int
	// Max is the maximum depth.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "parentheses nested deeper than "+strconv.Itoa(err.Max))
}

func (err *DepthError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

// IsIncomplete returns whether err indicates that the input ended early.
func IsIncomplete(err error) bool {
	var s *SyntaxError
	return errors.As(err, &s) && s.Incomplete()
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*LexError)(nil)
)
