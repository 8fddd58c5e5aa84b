// Package calcore implements a double-precision calculator for arithmetic
// expressions.
//
// Expressions are made of decimal numbers, parentheses, and the operators
// + - * / % ^. Operators group left to right within a precedence level, and
// that includes ^, so "2^3^2" is "(2^3)^2". A leading + or - applies only to
// the number immediately after it: "-3+4" is 1, while "-(3)" is an error.
//
// Division and remainder by zero give infinities and NaNs rather than errors.
// The result of an evaluation is rounded to 8 decimal places.
//
// Parsing and evaluation recurse once per level of parenthesis nesting and
// once per step up in operator precedence. Without the MaxDepth parse option,
// deeply nested input is limited only by the goroutine stack.
package calcore
