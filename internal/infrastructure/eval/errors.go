package eval

import (
	"errors"
	"fmt"
)

// InputError is implemented by every error that describes a user
// mistake, as opposed to an infrastructure failure. Pos is the 1-based
// rune column the mistake was detected at, or 0 when no single column
// applies.
type InputError interface {
	error
	Pos() int
}

// Position extracts the column from an error chain, 0 when none.
func Position(err error) int {
	var ie InputError
	if errors.As(err, &ie) {
		return ie.Pos()
	}
	return 0
}

// EmptyExpressionError indicates an expression with no tokens in it.
type EmptyExpressionError struct{}

func (e *EmptyExpressionError) Error() string {
	return "empty expression"
}

func (e *EmptyExpressionError) Pos() int {
	return 0
}

// SyntaxError indicates input the lexer or parser could not accept.
type SyntaxError struct {
	Col int
	Msg string
}

func (e *SyntaxError) Error() string {
	if e.Col <= 0 {
		return fmt.Sprintf("syntax error: %s", e.Msg)
	}
	return fmt.Sprintf("syntax error at column %d: %s", e.Col, e.Msg)
}

func (e *SyntaxError) Pos() int {
	return e.Col
}

// UnknownSymbolError indicates a name that does not resolve: an
// undefined variable, a call of something that is not a function, or a
// function used where a value was expected. Reason overrides the
// default message for the latter two.
type UnknownSymbolError struct {
	Col    int
	Name   string
	Reason string
}

func (e *UnknownSymbolError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s at column %d", e.Reason, e.Col)
	}
	return fmt.Sprintf("unknown symbol '%s' at column %d", e.Name, e.Col)
}

func (e *UnknownSymbolError) Pos() int {
	return e.Col
}

// DivisionError indicates a zero divisor, including the zero modulus
// and zero raised to a negative power.
type DivisionError struct {
	Col int
}

func (e *DivisionError) Error() string {
	return fmt.Sprintf("division by zero at column %d", e.Col)
}

func (e *DivisionError) Pos() int {
	return e.Col
}

// DomainError indicates an argument outside the domain of an operator
// or function, such as a fractional bitwise operand or sqrt(-1).
type DomainError struct {
	Col int
	Msg string
}

func (e *DomainError) Error() string {
	if e.Col <= 0 {
		return fmt.Sprintf("domain error: %s", e.Msg)
	}
	return fmt.Sprintf("domain error at column %d: %s", e.Col, e.Msg)
}

func (e *DomainError) Pos() int {
	return e.Col
}

// OverflowError indicates a result that left the representable range,
// either a non-finite float from finite operands or a shift count
// beyond the cap.
type OverflowError struct {
	Col int
	Msg string
}

func (e *OverflowError) Error() string {
	if e.Col <= 0 {
		return fmt.Sprintf("overflow: %s", e.Msg)
	}
	return fmt.Sprintf("overflow at column %d: %s", e.Col, e.Msg)
}

func (e *OverflowError) Pos() int {
	return e.Col
}

// CallError indicates a known function called with the wrong number of
// arguments.
type CallError struct {
	Col  int
	Func string
	Got  int
}

func (e *CallError) Error() string {
	return fmt.Sprintf("cannot call %s with %d arguments at column %d", e.Func, e.Got, e.Col)
}

func (e *CallError) Pos() int {
	return e.Col
}

var (
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*UnknownSymbolError)(nil)
	_ InputError = (*DivisionError)(nil)
	_ InputError = (*DomainError)(nil)
	_ InputError = (*OverflowError)(nil)
	_ InputError = (*CallError)(nil)
)
