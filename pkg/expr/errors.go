package expr

import (
	"errors"
	"fmt"
)

// Kind classifies an evaluation failure.
type Kind int

const (
	MalformedExpression Kind = iota + 1
	DivisionByZero
	ModuloByZero
	NonFinite
)

func (k Kind) String() string {
	switch k {
	case MalformedExpression:
		return "MalformedExpression"
	case DivisionByZero:
		return "DivisionByZero"
	case ModuloByZero:
		return "ModuloByZero"
	case NonFinite:
		return "NonFinite"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels matched with errors.Is against any *Error of the same kind.
var (
	ErrMalformed      = errors.New("malformed expression")
	ErrDivisionByZero = errors.New("division by zero")
	ErrModuloByZero   = errors.New("modulo by zero")
	ErrNonFinite      = errors.New("result is not a finite number")
)

func (k Kind) sentinel() error {
	switch k {
	case MalformedExpression:
		return ErrMalformed
	case DivisionByZero:
		return ErrDivisionByZero
	case ModuloByZero:
		return ErrModuloByZero
	case NonFinite:
		return ErrNonFinite
	}
	return nil
}

// Error is returned by Parse and Evaluate. Pos is the byte offset in the
// expression of the offending token or operator.
type Error struct {
	Kind Kind
	Pos  int
	Msg  string
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%v at offset %d", e.Kind.sentinel(), e.Pos)
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func (e *Error) Unwrap() error { return e.Kind.sentinel() }

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func malformed(pos int, format string, args ...any) *Error {
	return &Error{Kind: MalformedExpression, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
