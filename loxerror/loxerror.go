// Package loxerror defines the error type shared by every stage of the Lox pipeline.
package loxerror

import (
	"errors"
	"fmt"

	"github.com/aldenridge/lox/ansi"
	"github.com/aldenridge/lox/token"
)

// Error describes a problem encountered while scanning, parsing, resolving or evaluating a Lox program.
// It is always attributable to a single position in the source.
type Error struct {
	Pos token.Position
	Msg string
}

// New creates an [*Error] positioned at pos.
func New(pos token.Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// NewFromToken creates an [*Error] positioned at tok.
func NewFromToken(tok token.Token, format string, args ...any) *Error {
	return New(tok.Pos, format, args...)
}

// Error formats the error as it is printed on stderr:
//
//	[line 3] Error: Undefined variable 'x'.
func (e *Error) Error() string {
	return ansi.Sprint("[", e.Pos, "] ", "${BOLD}${RED}Error: ${RESET}", e.Msg)
}

// List is an accumulator of errors produced by a single pipeline stage.
type List []*Error

// Add appends a new error to the list.
func (l *List) Add(pos token.Position, format string, args ...any) {
	*l = append(*l, New(pos, format, args...))
}

// AddFromToken appends a new error positioned at tok to the list.
func (l *List) AddFromToken(tok token.Token, format string, args ...any) {
	*l = append(*l, NewFromToken(tok, format, args...))
}

// Err returns the accumulated errors joined into a single error, or nil if the list is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errors.Join(errs...)
}
