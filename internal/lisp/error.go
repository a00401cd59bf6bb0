/*
Copyright (C) 2023  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package lisp

import (
	"errors"
	"fmt"
)

// ErrIncompleteInput marks a read error caused by an unclosed `(` or an
// unterminated string running off the end of the source text, as
// opposed to a genuine syntax error (e.g. an unmatched `)`). A REPL uses
// this distinction to decide whether to keep accumulating a multi-line
// form or to report the error and start over.
var ErrIncompleteInput = errors.New("incomplete input")

// EvalError is the single error kind raised by this package: a
// human-readable message plus an optional offending value and
// environment.
type EvalError struct {
	Message string
	Value   *Value
	Env     *Environment
	cause   error
}

func (e *EvalError) Error() string { return e.Message }

func (e *EvalError) Unwrap() error { return e.cause }

func newError(message string, value *Value, env *Environment) *EvalError {
	return &EvalError{Message: message, Value: value, Env: env}
}

func newIncompleteInputError(message string) *EvalError {
	return &EvalError{Message: message, cause: ErrIncompleteInput}
}

func newTypeError(want string, got Value) *EvalError {
	msg := fmt.Sprintf("expected a %s, but got %s", want, Show(got))
	return newError(msg, &got, nil)
}

// wrapAtomicError re-wraps an error raised while applying an atomic
// procedure with the procedure's signature and argument list.
func wrapAtomicError(proc *Atomic, args Value, err error) *EvalError {
	msg := fmt.Sprintf(
		"lisp produced an error while applying the atomic procedure\n\n%s\n\nto the argument list\n\n%s\n\n%s",
		proc.Signature, Show(args), err.Error(),
	)
	return &EvalError{Message: msg, cause: err}
}

// wrapAbstractError re-wraps an error raised while applying an abstract
// procedure.
func wrapAbstractError(proc *Abstract, args Value, err error) *EvalError {
	msg := fmt.Sprintf(
		"lisp produced an error while applying the abstract procedure\n\n(vau %s %s\n  %s)\n\nto the argument list\n\n%s\n\n%s",
		Show(proc.Head), Show(proc.Dynamic), Show(proc.Body), Show(args), err.Error(),
	)
	return &EvalError{Message: msg, cause: err}
}
