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

import "github.com/google/uuid"

// AtomicFn is the host-callable body of a built-in procedure. It
// receives the (possibly already-evaluated, for applicatives) argument
// list, the call-site environment, and the continuation it must invoke
// exactly once on its success path.
type AtomicFn func(args Value, env *Environment, k Cont) (State, error)

// Atomic is a built-in, host-implemented procedure.
type Atomic struct {
	Identity    uuid.UUID
	Signature   string // printable help string, e.g. "(+ NUMBER...)"
	Applicative bool
	Fn          AtomicFn
}

// Abstract is a user-defined operative: the result of `vau`.
type Abstract struct {
	Identity uuid.UUID
	Head     Value // a Variable, or a proper list of Variables
	Body     Value // list of expressions
	Dynamic  Value // Variable bound to the call-site environment
	Lexical  *Environment
}

// NewAtomic builds an atomic procedure value and stamps it with a fresh
// identity.
func NewAtomic(signature string, applicative bool, fn AtomicFn) Value {
	return newAtomicValue(&Atomic{
		Identity:    newIdentity(),
		Signature:   signature,
		Applicative: applicative,
		Fn:          fn,
	})
}

// Signature returns the printable help text for any procedure value, or
// "" for abstract/wrap procedures which carry no stored signature.
func (v Value) Signature() string {
	if v.kind == KindAtomic {
		return v.atomic.Signature
	}
	return ""
}

// AsAtomic returns the underlying Atomic, or nil if v is not one.
func (v Value) AsAtomic() *Atomic { return v.atomic }

// AsAbstract returns the underlying Abstract, or nil if v is not one.
func (v Value) AsAbstract() *Abstract { return v.abstract }
