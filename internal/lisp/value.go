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
	"strconv"
)

// Kind tags the variant stored in a Value, playing the role a packed
// tag byte would in a hand-optimized tagged union, but without unsafe
// pointer packing: this interpreter is not on a hot perf path, so a
// plain discriminated struct is the honest idiom.
type Kind uint8

const (
	KindNil Kind = iota
	KindPair
	KindConstant
	KindVariable
	KindKeyword
	KindBoolean
	KindNumber
	KindString
	KindEnvironment
	KindAtomic
	KindAbstract
	KindWrap
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindPair:
		return "pair"
	case KindConstant:
		return "constant"
	case KindVariable:
		return "variable"
	case KindKeyword:
		return "keyword"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindEnvironment:
		return "environment"
	case KindAtomic:
		return "atomic"
	case KindAbstract:
		return "abstract"
	case KindWrap:
		return "wrap"
	default:
		return "unknown"
	}
}

// pairCell is the heap-allocated cons cell backing a Pair value. Pairs
// share fst/snd by pointer, never by copy.
type pairCell struct {
	fst, snd Value
}

// Value is the closed sum of runtime values this interpreter operates
// on. Zero Value is Nil.
type Value struct {
	kind Kind

	name string // Constant / Variable / Keyword name
	num  float64
	str  string
	flag bool // Boolean

	pair     *pairCell
	env      *Environment
	atomic   *Atomic
	abstract *Abstract
	wrap     *wrapCell
}

type wrapCell struct {
	inner Value
}

//
// Constructors
//

func Nil() Value { return Value{kind: KindNil} }

func NewPair(fst, snd Value) Value {
	return Value{kind: KindPair, pair: &pairCell{fst: fst, snd: snd}}
}

func NewConstant(name string) Value {
	return Value{kind: KindConstant, name: name}
}

func NewVariable(name string) Value {
	return Value{kind: KindVariable, name: name}
}

func NewKeyword(name string) Value {
	return Value{kind: KindKeyword, name: name}
}

func NewBoolean(b bool) Value {
	return Value{kind: KindBoolean, flag: b}
}

func NewNumber(v float64) Value {
	return Value{kind: KindNumber, num: v}
}

func NewString(s string) Value {
	return Value{kind: KindString, str: s}
}

func newEnvironmentValue(e *Environment) Value {
	return Value{kind: KindEnvironment, env: e}
}

func newAtomicValue(a *Atomic) Value {
	return Value{kind: KindAtomic, atomic: a}
}

// NewAbstract builds an abstract procedure: the result of `vau`. head is
// either a Variable or a proper list of Variables; body is a (possibly
// empty) list of expressions; dynamic is the Variable that receives the
// call-site environment; lexical is the environment captured at the
// `vau` call site.
func NewAbstract(head, body, dynamic Value, lexical *Environment) (Value, error) {
	if !body.IsList() {
		return Value{}, newError("vau body must be a list", &body, nil)
	}
	return Value{kind: KindAbstract, abstract: &Abstract{
		Identity: newIdentity(), Head: head, Body: body, Dynamic: dynamic, Lexical: lexical,
	}}, nil
}

// NewWrap builds an applicative wrapper around proc.
func NewWrap(proc Value) (Value, error) {
	if !proc.IsProcedure() {
		return Value{}, newError("wrap expects a procedure", &proc, nil)
	}
	return Value{kind: KindWrap, wrap: &wrapCell{inner: proc}}, nil
}

// List builds a proper list from the given values, right-associating
// Pairs and terminating in Nil.
func List(values ...Value) Value {
	state := Nil()
	for i := len(values) - 1; i >= 0; i-- {
		state = NewPair(values[i], state)
	}
	return state
}

//
// Predicates
//

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNil() bool  { return v.kind == KindNil }
func (v Value) IsPair() bool { return v.kind == KindPair }

// IsList reports whether v is Nil or a Pair whose snd is a list.
func (v Value) IsList() bool {
	switch v.kind {
	case KindNil:
		return true
	case KindPair:
		return v.pair.snd.IsList()
	default:
		return false
	}
}

func (v Value) IsConstant() bool    { return v.kind == KindConstant }
func (v Value) IsVariable() bool    { return v.kind == KindVariable }
func (v Value) IsSymbol() bool      { return v.kind == KindConstant || v.kind == KindVariable }
func (v Value) IsKeyword() bool     { return v.kind == KindKeyword }
func (v Value) IsBoolean() bool     { return v.kind == KindBoolean }
func (v Value) IsNumber() bool      { return v.kind == KindNumber }
func (v Value) IsString() bool      { return v.kind == KindString }
func (v Value) IsEnvironment() bool { return v.kind == KindEnvironment }
func (v Value) IsAtomic() bool      { return v.kind == KindAtomic }
func (v Value) IsAbstract() bool    { return v.kind == KindAbstract }
func (v Value) IsWrap() bool        { return v.kind == KindWrap }

func (v Value) IsProcedure() bool {
	return v.kind == KindAtomic || v.kind == KindAbstract || v.kind == KindWrap
}

//
// Coercions — each fails with a typed error when the variant does not match.
//

func (v Value) Fst() (Value, error) {
	if v.kind != KindPair {
		return Value{}, newTypeError("pair", v)
	}
	return v.pair.fst, nil
}

func (v Value) Snd() (Value, error) {
	if v.kind != KindPair {
		return Value{}, newTypeError("pair", v)
	}
	return v.pair.snd, nil
}

func (v Value) ToSymbolName() (string, error) {
	if v.kind != KindConstant && v.kind != KindVariable {
		return "", newTypeError("symbol", v)
	}
	return v.name, nil
}

func (v Value) ToVariable() (string, error) {
	if v.kind != KindVariable {
		return "", newTypeError("variable", v)
	}
	return v.name, nil
}

func (v Value) ToConstant() (string, error) {
	if v.kind != KindConstant {
		return "", newTypeError("constant", v)
	}
	return v.name, nil
}

func (v Value) ToKeyword() (string, error) {
	if v.kind != KindKeyword {
		return "", newTypeError("keyword", v)
	}
	return v.name, nil
}

func (v Value) ToBoolean() (bool, error) {
	if v.kind != KindBoolean {
		return false, newTypeError("boolean", v)
	}
	return v.flag, nil
}

func (v Value) ToNumber() (float64, error) {
	if v.kind != KindNumber {
		return 0, newTypeError("number", v)
	}
	return v.num, nil
}

func (v Value) ToString() (string, error) {
	if v.kind != KindString {
		return "", newTypeError("string", v)
	}
	return v.str, nil
}

func (v Value) ToEnvironment() (*Environment, error) {
	if v.kind != KindEnvironment {
		return nil, newTypeError("environment", v)
	}
	return v.env, nil
}

func (v Value) ToWrapBody() (Value, error) {
	if v.kind != KindWrap {
		return Value{}, newError("expected a wrapped procedure, but got "+Show(v), &v, nil)
	}
	return v.wrap.inner, nil
}

// ListLen returns the length of a proper list and whether v is in fact
// a proper list.
func (v Value) ListLen() (int, bool) {
	n := 0
	cur := v
	for {
		switch cur.kind {
		case KindNil:
			return n, true
		case KindPair:
			n++
			cur = cur.pair.snd
		default:
			return n, false
		}
	}
}

// ListRef indexes into a proper list, erroring out of bounds.
func (v Value) ListRef(index int) (Value, error) {
	if !v.IsList() {
		return Value{}, newError("expected a list, but got "+Show(v), &v, nil)
	}
	cur := v
	i := index
	for !cur.IsNil() {
		if i == 0 {
			return cur.pair.fst, nil
		}
		i--
		cur = cur.pair.snd
	}
	return Value{}, newError("list index out of bounds: "+strconv.Itoa(index), &v, nil)
}

//
// Equality — structural on data, identity on procedures and environments.
//

// Equal is structural on data, identity on procedures and environments.
// Atomic and Abstract compare by their stamped Identity rather than by Go
// pointer, so a procedure value copied or reconstructed around the same
// Identity (e.g. by a host-side cache) still compares equal to itself.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindPair:
		return Equal(a.pair.fst, b.pair.fst) && Equal(a.pair.snd, b.pair.snd)
	case KindConstant, KindVariable, KindKeyword:
		return a.name == b.name
	case KindBoolean:
		return a.flag == b.flag
	case KindNumber:
		return a.num == b.num
	case KindString:
		return a.str == b.str
	case KindEnvironment:
		return a.env == b.env
	case KindAtomic:
		return a.atomic == b.atomic || a.atomic.Identity == b.atomic.Identity
	case KindAbstract:
		return a.abstract == b.abstract || a.abstract.Identity == b.abstract.Identity
	case KindWrap:
		return a.wrap == b.wrap
	default:
		return false
	}
}
