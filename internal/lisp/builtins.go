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
	"io"
)

// NewInitialEnvironment builds the root environment: binders and
// evaluator controls, list ops, arithmetic, connectives, and print!,
// with print! routed to output instead of a hardcoded stream so a REPL
// and a test both get to choose where output lands.
func NewInitialEnvironment(output io.Writer) *Environment {
	env := NewEnvironment()
	bind := func(name string, proc Value) {
		if err := env.Extend(NewVariable(name), proc); err != nil {
			panic("lisp: initial environment binding failed for " + name + ": " + err.Error())
		}
	}

	bind("define", prDefine())
	bind("let", prLet())
	bind("eval", prEval())
	bind("vau", prVau())
	bind("wrap", prWrap())
	bind("unwrap", prUnwrap())

	bind("list", prList())
	bind("list*", prListStar())
	bind("fst", prFst())
	bind("snd", prSnd())

	bind("+", prAdd())
	bind("*", prMul())
	bind("-", prSub())
	bind("/", prDiv())

	bind("and", prAnd())
	bind("or", prOr())
	bind("not", prNot())

	bind("print!", prPrint(output))
	bind("help", prHelp())

	return env
}

// toSlice walks a proper list into a Go slice, in order.
func toSlice(v Value) ([]Value, error) {
	if !v.IsList() {
		return nil, newError("expected a list, but got "+Show(v), &v, nil)
	}
	var out []Value
	cur := v
	for !cur.IsNil() {
		out = append(out, cur.pair.fst)
		cur = cur.pair.snd
	}
	return out, nil
}

//
// Binders / evaluator controls
//

// prDefine implements `(define NAME EXPR)`: an operative that evaluates
// EXPR in the current environment and binds the result to NAME there.
func prDefine() Value {
	return NewAtomic("(define NAME EXPR)", false, func(args Value, env *Environment, k Cont) (State, error) {
		name, err := args.Fst()
		if err != nil {
			return nil, err
		}
		rest, err := args.Snd()
		if err != nil {
			return nil, err
		}
		expr, err := rest.Fst()
		if err != nil {
			return nil, err
		}
		goValue := func(value Value) (State, error) {
			if err := env.Extend(name, value); err != nil {
				return nil, err
			}
			return k(Nil())
		}
		return EvalIn(expr, env, goValue), nil
	})
}

// prLet implements `(let ((k1 v1) (k2 v2) ...) body...)`: an operative
// that builds a child environment, binds each key left-to-right with vi
// evaluated in the accumulating child environment, then executes body.
func prLet() Value {
	return NewAtomic("(let ((NAME EXPR)...) BODY...)", false, func(args Value, env *Environment, k Cont) (State, error) {
		bindings, err := args.Fst()
		if err != nil {
			return nil, err
		}
		body, err := args.Snd()
		if err != nil {
			return nil, err
		}
		bindingList, err := toSlice(bindings)
		if err != nil {
			return nil, err
		}
		child := NewChildEnvironment(env)
		var bindNext func(i int) (State, error)
		bindNext = func(i int) (State, error) {
			if i >= len(bindingList) {
				return ExecIn(body, child, k), nil
			}
			pair := bindingList[i]
			name, err := pair.Fst()
			if err != nil {
				return nil, err
			}
			rest, err := pair.Snd()
			if err != nil {
				return nil, err
			}
			expr, err := rest.Fst()
			if err != nil {
				return nil, err
			}
			goValue := func(value Value) (State, error) {
				if err := child.Extend(name, value); err != nil {
					return nil, err
				}
				return bindNext(i + 1)
			}
			return EvalIn(expr, child, goValue), nil
		}
		return bindNext(0)
	})
}

// prEval implements `(eval EXPR ENV?)`: an applicative evaluating EXPR
// in ENV if given, else in the call-site environment.
func prEval() Value {
	return NewAtomic("(eval EXPR ENV?)", true, func(args Value, env *Environment, k Cont) (State, error) {
		items, err := toSlice(args)
		if err != nil {
			return nil, err
		}
		if len(items) < 1 || len(items) > 2 {
			return nil, newError("eval expects 1 or 2 arguments", &args, env)
		}
		target := env
		if len(items) == 2 {
			target, err = items[1].ToEnvironment()
			if err != nil {
				return nil, err
			}
		}
		return EvalIn(items[0], target, k), nil
	})
}

// prVau implements `(vau HEAD DYN BODY...)`: an operative returning an
// abstract procedure closing over the call-site (lexical) environment.
func prVau() Value {
	return NewAtomic("(vau HEAD DYN BODY...)", false, func(args Value, env *Environment, k Cont) (State, error) {
		head, err := args.Fst()
		if err != nil {
			return nil, err
		}
		rest, err := args.Snd()
		if err != nil {
			return nil, err
		}
		dyn, err := rest.Fst()
		if err != nil {
			return nil, err
		}
		body, err := rest.Snd()
		if err != nil {
			return nil, err
		}
		abstract, err := NewAbstract(head, body, dyn, env)
		if err != nil {
			return nil, err
		}
		return k(abstract)
	})
}

// prWrap implements `wrap`: an applicative building an applicative
// wrapper around its (already-evaluated) procedure argument.
func prWrap() Value {
	return NewAtomic("(wrap PROCEDURE)", true, func(args Value, env *Environment, k Cont) (State, error) {
		proc, err := args.Fst()
		if err != nil {
			return nil, err
		}
		wrapped, err := NewWrap(proc)
		if err != nil {
			return nil, err
		}
		return k(wrapped)
	})
}

// prUnwrap implements `unwrap`: the inverse of wrap; fails if the
// argument is not a wrap.
func prUnwrap() Value {
	return NewAtomic("(unwrap WRAP)", true, func(args Value, env *Environment, k Cont) (State, error) {
		wrap, err := args.Fst()
		if err != nil {
			return nil, err
		}
		inner, err := wrap.ToWrapBody()
		if err != nil {
			return nil, err
		}
		return k(inner)
	})
}

//
// List ops
//

func prList() Value {
	return NewAtomic("(list ARG...)", true, func(args Value, env *Environment, k Cont) (State, error) {
		return k(args)
	})
}

// prListStar implements `list*`: like list, but the final argument
// becomes the tail of the result instead of a list element.
func prListStar() Value {
	return NewAtomic("(list* ARG... TAIL)", true, func(args Value, env *Environment, k Cont) (State, error) {
		items, err := toSlice(args)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return k(Nil())
		}
		result := items[len(items)-1]
		for i := len(items) - 2; i >= 0; i-- {
			result = NewPair(items[i], result)
		}
		return k(result)
	})
}

func prFst() Value {
	return NewAtomic("(fst PAIR)", true, func(args Value, env *Environment, k Cont) (State, error) {
		pair, err := args.Fst()
		if err != nil {
			return nil, err
		}
		v, err := pair.Fst()
		if err != nil {
			return nil, err
		}
		return k(v)
	})
}

func prSnd() Value {
	return NewAtomic("(snd PAIR)", true, func(args Value, env *Environment, k Cont) (State, error) {
		pair, err := args.Fst()
		if err != nil {
			return nil, err
		}
		v, err := pair.Snd()
		if err != nil {
			return nil, err
		}
		return k(v)
	})
}

//
// Arithmetic
//

func prAdd() Value {
	return NewAtomic("(+ NUMBER...)", true, func(args Value, env *Environment, k Cont) (State, error) {
		items, err := toSlice(args)
		if err != nil {
			return nil, err
		}
		sum := 0.0
		for _, item := range items {
			n, err := item.ToNumber()
			if err != nil {
				return nil, err
			}
			sum += n
		}
		return k(NewNumber(sum))
	})
}

func prMul() Value {
	return NewAtomic("(* NUMBER...)", true, func(args Value, env *Environment, k Cont) (State, error) {
		items, err := toSlice(args)
		if err != nil {
			return nil, err
		}
		product := 1.0
		for _, item := range items {
			n, err := item.ToNumber()
			if err != nil {
				return nil, err
			}
			product *= n
		}
		return k(NewNumber(product))
	})
}

func prSub() Value {
	return NewAtomic("(- NUMBER NUMBER...)", true, func(args Value, env *Environment, k Cont) (State, error) {
		items, err := toSlice(args)
		if err != nil {
			return nil, err
		}
		if len(items) < 1 {
			return nil, newError("- requires at least one argument", &args, env)
		}
		acc, err := items[0].ToNumber()
		if err != nil {
			return nil, err
		}
		if len(items) == 1 {
			return k(NewNumber(acc))
		}
		for _, item := range items[1:] {
			n, err := item.ToNumber()
			if err != nil {
				return nil, err
			}
			acc -= n
		}
		return k(NewNumber(acc))
	})
}

func prDiv() Value {
	return NewAtomic("(/ NUMBER NUMBER...)", true, func(args Value, env *Environment, k Cont) (State, error) {
		items, err := toSlice(args)
		if err != nil {
			return nil, err
		}
		if len(items) < 1 {
			return nil, newError("/ requires at least one argument", &args, env)
		}
		acc, err := items[0].ToNumber()
		if err != nil {
			return nil, err
		}
		if len(items) == 1 {
			return k(NewNumber(acc))
		}
		for _, item := range items[1:] {
			n, err := item.ToNumber()
			if err != nil {
				return nil, err
			}
			if n == 0 {
				return nil, newError("division by zero", &args, env)
			}
			acc /= n
		}
		return k(NewNumber(acc))
	})
}

//
// Connectives
//

// prAnd implements `and`: an operative, short-circuiting left-to-right.
// An empty argument list is vacuously True.
func prAnd() Value {
	return NewAtomic("(and EXPR...)", false, func(args Value, env *Environment, k Cont) (State, error) {
		items, err := toSlice(args)
		if err != nil {
			return nil, err
		}
		var step func(i int) (State, error)
		step = func(i int) (State, error) {
			if i >= len(items) {
				return k(NewBoolean(true))
			}
			goValue := func(value Value) (State, error) {
				b, err := value.ToBoolean()
				if err != nil {
					return nil, err
				}
				if !b {
					return k(NewBoolean(false))
				}
				return step(i + 1)
			}
			return EvalIn(items[i], env, goValue), nil
		}
		return step(0)
	})
}

// prOr implements `or`: an operative, short-circuiting left-to-right. An
// empty argument list is vacuously False.
func prOr() Value {
	return NewAtomic("(or EXPR...)", false, func(args Value, env *Environment, k Cont) (State, error) {
		items, err := toSlice(args)
		if err != nil {
			return nil, err
		}
		var step func(i int) (State, error)
		step = func(i int) (State, error) {
			if i >= len(items) {
				return k(NewBoolean(false))
			}
			goValue := func(value Value) (State, error) {
				b, err := value.ToBoolean()
				if err != nil {
					return nil, err
				}
				if b {
					return k(NewBoolean(true))
				}
				return step(i + 1)
			}
			return EvalIn(items[i], env, goValue), nil
		}
		return step(0)
	})
}

func prNot() Value {
	return NewAtomic("(not BOOLEAN)", true, func(args Value, env *Environment, k Cont) (State, error) {
		v, err := args.Fst()
		if err != nil {
			return nil, err
		}
		b, err := v.ToBoolean()
		if err != nil {
			return nil, err
		}
		return k(NewBoolean(!b))
	})
}

//
// I/O
//

// prPrint implements `print!`: space-joined printed forms of its
// (already-evaluated) arguments, followed by a newline, to output.
func prPrint(output io.Writer) Value {
	return NewAtomic("(print! ARG...)", true, func(args Value, env *Environment, k Cont) (State, error) {
		items, err := toSlice(args)
		if err != nil {
			return nil, err
		}
		for i, item := range items {
			if i > 0 {
				io.WriteString(output, " ")
			}
			Write(output, item)
		}
		io.WriteString(output, "\n")
		return k(Nil())
	})
}

// prHelp implements `(help PROCEDURE)`: an applicative returning the
// procedure's signature as a String, or Nil for abstract/wrap procedures
// which carry no stored signature.
func prHelp() Value {
	return NewAtomic("(help PROCEDURE)", true, func(args Value, env *Environment, k Cont) (State, error) {
		proc, err := args.Fst()
		if err != nil {
			return nil, err
		}
		if !proc.IsProcedure() {
			return nil, newTypeError("procedure", proc)
		}
		sig := proc.Signature()
		if sig == "" {
			return k(Nil())
		}
		return k(NewString(sig))
	})
}
