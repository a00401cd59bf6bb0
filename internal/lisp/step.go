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

// Cont is a continuation: a host function value consuming a Lisp value
// and returning the next State. Representing continuations as Go
// closures, rather than an explicit per-frame-shape sum type, keeps
// the implementation a direct, checkable state machine while still
// satisfying the no-host-recursion requirement: invoking a Cont only
// ever *constructs* the next State, it never calls Step itself.
type Cont func(Value) (State, error)

// State is the closed set of step-machine states: Ok, Eval,
// Evlis, Exec, Apply.
type State interface {
	isState()
}

// OkState is the terminal state; Value is the final result.
type OkState struct {
	Value Value
}

func (OkState) isState() {}

// EvalState evaluates one expression in env, then invokes K.
type EvalState struct {
	Expr Value
	Env  *Environment
	K    Cont
}

func (EvalState) isState() {}

// EvlisState evaluates each element of a list left-to-right, building
// the list of results, then invokes K.
type EvlisState struct {
	Exprs Value
	Env   *Environment
	K     Cont
}

func (EvlisState) isState() {}

// ExecState executes a body (list of expressions), invoking K with the
// value of the last one (or Nil if the body is empty).
type ExecState struct {
	Body Value
	Env  *Environment
	K    Cont
}

func (ExecState) isState() {}

// ApplyState applies Proc to the already-constructed argument list Args
// in the call-site environment Env, then invokes K.
type ApplyState struct {
	Proc Value
	Args Value
	Env  *Environment
	K    Cont
}

func (ApplyState) isState() {}

// Ok, EvalIn, EvlisIn, ExecIn, ApplyIn are the state constructors,
// named after the states they construct.

func Ok(value Value) State { return OkState{Value: value} }

func EvalIn(expr Value, env *Environment, k Cont) State {
	return EvalState{Expr: expr, Env: env, K: k}
}

func EvlisIn(exprs Value, env *Environment, k Cont) State {
	return EvlisState{Exprs: exprs, Env: env, K: k}
}

func ExecIn(body Value, env *Environment, k Cont) State {
	return ExecState{Body: body, Env: env, K: k}
}

func ApplyIn(proc, args Value, env *Environment, k Cont) State {
	return ApplyState{Proc: proc, Args: args, Env: env, K: k}
}

// Step advances state by exactly one transition. It never
// recurses into itself — continuations only build the next State — so
// repeated Step calls keep host stack usage flat regardless of how deep
// the user program's evaluation tree is.
func Step(state State) (State, error) {
	switch s := state.(type) {
	case OkState:
		return s, nil

	case EvalState:
		return stepEval(s)

	case EvlisState:
		return stepEvlis(s)

	case ExecState:
		return stepExec(s)

	case ApplyState:
		return stepApply(s)

	default:
		return nil, newError("unknown step-machine state", nil, nil)
	}
}

func stepEval(s EvalState) (State, error) {
	expr, env, k := s.Expr, s.Env, s.K
	switch expr.kind {
	case KindVariable, KindConstant:
		rhs, err := env.Lookup(expr)
		if err != nil {
			return nil, err
		}
		return k(rhs)
	case KindPair:
		proc := expr.pair.fst
		args := expr.pair.snd
		goProc := func(procValue Value) (State, error) {
			return ApplyIn(procValue, args, env, k), nil
		}
		return EvalIn(proc, env, goProc), nil
	default:
		// self-evaluating: nil, number, string, boolean, keyword,
		// environment, procedure
		return k(expr)
	}
}

func stepEvlis(s EvlisState) (State, error) {
	exprs, env, k := s.Exprs, s.Env, s.K
	switch exprs.kind {
	case KindNil:
		return k(exprs)
	case KindPair:
		fst := exprs.pair.fst
		snd := exprs.pair.snd
		goFst := func(fstValue Value) (State, error) {
			goSnd := func(sndValue Value) (State, error) {
				return k(NewPair(fstValue, sndValue))
			}
			return EvlisIn(snd, env, goSnd), nil
		}
		return EvalIn(fst, env, goFst), nil
	default:
		return nil, newError("expected a list, but got "+Show(exprs), &exprs, env)
	}
}

func stepExec(s ExecState) (State, error) {
	body, env, k := s.Body, s.Env, s.K
	switch body.kind {
	case KindNil:
		return k(body)
	case KindPair:
		fst := body.pair.fst
		rest := body.pair.snd
		goFst := func(fstValue Value) (State, error) {
			if rest.IsNil() {
				return k(fstValue)
			}
			return ExecIn(rest, env, k), nil
		}
		return EvalIn(fst, env, goFst), nil
	default:
		return nil, newError("expected a list, but got "+Show(body), &body, env)
	}
}

func stepApply(s ApplyState) (State, error) {
	proc, args, env, k := s.Proc, s.Args, s.Env, s.K

	switch proc.kind {
	case KindAtomic:
		atomic := proc.atomic
		if atomic.Applicative {
			goArgs := func(evaledArgs Value) (State, error) {
				next, err := atomic.Fn(evaledArgs, env, k)
				if err != nil {
					return nil, wrapAtomicError(atomic, evaledArgs, err)
				}
				return next, nil
			}
			return EvlisIn(args, env, goArgs), nil
		}
		next, err := atomic.Fn(args, env, k)
		if err != nil {
			return nil, wrapAtomicError(atomic, args, err)
		}
		return next, nil

	case KindAbstract:
		abstract := proc.abstract
		next, err := applyAbstract(abstract, args, env, k)
		if err != nil {
			return nil, wrapAbstractError(abstract, args, err)
		}
		return next, nil

	case KindWrap:
		inner := proc.wrap.inner
		goArgs := func(evaledArgs Value) (State, error) {
			return ApplyIn(inner, evaledArgs, env, k), nil
		}
		return EvlisIn(args, env, goArgs), nil

	default:
		return nil, newError("expected to apply a procedure, but got "+Show(proc), &proc, env)
	}
}

// applyAbstract implements the parameter-binding protocol: the
// head is either a Variable (binds the whole argument list) or a proper
// list of Variables (zipped against args, erroring on arity mismatch).
// The :rest keyword sketched in the comments below is not
// implemented; TODO below is where it would slot in.
func applyAbstract(proc *Abstract, args Value, callEnv *Environment, k Cont) (State, error) {
	local := NewChildEnvironment(proc.Lexical)

	if proc.Head.IsVariable() {
		if err := local.Extend(proc.Head, args); err != nil {
			return nil, err
		}
	} else if proc.Head.IsList() {
		// TODO: support a trailing :rest keyword in the head to bind
		// leftover arguments instead of requiring exact arity.
		head := proc.Head
		xs := args
		for !head.IsNil() {
			if xs.kind != KindPair {
				return nil, newError("arity mismatch applying abstract procedure", &args, callEnv)
			}
			param := head.pair.fst
			if err := local.Extend(param, xs.pair.fst); err != nil {
				return nil, err
			}
			head = head.pair.snd
			xs = xs.pair.snd
		}
		if !xs.IsNil() {
			return nil, newError("arity mismatch applying abstract procedure", &args, callEnv)
		}
	} else {
		return nil, newError("abstract procedure head must be a variable or a list of variables", &proc.Head, callEnv)
	}

	if err := local.Extend(proc.Dynamic, callEnv.AsValue()); err != nil {
		return nil, err
	}

	return ExecIn(proc.Body, local, k), nil
}

// Norm drives Step under a fuel quota: it loops until the state
// reaches Ok or the quota is exhausted. Exhaustion is a recoverable
// error — the caller may simply discard the state.
func Norm(expr Value, env *Environment, quota int) (Value, error) {
	var state State = EvalIn(expr, env, func(v Value) (State, error) {
		return Ok(v), nil
	})
	for quota > 0 {
		if ok, isOk := state.(OkState); isOk {
			return ok.Value, nil
		}
		quota--
		next, err := Step(state)
		if err != nil {
			return Value{}, err
		}
		state = next
	}
	if ok, isOk := state.(OkState); isOk {
		return ok.Value, nil
	}
	return Value{}, newError("out of fuel", nil, env)
}

// DefaultFuel is Norm's conventional default quota, a testing knob
// rather than a correctness bound.
const DefaultFuel = 1_000
