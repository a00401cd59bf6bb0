package lisp

import (
	"bytes"
	"strings"
	"testing"
)

// evalOne reads exactly one top-level form from source and norms it
// against a fresh initial environment.
func evalOne(t *testing.T, source string) Value {
	t.Helper()
	forms, err := Read(source)
	if err != nil {
		t.Fatalf("Read(%q) failed: %v", source, err)
	}
	if len(forms) != 1 {
		t.Fatalf("Read(%q) produced %d forms, want 1", source, len(forms))
	}
	env := NewInitialEnvironment(&bytes.Buffer{})
	v, err := Norm(forms[0], env, DefaultFuel)
	if err != nil {
		t.Fatalf("Norm(%q) failed: %v", source, err)
	}
	return v
}

func TestArithmeticScenarios(t *testing.T) {
	cases := []struct {
		source string
		want   float64
	}{
		{"(+ 1 2 3 4)", 10},
		{"(* 1 2 3 4)", 24},
		{"(+ 1 (* 2 3) (- 10 6))", 11},
		{"(- 5)", 5},
		{"(/ 5)", 5},
		{"(/ 0)", 0},
	}
	for _, c := range cases {
		v := evalOne(t, c.source)
		n, err := v.ToNumber()
		if err != nil {
			t.Fatalf("%s: expected a number, got %s", c.source, Show(v))
		}
		if n != c.want {
			t.Fatalf("%s = %v, want %v", c.source, n, c.want)
		}
	}
}

func TestVauApplicationBindsParameter(t *testing.T) {
	v := evalOne(t, "((vau (x) e x) 3)")
	n, err := v.ToNumber()
	if err != nil || n != 3 {
		t.Fatalf("expected 3, got %s (err=%v)", Show(v), err)
	}
}

func TestUnwrapWrapOfVauIsProcedureNotWrap(t *testing.T) {
	v := evalOne(t, "(unwrap (wrap (vau (x) e x)))")
	if !v.IsProcedure() {
		t.Fatalf("expected a procedure, got %s", Show(v))
	}
	if v.IsWrap() {
		t.Fatalf("expected unwrap(wrap(p)) to not be a wrap, got %s", Show(v))
	}
}

func TestLetBindsAndEvaluates(t *testing.T) {
	v := evalOne(t, "(let ((x 1) (y 2)) (+ x y))")
	n, err := v.ToNumber()
	if err != nil || n != 3 {
		t.Fatalf("expected 3, got %s (err=%v)", Show(v), err)
	}
}

func TestLetBindingInvisibleAfterBody(t *testing.T) {
	forms, err := Read(`(let ((x 1)) x) x`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env := NewInitialEnvironment(&bytes.Buffer{})
	if _, err := Norm(forms[0], env, DefaultFuel); err != nil {
		t.Fatalf("unexpected error evaluating let form: %v", err)
	}
	if _, err := Norm(forms[1], env, DefaultFuel); err == nil {
		t.Fatalf("expected x to be undefined outside the let body")
	}
}

func TestDivisionByZeroFails(t *testing.T) {
	forms, err := Read("(/ 1 0)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env := NewInitialEnvironment(&bytes.Buffer{})
	if _, err := Norm(forms[0], env, DefaultFuel); err == nil {
		t.Fatalf("expected division by zero to fail")
	}
}

func TestDefineRejectsRedefinitionAndConstants(t *testing.T) {
	env := NewInitialEnvironment(&bytes.Buffer{})
	forms, err := Read(`(define x 1) (define x 2) (define True 1)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Norm(forms[0], env, DefaultFuel); err != nil {
		t.Fatalf("unexpected error on first define: %v", err)
	}
	if _, err := Norm(forms[1], env, DefaultFuel); err == nil {
		t.Fatalf("expected redefining x to fail")
	}
	if _, err := Norm(forms[2], env, DefaultFuel); err == nil {
		t.Fatalf("expected defining a constant to fail")
	}
}

func TestApplicativeArgumentEvaluationOrderLeftToRight(t *testing.T) {
	var out bytes.Buffer
	env := NewInitialEnvironment(&out)
	forms, err := Read(`(list (print! "a") (print! "b") (print! "c"))`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Norm(forms[0], env, DefaultFuel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "\"a\"\n\"b\"\n\"c\"\n"
	if out.String() != want {
		t.Fatalf("print! order = %q, want %q", out.String(), want)
	}
}

func TestAndOrShortCircuit(t *testing.T) {
	var out bytes.Buffer
	env := NewInitialEnvironment(&out)

	forms, err := Read(`(and False (print! "should not print"))`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := Norm(forms[0], env, DefaultFuel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, _ := v.ToBoolean(); b {
		t.Fatalf("expected (and False ...) to be False, got %s", Show(v))
	}
	if strings.Contains(out.String(), "should not print") {
		t.Fatalf("expected and to short-circuit and never evaluate the second form")
	}

	out.Reset()
	forms, err = Read(`(or True (print! "should not print"))`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err = Norm(forms[0], env, DefaultFuel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := v.ToBoolean()
	if err != nil || !b {
		t.Fatalf("expected True, got %s", Show(v))
	}
	if strings.Contains(out.String(), "should not print") {
		t.Fatalf("expected or to short-circuit and never evaluate the second form")
	}
}

func TestSelfEvaluatingValuesAreFixedPoints(t *testing.T) {
	env := NewInitialEnvironment(&bytes.Buffer{})
	selfEval := []Value{NewNumber(1), NewString("x"), NewBoolean(true), Nil()}
	for _, v := range selfEval {
		result, err := Norm(v, env, DefaultFuel)
		if err != nil {
			t.Fatalf("unexpected error evaluating %s: %v", Show(v), err)
		}
		if !Equal(result, v) {
			t.Fatalf("expected %s to be a fixed point of Eval, got %s", Show(v), Show(result))
		}
	}
}

func TestOutOfFuelIsARecoverableError(t *testing.T) {
	env := NewInitialEnvironment(&bytes.Buffer{})
	forms, err := Read("(+ 1 (+ 1 (+ 1 (+ 1 1))))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Norm(forms[0], env, 1); err == nil {
		t.Fatalf("expected a 1-step quota to be insufficient and fail with out-of-fuel")
	}
	// the environment is untouched by the failed, fuel-exhausted attempt
	if _, err := Norm(forms[0], env, DefaultFuel); err != nil {
		t.Fatalf("expected a fresh attempt with enough fuel to succeed: %v", err)
	}
}
