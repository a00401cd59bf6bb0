package lisp

import "testing"

func TestExtendAndLookup(t *testing.T) {
	env := NewEnvironment()
	if err := env.Extend(NewVariable("x"), NewNumber(42)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := env.LookupName("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := v.ToNumber(); n != 42 {
		t.Fatalf("expected 42, got %v", n)
	}
}

func TestExtendRejectsRedefinitionInSameFrame(t *testing.T) {
	env := NewEnvironment()
	if err := env.Extend(NewVariable("x"), NewNumber(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.Extend(NewVariable("x"), NewNumber(2)); err == nil {
		t.Fatalf("expected redefinition in the same frame to fail")
	}
}

func TestExtendRejectsConstants(t *testing.T) {
	env := NewEnvironment()
	if err := env.Extend(NewConstant("True"), NewNumber(1)); err == nil {
		t.Fatalf("expected binding a constant to fail")
	}
}

func TestChildEnvironmentShadowsAndIsInvisibleAfter(t *testing.T) {
	parent := NewEnvironment()
	if err := parent.Extend(NewVariable("x"), NewNumber(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	child := NewChildEnvironment(parent)
	if err := child.Extend(NewVariable("x"), NewNumber(2)); err != nil {
		t.Fatalf("expected shadowing in a child frame to succeed: %v", err)
	}
	v, err := child.LookupName("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := v.ToNumber(); n != 2 {
		t.Fatalf("expected child binding 2, got %v", n)
	}
	v, err = parent.LookupName("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := v.ToNumber(); n != 1 {
		t.Fatalf("expected parent binding to remain 1, got %v", n)
	}
}

func TestLookupUndefinedSymbolFails(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.LookupName("nonexistent"); err == nil {
		t.Fatalf("expected lookup of an undefined symbol to fail")
	}
}

func TestExtendNoneKeywordIsNoOp(t *testing.T) {
	env := NewEnvironment()
	if err := env.Extend(NewKeyword(":none"), Nil()); err != nil {
		t.Fatalf("expected :none to be a no-op, got %v", err)
	}
}

func TestExtendRejectsOtherKeywords(t *testing.T) {
	env := NewEnvironment()
	if err := env.Extend(NewKeyword(":rest"), Nil()); err == nil {
		t.Fatalf("expected a non-:none keyword to be rejected")
	}
}
