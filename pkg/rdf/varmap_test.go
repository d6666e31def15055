package rdf

import "testing"

func TestMergeAgreeing(t *testing.T) {
	a := NewVarMap(VarBinding{"x", NewIRI("1")}, VarBinding{"y", NewIRI("2")})
	b := NewVarMap(VarBinding{"y", NewIRI("2")}, VarBinding{"z", NewIRI("3")})

	merged, ok := Merge(a, b)
	if !ok {
		t.Fatal("expected merge of agreeing maps to succeed")
	}
	if merged.Len() != 3 {
		t.Fatalf("merged.Len() = %d, want 3", merged.Len())
	}
	for _, want := range []VarBinding{{"x", NewIRI("1")}, {"y", NewIRI("2")}, {"z", NewIRI("3")}} {
		got, ok := merged.Get(want.Name)
		if !ok || got != want.Value {
			t.Errorf("merged[%s] = (%v, %v), want %v", want.Name, got, ok, want.Value)
		}
	}
}

func TestMergeConflicting(t *testing.T) {
	a := NewVarMap(VarBinding{"x", NewIRI("1")})
	b := NewVarMap(VarBinding{"x", NewIRI("2")})

	if _, ok := Merge(a, b); ok {
		t.Error("expected merge of conflicting maps to fail")
	}
}

func TestBindConsistentRepeatedVariable(t *testing.T) {
	x := VarTerm("x")
	pat := TriplePattern{x, x, x}

	if PatternMatches(pat, Triple{NewIRI("a"), NewIRI("b"), NewIRI("c")}) {
		t.Error("expected repeated variable bound to different values to fail to match")
	}
	if !PatternMatches(pat, Triple{NewIRI("a"), NewIRI("a"), NewIRI("a")}) {
		t.Error("expected repeated variable bound to the same value to match")
	}
}

func TestBindBoundPositionMismatch(t *testing.T) {
	pat := TriplePattern{ResTerm(NewIRI("a")), VarTerm("p"), VarTerm("o")}
	if PatternMatches(pat, Triple{NewIRI("notA"), NewIRI("p"), NewIRI("o")}) {
		t.Error("expected mismatched bound subject to fail to match")
	}
}

func TestSubstitutePreservesUnboundVariables(t *testing.T) {
	vm := NewVarMap(VarBinding{"x", NewIRI("a")})
	pat := TriplePattern{VarTerm("x"), VarTerm("y"), ResTerm(NewIRI("o"))}

	out := SubstitutePattern(vm, pat)
	if out.Subject.IsVariable() {
		t.Error("expected bound variable x to be substituted")
	}
	if !out.Predicate.IsVariable() || out.Predicate.Variable() != "y" {
		t.Error("expected unbound variable y to be preserved")
	}
}

func TestExtractMapVariableSet(t *testing.T) {
	pat := TriplePattern{VarTerm("x"), ResTerm(NewIRI("p")), VarTerm("y")}
	vm := ExtractMap(pat)
	if vm.Len() != 2 {
		t.Fatalf("ExtractMap Len() = %d, want 2", vm.Len())
	}
	if _, ok := vm.Get("x"); !ok {
		t.Error("expected x in extracted variable set")
	}
	if _, ok := vm.Get("y"); !ok {
		t.Error("expected y in extracted variable set")
	}
}

func TestVarMapsDisjoint(t *testing.T) {
	a := NewVarMap(VarBinding{"x", Resource{}})
	b := NewVarMap(VarBinding{"y", Resource{}})
	c := NewVarMap(VarBinding{"x", Resource{}})

	if !VarMapsDisjoint(a, b) {
		t.Error("expected a and b to be disjoint")
	}
	if VarMapsDisjoint(a, c) {
		t.Error("expected a and c to share variable x")
	}
}
