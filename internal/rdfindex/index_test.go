package rdfindex

import (
	"testing"

	"github.com/samuelbarrett1234/dbsi-project/internal/coded"
	"github.com/samuelbarrett1234/dbsi-project/pkg/rdf"
)

func r(n int32) coded.CodedResource { return coded.CodedResource(n) }

func resTerm(n int32) coded.CodedTerm { return coded.ResTerm(r(n)) }

func varTerm(name string) coded.CodedTerm { return coded.VarTerm(rdf.Variable(name)) }

func TestAddDeduplicatesAndCountsRows(t *testing.T) {
	ix := New()
	t1 := coded.CodedTriple{Subject: r(1), Predicate: r(2), Object: r(3)}

	ix.Add(t1)
	ix.Add(t1)
	ix.Add(t1)

	if ix.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after three identical inserts", ix.Len())
	}
	if err := ix.CheckIntegrity(); err != nil {
		t.Fatalf("CheckIntegrity: %v", err)
	}
}

func TestFullyBoundMatch(t *testing.T) {
	ix := New()
	ix.Add(coded.CodedTriple{Subject: r(1), Predicate: r(2), Object: r(3)})

	pat := coded.CodedTriplePattern{Subject: resTerm(1), Predicate: resTerm(2), Object: resTerm(3)}
	count := countResults(t, ix, pat)
	if count != 1 {
		t.Errorf("evaluate(SPO match) yielded %d results, want 1", count)
	}

	miss := coded.CodedTriplePattern{Subject: resTerm(1), Predicate: resTerm(2), Object: resTerm(99)}
	if countResults(t, ix, miss) != 0 {
		t.Errorf("evaluate(SPO mismatch) should yield 0 results")
	}
}

func TestPredicateChain(t *testing.T) {
	ix := New()
	ix.Add(coded.CodedTriple{Subject: r(1), Predicate: r(10), Object: r(100)})
	ix.Add(coded.CodedTriple{Subject: r(2), Predicate: r(10), Object: r(200)})
	ix.Add(coded.CodedTriple{Subject: r(3), Predicate: r(20), Object: r(300)})

	pat := coded.CodedTriplePattern{Subject: varTerm("x"), Predicate: resTerm(10), Object: varTerm("y")}
	count := countResults(t, ix, pat)
	if count != 2 {
		t.Errorf("evaluate(?x <10> ?y) yielded %d results, want 2", count)
	}
}

func TestSVOSelectivityChoosesFewerRows(t *testing.T) {
	ix := New()
	// subject 1 has many rows (predicate varies); object 999 has exactly one.
	for i := int32(0); i < 50; i++ {
		ix.Add(coded.CodedTriple{Subject: r(1), Predicate: r(i), Object: r(i)})
	}
	ix.Add(coded.CodedTriple{Subject: r(1), Predicate: r(7), Object: r(999)})

	pat := coded.CodedTriplePattern{Subject: resTerm(1), Predicate: varTerm("p"), Object: resTerm(999)}
	ev := NewEvaluator(ix, pat)
	if err := ev.Start(); err != nil {
		t.Fatal(err)
	}
	if ev.EvalType() != EvalOP {
		t.Errorf("EvalType() = %v, want EvalOP (object side is far more selective)", ev.EvalType())
	}
}

func TestAddPreservesInvariantsAcrossRandomSequence(t *testing.T) {
	ix := New()
	for i := int32(0); i < 200; i++ {
		s := i % 7
		p := i % 3
		o := i % 11
		ix.Add(coded.CodedTriple{Subject: r(s), Predicate: r(p), Object: r(o)})
		if err := ix.CheckIntegrity(); err != nil {
			t.Fatalf("CheckIntegrity after insert %d: %v", i, err)
		}
	}
}

func countResults(t *testing.T, ix *Index, pat coded.CodedTriplePattern) int {
	t.Helper()
	ev := NewEvaluator(ix, pat)
	if err := ev.Start(); err != nil {
		t.Fatal(err)
	}
	n := 0
	for ev.Valid() {
		_ = ev.Current()
		n++
		if err := ev.Next(); err != nil {
			t.Fatal(err)
		}
	}
	return n
}

func TestRestartYieldsSameSequence(t *testing.T) {
	ix := New()
	ix.Add(coded.CodedTriple{Subject: r(1), Predicate: r(2), Object: r(3)})
	ix.Add(coded.CodedTriple{Subject: r(4), Predicate: r(2), Object: r(5)})

	pat := coded.CodedTriplePattern{Subject: varTerm("x"), Predicate: resTerm(2), Object: varTerm("y")}
	ev := NewEvaluator(ix, pat)

	first := collect(t, ev)
	second := collect(t, ev)

	if len(first) != len(second) {
		t.Fatalf("restart produced %d results, first run had %d", len(second), len(first))
	}
	for i := range first {
		a, b := first[i].Bindings(), second[i].Bindings()
		if len(a) != len(b) {
			t.Fatalf("result %d: restart has %d bindings, first run had %d", i, len(b), len(a))
		}
		for k := range a {
			if a[k] != b[k] {
				t.Errorf("result %d binding %d: restart gave %v, first run gave %v", i, k, b[k], a[k])
			}
		}
	}
}

func collect(t *testing.T, ev *Evaluator) []coded.CodedVarMap {
	t.Helper()
	if err := ev.Start(); err != nil {
		t.Fatal(err)
	}
	var out []coded.CodedVarMap
	for ev.Valid() {
		out = append(out, ev.Current())
		if err := ev.Next(); err != nil {
			t.Fatal(err)
		}
	}
	return out
}

func TestFullScanVisitsEveryRowOnce(t *testing.T) {
	ix := New()
	want := []coded.CodedTriple{
		{Subject: r(1), Predicate: r(2), Object: r(3)},
		{Subject: r(4), Predicate: r(5), Object: r(6)},
	}
	for _, tr := range want {
		ix.Add(tr)
	}

	it := ix.FullScan()
	if err := it.Start(); err != nil {
		t.Fatal(err)
	}
	n := 0
	for it.Valid() {
		n++
		if err := it.Next(); err != nil {
			t.Fatal(err)
		}
	}
	if n != len(want) {
		t.Errorf("FullScan visited %d rows, want %d", n, len(want))
	}
}
