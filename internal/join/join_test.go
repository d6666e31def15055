package join

import (
	"testing"

	"github.com/samuelbarrett1234/dbsi-project/internal/coded"
	"github.com/samuelbarrett1234/dbsi-project/internal/rdfindex"
	"github.com/samuelbarrett1234/dbsi-project/pkg/rdf"
)

func res(n int32) coded.CodedResource  { return coded.CodedResource(n) }
func resT(n int32) coded.CodedTerm     { return coded.ResTerm(res(n)) }
func varT(name string) coded.CodedTerm { return coded.VarTerm(rdf.Variable(name)) }

func TestTwoPatternJoin(t *testing.T) {
	ix := rdfindex.New()
	// vocabulary: a=1 b=2 c=3, type=10 takes=11, Student=20 Prof=21 C1=30 C2=31
	ix.Add(coded.CodedTriple{Subject: res(1), Predicate: res(10), Object: res(20)}) // a type Student
	ix.Add(coded.CodedTriple{Subject: res(1), Predicate: res(11), Object: res(30)}) // a takes C1
	ix.Add(coded.CodedTriple{Subject: res(2), Predicate: res(10), Object: res(20)}) // b type Student
	ix.Add(coded.CodedTriple{Subject: res(2), Predicate: res(11), Object: res(31)}) // b takes C2
	ix.Add(coded.CodedTriple{Subject: res(3), Predicate: res(10), Object: res(21)}) // c type Prof

	patterns := []coded.CodedTriplePattern{
		{Subject: varT("x"), Predicate: resT(10), Object: resT(20)},
		{Subject: varT("x"), Predicate: resT(11), Object: resT(30)},
	}

	j := New(ix, GreedyOrder(patterns))
	if err := j.Start(); err != nil {
		t.Fatal(err)
	}

	var xs []coded.CodedResource
	for j.Valid() {
		vm := j.Current()
		x, ok := vm.Get("x")
		if !ok {
			t.Fatal("expected binding for ?x")
		}
		xs = append(xs, x)
		if err := j.Next(); err != nil {
			t.Fatal(err)
		}
	}

	if len(xs) != 1 || xs[0] != res(1) {
		t.Errorf("join result = %v, want [1] (only ?x=a matches both patterns)", xs)
	}
}

func TestJoinYieldsCrossProductForDisjointPatterns(t *testing.T) {
	ix := rdfindex.New()
	ix.Add(coded.CodedTriple{Subject: res(1), Predicate: res(10), Object: res(20)})
	ix.Add(coded.CodedTriple{Subject: res(2), Predicate: res(10), Object: res(21)})

	patterns := []coded.CodedTriplePattern{
		{Subject: varT("x"), Predicate: resT(10), Object: varT("y")},
		{Subject: varT("z"), Predicate: resT(10), Object: varT("w")},
	}

	j := New(ix, patterns)
	if err := j.Start(); err != nil {
		t.Fatal(err)
	}
	count := 0
	for j.Valid() {
		count++
		if err := j.Next(); err != nil {
			t.Fatal(err)
		}
	}
	if count != 4 {
		t.Errorf("cross product of two 2-row disjoint patterns should yield 4 tuples, got %d", count)
	}
}

func TestGreedyOrderScoresMostSelectiveFirst(t *testing.T) {
	patterns := []coded.CodedTriplePattern{
		{Subject: varT("x"), Predicate: varT("p"), Object: varT("o")}, // VVV, score 7
		{Subject: resT(1), Predicate: resT(2), Object: resT(3)},       // SPO, score 0
	}
	ordered := GreedyOrder(patterns)
	if ordered[0].Shape() != rdf.ShapeSPO {
		t.Errorf("GreedyOrder should place the fully-bound pattern first, got shape %v", ordered[0].Shape())
	}
}

func TestSmartOrderPromotesFullyBoundAfterSubstitution(t *testing.T) {
	// once ?x is bound by the first pattern, the second becomes fully bound (SPO).
	patterns := []coded.CodedTriplePattern{
		{Subject: resT(1), Predicate: resT(10), Object: varT("x")},
		{Subject: resT(1), Predicate: resT(11), Object: varT("x")},
	}
	ordered := SmartOrder(patterns)
	if len(ordered) != 2 {
		t.Fatalf("SmartOrder changed pattern count: got %d, want 2", len(ordered))
	}
	conditioned := coded.SubstitutePattern(coded.ExtractMap(ordered[0]), ordered[1])
	if conditioned.Shape() != rdf.ShapeSPO {
		t.Errorf("second pattern under the first's bindings has shape %v, want SPO", conditioned.Shape())
	}
}
