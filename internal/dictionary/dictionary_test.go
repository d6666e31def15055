package dictionary

import (
	"testing"

	"github.com/samuelbarrett1234/dbsi-project/pkg/rdf"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	d := New()
	res := []rdf.Resource{
		rdf.NewIRI("http://example.org/a"),
		rdf.NewLiteral("hello"),
		rdf.NewIRI("http://example.org/b"),
	}

	for _, r := range res {
		code := d.Encode(r)
		if got := d.Decode(code); got != r {
			t.Errorf("Decode(Encode(%v)) = %v, want %v", r, got, r)
		}
	}
}

func TestEncodeIsInjectiveAndStable(t *testing.T) {
	d := New()
	a := rdf.NewIRI("http://example.org/a")
	b := rdf.NewIRI("http://example.org/b")

	codeA1 := d.Encode(a)
	codeB := d.Encode(b)
	codeA2 := d.Encode(a)

	if codeA1 != codeA2 {
		t.Errorf("repeated Encode(a) returned different codes: %d vs %d", codeA1, codeA2)
	}
	if codeA1 == codeB {
		t.Error("Encode assigned the same code to two distinct resources")
	}
}

func TestEncodeAssignsDenseCodesInInsertionOrder(t *testing.T) {
	d := New()
	first := d.Encode(rdf.NewIRI("http://example.org/a"))
	second := d.Encode(rdf.NewIRI("http://example.org/b"))
	third := d.Encode(rdf.NewIRI("http://example.org/a")) // already seen

	if first != 0 || second != 1 {
		t.Errorf("expected dense codes 0, 1 in insertion order; got %d, %d", first, second)
	}
	if third != first {
		t.Errorf("re-encoding a, got new code %d, want %d", third, first)
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}
}

func TestDecodeOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Decode of an unassigned code to panic")
		}
	}()
	d := New()
	d.Decode(0)
}
