// Package coded mirrors pkg/rdf's value types with every Resource replaced
// by its dictionary-assigned dense integer code. The RDF index, join engine
// and optimiser all operate purely in this coded space; only the query
// driver crosses the boundary back to pkg/rdf for printing.
package coded

import (
	"fmt"

	"github.com/samuelbarrett1234/dbsi-project/pkg/rdf"
)

// CodedResource is a dictionary-assigned dense integer code standing in for
// an rdf.Resource.
type CodedResource int32

func (c CodedResource) String() string {
	return fmt.Sprintf("#%d", int32(c))
}

// CodedTerm is a tagged union of rdf.Variable or CodedResource, mirroring
// rdf.Term.
type CodedTerm struct {
	isVar bool
	v     rdf.Variable
	r     CodedResource
}

func VarTerm(v rdf.Variable) CodedTerm {
	return CodedTerm{isVar: true, v: v}
}

func ResTerm(r CodedResource) CodedTerm {
	return CodedTerm{isVar: false, r: r}
}

func (t CodedTerm) IsVariable() bool {
	return t.isVar
}

func (t CodedTerm) Variable() rdf.Variable {
	return t.v
}

func (t CodedTerm) Resource() CodedResource {
	return t.r
}

func (t CodedTerm) String() string {
	if t.isVar {
		return t.v.String()
	}
	return t.r.String()
}

// CodedTriple is a fully-coded (subject, predicate, object).
type CodedTriple struct {
	Subject   CodedResource
	Predicate CodedResource
	Object    CodedResource
}

// CodedTriplePattern is a triple pattern over coded terms.
type CodedTriplePattern struct {
	Subject   CodedTerm
	Predicate CodedTerm
	Object    CodedTerm
}

// Shape computes the pattern's bound/variable shape, identically to
// rdf.TriplePattern.Shape.
func (p CodedTriplePattern) Shape() rdf.Shape {
	idx := 0
	if p.Subject.IsVariable() {
		idx |= 4
	}
	if p.Predicate.IsVariable() {
		idx |= 2
	}
	if p.Object.IsVariable() {
		idx |= 1
	}
	return rdf.Shape(idx)
}

func (p CodedTriplePattern) String() string {
	return fmt.Sprintf("%s %s %s .", p.Subject, p.Predicate, p.Object)
}
