package dictionary

import (
	"github.com/samuelbarrett1234/dbsi-project/internal/coded"
	"github.com/samuelbarrett1234/dbsi-project/pkg/rdf"
)

// EncodeTerm lifts a Term into coded space, preserving variables.
func (d *Dictionary) EncodeTerm(t rdf.Term) coded.CodedTerm {
	if t.IsVariable() {
		return coded.VarTerm(t.Variable())
	}
	return coded.ResTerm(d.Encode(t.Resource()))
}

// DecodeTerm is EncodeTerm's inverse.
func (d *Dictionary) DecodeTerm(t coded.CodedTerm) rdf.Term {
	if t.IsVariable() {
		return rdf.VarTerm(t.Variable())
	}
	return rdf.ResTerm(d.Decode(t.Resource()))
}

// EncodeTriple lifts a fully-bound Triple into coded space.
func (d *Dictionary) EncodeTriple(t rdf.Triple) coded.CodedTriple {
	return coded.CodedTriple{
		Subject:   d.Encode(t.Subject),
		Predicate: d.Encode(t.Predicate),
		Object:    d.Encode(t.Object),
	}
}

// DecodeTriple is EncodeTriple's inverse.
func (d *Dictionary) DecodeTriple(t coded.CodedTriple) rdf.Triple {
	return rdf.Triple{
		Subject:   d.Decode(t.Subject),
		Predicate: d.Decode(t.Predicate),
		Object:    d.Decode(t.Object),
	}
}

// EncodeTriplePattern lifts a TriplePattern into coded space.
func (d *Dictionary) EncodeTriplePattern(p rdf.TriplePattern) coded.CodedTriplePattern {
	return coded.CodedTriplePattern{
		Subject:   d.EncodeTerm(p.Subject),
		Predicate: d.EncodeTerm(p.Predicate),
		Object:    d.EncodeTerm(p.Object),
	}
}

// DecodeVarMap decodes every binding of a CodedVarMap back into an
// rdf.VarMap.
func (d *Dictionary) DecodeVarMap(vm coded.CodedVarMap) rdf.VarMap {
	bindings := make([]rdf.VarBinding, 0, vm.Len())
	for _, b := range vm.Bindings() {
		bindings = append(bindings, rdf.VarBinding{Name: b.Name, Value: d.Decode(b.Value)})
	}
	return rdf.NewVarMap(bindings...)
}

// TripleSource is the minimal lazy triple sequence produced by the Turtle
// reader (internal/turtle.Source also satisfies this).
type TripleSource interface {
	Start() error
	Valid() bool
	Current() rdf.Triple
	Next() error
}

// AutoencodingTripleSource wraps a TripleSource, transparently encoding
// each Current() triple into coded space before handing it to the RDF
// index's Add. Grounded on dbsi_dictionary_utils.cpp's
// AutoencodingTripleIterator.
type AutoencodingTripleSource struct {
	inner TripleSource
	dict  *Dictionary
}

func NewAutoencodingTripleSource(inner TripleSource, dict *Dictionary) *AutoencodingTripleSource {
	return &AutoencodingTripleSource{inner: inner, dict: dict}
}

func (a *AutoencodingTripleSource) Start() error { return a.inner.Start() }
func (a *AutoencodingTripleSource) Valid() bool   { return a.inner.Valid() }
func (a *AutoencodingTripleSource) Next() error   { return a.inner.Next() }

func (a *AutoencodingTripleSource) Current() coded.CodedTriple {
	return a.dict.EncodeTriple(a.inner.Current())
}

// CodedVarMapIterator is satisfied by both the RDF index's per-pattern
// evaluator and the join engine's combined iterator.
type CodedVarMapIterator interface {
	Start() error
	Valid() bool
	Current() coded.CodedVarMap
	Next() error
}

// AutodecodingVarMapIterator wraps a CodedVarMapIterator, transparently
// decoding each Current() binding set back into resource space for
// printing. Grounded on dbsi_dictionary_utils.cpp's
// AutodecodingVarMapIterator.
type AutodecodingVarMapIterator struct {
	inner CodedVarMapIterator
	dict  *Dictionary
}

func NewAutodecodingVarMapIterator(inner CodedVarMapIterator, dict *Dictionary) *AutodecodingVarMapIterator {
	return &AutodecodingVarMapIterator{inner: inner, dict: dict}
}

func (a *AutodecodingVarMapIterator) Start() error { return a.inner.Start() }
func (a *AutodecodingVarMapIterator) Valid() bool   { return a.inner.Valid() }
func (a *AutodecodingVarMapIterator) Next() error   { return a.inner.Next() }

func (a *AutodecodingVarMapIterator) Current() rdf.VarMap {
	return a.dict.DecodeVarMap(a.inner.Current())
}
