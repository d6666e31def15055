package rdfindex

import (
	"github.com/samuelbarrett1234/dbsi-project/internal/coded"
	"github.com/samuelbarrett1234/dbsi-project/pkg/rdf"
)

// IndexType names which index a pattern evaluator starts a scan from.
type IndexType uint8

const (
	IdxNone IndexType = iota
	IdxSub
	IdxPred
	IdxObj
	IdxSP
	IdxOP
	IdxSPO
)

// EvalType names which link field an iterator follows to advance.
type EvalType uint8

const (
	EvalNone EvalType = iota
	EvalAll
	EvalP
	EvalSP
	EvalOP
)

// plan is the outcome of planPattern: where to start scanning and how to
// advance. ok is false when a required scalar or pair lookup misses —
// the pattern can have no matches at all, so the evaluator should yield
// the empty sequence without ever touching the table.
type plan struct {
	index IndexType
	eval  EvalType
	start TableOffset
	ok    bool
}

// planPattern maps a pattern's shape to an (index, eval) pair per
// spec.md §4.3's table, grounded on dbsi_rdf_index.cpp's
// RDFIndex::plan_pattern. For SVO, the side with fewer matching rows is
// chosen, exactly matching the original's `sub_iter->second.size <
// obj_iter->second.size` tie-break.
func (ix *Index) planPattern(pat coded.CodedTriplePattern) plan {
	switch pat.Shape() {
	case rdf.ShapeVVV:
		return plan{index: IdxNone, eval: EvalAll, start: 0, ok: true}

	case rdf.ShapeVVO:
		o := pat.Object.Resource()
		e, ok := ix.oIndex[o]
		if !ok {
			return plan{ok: false}
		}
		return plan{index: IdxObj, eval: EvalOP, start: e.head, ok: true}

	case rdf.ShapeVPV:
		p := pat.Predicate.Resource()
		e, ok := ix.pIndex[p]
		if !ok {
			return plan{ok: false}
		}
		return plan{index: IdxPred, eval: EvalP, start: e.head, ok: true}

	case rdf.ShapeVPO:
		o := pat.Object.Resource()
		p := pat.Predicate.Resource()
		off, ok := ix.opIndex[pairKey{A: o, B: p}]
		if !ok {
			return plan{ok: false}
		}
		return plan{index: IdxOP, eval: EvalOP, start: off, ok: true}

	case rdf.ShapeSVV:
		s := pat.Subject.Resource()
		e, ok := ix.sIndex[s]
		if !ok {
			return plan{ok: false}
		}
		return plan{index: IdxSub, eval: EvalSP, start: e.head, ok: true}

	case rdf.ShapeSVO:
		s := pat.Subject.Resource()
		o := pat.Object.Resource()
		sEntry, sOK := ix.sIndex[s]
		oEntry, oOK := ix.oIndex[o]
		if !sOK || !oOK {
			return plan{ok: false}
		}
		if sEntry.count < oEntry.count {
			return plan{index: IdxSub, eval: EvalSP, start: sEntry.head, ok: true}
		}
		return plan{index: IdxObj, eval: EvalOP, start: oEntry.head, ok: true}

	case rdf.ShapeSPV:
		s := pat.Subject.Resource()
		p := pat.Predicate.Resource()
		off, ok := ix.spIndex[pairKey{A: s, B: p}]
		if !ok {
			return plan{ok: false}
		}
		return plan{index: IdxSP, eval: EvalSP, start: off, ok: true}

	default: // ShapeSPO
		t := coded.CodedTriple{
			Subject:   pat.Subject.Resource(),
			Predicate: pat.Predicate.Resource(),
			Object:    pat.Object.Resource(),
		}
		off, ok := ix.tripleIndex[t]
		if !ok {
			return plan{ok: false}
		}
		return plan{index: IdxSPO, eval: EvalNone, start: off, ok: true}
	}
}
