package rdfindex

import "github.com/samuelbarrett1234/dbsi-project/internal/coded"

// Evaluator is the per-pattern evaluation iterator of spec.md §4.3: it
// selects an index and a link chain to follow, then lazily yields exactly
// the variable bindings that make the pattern equal to a table row.
// Restartable via Start.
type Evaluator struct {
	index   *Index
	pattern coded.CodedTriplePattern

	pl      plan
	current TableOffset
	cached  coded.CodedVarMap
	valid   bool
}

// NewEvaluator builds (but does not start) an evaluator for pat over ix.
func NewEvaluator(ix *Index, pat coded.CodedTriplePattern) *Evaluator {
	return &Evaluator{index: ix, pattern: pat}
}

// IndexType exposes the evaluator's chosen index, for diagnostics.
func (e *Evaluator) IndexType() IndexType {
	return e.pl.index
}

// EvalType exposes the evaluator's chosen advance rule, for diagnostics and
// for testable property 5 (the SVO selectivity choice must be observable).
func (e *Evaluator) EvalType() EvalType {
	return e.pl.eval
}

func (e *Evaluator) isLive(off TableOffset) bool {
	return off != Sentinel && int(off) < len(e.index.table)
}

// Start re-plans the pattern, sets current to the plan's start offset,
// then skips forward until a matching row is found (or the chain is
// exhausted). A missed scalar/pair lookup during planning yields the
// empty sequence immediately.
func (e *Evaluator) Start() error {
	e.pl = e.index.planPattern(e.pattern)
	if !e.pl.ok {
		e.valid = false
		return nil
	}
	e.current = e.pl.start
	e.skipToMatch()
	return nil
}

// Valid reports whether Current may be called.
func (e *Evaluator) Valid() bool {
	return e.valid
}

// Current returns the cached binding. Calling it while !Valid() is a
// contract violation.
func (e *Evaluator) Current() coded.CodedVarMap {
	if !e.valid {
		panic("rdfindex: Current called on an exhausted or unstarted evaluator")
	}
	return e.cached
}

// Next advances by one according to the evaluator's eval type, then skips
// forward to the next matching row.
func (e *Evaluator) Next() error {
	e.advance()
	e.skipToMatch()
	return nil
}

// skipToMatch is dbsi_rdf_index.cpp's inc_till_pattern_match: repeatedly
// advance until a row whose remaining (unfiltered-by-the-chain)
// coordinates agree with the pattern is found, or the chain is
// exhausted. The filter is required because a chain is grouped by only
// one or two coordinates — e.g. an SP chain still needs the object
// checked against a bound object position.
func (e *Evaluator) skipToMatch() {
	for {
		if !e.isLive(e.current) {
			e.cached = coded.CodedVarMap{}
			e.valid = false
			return
		}
		row := e.index.table[e.current]
		if vm, ok := coded.Bind(e.pattern, row.t); ok {
			e.cached = vm
			e.valid = true
			return
		}
		e.advance()
	}
}

func (e *Evaluator) advance() {
	switch e.pl.eval {
	case EvalNone:
		e.current = Sentinel
	case EvalAll:
		e.current++
	case EvalP:
		e.current = e.index.table[e.current].nP
	case EvalSP:
		e.current = followLink(e.index.table[e.current].nSP, e.index.spIndex)
	case EvalOP:
		e.current = followLink(e.index.table[e.current].nOP, e.index.opIndex)
	}
}

// followLink resolves a variant link pointer: a direct offset is returned
// as-is, while a pair key is resolved against the live pair index at
// follow-time (so that a chain whose head has since moved is still
// followed correctly, without any row needing to be rewritten).
func followLink(lt linkTarget, pairIdx map[pairKey]TableOffset) TableOffset {
	if lt.kind == linkOffset {
		return lt.off
	}
	off, ok := pairIdx[pairKey{A: lt.a, B: lt.b}]
	if !ok {
		return Sentinel
	}
	return off
}

// Evaluate returns a (not-yet-started) evaluator for pat.
func (ix *Index) Evaluate(pat coded.CodedTriplePattern) *Evaluator {
	return NewEvaluator(ix, pat)
}
