package join

import (
	"github.com/samuelbarrett1234/dbsi-project/internal/coded"
	"github.com/samuelbarrett1234/dbsi-project/internal/rdfindex"
)

// NestedLoopJoin composes per-pattern evaluator iterators into a stack,
// implementing spec.md §4.4's depth-first nested-loop join. patterns[0] is
// outermost — it changes least often — and patterns[len-1] is innermost,
// re-evaluated on every Next(), per dbsi_nlj.h's iteration-order contract
// ("an iterator will first be created for patterns[0], which will then
// bind variables into the rest of the expressions, then an iterator for
// patterns[1] will be created, etc.").
//
// Grounded on dbsi_nlj.cpp's NestedLoopJoinIterator.
type NestedLoopJoin struct {
	index    *rdfindex.Index
	patterns []coded.CodedTriplePattern
	stack    []*rdfindex.Evaluator
}

// New builds a join over patterns, which must be non-empty — an empty
// WHERE clause is handled by the query driver directly (spec.md §4.7),
// not by this engine.
func New(index *rdfindex.Index, patterns []coded.CodedTriplePattern) *NestedLoopJoin {
	if len(patterns) == 0 {
		panic("join: NestedLoopJoin requires a non-empty pattern list")
	}
	return &NestedLoopJoin{index: index, patterns: patterns}
}

func (j *NestedLoopJoin) top() *rdfindex.Evaluator {
	return j.stack[len(j.stack)-1]
}

// Start pushes an evaluator for patterns[0], starts it, then extends the
// stack to full depth.
func (j *NestedLoopJoin) Start() error {
	ev := j.index.Evaluate(j.patterns[0])
	if err := ev.Start(); err != nil {
		return err
	}
	j.stack = []*rdfindex.Evaluator{ev}
	j.extend()
	return nil
}

// extend restores the invariant that the stack is either empty (the join
// is exhausted) or holds exactly len(patterns) valid iterators, one per
// pattern.
func (j *NestedLoopJoin) extend() {
	n := len(j.patterns)
	for len(j.stack) > 0 && (!j.top().Valid() || len(j.stack) < n) {
		for len(j.stack) > 0 && !j.top().Valid() {
			j.stack = j.stack[:len(j.stack)-1]
			if len(j.stack) > 0 {
				j.top().Next()
			}
		}
		if len(j.stack) > 0 && len(j.stack) < n {
			combined, ok := j.combinedBindings()
			if !ok {
				panic("join: post-condition violated: inconsistent merge while extending the stack")
			}
			nextPattern := coded.SubstitutePattern(combined, j.patterns[len(j.stack)])
			ev := rdfindex.NewEvaluator(j.index, nextPattern)
			ev.Start()
			j.stack = append(j.stack, ev)
		}
	}
}

func (j *NestedLoopJoin) combinedBindings() (coded.CodedVarMap, bool) {
	acc := coded.NewVarMap()
	for _, ev := range j.stack {
		var ok bool
		acc, ok = coded.Merge(acc, ev.Current())
		if !ok {
			return coded.CodedVarMap{}, false
		}
	}
	return acc, true
}

// Valid reports whether a tuple is available. The stack is either empty
// or holds exactly len(patterns) iterators; Valid is true in the latter
// case.
func (j *NestedLoopJoin) Valid() bool {
	return len(j.stack) == len(j.patterns)
}

// Current merges the bindings of every live stack iterator. A merge
// failure here would mean a per-pattern evaluator yielded a binding
// inconsistent with the substitution it was built from — a bug, not a
// normal outcome — so it is reported as a panic rather than an error.
func (j *NestedLoopJoin) Current() coded.CodedVarMap {
	vm, ok := j.combinedBindings()
	if !ok {
		panic("join: post-condition violated: inconsistent merge across the join stack")
	}
	return vm
}

// Next advances the innermost iterator, then extends the stack back to
// full depth (popping and advancing outer iterators as needed).
func (j *NestedLoopJoin) Next() error {
	j.top().Next()
	j.extend()
	return nil
}
