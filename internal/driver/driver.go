// Package driver wires the dictionary, RDF index and join engine into the
// query-processing loop of spec.md §4.7, grounded on
// original_source/dbsi_project/dbsi_driver.cpp.
package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/samuelbarrett1234/dbsi-project/internal/coded"
	"github.com/samuelbarrett1234/dbsi-project/internal/dictionary"
	"github.com/samuelbarrett1234/dbsi-project/internal/join"
	"github.com/samuelbarrett1234/dbsi-project/internal/query"
	"github.com/samuelbarrett1234/dbsi-project/internal/rdfindex"
	"github.com/samuelbarrett1234/dbsi-project/internal/turtle"
	"github.com/samuelbarrett1234/dbsi-project/pkg/rdf"
)

// OrderPolicy selects which of join's two heuristics orders a query's
// patterns before evaluation.
type OrderPolicy func([]coded.CodedTriplePattern) []coded.CodedTriplePattern

// Driver owns the one dictionary and one RDF index for a running process,
// per spec.md §5's single-owner resource model, and evaluates parsed
// queries against them.
type Driver struct {
	dict   *dictionary.Dictionary
	index  *rdfindex.Index
	Order  OrderPolicy
	LogPlan bool
	Out    io.Writer
	ErrOut io.Writer
}

// New builds an empty store. Order defaults to join.GreedyOrder; callers
// may swap in join.SmartOrder.
func New() *Driver {
	return &Driver{
		dict:   dictionary.New(),
		index:  rdfindex.New(),
		Order:  join.GreedyOrder,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}

// Run executes one parsed query. It returns false when the driver should
// stop its outer loop (QUIT).
func (d *Driver) Run(q query.Query) bool {
	switch q.Kind {
	case query.KindEmpty:
		return true
	case query.KindQuit:
		return false
	case query.KindBad:
		fmt.Fprintln(d.ErrOut, q.Message)
		return true
	case query.KindLoad:
		d.load(q.Filename)
		return true
	case query.KindSelect:
		d.runSelect(q.Vars, q.Patterns)
		return true
	case query.KindCount:
		d.runCount(q.Patterns)
		return true
	default:
		return true
	}
}

// load reads the Turtle file at path and inserts every triple it parses,
// retaining triples read before a mid-stream parse failure (spec.md §9's
// resolution of the monotonic-insert Open Question).
func (d *Driver) load(path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(d.ErrOut, "LOAD: cannot open %s: %v\n", path, err)
		return
	}
	defer f.Close()

	src := turtle.NewSource(f)
	enc := dictionary.NewAutoencodingTripleSource(src, d.dict)
	if err := enc.Start(); err != nil {
		fmt.Fprintf(d.ErrOut, "LOAD: %v\n", err)
		return
	}
	n := 0
	for enc.Valid() {
		d.index.Add(enc.Current())
		n++
		if err := enc.Next(); err != nil {
			fmt.Fprintf(d.ErrOut, "LOAD: %v\n", err)
			return
		}
	}
	if src.Err() != nil {
		fmt.Fprintf(d.ErrOut, "LOAD %s: stopped after %d triples: %v\n", path, n, src.Err())
	}
}

// runCount evaluates patterns and prints the row count. An empty WHERE
// clause answers with the table length, per spec.md §4.7.
func (d *Driver) runCount(patterns []rdf.TriplePattern) {
	if len(patterns) == 0 {
		fmt.Fprintln(d.Out, d.index.Len())
		return
	}
	count := 0
	d.evaluate(patterns, func(coded.CodedVarMap) { count++ })
	fmt.Fprintln(d.Out, count)
}

// runSelect evaluates patterns and prints each projected binding row. An
// empty WHERE clause answers with Len() empty rows; missing projection
// variables print their own name unchanged.
func (d *Driver) runSelect(vars []rdf.Variable, patterns []rdf.TriplePattern) {
	var rows [][]string
	project := func(vm coded.CodedVarMap) {
		decoded := d.dict.DecodeVarMap(vm)
		rows = append(rows, projectRow(vars, decoded))
	}

	if len(patterns) == 0 {
		row := projectRow(vars, rdf.NewVarMap())
		for i := 0; i < d.index.Len(); i++ {
			rows = append(rows, row)
		}
	} else {
		d.evaluate(patterns, project)
	}

	printSelect(d.Out, vars, rows)
}

func projectRow(vars []rdf.Variable, vm rdf.VarMap) []string {
	row := make([]string, len(vars))
	for i, v := range vars {
		if val, ok := vm.Get(v); ok {
			row[i] = val.String()
		} else {
			row[i] = string(v)
		}
	}
	return row
}

// evaluate encodes patterns, orders them, runs the nested-loop join and
// calls emit once per result tuple.
func (d *Driver) evaluate(patterns []rdf.TriplePattern, emit func(coded.CodedVarMap)) {
	codedPatterns := make([]coded.CodedTriplePattern, len(patterns))
	for i, p := range patterns {
		codedPatterns[i] = d.dict.EncodeTriplePattern(p)
	}
	ordered := d.Order(codedPatterns)

	if d.LogPlan {
		logPlan(d.ErrOut, ordered)
	}

	j := join.New(d.index, ordered)
	if err := j.Start(); err != nil {
		fmt.Fprintf(d.ErrOut, "query: %v\n", err)
		return
	}
	for j.Valid() {
		emit(j.Current())
		if err := j.Next(); err != nil {
			fmt.Fprintf(d.ErrOut, "query: %v\n", err)
			return
		}
	}
}
