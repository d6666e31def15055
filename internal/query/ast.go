// Package query parses the query-text grammar of spec.md §6, grounded on
// original_source/dbsi_project/dbsi_query.cpp and dbsi_parse_helper.cpp.
package query

import "github.com/samuelbarrett1234/dbsi-project/pkg/rdf"

// Kind tags which of the six query variants a Query holds, mirroring the
// original's std::variant<BadQuery, SelectQuery, CountQuery, LoadQuery,
// QuitQuery, EmptyQuery>.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindQuit
	KindLoad
	KindSelect
	KindCount
	KindBad
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "EMPTY"
	case KindQuit:
		return "QUIT"
	case KindLoad:
		return "LOAD"
	case KindSelect:
		return "SELECT"
	case KindCount:
		return "COUNT"
	case KindBad:
		return "BAD"
	default:
		return "?"
	}
}

// Query is a parsed line of driver input. Only the fields relevant to Kind
// are populated; this mirrors the original's variant directly rather than
// introducing six separate Go types plus a dispatch interface, since the
// driver always wants a single switch on Kind (see internal/driver).
type Query struct {
	Kind     Kind
	Filename string                // KindLoad
	Vars     []rdf.Variable        // KindSelect
	Patterns []rdf.TriplePattern   // KindSelect, KindCount
	Message  string                // KindBad
}

func Empty() Query { return Query{Kind: KindEmpty} }
func Quit() Query  { return Query{Kind: KindQuit} }
func Load(filename string) Query {
	return Query{Kind: KindLoad, Filename: filename}
}
func Select(vars []rdf.Variable, patterns []rdf.TriplePattern) Query {
	return Query{Kind: KindSelect, Vars: vars, Patterns: patterns}
}
func Count(patterns []rdf.TriplePattern) Query {
	return Query{Kind: KindCount, Patterns: patterns}
}
func Bad(message string) Query {
	return Query{Kind: KindBad, Message: message}
}
