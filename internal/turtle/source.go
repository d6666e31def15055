// Package turtle implements the lazy Turtle/N-Triples triple source of
// spec.md §4.6, grounded structurally on the teacher's hand-rolled
// recursive-descent scanner (the old pkg/rdf Turtle parser) and
// semantically on original_source/dbsi_project/dbsi_turtle.cpp and
// dbsi_parse_helper.cpp: no escaping, no prefixes, no blank nodes, no
// datatypes.
package turtle

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/samuelbarrett1234/dbsi-project/pkg/rdf"
)

// Source is a lazy, non-restartable-from-arbitrary-point sequence of
// triples read from an io.Reader. Each triple is three whitespace-
// separated resources terminated by '.'; each resource is an IRI
// (`<...>`) or a literal (`"..."`). A malformed triple invalidates the
// sequence in the same way EOF does — Start/Next stop advancing and
// Valid reports false — following spec.md §4.6's "errors stop the
// sequence cleanly" contract.
type Source struct {
	r       *bufio.Reader
	current rdf.Triple
	valid   bool
	err     error
}

// NewSource wraps r. Read errors and malformed triples are reported via
// Err once the sequence has stopped.
func NewSource(r io.Reader) *Source {
	return &Source{r: bufio.NewReader(r)}
}

// Err returns the reason the sequence stopped, or nil if it ran to a
// clean EOF.
func (s *Source) Err() error { return s.err }

// Start primes the first triple, if any.
func (s *Source) Start() error {
	s.advance()
	return nil
}

// Valid reports whether Current holds a triple.
func (s *Source) Valid() bool { return s.valid }

// Current returns the triple read by the most recent Start/Next call.
// Calling it while !Valid() is a programmer error, per spec.md §7's
// iterator-contract-violation category.
func (s *Source) Current() rdf.Triple {
	if !s.valid {
		panic("turtle: Current called on an invalid source")
	}
	return s.current
}

// Next reads the following triple.
func (s *Source) Next() error {
	s.advance()
	return nil
}

func (s *Source) advance() {
	if s.err != nil {
		s.valid = false
		return
	}

	s.skipSeparators()

	if !s.more() {
		s.valid = false
		return
	}

	subj, err := s.readTerm()
	if err != nil {
		s.fail(err)
		return
	}
	s.skipBlanks()
	pred, err := s.readTerm()
	if err != nil {
		s.fail(err)
		return
	}
	s.skipBlanks()
	obj, err := s.readTerm()
	if err != nil {
		s.fail(err)
		return
	}
	s.skipBlanks()
	if err := s.expectByte('.'); err != nil {
		s.fail(err)
		return
	}

	s.current = rdf.Triple{Subject: subj, Predicate: pred, Object: obj}
	s.valid = true
}

func (s *Source) fail(err error) {
	s.err = err
	s.valid = false
}

func (s *Source) more() bool {
	_, err := s.r.Peek(1)
	return err == nil
}

// skipBlanks skips spaces, tabs and newlines only — not '.', so the
// terminator check in advance sees it.
func (s *Source) skipBlanks() {
	for {
		b, err := s.r.Peek(1)
		if err != nil {
			return
		}
		switch b[0] {
		case ' ', '\t', '\n', '\r':
			s.r.ReadByte()
		default:
			return
		}
	}
}

// skipSeparators skips blanks between triples; the grammar has no
// comment syntax of its own, so this is exactly skipBlanks, kept as a
// distinct name for readability at call sites.
func (s *Source) skipSeparators() { s.skipBlanks() }

func (s *Source) expectByte(want byte) error {
	b, err := s.r.ReadByte()
	if err != nil {
		return fmt.Errorf("turtle: expected %q, got EOF", want)
	}
	if b != want {
		return fmt.Errorf("turtle: expected %q, got %q", want, b)
	}
	return nil
}

// readTerm reads one IRI or literal. No escaping: the reader scans up
// to the closing delimiter verbatim, including any whitespace it finds
// along the way, per spec.md §4.6.
func (s *Source) readTerm() (rdf.Resource, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		return rdf.Resource{}, fmt.Errorf("turtle: expected a term, got EOF")
	}

	var open, close byte
	var kind rdf.ResourceKind
	switch b {
	case '<':
		open, close, kind = '<', '>', rdf.KindIRI
	case '"':
		open, close, kind = '"', '"', rdf.KindLiteral
	default:
		return rdf.Resource{}, fmt.Errorf("turtle: expected '<' or '\"', got %q", b)
	}
	_ = open

	var sb strings.Builder
	for {
		c, err := s.r.ReadByte()
		if err != nil {
			return rdf.Resource{}, fmt.Errorf("turtle: unterminated term, missing closing %q", close)
		}
		if c == close {
			break
		}
		sb.WriteByte(c)
	}

	if kind == rdf.KindIRI {
		return rdf.NewIRI(sb.String()), nil
	}
	return rdf.NewLiteral(sb.String()), nil
}
