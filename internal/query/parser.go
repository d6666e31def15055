package query

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/samuelbarrett1234/dbsi-project/pkg/rdf"
)

// Parse reads one query from r, consuming exactly the tokens that make it
// up (a WHERE clause may legitimately span several physical lines, just as
// the original's istream-based parser allows since `>>` skips newlines
// like any other whitespace). A reader already at EOF yields Empty().
func Parse(r *bufio.Reader) Query {
	firstWord, err := readWord(r)
	if err != nil || firstWord == "" {
		return Empty()
	}

	if firstWord == "QUIT" {
		return Quit()
	}

	skipWhitespace(r)

	if firstWord == "LOAD" {
		filename, _ := readLine(r)
		return Load(filename)
	}

	if firstWord != "SELECT" && firstWord != "COUNT" {
		return Bad(fmt.Sprintf("Invalid command: %s, must be QUIT/LOAD/SELECT/COUNT.", firstWord))
	}

	var args []rdf.Variable
	nextWord, werr := readWord(r)
	for nextWord != "WHERE" && werr == nil {
		if !strings.HasPrefix(nextWord, "?") {
			return Bad(fmt.Sprintf("Variables must start with question marks, but yours is %s", nextWord))
		}
		args = append(args, rdf.Variable(nextWord))
		nextWord, werr = readWord(r)
	}
	// If the loop above ran out of input before seeing WHERE, next_word
	// never equals "WHERE" and the delimiter read just below fails too,
	// producing the same "Missing bracket after WHERE." diagnostic the
	// original falls through to.

	skipWhitespace(r)
	delimiter, derr := r.ReadByte()
	skipWhitespace(r)
	if derr != nil || delimiter != '{' {
		return Bad("Missing bracket after WHERE.")
	}

	peeked, perr := r.Peek(1)
	if perr != nil {
		return Bad("Missing WHERE clause after bracket.")
	}

	var patterns []rdf.TriplePattern
	for delimiter != '}' && peeked[0] != '}' {
		subj, err := parseTerm(r)
		if err != nil {
			return Bad(fmt.Sprintf("Bad subject for term at index %d in where clause.", len(patterns)))
		}
		pred, err := parseTerm(r)
		if err != nil {
			return Bad(fmt.Sprintf("Bad predicate for term at index %d in where clause.", len(patterns)))
		}
		obj, err := parseTerm(r)
		if err != nil {
			return Bad(fmt.Sprintf("Bad object for term at index %d in where clause.", len(patterns)))
		}
		patterns = append(patterns, rdf.TriplePattern{Subject: subj, Predicate: pred, Object: obj})

		skipWhitespace(r)
		var derr2 error
		delimiter, derr2 = r.ReadByte()
		skipWhitespace(r)

		if delimiter != '}' && delimiter != '.' {
			return Bad(fmt.Sprintf("Bad where-clause triple-pattern delimiter: %c", delimiter))
		}
		if derr2 != nil && delimiter != '}' {
			return Bad("Missing closing WHERE clause bracket.")
		}

		peeked, perr = r.Peek(1)
		if perr != nil {
			peeked = []byte{'}'}
		}
	}
	if delimiter != '}' {
		r.ReadByte()
	}

	if firstWord == "SELECT" {
		return Select(args, patterns)
	}
	return Count(patterns)
}

func skipWhitespace(r *bufio.Reader) {
	for {
		b, err := r.Peek(1)
		if err != nil {
			return
		}
		if !isSpace(b[0]) {
			return
		}
		r.ReadByte()
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readWord skips leading whitespace, then reads a maximal run of
// non-whitespace bytes, mirroring istream's `>>` for std::string.
func readWord(r *bufio.Reader) (string, error) {
	skipWhitespace(r)
	var sb strings.Builder
	for {
		b, err := r.Peek(1)
		if err != nil {
			if sb.Len() == 0 {
				return "", err
			}
			return sb.String(), nil
		}
		if isSpace(b[0]) {
			return sb.String(), nil
		}
		r.ReadByte()
		sb.WriteByte(b[0])
	}
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err == io.EOF {
		return line, nil
	}
	return line, err
}

// parseTerm mirrors dbsi_parse_helper.cpp's parse_term/parse_resource: a
// variable starts with '?' and runs to the next whitespace; everything
// else must open with '<' or '"' and run, byte for byte, to the matching
// close character with no escape handling.
func parseTerm(r *bufio.Reader) (rdf.Term, error) {
	skipWhitespace(r)
	peeked, err := r.Peek(1)
	if err != nil {
		return rdf.Term{}, fmt.Errorf("query: expected a term, got EOF")
	}

	if peeked[0] == '?' {
		word, err := readWord(r)
		if err != nil || word == "" {
			return rdf.Term{}, fmt.Errorf("query: expected a variable")
		}
		return rdf.VarTerm(rdf.Variable(word)), nil
	}

	start, err := r.ReadByte()
	if err != nil {
		return rdf.Term{}, fmt.Errorf("query: expected a term, got EOF")
	}

	var closeByte byte
	var isIRI bool
	switch start {
	case '<':
		closeByte, isIRI = '>', true
	case '"':
		closeByte, isIRI = '"', false
	default:
		return rdf.Term{}, fmt.Errorf("query: expected '<' or '\"', got %q", start)
	}

	var sb strings.Builder
	for {
		c, err := r.ReadByte()
		if err != nil {
			return rdf.Term{}, fmt.Errorf("query: unterminated term, missing closing %q", closeByte)
		}
		if c == closeByte {
			break
		}
		sb.WriteByte(c)
	}

	if isIRI {
		return rdf.ResTerm(rdf.NewIRI(sb.String())), nil
	}
	return rdf.ResTerm(rdf.NewLiteral(sb.String())), nil
}
