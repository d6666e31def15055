// Command dbsi is the CLI front-end for the in-memory RDF store: an
// interactive REPL over stdin, or a batch runner over -i/-f queries,
// grounded on original_source/dbsi_project/main.cpp and the flag/Scanner
// texture of janus-datalog's cmd/datalog/main.go.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samuelbarrett1234/dbsi-project/internal/driver"
	"github.com/samuelbarrett1234/dbsi-project/internal/query"
)

// repeatableFlag collects every occurrence of a flag that may be given
// more than once, e.g. `-i q1 -i q2`.
type repeatableFlag []string

func (r *repeatableFlag) String() string {
	if r == nil {
		return ""
	}
	return strings.Join(*r, ";")
}

func (r *repeatableFlag) Set(v string) error {
	*r = append(*r, v)
	return nil
}

func main() {
	var help bool
	var logPlan bool
	var inlineQueries repeatableFlag
	var queryFiles repeatableFlag

	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.BoolVar(&help, "h", false, "print help and exit")
	fs.BoolVar(&logPlan, "L", false, "log the selected join plan before each evaluation")
	fs.Var(&inlineQueries, "i", "execute a literal query string (repeatable)")
	fs.Var(&queryFiles, "f", "execute queries from a file (repeatable)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-h] [-L] [-i query]... [-f path]...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nWith no -i/-f, runs interactively against stdin until QUIT or EOF.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		// ContinueOnError already printed the usage/error message.
		os.Exit(1)
	}

	if help {
		fs.Usage()
		os.Exit(0)
	}

	d := driver.New()
	d.LogPlan = logPlan

	if len(inlineQueries) == 0 && len(queryFiles) == 0 {
		runInteractive(d)
		return
	}

	for _, q := range inlineQueries {
		runBatch(d, strings.NewReader(q))
	}
	for _, path := range queryFiles {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dbsi: cannot open %s: %v\n", path, err)
			os.Exit(1)
		}
		runBatch(d, f)
		f.Close()
	}
}

// runBatch runs every query found in r, stopping early on QUIT just as
// the interactive loop does.
func runBatch(d *driver.Driver, r io.Reader) {
	reader := bufio.NewReader(r)
	for {
		q := query.Parse(reader)
		if q.Kind == query.KindEmpty {
			return
		}
		if !d.Run(q) {
			return
		}
	}
}

func runInteractive(d *driver.Driver) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, "> ")
		q := query.Parse(reader)
		if q.Kind == query.KindEmpty {
			break
		}
		if !d.Run(q) {
			break
		}
	}
}
