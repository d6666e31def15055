package driver

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/samuelbarrett1234/dbsi-project/internal/coded"
	"github.com/samuelbarrett1234/dbsi-project/pkg/rdf"
)

// printSelect renders a SELECT answer as a markdown table, grounded on
// janus-datalog's table_formatter.go.
func printSelect(w io.Writer, vars []rdf.Variable, rows [][]string) {
	if len(vars) == 0 {
		fmt.Fprintf(w, "_%d rows_\n", len(rows))
		return
	}

	headers := make([]string, len(vars))
	for i, v := range vars {
		headers[i] = string(v)
	}

	alignment := make([]tw.Align, len(headers))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header(headers)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
	fmt.Fprintf(w, "\n_%d rows_\n", len(rows))
}

// logPlan prints the selected join plan's pattern-shape sequence to w,
// colour-coding fully-bound (cheap) shapes green and fully-unbound
// (expensive) shapes red, in the spirit of relation_renderer.go's
// colour-coded join-cost annotations.
func logPlan(w io.Writer, ordered []coded.CodedTriplePattern) {
	shapes := make([]string, len(ordered))
	for i, p := range ordered {
		shapes[i] = shapeColor(p.Shape())
	}
	fmt.Fprintf(w, "%s %s\n", color.BlueString("plan:"), strings.Join(shapes, " -> "))
}

func shapeColor(s rdf.Shape) string {
	label := s.String()
	switch s {
	case rdf.ShapeSPO:
		return color.GreenString(label)
	case rdf.ShapeVVV:
		return color.RedString(label)
	default:
		return color.YellowString(label)
	}
}
