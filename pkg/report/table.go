package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/unbound-force/apicov/pkg/coverage"
)

// Options controls table rendering.
type Options struct {
	// ShowZeroCounts includes declared triples that were never hit.
	// Zero-count rows carry the warning style so gaps stand out.
	ShowZeroCounts bool
}

// WriteTable writes the coverage records as a styled console table
// with box-drawing borders and PATH / METHOD / STATUS / COUNT
// columns. Records must already be in canonical order (as produced
// by the tracker snapshot); rows are emitted in the order given.
func WriteTable(w io.Writer, records []coverage.Record, opts Options) error {
	s := DefaultStyles()

	shown := records
	if !opts.ShowZeroCounts {
		shown = make([]coverage.Record, 0, len(records))
		for _, r := range records {
			if r.Count > 0 {
				shown = append(shown, r)
			}
		}
	}

	if len(shown) == 0 {
		fmt.Fprintln(w, s.Muted.Render("No coverage recorded."))
		writeSummary(w, records, s)
		return nil
	}

	rows := make([][]string, 0, len(shown))
	for _, r := range shown {
		rows = append(rows, []string{
			r.Path,
			r.Method,
			r.Status,
			strconv.Itoa(r.Count),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			if col == 3 && row >= 0 && row < len(shown) {
				if shown[row].Count == 0 {
					return s.Zero
				}
				return s.Hit
			}
			return lipgloss.NewStyle()
		}).
		Headers("PATH", "METHOD", "STATUS", "COUNT").
		Rows(rows...)

	fmt.Fprintln(w, t)
	writeSummary(w, records, s)
	return nil
}

// writeSummary prints the declared-vs-hit totals under the table.
// The summary always reflects the full record set, independent of
// the ShowZeroCounts filter.
func writeSummary(w io.Writer, records []coverage.Record, s Styles) {
	ops := make(map[[2]string]bool)
	hit := 0
	for _, r := range records {
		ops[[2]string{r.Path, r.Method}] = true
		if r.Count > 0 {
			hit++
		}
	}

	pct := 0.0
	if len(records) > 0 {
		pct = 100.0 * float64(hit) / float64(len(records))
	}

	fmt.Fprintf(w, "%s  %d operation(s), %d declared response(s), %d hit (%.1f%%)\n",
		s.SummaryLabel.Render("Coverage:"), len(ops), len(records), hit, pct)
}
