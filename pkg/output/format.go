// Package output provides utilities for formatting and displaying computed
// model values. It consumes the engine's read contract only; all numbers
// arrive unrounded and formatting is applied here.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/proforma/pkg/format"
)

// Table is the narrow read contract the renderers consume. engine.Model
// satisfies it.
type Table interface {
	Periods() []int
	Names() []string
	Label(name string) (string, error)
	Format(name string) (format.Spec, error)
	Value(name string, period int) (float64, error)
	HasValue(name string, period int) (bool, error)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(table Table) {
	PrettyFormatTo(os.Stdout, table)
}

// PrettyFormatTo writes the human-readable table to w.
func PrettyFormatTo(w io.Writer, table Table) {
	p := message.NewPrinter(language.English)
	periods := table.Periods()
	names := table.Names()

	header := make([]string, 0, len(periods)+1)
	header = append(header, "Line Item")
	for _, period := range periods {
		header = append(header, fmt.Sprintf("%d", period))
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		row := make([]string, 0, len(periods)+1)
		row = append(row, displayLabel(table, name))
		for _, period := range periods {
			row = append(row, renderCell(p, table, name, period))
		}
		rows = append(rows, row)
	}

	widths := columnWidths(header, rows)
	writeRow(w, header, widths)
	separator := make([]string, len(header))
	for i, width := range widths {
		separator[i] = strings.Repeat("_", width)
	}
	writeRow(w, separator, widths)
	for _, row := range rows {
		writeRow(w, row, widths)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(table Table) {
	CsvFormatTo(os.Stdout, table)
}

// CsvFormatTo writes the comma-separated table to w. Values are emitted as
// plain numbers so downstream tools can parse them.
func CsvFormatTo(w io.Writer, table Table) {
	periods := table.Periods()

	fmt.Fprintf(w, `"line item"`)
	for _, period := range periods {
		fmt.Fprintf(w, `,"%d"`, period)
	}
	fmt.Fprintf(w, "\n")

	for _, name := range table.Names() {
		fmt.Fprintf(w, `"%s"`, displayLabel(table, name))
		for _, period := range periods {
			if has, err := table.HasValue(name, period); err != nil || !has {
				fmt.Fprintf(w, `,""`)
				continue
			}
			value, err := table.Value(name, period)
			if err != nil {
				fmt.Fprintf(w, `,""`)
				continue
			}
			fmt.Fprintf(w, `,"%.2f"`, value)
		}
		fmt.Fprintf(w, "\n")
	}
}

func displayLabel(table Table, name string) string {
	if label, err := table.Label(name); err == nil && label != "" {
		return label
	}
	return name
}

// renderCell formats one value per the line item's format spec; cells with
// no value render blank, never as zero.
func renderCell(p *message.Printer, table Table, name string, period int) string {
	has, err := table.HasValue(name, period)
	if err != nil || !has {
		return ""
	}
	value, err := table.Value(name, period)
	if err != nil {
		return ""
	}
	spec, err := table.Format(name)
	if err != nil {
		spec = format.Default()
	}
	return spec.Render(p, value)
}

func columnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = len(cell)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func writeRow(w io.Writer, row []string, widths []int) {
	parts := make([]string, len(row))
	for i, cell := range row {
		if i == 0 {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		} else {
			parts[i] = fmt.Sprintf("%*s", widths[i], cell)
		}
	}
	fmt.Fprintf(w, "%s\n", strings.Join(parts, " | "))
}
