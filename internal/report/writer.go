package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Format selects an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatXLSX  Format = "xlsx"
)

// Formats lists every supported output format.
var Formats = []Format{FormatTable, FormatCSV, FormatJSON, FormatXLSX}

// ParseFormat returns the Format for s. An empty string selects FormatTable.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatTable, nil
	}
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", eris.Errorf("report: unknown format %q", s)
}

// Write renders t in format f. JSON output encodes v instead of the table so
// callers keep their typed field names.
func Write(w io.Writer, f Format, t Table, v any) error {
	switch f {
	case FormatTable, "":
		return WriteText(w, t)
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatJSON:
		return WriteJSON(w, v)
	case FormatXLSX:
		return WriteXLSX(w, t)
	default:
		return eris.Errorf("report: unknown format %q", f)
	}
}

// WriteText writes t as an aligned text table.
func WriteText(out io.Writer, t Table) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(t.Header, "\t"))
	underline := make([]string, len(t.Header))
	for i, h := range t.Header {
		underline[i] = strings.Repeat("-", len(h))
	}
	_, _ = fmt.Fprintln(w, strings.Join(underline, "\t"))

	for _, row := range t.Rows {
		texts := make([]string, len(row))
		for i, c := range row {
			texts[i] = c.Text
		}
		_, _ = fmt.Fprintln(w, strings.Join(texts, "\t"))
	}
	return eris.Wrap(w.Flush(), "report: flush table")
}

// WriteCSV writes t as CSV with raw numeric values.
func WriteCSV(out io.Writer, t Table) error {
	w := csv.NewWriter(out)
	if err := w.Write(t.Header); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, c := range row {
			rec[i] = c.Raw()
		}
		if err := w.Write(rec); err != nil {
			return eris.Wrap(err, "report: write csv row")
		}
	}
	w.Flush()
	return eris.Wrap(w.Error(), "report: flush csv")
}

// WriteJSON writes v as indented JSON.
func WriteJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "report: encode json")
}

// WriteXLSX writes t as a single-sheet workbook named after the table.
func WriteXLSX(out io.Writer, t Table) error {
	f := xlsx.NewFile()
	name := t.Title
	if name == "" {
		name = "Sheet1"
	}
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range t.Header {
		header.AddCell().SetString(h)
	}
	for _, row := range t.Rows {
		r := sheet.AddRow()
		for _, c := range row {
			cell := r.AddCell()
			if c.Num != nil {
				cell.SetFloat(*c.Num)
				continue
			}
			cell.SetString(c.Text)
		}
	}
	return eris.Wrap(f.Write(out), "report: write xlsx")
}
