// Package render writes operation results to a terminal or a pipe.
//
// Three formats are supported: aligned tables for people, and JSON or YAML
// documents for scripts. Column order reported by the query is preserved in
// every format.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vvka-141/ecomadmin/internal/bulkload"
	"github.com/vvka-141/ecomadmin/internal/catalog"
	"github.com/vvka-141/ecomadmin/internal/schema"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// Format selects the output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists every accepted format name, for flag help and completion.
var Formats = []string{string(FormatTable), string(FormatJSON), string(FormatYAML)}

// ParseFormat accepts a format name case-insensitively. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected one of %s): %w",
			s, strings.Join(Formats, ", "), ecomadmin.ErrInvalidConfig)
	}
}

// Renderer writes results to out in one format.
type Renderer struct {
	out    io.Writer
	format Format
}

// New creates a Renderer. An unknown format falls back to table.
func New(out io.Writer, format Format) *Renderer {
	switch format {
	case FormatJSON, FormatYAML:
	default:
		format = FormatTable
	}
	return &Renderer{out: out, format: format}
}

// Format reports the encoding the renderer writes.
func (r *Renderer) Format() Format {
	return r.format
}

// Result writes a catalog result according to its shape.
func (r *Renderer) Result(res *catalog.Result) error {
	if res == nil {
		return nil
	}
	switch r.format {
	case FormatJSON:
		return writeJSON(r.out, resultDocument(res, jsonValue))
	case FormatYAML:
		return writeYAML(r.out, resultDocument(res, yamlValue))
	}

	switch res.Shape {
	case catalog.ShapeMetrics:
		rows := make([][]string, 0, len(res.Metrics))
		for _, m := range res.Metrics {
			rows = append(rows, []string{m.Label, FormatValue(m.Value)})
		}
		return r.table([]string{"Metric", "Value"}, rows)
	case catalog.ShapeInsert:
		_, err := fmt.Fprintf(r.out, "%s Inserted row with id %d\n", symbolCheck, res.InsertedID)
		return err
	default:
		if len(res.Rows) == 0 {
			_, err := fmt.Fprintln(r.out, mutedStyle.Render("No matching rows."))
			return err
		}
		rows := make([][]string, 0, len(res.Rows))
		for _, row := range res.Rows {
			cells := make([]string, len(res.Columns))
			for i, col := range res.Columns {
				cells[i] = FormatValue(row[col])
			}
			rows = append(rows, cells)
		}
		if err := r.table(res.Columns, rows); err != nil {
			return err
		}
		_, err := fmt.Fprintln(r.out, mutedStyle.Render(fmt.Sprintf("(%d %s)", len(res.Rows), plural(len(res.Rows), "row", "rows"))))
		return err
	}
}

// Loads writes a summary of bulk loads followed by every rejected row.
func (r *Renderer) Loads(results []*bulkload.LoadResult) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(r.out, loadsDocument(results))
	case FormatYAML:
		return writeYAML(r.out, loadsDocument(results))
	}

	rows := make([][]string, 0, len(results))
	var rejected []*ecomadmin.ValidationError
	for _, res := range results {
		if res == nil {
			continue
		}
		rows = append(rows, []string{
			res.Entity,
			res.Source,
			fmt.Sprint(res.Inserted),
			fmt.Sprint(res.Skipped),
			fmt.Sprint(len(res.Rejected)),
			res.Duration.Round(time.Millisecond).String(),
		})
		rejected = append(rejected, res.Rejected...)
	}
	if err := r.table([]string{"Entity", "Source", "Inserted", "Skipped", "Rejected", "Duration"}, rows); err != nil {
		return err
	}
	if len(rejected) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(r.out, warningStyle.Render(fmt.Sprintf("\n%d %s rejected:", len(rejected), plural(len(rejected), "row", "rows")))); err != nil {
		return err
	}
	rejectRows := make([][]string, 0, len(rejected))
	for _, v := range rejected {
		rejectRows = append(rejectRows, []string{v.Entity, fmt.Sprint(v.Row), v.Column, v.Value, v.Reason})
	}
	return r.table([]string{"Entity", "Row", "Column", "Value", "Reason"}, rejectRows)
}

// Clears writes which tables were truncated.
func (r *Renderer) Clears(clears []bulkload.TableClear) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(r.out, clearsDocument(clears))
	case FormatYAML:
		return writeYAML(r.out, clearsDocument(clears))
	}

	rows := make([][]string, 0, len(clears))
	for _, c := range clears {
		state := symbolCheck + " cleared"
		if !c.Cleared {
			state = "absent"
		}
		rows = append(rows, []string{c.Table, state})
	}
	return r.table([]string{"Table", "State"}, rows)
}

// Counts writes the row count of each table.
func (r *Renderer) Counts(counts []schema.TableCount) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(r.out, countsDocument(counts))
	case FormatYAML:
		return writeYAML(r.out, countsDocument(counts))
	}

	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		value := fmt.Sprint(c.Rows)
		if c.Missing {
			value = "missing"
		}
		rows = append(rows, []string{c.Table, value})
	}
	return r.table([]string{"Table", "Rows"}, rows)
}

// Entries writes the catalog listing grouped by page section.
func (r *Renderer) Entries(entries []*catalog.Entry) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(r.out, entriesDocument(entries))
	case FormatYAML:
		return writeYAML(r.out, entriesDocument(entries))
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{string(e.Group), e.Name, e.Title, ParamSummary(e.Params)})
	}
	return r.table([]string{"Group", "Name", "Title", "Parameters"}, rows)
}

// ParamSummary describes parameters as "name:kind" with optional ones in brackets.
func ParamSummary(params []catalog.Param) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + ":" + p.Kind.String()
		if p.Optional {
			parts[i] = "[" + parts[i] + "]"
		}
	}
	return strings.Join(parts, " ")
}

// FormatValue renders a single column value for table output.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return x
	case []byte:
		return string(x)
	case decimal.Decimal:
		return x.String()
	case *decimal.Decimal:
		if x == nil {
			return "NULL"
		}
		return x.String()
	case time.Time:
		if isDate(x) {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.DateTime)
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(x)
	}
}

// isDate reports whether t carries no time of day, as DATE columns decode.
func isDate(t time.Time) bool {
	return t.Location() == time.UTC && t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
