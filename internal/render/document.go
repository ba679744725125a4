package render

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vvka-141/ecomadmin/internal/bulkload"
	"github.com/vvka-141/ecomadmin/internal/catalog"
	"github.com/vvka-141/ecomadmin/internal/schema"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

type resultDoc struct {
	Query      string       `json:"query" yaml:"query"`
	Shape      string       `json:"shape" yaml:"shape"`
	Columns    []string     `json:"columns,omitempty" yaml:"columns,omitempty"`
	Rows       []orderedRow `json:"rows,omitempty" yaml:"rows,omitempty"`
	Metrics    []metricDoc  `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	InsertedID *int64       `json:"inserted_id,omitempty" yaml:"inserted_id,omitempty"`
}

type metricDoc struct {
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label" yaml:"label"`
	Value any    `json:"value" yaml:"value"`
}

type loadDoc struct {
	RunID      string      `json:"run_id" yaml:"run_id"`
	Entity     string      `json:"entity" yaml:"entity"`
	Source     string      `json:"source" yaml:"source"`
	Checksum   string      `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	Inserted   int         `json:"inserted" yaml:"inserted"`
	Skipped    int         `json:"skipped" yaml:"skipped"`
	DurationMS int64       `json:"duration_ms" yaml:"duration_ms"`
	Rejected   []rejectDoc `json:"rejected" yaml:"rejected"`
}

type rejectDoc struct {
	Row    int    `json:"row" yaml:"row"`
	Column string `json:"column" yaml:"column"`
	Value  string `json:"value" yaml:"value"`
	Reason string `json:"reason" yaml:"reason"`
}

type clearDoc struct {
	Table   string `json:"table" yaml:"table"`
	Cleared bool   `json:"cleared" yaml:"cleared"`
}

type countDoc struct {
	Table   string `json:"table" yaml:"table"`
	Rows    int64  `json:"rows" yaml:"rows"`
	Missing bool   `json:"missing,omitempty" yaml:"missing,omitempty"`
}

type entryDoc struct {
	Name        string     `json:"name" yaml:"name"`
	Title       string     `json:"title" yaml:"title"`
	Group       string     `json:"group" yaml:"group"`
	Description string     `json:"description" yaml:"description"`
	Shape       string     `json:"shape" yaml:"shape"`
	Params      []paramDoc `json:"params" yaml:"params"`
}

type paramDoc struct {
	Name     string `json:"name" yaml:"name"`
	Label    string `json:"label" yaml:"label"`
	Kind     string `json:"kind" yaml:"kind"`
	Optional bool   `json:"optional" yaml:"optional"`
}

// orderedRow marshals as an object whose keys follow the query's column order.
type orderedRow struct {
	columns []string
	values  catalog.Row
	convert func(any) any
}

func (o orderedRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range o.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(o.convert(o.values[col]))
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// jsonValue keeps decimals numeric and dates free of a time component.
func jsonValue(v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		return json.Number(x.String())
	case time.Time:
		if isDate(x) {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	case []byte:
		return string(x)
	default:
		return v
	}
}

func writeJSON(w io.Writer, doc any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func resultDocument(res *catalog.Result, convert func(any) any) resultDoc {
	doc := resultDoc{Query: res.Entry, Shape: res.Shape.String()}
	switch res.Shape {
	case catalog.ShapeMetrics:
		doc.Metrics = make([]metricDoc, 0, len(res.Metrics))
		for _, m := range res.Metrics {
			doc.Metrics = append(doc.Metrics, metricDoc{Name: m.Name, Label: m.Label, Value: convert(m.Value)})
		}
	case catalog.ShapeInsert:
		id := res.InsertedID
		doc.InsertedID = &id
	default:
		doc.Columns = res.Columns
		doc.Rows = make([]orderedRow, 0, len(res.Rows))
		for _, row := range res.Rows {
			doc.Rows = append(doc.Rows, orderedRow{columns: res.Columns, values: row, convert: convert})
		}
	}
	return doc
}

func loadsDocument(results []*bulkload.LoadResult) []loadDoc {
	docs := make([]loadDoc, 0, len(results))
	for _, res := range results {
		if res == nil {
			continue
		}
		docs = append(docs, loadDoc{
			RunID:      res.RunID.String(),
			Entity:     res.Entity,
			Source:     res.Source,
			Checksum:   res.Checksum,
			Inserted:   res.Inserted,
			Skipped:    res.Skipped,
			DurationMS: res.Duration.Milliseconds(),
			Rejected:   rejectDocs(res.Rejected),
		})
	}
	return docs
}

func rejectDocs(rejected []*ecomadmin.ValidationError) []rejectDoc {
	docs := make([]rejectDoc, 0, len(rejected))
	for _, v := range rejected {
		docs = append(docs, rejectDoc{Row: v.Row, Column: v.Column, Value: v.Value, Reason: v.Reason})
	}
	return docs
}

func clearsDocument(clears []bulkload.TableClear) []clearDoc {
	docs := make([]clearDoc, 0, len(clears))
	for _, c := range clears {
		docs = append(docs, clearDoc(c))
	}
	return docs
}

func countsDocument(counts []schema.TableCount) []countDoc {
	docs := make([]countDoc, 0, len(counts))
	for _, c := range counts {
		docs = append(docs, countDoc(c))
	}
	return docs
}

func entriesDocument(entries []*catalog.Entry) []entryDoc {
	docs := make([]entryDoc, 0, len(entries))
	for _, e := range entries {
		params := make([]paramDoc, 0, len(e.Params))
		for _, p := range e.Params {
			params = append(params, paramDoc{Name: p.Name, Label: p.Label, Kind: p.Kind.String(), Optional: p.Optional})
		}
		docs = append(docs, entryDoc{
			Name:        e.Name,
			Title:       e.Title,
			Group:       string(e.Group),
			Description: e.Description,
			Shape:       e.Shape.String(),
			Params:      params,
		})
	}
	return docs
}
