package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/ecomadmin/internal/bulkload"
	"github.com/vvka-141/ecomadmin/internal/catalog"
	"github.com/vvka-141/ecomadmin/internal/schema"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

func tableResult() *catalog.Result {
	return &catalog.Result{
		Entry:   "customer-orders",
		Shape:   catalog.ShapeTable,
		Columns: []string{"order_id", "product", "discount", "description"},
		Rows: []catalog.Row{
			{"order_id": int64(1), "product": "Lamp", "discount": decimal.RequireFromString("0.25"), "description": nil},
			{"order_id": int64(3), "product": "Lamp", "discount": decimal.RequireFromString("0.10"), "description": "Desk lamp"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatTable},
		{"table", FormatTable},
		{"JSON", FormatJSON},
		{" yaml ", FormatYAML},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ecomadmin.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "table, json, yaml")
}

func TestNew_UnknownFormatFallsBackToTable(t *testing.T) {
	assert.Equal(t, FormatTable, New(&bytes.Buffer{}, Format("csv")).Format())
}

func TestResult_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatTable).Result(tableResult()))

	out := buf.String()
	for _, want := range []string{"order_id", "product", "Lamp", "0.25", "NULL", "Desk lamp", "(2 rows)"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "order_id"), strings.Index(out, "discount"), "column order is kept")
}

func TestResult_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	res := &catalog.Result{Shape: catalog.ShapeTable, Columns: []string{"product_id"}}
	require.NoError(t, New(&buf, FormatTable).Result(res))
	assert.Contains(t, buf.String(), "No matching rows.")
}

func TestResult_Metrics(t *testing.T) {
	var buf bytes.Buffer
	res := &catalog.Result{
		Shape: catalog.ShapeMetrics,
		Metrics: []catalog.Metric{
			{Name: "total_customers", Label: "Total customers", Value: int64(3)},
			{Name: "avg_orders", Label: "Average orders", Value: decimal.RequireFromString("1.33")},
		},
	}
	require.NoError(t, New(&buf, FormatTable).Result(res))
	assert.Contains(t, buf.String(), "Total customers")
	assert.Contains(t, buf.String(), "1.33")
}

func TestResult_Insert(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatTable).Result(&catalog.Result{Shape: catalog.ShapeInsert, InsertedID: 42}))
	assert.Contains(t, buf.String(), "Inserted row with id 42")
}

func TestResult_JSONKeepsColumnOrderAndNumbers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatJSON).Result(tableResult()))

	out := buf.String()
	assert.Less(t, strings.Index(out, `"order_id"`), strings.Index(out, `"product"`))
	assert.Contains(t, out, `"discount": 0.25`)
	assert.Contains(t, out, `"description": null`)

	var doc struct {
		Query string           `json:"query"`
		Shape string           `json:"shape"`
		Rows  []map[string]any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "customer-orders", doc.Query)
	assert.Equal(t, "table", doc.Shape)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, "Desk lamp", doc.Rows[1]["description"])
}

func TestResult_JSONInsert(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatJSON).Result(&catalog.Result{Entry: "insert-product", Shape: catalog.ShapeInsert, InsertedID: 5}))
	assert.Contains(t, buf.String(), `"inserted_id": 5`)
}

func TestResult_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatYAML).Result(tableResult()))

	out := buf.String()
	assert.Contains(t, out, "discount: 0.25")
	assert.NotContains(t, out, "\"0.25\"")
	assert.Less(t, strings.Index(out, "order_id"), strings.Index(out, "product:"))

	var doc struct {
		Rows []map[string]any `yaml:"rows"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, 0.25, doc.Rows[0]["discount"])
	assert.Nil(t, doc.Rows[0]["description"])
}

func TestResult_YAMLMetricDecimal(t *testing.T) {
	var buf bytes.Buffer
	res := &catalog.Result{
		Entry:   "customer-stats",
		Shape:   catalog.ShapeMetrics,
		Metrics: []catalog.Metric{{Name: "avg_orders", Label: "Average orders", Value: decimal.RequireFromString("1.5")}},
	}
	require.NoError(t, New(&buf, FormatYAML).Result(res))
	assert.Contains(t, buf.String(), "value: 1.5")
}

func TestLoads_TableListsRejectedRows(t *testing.T) {
	var buf bytes.Buffer
	results := []*bulkload.LoadResult{{
		RunID:    uuid.New(),
		Entity:   "product",
		Source:   "data/product.csv",
		Inserted: 3,
		Skipped:  1,
		Rejected: []*ecomadmin.ValidationError{
			{Entity: "product", Row: 4, Column: "quantity", Value: "-1", Reason: "must be at least 1"},
		},
		Duration: 1500 * time.Microsecond,
	}}
	require.NoError(t, New(&buf, FormatTable).Loads(results))

	out := buf.String()
	for _, want := range []string{"product", "data/product.csv", "1 row rejected", "quantity", "must be at least 1"} {
		assert.Contains(t, out, want)
	}
}

func TestLoads_JSON(t *testing.T) {
	var buf bytes.Buffer
	id := uuid.New()
	results := []*bulkload.LoadResult{{RunID: id, Entity: "customer", Source: "customer.csv", Inserted: 3, Checksum: "abc123"}}
	require.NoError(t, New(&buf, FormatJSON).Loads(results))

	var docs []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, id.String(), docs[0]["run_id"])
	assert.Equal(t, float64(3), docs[0]["inserted"])
	assert.Equal(t, "abc123", docs[0]["checksum"])
	assert.Empty(t, docs[0]["rejected"])
}

func TestClearsAndCounts(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatTable)
	require.NoError(t, r.Clears([]bulkload.TableClear{{Table: "orders", Cleared: true}, {Table: "legacy", Cleared: false}}))
	require.NoError(t, r.Counts([]schema.TableCount{{Table: "customer", Rows: 3}, {Table: "orders", Missing: true}}))

	out := buf.String()
	assert.Contains(t, out, "cleared")
	assert.Contains(t, out, "absent")
	assert.Contains(t, out, "missing")

	buf.Reset()
	require.NoError(t, New(&buf, FormatYAML).Counts([]schema.TableCount{{Table: "customer", Rows: 3}}))
	assert.Contains(t, buf.String(), "table: customer")
	assert.Contains(t, buf.String(), "rows: 3")
	assert.NotContains(t, buf.String(), "missing")
}

func TestEntries(t *testing.T) {
	var buf bytes.Buffer
	cat := catalog.New()
	require.NoError(t, New(&buf, FormatTable).Entries(cat.Entries()))
	assert.Contains(t, buf.String(), "insert-product")
	assert.Contains(t, buf.String(), "[description:text]")
}

func TestFormatValue(t *testing.T) {
	date := time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC)
	stamp := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "NULL", FormatValue(nil))
	assert.Equal(t, "2027-12-31", FormatValue(date))
	assert.Equal(t, "2024-03-01 14:30:00", FormatValue(stamp))
	assert.Equal(t, "0.11", FormatValue(decimal.RequireFromString("0.11")))
	assert.Equal(t, "7", FormatValue(int64(7)))
	assert.Equal(t, "true", FormatValue(true))
}

func TestParamSummary(t *testing.T) {
	assert.Equal(t, "-", ParamSummary(nil))
	assert.Equal(t, "customer_id:int [limit:int]", ParamSummary([]catalog.Param{
		{Name: "customer_id", Kind: catalog.ParamInt},
		{Name: "limit", Kind: catalog.ParamInt, Optional: true},
	}))
}
