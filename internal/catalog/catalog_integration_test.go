package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/ecomadmin/internal/bulkload"
	"github.com/vvka-141/ecomadmin/internal/catalog"
	"github.com/vvka-141/ecomadmin/internal/logging"
	"github.com/vvka-141/ecomadmin/internal/schema"
	testhelpers "github.com/vvka-141/ecomadmin/internal/testing"
	"github.com/vvka-141/ecomadmin/internal/testing/fixtures"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

func seededConn(t *testing.T, seed *fixtures.SeedBuilder) ecomadmin.DBConn {
	t.Helper()
	pool, _ := testhelpers.NewTestDatabase(t, "ecomadmin_catalog")
	conn := testhelpers.AcquireConn(t, pool)
	ctx := context.Background()
	require.NoError(t, schema.Apply(ctx, conn))

	loader := bulkload.NewLoader(seed.Build(), logging.NewNullLogger(), bulkload.LoadOptions{AllowMissing: true})
	_, err := loader.LoadAll(ctx, conn, seed.Dir())
	require.NoError(t, err)
	return conn
}

func column(rows []catalog.Row, name string) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r[name]
	}
	return out
}

func TestPopularProducts_NoOrdersIsEmpty(t *testing.T) {
	seed := fixtures.NewSeedBuilder("seed").AddFile("category.csv", "category_id,name\n1,Books\n2,Lighting\n")
	conn := seededConn(t, seed)

	result, err := catalog.New().Run(context.Background(), conn, "popular-products", nil)
	require.NoError(t, err)
	assert.NotNil(t, result.Rows)
	assert.Empty(t, result.Rows)
	assert.Equal(t, catalog.ShapeTable, result.Shape)
}

func TestPopularProducts_OrderedByOrderCount(t *testing.T) {
	conn := seededConn(t, fixtures.Standard("seed"))

	result, err := catalog.New().Run(context.Background(), conn, "popular-products", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, column(result.Rows, "product_id"))
	assert.Equal(t, []any{int64(2), int64(1), int64(1)}, column(result.Rows, "times_ordered"))
}

func TestInsertProduct_ThenSearch(t *testing.T) {
	conn := seededConn(t, fixtures.Standard("seed"))
	cat := catalog.New()
	ctx := context.Background()

	inserted, err := cat.Run(ctx, conn, "insert-product", map[string]string{
		"name": "Reading Glasses", "description": "Blue light", "quantity": "4", "discount": "0.2", "category_id": "1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), inserted.InsertedID, "ids continue after the loaded rows")

	found, err := cat.Run(ctx, conn, "product-search", map[string]string{"term": "reading"})
	require.NoError(t, err)
	require.Len(t, found.Rows, 1)
	assert.Equal(t, "Reading Glasses", found.Rows[0]["name"])
	assert.Equal(t, "Books", found.Rows[0]["category_name"])
	assert.True(t, decimal.RequireFromString("0.2").Equal(found.Rows[0]["discount"].(decimal.Decimal)))
}

func TestProductSearch_MetacharactersMatchLiterally(t *testing.T) {
	conn := seededConn(t, fixtures.Standard("seed"))
	cat := catalog.New()
	ctx := context.Background()

	percent, err := cat.Run(ctx, conn, "product-search", map[string]string{"term": "100%"})
	require.NoError(t, err)
	assert.Equal(t, []any{"Novel"}, column(percent.Rows, "name"))

	underscore, err := cat.Run(ctx, conn, "product-search", map[string]string{"term": "_"})
	require.NoError(t, err)
	assert.Equal(t, []any{"Bulb"}, column(underscore.Rows, "name"))

	injection, err := cat.Run(ctx, conn, "product-search", map[string]string{"term": "'; DROP TABLE product; --"})
	require.NoError(t, err)
	assert.Empty(t, injection.Rows)
	assert.Equal(t, int64(4), testhelpers.CountRows(t, conn, "product"))
}

func TestMetrics_CustomerAndVendorStats(t *testing.T) {
	conn := seededConn(t, fixtures.Standard("seed"))
	cat := catalog.New()
	ctx := context.Background()

	stats, err := cat.Run(ctx, conn, "customer-stats", nil)
	require.NoError(t, err)
	require.Len(t, stats.Metrics, 2)
	assert.Equal(t, "Total Customers", stats.Metrics[0].Label)
	assert.Equal(t, int64(3), stats.Metrics[0].Value)
	assert.Equal(t, "2", stats.Metrics[1].Value.(decimal.Decimal).String())

	vendor, err := cat.Run(ctx, conn, "vendor-stats", map[string]string{"vendor_id": "1"})
	require.NoError(t, err)
	values := map[string]any{}
	for _, m := range vendor.Metrics {
		values[m.Name] = m.Value
	}
	assert.Equal(t, int64(2), values["total_orders"])
	assert.Equal(t, int64(2), values["unique_customers"])
	assert.Equal(t, int64(3), values["total_items_sold"])
}

func TestCustomerOrders_UnknownCustomerIsEmpty(t *testing.T) {
	conn := seededConn(t, fixtures.Standard("seed"))

	result, err := catalog.New().Run(context.Background(), conn, "customer-orders", map[string]string{"customer_id": "999"})
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.Contains(t, result.Columns, "order_id")
}

func TestEveryEntryRunsAgainstTheSchema(t *testing.T) {
	conn := seededConn(t, fixtures.Standard("seed"))
	ctx := context.Background()

	sample := map[catalog.ParamKind]string{
		catalog.ParamInt:      "1",
		catalog.ParamText:     "a",
		catalog.ParamFraction: "0.5",
	}
	for _, e := range catalog.New().Entries() {
		if e.Shape == catalog.ShapeInsert {
			continue
		}
		t.Run(e.Name, func(t *testing.T) {
			raw := map[string]string{}
			for _, p := range e.Params {
				raw[p.Name] = sample[p.Kind]
			}
			_, err := e.Run(ctx, conn, raw)
			assert.NoError(t, err)
		})
	}
}
