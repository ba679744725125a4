package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/ecomadmin/internal/bulkload"
	"github.com/vvka-141/ecomadmin/internal/catalog"
	"github.com/vvka-141/ecomadmin/internal/db"
	"github.com/vvka-141/ecomadmin/internal/logging"
	"github.com/vvka-141/ecomadmin/internal/services"
	testhelpers "github.com/vvka-141/ecomadmin/internal/testing"
	"github.com/vvka-141/ecomadmin/internal/testing/fixtures"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

func TestAdminService_FullLifecycle(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	ctx := context.Background()

	dbName := testhelpers.UniqueDBName("ecomadmin_admin")
	testhelpers.CreateTestDB(t, connString, dbName)
	connConfig := testhelpers.TestConnectionConfig(t, connString, dbName)

	seed := fixtures.Standard("seed")
	logger := logging.NewNullLogger()
	svc := services.NewAdminService(
		services.NewSessionManager(db.NewConnector, logger),
		&testhelpers.ForceApprover{},
		bulkload.NewLoader(seed.Build(), logger, bulkload.LoadOptions{}),
		catalog.New(),
		logger,
		time.Minute,
	)

	require.NoError(t, svc.ApplySchema(ctx, connConfig))

	results, err := svc.LoadAll(ctx, connConfig, seed.Dir())
	require.NoError(t, err)
	assert.Len(t, results, 8)

	counts, err := svc.Status(ctx, connConfig)
	require.NoError(t, err)
	for _, c := range counts {
		assert.Equal(t, fixtures.StandardRowCounts[c.Table], c.Rows, c.Table)
	}

	result, err := svc.RunQuery(ctx, connConfig, "customer-orders", map[string]string{"customer_id": "1"})
	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)

	clears, err := svc.Clear(ctx, connConfig)
	require.NoError(t, err)
	assert.Len(t, clears, 8)

	counts, err = svc.Status(ctx, connConfig)
	require.NoError(t, err)
	for _, c := range counts {
		assert.Zero(t, c.Rows, c.Table)
	}
}

func TestAdminService_LoadEntityMissingSource(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	ctx := context.Background()

	dbName := testhelpers.UniqueDBName("ecomadmin_admin")
	testhelpers.CreateTestDB(t, connString, dbName)
	connConfig := testhelpers.TestConnectionConfig(t, connString, dbName)

	logger := logging.NewNullLogger()
	svc := services.NewAdminService(
		services.NewSessionManager(db.NewConnector, logger),
		&testhelpers.ForceApprover{},
		bulkload.NewLoader(fixtures.NewSeedBuilder("seed").Build(), logger, bulkload.LoadOptions{}),
		catalog.New(),
		logger,
		time.Minute,
	)
	require.NoError(t, svc.ApplySchema(ctx, connConfig))

	_, err := svc.LoadEntity(ctx, connConfig, "customer", "seed/customer.csv")
	require.ErrorIs(t, err, ecomadmin.ErrSourceNotFound)
	assert.Equal(t, ecomadmin.ExitSourceNotFound, ecomadmin.ExitCodeForError(err))
}

func TestAdminService_MissingDatabaseIsConnectionError(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	connConfig := testhelpers.TestConnectionConfig(t, connString, testhelpers.UniqueDBName("ecomadmin_absent"))

	logger := logging.NewNullLogger()
	svc := services.NewAdminService(
		services.NewSessionManager(db.NewConnector, logger),
		&testhelpers.ForceApprover{},
		bulkload.NewLoader(fixtures.NewSeedBuilder("seed").Build(), logger, bulkload.LoadOptions{}),
		catalog.New(),
		logger,
		time.Minute,
	)

	_, err := svc.Status(context.Background(), connConfig)
	require.ErrorIs(t, err, ecomadmin.ErrConnectionFailed)
	assert.Contains(t, err.Error(), "createdb")
}
