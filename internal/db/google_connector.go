package db

import (
	"context"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/ecomadmin/internal/logging"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// GoogleCloudSQLConnector connects through the Cloud SQL Go Connector with IAM
// database authentication. The dialer lives until Close, which the caller
// invokes after closing the pool.
type GoogleCloudSQLConnector struct {
	config *ecomadmin.ConnectionConfig
	logger ecomadmin.Logger
	dialer *cloudsqlconn.Dialer
}

func NewGoogleCloudSQLConnector(config *ecomadmin.ConnectionConfig, logger ecomadmin.Logger) *GoogleCloudSQLConnector {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &GoogleCloudSQLConnector{config: config, logger: logger}
}

func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud SQL dialer: %w", err)
	}

	dsn := fmt.Sprintf("user=%s dbname=%s sslmode=disable", c.config.Username, c.config.Database)
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		dialer.Close()
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}
	poolConfig.ConnConfig.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
		return dialer.Dial(ctx, c.config.GoogleInstance)
	}
	configurePool(poolConfig, c.logger)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err == nil {
		err = pool.Ping(ctx)
		if err != nil {
			pool.Close()
		}
	}
	if err != nil {
		dialer.Close()
		return nil, &ecomadmin.ConnectionError{
			Host:     c.config.GoogleInstance,
			Port:     c.config.Port,
			Database: c.config.Database,
			Err:      err,
		}
	}

	c.dialer = dialer
	c.logger.Verbose("connected to Cloud SQL instance %s as %s", c.config.GoogleInstance, c.config.Username)
	return pool, nil
}

// Close releases the Cloud SQL dialer.
func (c *GoogleCloudSQLConnector) Close() error {
	if c.dialer == nil {
		return nil
	}
	err := c.dialer.Close()
	c.dialer = nil
	if err != nil {
		return fmt.Errorf("close Cloud SQL dialer: %w", err)
	}
	return nil
}
