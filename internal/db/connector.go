package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/ecomadmin/internal/logging"
	"github.com/vvka-141/ecomadmin/internal/retry"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// Pool sizing. An operation holds a single connection, so the pool stays small.
const (
	DefaultMaxConns        = 2
	DefaultMinConns        = 1
	DefaultMaxConnIdleTime = 10 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config, logger ecomadmin.Logger) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("%s: %s", notice.Severity, notice.Message)
	}
}

func newRetryExecutor(logger ecomadmin.Logger) *retry.Executor {
	backoff := retry.NewExponentialBackoff(ecomadmin.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(ecomadmin.DefaultRetryInitialDelay),
		retry.WithMaxDelay(ecomadmin.DefaultRetryMaxDelay),
	)
	return retry.NewExecutor(retry.NewPostgreSQLClassifier(), backoff).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("connect attempt %d failed (%v), retrying in %s", attempt+1, err, delay.Round(time.Millisecond))
		})
}

// StandardConnector connects with username/password credentials and retries
// transient failures.
type StandardConnector struct {
	config        *ecomadmin.ConnectionConfig
	logger        ecomadmin.Logger
	retryExecutor *retry.Executor
}

// NewStandardConnector creates a StandardConnector. A nil logger discards output.
func NewStandardConnector(config *ecomadmin.ConnectionConfig, logger ecomadmin.Logger) *StandardConnector {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &StandardConnector{
		config:        config,
		logger:        logger,
		retryExecutor: newRetryExecutor(logger),
	}
}

func (c *StandardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	return connectWithRetry(ctx, c.retryExecutor, c.config, c.logger, func(context.Context) (string, error) {
		return BuildConnectionString(c.config), nil
	})
}

// connectWithRetry builds a pool from the string produced by dsn, pings it and
// retries transient failures. dsn runs on every attempt so short-lived tokens stay fresh.
func connectWithRetry(
	ctx context.Context,
	executor *retry.Executor,
	config *ecomadmin.ConnectionConfig,
	logger ecomadmin.Logger,
	dsn func(context.Context) (string, error),
) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	err := executor.Execute(ctx, func(ctx context.Context) error {
		connStr, err := dsn(ctx)
		if err != nil {
			return err
		}

		poolConfig, err := pgxpool.ParseConfig(connStr)
		if err != nil {
			return fmt.Errorf("failed to parse connection config: %w", ecomadmin.ErrInvalidConfig)
		}
		configurePool(poolConfig, logger)

		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return wrapConnectionError(err, config)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return wrapConnectionError(err, config)
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Verbose("connected to %s:%d/%s as %s (%s)", config.Host, config.Port, config.Database, config.Username, config.AuthMethod)
	return pool, nil
}

// NewConnector creates the Connector matching config.AuthMethod.
func NewConnector(config *ecomadmin.ConnectionConfig, logger ecomadmin.Logger) (ecomadmin.Connector, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	switch config.AuthMethod {
	case ecomadmin.AuthMethodStandard:
		return NewStandardConnector(config, logger), nil
	case ecomadmin.AuthMethodAWSIAM:
		provider, err := NewAWSIAMTokenProvider(fmt.Sprintf("%s:%d", config.Host, config.Port), config.AWSRegion, config.Username)
		if err != nil {
			return nil, err
		}
		return NewTokenBasedConnector(config, provider, "AWS IAM", logger), nil
	case ecomadmin.AuthMethodAzureEntraID:
		provider, err := newAzureTokenProvider(config)
		if err != nil {
			return nil, err
		}
		return NewTokenBasedConnector(config, provider, "Azure", logger), nil
	case ecomadmin.AuthMethodGoogleIAM:
		if config.GoogleInstance == "" {
			return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance): %w", ecomadmin.ErrInvalidConfig)
		}
		if config.Username == "" {
			return nil, fmt.Errorf("Google Cloud SQL IAM auth requires a username (-U): %w", ecomadmin.ErrInvalidConfig)
		}
		return NewGoogleCloudSQLConnector(config, logger), nil
	default:
		return nil, fmt.Errorf("auth method %v: %w", config.AuthMethod, ecomadmin.ErrUnsupportedAuthMethod)
	}
}

// wrapConnectionError attaches the target and a hint for the common failure
// modes to a raw pgx error.
func wrapConnectionError(err error, config *ecomadmin.ConnectionConfig) error {
	msg := strings.ToLower(err.Error())

	var hint string
	switch {
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "actively refused"):
		hint = fmt.Sprintf("is PostgreSQL running? check: pg_isready -h %s -p %d", config.Host, config.Port)
	case strings.Contains(msg, "no such host"):
		hint = "the host name does not resolve; check spelling and DNS"
	case strings.Contains(msg, "password authentication failed"):
		hint = "check $PGPASSWORD, the connection string, or the user's access to the database"
	case strings.Contains(msg, "does not exist"):
		hint = fmt.Sprintf("create it with: createdb %s && ecomadmin schema apply", config.Database)
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		hint = "the server did not answer in time; check host, port and firewall"
	case strings.Contains(msg, "ssl") || strings.Contains(msg, "tls"):
		hint = "SSL negotiation failed; try a different --sslmode"
	case strings.Contains(msg, "too many connections"):
		hint = "the server's max_connections limit is reached"
	}

	if hint != "" {
		err = fmt.Errorf("%w\n  hint: %s", err, hint)
	}

	return &ecomadmin.ConnectionError{
		Host:     config.Host,
		Port:     config.Port,
		Database: config.Database,
		Err:      err,
	}
}
