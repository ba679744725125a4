package services

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// ConnectorFactory builds a Connector for a resolved connection configuration.
// db.NewConnector is the production implementation.
type ConnectorFactory func(*ecomadmin.ConnectionConfig, ecomadmin.Logger) (ecomadmin.Connector, error)

// SessionManager opens one database session per operation.
//
// SessionManager is safe for concurrent use as long as the injected
// connectorFactory and logger are.
type SessionManager struct {
	connectorFactory ConnectorFactory
	logger           ecomadmin.Logger
}

var _ ecomadmin.SessionOpener = (*SessionManager)(nil)

// NewSessionManager creates a SessionManager.
//
// Panics if any dependency is nil. A missing dependency is a wiring mistake
// and should fail at startup rather than deep inside an operation.
func NewSessionManager(connectorFactory ConnectorFactory, logger ecomadmin.Logger) *SessionManager {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &SessionManager{
		connectorFactory: connectorFactory,
		logger:           logger,
	}
}

// Open connects to the configured database and acquires the single
// connection every statement of the operation runs on.
//
// The caller is responsible for closing the session: defer session.Close().
func (sm *SessionManager) Open(ctx context.Context, connConfig *ecomadmin.ConnectionConfig) (*ecomadmin.Session, error) {
	connector, pool, err := sm.connectToDatabase(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		pool.Close()
		closeConnector(connector)
		return nil, fmt.Errorf("failed to acquire connection: %w", &ecomadmin.ConnectionError{
			Host:     connConfig.Host,
			Port:     connConfig.Port,
			Database: connConfig.Database,
			Err:      err,
		})
	}

	session := ecomadmin.NewSession(pool, conn)
	if closer, ok := connector.(io.Closer); ok {
		session.AttachCloser(closer)
	}
	return session, nil
}

func (sm *SessionManager) connectToDatabase(
	ctx context.Context,
	connConfig *ecomadmin.ConnectionConfig,
) (ecomadmin.Connector, *pgxpool.Pool, error) {
	sm.logger.Verbose("Connecting to database '%s'", connConfig.Database)

	connector, err := sm.connectorFactory(connConfig, sm.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		closeConnector(connector)
		return nil, nil, fmt.Errorf("failed to connect to database %q: %w", connConfig.Database, err)
	}
	return connector, pool, nil
}

func closeConnector(connector ecomadmin.Connector) {
	if closer, ok := connector.(io.Closer); ok {
		closer.Close() //nolint:errcheck
	}
}
