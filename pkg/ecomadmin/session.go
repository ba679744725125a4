package ecomadmin

import (
	"context"
	"errors"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBConn is the subset of a pgx connection used by the loader and the query catalog.
// *pgxpool.Conn, *pgxpool.Pool and pgx.Tx all satisfy it.
type DBConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

var (
	_ DBConn = (*pgxpool.Conn)(nil)
	_ DBConn = (*pgxpool.Pool)(nil)
	_ DBConn = (pgx.Tx)(nil)
)

// SessionOpener abstracts session creation for testability.
type SessionOpener interface {
	Open(ctx context.Context, connConfig *ConnectionConfig) (*Session, error)
}

// Session encapsulates one database session: a pool and the single
// connection acquired from it for the duration of an operation.
//
// Thread-Safety: NOT safe for concurrent use.
//
// Example usage:
//
//	session, err := sessionManager.Open(ctx, config)
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
type Session struct {
	pool    *pgxpool.Pool
	conn    *pgxpool.Conn
	closers []io.Closer
}

// NewSession creates a new Session instance.
// Panics if pool or conn is nil.
func NewSession(pool *pgxpool.Pool, conn *pgxpool.Conn) *Session {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if conn == nil {
		panic("conn cannot be nil")
	}
	return &Session{pool: pool, conn: conn}
}

// Pool returns the connection pool for the session.
func (s *Session) Pool() *pgxpool.Pool {
	return s.pool
}

// Conn returns the acquired connection. Every statement of the operation runs on it.
func (s *Session) Conn() *pgxpool.Conn {
	return s.conn
}

// AttachCloser registers a resource to close after the pool, such as a
// Cloud SQL dialer owned by the connector.
func (s *Session) AttachCloser(c io.Closer) {
	s.closers = append(s.closers, c)
}

// Close releases the connection, closes the pool, then closes attached resources.
// This method is idempotent and safe to call multiple times.
func (s *Session) Close() error {
	if s.conn != nil {
		s.conn.Release()
		s.conn = nil
	}
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	s.closers = nil
	return errors.Join(errs...)
}
