package services

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

type mockConnector struct {
	pool   *pgxpool.Pool
	err    error
	closed bool
}

func (m *mockConnector) Connect(_ context.Context) (*pgxpool.Pool, error) {
	return m.pool, m.err
}

type closingConnector struct {
	mockConnector
}

func (c *closingConnector) Close() error {
	c.closed = true
	return nil
}

type mockApprover struct {
	approved bool
	err      error
	targets  []string
}

func (m *mockApprover) RequestApproval(_ context.Context, target string) (bool, error) {
	m.targets = append(m.targets, target)
	return m.approved, m.err
}

// mockOpener never hands out a real session: it either fails or blocks
// until the operation context ends.
type mockOpener struct {
	mu     sync.Mutex
	err    error
	block  bool
	opened int
}

func (m *mockOpener) Open(ctx context.Context, _ *ecomadmin.ConnectionConfig) (*ecomadmin.Session, error) {
	m.mu.Lock()
	m.opened++
	m.mu.Unlock()
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.err != nil {
		return nil, m.err
	}
	return nil, errors.New("mockOpener has no session to return")
}

func (m *mockOpener) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened
}

type mockLogger struct{}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(_ string, _ ...interface{})    {}
func (m *mockLogger) Error(_ string, _ ...interface{})   {}
