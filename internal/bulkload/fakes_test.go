package bulkload

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeConn records statements. Exec fails for any statement that starts with a
// key of execErrs. Each Begin hands out a fresh fakeTx configured by newTx.
type fakeConn struct {
	mu       sync.Mutex
	execs    []string
	execErrs map[string]error
	onExec   func(sql string)
	beginErr error
	newTx    func() *fakeTx
	txs      []*fakeTx
}

func (c *fakeConn) Exec(ctx context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	c.mu.Lock()
	c.execs = append(c.execs, sql)
	hook := c.onExec
	c.mu.Unlock()

	if hook != nil {
		hook(sql)
	}
	if err := ctx.Err(); err != nil {
		return pgconn.CommandTag{}, err
	}
	for prefix, err := range c.execErrs {
		if strings.HasPrefix(sql, prefix) {
			return pgconn.CommandTag{}, err
		}
	}
	return pgconn.NewCommandTag("OK"), nil
}

func (c *fakeConn) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("fakeConn: Query not supported")
}

func (c *fakeConn) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return errRow{errors.New("fakeConn: QueryRow not supported")}
}

func (c *fakeConn) Begin(_ context.Context) (pgx.Tx, error) {
	if c.beginErr != nil {
		return nil, c.beginErr
	}
	tx := &fakeTx{failAt: -1}
	if c.newTx != nil {
		tx = c.newTx()
	}
	c.mu.Lock()
	c.txs = append(c.txs, tx)
	c.mu.Unlock()
	return tx, nil
}

func (c *fakeConn) executed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.execs...)
}

type errRow struct{ err error }

func (r errRow) Scan(_ ...any) error { return r.err }

// fakeTx implements the parts of pgx.Tx the loader uses; anything else panics
// through the nil embedded interface.
type fakeTx struct {
	pgx.Tx

	queued     []*pgx.QueuedQuery
	execs      []string
	execArgs   [][]any
	failAt     int
	failErr    error
	block      bool
	committed  bool
	rolledBack bool
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	t.queued = append(t.queued, b.QueuedQueries...)
	return &fakeBatchResults{ctx: ctx, tx: t, total: b.Len()}
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if err := ctx.Err(); err != nil {
		return pgconn.CommandTag{}, err
	}
	t.execs = append(t.execs, sql)
	t.execArgs = append(t.execArgs, args)
	return pgconn.NewCommandTag("SELECT 1"), nil
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.committed || t.rolledBack {
		return pgx.ErrTxClosed
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if t.committed || t.rolledBack {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

type fakeBatchResults struct {
	pgx.BatchResults

	ctx   context.Context
	tx    *fakeTx
	total int
	pos   int
}

func (r *fakeBatchResults) Exec() (pgconn.CommandTag, error) {
	i := r.pos
	r.pos++
	if r.tx.block {
		<-r.ctx.Done()
		return pgconn.CommandTag{}, r.ctx.Err()
	}
	if i == r.tx.failAt {
		return pgconn.CommandTag{}, r.tx.failErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (r *fakeBatchResults) Close() error { return nil }
