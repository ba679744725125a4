package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyOp struct {
	calls     int
	failUntil int
	err       error
}

func (f *flakyOp) run(context.Context) error {
	f.calls++
	if f.calls < f.failUntil {
		return f.err
	}
	return nil
}

var connFailure = &pgconn.PgError{Code: "08006", Message: "connection failure"}

func fastBackoff(attempts int) *ExponentialBackoff {
	return NewExponentialBackoff(attempts, WithInitialDelay(time.Millisecond), WithJitter(0))
}

func TestExecutor_SucceedsFirstTry(t *testing.T) {
	op := &flakyOp{failUntil: 1, err: connFailure}
	err := NewExecutor(NewPostgreSQLClassifier(), fastBackoff(3)).Execute(context.Background(), op.run)

	require.NoError(t, err)
	assert.Equal(t, 1, op.calls)
}

func TestExecutor_RetriesTransient(t *testing.T) {
	op := &flakyOp{failUntil: 4, err: connFailure}
	var retries []int
	exec := NewExecutor(NewPostgreSQLClassifier(), fastBackoff(5)).
		WithOnRetry(func(attempt int, _ error, _ time.Duration) { retries = append(retries, attempt) })

	require.NoError(t, exec.Execute(context.Background(), op.run))
	assert.Equal(t, 4, op.calls)
	assert.Equal(t, []int{0, 1, 2}, retries)
}

func TestExecutor_FatalStopsImmediately(t *testing.T) {
	fatal := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	op := &flakyOp{failUntil: 10, err: fatal}

	err := NewExecutor(NewPostgreSQLClassifier(), fastBackoff(5)).Execute(context.Background(), op.run)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23505", pgErr.Code)
	assert.Equal(t, 1, op.calls)
}

func TestExecutor_ExhaustsBudget(t *testing.T) {
	op := &flakyOp{failUntil: 100, err: connFailure}

	err := NewExecutor(NewPostgreSQLClassifier(), fastBackoff(2)).Execute(context.Background(), op.run)

	assert.ErrorIs(t, err, connFailure)
	assert.Equal(t, 3, op.calls)
}

func TestExecutor_ZeroAttemptsMeansNoRetry(t *testing.T) {
	op := &flakyOp{failUntil: 100, err: connFailure}

	err := NewExecutor(NewPostgreSQLClassifier(), fastBackoff(0)).Execute(context.Background(), op.run)

	assert.Error(t, err)
	assert.Equal(t, 1, op.calls)
}

func TestExecutor_ContextCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	op := &flakyOp{failUntil: 100, err: connFailure}
	backoff := NewExponentialBackoff(5, WithInitialDelay(time.Hour), WithJitter(0))
	exec := NewExecutor(NewPostgreSQLClassifier(), backoff).
		WithOnRetry(func(int, error, time.Duration) { cancel() })

	err := exec.Execute(ctx, op.run)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, op.calls)
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, fastBackoff(1)) })
	assert.Panics(t, func() { NewExecutor(NewPostgreSQLClassifier(), nil) })
}
