package retry

import (
	"context"
	"time"
)

// Classifier determines whether an error is transient (retryable) or fatal.
type Classifier interface {
	IsTransient(err error) bool
}

// Backoff calculates the delay before the next retry attempt.
type Backoff interface {
	// NextDelay returns the wait before retry number attempt (zero-indexed).
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the retry budget: 0 disables retries, a negative value is unlimited.
	MaxAttempts() int
}

// RetryFunc is invoked before each retry with the error that triggered it.
type RetryFunc func(attempt int, err error, delay time.Duration)

// Executor runs an operation and retries it while it fails transiently.
type Executor struct {
	classifier Classifier
	backoff    Backoff
	onRetry    RetryFunc
}

// NewExecutor creates an executor. Panics if classifier or backoff is nil.
func NewExecutor(classifier Classifier, backoff Backoff) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if backoff == nil {
		panic("backoff cannot be nil")
	}
	return &Executor{classifier: classifier, backoff: backoff}
}

// WithOnRetry returns a copy of the executor that reports each retry to fn.
func (e *Executor) WithOnRetry(fn RetryFunc) *Executor {
	clone := *e
	clone.onRetry = fn
	return &clone
}

// Execute runs op until it succeeds, fails fatally, exhausts the retry
// budget or ctx is done. The last error is returned.
func (e *Executor) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	err := op(ctx)
	max := e.backoff.MaxAttempts()

	for attempt := 0; err != nil && e.classifier.IsTransient(err); attempt++ {
		if max >= 0 && attempt >= max {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.backoff.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = op(ctx)
	}

	return err
}
