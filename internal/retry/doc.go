// Package retry retries operations that fail with transient database errors.
//
// An Executor combines a Classifier, which decides whether an error is worth
// another attempt, with a Backoff, which decides how long to wait before it.
//
//	exec := retry.NewExecutor(retry.NewPostgreSQLClassifier(), retry.NewExponentialBackoff(3))
//	err := exec.Execute(ctx, func(ctx context.Context) error {
//	    return pool.Ping(ctx)
//	})
//
// Executors are immutable once built; WithOnRetry returns a copy.
package retry
