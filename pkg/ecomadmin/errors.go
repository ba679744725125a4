package ecomadmin

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := loader.LoadEntity(ctx, conn, schema.Product, "data/product.csv")
//	if errors.Is(err, ecomadmin.ErrSchemaMismatch) {
//	    // Source file does not carry the declared columns
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrApprovalDenied indicates the user denied approval for the operation.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")

	// ErrValidation indicates an input value failed coercion or a domain rule.
	ErrValidation = errors.New("validation failed")

	// ErrSchemaMismatch indicates a source file does not provide the declared columns.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrPersistence indicates the database rejected a write.
	ErrPersistence = errors.New("persistence failed")

	// ErrTimeout indicates an operation exceeded its deadline.
	ErrTimeout = errors.New("operation timed out")

	// ErrUnknownQuery indicates a catalog entry name that is not registered.
	ErrUnknownQuery = errors.New("unknown query")

	// ErrUnknownEntity indicates an entity name that is not part of the schema.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrSourceNotFound indicates a source file or directory does not exist.
	ErrSourceNotFound = errors.New("source not found")
)

// ValidationError describes a single value that could not be accepted.
// Row is the 1-based data row index for bulk loads and zero for form input.
type ValidationError struct {
	Entity string
	Row    int
	Column string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	if e.Entity != "" {
		fmt.Fprintf(&b, " for %s", e.Entity)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, " row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " value %q", e.Value)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// SchemaMismatchError reports the declared columns missing from a source file header.
type SchemaMismatchError struct {
	Entity  string
	Source  string
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch for %s in %s: missing columns %s",
		e.Entity, e.Source, strings.Join(e.Missing, ", "))
}

func (e *SchemaMismatchError) Unwrap() error { return ErrSchemaMismatch }

// PersistenceError wraps a database rejection. The batch it belongs to has been
// rolled back by the time the error is returned.
type PersistenceError struct {
	Entity string
	Op     string
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Op, e.Entity, e.Err)
}

// Unwrap exposes both the sentinel and the driver error so callers can
// inspect *pgconn.PgError with errors.As.
func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

// TimeoutError reports that Op did not finish within Timeout.
type TimeoutError struct {
	Op      string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Op, e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return ErrTimeout }

// ConnectionError carries the target that could not be reached.
type ConnectionError struct {
	Host     string
	Port     int
	Database string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s:%d/%s: %v", e.Host, e.Port, e.Database, e.Err)
}

func (e *ConnectionError) Unwrap() []error { return []error{ErrConnectionFailed, e.Err} }

// cobra does not export typed usage errors, so they are recognized by message.
var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"requires at most",
	"required flag",
	"invalid argument",
	"flag needs an argument",
	"missing required argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrTimeout):
		return ExitTimeout
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrSchemaMismatch):
		return ExitSchemaMismatch
	case errors.Is(err, ErrPersistence):
		return ExitPersistenceFailed
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrUnsupportedAuthMethod), errors.Is(err, ErrValidation):
		return ExitConfigError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrSourceNotFound):
		return ExitSourceNotFound
	case errors.Is(err, ErrUnknownQuery), errors.Is(err, ErrUnknownEntity):
		return ExitUsageError
	}

	errStr := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
