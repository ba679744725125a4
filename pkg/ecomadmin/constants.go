package ecomadmin

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Operation completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags, unknown query)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration, parameters or input values
	ExitConnectionError   = 11 // Failed to connect to database
	ExitApprovalDenied    = 12 // User denied a destructive operation
	ExitPersistenceFailed = 13 // Database rejected a write
	ExitSourceNotFound    = 14 // Source file or directory missing
	ExitSchemaMismatch    = 15 // Source file lacks declared columns
	ExitTimeout           = 16 // Operation exceeded its deadline
)

const (
	// DefaultForceApprovalCountdown is the countdown duration before force approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// DefaultOperationTimeout bounds a whole CLI operation.
	DefaultOperationTimeout = 3 * time.Minute

	// DefaultBatchTimeout bounds a single entity batch insert.
	DefaultBatchTimeout = 1 * time.Minute

	// DefaultDataDir is where `load all` looks for source files when no directory is given.
	DefaultDataDir = "data"

	// ConfigFileName is the project-level configuration file.
	ConfigFileName = "ecomadmin.yaml"

	// MaxErrorPreviewLength caps how much of a rejected value is echoed in messages.
	MaxErrorPreviewLength = 200
)
