package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

const clearWarning = `
  !!! DANGER !!!
  Every table of database '${dbname}' will be TRUNCATED.
  All customers, products, vendors, orders and payments will be lost.
`

// ForcedApprover implements the Approver interface for forced (non-interactive)
// approval. It displays a countdown and automatically approves after the countdown,
// used when the --force flag is provided.
type ForcedApprover struct {
	verbose bool
	output  io.Writer
	sleepFn func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover writing to stderr.
func NewForcedApprover(verbose bool) ecomadmin.Approver {
	return &ForcedApprover{verbose: verbose, output: os.Stderr, sleepFn: time.Sleep}
}

// RequestApproval displays a countdown and automatically approves after the countdown.
func (a *ForcedApprover) RequestApproval(ctx context.Context, dbName string) (bool, error) {
	fmt.Fprintln(a.output)
	fmt.Fprint(a.output, strings.ReplaceAll(clearWarning, "${dbname}", dbName))
	fmt.Fprintln(a.output)

	countdownSeconds := int(ecomadmin.DefaultForceApprovalCountdown.Seconds())
	for i := countdownSeconds; i > 0; i-- {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(a.output)
			return false, err
		}
		fmt.Fprintf(a.output, "\rClearing in: %d seconds... (Press Ctrl+C to cancel)", i)
		a.sleepFn(time.Second)
	}
	if err := ctx.Err(); err != nil {
		fmt.Fprintln(a.output)
		return false, err
	}

	fmt.Fprintf(a.output, "\r✓ Proceeding with clear of '%s'...                              \n", dbName)
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ ecomadmin.Approver = (*ForcedApprover)(nil)
