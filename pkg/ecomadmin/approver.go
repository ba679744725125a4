package ecomadmin

import "context"

// Approver handles user interaction for approval workflows,
// particularly for destructive operations like clearing every table.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the database name for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before a destructive operation on target.
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, target string) (bool, error)
}
