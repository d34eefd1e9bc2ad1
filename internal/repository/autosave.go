package repository

import "context"

// ActionOutcome records what happened to a claimed action
type ActionOutcome string

const (
	ActionPending  ActionOutcome = "pending"
	ActionApplied  ActionOutcome = "applied"
	ActionRejected ActionOutcome = "rejected"
)

// ProcessedActions tracks which queued client actions the server has
// already consumed, so a retried batch never applies an action twice.
type ProcessedActions interface {
	// ClaimAction records the action as pending. Reports false if the action
	// id was already claimed for this user.
	ClaimAction(ctx context.Context, userID, actionID string) (bool, error)

	// CompleteAction stores the final outcome of a claimed action
	CompleteAction(ctx context.Context, userID, actionID string, outcome ActionOutcome, reason string) error

	// ReleaseAction forgets a claim so the action can be retried
	ReleaseAction(ctx context.Context, userID, actionID string) error
}
