package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/repository"
)

// ProcessedActionsRepository records which client actions were consumed
type ProcessedActionsRepository struct {
	db *pgxpool.Pool
}

// NewProcessedActionsRepository creates a new ProcessedActionsRepository
func NewProcessedActionsRepository(db *pgxpool.Pool) *ProcessedActionsRepository {
	return &ProcessedActionsRepository{db: db}
}

// ClaimAction records the action as pending; false means it was seen before
func (r *ProcessedActionsRepository) ClaimAction(ctx context.Context, userID, actionID string) (bool, error) {
	uid, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return false, err
	}
	tag, err := r.db.Exec(ctx, `
		INSERT INTO processed_actions (user_id, action_id, outcome, processed_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, action_id) DO NOTHING
	`, uid, actionID, string(repository.ActionPending))
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToClaimAction, err)
	}
	return tag.RowsAffected() == 1, nil
}

// CompleteAction stores the final outcome of a claimed action
func (r *ProcessedActionsRepository) CompleteAction(ctx context.Context, userID, actionID string, outcome repository.ActionOutcome, reason string) error {
	uid, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		UPDATE processed_actions SET outcome = $3, reason = $4, processed_at = NOW()
		WHERE user_id = $1 AND action_id = $2
	`, uid, actionID, string(outcome), reason)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCompleteAction, err)
	}
	return nil
}

// ReleaseAction forgets a claim so the action can be retried
func (r *ProcessedActionsRepository) ReleaseAction(ctx context.Context, userID, actionID string) error {
	uid, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		DELETE FROM processed_actions WHERE user_id = $1 AND action_id = $2
	`, uid, actionID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToReleaseAction, err)
	}
	return nil
}
