package repository

import (
	"context"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// User defines the interface for user persistence
type User interface {
	// GetUser returns the user row. Returns domain.ErrUserNotFound.
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// GetInventory returns every stack, most recently acquired first
	GetInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error)

	BeginTx(ctx context.Context) (UserTx, error)
}

// UserTx defines the interface for account creation transactions
type UserTx interface {
	Tx

	// InsertUser inserts the user unless the id already exists.
	// Reports whether a row was created.
	InsertUser(ctx context.Context, user *domain.User) (bool, error)

	// GetUserForUpdate locks and returns the user row. Returns domain.ErrUserNotFound.
	GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error)

	// UpdateUserName sets the display name and returns the updated row
	UpdateUserName(ctx context.Context, userID, name string) (*domain.User, error)

	// InsertPlots creates plot rows, skipping plot numbers the user already has
	InsertPlots(ctx context.Context, plots []domain.FarmPlot) error
}
