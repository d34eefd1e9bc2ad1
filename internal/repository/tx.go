package repository

import (
	"context"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// WalletTx is the user-row portion shared by every economy transaction.
// Every mutating transaction starts with GetUserForUpdate so concurrent
// requests for the same user serialize on the row lock.
type WalletTx interface {
	Tx

	// GetUserForUpdate locks and returns the user row. Returns domain.ErrUserNotFound.
	GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error)

	// DebitCoins subtracts amount with a coin >= amount guard and returns the new
	// balance. Returns domain.ErrInsufficientFunds if the guard rejects the write.
	DebitCoins(ctx context.Context, userID string, amount int) (int, error)

	// CreditCoins adds amount and returns the new balance
	CreditCoins(ctx context.Context, userID string, amount int) (int, error)

	// SetProgress stores a new exp total and level
	SetProgress(ctx context.Context, userID string, exp, level int) error
}

// InventoryTx is the inventory portion of economy transactions
type InventoryTx interface {
	// GetInventoryItemForUpdate locks and returns one stack, or nil if the user has none
	GetInventoryItemForUpdate(ctx context.Context, userID string, itemType domain.ItemType, itemCode string) (*domain.InventoryItem, error)

	// AddInventory merges quantity into an existing stack or inserts a new one
	AddInventory(ctx context.Context, userID string, itemType domain.ItemType, itemCode string, quantity int) error

	// SetInventoryQuantity updates a stack; a quantity of zero deletes the row
	SetInventoryQuantity(ctx context.Context, itemID string, quantity int) error
}
