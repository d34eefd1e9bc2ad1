package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// parseID parses an id, mapping malformed input to the given not-found error
// so a garbage id behaves like an unknown one.
func parseID(id string, notFound error) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", notFound, id)
	}
	return u, nil
}

// parseIDs parses a batch of ids, silently dropping malformed entries
func parseIDs(ids []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if u, err := uuid.Parse(id); err == nil {
			out = append(out, u)
		}
	}
	return out
}

// isConstraintViolation reports whether err is a unique violation on the named constraint
func isConstraintViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == PgErrorCodeUniqueViolation && pgErr.ConstraintName == constraint
}

// isNoRows reports whether a QueryRow found nothing
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// beginTx starts a transaction on the pool wrapped in the shared txBase
func beginTx(ctx context.Context, db *pgxpool.Pool) (*txBase, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &txBase{tx: tx}, nil
}

// txBase carries the transaction and the wallet and inventory operations
// every game transaction shares.
type txBase struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *txBase) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// Rollback rolls back the transaction. Rolling back a committed transaction is a no-op.
func (t *txBase) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// GetUserForUpdate locks the user row for the rest of the transaction
func (t *txBase) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return scanUser(t.tx.QueryRow(ctx, selectUserSQL+` WHERE id = $1 FOR UPDATE`, id))
}

// DebitCoins subtracts amount if the balance covers it
func (t *txBase) DebitCoins(ctx context.Context, userID string, amount int) (int, error) {
	id, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return 0, err
	}
	var coin int
	err = t.tx.QueryRow(ctx, `
		UPDATE users SET coin = coin - $2, updated_at = NOW()
		WHERE id = $1 AND coin >= $2
		RETURNING coin
	`, id, amount).Scan(&coin)
	if err != nil {
		if isNoRows(err) {
			return 0, domain.ErrInsufficientFunds
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDebitCoins, err)
	}
	return coin, nil
}

// CreditCoins adds amount to the balance
func (t *txBase) CreditCoins(ctx context.Context, userID string, amount int) (int, error) {
	id, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return 0, err
	}
	var coin int
	err = t.tx.QueryRow(ctx, `
		UPDATE users SET coin = coin + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING coin
	`, id, amount).Scan(&coin)
	if err != nil {
		if isNoRows(err) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCreditCoins, err)
	}
	return coin, nil
}

// SetProgress stores exp and level
func (t *txBase) SetProgress(ctx context.Context, userID string, exp, level int) error {
	id, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, `
		UPDATE users SET exp = $2, level = $3, updated_at = NOW() WHERE id = $1
	`, id, exp, level)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateProgress, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// GetInventoryItemForUpdate locks one inventory stack, or returns nil if absent
func (t *txBase) GetInventoryItemForUpdate(ctx context.Context, userID string, itemType domain.ItemType, itemCode string) (*domain.InventoryItem, error) {
	id, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	item, err := scanInventoryItem(t.tx.QueryRow(ctx, selectInventorySQL+`
		WHERE user_id = $1 AND item_type = $2 AND item_code = $3
		FOR UPDATE
	`, id, string(itemType), itemCode))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	return item, nil
}

// AddInventory merges quantity into the user's stack
func (t *txBase) AddInventory(ctx context.Context, userID string, itemType domain.ItemType, itemCode string, quantity int) error {
	id, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return err
	}
	_, err = t.tx.Exec(ctx, `
		INSERT INTO user_inventory (user_id, item_type, item_code, quantity, acquired_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, item_type, item_code)
		DO UPDATE SET quantity = user_inventory.quantity + EXCLUDED.quantity, acquired_at = NOW()
	`, id, string(itemType), itemCode, quantity)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAddInventory, err)
	}
	return nil
}

// SetInventoryQuantity updates a stack, deleting it at zero
func (t *txBase) SetInventoryQuantity(ctx context.Context, itemID string, quantity int) error {
	id, err := parseID(itemID, domain.ErrInventoryItemNotFound)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		_, err = t.tx.Exec(ctx, `DELETE FROM user_inventory WHERE id = $1`, id)
	} else {
		_, err = t.tx.Exec(ctx, `UPDATE user_inventory SET quantity = $2 WHERE id = $1`, id, quantity)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateInventory, err)
	}
	return nil
}

const selectUserSQL = `
	SELECT id::text, name, level, exp, coin, created_at, updated_at
	FROM users`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Level, &u.Exp, &u.Coin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}
	return &u, nil
}

const selectInventorySQL = `
	SELECT id::text, user_id::text, item_type, item_code, quantity, acquired_at
	FROM user_inventory`

func scanInventoryItem(row pgx.Row) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	var itemType string
	if err := row.Scan(&item.ID, &item.UserID, &itemType, &item.ItemCode, &item.Quantity, &item.AcquiredAt); err != nil {
		return nil, err
	}
	item.ItemType = domain.ItemType(itemType)
	return &item, nil
}

var (
	_ repository.User             = (*UserRepository)(nil)
	_ repository.Farm             = (*FarmRepository)(nil)
	_ repository.Economy          = (*EconomyRepository)(nil)
	_ repository.Building         = (*BuildingRepository)(nil)
	_ repository.Catalog          = (*CatalogRepository)(nil)
	_ repository.ProcessedActions = (*ProcessedActionsRepository)(nil)
)
