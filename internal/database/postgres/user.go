package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/repository"
)

// UserRepository implements the user repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetUser returns the user row
func (r *UserRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return scanUser(r.db.QueryRow(ctx, selectUserSQL+` WHERE id = $1`, id))
}

// GetInventory returns every stack, most recently acquired first
func (r *UserRepository) GetInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	id, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, selectInventorySQL+`
		WHERE user_id = $1
		ORDER BY acquired_at DESC, item_code
	`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	return items, nil
}

// BeginTx starts a new transaction
func (r *UserRepository) BeginTx(ctx context.Context) (repository.UserTx, error) {
	base, err := beginTx(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &UserTx{txBase: base}, nil
}

// UserTx implements repository.UserTx
type UserTx struct {
	*txBase
}

// InsertUser inserts the user unless the id already exists
func (t *UserTx) InsertUser(ctx context.Context, user *domain.User) (bool, error) {
	id, err := parseID(user.ID, domain.ErrInvalidInput)
	if err != nil {
		return false, err
	}
	tag, err := t.tx.Exec(ctx, `
		INSERT INTO users (id, name, level, exp, coin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (id) DO NOTHING
	`, id, user.Name, user.Level, user.Exp, user.Coin, user.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertUser, err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateUserName sets the display name and returns the updated row
func (t *UserTx) UpdateUserName(ctx context.Context, userID, name string) (*domain.User, error) {
	id, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	user, err := scanUser(t.tx.QueryRow(ctx, `
		UPDATE users SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id::text, name, level, exp, coin, created_at, updated_at
	`, id, name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateUser, err)
	}
	return user, nil
}

// InsertPlots creates plot rows, skipping plot numbers the user already has
func (t *UserTx) InsertPlots(ctx context.Context, plots []domain.FarmPlot) error {
	if len(plots) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range plots {
		plotID, err := parseID(p.ID, domain.ErrInvalidInput)
		if err != nil {
			return err
		}
		userID, err := parseID(p.UserID, domain.ErrUserNotFound)
		if err != nil {
			return err
		}
		batch.Queue(`
			INSERT INTO farm_plots (id, user_id, plot_number, position_x, position_y, is_unlocked, unlocked_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (user_id, plot_number) DO NOTHING
		`, plotID, userID, p.PlotNumber, p.PositionX, p.PositionY, p.IsUnlocked, p.UnlockedAt)
	}
	if err := t.tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertPlots, err)
	}
	return nil
}
