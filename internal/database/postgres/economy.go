package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PixelFarm_Go/internal/repository"
)

// EconomyRepository implements the economy repository for PostgreSQL
type EconomyRepository struct {
	db *pgxpool.Pool
}

// NewEconomyRepository creates a new EconomyRepository
func NewEconomyRepository(db *pgxpool.Pool) *EconomyRepository {
	return &EconomyRepository{db: db}
}

// EconomyTx implements repository.EconomyTx
type EconomyTx struct {
	*txBase
}

// BeginTx starts a new transaction
func (r *EconomyRepository) BeginTx(ctx context.Context) (repository.EconomyTx, error) {
	base, err := beginTx(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &EconomyTx{txBase: base}, nil
}
