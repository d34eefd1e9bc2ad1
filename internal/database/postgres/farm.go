package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/repository"
)

// FarmRepository implements the farm repository for PostgreSQL
type FarmRepository struct {
	db *pgxpool.Pool
}

// NewFarmRepository creates a new FarmRepository
func NewFarmRepository(db *pgxpool.Pool) *FarmRepository {
	return &FarmRepository{db: db}
}

// GetFarm returns every plot ordered by plot number, joined with its crop and seed
func (r *FarmRepository) GetFarm(ctx context.Context, userID string) ([]domain.PlotWithCrop, error) {
	id, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `
		SELECT p.id::text, p.user_id::text, p.plot_number, p.position_x, p.position_y, p.is_unlocked, p.unlocked_at,
		       c.id::text, c.seed_code, c.planted_at, c.ready_at, c.status, c.withered_at,
		       s.name, s.description, s.icon, s.base_price, s.sell_price, s.growth_time, s.harvest_value, s.unlock_level
		FROM farm_plots p
		LEFT JOIN user_crops c ON c.plot_id = p.id
		LEFT JOIN seed_types s ON s.code = c.seed_code
		WHERE p.user_id = $1
		ORDER BY p.plot_number
	`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetFarm, err)
	}
	defer rows.Close()

	farm := []domain.PlotWithCrop{}
	for rows.Next() {
		row, err := scanFarmRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanFarmRow, err)
		}
		farm = append(farm, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetFarm, err)
	}
	return farm, nil
}

func scanFarmRow(rows pgx.Rows) (domain.PlotWithCrop, error) {
	var (
		out domain.PlotWithCrop

		cropID, seedCode, status  *string
		plantedAt, readyAt        *time.Time
		witheredAt                *time.Time
		seedName, seedDesc        *string
		seedIcon                  *string
		basePrice, sellPrice      *int
		harvestValue, unlockLevel *int
		growthTime                *float64
	)
	p := &out.Plot
	err := rows.Scan(
		&p.ID, &p.UserID, &p.PlotNumber, &p.PositionX, &p.PositionY, &p.IsUnlocked, &p.UnlockedAt,
		&cropID, &seedCode, &plantedAt, &readyAt, &status, &witheredAt,
		&seedName, &seedDesc, &seedIcon, &basePrice, &sellPrice, &growthTime, &harvestValue, &unlockLevel,
	)
	if err != nil {
		return out, err
	}
	if cropID == nil {
		return out, nil
	}

	out.Crop = &domain.Crop{
		ID:         *cropID,
		UserID:     p.UserID,
		PlotID:     p.ID,
		SeedCode:   *seedCode,
		PlantedAt:  *plantedAt,
		ReadyAt:    *readyAt,
		Status:     domain.CropStatus(*status),
		WitheredAt: witheredAt,
	}
	if seedName != nil {
		out.Seed = &domain.SeedType{
			Code:         *seedCode,
			Name:         *seedName,
			Description:  deref(seedDesc),
			Icon:         seedIcon,
			BasePrice:    deref(basePrice),
			SellPrice:    deref(sellPrice),
			GrowthTime:   deref(growthTime),
			HarvestValue: deref(harvestValue),
			UnlockLevel:  deref(unlockLevel),
		}
	}
	return out, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// MarkCropsReady promotes growing crops to ready
func (r *FarmRepository) MarkCropsReady(ctx context.Context, cropIDs []string) (int64, error) {
	ids := parseIDs(cropIDs)
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE user_crops SET status = $2
		WHERE id = ANY($1) AND status = $3
	`, ids, string(domain.CropStatusReady), string(domain.CropStatusGrowing))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToMarkReady, err)
	}
	return tag.RowsAffected(), nil
}

// BeginTx starts a new transaction
func (r *FarmRepository) BeginTx(ctx context.Context) (repository.FarmTx, error) {
	base, err := beginTx(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &FarmTx{txBase: base}, nil
}

// FarmTx implements repository.FarmTx
type FarmTx struct {
	*txBase
}

const selectPlotSQL = `
	SELECT id::text, user_id::text, plot_number, position_x, position_y, is_unlocked, unlocked_at
	FROM farm_plots`

func scanPlot(row pgx.Row) (*domain.FarmPlot, error) {
	var p domain.FarmPlot
	if err := row.Scan(&p.ID, &p.UserID, &p.PlotNumber, &p.PositionX, &p.PositionY, &p.IsUnlocked, &p.UnlockedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPlotForUpdate locks a plot owned by the user
func (t *FarmTx) GetPlotForUpdate(ctx context.Context, userID, plotID string) (*domain.FarmPlot, error) {
	uid, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	pid, err := parseID(plotID, domain.ErrPlotNotFound)
	if err != nil {
		return nil, err
	}
	plot, err := scanPlot(t.tx.QueryRow(ctx, selectPlotSQL+` WHERE id = $1 AND user_id = $2 FOR UPDATE`, pid, uid))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrPlotNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlot, err)
	}
	return plot, nil
}

const selectCropSQL = `
	SELECT id::text, user_id::text, plot_id::text, seed_code, planted_at, ready_at, status, withered_at
	FROM user_crops`

func scanCrop(row pgx.Row) (*domain.Crop, error) {
	var c domain.Crop
	var status string
	if err := row.Scan(&c.ID, &c.UserID, &c.PlotID, &c.SeedCode, &c.PlantedAt, &c.ReadyAt, &status, &c.WitheredAt); err != nil {
		return nil, err
	}
	c.Status = domain.CropStatus(status)
	return &c, nil
}

// GetCropByPlot returns the crop on a plot, or nil if the plot is empty
func (t *FarmTx) GetCropByPlot(ctx context.Context, plotID string) (*domain.Crop, error) {
	pid, err := parseID(plotID, domain.ErrPlotNotFound)
	if err != nil {
		return nil, err
	}
	crop, err := scanCrop(t.tx.QueryRow(ctx, selectCropSQL+` WHERE plot_id = $1 FOR UPDATE`, pid))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCrop, err)
	}
	return crop, nil
}

// GetCropForUpdate locks a crop owned by the user
func (t *FarmTx) GetCropForUpdate(ctx context.Context, userID, cropID string) (*domain.Crop, error) {
	uid, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	cid, err := parseID(cropID, domain.ErrCropNotFound)
	if err != nil {
		return nil, err
	}
	crop, err := scanCrop(t.tx.QueryRow(ctx, selectCropSQL+` WHERE id = $1 AND user_id = $2 FOR UPDATE`, cid, uid))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrCropNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCrop, err)
	}
	return crop, nil
}

// InsertCrop stores a new crop
func (t *FarmTx) InsertCrop(ctx context.Context, crop *domain.Crop) error {
	cid, err := parseID(crop.ID, domain.ErrInvalidInput)
	if err != nil {
		return err
	}
	uid, err := parseID(crop.UserID, domain.ErrUserNotFound)
	if err != nil {
		return err
	}
	pid, err := parseID(crop.PlotID, domain.ErrPlotNotFound)
	if err != nil {
		return err
	}
	_, err = t.tx.Exec(ctx, `
		INSERT INTO user_crops (id, user_id, plot_id, seed_code, planted_at, ready_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, cid, uid, pid, crop.SeedCode, crop.PlantedAt, crop.ReadyAt, string(crop.Status))
	if err != nil {
		if isConstraintViolation(err, ConstraintCropPlot) {
			return domain.ErrCropAlreadyPlanted
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertCrop, err)
	}
	return nil
}

// DeleteCrop removes a harvested crop
func (t *FarmTx) DeleteCrop(ctx context.Context, cropID string) error {
	cid, err := parseID(cropID, domain.ErrCropNotFound)
	if err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, `DELETE FROM user_crops WHERE id = $1`, cid)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteCrop, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCropNotFound
	}
	return nil
}

// UnlockPlot marks the plot unlocked and returns the updated row
func (t *FarmTx) UnlockPlot(ctx context.Context, plotID string, at time.Time) (*domain.FarmPlot, error) {
	pid, err := parseID(plotID, domain.ErrPlotNotFound)
	if err != nil {
		return nil, err
	}
	plot, err := scanPlot(t.tx.QueryRow(ctx, `
		UPDATE farm_plots SET is_unlocked = TRUE, unlocked_at = $2
		WHERE id = $1
		RETURNING id::text, user_id::text, plot_number, position_x, position_y, is_unlocked, unlocked_at
	`, pid, at))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrPlotNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnlockPlot, err)
	}
	return plot, nil
}
