package farm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/economy"
	"github.com/osse101/PixelFarm_Go/internal/growth"
	"github.com/osse101/PixelFarm_Go/internal/logger"
	"github.com/osse101/PixelFarm_Go/internal/metrics"
	"github.com/osse101/PixelFarm_Go/internal/repository"
)

// Service defines planting, harvesting and plot operations
type Service interface {
	PlantSeed(ctx context.Context, userID, plotID, seedCode string) (*domain.PlantResult, error)
	HarvestCrop(ctx context.Context, userID, cropID string) (*domain.HarvestResult, error)
	UnlockPlot(ctx context.Context, userID, plotID string) (*domain.UnlockResult, error)

	// GetFarmState returns plots with crop progress and farm stats
	GetFarmState(ctx context.Context, userID string) (*domain.FarmState, error)

	// Snapshot returns the farm portion of the game state
	Snapshot(ctx context.Context, userID string) (domain.FarmSnapshot, error)
}

// Catalog resolves seed definitions
type Catalog interface {
	GetSeed(ctx context.Context, code string) (*domain.SeedType, error)
}

type service struct {
	repo    repository.Farm
	catalog Catalog
	now     func() time.Time
}

// NewService creates a new farm service
func NewService(repo repository.Farm, catalog Catalog) Service {
	return &service{
		repo:    repo,
		catalog: catalog,
		now:     time.Now,
	}
}

func (s *service) PlantSeed(ctx context.Context, userID, plotID, seedCode string) (*domain.PlantResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPlantSeedCalled, "userID", userID, "plotID", plotID, "seedCode", seedCode)

	if userID == "" || plotID == "" || seedCode == "" {
		return nil, fmt.Errorf("%w: userId, plotId, and seedCode are required", domain.ErrInvalidInput)
	}

	seed, err := s.catalog.GetSeed(ctx, seedCode)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	plot, err := tx.GetPlotForUpdate(ctx, userID, plotID)
	if err != nil {
		return nil, err
	}
	if !plot.IsUnlocked {
		return nil, domain.ErrPlotLocked
	}

	existing, err := tx.GetCropByPlot(ctx, plotID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCropFailed, err)
	}
	if existing != nil {
		return nil, domain.ErrCropAlreadyPlanted
	}

	if !economy.CanAfford(user.Coin, seed.BasePrice) {
		return nil, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientFunds, seed.BasePrice, user.Coin)
	}

	coin, err := tx.DebitCoins(ctx, userID, seed.BasePrice)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDebitFailed, err)
	}

	now := s.now().UTC()
	crop := &domain.Crop{
		ID:        uuid.NewString(),
		UserID:    userID,
		PlotID:    plotID,
		SeedCode:  seedCode,
		PlantedAt: now,
		ReadyAt:   growth.ReadyAt(now, seed.GrowthTime),
		Status:    domain.CropStatusGrowing,
	}
	if err := tx.InsertCrop(ctx, crop); err != nil {
		if errors.Is(err, domain.ErrCropAlreadyPlanted) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgInsertCrop, err)
	}

	if err := consumeSeed(ctx, tx, userID, seedCode); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	metrics.CropsPlanted.WithLabelValues(seedCode).Inc()
	metrics.CoinsSpent.WithLabelValues(metrics.CoinFlowPlant).Add(float64(seed.BasePrice))
	log.Info(LogMsgSeedPlanted, "userID", userID, "plotID", plotID, "seedCode", seedCode, "readyAt", crop.ReadyAt)

	return &domain.PlantResult{
		Success: true,
		Crop: domain.PlantedCrop{
			ID:        crop.ID,
			PlotID:    crop.PlotID,
			SeedCode:  crop.SeedCode,
			PlantedAt: crop.PlantedAt,
			ReadyAt:   crop.ReadyAt,
			Status:    crop.Status,
		},
		User: domain.CoinBalance{Coin: coin},
	}, nil
}

// consumeSeed takes one matching seed from inventory if the player holds any.
// Planting without stock is allowed; the seed price is always charged.
func consumeSeed(ctx context.Context, tx repository.InventoryTx, userID, seedCode string) error {
	stack, err := tx.GetInventoryItemForUpdate(ctx, userID, domain.ItemTypeSeed, seedCode)
	if err != nil {
		return fmt.Errorf(ErrMsgSeedStockFailed, err)
	}
	if stack == nil || stack.Quantity <= 0 {
		return nil
	}
	if err := tx.SetInventoryQuantity(ctx, stack.ID, stack.Quantity-1); err != nil {
		return fmt.Errorf(ErrMsgSeedStockFailed, err)
	}
	return nil
}

func (s *service) HarvestCrop(ctx context.Context, userID, cropID string) (*domain.HarvestResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgHarvestCropCalled, "userID", userID, "cropID", cropID)

	if userID == "" || cropID == "" {
		return nil, fmt.Errorf("%w: userId and cropId are required", domain.ErrInvalidInput)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	crop, err := tx.GetCropForUpdate(ctx, userID, cropID)
	if err != nil {
		return nil, err
	}

	// Readiness comes from the clock; the stored status may lag behind.
	if !growth.IsHarvestable(crop, s.now()) {
		return nil, domain.ErrNotReady
	}

	seed, err := s.catalog.GetSeed(ctx, crop.SeedCode)
	if err != nil {
		return nil, err
	}

	value := seed.HarvestValue
	expGain := economy.HarvestExp(value)
	progress := economy.ApplyExp(user.Level, user.Exp, expGain)

	coin, err := tx.CreditCoins(ctx, userID, value)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreditFailed, err)
	}
	if err := tx.SetProgress(ctx, userID, progress.Exp, progress.Level); err != nil {
		return nil, fmt.Errorf(ErrMsgProgressFailed, err)
	}
	if err := tx.DeleteCrop(ctx, cropID); err != nil {
		return nil, fmt.Errorf(ErrMsgDeleteCrop, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	metrics.CropsHarvested.WithLabelValues(crop.SeedCode).Inc()
	metrics.CoinsEarned.WithLabelValues(metrics.CoinFlowHarvest).Add(float64(value))
	if progress.LeveledUp {
		metrics.LevelUps.Add(float64(progress.Level - user.Level))
	}
	log.Info(LogMsgCropHarvested, "userID", userID, "cropID", cropID, "value", value, "exp", expGain, "level", progress.Level)

	return &domain.HarvestResult{
		Success: true,
		Harvested: domain.HarvestedCrop{
			SeedCode:     crop.SeedCode,
			SeedName:     seed.Name,
			HarvestValue: value,
			Exp:          expGain,
		},
		User: domain.HarvestUser{
			Coin:      coin,
			Exp:       progress.Exp,
			Level:     progress.Level,
			LeveledUp: progress.LeveledUp,
		},
	}, nil
}

func (s *service) UnlockPlot(ctx context.Context, userID, plotID string) (*domain.UnlockResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgUnlockPlotCalled, "userID", userID, "plotID", plotID)

	if userID == "" || plotID == "" {
		return nil, fmt.Errorf("%w: userId and plotId are required", domain.ErrInvalidInput)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	plot, err := tx.GetPlotForUpdate(ctx, userID, plotID)
	if err != nil {
		return nil, err
	}
	if plot.IsUnlocked {
		return nil, domain.ErrPlotAlreadyUnlocked
	}

	price := economy.UnlockPriceForPlot(plot.PlotNumber)
	if !economy.CanAfford(user.Coin, price) {
		return nil, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientFunds, price, user.Coin)
	}

	coin := user.Coin
	if price > 0 {
		if coin, err = tx.DebitCoins(ctx, userID, price); err != nil {
			return nil, fmt.Errorf(ErrMsgDebitFailed, err)
		}
	}

	unlocked, err := tx.UnlockPlot(ctx, plotID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf(ErrMsgUnlockFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	metrics.PlotsUnlocked.Inc()
	metrics.CoinsSpent.WithLabelValues(metrics.CoinFlowUnlock).Add(float64(price))
	log.Info(LogMsgPlotUnlocked, "userID", userID, "plotNumber", unlocked.PlotNumber, "price", price)

	return &domain.UnlockResult{
		Success: true,
		Plot: domain.UnlockedPlot{
			ID:         unlocked.ID,
			PlotNumber: unlocked.PlotNumber,
			IsUnlocked: unlocked.IsUnlocked,
			UnlockedAt: unlocked.UnlockedAt,
		},
		User:        domain.CoinBalance{Coin: coin},
		UnlockPrice: price,
	}, nil
}

func (s *service) GetFarmState(ctx context.Context, userID string) (*domain.FarmState, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrInvalidInput)
	}

	rows, now, err := s.loadFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	state := &domain.FarmState{Plots: make([]domain.PlotView, 0, len(rows))}
	for _, row := range rows {
		view := domain.PlotView{
			ID:         row.Plot.ID,
			PlotNumber: row.Plot.PlotNumber,
			PositionX:  row.Plot.PositionX,
			PositionY:  row.Plot.PositionY,
			IsUnlocked: row.Plot.IsUnlocked,
			UnlockedAt: row.Plot.UnlockedAt,
		}
		state.Stats.TotalPlots++
		if row.Plot.IsUnlocked {
			state.Stats.UnlockedPlots++
		}

		if row.Crop != nil {
			view.Crop = cropView(row.Crop, row.Seed, now)
			state.Stats.ActiveCrops++
			if view.Crop.Status == domain.CropStatusReady {
				state.Stats.ReadyCrops++
			}
		}
		state.Plots = append(state.Plots, view)
	}

	return state, nil
}

func cropView(crop *domain.Crop, seed *domain.SeedType, now time.Time) *domain.CropView {
	p := growth.StageOf(crop.PlantedAt, crop.ReadyAt, now)
	view := &domain.CropView{
		ID:            crop.ID,
		SeedCode:      crop.SeedCode,
		PlantedAt:     crop.PlantedAt,
		ReadyAt:       crop.ReadyAt,
		Status:        crop.Status,
		Stage:         p.Stage,
		Progress:      p.ProgressPct,
		RemainingTime: p.RemainingSeconds,
	}
	if seed != nil {
		view.SeedName = seed.Name
		view.SeedIcon = seed.Icon
	}
	return view
}

func (s *service) Snapshot(ctx context.Context, userID string) (domain.FarmSnapshot, error) {
	rows, _, err := s.loadFarm(ctx, userID)
	if err != nil {
		return domain.FarmSnapshot{}, err
	}

	snap := domain.FarmSnapshot{Plots: make([]domain.PlotSnapshot, 0, len(rows))}
	for _, row := range rows {
		plot := domain.PlotSnapshot{FarmPlot: row.Plot}
		if row.Crop != nil {
			plot.Crop = &domain.CropSnapshot{
				ID:        row.Crop.ID,
				SeedCode:  row.Crop.SeedCode,
				PlantedAt: row.Crop.PlantedAt,
				ReadyAt:   row.Crop.ReadyAt,
				Status:    row.Crop.Status,
			}
			if row.Seed != nil {
				plot.Crop.SeedType = &domain.SeedSummary{
					Name:       row.Seed.Name,
					Icon:       row.Seed.Icon,
					GrowthTime: row.Seed.GrowthTime,
				}
			}
		}
		snap.Plots = append(snap.Plots, plot)
	}
	return snap, nil
}

// loadFarm reads the farm and promotes crops whose ready time has passed.
// Returned crops carry the promoted status even if the write fails; the
// next read retries it.
func (s *service) loadFarm(ctx context.Context, userID string) ([]domain.PlotWithCrop, time.Time, error) {
	rows, err := s.repo.GetFarm(ctx, userID)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf(ErrMsgGetFarmFailed, err)
	}

	now := s.now()
	var due []string
	for i := range rows {
		crop := rows[i].Crop
		if crop == nil {
			continue
		}
		if growth.NeedsPromotion(crop, now) {
			due = append(due, crop.ID)
		}
		crop.Status = growth.DeriveStatus(crop, now)
	}

	if len(due) > 0 {
		log := logger.FromContext(ctx)
		n, err := s.repo.MarkCropsReady(ctx, due)
		if err != nil {
			log.Warn(LogMsgPromotionFailed, "userID", userID, "count", len(due), "error", err)
		} else {
			metrics.CropsPromoted.Add(float64(n))
			log.Debug(LogMsgCropsPromoted, "userID", userID, "count", n)
		}
	}

	return rows, now, nil
}
