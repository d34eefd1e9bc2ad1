package building

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/economy"
	"github.com/osse101/PixelFarm_Go/internal/logger"
	"github.com/osse101/PixelFarm_Go/internal/metrics"
	"github.com/osse101/PixelFarm_Go/internal/repository"
)

// Service defines building purchase, upgrade and listing
type Service interface {
	PurchaseBuilding(ctx context.Context, userID, buildingCode string) (*domain.BuildingPurchaseResult, error)
	UpgradeBuilding(ctx context.Context, userID, buildingCode string) (*domain.BuildingUpgradeResult, error)
	ListUserBuildings(ctx context.Context, userID string) ([]domain.UserBuildingDetail, error)
	ListUserAnimals(ctx context.Context, userID string) ([]domain.UserAnimal, error)
}

// Catalog resolves building definitions
type Catalog interface {
	GetBuilding(ctx context.Context, code string) (*domain.BuildingType, error)
}

type service struct {
	repo    repository.Building
	catalog Catalog
	now     func() time.Time
}

// NewService creates a new building service
func NewService(repo repository.Building, catalog Catalog) Service {
	return &service{repo: repo, catalog: catalog, now: time.Now}
}

func validate(userID, buildingCode string) error {
	if userID == "" || buildingCode == "" {
		return fmt.Errorf("%w: Missing userId or buildingCode", domain.ErrInvalidInput)
	}
	return nil
}

func (s *service) PurchaseBuilding(ctx context.Context, userID, buildingCode string) (*domain.BuildingPurchaseResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPurchaseBuildingCalled, "userID", userID, "buildingCode", buildingCode)

	if err := validate(userID, buildingCode); err != nil {
		return nil, err
	}

	bt, err := s.catalog.GetBuilding(ctx, buildingCode)
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

	owned, err := tx.GetUserBuildingForUpdate(ctx, userID, buildingCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check owned building: %w", err)
	}
	if owned != nil {
		return nil, domain.ErrBuildingAlreadyOwned
	}

	if !economy.MeetsLevel(user.Level, bt.UnlockLevel) {
		return nil, fmt.Errorf("%w: requires level %d", domain.ErrLevelLocked, bt.UnlockLevel)
	}
	if !economy.CanAfford(user.Coin, bt.BasePrice) {
		return nil, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientFunds, bt.BasePrice, user.Coin)
	}

	building := &domain.UserBuilding{
		ID:           uuid.NewString(),
		UserID:       userID,
		BuildingCode: buildingCode,
		CurrentLevel: 1,
		PurchasedAt:  s.now().UTC(),
	}
	if err := tx.InsertUserBuilding(ctx, building); err != nil {
		if errors.Is(err, domain.ErrBuildingAlreadyOwned) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to insert building: %w", err)
	}

	coinsLeft, err := tx.DebitCoins(ctx, userID, bt.BasePrice)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDebitFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	metrics.BuildingsPurchased.WithLabelValues(buildingCode).Inc()
	metrics.CoinsSpent.WithLabelValues(metrics.CoinFlowBuilding).Add(float64(bt.BasePrice))
	log.Info(LogMsgBuildingPurchased, "userID", userID, "buildingCode", buildingCode, "coinsLeft", coinsLeft)

	return &domain.BuildingPurchaseResult{Data: *building, CoinsLeft: coinsLeft}, nil
}

func (s *service) UpgradeBuilding(ctx context.Context, userID, buildingCode string) (*domain.BuildingUpgradeResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgUpgradeBuildingCalled, "userID", userID, "buildingCode", buildingCode)

	if err := validate(userID, buildingCode); err != nil {
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

	owned, err := tx.GetUserBuildingForUpdate(ctx, userID, buildingCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get owned building: %w", err)
	}
	if owned == nil {
		return nil, domain.ErrBuildingNotOwned
	}

	bt, err := s.catalog.GetBuilding(ctx, buildingCode)
	if err != nil {
		return nil, err
	}

	next, ok := economy.NextBuildingLevelConfig(bt.LevelConfig, owned.CurrentLevel)
	if !ok {
		return nil, domain.ErrMaxLevel
	}
	if !economy.CanAfford(user.Coin, next.UpgradePrice) {
		return nil, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientFunds, next.UpgradePrice, user.Coin)
	}

	newLevel := owned.CurrentLevel + 1
	upgraded, err := tx.SetBuildingLevel(ctx, owned.ID, newLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade building: %w", err)
	}

	coinsLeft := user.Coin
	if next.UpgradePrice > 0 {
		if coinsLeft, err = tx.DebitCoins(ctx, userID, next.UpgradePrice); err != nil {
			return nil, fmt.Errorf(ErrMsgDebitFailed, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	metrics.BuildingsUpgraded.WithLabelValues(buildingCode).Inc()
	metrics.CoinsSpent.WithLabelValues(metrics.CoinFlowBuilding).Add(float64(next.UpgradePrice))
	log.Info(LogMsgBuildingUpgraded, "userID", userID, "buildingCode", buildingCode, "level", newLevel)

	return &domain.BuildingUpgradeResult{
		Data:        *upgraded,
		NewLevel:    newLevel,
		NewCapacity: next.Capacity,
		CoinsLeft:   coinsLeft,
	}, nil
}

func (s *service) ListUserBuildings(ctx context.Context, userID string) ([]domain.UserBuildingDetail, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: Missing userId parameter", domain.ErrInvalidInput)
	}

	owned, err := s.repo.ListUserBuildings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}

	out := make([]domain.UserBuildingDetail, 0, len(owned))
	for _, b := range owned {
		bt, err := s.catalog.GetBuilding(ctx, b.BuildingCode)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.UserBuildingDetail{
			UserBuilding:    b,
			BuildingType:    bt,
			CurrentCapacity: economy.CapacityAt(bt.LevelConfig, b.CurrentLevel),
		})
	}
	return out, nil
}

func (s *service) ListUserAnimals(ctx context.Context, userID string) ([]domain.UserAnimal, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: Missing userId parameter", domain.ErrInvalidInput)
	}

	animals, err := s.repo.ListUserAnimals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list animals: %w", err)
	}
	if animals == nil {
		animals = []domain.UserAnimal{}
	}
	return animals, nil
}
