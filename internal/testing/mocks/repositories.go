package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/repository"
)

var (
	_ repository.Economy          = (*EconomyRepository)(nil)
	_ repository.Farm             = (*FarmRepository)(nil)
	_ repository.Building         = (*BuildingRepository)(nil)
	_ repository.User             = (*UserRepository)(nil)
	_ repository.Catalog          = (*CatalogRepository)(nil)
	_ repository.ProcessedActions = (*ProcessedActions)(nil)
)

// EconomyRepository implements repository.Economy for testing
type EconomyRepository struct {
	mock.Mock
}

func (m *EconomyRepository) BeginTx(ctx context.Context) (repository.EconomyTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.EconomyTx), args.Error(1)
}

// FarmRepository implements repository.Farm for testing
type FarmRepository struct {
	mock.Mock
}

func (m *FarmRepository) GetFarm(ctx context.Context, userID string) ([]domain.PlotWithCrop, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlotWithCrop), args.Error(1)
}

func (m *FarmRepository) MarkCropsReady(ctx context.Context, cropIDs []string) (int64, error) {
	args := m.Called(ctx, cropIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FarmRepository) BeginTx(ctx context.Context) (repository.FarmTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.FarmTx), args.Error(1)
}

// BuildingRepository implements repository.Building for testing
type BuildingRepository struct {
	mock.Mock
}

func (m *BuildingRepository) ListUserBuildings(ctx context.Context, userID string) ([]domain.UserBuilding, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserBuilding), args.Error(1)
}

func (m *BuildingRepository) ListUserAnimals(ctx context.Context, userID string) ([]domain.UserAnimal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserAnimal), args.Error(1)
}

func (m *BuildingRepository) BeginTx(ctx context.Context) (repository.BuildingTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.BuildingTx), args.Error(1)
}

// UserRepository implements repository.User for testing
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *UserRepository) BeginTx(ctx context.Context) (repository.UserTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.UserTx), args.Error(1)
}

// CatalogRepository implements repository.Catalog for testing
type CatalogRepository struct {
	mock.Mock
}

func (m *CatalogRepository) GetSeedType(ctx context.Context, code string) (*domain.SeedType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeedType), args.Error(1)
}

func (m *CatalogRepository) GetAnimalType(ctx context.Context, code string) (*domain.AnimalType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnimalType), args.Error(1)
}

func (m *CatalogRepository) GetBuildingType(ctx context.Context, code string) (*domain.BuildingType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BuildingType), args.Error(1)
}

func (m *CatalogRepository) ListSeedTypes(ctx context.Context) ([]domain.SeedType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeedType), args.Error(1)
}

func (m *CatalogRepository) ListAnimalTypes(ctx context.Context) ([]domain.AnimalType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnimalType), args.Error(1)
}

func (m *CatalogRepository) ListBuildingTypes(ctx context.Context) ([]domain.BuildingType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BuildingType), args.Error(1)
}

func (m *CatalogRepository) UpsertSeedType(ctx context.Context, seed *domain.SeedType) error {
	args := m.Called(ctx, seed)
	return args.Error(0)
}

func (m *CatalogRepository) UpsertAnimalType(ctx context.Context, animal *domain.AnimalType) error {
	args := m.Called(ctx, animal)
	return args.Error(0)
}

func (m *CatalogRepository) UpsertBuildingType(ctx context.Context, building *domain.BuildingType) error {
	args := m.Called(ctx, building)
	return args.Error(0)
}

func (m *CatalogRepository) GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error) {
	args := m.Called(ctx, configName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncMetadata), args.Error(1)
}

func (m *CatalogRepository) UpsertSyncMetadata(ctx context.Context, metadata *domain.SyncMetadata) error {
	args := m.Called(ctx, metadata)
	return args.Error(0)
}

// ProcessedActions implements repository.ProcessedActions for testing
type ProcessedActions struct {
	mock.Mock
}

func (m *ProcessedActions) ClaimAction(ctx context.Context, userID, actionID string) (bool, error) {
	args := m.Called(ctx, userID, actionID)
	return args.Bool(0), args.Error(1)
}

func (m *ProcessedActions) CompleteAction(ctx context.Context, userID, actionID string, outcome repository.ActionOutcome, reason string) error {
	args := m.Called(ctx, userID, actionID, outcome, reason)
	return args.Error(0)
}

func (m *ProcessedActions) ReleaseAction(ctx context.Context, userID, actionID string) error {
	args := m.Called(ctx, userID, actionID)
	return args.Error(0)
}
