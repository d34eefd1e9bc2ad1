package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// UserService mocks user.Service
type UserService struct {
	mock.Mock
}

func (m *UserService) CreateNewUser(ctx context.Context, userID, name string) (*domain.User, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserService) UpdateUserData(ctx context.Context, userID, name string) (*domain.User, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserService) GetGameState(ctx context.Context, userID string) (*domain.GameState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameState), args.Error(1)
}

// FarmService mocks farm.Service
type FarmService struct {
	mock.Mock
}

func (m *FarmService) PlantSeed(ctx context.Context, userID, plotID, seedCode string) (*domain.PlantResult, error) {
	args := m.Called(ctx, userID, plotID, seedCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlantResult), args.Error(1)
}

func (m *FarmService) HarvestCrop(ctx context.Context, userID, cropID string) (*domain.HarvestResult, error) {
	args := m.Called(ctx, userID, cropID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HarvestResult), args.Error(1)
}

func (m *FarmService) UnlockPlot(ctx context.Context, userID, plotID string) (*domain.UnlockResult, error) {
	args := m.Called(ctx, userID, plotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UnlockResult), args.Error(1)
}

func (m *FarmService) GetFarmState(ctx context.Context, userID string) (*domain.FarmState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FarmState), args.Error(1)
}

func (m *FarmService) Snapshot(ctx context.Context, userID string) (domain.FarmSnapshot, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.FarmSnapshot), args.Error(1)
}

// EconomyService mocks economy.Service
type EconomyService struct {
	mock.Mock
}

func (m *EconomyService) PurchaseItem(ctx context.Context, userID string, itemType domain.ItemType, itemCode string, quantity int) (*domain.PurchaseResult, error) {
	args := m.Called(ctx, userID, itemType, itemCode, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseResult), args.Error(1)
}

func (m *EconomyService) SellItem(ctx context.Context, userID string, itemType domain.ItemType, itemCode string, quantity int) (*domain.SellResult, error) {
	args := m.Called(ctx, userID, itemType, itemCode, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SellResult), args.Error(1)
}

// BuildingService mocks building.Service
type BuildingService struct {
	mock.Mock
}

func (m *BuildingService) PurchaseBuilding(ctx context.Context, userID, buildingCode string) (*domain.BuildingPurchaseResult, error) {
	args := m.Called(ctx, userID, buildingCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BuildingPurchaseResult), args.Error(1)
}

func (m *BuildingService) UpgradeBuilding(ctx context.Context, userID, buildingCode string) (*domain.BuildingUpgradeResult, error) {
	args := m.Called(ctx, userID, buildingCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BuildingUpgradeResult), args.Error(1)
}

func (m *BuildingService) ListUserBuildings(ctx context.Context, userID string) ([]domain.UserBuildingDetail, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserBuildingDetail), args.Error(1)
}

func (m *BuildingService) ListUserAnimals(ctx context.Context, userID string) ([]domain.UserAnimal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserAnimal), args.Error(1)
}

// AutosaveService mocks autosave.Service
type AutosaveService struct {
	mock.Mock
}

func (m *AutosaveService) Autosave(ctx context.Context, userID string, actions []domain.GameAction) (*domain.AutosaveResponse, error) {
	args := m.Called(ctx, userID, actions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutosaveResponse), args.Error(1)
}
