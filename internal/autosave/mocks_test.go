package autosave

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

type mockFarm struct {
	mock.Mock
}

func (m *mockFarm) PlantSeed(ctx context.Context, userID, plotID, seedCode string) (*domain.PlantResult, error) {
	args := m.Called(ctx, userID, plotID, seedCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlantResult), args.Error(1)
}

func (m *mockFarm) HarvestCrop(ctx context.Context, userID, cropID string) (*domain.HarvestResult, error) {
	args := m.Called(ctx, userID, cropID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HarvestResult), args.Error(1)
}

func (m *mockFarm) UnlockPlot(ctx context.Context, userID, plotID string) (*domain.UnlockResult, error) {
	args := m.Called(ctx, userID, plotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UnlockResult), args.Error(1)
}

type mockEconomy struct {
	mock.Mock
}

func (m *mockEconomy) PurchaseItem(ctx context.Context, userID string, itemType domain.ItemType, itemCode string, quantity int) (*domain.PurchaseResult, error) {
	args := m.Called(ctx, userID, itemType, itemCode, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseResult), args.Error(1)
}

func (m *mockEconomy) SellItem(ctx context.Context, userID string, itemType domain.ItemType, itemCode string, quantity int) (*domain.SellResult, error) {
	args := m.Called(ctx, userID, itemType, itemCode, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SellResult), args.Error(1)
}

type mockState struct {
	mock.Mock
}

func (m *mockState) GetGameState(ctx context.Context, userID string) (*domain.GameState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameState), args.Error(1)
}
