// Package mocks provides testify mocks of the repository interfaces shared
// by the service packages' unit tests.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/repository"
)

var (
	_ repository.EconomyTx  = (*Tx)(nil)
	_ repository.FarmTx     = (*Tx)(nil)
	_ repository.BuildingTx = (*Tx)(nil)
	_ repository.UserTx     = (*Tx)(nil)
)

// Tx implements every repository transaction interface
type Tx struct {
	mock.Mock
}

func (m *Tx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Tx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Tx) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *Tx) DebitCoins(ctx context.Context, userID string, amount int) (int, error) {
	args := m.Called(ctx, userID, amount)
	return args.Int(0), args.Error(1)
}

func (m *Tx) CreditCoins(ctx context.Context, userID string, amount int) (int, error) {
	args := m.Called(ctx, userID, amount)
	return args.Int(0), args.Error(1)
}

func (m *Tx) SetProgress(ctx context.Context, userID string, exp, level int) error {
	args := m.Called(ctx, userID, exp, level)
	return args.Error(0)
}

func (m *Tx) GetInventoryItemForUpdate(ctx context.Context, userID string, itemType domain.ItemType, itemCode string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, userID, itemType, itemCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *Tx) AddInventory(ctx context.Context, userID string, itemType domain.ItemType, itemCode string, quantity int) error {
	args := m.Called(ctx, userID, itemType, itemCode, quantity)
	return args.Error(0)
}

func (m *Tx) SetInventoryQuantity(ctx context.Context, itemID string, quantity int) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *Tx) GetPlotForUpdate(ctx context.Context, userID, plotID string) (*domain.FarmPlot, error) {
	args := m.Called(ctx, userID, plotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FarmPlot), args.Error(1)
}

func (m *Tx) GetCropByPlot(ctx context.Context, plotID string) (*domain.Crop, error) {
	args := m.Called(ctx, plotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crop), args.Error(1)
}

func (m *Tx) GetCropForUpdate(ctx context.Context, userID, cropID string) (*domain.Crop, error) {
	args := m.Called(ctx, userID, cropID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crop), args.Error(1)
}

func (m *Tx) InsertCrop(ctx context.Context, crop *domain.Crop) error {
	args := m.Called(ctx, crop)
	return args.Error(0)
}

func (m *Tx) DeleteCrop(ctx context.Context, cropID string) error {
	args := m.Called(ctx, cropID)
	return args.Error(0)
}

func (m *Tx) UnlockPlot(ctx context.Context, plotID string, at time.Time) (*domain.FarmPlot, error) {
	args := m.Called(ctx, plotID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FarmPlot), args.Error(1)
}

func (m *Tx) GetUserBuildingForUpdate(ctx context.Context, userID, buildingCode string) (*domain.UserBuilding, error) {
	args := m.Called(ctx, userID, buildingCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserBuilding), args.Error(1)
}

func (m *Tx) InsertUserBuilding(ctx context.Context, building *domain.UserBuilding) error {
	args := m.Called(ctx, building)
	return args.Error(0)
}

func (m *Tx) SetBuildingLevel(ctx context.Context, buildingID string, level int) (*domain.UserBuilding, error) {
	args := m.Called(ctx, buildingID, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserBuilding), args.Error(1)
}

func (m *Tx) InsertUser(ctx context.Context, user *domain.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *Tx) UpdateUserName(ctx context.Context, userID, name string) (*domain.User, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *Tx) InsertPlots(ctx context.Context, plots []domain.FarmPlot) error {
	args := m.Called(ctx, plots)
	return args.Error(0)
}

// ExpectRollback allows the deferred SafeRollback every service issues
func (m *Tx) ExpectRollback() *Tx {
	m.On("Rollback", mock.Anything).Return(nil).Maybe()
	return m
}
