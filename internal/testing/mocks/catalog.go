package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// Catalog implements the service-level catalog lookups for testing
type Catalog struct {
	mock.Mock
}

func (m *Catalog) GetSeed(ctx context.Context, code string) (*domain.SeedType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeedType), args.Error(1)
}

func (m *Catalog) GetAnimal(ctx context.Context, code string) (*domain.AnimalType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnimalType), args.Error(1)
}

func (m *Catalog) GetBuilding(ctx context.Context, code string) (*domain.BuildingType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BuildingType), args.Error(1)
}

func (m *Catalog) Catalog(ctx context.Context) (*domain.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Catalog), args.Error(1)
}

func (m *Catalog) Invalidate() {
	m.Called()
}
