package repository

import (
	"context"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// Catalog defines the interface for shop definition persistence
type Catalog interface {
	GetSeedType(ctx context.Context, code string) (*domain.SeedType, error)
	GetAnimalType(ctx context.Context, code string) (*domain.AnimalType, error)
	GetBuildingType(ctx context.Context, code string) (*domain.BuildingType, error)

	ListSeedTypes(ctx context.Context) ([]domain.SeedType, error)
	ListAnimalTypes(ctx context.Context) ([]domain.AnimalType, error)
	ListBuildingTypes(ctx context.Context) ([]domain.BuildingType, error)

	UpsertSeedType(ctx context.Context, seed *domain.SeedType) error
	UpsertAnimalType(ctx context.Context, animal *domain.AnimalType) error
	UpsertBuildingType(ctx context.Context, building *domain.BuildingType) error

	// Sync metadata operations
	GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error)
	UpsertSyncMetadata(ctx context.Context, metadata *domain.SyncMetadata) error
}
