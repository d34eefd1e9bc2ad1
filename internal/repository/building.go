package repository

import (
	"context"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// Building defines the interface for building and animal persistence
type Building interface {
	// ListUserBuildings returns the buildings a user owns
	ListUserBuildings(ctx context.Context, userID string) ([]domain.UserBuilding, error)

	// ListUserAnimals returns the animals a user owns, joined with their type
	ListUserAnimals(ctx context.Context, userID string) ([]domain.UserAnimal, error)

	BeginTx(ctx context.Context) (BuildingTx, error)
}

// BuildingTx defines the interface for building purchase and upgrade
type BuildingTx interface {
	WalletTx

	// GetUserBuildingForUpdate locks the user's building of that code, or returns nil if none
	GetUserBuildingForUpdate(ctx context.Context, userID, buildingCode string) (*domain.UserBuilding, error)

	// InsertUserBuilding stores a newly purchased building.
	// Returns domain.ErrBuildingAlreadyOwned on a duplicate.
	InsertUserBuilding(ctx context.Context, building *domain.UserBuilding) error

	// SetBuildingLevel updates the building level and returns the updated row
	SetBuildingLevel(ctx context.Context, buildingID string, level int) (*domain.UserBuilding, error)
}
