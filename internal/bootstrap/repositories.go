package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PixelFarm_Go/internal/database/postgres"
	"github.com/osse101/PixelFarm_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	User      repository.User
	Farm      repository.Farm
	Economy   repository.Economy
	Building  repository.Building
	Catalog   repository.Catalog
	Processed repository.ProcessedActions
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:      postgres.NewUserRepository(dbPool),
		Farm:      postgres.NewFarmRepository(dbPool),
		Economy:   postgres.NewEconomyRepository(dbPool),
		Building:  postgres.NewBuildingRepository(dbPool),
		Catalog:   postgres.NewCatalogRepository(dbPool),
		Processed: postgres.NewProcessedActionsRepository(dbPool),
	}
}
