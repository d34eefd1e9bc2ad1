package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/testing/mocks"
)

const minimalCatalog = `
version: "1.0"
seeds:
  - code: seed_wheat
    name: Wheat
    base_price: 10
    sell_price: 5
    growth_time: 0.5
    harvest_value: 20
    unlock_level: 1
animals: []
buildings:
  - code: bld_coop
    name: Coop
    type: poultry
    base_price: 200
    unlock_level: 2
    level_config:
      1: {capacity: 4, upgrade_price: 0}
      2: {capacity: 8, upgrade_price: 300}
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	loader := NewLoader()

	t.Run("shipped catalog", func(t *testing.T) {
		cfg, err := loader.Load(filepath.Join("..", "..", "configs", "catalog.yaml"))
		require.NoError(t, err)
		require.NoError(t, loader.Validate(cfg))

		assert.Equal(t, "1.0", cfg.Version)
		assert.Len(t, cfg.Seeds, 4)
		assert.Len(t, cfg.Animals, 4)
		require.Len(t, cfg.Buildings, 2)

		barn := cfg.Buildings[1]
		assert.Equal(t, "bld_barn", barn.Code)
		assert.Equal(t, 10, barn.LevelConfig[4].Capacity)
		assert.Equal(t, 800, barn.LevelConfig[2].UpgradePrice)
	})

	t.Run("integer level keys decode", func(t *testing.T) {
		cfg, err := loader.Load(writeTemp(t, minimalCatalog))
		require.NoError(t, err)
		require.Len(t, cfg.Buildings, 1)
		assert.Equal(t, domain.LevelConfig{Capacity: 8, UpgradePrice: 300}, cfg.Buildings[0].LevelConfig[2])
		assert.Nil(t, cfg.Seeds[0].Icon)
		assert.InDelta(t, 0.5, cfg.Seeds[0].GrowthTime, 1e-9)
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := loader.Load("/nonexistent/catalog.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read catalog file")
	})

	t.Run("schema violation", func(t *testing.T) {
		bad := `
version: "1.0"
seeds:
  - code: seed_wheat
    name: Wheat
    base_price: -10
    sell_price: 5
    growth_time: 1
    harvest_value: 20
    unlock_level: 1
animals: []
buildings: []
`
		_, err := loader.Load(writeTemp(t, bad))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema validation failed")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := loader.Load(writeTemp(t, "seeds: [\n"))
		assert.Error(t, err)
	})
}

func TestLoader_Validate(t *testing.T) {
	loader := NewLoader()

	valid := func() *Config {
		return &Config{
			Version: "1.0",
			Catalog: domain.Catalog{
				Seeds: []domain.SeedType{
					{Code: "seed_wheat", Name: "Wheat", BasePrice: 10, SellPrice: 5, GrowthTime: 1, HarvestValue: 20, UnlockLevel: 1},
				},
				Animals: []domain.AnimalType{
					{Code: "anl_chicken", Name: "Chicken", BasePrice: 150, SellPrice: 75, UnlockLevel: 2},
				},
				Buildings: []domain.BuildingType{
					{Code: "bld_coop", Name: "Coop", BasePrice: 200, UnlockLevel: 2, LevelConfig: map[int]domain.LevelConfig{
						1: {Capacity: 4},
						2: {Capacity: 8, UpgradePrice: 300},
					}},
				},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
		wantMsg string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "nil config", wantErr: ErrInvalidConfig, wantMsg: "config is nil"},
		{
			name:    "no seeds",
			mutate:  func(c *Config) { c.Seeds = nil },
			wantErr: ErrInvalidConfig,
			wantMsg: "no seeds defined",
		},
		{
			name: "duplicate code across kinds",
			mutate: func(c *Config) {
				c.Animals[0].Code = "seed_wheat"
			},
			wantErr: ErrDuplicateCode,
		},
		{
			name:    "empty code",
			mutate:  func(c *Config) { c.Seeds[0].Code = "" },
			wantErr: ErrInvalidConfig,
			wantMsg: "empty code",
		},
		{
			name:    "negative growth time",
			mutate:  func(c *Config) { c.Seeds[0].GrowthTime = -1 },
			wantErr: ErrInvalidConfig,
			wantMsg: "growth_time",
		},
		{
			name:    "sell above buy",
			mutate:  func(c *Config) { c.Seeds[0].SellPrice = 50 },
			wantErr: ErrInvalidConfig,
			wantMsg: "sells for more",
		},
		{
			name: "missing level one",
			mutate: func(c *Config) {
				delete(c.Buildings[0].LevelConfig, 1)
			},
			wantErr: ErrInvalidConfig,
			wantMsg: "no level 1",
		},
		{
			name: "level gap",
			mutate: func(c *Config) {
				c.Buildings[0].LevelConfig[4] = domain.LevelConfig{Capacity: 20, UpgradePrice: 900}
			},
			wantErr: ErrInvalidConfig,
			wantMsg: "missing level 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg *Config
			if tt.mutate != nil {
				cfg = valid()
				tt.mutate(cfg)
			}
			err := loader.Validate(cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoader_SyncToDatabase(t *testing.T) {
	ctx := context.Background()
	loader := NewLoader()

	t.Run("inserts new and skips unchanged", func(t *testing.T) {
		path := writeTemp(t, minimalCatalog)
		cfg, err := loader.Load(path)
		require.NoError(t, err)

		repo := new(mocks.CatalogRepository)
		repo.On("GetSyncMetadata", ctx, ConfigName).Return(nil, domain.ErrNotFound)
		repo.On("ListSeedTypes", ctx).Return([]domain.SeedType{cfg.Seeds[0]}, nil)
		repo.On("ListAnimalTypes", ctx).Return([]domain.AnimalType{}, nil)
		repo.On("ListBuildingTypes", ctx).Return([]domain.BuildingType{}, nil)
		repo.On("UpsertBuildingType", ctx, mock.MatchedBy(func(b *domain.BuildingType) bool {
			return b.Code == "bld_coop"
		})).Return(nil)
		repo.On("UpsertSyncMetadata", ctx, mock.MatchedBy(func(m *domain.SyncMetadata) bool {
			return m.ConfigName == ConfigName && len(m.FileHash) == 64
		})).Return(nil)

		result, err := loader.SyncToDatabase(ctx, cfg, repo, path)
		require.NoError(t, err)
		assert.Equal(t, &SyncResult{Inserted: 1, Skipped: 1}, result)
		repo.AssertNotCalled(t, "UpsertSeedType", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("updates changed entries", func(t *testing.T) {
		path := writeTemp(t, minimalCatalog)
		cfg, err := loader.Load(path)
		require.NoError(t, err)

		stale := cfg.Seeds[0]
		stale.HarvestValue = 1

		repo := new(mocks.CatalogRepository)
		repo.On("GetSyncMetadata", ctx, ConfigName).Return(nil, domain.ErrNotFound)
		repo.On("ListSeedTypes", ctx).Return([]domain.SeedType{stale}, nil)
		repo.On("ListAnimalTypes", ctx).Return(nil, nil)
		repo.On("ListBuildingTypes", ctx).Return([]domain.BuildingType{cfg.Buildings[0]}, nil)
		repo.On("UpsertSeedType", ctx, &cfg.Seeds[0]).Return(nil)
		repo.On("UpsertSyncMetadata", ctx, mock.Anything).Return(nil)

		result, err := loader.SyncToDatabase(ctx, cfg, repo, path)
		require.NoError(t, err)
		assert.Equal(t, &SyncResult{Updated: 1, Skipped: 1}, result)
		repo.AssertExpectations(t)
	})

	t.Run("unchanged file is skipped", func(t *testing.T) {
		path := writeTemp(t, minimalCatalog)
		cfg, err := loader.Load(path)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		sum := sha256.Sum256(data)
		info, err := os.Stat(path)
		require.NoError(t, err)

		repo := new(mocks.CatalogRepository)
		repo.On("GetSyncMetadata", ctx, ConfigName).Return(&domain.SyncMetadata{
			ConfigName:  ConfigName,
			FileHash:    hex.EncodeToString(sum[:]),
			FileModTime: info.ModTime().UTC().Truncate(time.Microsecond),
		}, nil)

		result, err := loader.SyncToDatabase(ctx, cfg, repo, path)
		require.NoError(t, err)
		assert.Equal(t, &SyncResult{}, result)
		repo.AssertNotCalled(t, "ListSeedTypes", mock.Anything)
	})

	t.Run("upsert failure aborts", func(t *testing.T) {
		path := writeTemp(t, minimalCatalog)
		cfg, err := loader.Load(path)
		require.NoError(t, err)

		repo := new(mocks.CatalogRepository)
		repo.On("GetSyncMetadata", ctx, ConfigName).Return(nil, domain.ErrNotFound)
		repo.On("ListSeedTypes", ctx).Return(nil, nil)
		repo.On("UpsertSeedType", ctx, mock.Anything).Return(errors.New("db down"))

		_, err = loader.SyncToDatabase(ctx, cfg, repo, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "seed_wheat")
		repo.AssertNotCalled(t, "UpsertSyncMetadata", mock.Anything, mock.Anything)
	})
}
