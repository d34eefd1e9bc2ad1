package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// CatalogRepository implements the catalog repository for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

const (
	selectSeedSQL = `
		SELECT code, name, description, icon, base_price, sell_price, growth_time, harvest_value, unlock_level
		FROM seed_types`
	selectAnimalSQL = `
		SELECT code, name, type, description, icon, base_price, sell_price,
		       production_time, production_item, production_value, unlock_level
		FROM animal_types`
	selectBuildingSQL = `
		SELECT code, name, type, description, icon, base_price, unlock_level, level_config
		FROM building_types`
)

func scanSeed(row pgx.Row) (*domain.SeedType, error) {
	var s domain.SeedType
	err := row.Scan(&s.Code, &s.Name, &s.Description, &s.Icon, &s.BasePrice, &s.SellPrice,
		&s.GrowthTime, &s.HarvestValue, &s.UnlockLevel)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanAnimal(row pgx.Row) (*domain.AnimalType, error) {
	var a domain.AnimalType
	err := row.Scan(&a.Code, &a.Name, &a.Type, &a.Description, &a.Icon, &a.BasePrice, &a.SellPrice,
		&a.ProductionTime, &a.ProductionItem, &a.ProductionValue, &a.UnlockLevel)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanBuildingType(row pgx.Row) (*domain.BuildingType, error) {
	var b domain.BuildingType
	var levels []byte
	err := row.Scan(&b.Code, &b.Name, &b.Type, &b.Description, &b.Icon, &b.BasePrice, &b.UnlockLevel, &levels)
	if err != nil {
		return nil, err
	}
	b.LevelConfig = map[int]domain.LevelConfig{}
	if err := json.Unmarshal(levels, &b.LevelConfig); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeLevels, err)
	}
	return &b, nil
}

// GetSeedType returns one seed definition
func (r *CatalogRepository) GetSeedType(ctx context.Context, code string) (*domain.SeedType, error) {
	s, err := scanSeed(r.db.QueryRow(ctx, selectSeedSQL+` WHERE code = $1`, code))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrSeedNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCatalog, err)
	}
	return s, nil
}

// GetAnimalType returns one animal definition
func (r *CatalogRepository) GetAnimalType(ctx context.Context, code string) (*domain.AnimalType, error) {
	a, err := scanAnimal(r.db.QueryRow(ctx, selectAnimalSQL+` WHERE code = $1`, code))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrAnimalNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCatalog, err)
	}
	return a, nil
}

// GetBuildingType returns one building definition
func (r *CatalogRepository) GetBuildingType(ctx context.Context, code string) (*domain.BuildingType, error) {
	b, err := scanBuildingType(r.db.QueryRow(ctx, selectBuildingSQL+` WHERE code = $1`, code))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrBuildingTypeNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCatalog, err)
	}
	return b, nil
}

// listRows runs query and scans each row with scan
func listRows[T any](ctx context.Context, q querier, query string, scan func(pgx.Row) (*T, error)) ([]T, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCatalog, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCatalog, err)
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCatalog, err)
	}
	return out, nil
}

// ListSeedTypes returns every seed definition
func (r *CatalogRepository) ListSeedTypes(ctx context.Context) ([]domain.SeedType, error) {
	return listRows(ctx, r.db, selectSeedSQL+` ORDER BY unlock_level, code`, scanSeed)
}

// ListAnimalTypes returns every animal definition
func (r *CatalogRepository) ListAnimalTypes(ctx context.Context) ([]domain.AnimalType, error) {
	return listRows(ctx, r.db, selectAnimalSQL+` ORDER BY unlock_level, code`, scanAnimal)
}

// ListBuildingTypes returns every building definition
func (r *CatalogRepository) ListBuildingTypes(ctx context.Context) ([]domain.BuildingType, error) {
	return listRows(ctx, r.db, selectBuildingSQL+` ORDER BY unlock_level, code`, scanBuildingType)
}

// UpsertSeedType inserts or replaces a seed definition
func (r *CatalogRepository) UpsertSeedType(ctx context.Context, s *domain.SeedType) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO seed_types (code, name, description, icon, base_price, sell_price, growth_time, harvest_value, unlock_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			icon = EXCLUDED.icon,
			base_price = EXCLUDED.base_price,
			sell_price = EXCLUDED.sell_price,
			growth_time = EXCLUDED.growth_time,
			harvest_value = EXCLUDED.harvest_value,
			unlock_level = EXCLUDED.unlock_level
	`, s.Code, s.Name, s.Description, s.Icon, s.BasePrice, s.SellPrice, s.GrowthTime, s.HarvestValue, s.UnlockLevel)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToUpsertCatalog, s.Code, err)
	}
	return nil
}

// UpsertAnimalType inserts or replaces an animal definition
func (r *CatalogRepository) UpsertAnimalType(ctx context.Context, a *domain.AnimalType) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO animal_types (code, name, type, description, icon, base_price, sell_price,
		                          production_time, production_item, production_value, unlock_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			description = EXCLUDED.description,
			icon = EXCLUDED.icon,
			base_price = EXCLUDED.base_price,
			sell_price = EXCLUDED.sell_price,
			production_time = EXCLUDED.production_time,
			production_item = EXCLUDED.production_item,
			production_value = EXCLUDED.production_value,
			unlock_level = EXCLUDED.unlock_level
	`, a.Code, a.Name, a.Type, a.Description, a.Icon, a.BasePrice, a.SellPrice,
		a.ProductionTime, a.ProductionItem, a.ProductionValue, a.UnlockLevel)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToUpsertCatalog, a.Code, err)
	}
	return nil
}

// UpsertBuildingType inserts or replaces a building definition
func (r *CatalogRepository) UpsertBuildingType(ctx context.Context, b *domain.BuildingType) error {
	levels, err := json.Marshal(b.LevelConfig)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDecodeLevels, err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO building_types (code, name, type, description, icon, base_price, unlock_level, level_config)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			description = EXCLUDED.description,
			icon = EXCLUDED.icon,
			base_price = EXCLUDED.base_price,
			unlock_level = EXCLUDED.unlock_level,
			level_config = EXCLUDED.level_config
	`, b.Code, b.Name, b.Type, b.Description, b.Icon, b.BasePrice, b.UnlockLevel, string(levels))
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToUpsertCatalog, b.Code, err)
	}
	return nil
}

// GetSyncMetadata returns the last sync record for a config file, or nil if it was never synced
func (r *CatalogRepository) GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error) {
	var m domain.SyncMetadata
	err := r.db.QueryRow(ctx, `
		SELECT config_name, last_sync_time, file_hash, file_mod_time
		FROM sync_metadata WHERE config_name = $1
	`, configName).Scan(&m.ConfigName, &m.LastSyncTime, &m.FileHash, &m.FileModTime)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSyncMetadata, err)
	}
	return &m, nil
}

// UpsertSyncMetadata records a completed sync
func (r *CatalogRepository) UpsertSyncMetadata(ctx context.Context, m *domain.SyncMetadata) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sync_metadata (config_name, last_sync_time, file_hash, file_mod_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (config_name) DO UPDATE SET
			last_sync_time = EXCLUDED.last_sync_time,
			file_hash = EXCLUDED.file_hash,
			file_mod_time = EXCLUDED.file_mod_time
	`, m.ConfigName, m.LastSyncTime, m.FileHash, m.FileModTime)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveSyncMeta, err)
	}
	return nil
}
