package catalog

import (
	"context"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"time"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/logger"
	"github.com/osse101/PixelFarm_Go/internal/repository"
	"github.com/osse101/PixelFarm_Go/internal/validation"
)

//go:embed catalog.schema.json
var catalogSchema []byte

// Sentinel errors for the catalog loader
var (
	ErrDuplicateCode = errors.New("duplicate code")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the YAML catalog file
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	domain.Catalog
}

// Loader handles loading, validating and syncing the catalog file
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
	SyncToDatabase(ctx context.Context, config *Config, repo repository.Catalog, configPath string) (*SyncResult, error)
}

// SyncResult contains the result of syncing the catalog to the database
type SyncResult struct {
	Inserted int
	Updated  int
	Skipped  int
}

type loader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &loader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads a catalog YAML file, checks it against the schema and decodes it.
func (l *loader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	if err := l.schemaValidator.RegisterSchema(SchemaName, catalogSchema); err != nil {
		return nil, fmt.Errorf(ErrMsgRegisterSchemaFail, err)
	}

	jsonData, err := l.schemaValidator.ValidateYAML(data, SchemaName)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSchemaFailed, path, err)
	}

	var config Config
	if err := json.Unmarshal(jsonData, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &config, nil
}

// Validate checks the rules the schema cannot express
func (l *loader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}
	if len(config.Seeds) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoSeedsDefined)
	}

	// Codes share one namespace so inventory rows stay unambiguous
	codes := make(map[string]bool)

	for i := range config.Seeds {
		s := &config.Seeds[i]
		if err := checkCode(codes, "seed", i, s.Code); err != nil {
			return err
		}
		if err := checkNonNegative("seed", s.Code, map[string]float64{
			"base_price":    float64(s.BasePrice),
			"sell_price":    float64(s.SellPrice),
			"growth_time":   s.GrowthTime,
			"harvest_value": float64(s.HarvestValue),
		}); err != nil {
			return err
		}
		if s.SellPrice > s.BasePrice {
			return fmt.Errorf(ErrFmtSellAboveBuy, ErrInvalidConfig, "seed", s.Code)
		}
	}

	for i := range config.Animals {
		a := &config.Animals[i]
		if err := checkCode(codes, "animal", i, a.Code); err != nil {
			return err
		}
		if err := checkNonNegative("animal", a.Code, map[string]float64{
			"base_price":      float64(a.BasePrice),
			"sell_price":      float64(a.SellPrice),
			"production_time": a.ProductionTime,
		}); err != nil {
			return err
		}
		if a.SellPrice > a.BasePrice {
			return fmt.Errorf(ErrFmtSellAboveBuy, ErrInvalidConfig, "animal", a.Code)
		}
	}

	for i := range config.Buildings {
		b := &config.Buildings[i]
		if err := checkCode(codes, "building", i, b.Code); err != nil {
			return err
		}
		if b.BasePrice < 0 {
			return fmt.Errorf(ErrFmtNegativeValue, ErrInvalidConfig, "building", b.Code, "base_price")
		}
		if err := validateLevels(b); err != nil {
			return err
		}
	}

	return nil
}

func checkCode(seen map[string]bool, kind string, index int, code string) error {
	if code == "" {
		return fmt.Errorf(ErrFmtEmptyCode, ErrInvalidConfig, kind, index)
	}
	if seen[code] {
		return fmt.Errorf(ErrFmtDuplicateCode, ErrDuplicateCode, code)
	}
	seen[code] = true
	return nil
}

func checkNonNegative(kind, code string, fields map[string]float64) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if fields[name] < 0 {
			return fmt.Errorf(ErrFmtNegativeValue, ErrInvalidConfig, kind, code, name)
		}
	}
	return nil
}

// validateLevels requires levels 1..max with no gaps
func validateLevels(b *domain.BuildingType) error {
	if _, ok := b.LevelConfig[1]; !ok {
		return fmt.Errorf(ErrFmtLevelConfigMissing, ErrInvalidConfig, b.Code)
	}
	maxLevel := 0
	for level, cfg := range b.LevelConfig {
		if level > maxLevel {
			maxLevel = level
		}
		if cfg.Capacity < 0 {
			return fmt.Errorf(ErrFmtNegativeValue, ErrInvalidConfig, "building", b.Code, "capacity")
		}
		if cfg.UpgradePrice < 0 {
			return fmt.Errorf(ErrFmtNegativeValue, ErrInvalidConfig, "building", b.Code, "upgrade_price")
		}
	}
	for level := 1; level <= maxLevel; level++ {
		if _, ok := b.LevelConfig[level]; !ok {
			return fmt.Errorf(ErrFmtLevelConfigGap, ErrInvalidConfig, b.Code, level)
		}
	}
	return nil
}

// SyncToDatabase upserts catalog entries that differ from the stored ones.
// It is a no-op when the file hash matches the last successful sync.
func (l *loader) SyncToDatabase(ctx context.Context, config *Config, repo repository.Catalog, configPath string) (*SyncResult, error) {
	log := logger.FromContext(ctx)

	fileHash, modTime, err := fileFingerprint(configPath)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCheckFileChange, err)
	}

	if !hasFileChanged(ctx, repo, fileHash, modTime) {
		log.Info(LogMsgConfigUnchanged, "path", configPath)
		return &SyncResult{}, nil
	}

	result := &SyncResult{}
	if err := syncSeeds(ctx, repo, config.Seeds, result); err != nil {
		return nil, err
	}
	if err := syncAnimals(ctx, repo, config.Animals, result); err != nil {
		return nil, err
	}
	if err := syncBuildings(ctx, repo, config.Buildings, result); err != nil {
		return nil, err
	}

	if err := repo.UpsertSyncMetadata(ctx, &domain.SyncMetadata{
		ConfigName:   ConfigName,
		LastSyncTime: time.Now(),
		FileHash:     fileHash,
		FileModTime:  modTime,
	}); err != nil {
		log.Warn(LogMsgUpdateMetadataFailed, "error", err)
	}

	log.Info(LogMsgSyncCompleted,
		"inserted", result.Inserted,
		"updated", result.Updated,
		"skipped", result.Skipped)

	return result, nil
}

func syncSeeds(ctx context.Context, repo repository.Catalog, seeds []domain.SeedType, result *SyncResult) error {
	existing, err := repo.ListSeedTypes(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgListExistingFailed, "seeds", err)
	}
	byCode := make(map[string]domain.SeedType, len(existing))
	for _, s := range existing {
		byCode[s.Code] = s
	}

	for i := range seeds {
		seed := &seeds[i]
		old, found := byCode[seed.Code]
		if found && reflect.DeepEqual(old, *seed) {
			result.Skipped++
			continue
		}
		if err := repo.UpsertSeedType(ctx, seed); err != nil {
			return fmt.Errorf(ErrFmtUpsertFailed, "seed", seed.Code, err)
		}
		countUpsert(ctx, result, found, "seed", seed.Code)
	}
	return nil
}

func syncAnimals(ctx context.Context, repo repository.Catalog, animals []domain.AnimalType, result *SyncResult) error {
	existing, err := repo.ListAnimalTypes(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgListExistingFailed, "animals", err)
	}
	byCode := make(map[string]domain.AnimalType, len(existing))
	for _, a := range existing {
		byCode[a.Code] = a
	}

	for i := range animals {
		animal := &animals[i]
		old, found := byCode[animal.Code]
		if found && reflect.DeepEqual(old, *animal) {
			result.Skipped++
			continue
		}
		if err := repo.UpsertAnimalType(ctx, animal); err != nil {
			return fmt.Errorf(ErrFmtUpsertFailed, "animal", animal.Code, err)
		}
		countUpsert(ctx, result, found, "animal", animal.Code)
	}
	return nil
}

func syncBuildings(ctx context.Context, repo repository.Catalog, buildings []domain.BuildingType, result *SyncResult) error {
	existing, err := repo.ListBuildingTypes(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgListExistingFailed, "buildings", err)
	}
	byCode := make(map[string]domain.BuildingType, len(existing))
	for _, b := range existing {
		byCode[b.Code] = b
	}

	for i := range buildings {
		building := &buildings[i]
		old, found := byCode[building.Code]
		if found && reflect.DeepEqual(old, *building) {
			result.Skipped++
			continue
		}
		if err := repo.UpsertBuildingType(ctx, building); err != nil {
			return fmt.Errorf(ErrFmtUpsertFailed, "building", building.Code, err)
		}
		countUpsert(ctx, result, found, "building", building.Code)
	}
	return nil
}

func countUpsert(ctx context.Context, result *SyncResult, existed bool, kind, code string) {
	if existed {
		result.Updated++
	} else {
		result.Inserted++
	}
	logger.FromContext(ctx).Info(LogMsgUpserted, "kind", kind, "code", code, "existed", existed)
}

func fileFingerprint(path string) (string, time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", time.Time{}, fmt.Errorf(ErrMsgStatConfigFileFailed, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", time.Time{}, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}
	sum := sha256.Sum256(data)
	// Postgres keeps microseconds
	return hex.EncodeToString(sum[:]), info.ModTime().UTC().Truncate(time.Microsecond), nil
}

// hasFileChanged treats a missing or unreadable sync record as a change
func hasFileChanged(ctx context.Context, repo repository.Catalog, fileHash string, modTime time.Time) bool {
	meta, err := repo.GetSyncMetadata(ctx, ConfigName)
	if err != nil || meta == nil {
		return true
	}
	return meta.FileHash != fileHash || !meta.FileModTime.Equal(modTime)
}
