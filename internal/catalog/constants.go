package catalog

import "time"

// ConfigName identifies the catalog file in sync metadata
const ConfigName = "catalog.yaml"

// SchemaName is the name the embedded schema is registered under
const SchemaName = "catalog.schema.json"

// Cache defaults
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 5 * time.Minute
)

// Cache key prefixes
const (
	kindSeed     = "seed"
	kindAnimal   = "animal"
	kindBuilding = "building"
)

// File operation error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read catalog file: %w"
	ErrMsgParseConfigFailed    = "failed to parse catalog: %w"
	ErrMsgStatConfigFileFailed = "failed to stat catalog file: %w"
	ErrMsgSchemaFailed         = "schema validation failed for %s: %w"
)

// Validation error fragments
const (
	ErrMsgConfigNil      = "config is nil"
	ErrMsgNoSeedsDefined = "no seeds defined"

	ErrFmtDuplicateCode      = "%w: '%s'"
	ErrFmtEmptyCode          = "%w: %s at index %d has empty code"
	ErrFmtNegativeValue      = "%w: %s '%s' has negative %s"
	ErrFmtLevelConfigMissing = "%w: building '%s' has no level 1"
	ErrFmtLevelConfigGap     = "%w: building '%s' is missing level %d"
	ErrFmtSellAboveBuy       = "%w: %s '%s' sells for more than it costs"
	ErrFmtUpsertFailed       = "failed to upsert %s '%s': %w"
	ErrMsgCheckFileChange    = "failed to check if catalog changed: %w"
	ErrMsgListExistingFailed = "failed to list existing %s: %w"
	ErrMsgLoadCatalogFailed  = "failed to load catalog: %w"
	ErrMsgRegisterSchemaFail = "failed to register catalog schema: %w"
)

// Log messages
const (
	LogMsgConfigUnchanged      = "Catalog file unchanged, skipping sync"
	LogMsgSyncCompleted        = "Catalog sync completed"
	LogMsgUpserted             = "Upserted catalog entry"
	LogMsgUpdateMetadataFailed = "Failed to update sync metadata"
)
