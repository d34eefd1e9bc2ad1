package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/PixelFarm_Go/internal/catalog"
	"github.com/osse101/PixelFarm_Go/internal/repository"
)

// SyncCatalog loads, validates, and syncs the catalog file to the database.
// It handles the complete lifecycle: load YAML → validate → sync to DB → log results.
// Uses hash-based change detection to skip the sync if the file is unchanged.
func SyncCatalog(ctx context.Context, catalogRepo repository.Catalog, path string) error {
	slog.Info(LogMsgSyncingCatalog, "path", path)
	loader := catalog.NewLoader()

	cfg, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	if err := loader.Validate(cfg); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, err)
	}

	result, err := loader.SyncToDatabase(ctx, cfg, catalogRepo, path)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSyncCatalog, err)
	}

	if result.Inserted > 0 || result.Updated > 0 {
		slog.Info(LogMsgCatalogSynced,
			"inserted", result.Inserted,
			"updated", result.Updated,
			"skipped", result.Skipped)
	} else {
		slog.Info(LogMsgCatalogUnchanged)
	}

	return nil
}
