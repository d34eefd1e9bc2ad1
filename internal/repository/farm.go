package repository

import (
	"context"
	"time"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// Farm defines the interface for plot and crop persistence
type Farm interface {
	// GetFarm returns every plot of the user ordered by plot number,
	// with the plot's crop and seed type when planted
	GetFarm(ctx context.Context, userID string) ([]domain.PlotWithCrop, error)

	// MarkCropsReady promotes growing crops to ready. Crops that are no
	// longer growing are left untouched. Returns the number of rows changed.
	MarkCropsReady(ctx context.Context, cropIDs []string) (int64, error)

	BeginTx(ctx context.Context) (FarmTx, error)
}

// FarmTx defines the interface for planting, harvesting and unlocking
type FarmTx interface {
	WalletTx
	InventoryTx

	// GetPlotForUpdate locks a plot owned by the user. Returns domain.ErrPlotNotFound.
	GetPlotForUpdate(ctx context.Context, userID, plotID string) (*domain.FarmPlot, error)

	// GetCropByPlot returns the crop on a plot, or nil if the plot is empty
	GetCropByPlot(ctx context.Context, plotID string) (*domain.Crop, error)

	// GetCropForUpdate locks a crop owned by the user. Returns domain.ErrCropNotFound.
	GetCropForUpdate(ctx context.Context, userID, cropID string) (*domain.Crop, error)

	// InsertCrop stores a new crop. Returns domain.ErrCropAlreadyPlanted if
	// the plot is already occupied.
	InsertCrop(ctx context.Context, crop *domain.Crop) error

	// DeleteCrop removes a harvested crop
	DeleteCrop(ctx context.Context, cropID string) error

	// UnlockPlot marks the plot unlocked and returns the updated row
	UnlockPlot(ctx context.Context, plotID string, at time.Time) (*domain.FarmPlot, error)
}
