// Package growth computes crop growth from wall-clock time. Nothing in it
// touches storage; callers decide whether to persist a derived status.
package growth

import (
	"math"
	"time"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// Progress is the visual growth state of a crop at a given instant
type Progress struct {
	Stage            domain.GrowthStage `json:"stage"`
	ProgressPct      int                `json:"progressPct"`
	RemainingSeconds int                `json:"remainingSeconds"`
}

// StageOf maps a planting window and an instant to a visual stage,
// a completion percentage clamped to [0,100] and the whole seconds left.
// A zero or negative window is treated as fully grown.
func StageOf(plantedAt, readyAt, now time.Time) Progress {
	total := readyAt.Sub(plantedAt)
	if total <= 0 {
		return Progress{Stage: domain.StagePlant, ProgressPct: 100}
	}

	elapsed := now.Sub(plantedAt)

	pct := int(math.Round(100 * float64(elapsed) / float64(total)))
	pct = min(max(pct, 0), 100)

	remaining := int(math.Round(readyAt.Sub(now).Seconds()))
	remaining = max(remaining, 0)

	return Progress{
		Stage:            stageFor(elapsed, total),
		ProgressPct:      pct,
		RemainingSeconds: remaining,
	}
}

// stageFor buckets elapsed time into thirds of the window.
// The "plant" stage starts at two thirds, before the crop is harvestable.
func stageFor(elapsed, total time.Duration) domain.GrowthStage {
	switch {
	case 3*elapsed < total:
		return domain.StageSeedling
	case 3*elapsed < 2*total:
		return domain.StageHalfway
	default:
		return domain.StagePlant
	}
}

// DeriveStatus returns the logical status of a crop at now. The stored
// status is only a cache: a growing crop whose ReadyAt has passed is ready
// whether or not the row has been promoted yet.
func DeriveStatus(crop *domain.Crop, now time.Time) domain.CropStatus {
	switch {
	case crop.Status == domain.CropStatusWithered:
		return domain.CropStatusWithered
	case crop.Status == domain.CropStatusReady:
		return domain.CropStatusReady
	case !now.Before(crop.ReadyAt):
		return domain.CropStatusReady
	default:
		return domain.CropStatusGrowing
	}
}

// IsHarvestable reports whether the crop can be harvested at now
func IsHarvestable(crop *domain.Crop, now time.Time) bool {
	return DeriveStatus(crop, now) == domain.CropStatusReady
}

// NeedsPromotion reports whether the stored status lags the derived one
func NeedsPromotion(crop *domain.Crop, now time.Time) bool {
	return crop.Status == domain.CropStatusGrowing && DeriveStatus(crop, now) == domain.CropStatusReady
}

// ReadyAt returns the instant a seed planted at plantedAt becomes ready.
// growthHours may be fractional.
func ReadyAt(plantedAt time.Time, growthHours float64) time.Time {
	return plantedAt.Add(time.Duration(growthHours * float64(time.Hour)))
}
