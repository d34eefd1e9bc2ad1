package domain

import "time"

// CropStatus is the logical lifecycle state of a planted crop
type CropStatus string

const (
	CropStatusGrowing  CropStatus = "growing"
	CropStatusReady    CropStatus = "ready"
	CropStatusWithered CropStatus = "withered"
)

// GrowthStage is the visual stage of a crop, independent from CropStatus
type GrowthStage string

const (
	StageSeedling GrowthStage = "seedling"
	StageHalfway  GrowthStage = "halfway"
	StagePlant    GrowthStage = "plant"
)

// FarmPlot is one slot of a user's farm grid
type FarmPlot struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	PlotNumber int        `json:"plot_number"`
	PositionX  *int       `json:"position_x"`
	PositionY  *int       `json:"position_y"`
	IsUnlocked bool       `json:"is_unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at"`
}

// Crop is the active planting on a plot. At most one exists per plot.
type Crop struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	PlotID     string     `json:"plot_id"`
	SeedCode   string     `json:"seed_code"`
	PlantedAt  time.Time  `json:"planted_at"`
	ReadyAt    time.Time  `json:"ready_at"`
	Status     CropStatus `json:"status"`
	WitheredAt *time.Time `json:"withered_at,omitempty"`
}

// PlotWithCrop is a plot joined with its crop and the crop's seed type
type PlotWithCrop struct {
	Plot FarmPlot
	Crop *Crop
	Seed *SeedType
}
