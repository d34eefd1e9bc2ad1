package domain

import (
	"encoding/json"
	"time"
)

// GameState is the authoritative read model a client renders from. It is
// assembled server-side and replaced wholesale client-side.
type GameState struct {
	User      *User           `json:"user"`
	Inventory []InventoryItem `json:"inventory"`
	Farm      FarmSnapshot    `json:"farm"`
}

// FarmSnapshot holds every plot of a user's farm ordered by plot number
type FarmSnapshot struct {
	Plots []PlotSnapshot `json:"plots"`
}

// PlotSnapshot is a plot row with its crop, if any
type PlotSnapshot struct {
	FarmPlot
	Crop *CropSnapshot `json:"user_crops"`
}

// CropSnapshot is the crop portion of a PlotSnapshot
type CropSnapshot struct {
	ID        string       `json:"id"`
	SeedCode  string       `json:"seed_code"`
	PlantedAt time.Time    `json:"planted_at"`
	ReadyAt   time.Time    `json:"ready_at"`
	Status    CropStatus   `json:"status"`
	SeedType  *SeedSummary `json:"seed_types"`
}

// SeedSummary is the subset of a seed type embedded in crop snapshots
type SeedSummary struct {
	Name       string  `json:"name"`
	Icon       *string `json:"icon,omitempty"`
	GrowthTime float64 `json:"growth_time"`
}

// ActionType names a queued player action
type ActionType string

const (
	ActionPlantSeed   ActionType = "PLANT_SEED"
	ActionHarvestCrop ActionType = "HARVEST_CROP"
	ActionBuyItem     ActionType = "BUY_ITEM"
	ActionSellItem    ActionType = "SELL_ITEM"
	ActionUnlockPlot  ActionType = "UNLOCK_PLOT"
)

// GameAction is a player action buffered on the client until autosave.
// Timestamp is unix milliseconds.
type GameAction struct {
	ID        string          `json:"id"`
	Type      ActionType      `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

// PlantSeedPayload is the payload of a PLANT_SEED action
type PlantSeedPayload struct {
	PlotID   string `json:"plotId"`
	SeedCode string `json:"seedCode"`
}

// HarvestCropPayload is the payload of a HARVEST_CROP action
type HarvestCropPayload struct {
	CropID string `json:"cropId"`
}

// TradePayload is the payload of BUY_ITEM and SELL_ITEM actions
type TradePayload struct {
	ItemCode string   `json:"itemCode"`
	ItemType ItemType `json:"itemType"`
	Quantity int      `json:"quantity"`
}

// UnlockPlotPayload is the payload of an UNLOCK_PLOT action
type UnlockPlotPayload struct {
	PlotID string `json:"plotId"`
}

// AutosaveResponse is the result of applying a batch of queued actions.
// SyncedAt is unix milliseconds.
type AutosaveResponse struct {
	Success             bool                 `json:"success"`
	State               *GameState           `json:"state"`
	SyncedAt            int64                `json:"syncedAt"`
	ConflictResolutions []ConflictResolution `json:"conflictResolutions,omitempty"`
}

// ConflictResolution reports a queued action the server refused
type ConflictResolution struct {
	ActionID    string `json:"actionId"`
	Reason      string `json:"reason"`
	ServerValue any    `json:"serverValue"`
	ClientValue any    `json:"clientValue"`
}
