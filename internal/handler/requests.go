package handler

import "github.com/osse101/PixelFarm_Go/internal/domain"

// UserRequest identifies the acting user
type UserRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

func (r *UserRequest) scopeUserID() string { return r.UserID }

// CreateUserRequest represents the body of create_new_user
type CreateUserRequest struct {
	UserRequest
	Name string `json:"name" validate:"max=128"`
}

// UpdateUserRequest represents the body of update_user_data
type UpdateUserRequest struct {
	UserRequest
	Name string `json:"name" validate:"required,max=128"`
}

// PlantSeedRequest represents the body of plant_seed
type PlantSeedRequest struct {
	UserRequest
	PlotID   string `json:"plotId" validate:"required,uuid"`
	SeedCode string `json:"seedCode" validate:"required,max=64"`
}

// HarvestCropRequest represents the body of harvest_crop
type HarvestCropRequest struct {
	UserRequest
	CropID string `json:"cropId" validate:"required,uuid"`
}

// UnlockPlotRequest represents the body of unlock_plot
type UnlockPlotRequest struct {
	UserRequest
	PlotID string `json:"plotId" validate:"required,uuid"`
}

// TradeRequest represents the body of purchase_item and sell_item
type TradeRequest struct {
	UserRequest
	ItemType domain.ItemType `json:"itemType" validate:"required,tradable"`
	ItemCode string          `json:"itemCode" validate:"required,max=64"`
	Quantity int             `json:"quantity" validate:"required,gt=0,max=10000"`
}

// BuildingRequest represents the body of purchase_building and upgrade_building
type BuildingRequest struct {
	UserRequest
	BuildingCode string `json:"buildingCode" validate:"required,max=64"`
}

// AutosaveRequest represents the body of autosave
type AutosaveRequest struct {
	UserRequest
	Actions []domain.GameAction `json:"actions" validate:"max=500"`
}
