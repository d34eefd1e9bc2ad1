package handler

import (
	"context"
	"net/http"

	"github.com/osse101/PixelFarm_Go/internal/building"
	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// BuildingHandler handles building and animal requests
type BuildingHandler struct {
	buildingSvc building.Service
}

// NewBuildingHandler creates a new BuildingHandler
func NewBuildingHandler(buildingSvc building.Service) *BuildingHandler {
	return &BuildingHandler{buildingSvc: buildingSvc}
}

// HandlePurchaseBuilding buys a building at level 1
// @Summary Purchase a building
// @Tags building
// @Accept json
// @Produce json
// @Param request body BuildingRequest true "Building"
// @Success 200 {object} domain.BuildingPurchaseResult
// @Failure 400 {object} ErrorResponse "Already owned, level locked or not enough coins"
// @Failure 404 {object} ErrorResponse
// @Router /functions/v1/purchase_building [post]
func (h *BuildingHandler) HandlePurchaseBuilding(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpPurchaseBuilding,
		func(ctx context.Context, req BuildingRequest) (*domain.BuildingPurchaseResult, error) {
			return h.buildingSvc.PurchaseBuilding(ctx, req.UserID, req.BuildingCode)
		}, nil)
}

// HandleUpgradeBuilding raises an owned building one level
// @Summary Upgrade a building
// @Tags building
// @Accept json
// @Produce json
// @Param request body BuildingRequest true "Building"
// @Success 200 {object} domain.BuildingUpgradeResult
// @Failure 400 {object} ErrorResponse "Max level or not enough coins"
// @Failure 404 {object} ErrorResponse "Building not owned"
// @Router /functions/v1/upgrade_building [post]
func (h *BuildingHandler) HandleUpgradeBuilding(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpUpgradeBuilding,
		func(ctx context.Context, req BuildingRequest) (*domain.BuildingUpgradeResult, error) {
			return h.buildingSvc.UpgradeBuilding(ctx, req.UserID, req.BuildingCode)
		}, nil)
}

// HandleGetUserBuildings lists owned buildings with their current capacity
// @Summary List user buildings
// @Tags building
// @Accept json
// @Produce json
// @Param request body UserRequest true "User"
// @Success 200 {object} DataResponse
// @Router /functions/v1/get_user_buildings [post]
func (h *BuildingHandler) HandleGetUserBuildings(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpGetBuildings,
		func(ctx context.Context, req UserRequest) ([]domain.UserBuildingDetail, error) {
			return h.buildingSvc.ListUserBuildings(ctx, req.UserID)
		},
		func(b []domain.UserBuildingDetail) interface{} { return DataResponse{Data: b} },
	)
}

// HandleGetUserAnimals lists owned animals joined with their type
// @Summary List user animals
// @Tags building
// @Accept json
// @Produce json
// @Param request body UserRequest true "User"
// @Success 200 {object} DataResponse
// @Router /functions/v1/get_user_animals [post]
func (h *BuildingHandler) HandleGetUserAnimals(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpGetAnimals,
		func(ctx context.Context, req UserRequest) ([]domain.UserAnimal, error) {
			return h.buildingSvc.ListUserAnimals(ctx, req.UserID)
		},
		func(a []domain.UserAnimal) interface{} { return DataResponse{Data: a} },
	)
}
