package handler

import (
	"context"
	"net/http"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/farm"
)

// FarmHandler handles planting, harvesting and plot requests
type FarmHandler struct {
	farmSvc farm.Service
}

// NewFarmHandler creates a new FarmHandler
func NewFarmHandler(farmSvc farm.Service) *FarmHandler {
	return &FarmHandler{farmSvc: farmSvc}
}

// HandlePlantSeed plants a seed on an unlocked empty plot
// @Summary Plant a seed
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlantSeedRequest true "Plot and seed"
// @Success 200 {object} domain.PlantResult
// @Failure 400 {object} ErrorResponse "Locked plot, occupied plot or not enough coins"
// @Failure 404 {object} ErrorResponse
// @Router /functions/v1/plant_seed [post]
func (h *FarmHandler) HandlePlantSeed(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpPlantSeed,
		func(ctx context.Context, req PlantSeedRequest) (*domain.PlantResult, error) {
			return h.farmSvc.PlantSeed(ctx, req.UserID, req.PlotID, req.SeedCode)
		}, nil)
}

// HandleHarvestCrop harvests a ready crop
// @Summary Harvest a crop
// @Tags farm
// @Accept json
// @Produce json
// @Param request body HarvestCropRequest true "Crop"
// @Success 200 {object} domain.HarvestResult
// @Failure 400 {object} ErrorResponse "Crop is not ready"
// @Failure 404 {object} ErrorResponse
// @Router /functions/v1/harvest_crop [post]
func (h *FarmHandler) HandleHarvestCrop(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpHarvestCrop,
		func(ctx context.Context, req HarvestCropRequest) (*domain.HarvestResult, error) {
			return h.farmSvc.HarvestCrop(ctx, req.UserID, req.CropID)
		}, nil)
}

// HandleUnlockPlot unlocks a locked plot
// @Summary Unlock a plot
// @Tags farm
// @Accept json
// @Produce json
// @Param request body UnlockPlotRequest true "Plot"
// @Success 200 {object} domain.UnlockResult
// @Failure 400 {object} ErrorResponse "Already unlocked or not enough coins"
// @Failure 404 {object} ErrorResponse
// @Router /functions/v1/unlock_plot [post]
func (h *FarmHandler) HandleUnlockPlot(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpUnlockPlot,
		func(ctx context.Context, req UnlockPlotRequest) (*domain.UnlockResult, error) {
			return h.farmSvc.UnlockPlot(ctx, req.UserID, req.PlotID)
		}, nil)
}

// HandleGetFarmState returns plots with crop progress and stats
// @Summary Get farm state
// @Tags farm
// @Accept json
// @Produce json
// @Param request body UserRequest true "User"
// @Success 200 {object} domain.FarmState
// @Router /functions/v1/get_farm_state [post]
func (h *FarmHandler) HandleGetFarmState(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpGetFarmState,
		func(ctx context.Context, req UserRequest) (*domain.FarmState, error) {
			return h.farmSvc.GetFarmState(ctx, req.UserID)
		}, nil)
}
