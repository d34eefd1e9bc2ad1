package handler

import (
	"context"
	"net/http"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/economy"
)

// EconomyHandler handles shop purchases and sales
type EconomyHandler struct {
	economySvc economy.Service
}

// NewEconomyHandler creates a new EconomyHandler
func NewEconomyHandler(economySvc economy.Service) *EconomyHandler {
	return &EconomyHandler{economySvc: economySvc}
}

// HandlePurchaseItem buys seeds or animals
// @Summary Purchase an item
// @Tags economy
// @Accept json
// @Produce json
// @Param request body TradeRequest true "Item and quantity"
// @Success 200 {object} domain.PurchaseResult
// @Failure 400 {object} ErrorResponse "Not enough coins or level requirement not met"
// @Failure 404 {object} ErrorResponse
// @Router /functions/v1/purchase_item [post]
func (h *EconomyHandler) HandlePurchaseItem(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpPurchaseItem,
		func(ctx context.Context, req TradeRequest) (*domain.PurchaseResult, error) {
			return h.economySvc.PurchaseItem(ctx, req.UserID, req.ItemType, req.ItemCode, req.Quantity)
		}, nil)
}

// HandleSellItem sells seeds or animals from inventory
// @Summary Sell an item
// @Tags economy
// @Accept json
// @Produce json
// @Param request body TradeRequest true "Item and quantity"
// @Success 200 {object} domain.SellResult
// @Failure 400 {object} ErrorResponse "Not enough quantity in inventory"
// @Failure 404 {object} ErrorResponse
// @Router /functions/v1/sell_item [post]
func (h *EconomyHandler) HandleSellItem(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpSellItem,
		func(ctx context.Context, req TradeRequest) (*domain.SellResult, error) {
			return h.economySvc.SellItem(ctx, req.UserID, req.ItemType, req.ItemCode, req.Quantity)
		}, nil)
}
