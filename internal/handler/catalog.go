package handler

import (
	"net/http"

	"github.com/osse101/PixelFarm_Go/internal/catalog"
)

// CatalogHandler serves shop definitions
type CatalogHandler struct {
	catalogSvc catalog.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogSvc catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// HandleGetCatalog returns every seed, animal and building type
// @Summary Get the shop catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 500 {object} ErrorResponse
// @Router /functions/v1/get_catalog [post]
func (h *CatalogHandler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, ErrMsgMethodNotAllowed)
		return
	}

	c, err := h.catalogSvc.Catalog(r.Context())
	if err != nil {
		respondServiceError(w, r, OpGetCatalog, err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: c})
}
