package handlers

import (
	"net/http"

	"github.com/ghuser/laundry-inventory/pkg/httpx"
	appsvcs "github.com/ghuser/laundry-inventory/services/item/application/services"
)

// ListLowStockHandler handles GET /items/low-stock requests.
type ListLowStockHandler struct {
	svc *appsvcs.Services
}

// NewListLowStockHandler returns a ListLowStockHandler backed by the given services.
func NewListLowStockHandler(svc *appsvcs.Services) *ListLowStockHandler {
	return &ListLowStockHandler{svc: svc}
}

// Execute lists items at or below their minimum stock.
//
//	@Summary		List low-stock items
//	@Description	Items with a minimum stock set and quantity at or below it. Items without a threshold are never listed.
//	@Tags			items
//	@Produce		json
//	@Success		200	{array}	ItemResponse
//	@Router			/items/low-stock [get]
func (h *ListLowStockHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.ListLowStock(r.Context())
	if err != nil {
		writeError(w, r, h.svc.Log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponses(items))
}
