package handlers

import (
	"net/http"
	"strconv"

	"github.com/ghuser/laundry-inventory/pkg/httpx"
	appsvcs "github.com/ghuser/laundry-inventory/services/item/application/services"
)

// ListStockAtMostHandler handles GET /items/stock-at-most requests.
type ListStockAtMostHandler struct {
	svc *appsvcs.Services
}

// NewListStockAtMostHandler returns a ListStockAtMostHandler backed by the given services.
func NewListStockAtMostHandler(svc *appsvcs.Services) *ListStockAtMostHandler {
	return &ListStockAtMostHandler{svc: svc}
}

// Execute lists items holding at most the given quantity.
//
//	@Summary	List items by maximum quantity
//	@Tags		items
//	@Produce	json
//	@Param		quantity	query		int	true	"Maximum quantity (>= 0)"
//	@Success	200			{array}		ItemResponse
//	@Failure	400			{object}	ErrorResponse
//	@Router		/items/stock-at-most [get]
func (h *ListStockAtMostHandler) Execute(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil || n < 0 {
		httpx.JSONError(w, http.StatusBadRequest, "quantity must be a non-negative integer")
		return
	}

	items, err := h.svc.Item.ListByQuantityAtMost(r.Context(), n)
	if err != nil {
		writeError(w, r, h.svc.Log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponses(items))
}
