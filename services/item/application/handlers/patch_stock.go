package handlers

import (
	"errors"
	"net/http"

	"github.com/ghuser/laundry-inventory/pkg/httpx"
	pkgvalidator "github.com/ghuser/laundry-inventory/pkg/validator"
	appsvcs "github.com/ghuser/laundry-inventory/services/item/application/services"
	itemdomain "github.com/ghuser/laundry-inventory/services/item/domain"
)

// PatchStockHandler handles PATCH /items/{id}/stock requests.
type PatchStockHandler struct {
	svc *appsvcs.Services
}

// NewPatchStockHandler returns a PatchStockHandler backed by the given services.
func NewPatchStockHandler(svc *appsvcs.Services) *PatchStockHandler {
	return &PatchStockHandler{svc: svc}
}

// Execute applies a signed stock delta.
//
//	@Summary		Adjust stock
//	@Description	Adds quantityChange to the item's quantity. Rejected with 400, leaving the item unchanged, when the item does not exist or the result would be negative.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Item ID"
//	@Param			request	body		StockAdjustmentRequest	true	"Stock delta"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/items/{id}/stock [patch]
func (h *PatchStockHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, ok := pkgvalidator.ValidateRequest[StockAdjustmentRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.AdjustStock(r.Context(), id, *req.QuantityChange)
	if errors.Is(err, itemdomain.ErrItemNotFound) {
		writeErrorStatus(w, r, h.svc.Log, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, r, h.svc.Log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(item))
}
