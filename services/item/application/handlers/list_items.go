package handlers

import (
	"net/http"

	"github.com/ghuser/laundry-inventory/pkg/httpx"
	appsvcs "github.com/ghuser/laundry-inventory/services/item/application/services"
)

// ListItemsHandler handles GET /items requests.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

// Execute lists every item.
//
//	@Summary		List items
//	@Description	Returns every inventory item ordered by id
//	@Tags			items
//	@Produce		json
//	@Success		200	{array}		ItemResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.List(r.Context())
	if err != nil {
		writeError(w, r, h.svc.Log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponses(items))
}
