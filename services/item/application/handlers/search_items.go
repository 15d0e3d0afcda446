package handlers

import (
	"net/http"

	"github.com/ghuser/laundry-inventory/pkg/httpx"
	appsvcs "github.com/ghuser/laundry-inventory/services/item/application/services"
)

// SearchItemsHandler handles GET /items/search requests.
type SearchItemsHandler struct {
	svc *appsvcs.Services
}

// NewSearchItemsHandler returns a SearchItemsHandler backed by the given services.
func NewSearchItemsHandler(svc *appsvcs.Services) *SearchItemsHandler {
	return &SearchItemsHandler{svc: svc}
}

// Execute searches items by name.
//
//	@Summary		Search items
//	@Description	Case-insensitive substring match on item name. An empty query matches every item.
//	@Tags			items
//	@Produce		json
//	@Param			query	query		string	true	"Name fragment"
//	@Success		200		{array}		ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/items/search [get]
func (h *SearchItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("query") {
		httpx.JSONError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	items, err := h.svc.Item.Search(r.Context(), q.Get("query"))
	if err != nil {
		writeError(w, r, h.svc.Log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponses(items))
}
