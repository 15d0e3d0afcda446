package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/laundry-inventory/pkg/httpx"
	appsvcs "github.com/ghuser/laundry-inventory/services/item/application/services"
)

// ListByCategoryHandler handles GET /items/category/{category} requests.
type ListByCategoryHandler struct {
	svc *appsvcs.Services
}

// NewListByCategoryHandler returns a ListByCategoryHandler backed by the given services.
func NewListByCategoryHandler(svc *appsvcs.Services) *ListByCategoryHandler {
	return &ListByCategoryHandler{svc: svc}
}

// Execute lists items in a category.
//
//	@Summary		List items by category
//	@Description	Exact, case-sensitive category match
//	@Tags			items
//	@Produce		json
//	@Param			category	path	string	true	"Category"
//	@Success		200			{array}	ItemResponse
//	@Router			/items/category/{category} [get]
func (h *ListByCategoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	// chi routes on RawPath when it is set, leaving the param escaped.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(category); err == nil {
			category = unescaped
		}
	}

	items, err := h.svc.Item.ListByCategory(r.Context(), category)
	if err != nil {
		writeError(w, r, h.svc.Log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponses(items))
}
