package handlers

import (
	"net/http"

	"github.com/ghuser/laundry-inventory/pkg/httpx"
	pkgvalidator "github.com/ghuser/laundry-inventory/pkg/validator"
	appsvcs "github.com/ghuser/laundry-inventory/services/item/application/services"
)

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a new item.
//
//	@Summary		Create item
//	@Description	Creates an inventory item. Any id in the body is ignored; id and timestamps are assigned.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ItemRequest	true	"Item to create"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Create(r.Context(), req.draft())
	if err != nil {
		writeError(w, r, h.svc.Log, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(item))
}
