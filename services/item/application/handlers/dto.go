package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghuser/laundry-inventory/services/item/domain/models"
)

func init() {
	// Prices are JSON numbers on the wire, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ItemRequest is the request body for POST /items and PUT /items/{id}.
// PUT replaces the whole record: optional fields left out are cleared.
// A client-supplied id is ignored.
type ItemRequest struct {
	Name         string           `json:"name"         validate:"required,notblank,max=255"      example:"Bleach"`
	Category     string           `json:"category"     validate:"required,notblank"              example:"Detergent"`
	Quantity     *int             `json:"quantity"     validate:"required,gte=0,max=2147483647"  example:"10"`
	Unit         string           `json:"unit"         validate:"required,notblank"              example:"liters"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit" swaggertype:"number"                      example:"3.75"`
	MinimumStock *int             `json:"minimumStock" validate:"omitempty,gte=0,max=2147483647" example:"5"`
	Supplier     *string          `json:"supplier"                                               example:"CleanCo"`
	Description  *string          `json:"description"                                            example:"Chlorine bleach, 5L jugs"`
} // @name ItemRequest

func (r *ItemRequest) draft() models.Draft {
	d := models.Draft{
		Name:         r.Name,
		Category:     r.Category,
		Unit:         r.Unit,
		MinimumStock: models.NullOf(r.MinimumStock),
		Supplier:     models.NullOf(r.Supplier),
		Description:  models.NullOf(r.Description),
	}
	if r.Quantity != nil {
		d.Quantity = *r.Quantity
	}
	if r.PricePerUnit != nil {
		d.PricePerUnit = decimal.NewNullDecimal(*r.PricePerUnit)
	}
	return d
}

// StockAdjustmentRequest is the request body for PATCH /items/{id}/stock.
// Positive values record a receipt, negative values record consumption.
type StockAdjustmentRequest struct {
	QuantityChange *int `json:"quantityChange" validate:"required,min=-2147483648,max=2147483647" example:"-3"`
} // @name StockAdjustmentRequest

// ItemResponse is the JSON representation of an inventory item.
// Unset optional fields are null.
type ItemResponse struct {
	ID           int64            `json:"id"           example:"1"`
	Name         string           `json:"name"         example:"Bleach"`
	Category     string           `json:"category"     example:"Detergent"`
	Quantity     int              `json:"quantity"     example:"10"`
	Unit         string           `json:"unit"         example:"liters"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit" swaggertype:"number" example:"3.75"`
	MinimumStock *int             `json:"minimumStock" example:"5"`
	Supplier     *string          `json:"supplier"     example:"CleanCo"`
	Description  *string          `json:"description"`
	CreatedAt    time.Time        `json:"createdAt"    example:"2025-03-01T09:00:00Z"`
	UpdatedAt    time.Time        `json:"updatedAt"    example:"2025-03-01T09:00:00Z"`
} // @name ItemResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

func toResponse(item *models.Item) ItemResponse {
	resp := ItemResponse{
		ID:           item.ID,
		Name:         item.Name.String(),
		Category:     item.Category,
		Quantity:     item.Quantity,
		Unit:         item.Unit,
		MinimumStock: models.Ptr(item.MinimumStock),
		Supplier:     models.Ptr(item.Supplier),
		Description:  models.Ptr(item.Description),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
	if item.PricePerUnit.Valid {
		p := item.PricePerUnit.Decimal
		resp.PricePerUnit = &p
	}
	return resp
}

// toResponses never returns nil so empty lists encode as [].
func toResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toResponse(item))
	}
	return out
}
