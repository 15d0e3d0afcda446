// Package services contains stateless domain services for the item bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond the domain layer.
package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ghuser/laundry-inventory/services/item/domain/models"
)

// ValidateName enforces business rules for ItemName beyond the structural
// constraints enforced by the ItemName constructor (length 1–255).
//
// Surrounding whitespace is kept as given. The name must contain a
// non-space character and no control characters (Unicode category Cc).
func ValidateName(name models.ItemName) error {
	s := name.String()

	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("item name must not be only whitespace")
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("item name must not contain control characters")
		}
	}

	return nil
}

// ValidateDraft checks every field of a creation or replacement draft.
// All violations are reported together.
func ValidateDraft(d models.Draft) error {
	var errs []error

	name, err := models.NewItemName(d.Name)
	if err != nil {
		errs = append(errs, err)
	} else if err := ValidateName(name); err != nil {
		errs = append(errs, err)
	}

	if strings.TrimSpace(d.Category) == "" {
		errs = append(errs, fmt.Errorf("category is required"))
	}
	if strings.TrimSpace(d.Unit) == "" {
		errs = append(errs, fmt.Errorf("unit is required"))
	}
	if d.Quantity < 0 {
		errs = append(errs, fmt.Errorf("quantity must not be negative"))
	}
	if d.Quantity > models.MaxQuantity {
		errs = append(errs, fmt.Errorf("quantity must not exceed %d", models.MaxQuantity))
	}
	if d.MinimumStock.Valid && d.MinimumStock.V < 0 {
		errs = append(errs, fmt.Errorf("minimum stock must not be negative"))
	}
	if d.MinimumStock.Valid && d.MinimumStock.V > models.MaxQuantity {
		errs = append(errs, fmt.Errorf("minimum stock must not exceed %d", models.MaxQuantity))
	}
	if d.PricePerUnit.Valid && d.PricePerUnit.Decimal.IsNegative() {
		errs = append(errs, fmt.Errorf("price per unit must not be negative"))
	}

	return errors.Join(errs...)
}

// ValidateItemForSave performs the checks an Item aggregate must pass before
// it is persisted, whether newly created or replaced.
func ValidateItemForSave(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}

	if err := ValidateName(item.Name); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	if item.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}

	if item.CreatedAt.IsZero() || item.UpdatedAt.IsZero() {
		return fmt.Errorf("timestamps must be set")
	}

	if item.UpdatedAt.Before(item.CreatedAt) {
		return fmt.Errorf("updated_at must not precede created_at")
	}

	return nil
}
