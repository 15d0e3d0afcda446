package domain

import "errors"

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItem indicates an item or draft violates domain constraints.
	ErrInvalidItem = errors.New("invalid item")

	// ErrInsufficientStock indicates a stock adjustment would drive quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)
