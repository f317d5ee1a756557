package usecase

import "errors"

var (
	// ErrProductNotFound indicates that no product matched the given id.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidProduct indicates a product payload that failed validation.
	// The wrapped message is safe to show to the user.
	ErrInvalidProduct = errors.New("invalid product")
)
