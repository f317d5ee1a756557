package usecase

import "errors"

var (
	// ErrFarmNotFound indicates that no farm matched the given id.
	ErrFarmNotFound = errors.New("farm not found")

	// ErrInvalidFarm indicates a farm payload that failed validation.
	// The wrapped message is safe to show to the user.
	ErrInvalidFarm = errors.New("invalid farm")
)
