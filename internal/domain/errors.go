package domain

import "errors"

var (
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidOrderFormat   = errors.New("invalid order format")
	ErrOrderAlreadyExists   = errors.New("order already exists")
	ErrStorageNotConfigured = errors.New("storage not configured")
)
