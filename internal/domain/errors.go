package domain

import "errors"

// Sentinel errors for domain-level error handling. Callers match
// against these with errors.Is.
var (
	ErrInvalidOrder  = errors.New("invalid_order")
	ErrOrderNotFound = errors.New("order_not_found")
)
