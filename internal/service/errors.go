package service

import "errors"

var (
	ErrAccessDenied       = errors.New("access denied")
	ErrEmptyCart          = errors.New("cannot place order with an empty cart")
	ErrProductUnavailable = errors.New("product is not available for purchase")
	ErrOrderNotCancelable = errors.New("order cannot be cancelled at its current status")
	ErrInvalidInput       = errors.New("invalid input")
)
