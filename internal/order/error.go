package order

import "errors"

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUnknownAddress    = errors.New("address not found")
	ErrEmptyItems        = errors.New("order must contain at least one item")
	ErrInvalidQuantity   = errors.New("item quantity must be at least 1")
	ErrProofRequired     = errors.New("payment proof is required for bank transfer")
	ErrInvalidMethod     = errors.New("unknown payment method")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrTrackingRequired  = errors.New("tracking number is required to mark an order shipped")
	ErrTrackingQuery     = errors.New("order number and email are required")
	ErrRefConflict       = errors.New("order reference collision")
	ErrOutOfStock        = errors.New("insufficient inventory")
)
