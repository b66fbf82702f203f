package cart

import "errors"

var (
	ErrUserNotAuthenticated = errors.New("user not authenticated")
	ErrInvalidQuantity      = errors.New("invalid cart quantity")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
)
