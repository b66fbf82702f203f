package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUExists       = errors.New("sku already in use")
	ErrInvalidInput    = errors.New("invalid product input")
)
