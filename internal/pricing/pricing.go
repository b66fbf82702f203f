package pricing

import "context"

// RateLookup resolves a destination region to a flat shipping fee.
// shipping.Service satisfies this.
type RateLookup interface {
	FeeFor(ctx context.Context, region string) int64
}

type LineItem struct {
	ProductID string
	Quantity  int
	UnitPrice int64
}

type Quote struct {
	Subtotal     int64 `json:"subtotal"`
	ShippingCost int64 `json:"shipping_cost"`
	Discount     int64 `json:"discount"`
	Total        int64 `json:"total"`
}

// Promo codes are an exact-match table. Unrecognized codes discount
// nothing rather than failing checkout.
const (
	PromoWelcome10 = "WELCOME10"
	PromoSave5000  = "SAVE5000"

	save5000Amount = 5000
)

type Calculator struct {
	rates RateLookup
	// Orders with a subtotal above this ship for free.
	freeShippingThreshold int64
}

func NewCalculator(rates RateLookup, freeShippingThreshold int64) *Calculator {
	return &Calculator{
		rates:                 rates,
		freeShippingThreshold: freeShippingThreshold,
	}
}

// Quote derives subtotal, shipping, discount and total for a cart. It
// always produces a value; total == subtotal + shipping - discount holds
// by construction.
func (c *Calculator) Quote(ctx context.Context, items []LineItem, region, promoCode string) Quote {
	var subtotal int64
	for _, item := range items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}

	var shipping int64
	if subtotal <= c.freeShippingThreshold {
		shipping = c.rates.FeeFor(ctx, region)
	}

	discount := discountFor(promoCode, subtotal)
	if discount > subtotal {
		discount = subtotal
	}

	return Quote{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Discount:     discount,
		Total:        subtotal + shipping - discount,
	}
}

func discountFor(code string, subtotal int64) int64 {
	switch code {
	case PromoWelcome10:
		return subtotal / 10
	case PromoSave5000:
		return save5000Amount
	default:
		return 0
	}
}
