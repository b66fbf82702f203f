package shipping

import "time"

// ShippingZone maps a destination region to a flat delivery fee in naira.
type ShippingZone struct {
	ID        string    `json:"id"`
	Region    string    `json:"region"`
	Fee       int64     `json:"fee"`
	CreatedAt time.Time `json:"created_at"`
}

type ZoneInput struct {
	Region string `json:"region"`
	Fee    int64  `json:"fee"`
}
