package category

import "time"

type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Image        *string   `json:"image,omitempty"`
	ProductCount int64     `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type CategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}
