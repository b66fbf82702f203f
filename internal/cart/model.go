package cart

import "time"

// CartItem is a server-side cart row, keyed by (user, product).
type CartItem struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name,omitempty"`
	ProductPrice int64     `json:"product_price,omitempty"`
	Quantity     int       `json:"quantity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type AddItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpdateItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
