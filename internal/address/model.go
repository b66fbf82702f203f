package address

import "time"

// Address is a customer delivery address. Orders reference an address by
// id; the region drives shipping-fee lookup.
type Address struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	Region    string    `json:"region"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type AddressInput struct {
	FullName string `json:"full_name"`
	Street   string `json:"street"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Phone    string `json:"phone"`
}
