package order

import (
	"time"

	"emeraldscents-be/internal/address"
)

type Status string

const (
	// Hosted-gateway checkout, awaiting the provider webhook.
	StatusPending Status = "PENDING"
	// Bank transfer, awaiting manual review of the payment proof.
	StatusPaymentPending Status = "PAYMENT_PENDING"
	StatusProcessing     Status = "PROCESSING"
	StatusShipped        Status = "SHIPPED"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
)

type PaymentMethod string

const (
	MethodPaystack     PaymentMethod = "PAYSTACK"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

type Order struct {
	ID            string           `json:"id"`
	OrderNumber   string           `json:"order_number"`
	PaymentRef    string           `json:"payment_ref"`
	UserID        string           `json:"user_id"`
	UserEmail     string           `json:"-"`
	AddressID     string           `json:"address_id"`
	Subtotal      int64            `json:"subtotal"`
	ShippingCost  int64            `json:"shipping_cost"`
	Discount      int64            `json:"discount"`
	Total         int64            `json:"total"`
	PromoCode     *string          `json:"promo_code,omitempty"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
	PaymentStatus string           `json:"payment_status"`
	Status        Status           `json:"status"`
	TrackingNo    *string          `json:"tracking_number,omitempty"`
	PaymentProof  *string          `json:"payment_proof,omitempty"`
	Items         []OrderItem      `json:"items"`
	Address       *address.Address `json:"address,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// OrderItem pins the unit price at order time; later product price edits
// never change what the customer was charged.
type OrderItem struct {
	ID          int64  `json:"id"`
	OrderID     string `json:"order_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

type ItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

type CreateOrderInput struct {
	Items         []ItemInput `json:"items"`
	AddressID     string      `json:"addressId"`
	PromoCode     *string     `json:"promoCode"`
	PaymentMethod string      `json:"paymentMethod"`
	PaymentProof  *string     `json:"paymentProof"`
}

type OrderFilterInput struct {
	Search   *string
	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time
}

type OrderSortField string

const (
	OrderSortFieldTotal     OrderSortField = "total"
	OrderSortFieldCreatedAt OrderSortField = "created_at"
)

type OrderSortInput struct {
	Field     OrderSortField
	Direction string
}
