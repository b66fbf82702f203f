package payment

// Event kinds Paystack delivers that we care about. Everything else is
// acknowledged and ignored.
const (
	EventChargeSuccess = "charge.success"

	ProviderPaystack = "PAYSTACK"
)

// WebhookEvent is the JSON Paystack posts to the webhook endpoint.
type WebhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		ID        int64  `json:"id"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Status    string `json:"status"`
		PaidAt    string `json:"paid_at,omitempty"`
		Customer  struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}
