package payment

import "context"

// Authorization is what the storefront needs to hand the customer over
// to the hosted checkout.
type Authorization struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type Gateway interface {
	// InitializeTransaction registers a pending charge with the provider
	// and returns the hosted checkout handoff. amount is in naira.
	InitializeTransaction(ctx context.Context, reference, email string, amount int64) (*Authorization, error)

	// VerifySignature recomputes the keyed hash over the raw webhook
	// body and compares it against the signature header.
	VerifySignature(body []byte, signature string) error
}
