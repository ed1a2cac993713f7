package billing

import "context"

// CheckoutRequest describes a hosted checkout for one plan. Service is set
// for single-service plans only.
type CheckoutRequest struct {
	UserID        string
	Email         string
	CustomerID    string
	Plan          string
	Service       string
	PriceID       string
	PaymentMethod string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// Gateway is the payment provider boundary.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	CreatePortalSession(ctx context.Context, customerID string) (string, error)
	// VerifyWebhook checks the signature header against the raw payload and
	// decodes the event. A mismatch yields a signature_invalid AuthError.
	VerifyWebhook(payload []byte, signature string) (*Event, error)
}
