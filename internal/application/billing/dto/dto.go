package dto

type CheckoutRequest struct {
	Plan          string `json:"plan" binding:"required,plan"`
	Service       string `json:"service,omitempty" binding:"omitempty,service_key"`
	PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=card paypal"`
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

type PortalResponse struct {
	PortalURL string `json:"portal_url"`
}

// WebhookResponse acknowledges a delivery. Status is the reconciler outcome.
type WebhookResponse struct {
	Received bool   `json:"received"`
	Status   string `json:"status"`
}
