package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/konqer/konqer-api/internal/domain/billing"
	"github.com/konqer/konqer-api/internal/shared/config"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

// Stripe event types consumed by the reconciler.
const (
	stripeCheckoutCompleted   = "checkout.session.completed"
	stripeSubscriptionUpdated = "customer.subscription.updated"
	stripeSubscriptionDeleted = "customer.subscription.deleted"
	stripeInvoiceSucceeded    = "invoice.payment_succeeded"
	stripeInvoiceFailed       = "invoice.payment_failed"
)

// StripeGateway implements billing.Gateway on the Stripe API.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
	successURL    string
	cancelURL     string
	returnURL     string
	logger        logger.Interface
}

var _ billing.Gateway = (*StripeGateway)(nil)

// NewStripeGateway builds a gateway whose API calls are bounded by the
// configured billing timeout.
func NewStripeGateway(cfg *config.BillingConfig, log logger.Interface) *StripeGateway {
	backends := stripe.NewBackends(&http.Client{Timeout: cfg.GetTimeout()})
	return newStripeGateway(cfg, client.New(cfg.SecretKey, backends), log)
}

func newStripeGateway(cfg *config.BillingConfig, api *client.API, log logger.Interface) *StripeGateway {
	return &StripeGateway{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
		returnURL:     cfg.PortalReturnURL,
		logger:        log,
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req billing.CheckoutRequest) (*billing.CheckoutSession, error) {
	metadata := map[string]string{
		"user_id":  req.UserID,
		"plan":     req.Plan,
		"price_id": req.PriceID,
	}
	if req.Service != "" {
		metadata["service"] = req.Service
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(withSessionID(g.successURL)),
		CancelURL:         stripe.String(g.cancelURL),
		ClientReferenceID: stripe.String(req.UserID),
		Metadata:          metadata,
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
	}
	if req.PaymentMethod != "" {
		params.PaymentMethodTypes = stripe.StringSlice([]string{req.PaymentMethod})
	}
	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	} else {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		g.logger.Errorw("stripe checkout session failed", "user_id", req.UserID, "plan", req.Plan, "error", err)
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &billing.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (g *StripeGateway) CreatePortalSession(ctx context.Context, customerID string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(g.returnURL),
	}
	params.Context = ctx

	sess, err := g.api.BillingPortalSessions.New(params)
	if err != nil {
		g.logger.Errorw("stripe portal session failed", "customer_id", customerID, "error", err)
		return "", fmt.Errorf("failed to create portal session: %w", err)
	}
	return sess.URL, nil
}

func (g *StripeGateway) VerifyWebhook(payload []byte, signature string) (*billing.Event, error) {
	if g.webhookSecret == "" {
		return nil, fmt.Errorf("webhook secret is not configured")
	}
	ev, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		g.logger.Warnw("stripe webhook signature rejected", "error", err)
		return nil, errors.NewSignatureInvalidError()
	}
	return toBillingEvent(&ev)
}

func toBillingEvent(ev *stripe.Event) (*billing.Event, error) {
	out := &billing.Event{
		ID:           ev.ID,
		Kind:         billing.EventUnknown,
		ProviderType: string(ev.Type),
		Created:      time.Unix(ev.Created, 0).UTC(),
	}
	if ev.Data == nil {
		return out, nil
	}

	switch string(ev.Type) {
	case stripeCheckoutCompleted:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(ev.Data.Raw, &sess); err != nil {
			return nil, errors.NewBadRequestError("Invalid checkout session payload")
		}
		out.Kind = billing.EventCheckoutCompleted
		start := out.Created
		out.Checkout = &billing.CheckoutCompleted{
			SessionID:   sess.ID,
			UserID:      sess.Metadata["user_id"],
			Plan:        sess.Metadata["plan"],
			Service:     sess.Metadata["service"],
			PriceID:     sess.Metadata["price_id"],
			PeriodStart: &start,
		}
		if sess.Customer != nil {
			out.Checkout.CustomerID = sess.Customer.ID
		}
		if sess.Subscription != nil {
			out.Checkout.SubscriptionID = sess.Subscription.ID
			out.Checkout.PeriodEnd = unixTime(sess.Subscription.CurrentPeriodEnd)
		}

	case stripeSubscriptionUpdated, stripeSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(ev.Data.Raw, &sub); err != nil {
			return nil, errors.NewBadRequestError("Invalid subscription payload")
		}
		out.Kind = billing.EventSubscriptionUpdated
		if string(ev.Type) == stripeSubscriptionDeleted {
			out.Kind = billing.EventSubscriptionDeleted
		}
		out.Subscription = &billing.SubscriptionChanged{
			ExternalID:        sub.ID,
			Status:            string(sub.Status),
			PeriodStart:       unixTime(sub.CurrentPeriodStart),
			PeriodEnd:         unixTime(sub.CurrentPeriodEnd),
			CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
			CanceledAt:        unixTime(sub.CanceledAt),
		}

	case stripeInvoiceSucceeded, stripeInvoiceFailed:
		var inv stripe.Invoice
		if err := json.Unmarshal(ev.Data.Raw, &inv); err != nil {
			return nil, errors.NewBadRequestError("Invalid invoice payload")
		}
		settled := &billing.InvoiceSettled{
			InvoiceID: inv.ID,
			Currency:  string(inv.Currency),
		}
		if string(ev.Type) == stripeInvoiceSucceeded {
			out.Kind = billing.EventPaymentSucceeded
			settled.Amount = inv.AmountPaid
		} else {
			out.Kind = billing.EventPaymentFailed
			settled.Amount = inv.AmountDue
		}
		if inv.Customer != nil {
			settled.CustomerID = inv.Customer.ID
		}
		if inv.PaymentIntent != nil {
			settled.PaymentIntentID = inv.PaymentIntent.ID
		}
		if inv.Subscription != nil {
			settled.SubscriptionExternalID = inv.Subscription.ID
		}
		if inv.Charge != nil && inv.Charge.PaymentMethodDetails != nil {
			settled.PaymentMethod = string(inv.Charge.PaymentMethodDetails.Type)
		}
		out.Invoice = settled
	}

	return out, nil
}

// withSessionID appends Stripe's session placeholder so the frontend can
// confirm the checkout.
func withSessionID(rawURL string) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "session_id={CHECKOUT_SESSION_ID}"
}

func unixTime(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
