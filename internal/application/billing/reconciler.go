package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/konqer/konqer-api/internal/domain/billing"
	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/payment"
	"github.com/konqer/konqer-api/internal/domain/subscription"
	"github.com/konqer/konqer-api/internal/domain/user"
	"github.com/konqer/konqer-api/internal/shared/biztime"
	"github.com/konqer/konqer-api/internal/shared/db"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

// Outcome says what the reconciler did with an event.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeIgnored covers unknown kinds and events about records this
	// service does not know.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeDropped marks events missing the metadata needed to apply them.
	OutcomeDropped Outcome = "dropped"
)

// Granter is the part of the entitlement store billing writes to.
type Granter interface {
	GrantSet(ctx context.Context, userID string, services []entitlement.ServiceKey) ([]entitlement.ServiceKey, error)
}

// Reconciler applies verified billing events to subscriptions, grants and
// the payment ledger. Each event is one transaction, and the event id is
// recorded in the same transaction so redelivery is a no-op.
type Reconciler struct {
	ledger           billing.Ledger
	userRepo         user.Repository
	subscriptionRepo subscription.Repository
	paymentRepo      payment.Repository
	granter          Granter
	txMgr            *db.TransactionManager
	clock            biztime.Clock
	logger           logger.Interface
}

func NewReconciler(
	ledger billing.Ledger,
	userRepo user.Repository,
	subscriptionRepo subscription.Repository,
	paymentRepo payment.Repository,
	granter Granter,
	txMgr *db.TransactionManager,
	clock biztime.Clock,
	logger logger.Interface,
) *Reconciler {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &Reconciler{
		ledger:           ledger,
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		paymentRepo:      paymentRepo,
		granter:          granter,
		txMgr:            txMgr,
		clock:            clock,
		logger:           logger,
	}
}

// Handle applies evt. Unknown kinds and events that cannot be attributed
// return without error; persistence failures roll back everything,
// including the ledger entry, so the provider's retry reprocesses them.
func (r *Reconciler) Handle(ctx context.Context, evt *billing.Event) (Outcome, error) {
	if evt == nil || evt.ID == "" {
		return "", errors.NewBadRequestError("billing event has no id")
	}
	log := r.logger.With("event_id", evt.ID, "event_type", evt.ProviderType)

	if evt.Kind == billing.EventUnknown || evt.Kind == "" {
		log.Infow("ignoring unhandled billing event")
		return OutcomeIgnored, nil
	}

	var outcome Outcome
	err := r.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		recorded, err := r.ledger.Record(txCtx, evt.ID, evt.Kind)
		if err != nil {
			log.Errorw("failed to record billing event", "error", err)
			return fmt.Errorf("failed to record billing event: %w", err)
		}
		if !recorded {
			outcome = OutcomeDuplicate
			return nil
		}

		switch evt.Kind {
		case billing.EventCheckoutCompleted:
			outcome, err = r.checkoutCompleted(txCtx, log, evt.Checkout)
		case billing.EventSubscriptionUpdated:
			outcome, err = r.subscriptionUpdated(txCtx, log, evt.Subscription)
		case billing.EventSubscriptionDeleted:
			outcome, err = r.subscriptionDeleted(txCtx, log, evt.Subscription)
		case billing.EventPaymentSucceeded:
			outcome, err = r.invoiceSettled(txCtx, log, evt.Invoice, payment.StatusSucceeded)
		case billing.EventPaymentFailed:
			outcome, err = r.invoiceSettled(txCtx, log, evt.Invoice, payment.StatusFailed)
		default:
			outcome = OutcomeIgnored
		}
		return err
	})
	if err != nil {
		return "", err
	}

	log.Infow("billing event reconciled", "kind", evt.Kind, "outcome", outcome)
	return outcome, nil
}

func (r *Reconciler) checkoutCompleted(ctx context.Context, log logger.Interface, c *billing.CheckoutCompleted) (Outcome, error) {
	if c == nil || c.UserID == "" || c.Plan == "" {
		log.Warnw("checkout completed without user_id or plan metadata, dropping")
		return OutcomeDropped, nil
	}
	plan, err := subscription.ParsePlan(c.Plan)
	if err != nil {
		log.Warnw("checkout completed with unknown plan, dropping", "plan", c.Plan)
		return OutcomeDropped, nil
	}

	u, err := r.userRepo.GetByID(ctx, c.UserID)
	if err != nil {
		log.Errorw("failed to get user", "error", err, "user_id", c.UserID)
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		log.Warnw("checkout completed for unknown user, dropping", "user_id", c.UserID)
		return OutcomeDropped, nil
	}

	if u.BackfillBillingCustomer(c.CustomerID) {
		if err := r.userRepo.SetBillingCustomerID(ctx, u.ID(), c.CustomerID); err != nil {
			log.Errorw("failed to store billing customer", "error", err, "user_id", u.ID())
			return "", fmt.Errorf("failed to store billing customer: %w", err)
		}
	}

	sub, err := r.existingSubscription(ctx, c)
	if err != nil {
		log.Errorw("failed to look up subscription", "error", err, "external_id", c.SubscriptionID)
		return "", fmt.Errorf("failed to look up subscription: %w", err)
	}
	if sub == nil {
		sub, err = subscription.NewSubscription(u.ID(), plan, c.SubscriptionID, c.PriceID, c.SessionID, c.PeriodStart, c.PeriodEnd)
		if err != nil {
			return "", errors.NewValidationError(err.Error())
		}
		if err := r.subscriptionRepo.Create(ctx, sub); err != nil {
			log.Errorw("failed to create subscription", "error", err, "user_id", u.ID())
			return "", fmt.Errorf("failed to create subscription: %w", err)
		}
	} else {
		log.Infow("subscription already exists for checkout, reusing", "subscription_id", sub.ID())
	}

	services := entitlement.UnlockSet(plan, c.Service)
	switch {
	case plan.IsSingle() && len(services) == 0:
		log.Warnw("single plan checkout without a valid service, nothing unlocked",
			"user_id", u.ID(),
			"service", c.Service,
		)
	case plan.IsSingle() && !services[0].InCatalog():
		// Still granted: the key was paid for.
		log.Warnw("single plan checkout for a service outside the catalog",
			"user_id", u.ID(),
			"service", services[0],
		)
	}

	granted, err := r.granter.GrantSet(ctx, u.ID(), services)
	if err != nil {
		log.Errorw("failed to grant services", "error", err, "user_id", u.ID(), "plan", plan)
		return "", fmt.Errorf("failed to grant services: %w", err)
	}

	log.Infow("checkout applied",
		"user_id", u.ID(),
		"subscription_id", sub.ID(),
		"plan", plan,
		"granted", granted,
	)
	return OutcomeApplied, nil
}

// existingSubscription finds a subscription already created for this
// checkout, by provider subscription id first, then by session id.
func (r *Reconciler) existingSubscription(ctx context.Context, c *billing.CheckoutCompleted) (*subscription.Subscription, error) {
	if c.SubscriptionID != "" {
		sub, err := r.subscriptionRepo.GetByExternalIDForUpdate(ctx, c.SubscriptionID)
		if err != nil || sub != nil {
			return sub, err
		}
	}
	return r.subscriptionRepo.GetByCheckoutSessionID(ctx, c.SessionID)
}

func (r *Reconciler) subscriptionUpdated(ctx context.Context, log logger.Interface, sc *billing.SubscriptionChanged) (Outcome, error) {
	if sc == nil || sc.ExternalID == "" {
		log.Warnw("subscription event without subscription id, dropping")
		return OutcomeDropped, nil
	}

	sub, err := r.subscriptionRepo.GetByExternalIDForUpdate(ctx, sc.ExternalID)
	if err != nil {
		log.Errorw("failed to lock subscription", "error", err, "external_id", sc.ExternalID)
		return "", fmt.Errorf("failed to lock subscription: %w", err)
	}
	if sub == nil {
		log.Infow("subscription update for unknown subscription, ignoring", "external_id", sc.ExternalID)
		return OutcomeIgnored, nil
	}

	status := subscription.Status(sc.Status)
	if !status.IsValid() {
		log.Warnw("unknown subscription status, keeping current", "status", sc.Status, "current", sub.Status())
	}
	sub.ApplyProviderState(status, sc.PeriodStart, sc.PeriodEnd, sc.CancelAtPeriodEnd)
	if status == subscription.StatusCanceled {
		sub.Cancel(canceledAt(sc, r.clock))
	}

	if err := r.subscriptionRepo.Update(ctx, sub); err != nil {
		log.Errorw("failed to update subscription", "error", err, "subscription_id", sub.ID())
		return "", fmt.Errorf("failed to update subscription: %w", err)
	}

	log.Infow("subscription updated",
		"subscription_id", sub.ID(),
		"status", sub.Status(),
		"cancel_at_period_end", sub.CancelAtPeriodEnd(),
	)
	return OutcomeApplied, nil
}

func (r *Reconciler) subscriptionDeleted(ctx context.Context, log logger.Interface, sc *billing.SubscriptionChanged) (Outcome, error) {
	if sc == nil || sc.ExternalID == "" {
		log.Warnw("subscription event without subscription id, dropping")
		return OutcomeDropped, nil
	}

	sub, err := r.subscriptionRepo.GetByExternalIDForUpdate(ctx, sc.ExternalID)
	if err != nil {
		log.Errorw("failed to lock subscription", "error", err, "external_id", sc.ExternalID)
		return "", fmt.Errorf("failed to lock subscription: %w", err)
	}
	if sub == nil {
		log.Infow("subscription deletion for unknown subscription, ignoring", "external_id", sc.ExternalID)
		return OutcomeIgnored, nil
	}

	sub.Cancel(canceledAt(sc, r.clock))
	if err := r.subscriptionRepo.Update(ctx, sub); err != nil {
		log.Errorw("failed to cancel subscription", "error", err, "subscription_id", sub.ID())
		return "", fmt.Errorf("failed to cancel subscription: %w", err)
	}

	log.Infow("subscription canceled", "subscription_id", sub.ID(), "user_id", sub.UserID())
	return OutcomeApplied, nil
}

func (r *Reconciler) invoiceSettled(ctx context.Context, log logger.Interface, inv *billing.InvoiceSettled, status payment.Status) (Outcome, error) {
	if inv == nil || inv.CustomerID == "" {
		log.Warnw("invoice event without customer, dropping")
		return OutcomeDropped, nil
	}

	u, err := r.userRepo.GetByBillingCustomerID(ctx, inv.CustomerID)
	if err != nil {
		log.Errorw("failed to get user by billing customer", "error", err, "customer_id", inv.CustomerID)
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		log.Infow("payment for unknown customer, ignoring", "customer_id", inv.CustomerID)
		return OutcomeIgnored, nil
	}

	var subscriptionID string
	if inv.SubscriptionExternalID != "" {
		sub, err := r.subscriptionRepo.GetByExternalID(ctx, inv.SubscriptionExternalID)
		if err != nil {
			log.Errorw("failed to get subscription", "error", err, "external_id", inv.SubscriptionExternalID)
			return "", fmt.Errorf("failed to get subscription: %w", err)
		}
		if sub != nil {
			subscriptionID = sub.ID()
		}
	}

	p, err := payment.NewPayment(payment.Entry{
		UserID:          u.ID(),
		SubscriptionID:  subscriptionID,
		PaymentIntentID: inv.PaymentIntentID,
		InvoiceID:       inv.InvoiceID,
		Amount:          inv.Amount,
		Currency:        inv.Currency,
		Status:          status,
		PaymentMethod:   inv.PaymentMethod,
	})
	if err != nil {
		log.Warnw("invalid invoice payload, dropping", "error", err, "invoice_id", inv.InvoiceID)
		return OutcomeDropped, nil
	}

	if err := r.paymentRepo.Append(ctx, p); err != nil {
		if errors.IsConflictError(err) {
			log.Infow("payment already recorded", "payment_intent_id", inv.PaymentIntentID)
			return OutcomeDuplicate, nil
		}
		log.Errorw("failed to append payment", "error", err, "user_id", u.ID())
		return "", fmt.Errorf("failed to append payment: %w", err)
	}

	log.Infow("payment recorded",
		"user_id", u.ID(),
		"status", status,
		"amount", inv.Amount,
		"currency", p.Currency(),
	)
	return OutcomeApplied, nil
}

func canceledAt(sc *billing.SubscriptionChanged, clock biztime.Clock) time.Time {
	if sc.CanceledAt != nil {
		return *sc.CanceledAt
	}
	return clock()
}
