package billing

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appentitlement "github.com/konqer/konqer-api/internal/application/entitlement"
	"github.com/konqer/konqer-api/internal/domain/billing"
	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/subscription"
	"github.com/konqer/konqer-api/internal/domain/user"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/testdb"
	"github.com/konqer/konqer-api/internal/infrastructure/repository"
	"github.com/konqer/konqer-api/internal/shared/db"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

type reconcilerFixture struct {
	gdb        *gorm.DB
	reconciler *Reconciler
	userRepo   user.Repository
	subRepo    subscription.Repository
	access     *appentitlement.ServiceImpl
	user       *user.User
	now        time.Time
}

func newReconcilerFixture(t *testing.T) *reconcilerFixture {
	t.Helper()
	gdb := testdb.Open(t)
	log := logger.NewNopLogger()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	userRepo := repository.NewUserRepository(gdb, log)
	u, err := user.NewUser("kc-subject-1", "ada@example.com", "Ada")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), u))

	subRepo := repository.NewSubscriptionRepository(gdb, log)
	access := appentitlement.NewService(repository.NewServiceAccessRepository(gdb), clock, log)

	return &reconcilerFixture{
		gdb: gdb,
		reconciler: NewReconciler(
			repository.NewBillingEventRepository(gdb),
			userRepo,
			subRepo,
			repository.NewPaymentRepository(gdb),
			access,
			db.NewTransactionManager(gdb),
			clock,
			log,
		),
		userRepo: userRepo,
		subRepo:  subRepo,
		access:   access,
		user:     u,
		now:      now,
	}
}

// rebuild returns a reconciler over the fixture's database with its own
// granter and logger.
func (f *reconcilerFixture) rebuild(granter Granter, log logger.Interface) *Reconciler {
	return NewReconciler(
		repository.NewBillingEventRepository(f.gdb),
		f.userRepo,
		f.subRepo,
		repository.NewPaymentRepository(f.gdb),
		granter,
		db.NewTransactionManager(f.gdb),
		func() time.Time { return f.now },
		log,
	)
}

// partialGranter grants the first service, then fails.
type partialGranter struct {
	next Granter
}

func (g *partialGranter) GrantSet(ctx context.Context, userID string, services []entitlement.ServiceKey) ([]entitlement.ServiceKey, error) {
	if len(services) > 0 {
		if _, err := g.next.GrantSet(ctx, userID, services[:1]); err != nil {
			return nil, err
		}
	}
	return nil, stderrors.New("grant store unavailable")
}

func (f *reconcilerFixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.gdb.Model(model).Count(&n).Error)
	return n
}

func (f *reconcilerFixture) checkout(id, plan, service string) *billing.Event {
	end := f.now.AddDate(0, 1, 0)
	return &billing.Event{
		ID:           id,
		Kind:         billing.EventCheckoutCompleted,
		ProviderType: "checkout.session.completed",
		Checkout: &billing.CheckoutCompleted{
			SessionID:      "cs_" + id,
			CustomerID:     "cus_123",
			SubscriptionID: "sub_" + id,
			PriceID:        "price_1",
			UserID:         f.user.ID(),
			Plan:           plan,
			Service:        service,
			PeriodStart:    &f.now,
			PeriodEnd:      &end,
		},
	}
}

func TestReconciler_CheckoutReplayIsIdempotent(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()
	evt := f.checkout("evt_1", "founding", "")

	outcome, err := f.reconciler.Handle(ctx, evt)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)

	outcome, err = f.reconciler.Handle(ctx, evt)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, outcome)

	assert.Equal(t, int64(1), f.count(t, &models.SubscriptionModel{}))
	assert.Equal(t, int64(3), f.count(t, &models.ServiceAccessModel{}))
	assert.Equal(t, int64(1), f.count(t, &models.BillingEventModel{}))

	sub, err := f.subRepo.GetByExternalID(ctx, "sub_evt_1")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, subscription.StatusActive, sub.Status())
	assert.Equal(t, subscription.PlanFounding, sub.Plan())

	for _, svc := range entitlement.FoundingSet {
		ok, err := f.access.HasAccess(ctx, f.user.ID(), svc)
		require.NoError(t, err)
		assert.True(t, ok, svc)
	}

	var row models.UserModel
	require.NoError(t, f.gdb.First(&row, "id = ?", f.user.ID()).Error)
	require.NotNil(t, row.BillingCustomerID)
	assert.Equal(t, "cus_123", *row.BillingCustomerID)
}

func TestReconciler_CheckoutUnlockSets(t *testing.T) {
	cases := []struct {
		plan    string
		service string
		want    int64
	}{
		{plan: "monthly_bundle", want: 12},
		{plan: "annual_bundle", want: 12},
		{plan: "monthly_single", service: "objection", want: 1},
		{plan: "annual_single", want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.plan, func(t *testing.T) {
			f := newReconcilerFixture(t)
			outcome, err := f.reconciler.Handle(context.Background(), f.checkout("evt_"+tc.plan, tc.plan, tc.service))
			require.NoError(t, err)
			assert.Equal(t, OutcomeApplied, outcome)
			assert.Equal(t, tc.want, f.count(t, &models.ServiceAccessModel{}))
			assert.Equal(t, int64(1), f.count(t, &models.SubscriptionModel{}))
		})
	}
}

func TestReconciler_CheckoutSecondEventReusesSubscription(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()

	first := f.checkout("evt_a", "founding", "")
	_, err := f.reconciler.Handle(ctx, first)
	require.NoError(t, err)

	// same session delivered under a new event id
	second := f.checkout("evt_b", "founding", "")
	second.Checkout.SessionID = first.Checkout.SessionID
	second.Checkout.SubscriptionID = first.Checkout.SubscriptionID
	outcome, err := f.reconciler.Handle(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
	assert.Equal(t, int64(1), f.count(t, &models.SubscriptionModel{}))
	assert.Equal(t, int64(3), f.count(t, &models.ServiceAccessModel{}))
}

func TestReconciler_CheckoutDropsUnattributable(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()

	noUser := f.checkout("evt_1", "founding", "")
	noUser.Checkout.UserID = ""
	badPlan := f.checkout("evt_2", "lifetime", "")
	ghost := f.checkout("evt_3", "founding", "")
	ghost.Checkout.UserID = "00000000-0000-0000-0000-000000000000"

	for _, evt := range []*billing.Event{noUser, badPlan, ghost} {
		outcome, err := f.reconciler.Handle(ctx, evt)
		require.NoError(t, err)
		assert.Equal(t, OutcomeDropped, outcome, evt.ID)
	}
	assert.Zero(t, f.count(t, &models.SubscriptionModel{}))
	assert.Zero(t, f.count(t, &models.ServiceAccessModel{}))
}

func TestReconciler_SubscriptionLifecycle(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()
	_, err := f.reconciler.Handle(ctx, f.checkout("evt_1", "monthly_bundle", ""))
	require.NoError(t, err)

	end := f.now.AddDate(0, 2, 0)
	outcome, err := f.reconciler.Handle(ctx, &billing.Event{
		ID:   "evt_2",
		Kind: billing.EventSubscriptionUpdated,
		Subscription: &billing.SubscriptionChanged{
			ExternalID:        "sub_evt_1",
			Status:            "past_due",
			PeriodEnd:         &end,
			CancelAtPeriodEnd: true,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)

	sub, err := f.subRepo.GetByExternalID(ctx, "sub_evt_1")
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusPastDue, sub.Status())
	assert.True(t, sub.CancelAtPeriodEnd())
	require.NotNil(t, sub.CurrentPeriodEnd())
	assert.True(t, end.Equal(*sub.CurrentPeriodEnd()))

	// unknown status keeps the current one
	_, err = f.reconciler.Handle(ctx, &billing.Event{
		ID:           "evt_3",
		Kind:         billing.EventSubscriptionUpdated,
		Subscription: &billing.SubscriptionChanged{ExternalID: "sub_evt_1", Status: "paused"},
	})
	require.NoError(t, err)
	sub, err = f.subRepo.GetByExternalID(ctx, "sub_evt_1")
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusPastDue, sub.Status())

	outcome, err = f.reconciler.Handle(ctx, &billing.Event{
		ID:           "evt_4",
		Kind:         billing.EventSubscriptionDeleted,
		Subscription: &billing.SubscriptionChanged{ExternalID: "sub_evt_1", Status: "canceled"},
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)

	sub, err = f.subRepo.GetByExternalID(ctx, "sub_evt_1")
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusCanceled, sub.Status())
	require.NotNil(t, sub.CanceledAt())
	assert.True(t, f.now.Equal(*sub.CanceledAt()))

	// grants survive cancellation
	ok, err := f.access.HasAccess(ctx, f.user.ID(), entitlement.ServiceWebinar)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReconciler_UnknownSubscriptionIsNoop(t *testing.T) {
	f := newReconcilerFixture(t)

	outcome, err := f.reconciler.Handle(context.Background(), &billing.Event{
		ID:           "evt_1",
		Kind:         billing.EventSubscriptionUpdated,
		Subscription: &billing.SubscriptionChanged{ExternalID: "sub_missing", Status: "active"},
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, outcome)
	assert.Zero(t, f.count(t, &models.SubscriptionModel{}))
}

func TestReconciler_Payments(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()
	_, err := f.reconciler.Handle(ctx, f.checkout("evt_1", "founding", ""))
	require.NoError(t, err)

	paid := &billing.Event{
		ID:   "evt_2",
		Kind: billing.EventPaymentSucceeded,
		Invoice: &billing.InvoiceSettled{
			CustomerID:             "cus_123",
			InvoiceID:              "in_1",
			PaymentIntentID:        "pi_1",
			SubscriptionExternalID: "sub_evt_1",
			Amount:                 69900,
			Currency:               "EUR",
			PaymentMethod:          "card",
		},
	}
	outcome, err := f.reconciler.Handle(ctx, paid)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)

	var row models.PaymentModel
	require.NoError(t, f.gdb.First(&row).Error)
	assert.Equal(t, int64(69900), row.Amount)
	assert.Equal(t, "eur", row.Currency)
	assert.Equal(t, "succeeded", row.Status)
	require.NotNil(t, row.SubscriptionID)

	// same payment intent under another event id
	again := *paid
	again.ID = "evt_3"
	outcome, err = f.reconciler.Handle(ctx, &again)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, outcome)
	assert.Equal(t, int64(1), f.count(t, &models.PaymentModel{}))

	unknown := &billing.Event{
		ID:      "evt_4",
		Kind:    billing.EventPaymentFailed,
		Invoice: &billing.InvoiceSettled{CustomerID: "cus_other", InvoiceID: "in_2", PaymentIntentID: "pi_2", Amount: 9900, Currency: "eur"},
	}
	outcome, err = f.reconciler.Handle(ctx, unknown)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, outcome)
	assert.Equal(t, int64(1), f.count(t, &models.PaymentModel{}))
}

func TestReconciler_UnknownKindIsNotRecorded(t *testing.T) {
	f := newReconcilerFixture(t)

	outcome, err := f.reconciler.Handle(context.Background(), &billing.Event{
		ID:           "evt_1",
		Kind:         billing.EventUnknown,
		ProviderType: "customer.created",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, outcome)
	assert.Zero(t, f.count(t, &models.BillingEventModel{}))
}

func TestReconciler_CheckoutGrantFailureRollsBack(t *testing.T) {
	f := newReconcilerFixture(t)
	r := f.rebuild(&partialGranter{next: f.access}, logger.NewNopLogger())

	_, err := r.Handle(context.Background(), f.checkout("evt_1", "monthly_bundle", ""))
	require.Error(t, err)

	assert.Zero(t, f.count(t, &models.SubscriptionModel{}))
	assert.Zero(t, f.count(t, &models.ServiceAccessModel{}))
	assert.Zero(t, f.count(t, &models.BillingEventModel{}))
	assert.Zero(t, f.count(t, &models.PaymentModel{}))

	var row models.UserModel
	require.NoError(t, f.gdb.First(&row, "id = ?", f.user.ID()).Error)
	assert.Nil(t, row.BillingCustomerID)

	// the provider's retry applies the event in full
	outcome, err := f.reconciler.Handle(context.Background(), f.checkout("evt_1", "monthly_bundle", ""))
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
	assert.Equal(t, int64(12), f.count(t, &models.ServiceAccessModel{}))
}

func TestReconciler_SingleCheckoutOutsideCatalogIsLogged(t *testing.T) {
	f := newReconcilerFixture(t)
	var buf bytes.Buffer
	log := logger.NewLoggerWithSlog(slog.New(slog.NewJSONHandler(&buf, nil)))
	r := f.rebuild(f.access, log)

	outcome, err := r.Handle(context.Background(), f.checkout("evt_1", "monthly_single", "foo-bar"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
	assert.Equal(t, int64(1), f.count(t, &models.ServiceAccessModel{}))

	assert.Contains(t, buf.String(), "single plan checkout for a service outside the catalog")
	assert.Contains(t, buf.String(), `"service":"foo-bar"`)
}
