package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/konqer/konqer-api/internal/application/billing"
	billingdto "github.com/konqer/konqer-api/internal/application/billing/dto"
	"github.com/konqer/konqer-api/internal/domain/billing"
	"github.com/konqer/konqer-api/internal/interfaces/http/handlers/testutil"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

type mockWebhookVerifier struct {
	event     *billing.Event
	err       error
	payload   []byte
	signature string
}

func (m *mockWebhookVerifier) VerifyWebhook(payload []byte, signature string) (*billing.Event, error) {
	m.payload, m.signature = payload, signature
	return m.event, m.err
}

type mockReconciler struct {
	outcome appbilling.Outcome
	err     error
	handled []*billing.Event
}

func (m *mockReconciler) Handle(_ context.Context, evt *billing.Event) (appbilling.Outcome, error) {
	m.handled = append(m.handled, evt)
	return m.outcome, m.err
}

func TestWebhookHandler_HandleStripe(t *testing.T) {
	verifier := &mockWebhookVerifier{event: &billing.Event{ID: "evt_1", Kind: billing.EventCheckoutCompleted}}
	rec := &mockReconciler{outcome: appbilling.OutcomeApplied}
	h := NewWebhookHandler(verifier, rec, logger.NewNopLogger())

	body := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	c, w := testutil.NewRawTestContext(http.MethodPost, "/webhooks/stripe", body)
	c.Request.Header.Set("Stripe-Signature", "t=1,v1=abc")
	h.HandleStripe(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, body, verifier.payload)
	assert.Equal(t, "t=1,v1=abc", verifier.signature)
	require.Len(t, rec.handled, 1)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var ack billingdto.WebhookResponse
	require.NoError(t, json.Unmarshal(resp.Data, &ack))
	assert.True(t, ack.Received)
	assert.Equal(t, "applied", ack.Status)
}

func TestWebhookHandler_SignatureInvalid(t *testing.T) {
	rec := &mockReconciler{}
	h := NewWebhookHandler(&mockWebhookVerifier{err: errors.NewSignatureInvalidError()}, rec, logger.NewNopLogger())

	c, w := testutil.NewRawTestContext(http.MethodPost, "/webhooks/stripe", []byte(`{}`))
	h.HandleStripe(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, rec.handled)
}

func TestWebhookHandler_ReconcilerFailureAsksForRedelivery(t *testing.T) {
	verifier := &mockWebhookVerifier{event: &billing.Event{ID: "evt_2", Kind: billing.EventPaymentSucceeded}}
	h := NewWebhookHandler(verifier, &mockReconciler{err: stderrors.New("db down")}, logger.NewNopLogger())

	c, w := testutil.NewRawTestContext(http.MethodPost, "/webhooks/stripe", []byte(`{}`))
	h.HandleStripe(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestWebhookHandler_TruncatesOversizedBody(t *testing.T) {
	verifier := &mockWebhookVerifier{err: errors.NewSignatureInvalidError()}
	h := NewWebhookHandler(verifier, &mockReconciler{}, logger.NewNopLogger())

	c, _ := testutil.NewRawTestContext(http.MethodPost, "/webhooks/stripe", bytes.Repeat([]byte("a"), 70000))
	h.HandleStripe(c)

	assert.Len(t, verifier.payload, 65536)
}
