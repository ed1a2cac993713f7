package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	appbilling "github.com/konqer/konqer-api/internal/application/billing"
	billingdto "github.com/konqer/konqer-api/internal/application/billing/dto"
	"github.com/konqer/konqer-api/internal/domain/billing"
	"github.com/konqer/konqer-api/internal/shared/constants"
	"github.com/konqer/konqer-api/internal/shared/logger"
	"github.com/konqer/konqer-api/internal/shared/utils"
)

const maxWebhookBodyBytes = int64(65536)

type webhookVerifier interface {
	VerifyWebhook(payload []byte, signature string) (*billing.Event, error)
}

type billingEventHandler interface {
	Handle(ctx context.Context, evt *billing.Event) (appbilling.Outcome, error)
}

// WebhookHandler receives payment provider deliveries. It is not behind the
// auth middleware; the signature header is the only credential.
type WebhookHandler struct {
	verifier   webhookVerifier
	reconciler billingEventHandler
	logger     logger.Interface
}

func NewWebhookHandler(verifier webhookVerifier, reconciler billingEventHandler, logger logger.Interface) *WebhookHandler {
	return &WebhookHandler{
		verifier:   verifier,
		reconciler: reconciler,
		logger:     logger,
	}
}

// HandleStripe godoc
// @Summary Stripe webhook receiver
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "webhook signature"
// @Success 200 {object} utils.APIResponse{data=billingdto.WebhookResponse}
// @Failure 400 {object} utils.APIResponse "signature invalid"
// @Router /webhooks/stripe [post]
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		h.logger.Warnw("failed to read webhook body", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payload")
		return
	}

	evt, err := h.verifier.VerifyWebhook(payload, c.GetHeader(constants.HeaderStripeSignature))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	outcome, err := h.reconciler.Handle(c.Request.Context(), evt)
	if err != nil {
		// a 5xx makes the provider redeliver
		h.logger.Errorw("failed to handle billing event", "error", err, "event_id", evt.ID, "kind", evt.Kind)
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("billing event handled", "event_id", evt.ID, "kind", evt.Kind, "outcome", outcome)
	utils.SuccessResponse(c, http.StatusOK, "", billingdto.WebhookResponse{
		Received: true,
		Status:   string(outcome),
	})
}
