package handlers

import (
	"net/http"

	"staywise/services/payment"
	"staywise/services/settlement"
	"staywise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StripeHandler receives payment-processor callbacks and serves the session
// passthrough used by the frontend after redirect.
type StripeHandler struct {
	Settlement *settlement.Processor
	Payments   *payment.Orchestrator

	logger *zap.Logger
}

func NewStripeHandler(processor *settlement.Processor, payments *payment.Orchestrator, logger *zap.Logger) *StripeHandler {
	return &StripeHandler{Settlement: processor, Payments: payments, logger: logger}
}

// WebhookHandler processes a payment event. The processor's retry policy keys
// off the HTTP status alone: 200 acknowledges settled, ignored and duplicate
// events alike; 400 is reserved for signature failures.
func (h *StripeHandler) WebhookHandler(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read payload", err.Error())
		return
	}

	result, err := h.Settlement.HandleEvent(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		switch utils.KindOf(err) {
		case utils.KindInvalidSig:
			c.String(http.StatusBadRequest, "Invalid signature")
		default:
			utils.JSONDomainError(c, err)
		}
		return
	}

	h.logger.Debug("webhook processed", zap.String("outcome", string(result.Outcome)))
	c.String(http.StatusOK, "Webhook processed")
}

// GetSessionHandler is the confirmation-poll passthrough.
func (h *StripeHandler) GetSessionHandler(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing session_id", "")
		return
	}

	details, err := h.Payments.SessionDetails(c.Request.Context(), sessionID)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}
