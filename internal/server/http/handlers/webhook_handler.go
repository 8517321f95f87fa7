package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/pkg/signature"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/server/http/dto"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/usecase"
)

// SignatureHeader carries the hex HMAC of the raw webhook body.
const SignatureHeader = "X-Webhook-Signature"

// WebhookHandler receives payment notifications from the processor. The
// payload is the same checkout document the client would post; settlement
// itself deduplicates, so redelivered events simply replay.
type WebhookHandler struct {
	facade   CheckoutFacade
	verifier *signature.Verifier
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade CheckoutFacade, verifier *signature.Verifier) *WebhookHandler {
	return &WebhookHandler{facade: facade, verifier: verifier}
}

// HandlePayment handles POST /api/webhooks/payment.
func (h *WebhookHandler) HandlePayment(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unreadable body"})
		return
	}

	if err := h.verifier.Verify(body, c.GetHeader(SignatureHeader)); err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid webhook signature"})
		return
	}

	var input usecase.CheckoutInput
	if err := json.Unmarshal(body, &input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "malformed webhook payload"})
		return
	}

	order, _, err := h.facade.Settle(c.Request.Context(), input)
	if err != nil {
		c.JSON(settleErrorStatus(err), dto.ErrorResponse{Error: err.Error()})
		return
	}

	// 200 for created and replayed alike so the processor stops redelivering.
	c.JSON(http.StatusOK, toOrderResponse(*order))
}
