package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/errors"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/model"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/server/http/dto"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/usecase"
)

// CheckoutHandler manages the settlement endpoint.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Settle handles POST /api/checkout/settle.
func (h *CheckoutHandler) Settle(c *gin.Context) {
	var input usecase.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "malformed checkout payload"})
		return
	}

	order, created, err := h.facade.Settle(c.Request.Context(), input)
	if err != nil {
		c.JSON(settleErrorStatus(err), dto.ErrorResponse{Error: err.Error()})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, toOrderResponse(*order))
}

func settleErrorStatus(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrPaymentNotConfirmed):
		return http.StatusPaymentRequired
	case errors.Is(err, domainErrors.ErrInvalidCart), errors.Is(err, domainErrors.ErrMalformedInput):
		return http.StatusUnprocessableEntity
	case domainErrors.Retryable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice.StringFixed(2),
			Quantity:  l.Quantity,
			Amount:    l.Amount.StringFixed(2),
		})
	}

	return dto.OrderResponse{
		ID:               order.ID,
		PaymentReference: order.PaymentReference,
		Customer: dto.CustomerResponse{
			FirstName: order.Customer.FirstName,
			LastName:  order.Customer.LastName,
			Email:     order.Customer.Email,
			Phone:     order.Customer.Phone,
		},
		Delivery: dto.DeliveryResponse{
			Address:      order.Delivery.Address,
			City:         order.Delivery.City,
			State:        order.Delivery.State,
			ZipCode:      order.Delivery.ZipCode,
			Date:         order.Delivery.Date,
			TimeWindow:   order.Delivery.TimeWindow,
			Instructions: order.Delivery.Instructions,
		},
		Lines: lines,
		Pricing: dto.PricingResponse{
			Subtotal:    order.Pricing.Subtotal.StringFixed(2),
			DeliveryFee: order.Pricing.DeliveryFee.StringFixed(2),
			Tax:         order.Pricing.Tax.StringFixed(2),
			Total:       order.Pricing.Total.StringFixed(2),
		},
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
	}
}
