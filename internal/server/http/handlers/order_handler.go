package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/errors"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/server/http/dto"
)

// OrderHandler serves order lookups.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Get handles GET /api/orders/:reference.
func (h *OrderHandler) Get(c *gin.Context) {
	reference := strings.TrimSpace(c.Param("reference"))
	if reference == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "payment reference required"})
		return
	}

	order, err := h.facade.OrderByReference(c.Request.Context(), reference)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "order lookup failed"})
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}
