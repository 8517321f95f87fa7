package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/server/http/dto"
)

// ProductHandler serves the storefront product list.
type ProductHandler struct {
	facade ProductFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade ProductFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "product list unavailable"})
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, dto.ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.StringFixed(2),
			Images:      p.Images,
			CategoryID:  p.CategoryID,
		})
	}

	c.JSON(http.StatusOK, response)
}
