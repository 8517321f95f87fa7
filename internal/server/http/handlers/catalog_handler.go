package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/errors"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/server/http/dto"
)

// CatalogHandler manages catalog reconciliation endpoints.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Sync handles POST /api/catalog/sync.
func (h *CatalogHandler) Sync(c *gin.Context) {
	results, err := h.facade.SyncCatalog(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if domainErrors.Retryable(err) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, dto.ErrorResponse{Error: err.Error()})
		return
	}

	response := dto.SyncResponse{Results: make([]dto.SyncResultResponse, 0, len(results))}
	for _, r := range results {
		item := dto.SyncResultResponse{
			ProductID:  r.ProductID,
			ExternalID: r.ExternalID,
			Outcome:    string(r.Outcome),
		}
		if r.Failed() {
			item.Error = r.Err.Error()
			response.Failed++
		} else {
			response.Synced++
		}
		response.Results = append(response.Results, item)
	}

	c.JSON(http.StatusOK, response)
}
