package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/pkg/signature"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/server/http/handlers"
	testhelpers "github.com/CBillups260/RoweBrosWebsite-sub001/internal/test"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/usecase"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	verifier := signature.NewVerifier("topsecret")
	engine := Setup(testhelpers.StorefrontFacadeStub{}, verifier, logger)

	body, _ := json.Marshal(usecase.CheckoutInput{
		PaymentReference: "pi_123",
		CustomerInfo:     usecase.CustomerPayload{FirstName: "Ada", LastName: "Rowe", Email: "ada@example.com"},
		DeliveryInfo:     usecase.DeliveryPayload{Address: "12 Main St", City: "Fort Wayne", DeliveryDate: "2026-09-12"},
		CartLineItems:    []usecase.CartItemPayload{{ID: "prod-1", Quantity: 2}},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/settle", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for settle, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", bytes.NewReader(body))
	req.Header.Set(handlers.SignatureHeader, verifier.Sign(body))
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for webhook, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/catalog/sync", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for catalog sync, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for products, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders/pi_123", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for order lookup, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for health, got %d", resp.Code)
	}
}

var _ handlers.StorefrontFacade = (*testhelpers.StorefrontFacadeStub)(nil)
