package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/errors"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/model"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/pkg/signature"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/server/http/dto"
	testhelpers "github.com/CBillups260/RoweBrosWebsite-sub001/internal/test"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, handler)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func checkoutBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(usecase.CheckoutInput{
		PaymentReference: "pi_123",
		CustomerInfo:     usecase.CustomerPayload{FirstName: "Ada", LastName: "Rowe", Email: "ada@example.com"},
		DeliveryInfo:     usecase.DeliveryPayload{Address: "12 Main St", City: "Fort Wayne", DeliveryDate: "2026-09-12"},
		CartLineItems:    []usecase.CartItemPayload{{ID: "prod-1", Name: "Bounce Castle", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("marshal checkout body: %v", err)
	}
	return body
}

func TestCheckoutHandlerSettleCreated(t *testing.T) {
	handler := NewCheckoutHandler(testhelpers.CheckoutFacadeStub{})
	resp := performRequest(t, http.MethodPost, "/settle", handler.Settle, checkoutBody(t), nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var got dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.PaymentReference != "pi_123" || got.Pricing.Total != "92.80" {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestCheckoutHandlerPassesPayloadThrough(t *testing.T) {
	reference := "pi_" + testhelpers.RandomASCIIString(12, 20)
	body, err := json.Marshal(usecase.CheckoutInput{
		PaymentReference: reference,
		CustomerInfo:     usecase.CustomerPayload{FirstName: "Ada", LastName: "Rowe", Email: "ada@example.com"},
		DeliveryInfo:     usecase.DeliveryPayload{Address: "12 Main St", City: "Fort Wayne", DeliveryDate: "2026-09-12"},
		CartLineItems:    []usecase.CartItemPayload{{ID: "prod-1", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("marshal checkout body: %v", err)
	}

	handler := NewCheckoutHandler(testhelpers.CheckoutFacadeStub{
		SettleFn: func(ctx context.Context, in usecase.CheckoutInput) (*model.Order, bool, error) {
			if in.PaymentReference != reference {
				t.Fatalf("unexpected reference passed to facade: %q", in.PaymentReference)
			}
			return testhelpers.SampleOrder(in.PaymentReference), true, nil
		},
	})
	resp := performRequest(t, http.MethodPost, "/settle", handler.Settle, body, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
}

func TestCheckoutHandlerSettleReplay(t *testing.T) {
	handler := NewCheckoutHandler(testhelpers.CheckoutFacadeStub{
		SettleFn: func(ctx context.Context, in usecase.CheckoutInput) (*model.Order, bool, error) {
			return testhelpers.SampleOrder(in.PaymentReference), false, nil
		},
	})
	resp := performRequest(t, http.MethodPost, "/settle", handler.Settle, checkoutBody(t), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for replay, got %d", resp.Code)
	}
}

func TestCheckoutHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"payment not confirmed", domainErrors.ErrPaymentNotConfirmed, http.StatusPaymentRequired},
		{"invalid cart", fmt.Errorf("%w: no line items", domainErrors.ErrInvalidCart), http.StatusUnprocessableEntity},
		{"malformed input", fmt.Errorf("%w: missing email", domainErrors.ErrMalformedInput), http.StatusUnprocessableEntity},
		{"persistence failure", fmt.Errorf("%w: timeout", domainErrors.ErrPersistenceFailure), http.StatusServiceUnavailable},
		{"upstream unavailable", domainErrors.ErrUpstreamUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewCheckoutHandler(testhelpers.CheckoutFacadeStub{
				SettleFn: func(context.Context, usecase.CheckoutInput) (*model.Order, bool, error) {
					return nil, false, tc.err
				},
			})
			resp := performRequest(t, http.MethodPost, "/settle", handler.Settle, checkoutBody(t), nil)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestCheckoutHandlerRejectsBrokenJSON(t *testing.T) {
	handler := NewCheckoutHandler(testhelpers.CheckoutFacadeStub{
		SettleFn: func(context.Context, usecase.CheckoutInput) (*model.Order, bool, error) {
			t.Fatal("settle must not be called for unparseable payloads")
			return nil, false, nil
		},
	})
	resp := performRequest(t, http.MethodPost, "/settle", handler.Settle, []byte("{not json"), nil)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestWebhookHandlerAcceptsSignedPayload(t *testing.T) {
	verifier := signature.NewVerifier("topsecret")
	body := checkoutBody(t)
	handler := NewWebhookHandler(testhelpers.CheckoutFacadeStub{
		SettleFn: func(ctx context.Context, in usecase.CheckoutInput) (*model.Order, bool, error) {
			return testhelpers.SampleOrder(in.PaymentReference), false, nil
		},
	}, verifier)

	resp := performRequest(t, http.MethodPost, "/webhook", handler.HandlePayment, body, map[string]string{
		SignatureHeader: verifier.Sign(body),
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for replayed webhook, got %d", resp.Code)
	}
}

func TestWebhookHandlerRejectsBadSignature(t *testing.T) {
	verifier := signature.NewVerifier("topsecret")
	body := checkoutBody(t)
	handler := NewWebhookHandler(testhelpers.CheckoutFacadeStub{
		SettleFn: func(context.Context, usecase.CheckoutInput) (*model.Order, bool, error) {
			t.Fatal("settle must not run for unauthenticated webhooks")
			return nil, false, nil
		},
	}, verifier)

	for name, sig := range map[string]string{"missing": "", "wrong": "deadbeef"} {
		t.Run(name, func(t *testing.T) {
			headers := map[string]string{}
			if sig != "" {
				headers[SignatureHeader] = sig
			}
			resp := performRequest(t, http.MethodPost, "/webhook", handler.HandlePayment, body, headers)
			if resp.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", resp.Code)
			}
		})
	}
}

func TestWebhookHandlerRejectsMalformedPayload(t *testing.T) {
	verifier := signature.NewVerifier("topsecret")
	body := []byte("{not json")
	handler := NewWebhookHandler(testhelpers.CheckoutFacadeStub{}, verifier)

	resp := performRequest(t, http.MethodPost, "/webhook", handler.HandlePayment, body, map[string]string{
		SignatureHeader: verifier.Sign(body),
	})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestCatalogHandlerSync(t *testing.T) {
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{
		SyncFn: func(context.Context) ([]model.SyncResult, error) {
			return []model.SyncResult{
				{ProductID: "prod-1", ExternalID: "ent_1", Outcome: model.SyncCreated},
				{ProductID: "prod-2", Outcome: model.SyncUpstreamFailure, Err: errors.New("entry create: 502")},
			}, nil
		},
	})
	resp := performRequest(t, http.MethodPost, "/sync", handler.Sync, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var got dto.SyncResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Synced != 1 || got.Failed != 1 || len(got.Results) != 2 {
		t.Fatalf("unexpected summary %+v", got)
	}
	if got.Results[1].Error == "" {
		t.Fatal("expected failure detail in results")
	}
}

func TestCatalogHandlerSyncFailure(t *testing.T) {
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{
		SyncFn: func(context.Context) ([]model.SyncResult, error) {
			return nil, fmt.Errorf("%w: list products", domainErrors.ErrPersistenceFailure)
		},
	})
	resp := performRequest(t, http.MethodPost, "/sync", handler.Sync, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestProductHandlerList(t *testing.T) {
	handler := NewProductHandler(testhelpers.ProductFacadeStub{})
	resp := performRequest(t, http.MethodGet, "/products", handler.List, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var got []dto.ProductResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].Price != "20.00" {
		t.Fatalf("unexpected products %+v", got)
	}
}

func TestOrderHandlerGet(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	router := gin.New()
	router.GET("/orders/:reference", handler.Get)
	req := httptest.NewRequest(http.MethodGet, "/orders/pi_123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got dto.OrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.PaymentReference != "pi_123" {
		t.Fatalf("unexpected order %+v", got)
	}
}

func TestOrderHandlerGetNotFound(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		OrderFn: func(context.Context, string) (*model.Order, error) {
			return nil, domainErrors.ErrNotFound
		},
	})
	router := gin.New()
	router.GET("/orders/:reference", handler.Get)
	req := httptest.NewRequest(http.MethodGet, "/orders/pi_missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/health", NewHealthHandler(testhelpers.HealthFacadeStub{}).Check, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/health", NewHealthHandler(testhelpers.HealthFacadeStub{Err: errors.New("down")}).Check, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
