package test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/model"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/usecase"
)

// CheckoutFacadeStub provides controllable behaviour for the settlement endpoint.
type CheckoutFacadeStub struct {
	SettleFn func(context.Context, usecase.CheckoutInput) (*model.Order, bool, error)
}

// Settle delegates to the provided function or returns a default paid order.
func (s CheckoutFacadeStub) Settle(ctx context.Context, in usecase.CheckoutInput) (*model.Order, bool, error) {
	if s.SettleFn != nil {
		return s.SettleFn(ctx, in)
	}
	return SampleOrder(in.PaymentReference), true, nil
}

// CatalogFacadeStub simulates catalog reconciliation.
type CatalogFacadeStub struct {
	SyncFn func(context.Context) ([]model.SyncResult, error)
}

// SyncCatalog returns configured results or a single created outcome.
func (s CatalogFacadeStub) SyncCatalog(ctx context.Context) ([]model.SyncResult, error) {
	if s.SyncFn != nil {
		return s.SyncFn(ctx)
	}
	return []model.SyncResult{{ProductID: "prod-1", ExternalID: "ent_1", Outcome: model.SyncCreated}}, nil
}

// ProductFacadeStub serves a canned product list.
type ProductFacadeStub struct {
	ProductsFn func(context.Context) ([]model.Product, error)
}

// Products returns configured products or one sample product.
func (s ProductFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Product{{ID: "prod-1", Name: "Bounce Castle", Price: decimal.NewFromInt(20)}}, nil
}

// OrderFacadeStub serves order lookups.
type OrderFacadeStub struct {
	OrderFn func(context.Context, string) (*model.Order, error)
}

// OrderByReference returns the configured order or a sample one.
func (s OrderFacadeStub) OrderByReference(ctx context.Context, reference string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, reference)
	}
	return SampleOrder(reference), nil
}

// HealthFacadeStub reports configurable health.
type HealthFacadeStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthFacadeStub) HealthCheck(ctx context.Context) error {
	return s.Err
}

// StorefrontFacadeStub aggregates all facade stubs for router-level tests.
type StorefrontFacadeStub struct {
	CheckoutFacadeStub
	CatalogFacadeStub
	ProductFacadeStub
	OrderFacadeStub
	HealthFacadeStub
}

// SampleOrder builds a minimal settled order for stubs and assertions.
func SampleOrder(reference string) *model.Order {
	if reference == "" {
		reference = "pi_sample"
	}
	return &model.Order{
		ID:               "11111111-2222-3333-4444-555555555555",
		PaymentReference: reference,
		Customer:         model.CustomerInfo{FirstName: "Ada", LastName: "Rowe", Email: "ada@example.com"},
		Delivery:         model.DeliveryInfo{Address: "12 Main St", City: "Fort Wayne", Date: "2026-09-12"},
		Lines: []model.OrderLine{{
			ProductID: "prod-1",
			Name:      "Bounce Castle",
			UnitPrice: decimal.NewFromInt(20),
			Quantity:  2,
			Amount:    decimal.NewFromInt(40),
		}},
		Pricing: model.PricingBreakdown{
			Subtotal:    decimal.NewFromInt(40),
			DeliveryFee: decimal.NewFromInt(50),
			Tax:         decimal.RequireFromString("2.80"),
			Total:       decimal.RequireFromString("92.80"),
		},
		Status: model.OrderStatusPaid,
	}
}
