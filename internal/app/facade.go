package app

import (
	"context"

	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/model"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/repository"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/usecase"
)

// HealthChecker reports storage availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade is the application surface the HTTP layer and the sync
// worker talk to.
type StorefrontFacade struct {
	settlement *usecase.SettlementUseCase
	sync       *usecase.SyncUseCase
	products   repository.ProductRepository
	orders     repository.OrderRepository
	health     HealthChecker
}

func NewStorefrontFacade(settlement *usecase.SettlementUseCase, sync *usecase.SyncUseCase, products repository.ProductRepository, orders repository.OrderRepository, health HealthChecker) *StorefrontFacade {
	return &StorefrontFacade{
		settlement: settlement,
		sync:       sync,
		products:   products,
		orders:     orders,
		health:     health,
	}
}

func (f *StorefrontFacade) Settle(ctx context.Context, in usecase.CheckoutInput) (*model.Order, bool, error) {
	return f.settlement.Settle(ctx, in)
}

func (f *StorefrontFacade) SyncCatalog(ctx context.Context) ([]model.SyncResult, error) {
	return f.sync.SyncCatalog(ctx)
}

func (f *StorefrontFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.products.List(ctx)
}

func (f *StorefrontFacade) OrderByReference(ctx context.Context, reference string) (*model.Order, error) {
	return f.orders.GetByPaymentReference(ctx, reference)
}

func (f *StorefrontFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
