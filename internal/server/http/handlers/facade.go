package handlers

import (
	"context"

	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/model"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/usecase"
)

// CheckoutFacade describes the settlement capability required by handlers.
type CheckoutFacade interface {
	Settle(ctx context.Context, in usecase.CheckoutInput) (*model.Order, bool, error)
}

// CatalogFacade triggers catalog reconciliation.
type CatalogFacade interface {
	SyncCatalog(ctx context.Context) ([]model.SyncResult, error)
}

// ProductFacade exposes the storefront product list.
type ProductFacade interface {
	Products(ctx context.Context) ([]model.Product, error)
}

// OrderFacade provides order lookups for confirmation pages.
type OrderFacade interface {
	OrderByReference(ctx context.Context, reference string) (*model.Order, error)
}

// HealthFacade reports storage availability.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	CheckoutFacade
	CatalogFacade
	ProductFacade
	OrderFacade
	HealthFacade
}
