package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	domainErrors "github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/errors"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/model"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/repository"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/pkg/money"
)

// CatalogClient is the processor-side catalog surface the reconciler drives.
type CatalogClient interface {
	FindEntryByInternalID(ctx context.Context, internalID string) (*model.CatalogEntry, error)
	CreateEntry(ctx context.Context, entry model.CatalogEntry) (*model.CatalogEntry, error)
	UpdateEntry(ctx context.Context, externalID string, entry model.CatalogEntry) error
	ListActivePrices(ctx context.Context, externalID string) ([]model.CatalogPrice, error)
	DeactivatePrice(ctx context.Context, priceID string) error
	CreatePrice(ctx context.Context, externalID string, amount int64, currency string) (*model.CatalogPrice, error)
}

// SyncUseCase reconciles the internal product catalog against the processor's
// mirrored catalog: one entry per product, one active price per entry.
// Entries are matched through the metadata back-reference only, never by
// name, and are never deleted.
type SyncUseCase struct {
	products repository.ProductRepository
	catalog  CatalogClient
	currency string
	logger   *slog.Logger

	runs singleflight.Group
}

// NewSyncUseCase constructs SyncUseCase.
func NewSyncUseCase(products repository.ProductRepository, catalog CatalogClient, currency string, logger *slog.Logger) *SyncUseCase {
	return &SyncUseCase{products: products, catalog: catalog, currency: currency, logger: logger}
}

const syncRunKey = "catalog-sync"

// SyncCatalog loads the product list and reconciles it. The processor offers
// no compare-and-create, so overlapping triggers (worker tick, admin request)
// coalesce into the one in-flight run; a single storefront instance is
// assumed to own reconciliation.
func (u *SyncUseCase) SyncCatalog(ctx context.Context) ([]model.SyncResult, error) {
	v, err, shared := u.runs.Do(syncRunKey, func() (any, error) {
		products, err := u.products.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: list products: %v", domainErrors.ErrPersistenceFailure, err)
		}
		return u.Sync(ctx, products), nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		u.logger.Info("catalog sync request coalesced into in-flight run")
	}
	return v.([]model.SyncResult), nil
}

// Sync reconciles each product in order. One product's failure never aborts
// the batch; failures are recorded in the result slice.
func (u *SyncUseCase) Sync(ctx context.Context, products []model.Product) []model.SyncResult {
	results := make([]model.SyncResult, 0, len(products))
	for _, p := range products {
		result := u.syncProduct(ctx, p)
		if result.Failed() {
			u.logger.Error("product sync failed",
				slog.String("product_id", result.ProductID),
				slog.String("outcome", string(result.Outcome)),
				slog.String("error", result.Err.Error()),
			)
		}
		results = append(results, result)
	}
	return results
}

func (u *SyncUseCase) syncProduct(ctx context.Context, p model.Product) model.SyncResult {
	amount, err := money.PositiveMinorUnits(p.Price)
	if err != nil {
		return model.SyncResult{
			ProductID: p.ID,
			Outcome:   model.SyncInvalidPrice,
			Err:       fmt.Errorf("%w: product %s price %s", domainErrors.ErrInvalidPrice, p.ID, p.Price),
		}
	}

	entry, err := u.catalog.FindEntryByInternalID(ctx, p.ID)
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return u.createMirror(ctx, p, amount)
	case err != nil:
		return upstreamFailure(p.ID, "", "entry lookup", err)
	}

	return u.updateMirror(ctx, p, *entry, amount)
}

func (u *SyncUseCase) createMirror(ctx context.Context, p model.Product, amount int64) model.SyncResult {
	created, err := u.catalog.CreateEntry(ctx, mirrorOf(p))
	if err != nil {
		return upstreamFailure(p.ID, "", "entry create", err)
	}

	if _, err := u.catalog.CreatePrice(ctx, created.ExternalID, amount, u.currency); err != nil {
		return upstreamFailure(p.ID, created.ExternalID, "price create", err)
	}

	return model.SyncResult{ProductID: p.ID, ExternalID: created.ExternalID, Outcome: model.SyncCreated}
}

func (u *SyncUseCase) updateMirror(ctx context.Context, p model.Product, entry model.CatalogEntry, amount int64) model.SyncResult {
	// Display fields are overwritten unconditionally; the update is
	// idempotent so re-running with unchanged products is safe.
	if err := u.catalog.UpdateEntry(ctx, entry.ExternalID, mirrorOf(p)); err != nil {
		return upstreamFailure(p.ID, entry.ExternalID, "entry update", err)
	}

	active, err := u.catalog.ListActivePrices(ctx, entry.ExternalID)
	if err != nil {
		return upstreamFailure(p.ID, entry.ExternalID, "price list", err)
	}

	if len(active) == 1 && active[0].Amount == amount {
		return model.SyncResult{ProductID: p.ID, ExternalID: entry.ExternalID, Outcome: model.SyncNoPriceChange}
	}

	// Old prices are deactivated, never deleted, before the replacement
	// becomes the single active price.
	for _, price := range active {
		if err := u.catalog.DeactivatePrice(ctx, price.ID); err != nil {
			return upstreamFailure(p.ID, entry.ExternalID, "price deactivate", err)
		}
	}

	if _, err := u.catalog.CreatePrice(ctx, entry.ExternalID, amount, u.currency); err != nil {
		return upstreamFailure(p.ID, entry.ExternalID, "price create", err)
	}

	return model.SyncResult{ProductID: p.ID, ExternalID: entry.ExternalID, Outcome: model.SyncPriceChanged}
}

func mirrorOf(p model.Product) model.CatalogEntry {
	return model.CatalogEntry{
		InternalID:  p.ID,
		Name:        p.Name,
		Description: p.Description,
		Images:      p.Images,
	}
}

func upstreamFailure(productID, externalID, op string, err error) model.SyncResult {
	return model.SyncResult{
		ProductID:  productID,
		ExternalID: externalID,
		Outcome:    model.SyncUpstreamFailure,
		Err:        fmt.Errorf("%w: %s: %v", domainErrors.ErrUpstreamWrite, op, err),
	}
}
