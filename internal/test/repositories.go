package test

import (
	"context"
	"fmt"
	"sync"
	"time"

	domainErrors "github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/errors"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/model"
)

// ProductRepositoryStub serves a fixed product list for tests.
type ProductRepositoryStub struct {
	Items   []model.Product
	ListErr error
}

// List returns the configured products.
func (s *ProductRepositoryStub) List(ctx context.Context) ([]model.Product, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.Items, nil
}

// GetByID finds a product by identifier.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id string) (*model.Product, error) {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i], nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub stores orders in-memory, keyed by payment reference.
type OrderRepositoryStub struct {
	mu          sync.Mutex
	ByReference map[string]*model.Order
	CreateErr   error
}

// NewOrderRepositoryStub constructs the stub with an initialized map.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{ByReference: make(map[string]*model.Order)}
}

// Create stores the order unless one already exists for its reference.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, bool, error) {
	if s.CreateErr != nil {
		return nil, false, s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.ByReference[order.PaymentReference]; ok {
		return existing, false, nil
	}
	stored := *order
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.ByReference[order.PaymentReference] = &stored
	return &stored, true, nil
}

// GetByPaymentReference returns the stored order or ErrNotFound.
func (s *OrderRepositoryStub) GetByPaymentReference(ctx context.Context, reference string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order, ok := s.ByReference[reference]; ok {
		return order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListRecent returns stored orders in map order.
func (s *OrderRepositoryStub) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := make([]model.Order, 0, len(s.ByReference))
	for _, o := range s.ByReference {
		orders = append(orders, *o)
	}
	return orders, nil
}

// PaymentProviderStub returns a configurable payment confirmation.
type PaymentProviderStub struct {
	Confirmation *model.PaymentConfirmation
	Err          error
}

// GetPaymentStatus returns the configured confirmation or a succeeded one.
func (s *PaymentProviderStub) GetPaymentStatus(ctx context.Context, reference string) (*model.PaymentConfirmation, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Confirmation != nil {
		return s.Confirmation, nil
	}
	return &model.PaymentConfirmation{Reference: reference, Status: model.PaymentStatusSucceeded, Currency: "usd"}, nil
}

// CatalogClientStub mirrors entries and prices in-memory.
type CatalogClientStub struct {
	mu      sync.Mutex
	Entries map[string]model.CatalogEntry
	Prices  map[string][]model.CatalogPrice
	nextID  int
}

// NewCatalogClientStub constructs the stub with initialized maps.
func NewCatalogClientStub() *CatalogClientStub {
	return &CatalogClientStub{
		Entries: make(map[string]model.CatalogEntry),
		Prices:  make(map[string][]model.CatalogPrice),
	}
}

// FindEntryByInternalID scans entries for the internal id back-reference.
func (s *CatalogClientStub) FindEntryByInternalID(ctx context.Context, internalID string) (*model.CatalogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.Entries {
		if entry.InternalID == internalID {
			found := entry
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// CreateEntry stores a new entry with a generated external id.
func (s *CatalogClientStub) CreateEntry(ctx context.Context, entry model.CatalogEntry) (*model.CatalogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	entry.ExternalID = fmt.Sprintf("ent_%d", s.nextID)
	s.Entries[entry.ExternalID] = entry
	return &entry, nil
}

// UpdateEntry replaces display fields on an existing entry.
func (s *CatalogClientStub) UpdateEntry(ctx context.Context, externalID string, entry model.CatalogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.Entries[externalID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	entry.ExternalID = externalID
	entry.InternalID = existing.InternalID
	s.Entries[externalID] = entry
	return nil
}

// ListActivePrices returns prices still marked active.
func (s *CatalogClientStub) ListActivePrices(ctx context.Context, externalID string) ([]model.CatalogPrice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var active []model.CatalogPrice
	for _, price := range s.Prices[externalID] {
		if price.Active {
			active = append(active, price)
		}
	}
	return active, nil
}

// DeactivatePrice flips the active flag off.
func (s *CatalogClientStub) DeactivatePrice(ctx context.Context, priceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, prices := range s.Prices {
		for i := range prices {
			if prices[i].ID == priceID {
				prices[i].Active = false
				return nil
			}
		}
	}
	return domainErrors.ErrNotFound
}

// CreatePrice appends a new active price for the entry.
func (s *CatalogClientStub) CreatePrice(ctx context.Context, externalID string, amount int64, currency string) (*model.CatalogPrice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	price := model.CatalogPrice{
		ID:       fmt.Sprintf("price_%d", s.nextID),
		EntryID:  externalID,
		Amount:   amount,
		Currency: currency,
		Active:   true,
	}
	s.Prices[externalID] = append(s.Prices[externalID], price)
	return &price, nil
}

// HealthCheckerStub reports configurable storage health.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthCheckerStub) HealthCheck(ctx context.Context) error {
	return s.Err
}
