package repository

import (
	"context"

	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
//
// Create must be idempotent with respect to the payment reference: when an
// order for the same reference already exists, the existing record is
// returned with created=false and no new row is written.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, bool, error)
	GetByPaymentReference(ctx context.Context, reference string) (*model.Order, error)
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
}
