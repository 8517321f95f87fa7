package repository

import (
	"context"

	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/model"
)

// ProductRepository provides read access to the internal product catalog.
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
}
