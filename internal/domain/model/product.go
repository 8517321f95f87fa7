package model

import "github.com/shopspring/decimal"

// Product is the seller-owned catalog record, the source of truth for
// pricing and display data. Mutated by catalog-management tooling; the
// reconciler only reads it.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Images      []string
	CategoryID  string
}
