package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the order lifecycle. Settlement only ever produces
// StatusPaid; fulfilled/cancelled belong to downstream fulfillment tooling.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// CustomerInfo is the customer snapshot captured at settlement time.
type CustomerInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// DeliveryInfo is the delivery snapshot captured at settlement time.
type DeliveryInfo struct {
	Address      string
	City         string
	State        string
	ZipCode      string
	Date         string
	TimeWindow   string
	Instructions string
}

// OrderLine is a denormalized copy of one cart line at settlement time, so
// later catalog edits cannot alter a historical order.
type OrderLine struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Amount    decimal.Decimal
}

// PricingBreakdown holds the server-computed money figures for an order.
type PricingBreakdown struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// Order is created exactly once per confirmed payment, keyed by the
// payment reference.
type Order struct {
	ID               string
	PaymentReference string
	Customer         CustomerInfo
	Delivery         DeliveryInfo
	Lines            []OrderLine
	Pricing          PricingBreakdown
	Status           OrderStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
