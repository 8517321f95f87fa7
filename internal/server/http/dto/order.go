package dto

import "time"

// CustomerResponse mirrors the customer snapshot stored on an order.
type CustomerResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// DeliveryResponse mirrors the delivery snapshot stored on an order.
type DeliveryResponse struct {
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zipCode,omitempty"`
	Date         string `json:"deliveryDate"`
	TimeWindow   string `json:"deliveryTime,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// OrderLineResponse describes one settled cart line. Money fields are
// decimal strings to keep cent precision across clients.
type OrderLineResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Amount    string `json:"amount"`
}

// PricingResponse carries the server-computed totals.
type PricingResponse struct {
	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"deliveryFee"`
	Tax         string `json:"tax"`
	Total       string `json:"total"`
}

// OrderResponse describes a settled order.
type OrderResponse struct {
	ID               string              `json:"id"`
	PaymentReference string              `json:"paymentReference"`
	Customer         CustomerResponse    `json:"customerInfo"`
	Delivery         DeliveryResponse    `json:"deliveryInfo"`
	Lines            []OrderLineResponse `json:"lineItems"`
	Pricing          PricingResponse     `json:"pricing"`
	Status           string              `json:"status"`
	CreatedAt        time.Time           `json:"createdAt"`
}
