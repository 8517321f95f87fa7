package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/errors"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/model"
)

// CheckoutInput mirrors the external settlement payload. Field types are
// deliberately loose (prices arrive as numbers or strings, optional fields
// may be absent); NormalizeCheckout converts the whole payload into strict
// domain types exactly once, so no fallback logic leaks into the pipeline.
type CheckoutInput struct {
	PaymentReference string            `json:"paymentReference"`
	CustomerInfo     CustomerPayload   `json:"customerInfo"`
	DeliveryInfo     DeliveryPayload   `json:"deliveryInfo"`
	CartLineItems    []CartItemPayload `json:"cartLineItems"`
}

// CustomerPayload carries the customer block of the checkout payload.
type CustomerPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// DeliveryPayload carries the delivery block of the checkout payload.
type DeliveryPayload struct {
	Address      string      `json:"address"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	ZipCode      string      `json:"zipCode"`
	DeliveryDate string      `json:"deliveryDate"`
	DeliveryTime string      `json:"deliveryTime"`
	Instructions string      `json:"instructions,omitempty"`
	DeliveryFee  LooseAmount `json:"deliveryFee,omitempty"`
}

// CartItemPayload carries one advisory cart line. Price and PriceNumeric are
// both accepted; PriceNumeric wins when present.
type CartItemPayload struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Price        LooseAmount `json:"price,omitempty"`
	PriceNumeric LooseAmount `json:"priceNumeric,omitempty"`
	Quantity     int         `json:"quantity"`
	Image        string      `json:"image,omitempty"`
	Description  string      `json:"description,omitempty"`
}

// LooseAmount is a money amount tolerating the payload's duck typing: JSON
// numbers, numeric strings (optionally with a currency sigil and grouping
// commas), null, or garbage all decode without error. Garbage decodes as
// unset, which resolves to zero.
type LooseAmount struct {
	value decimal.Decimal
	set   bool
}

// UnmarshalJSON never fails; unparseable input leaves the amount unset.
func (a *LooseAmount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", ""))
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	a.value = d
	a.set = true
	return nil
}

// MarshalJSON renders the amount as a JSON number, or null when unset.
func (a LooseAmount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	return []byte(a.value.String()), nil
}

// LooseAmountFrom wraps a known decimal value.
func LooseAmountFrom(value decimal.Decimal) LooseAmount {
	return LooseAmount{value: value, set: true}
}

// Decimal returns the parsed amount and whether one was present.
func (a LooseAmount) Decimal() (decimal.Decimal, bool) {
	return a.value, a.set
}

// CartLine is a strictly-typed cart line after normalization. Amount is
// computed later by the settlement pipeline.
type CartLine struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// SettlementInput is the normalized settlement request.
type SettlementInput struct {
	PaymentReference string
	Customer         model.CustomerInfo
	Delivery         model.DeliveryInfo
	DeliveryFee      *decimal.Decimal
	Lines            []CartLine
}

// NormalizeCheckout validates and converts the loose checkout payload.
// Missing required fields fail fast with ErrMalformedInput; per-line price
// and quantity defaults follow the documented resolution order (numeric
// price, parsed string price, zero; quantity below one becomes one).
func NormalizeCheckout(in CheckoutInput) (*SettlementInput, error) {
	required := []struct {
		name  string
		value string
	}{
		{"paymentReference", in.PaymentReference},
		{"customerInfo.firstName", in.CustomerInfo.FirstName},
		{"customerInfo.lastName", in.CustomerInfo.LastName},
		{"customerInfo.email", in.CustomerInfo.Email},
		{"deliveryInfo.address", in.DeliveryInfo.Address},
		{"deliveryInfo.city", in.DeliveryInfo.City},
		{"deliveryInfo.deliveryDate", in.DeliveryInfo.DeliveryDate},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return nil, fmt.Errorf("%w: missing %s", domainErrors.ErrMalformedInput, field.name)
		}
	}

	out := &SettlementInput{
		PaymentReference: strings.TrimSpace(in.PaymentReference),
		Customer: model.CustomerInfo{
			FirstName: strings.TrimSpace(in.CustomerInfo.FirstName),
			LastName:  strings.TrimSpace(in.CustomerInfo.LastName),
			Email:     strings.TrimSpace(in.CustomerInfo.Email),
			Phone:     strings.TrimSpace(in.CustomerInfo.Phone),
		},
		Delivery: model.DeliveryInfo{
			Address:      strings.TrimSpace(in.DeliveryInfo.Address),
			City:         strings.TrimSpace(in.DeliveryInfo.City),
			State:        strings.TrimSpace(in.DeliveryInfo.State),
			ZipCode:      strings.TrimSpace(in.DeliveryInfo.ZipCode),
			Date:         strings.TrimSpace(in.DeliveryInfo.DeliveryDate),
			TimeWindow:   strings.TrimSpace(in.DeliveryInfo.DeliveryTime),
			Instructions: strings.TrimSpace(in.DeliveryInfo.Instructions),
		},
	}

	if fee, ok := in.DeliveryInfo.DeliveryFee.Decimal(); ok && !fee.IsNegative() {
		out.DeliveryFee = &fee
	}

	out.Lines = make([]CartLine, 0, len(in.CartLineItems))
	for _, item := range in.CartLineItems {
		price := decimal.Zero
		if v, ok := item.PriceNumeric.Decimal(); ok {
			price = v
		} else if v, ok := item.Price.Decimal(); ok {
			price = v
		}
		if price.IsNegative() {
			price = decimal.Zero
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		out.Lines = append(out.Lines, CartLine{
			ProductID: item.ID,
			Name:      item.Name,
			UnitPrice: price,
			Quantity:  quantity,
		})
	}

	return out, nil
}
