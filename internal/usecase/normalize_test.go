package usecase

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/errors"
)

func validCheckoutInput() CheckoutInput {
	return CheckoutInput{
		PaymentReference: "pi_123",
		CustomerInfo: CustomerPayload{
			FirstName: "Ada",
			LastName:  "Rowe",
			Email:     "ada@example.com",
			Phone:     "555-0100",
		},
		DeliveryInfo: DeliveryPayload{
			Address:      "12 Main St",
			City:         "Fort Wayne",
			State:        "IN",
			ZipCode:      "46802",
			DeliveryDate: "2026-09-12",
			DeliveryTime: "10:00-12:00",
		},
		CartLineItems: []CartItemPayload{
			{ID: "prod-1", Name: "Bounce Castle", Price: LooseAmountFrom(decimal.NewFromInt(20)), Quantity: 2},
		},
	}
}

func TestNormalizeCheckoutRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CheckoutInput)
	}{
		{"payment reference", func(in *CheckoutInput) { in.PaymentReference = "" }},
		{"first name", func(in *CheckoutInput) { in.CustomerInfo.FirstName = "  " }},
		{"last name", func(in *CheckoutInput) { in.CustomerInfo.LastName = "" }},
		{"email", func(in *CheckoutInput) { in.CustomerInfo.Email = "" }},
		{"address", func(in *CheckoutInput) { in.DeliveryInfo.Address = "" }},
		{"city", func(in *CheckoutInput) { in.DeliveryInfo.City = "" }},
		{"delivery date", func(in *CheckoutInput) { in.DeliveryInfo.DeliveryDate = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCheckoutInput()
			tc.mutate(&in)
			if _, err := NormalizeCheckout(in); !errors.Is(err, domainErrors.ErrMalformedInput) {
				t.Fatalf("expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestNormalizeCheckoutPriceResolution(t *testing.T) {
	in := validCheckoutInput()
	in.CartLineItems = []CartItemPayload{
		{ID: "a", Price: LooseAmountFrom(decimal.NewFromInt(20)), Quantity: 2},
		{ID: "b", Price: LooseAmountFrom(decimal.NewFromInt(99)), PriceNumeric: LooseAmountFrom(decimal.NewFromInt(15)), Quantity: 1},
		{ID: "c", Quantity: 1},
		{ID: "d", Price: LooseAmountFrom(decimal.NewFromInt(-5)), Quantity: 1},
	}

	out, err := NormalizeCheckout(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Lines[0].UnitPrice.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected price 20, got %s", out.Lines[0].UnitPrice)
	}
	if !out.Lines[1].UnitPrice.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("expected priceNumeric to win, got %s", out.Lines[1].UnitPrice)
	}
	if !out.Lines[2].UnitPrice.IsZero() {
		t.Fatalf("expected missing price to resolve to zero, got %s", out.Lines[2].UnitPrice)
	}
	if !out.Lines[3].UnitPrice.IsZero() {
		t.Fatalf("expected negative price to resolve to zero, got %s", out.Lines[3].UnitPrice)
	}
}

func TestNormalizeCheckoutQuantityDefaults(t *testing.T) {
	in := validCheckoutInput()
	in.CartLineItems = []CartItemPayload{
		{ID: "a", Price: LooseAmountFrom(decimal.NewFromInt(10)), Quantity: 0},
		{ID: "b", Price: LooseAmountFrom(decimal.NewFromInt(10)), Quantity: -3},
		{ID: "c", Price: LooseAmountFrom(decimal.NewFromInt(10)), Quantity: 4},
	}

	out, err := NormalizeCheckout(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, want := range []int{1, 1, 4} {
		if out.Lines[i].Quantity != want {
			t.Fatalf("line %d: expected quantity %d, got %d", i, want, out.Lines[i].Quantity)
		}
	}
}

func TestNormalizeCheckoutDeliveryFee(t *testing.T) {
	in := validCheckoutInput()
	out, err := NormalizeCheckout(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.DeliveryFee != nil {
		t.Fatalf("expected absent delivery fee, got %s", out.DeliveryFee)
	}

	in.DeliveryInfo.DeliveryFee = LooseAmountFrom(decimal.RequireFromString("25.50"))
	out, err = NormalizeCheckout(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.DeliveryFee == nil || !out.DeliveryFee.Equal(decimal.RequireFromString("25.50")) {
		t.Fatalf("expected delivery fee 25.50, got %v", out.DeliveryFee)
	}

	in.DeliveryInfo.DeliveryFee = LooseAmountFrom(decimal.NewFromInt(-10))
	out, err = NormalizeCheckout(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.DeliveryFee != nil {
		t.Fatalf("expected negative fee to be ignored, got %s", out.DeliveryFee)
	}
}

func TestLooseAmountUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		set   bool
	}{
		{"number", `12.5`, "12.5", true},
		{"numeric string", `"15.00"`, "15", true},
		{"currency sigil", `"$1,234.50"`, "1234.5", true},
		{"null", `null`, "", false},
		{"empty string", `""`, "", false},
		{"garbage", `"free"`, "", false},
		{"boolean", `true`, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a LooseAmount
			if err := json.Unmarshal([]byte(tc.input), &a); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, ok := a.Decimal()
			if ok != tc.set {
				t.Fatalf("expected set=%v, got %v", tc.set, ok)
			}
			if tc.set && !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
