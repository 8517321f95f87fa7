package model

// PaymentStatus describes the state of a payment as reported by the processor.
type PaymentStatus string

const (
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusNotFound  PaymentStatus = "not_found"
)

// PaymentConfirmation is the processor's answer to a payment status lookup.
// Amount is in integer minor units.
type PaymentConfirmation struct {
	Reference string
	Status    PaymentStatus
	Amount    int64
	Currency  string
}
