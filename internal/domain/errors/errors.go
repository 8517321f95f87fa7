package errors

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
	ErrInvalidCart         = errors.New("invalid cart")
	ErrMalformedInput      = errors.New("malformed input")
	ErrPersistenceFailure  = errors.New("persistence failure")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrUpstreamWrite       = errors.New("upstream write failure")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Retryable reports whether the failure is transient: the caller may repeat
// the whole operation because both core components are idempotent. Terminal
// failures will not change without external action.
func Retryable(err error) bool {
	return errors.Is(err, ErrPersistenceFailure) || errors.Is(err, ErrUpstreamWrite) || errors.Is(err, ErrUpstreamUnavailable)
}
