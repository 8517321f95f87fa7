package model

// SyncOutcome classifies what catalog reconciliation did for one product.
type SyncOutcome string

const (
	SyncCreated         SyncOutcome = "created"
	SyncPriceChanged    SyncOutcome = "updated-price-changed"
	SyncNoPriceChange   SyncOutcome = "updated-no-price-change"
	SyncInvalidPrice    SyncOutcome = "invalid-price"
	SyncUpstreamFailure SyncOutcome = "upstream-write-failure"
)

// SyncResult reports the reconciliation outcome for a single product.
// Err is set only for the failure outcomes.
type SyncResult struct {
	ProductID  string
	ExternalID string
	Outcome    SyncOutcome
	Err        error
}

// Failed reports whether the product was skipped rather than synced.
func (r SyncResult) Failed() bool {
	return r.Outcome == SyncInvalidPrice || r.Outcome == SyncUpstreamFailure
}
