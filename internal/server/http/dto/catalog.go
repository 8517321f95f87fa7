package dto

// SyncResultResponse describes the reconciliation outcome for one product.
type SyncResultResponse struct {
	ProductID  string `json:"productId"`
	ExternalID string `json:"externalId,omitempty"`
	Outcome    string `json:"outcome"`
	Error      string `json:"error,omitempty"`
}

// SyncResponse summarizes a full reconciliation run.
type SyncResponse struct {
	Results []SyncResultResponse `json:"results"`
	Synced  int                  `json:"synced"`
	Failed  int                  `json:"failed"`
}
