package signature

import (
	"go.uber.org/fx"

	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/config"
)

// Module wires the webhook signature verifier for fx graphs.
var Module = fx.Provide(newVerifier)

func newVerifier(cfg *config.Config) *Verifier {
	return NewVerifier(cfg.WebhookSecret)
}
