package processor

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/config"
)

// Module exposes processor client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.ProcessorAddress, p.Config.ProcessorAPIKey, p.Logger)
}
