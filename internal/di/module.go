package di

import (
	"go.uber.org/fx"

	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/adapter/processor"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/app"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/config"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/logger"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/pkg/signature"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/server/http/handlers"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/server/http/router"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/storage/postgres"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		signature.Module,
		postgres.Module,
		processor.Module,
		usecase.Module,
		fx.Provide(
			func(client processor.Client) usecase.PaymentProvider { return client },
			func(client processor.Client) usecase.CatalogClient { return client },
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
