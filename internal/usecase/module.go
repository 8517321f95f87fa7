package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/config"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newSyncUseCase,
	newSettlementUseCase,
)

type syncUseCaseParams struct {
	fx.In

	Products repository.ProductRepository
	Catalog  CatalogClient
	Config   *config.Config
	Logger   *slog.Logger
}

func newSyncUseCase(p syncUseCaseParams) *SyncUseCase {
	return NewSyncUseCase(p.Products, p.Catalog, p.Config.Currency, p.Logger)
}

type settlementUseCaseParams struct {
	fx.In

	Orders   repository.OrderRepository
	Payments PaymentProvider
	Config   *config.Config
	Logger   *slog.Logger
}

func newSettlementUseCase(p settlementUseCaseParams) *SettlementUseCase {
	return NewSettlementUseCase(p.Orders, p.Payments, p.Config.TaxRate, p.Config.DefaultDeliveryFee, p.Logger)
}
