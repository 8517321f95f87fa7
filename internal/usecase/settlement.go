package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	domainErrors "github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/errors"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/model"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/repository"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/pkg/money"
)

// PaymentProvider is the payment confirmation lookup the pipeline depends on.
type PaymentProvider interface {
	GetPaymentStatus(ctx context.Context, reference string) (*model.PaymentConfirmation, error)
}

// SettlementUseCase turns a confirmed payment into exactly one persisted
// order. Totals are always recomputed server-side; client-supplied totals
// are never read.
type SettlementUseCase struct {
	orders             repository.OrderRepository
	payments           PaymentProvider
	taxRate            decimal.Decimal
	defaultDeliveryFee decimal.Decimal
	logger             *slog.Logger

	inflight singleflight.Group
}

// NewSettlementUseCase constructs SettlementUseCase.
func NewSettlementUseCase(orders repository.OrderRepository, payments PaymentProvider, taxRate, defaultDeliveryFee decimal.Decimal, logger *slog.Logger) *SettlementUseCase {
	return &SettlementUseCase{
		orders:             orders,
		payments:           payments,
		taxRate:            taxRate,
		defaultDeliveryFee: defaultDeliveryFee,
		logger:             logger,
	}
}

type settlementResult struct {
	order   *model.Order
	created bool
}

// Settle runs the settlement pipeline: normalize, verify payment, recompute
// totals, persist idempotently. Safe to re-invoke for the same payment
// reference (webhook redelivery, client retry); concurrent attempts for one
// reference collapse into a single execution, and the unique constraint on
// payment_reference backs that up across processes. The boolean reports
// whether this call recorded a new order or replayed an existing one.
func (u *SettlementUseCase) Settle(ctx context.Context, in CheckoutInput) (*model.Order, bool, error) {
	input, err := NormalizeCheckout(in)
	if err != nil {
		return nil, false, err
	}

	v, err, _ := u.inflight.Do(input.PaymentReference, func() (any, error) {
		return u.settle(ctx, input)
	})
	if err != nil {
		return nil, false, err
	}
	result := v.(settlementResult)
	return result.order, result.created, nil
}

func (u *SettlementUseCase) settle(ctx context.Context, input *SettlementInput) (settlementResult, error) {
	confirmation, err := u.payments.GetPaymentStatus(ctx, input.PaymentReference)
	if err != nil {
		return settlementResult{}, fmt.Errorf("%w: payment lookup: %v", domainErrors.ErrUpstreamUnavailable, err)
	}
	if confirmation.Status != model.PaymentStatusSucceeded {
		return settlementResult{}, fmt.Errorf("%w: payment %s has status %s", domainErrors.ErrPaymentNotConfirmed, input.PaymentReference, confirmation.Status)
	}

	if len(input.Lines) == 0 {
		return settlementResult{}, fmt.Errorf("%w: no line items", domainErrors.ErrInvalidCart)
	}

	pricing, lines := u.computeTotals(input)
	if pricing.Subtotal.Sign() <= 0 {
		return settlementResult{}, fmt.Errorf("%w: all line items resolve to zero", domainErrors.ErrInvalidCart)
	}

	if confirmed := confirmation.Amount; confirmed != 0 && money.MinorUnits(pricing.Total) != confirmed {
		u.logger.Warn("confirmed payment amount differs from recomputed total",
			slog.String("payment_reference", input.PaymentReference),
			slog.Int64("confirmed_amount", confirmed),
			slog.Int64("recomputed_amount", money.MinorUnits(pricing.Total)),
		)
	}

	existing, err := u.orders.GetByPaymentReference(ctx, input.PaymentReference)
	if err == nil {
		return settlementResult{order: existing}, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return settlementResult{}, fmt.Errorf("%w: order lookup: %v", domainErrors.ErrPersistenceFailure, err)
	}

	order := &model.Order{
		ID:               uuid.NewString(),
		PaymentReference: input.PaymentReference,
		Customer:         input.Customer,
		Delivery:         input.Delivery,
		Lines:            lines,
		Pricing:          pricing,
		Status:           model.OrderStatusPaid,
	}

	stored, created, err := u.orders.Create(ctx, order)
	if err != nil {
		return settlementResult{}, fmt.Errorf("%w: create order: %v", domainErrors.ErrPersistenceFailure, err)
	}
	if !created {
		u.logger.Info("settlement replayed, returning existing order",
			slog.String("payment_reference", input.PaymentReference),
			slog.String("order_id", stored.ID),
		)
		return settlementResult{order: stored}, nil
	}

	u.logger.Info("order settled",
		slog.String("payment_reference", input.PaymentReference),
		slog.String("order_id", stored.ID),
		slog.String("total", pricing.Total.String()),
	)
	return settlementResult{order: stored, created: true}, nil
}

func (u *SettlementUseCase) computeTotals(input *SettlementInput) (model.PricingBreakdown, []model.OrderLine) {
	subtotal := decimal.Zero
	lines := make([]model.OrderLine, 0, len(input.Lines))
	for _, l := range input.Lines {
		amount := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		subtotal = subtotal.Add(amount)
		lines = append(lines, model.OrderLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Amount:    amount,
		})
	}

	fee := u.defaultDeliveryFee
	if input.DeliveryFee != nil {
		fee = *input.DeliveryFee
	}
	tax := money.RoundCents(subtotal.Mul(u.taxRate))

	return model.PricingBreakdown{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       subtotal.Add(fee).Add(tax),
	}, lines
}
