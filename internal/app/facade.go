package app

import (
	"context"
	"log/slog"

	"github.com/linkmart/linkmart/internal/domain/model"
	"github.com/linkmart/linkmart/internal/domain/repository"
	"github.com/linkmart/linkmart/internal/event"
	"github.com/linkmart/linkmart/internal/lifecycle"
	"github.com/linkmart/linkmart/internal/usecase"
)

// MarketFacade is the single entry point the HTTP layer talks to. It wires
// the use cases together and emits domain events after successful mutations;
// event publishing is best-effort and never fails the operation.
type MarketFacade struct {
	auth       *usecase.AuthUseCase
	orders     *usecase.OrderUseCase
	benchmarks *usecase.BenchmarkUseCase
	events     event.Publisher
	logger     *slog.Logger
}

func NewMarketFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, benchmarks *usecase.BenchmarkUseCase, events event.Publisher, logger *slog.Logger) *MarketFacade {
	return &MarketFacade{auth: auth, orders: orders, benchmarks: benchmarks, events: events, logger: logger}
}

func (f *MarketFacade) Register(ctx context.Context, login, password string, role model.UserRole) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, role)
	return token, err
}

func (f *MarketFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *MarketFacade) ParseToken(token string) (int64, model.UserRole, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketFacade) CreateOrder(ctx context.Context, accountID int64, state model.OrderState, groups []repository.NewOrderGroup) (*model.Order, error) {
	return f.orders.Create(ctx, accountID, state, groups)
}

func (f *MarketFacade) Order(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.orders.GetByID(ctx, orderID)
}

func (f *MarketFacade) Orders(ctx context.Context, accountID int64) ([]model.Order, error) {
	return f.orders.ListByAccount(ctx, accountID)
}

func (f *MarketFacade) OrderLineItems(ctx context.Context, orderID int64) ([]model.OrderLineItem, error) {
	return f.orders.LineItems(ctx, orderID)
}

func (f *MarketFacade) StatusOverview(ctx context.Context, orderID int64) (*usecase.StatusOverview, error) {
	return f.orders.StatusOverview(ctx, orderID)
}

func (f *MarketFacade) ChangeStatus(ctx context.Context, orderID int64, requested lifecycle.Status, force bool) (*model.Order, lifecycle.Result, error) {
	updated, result, err := f.orders.ChangeStatus(ctx, orderID, requested, force)
	if err != nil {
		return nil, lifecycle.Result{}, err
	}
	if !result.RequiresConfirmation {
		f.publish(ctx, event.TypeOrderStatusChanged, updated.ID, event.StatusChangedPayload{
			From:     string(result.From),
			To:       string(updated.Status),
			Backward: result.Backward,
			Forced:   force,
			Warnings: result.Warnings,
		})
	}
	return updated, result, nil
}

func (f *MarketFacade) SubmitOrder(ctx context.Context, orderID, actorID int64) (*usecase.SubmitResult, error) {
	result, err := f.orders.Submit(ctx, orderID, actorID)
	if err != nil {
		return nil, err
	}

	payload := event.SubmittedPayload{
		AccountID:        result.Order.AccountID,
		SubtotalCents:    result.Order.SubtotalCents,
		TotalRetailCents: result.Order.TotalRetailCents,
		QuickStart:       result.IsQuickStart,
	}
	if result.Benchmark != nil {
		payload.BenchmarkID = result.Benchmark.ID.String()
	}
	f.publish(ctx, event.TypeOrderSubmitted, result.Order.ID, payload)

	return result, nil
}

func (f *MarketFacade) Benchmarks(ctx context.Context, orderID int64) ([]model.OrderBenchmark, error) {
	return f.benchmarks.ListByOrder(ctx, orderID)
}

func (f *MarketFacade) PoolRollbackEligibility(ctx context.Context, orderID int64) (model.PoolRollbackEligibility, error) {
	return f.benchmarks.RollbackEligibility(ctx, orderID)
}

func (f *MarketFacade) RollbackPoolMigration(ctx context.Context, orderID int64) (model.PoolRollbackResult, error) {
	return f.benchmarks.RollbackPoolMigration(ctx, orderID)
}

// OrdersWithStaleTotals exposes the refresher's batch query.
func (f *MarketFacade) OrdersWithStaleTotals(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.OrdersWithStaleTotals(ctx, limit)
}

// RefreshOrderTotals exposes the refresher's per-order recompute.
func (f *MarketFacade) RefreshOrderTotals(ctx context.Context, orderID int64) error {
	return f.orders.RefreshTotals(ctx, orderID)
}

func (f *MarketFacade) publish(ctx context.Context, eventType string, orderID int64, payload any) {
	envelope, err := event.NewEnvelope(eventType, orderID, payload)
	if err != nil {
		f.logger.Error("event payload marshal failed", slog.String("type", eventType), slog.String("error", err.Error()))
		return
	}
	if err := f.events.Publish(ctx, envelope); err != nil {
		f.logger.Error("event publish failed",
			slog.String("type", eventType),
			slog.Int64("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}
}
