package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/linkmart/linkmart/internal/domain/model"
	"github.com/linkmart/linkmart/internal/domain/repository"
	"github.com/linkmart/linkmart/internal/lifecycle"
	"github.com/linkmart/linkmart/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn         func(context.Context, int64, model.OrderState, []repository.NewOrderGroup) (*model.Order, error)
	OrderFn          func(context.Context, int64) (*model.Order, error)
	OrdersFn         func(context.Context, int64) ([]model.Order, error)
	LineItemsFn      func(context.Context, int64) ([]model.OrderLineItem, error)
	StatusOverviewFn func(context.Context, int64) (*usecase.StatusOverview, error)
	ChangeStatusFn   func(context.Context, int64, lifecycle.Status, bool) (*model.Order, lifecycle.Result, error)
	SubmitFn         func(context.Context, int64, int64) (*usecase.SubmitResult, error)
}

// CreateOrder delegates to the override or returns a default draft order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, accountID int64, state model.OrderState, groups []repository.NewOrderGroup) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, accountID, state, groups)
	}
	return &model.Order{ID: 1, AccountID: accountID, Status: lifecycle.StatusDraft, State: state, Version: 1}, nil
}

// Order returns a predefined order.
func (s OrderFacadeStub) Order(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: lifecycle.StatusDraft, Version: 1}, nil
}

// Orders returns predefined orders for the given account.
func (s OrderFacadeStub) Orders(ctx context.Context, accountID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, accountID)
	}
	return []model.Order{{ID: 1, AccountID: accountID}}, nil
}

// OrderLineItems returns predefined line items.
func (s OrderFacadeStub) OrderLineItems(ctx context.Context, orderID int64) ([]model.OrderLineItem, error) {
	if s.LineItemsFn != nil {
		return s.LineItemsFn(ctx, orderID)
	}
	return nil, nil
}

// StatusOverview returns the configured overview or a draft default.
func (s OrderFacadeStub) StatusOverview(ctx context.Context, orderID int64) (*usecase.StatusOverview, error) {
	if s.StatusOverviewFn != nil {
		return s.StatusOverviewFn(ctx, orderID)
	}
	transitions, _ := lifecycle.Available(lifecycle.StatusDraft)
	return &usecase.StatusOverview{
		Order:       &model.Order{ID: orderID, Status: lifecycle.StatusDraft, Version: 1},
		Transitions: transitions,
	}, nil
}

// ChangeStatus delegates to the override or applies the requested status.
func (s OrderFacadeStub) ChangeStatus(ctx context.Context, orderID int64, requested lifecycle.Status, force bool) (*model.Order, lifecycle.Result, error) {
	if s.ChangeStatusFn != nil {
		return s.ChangeStatusFn(ctx, orderID, requested, force)
	}
	return &model.Order{ID: orderID, Status: requested, Version: 2}, lifecycle.Result{Requested: requested}, nil
}

// SubmitOrder delegates to the override or reports a plain submission.
func (s OrderFacadeStub) SubmitOrder(ctx context.Context, orderID, actorID int64) (*usecase.SubmitResult, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, orderID, actorID)
	}
	return &usecase.SubmitResult{
		Order: &model.Order{ID: orderID, Status: lifecycle.StatusPendingConfirmation, Version: 2},
		From:  lifecycle.StatusDraft,
	}, nil
}

// BenchmarkFacadeStub simulates benchmark and migration tooling operations.
type BenchmarkFacadeStub struct {
	BenchmarksFn  func(context.Context, int64) ([]model.OrderBenchmark, error)
	EligibilityFn func(context.Context, int64) (model.PoolRollbackEligibility, error)
	RollbackFn    func(context.Context, int64) (model.PoolRollbackResult, error)
}

// Benchmarks returns configured snapshots.
func (s BenchmarkFacadeStub) Benchmarks(ctx context.Context, orderID int64) ([]model.OrderBenchmark, error) {
	if s.BenchmarksFn != nil {
		return s.BenchmarksFn(ctx, orderID)
	}
	return nil, nil
}

// PoolRollbackEligibility reports the configured eligibility.
func (s BenchmarkFacadeStub) PoolRollbackEligibility(ctx context.Context, orderID int64) (model.PoolRollbackEligibility, error) {
	if s.EligibilityFn != nil {
		return s.EligibilityFn(ctx, orderID)
	}
	return model.PoolRollbackEligibility{CanRollback: true, SubmissionsWithoutPoolData: []int64{}}, nil
}

// RollbackPoolMigration reports the configured rollback outcome.
func (s BenchmarkFacadeStub) RollbackPoolMigration(ctx context.Context, orderID int64) (model.PoolRollbackResult, error) {
	if s.RollbackFn != nil {
		return s.RollbackFn(ctx, orderID)
	}
	return model.PoolRollbackResult{}, nil
}

// WorkerFacadeStub mimics refresher interactions with the market facade.
type WorkerFacadeStub struct {
	Batches         [][]model.Order
	BatchesFn       func(context.Context, int) ([]model.Order, error)
	RefreshFn       func(context.Context, int64) error
	Refreshed       []int64
	mu              sync.Mutex
	batchesCallsSeq int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// OrdersWithStaleTotals returns batches from configured queue.
func (s *WorkerFacadeStub) OrdersWithStaleTotals(ctx context.Context, limit int) ([]model.Order, error) {
	if s.BatchesFn != nil {
		return s.BatchesFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchesCallsSeq, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// RefreshOrderTotals records refresh requests.
func (s *WorkerFacadeStub) RefreshOrderTotals(ctx context.Context, orderID int64) error {
	if s.RefreshFn != nil {
		return s.RefreshFn(ctx, orderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Refreshed = append(s.Refreshed, orderID)
	return nil
}

// MarketFacadeStub aggregates facade dependencies for HTTP layer tests.
type MarketFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	BenchmarkFacadeStub
}
