package usecase

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/linkmart/linkmart/internal/domain/errors"
	"github.com/linkmart/linkmart/internal/domain/model"
	"github.com/linkmart/linkmart/internal/domain/repository"
	"github.com/linkmart/linkmart/internal/lifecycle"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders     repository.OrderRepository
	users      repository.UserRepository
	benchmarks *BenchmarkUseCase
	logger     *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, users repository.UserRepository, benchmarks *BenchmarkUseCase, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, users: users, benchmarks: benchmarks, logger: logger}
}

// Create registers a new draft order with its groups and line items.
func (u *OrderUseCase) Create(ctx context.Context, accountID int64, state model.OrderState, groups []repository.NewOrderGroup) (*model.Order, error) {
	if state == "" {
		state = model.OrderStateConfiguring
	}
	return u.orders.Create(ctx, accountID, state, totalsFromNewGroups(groups), groups)
}

// GetByID loads one order.
func (u *OrderUseCase) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// ListByAccount returns orders sorted by creation time.
func (u *OrderUseCase) ListByAccount(ctx context.Context, accountID int64) ([]model.Order, error) {
	return u.orders.ListByAccount(ctx, accountID)
}

// Groups returns the order's groups.
func (u *OrderUseCase) Groups(ctx context.Context, orderID int64) ([]model.OrderGroup, error) {
	return u.orders.ListGroups(ctx, orderID)
}

// LineItems returns the order's line items.
func (u *OrderUseCase) LineItems(ctx context.Context, orderID int64) ([]model.OrderLineItem, error) {
	return u.orders.ListLineItems(ctx, orderID)
}

// StatusOverview bundles the current status, the reachable transitions, and
// the milestone flags of an order.
type StatusOverview struct {
	Order       *model.Order
	Transitions lifecycle.Transitions
	Flags       lifecycle.OrderFlags
}

// StatusOverview reports the order's position in the lifecycle.
func (u *OrderUseCase) StatusOverview(ctx context.Context, orderID int64) (*StatusOverview, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	transitions, err := lifecycle.Available(order.Status)
	if err != nil {
		return nil, err
	}
	return &StatusOverview{Order: order, Transitions: transitions, Flags: order.Flags()}, nil
}

// ChangeStatus validates and applies one status transition. When the result
// requires confirmation no mutation is performed and the unchanged order is
// returned alongside the warnings.
func (u *OrderUseCase) ChangeStatus(ctx context.Context, orderID int64, requested lifecycle.Status, force bool) (*model.Order, lifecycle.Result, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, lifecycle.Result{}, err
	}

	result, err := lifecycle.Validate(order.Status, requested, force, order.Flags())
	if err != nil {
		return nil, lifecycle.Result{}, err
	}
	if result.RequiresConfirmation {
		return order, result, nil
	}

	mutation := lifecycle.ComputeMutation(result.Requested, result.Backward)
	updated, err := u.orders.ApplyTransition(ctx, order.ID, order.Version, mutation)
	if err != nil {
		return nil, lifecycle.Result{}, err
	}
	return updated, result, nil
}

// SubmitResult is the outcome of an order submission. Benchmark is nil when
// the best-effort snapshot could not be captured.
type SubmitResult struct {
	Order        *model.Order
	Benchmark    *model.OrderBenchmark
	IsQuickStart bool
	From         lifecycle.Status
}

// Submit moves a draft order to pending_confirmation, recomputing pricing
// totals from line items. A benchmark snapshot is captured best-effort:
// failures are logged and never abort the submission.
func (u *OrderUseCase) Submit(ctx context.Context, orderID, actorID int64) (*SubmitResult, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Submission is the draft-only forward step. Validate alone would also
	// accept the backward confirmed -> pending_confirmation pair and turn a
	// submit into a silent rollback.
	if !lifecycle.Known(order.Status) {
		return nil, lifecycle.ErrUnknownStatus
	}
	if order.Status != lifecycle.StatusDraft {
		return nil, lifecycle.IllegalTransitionError{From: order.Status, To: lifecycle.StatusPendingConfirmation}
	}

	items, err := u.orders.ListLineItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	updated, err := u.orders.Submit(ctx, order.ID, order.Version, totalsFromLineItems(items), model.OrderStateAwaitingReview)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{Order: updated, IsQuickStart: len(items) == 0, From: order.Status}

	capturedBy, err := u.resolveCapturedBy(ctx, actorID)
	if err != nil {
		u.logger.Error("benchmark identity resolution failed",
			slog.Int64("order_id", order.ID),
			slog.Int64("actor_id", actorID),
			slog.String("error", err.Error()),
		)
		return result, nil
	}

	benchmark, err := u.benchmarks.Capture(ctx, order.ID, capturedBy, model.BenchmarkReasonOrderSubmitted, "")
	if err != nil {
		u.logger.Error("benchmark capture failed",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		return result, nil
	}
	result.Benchmark = benchmark

	return result, nil
}

// resolveCapturedBy maps the acting identity to one that exists in the
// identity store with internal privilege. External identities are
// substituted with the designated system identity; if none exists the
// benchmark attempt must fail rather than proceed with an invalid identity.
func (u *OrderUseCase) resolveCapturedBy(ctx context.Context, actorID int64) (int64, error) {
	if actorID != 0 {
		actor, err := u.users.GetByID(ctx, actorID)
		if err == nil && actor.IsInternal() {
			return actor.ID, nil
		}
		if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
			return 0, err
		}
	}

	substitute, err := u.users.FirstInternal(ctx)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return 0, domainErrors.ErrIdentityResolution
		}
		return 0, err
	}
	return substitute.ID, nil
}

// OrdersWithStaleTotals returns draft orders whose line items changed after
// the cached totals were last written.
func (u *OrderUseCase) OrdersWithStaleTotals(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectStaleTotalsBatch(ctx, limit)
}

// RefreshTotals recomputes and persists the cached pricing totals.
func (u *OrderUseCase) RefreshTotals(ctx context.Context, orderID int64) error {
	items, err := u.orders.ListLineItems(ctx, orderID)
	if err != nil {
		return err
	}
	return u.orders.UpdateTotals(ctx, orderID, totalsFromLineItems(items))
}

func totalsFromLineItems(items []model.OrderLineItem) model.OrderTotals {
	var totals model.OrderTotals
	for _, li := range items {
		totals.TotalRetailCents += li.RetailCents
		totals.TotalWholesaleCents += li.WholesaleCents
	}
	totals.SubtotalCents = totals.TotalRetailCents
	totals.ProfitMarginCents = totals.TotalRetailCents - totals.TotalWholesaleCents
	return totals
}

func totalsFromNewGroups(groups []repository.NewOrderGroup) model.OrderTotals {
	var totals model.OrderTotals
	for _, g := range groups {
		for _, li := range g.LineItems {
			totals.TotalRetailCents += li.RetailCents
			totals.TotalWholesaleCents += li.WholesaleCents
		}
	}
	totals.SubtotalCents = totals.TotalRetailCents
	totals.ProfitMarginCents = totals.TotalRetailCents - totals.TotalWholesaleCents
	return totals
}
