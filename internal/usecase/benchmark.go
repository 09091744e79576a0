package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/linkmart/linkmart/internal/domain/model"
	"github.com/linkmart/linkmart/internal/domain/repository"
)

// BenchmarkUseCase captures and serves order benchmark snapshots.
type BenchmarkUseCase struct {
	benchmarks repository.BenchmarkRepository
	orders     repository.OrderRepository
	logger     *slog.Logger
}

// NewBenchmarkUseCase constructs BenchmarkUseCase.
func NewBenchmarkUseCase(benchmarks repository.BenchmarkRepository, orders repository.OrderRepository, logger *slog.Logger) *BenchmarkUseCase {
	return &BenchmarkUseCase{benchmarks: benchmarks, orders: orders, logger: logger}
}

// Capture snapshots the order's current line items and pricing into an
// immutable benchmark row.
func (u *BenchmarkUseCase) Capture(ctx context.Context, orderID, capturedBy int64, reason, notes string) (*model.OrderBenchmark, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := u.orders.ListLineItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	payload := model.BenchmarkPayload{
		SubtotalCents:       order.SubtotalCents,
		TotalRetailCents:    order.TotalRetailCents,
		TotalWholesaleCents: order.TotalWholesaleCents,
		ProfitMarginCents:   order.ProfitMarginCents,
		LineItems:           make([]model.BenchmarkLineItem, 0, len(items)),
	}
	for _, li := range items {
		payload.LineItems = append(payload.LineItems, model.BenchmarkLineItem{
			LineItemID:     li.ID,
			GroupID:        li.GroupID,
			TargetPageURL:  li.TargetPageURL,
			AnchorText:     li.AnchorText,
			RetailCents:    li.RetailCents,
			WholesaleCents: li.WholesaleCents,
			Status:         li.Status,
			Pool:           li.Pool,
		})
	}

	return u.benchmarks.Create(ctx, &model.OrderBenchmark{
		ID:            uuid.New(),
		OrderID:       order.ID,
		CapturedBy:    capturedBy,
		CaptureReason: reason,
		Notes:         notes,
		Payload:       payload,
	})
}

// ListByOrder returns the order's benchmarks, newest first.
func (u *BenchmarkUseCase) ListByOrder(ctx context.Context, orderID int64) ([]model.OrderBenchmark, error) {
	if _, err := u.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return u.benchmarks.ListByOrder(ctx, orderID)
}

// RollbackEligibility reports whether the pool-to-status migration can be
// rolled back for an order. Since the migration copies rather than moves the
// pool values, the original data is always intact and rollback is always
// possible; the submissions check remains for operators who expect it.
func (u *BenchmarkUseCase) RollbackEligibility(ctx context.Context, orderID int64) (model.PoolRollbackEligibility, error) {
	if _, err := u.orders.GetByID(ctx, orderID); err != nil {
		return model.PoolRollbackEligibility{}, err
	}
	return model.PoolRollbackEligibility{
		CanRollback:                true,
		SubmissionsWithoutPoolData: []int64{},
	}, nil
}

// RollbackPoolMigration clears migrated line item statuses and deletes the
// benchmarks the migration created retroactively. Benchmarks captured for
// any other reason are never touched.
func (u *BenchmarkUseCase) RollbackPoolMigration(ctx context.Context, orderID int64) (model.PoolRollbackResult, error) {
	if _, err := u.orders.GetByID(ctx, orderID); err != nil {
		return model.PoolRollbackResult{}, err
	}
	result, err := u.benchmarks.RollbackPoolMigration(ctx, orderID)
	if err != nil {
		return model.PoolRollbackResult{}, err
	}
	u.logger.Info("pool migration rolled back",
		slog.Int64("order_id", orderID),
		slog.Int64("line_items_cleared", result.LineItemsCleared),
		slog.Int64("benchmarks_deleted", result.BenchmarksDeleted),
	)
	return result, nil
}
