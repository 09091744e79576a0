package repository

import (
	"context"

	"github.com/linkmart/linkmart/internal/domain/model"
)

// BenchmarkRepository persists order benchmark snapshots. Benchmarks are
// append-only; the single delete path is the pool-to-status rollback, which
// is scoped by capture reason and notes sentinel, never by time range.
type BenchmarkRepository interface {
	Create(ctx context.Context, benchmark *model.OrderBenchmark) (*model.OrderBenchmark, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.OrderBenchmark, error)
	RollbackPoolMigration(ctx context.Context, orderID int64) (model.PoolRollbackResult, error)
}
