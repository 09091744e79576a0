package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/linkmart/linkmart/internal/domain/errors"
	"github.com/linkmart/linkmart/internal/domain/model"
	"github.com/linkmart/linkmart/internal/lifecycle"
)

func newBenchmarkFixture(orders *stubOrderRepository, benchmarks *stubBenchmarkRepository) *BenchmarkUseCase {
	return NewBenchmarkUseCase(benchmarks, orders, discardLogger())
}

func TestBenchmarkCaptureSnapshotsPricingAndItems(t *testing.T) {
	order := newOrderFixture(lifecycle.StatusDraft)
	order.SubtotalCents = 15000
	order.TotalRetailCents = 15000
	order.TotalWholesaleCents = 9500
	order.ProfitMarginCents = 5500
	orders := &stubOrderRepository{
		orders: map[int64]*model.Order{10: order},
		lineItems: []model.OrderLineItem{
			{ID: 1, GroupID: 4, TargetPageURL: "https://example.com/a", AnchorText: "guest post", RetailCents: 10000, WholesaleCents: 6000, Pool: model.PoolPrimary},
			{ID: 2, GroupID: 4, TargetPageURL: "https://example.com/b", AnchorText: "link", RetailCents: 5000, WholesaleCents: 3500, Pool: model.PoolAlternative},
		},
	}
	benchmarks := &stubBenchmarkRepository{}
	uc := newBenchmarkFixture(orders, benchmarks)

	created, err := uc.Capture(context.Background(), 10, 7, model.BenchmarkReasonOrderSubmitted, "")
	require.NoError(t, err)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", created.ID.String())
	assert.Equal(t, int64(10), created.OrderID)
	assert.Equal(t, int64(15000), created.Payload.SubtotalCents)
	assert.Equal(t, int64(5500), created.Payload.ProfitMarginCents)
	require.Len(t, created.Payload.LineItems, 2)
	assert.Equal(t, "https://example.com/a", created.Payload.LineItems[0].TargetPageURL)
	assert.Equal(t, model.PoolAlternative, created.Payload.LineItems[1].Pool)
}

func TestBenchmarkCaptureTwiceCreatesDistinctRows(t *testing.T) {
	orders := &stubOrderRepository{orders: map[int64]*model.Order{10: newOrderFixture(lifecycle.StatusDraft)}}
	benchmarks := &stubBenchmarkRepository{}
	uc := newBenchmarkFixture(orders, benchmarks)

	first, err := uc.Capture(context.Background(), 10, 7, model.BenchmarkReasonOrderSubmitted, "")
	require.NoError(t, err)
	second, err := uc.Capture(context.Background(), 10, 7, model.BenchmarkReasonOrderSubmitted, "")
	require.NoError(t, err)

	require.Len(t, benchmarks.created, 2)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBenchmarkCaptureUnknownOrder(t *testing.T) {
	uc := newBenchmarkFixture(&stubOrderRepository{orders: map[int64]*model.Order{}}, &stubBenchmarkRepository{})

	_, err := uc.Capture(context.Background(), 99, 1, model.BenchmarkReasonOrderSubmitted, "")
	require.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestBenchmarkRollbackEligibilityAlwaysPermits(t *testing.T) {
	orders := &stubOrderRepository{orders: map[int64]*model.Order{10: newOrderFixture(lifecycle.StatusDraft)}}
	uc := newBenchmarkFixture(orders, &stubBenchmarkRepository{})

	eligibility, err := uc.RollbackEligibility(context.Background(), 10)
	require.NoError(t, err)
	assert.True(t, eligibility.CanRollback)
	require.NotNil(t, eligibility.SubmissionsWithoutPoolData)
	assert.Empty(t, eligibility.SubmissionsWithoutPoolData)
}

func TestBenchmarkRollbackPoolMigration(t *testing.T) {
	orders := &stubOrderRepository{orders: map[int64]*model.Order{10: newOrderFixture(lifecycle.StatusDraft)}}
	benchmarks := &stubBenchmarkRepository{}
	uc := newBenchmarkFixture(orders, benchmarks)

	_, err := uc.RollbackPoolMigration(context.Background(), 10)
	require.NoError(t, err)

	_, err = uc.RollbackPoolMigration(context.Background(), 404)
	require.ErrorIs(t, err, domainErrors.ErrNotFound)
}
