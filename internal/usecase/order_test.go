package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/linkmart/linkmart/internal/domain/errors"
	"github.com/linkmart/linkmart/internal/domain/model"
	"github.com/linkmart/linkmart/internal/domain/repository"
	"github.com/linkmart/linkmart/internal/lifecycle"
)

type stubOrderRepository struct {
	orders          map[int64]*model.Order
	lineItems       []model.OrderLineItem
	transitionErr   error
	submitErr       error
	lineItemsErr    error
	transitionCalls []lifecycle.Mutation
	submitted       []model.OrderTotals
	totalsWritten   []model.OrderTotals
}

func (s *stubOrderRepository) Create(ctx context.Context, accountID int64, state model.OrderState, totals model.OrderTotals, groups []repository.NewOrderGroup) (*model.Order, error) {
	return &model.Order{ID: 1, AccountID: accountID, Status: lifecycle.StatusDraft, State: state,
		SubtotalCents: totals.SubtotalCents, TotalRetailCents: totals.TotalRetailCents,
		TotalWholesaleCents: totals.TotalWholesaleCents, ProfitMarginCents: totals.ProfitMarginCents, Version: 1}, nil
}

func (s *stubOrderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	if o, ok := s.orders[orderID]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *stubOrderRepository) ListByAccount(context.Context, int64) ([]model.Order, error) {
	panic("not implemented")
}

func (s *stubOrderRepository) ListGroups(context.Context, int64) ([]model.OrderGroup, error) {
	panic("not implemented")
}

func (s *stubOrderRepository) ListLineItems(ctx context.Context, orderID int64) ([]model.OrderLineItem, error) {
	if s.lineItemsErr != nil {
		return nil, s.lineItemsErr
	}
	return s.lineItems, nil
}

func (s *stubOrderRepository) ApplyTransition(ctx context.Context, orderID, expectedVersion int64, m lifecycle.Mutation) (*model.Order, error) {
	if s.transitionErr != nil {
		return nil, s.transitionErr
	}
	s.transitionCalls = append(s.transitionCalls, m)
	order := *s.orders[orderID]
	order.Status = m.Status
	if m.ClearApproval {
		order.ApprovedAt = nil
		order.ApprovedBy = nil
	}
	if m.ClearPayment {
		order.PaidAt = nil
	}
	order.Version = expectedVersion + 1
	return &order, nil
}

func (s *stubOrderRepository) Submit(ctx context.Context, orderID, expectedVersion int64, totals model.OrderTotals, state model.OrderState) (*model.Order, error) {
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	s.submitted = append(s.submitted, totals)
	order := *s.orders[orderID]
	order.Status = lifecycle.StatusPendingConfirmation
	order.State = state
	order.SubtotalCents = totals.SubtotalCents
	order.TotalRetailCents = totals.TotalRetailCents
	order.TotalWholesaleCents = totals.TotalWholesaleCents
	order.ProfitMarginCents = totals.ProfitMarginCents
	order.Version = expectedVersion + 1
	return &order, nil
}

func (s *stubOrderRepository) SelectStaleTotalsBatch(context.Context, int) ([]model.Order, error) {
	panic("not implemented")
}

func (s *stubOrderRepository) UpdateTotals(ctx context.Context, orderID int64, totals model.OrderTotals) error {
	s.totalsWritten = append(s.totalsWritten, totals)
	return nil
}

type stubUserRepository struct {
	byID     map[int64]*model.User
	internal *model.User
}

func (s *stubUserRepository) Create(context.Context, string, string, model.UserRole) (*model.User, error) {
	panic("not implemented")
}

func (s *stubUserRepository) GetByLogin(context.Context, string) (*model.User, error) {
	panic("not implemented")
}

func (s *stubUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *stubUserRepository) FirstInternal(ctx context.Context) (*model.User, error) {
	if s.internal == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.internal, nil
}

type stubBenchmarkRepository struct {
	created []*model.OrderBenchmark
	err     error
}

func (s *stubBenchmarkRepository) Create(ctx context.Context, b *model.OrderBenchmark) (*model.OrderBenchmark, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, b)
	return b, nil
}

func (s *stubBenchmarkRepository) ListByOrder(context.Context, int64) ([]model.OrderBenchmark, error) {
	return nil, nil
}

func (s *stubBenchmarkRepository) RollbackPoolMigration(context.Context, int64) (model.PoolRollbackResult, error) {
	return model.PoolRollbackResult{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func int64Ptr(v int64) *int64 { return &v }

func newOrderFixture(status lifecycle.Status) *model.Order {
	return &model.Order{ID: 10, AccountID: 3, Status: status, State: model.OrderStateConfiguring, Version: 4}
}

func newUseCaseFixture(orders *stubOrderRepository, users *stubUserRepository, benchmarks *stubBenchmarkRepository) *OrderUseCase {
	logger := discardLogger()
	buc := NewBenchmarkUseCase(benchmarks, orders, logger)
	return NewOrderUseCase(orders, users, buc, logger)
}

func TestChangeStatusForwardMutates(t *testing.T) {
	orders := &stubOrderRepository{orders: map[int64]*model.Order{10: newOrderFixture(lifecycle.StatusDraft)}}
	uc := newUseCaseFixture(orders, &stubUserRepository{}, &stubBenchmarkRepository{})

	updated, result, err := uc.ChangeStatus(context.Background(), 10, lifecycle.StatusPendingConfirmation, false)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusPendingConfirmation, updated.Status)
	assert.Equal(t, lifecycle.StatusDraft, result.From)
	assert.False(t, result.Backward)
	assert.Empty(t, result.Warnings)
	require.Len(t, orders.transitionCalls, 1)
	assert.Equal(t, int64(5), updated.Version)
}

func TestChangeStatusUnknownStatusRejected(t *testing.T) {
	orders := &stubOrderRepository{orders: map[int64]*model.Order{10: newOrderFixture("archived")}}
	uc := newUseCaseFixture(orders, &stubUserRepository{}, &stubBenchmarkRepository{})

	_, _, err := uc.ChangeStatus(context.Background(), 10, lifecycle.StatusDraft, false)
	require.ErrorIs(t, err, lifecycle.ErrUnknownStatus)
	assert.Empty(t, orders.transitionCalls)
}

func TestChangeStatusIllegalTransitionRejected(t *testing.T) {
	orders := &stubOrderRepository{orders: map[int64]*model.Order{10: newOrderFixture(lifecycle.StatusDraft)}}
	uc := newUseCaseFixture(orders, &stubUserRepository{}, &stubBenchmarkRepository{})

	_, _, err := uc.ChangeStatus(context.Background(), 10, lifecycle.StatusConfirmed, false)
	var illegal lifecycle.IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, lifecycle.StatusDraft, illegal.From)
	assert.Equal(t, lifecycle.StatusConfirmed, illegal.To)
	assert.Empty(t, orders.transitionCalls)
}

func TestChangeStatusRequiresConfirmationLeavesOrderUntouched(t *testing.T) {
	order := newOrderFixture(lifecycle.StatusConfirmed)
	order.InvoicedAt = &order.CreatedAt
	orders := &stubOrderRepository{orders: map[int64]*model.Order{10: order}}
	uc := newUseCaseFixture(orders, &stubUserRepository{}, &stubBenchmarkRepository{})

	returned, result, err := uc.ChangeStatus(context.Background(), 10, lifecycle.StatusPendingConfirmation, false)
	require.NoError(t, err)
	assert.True(t, result.RequiresConfirmation)
	assert.NotEmpty(t, result.Warnings)
	assert.Equal(t, lifecycle.StatusConfirmed, returned.Status)
	assert.Empty(t, orders.transitionCalls, "no mutation may happen without confirmation")
}

func TestChangeStatusForcedRollbackClearsApproval(t *testing.T) {
	now := newOrderFixture(lifecycle.StatusConfirmed)
	now.InvoicedAt = &now.CreatedAt
	now.ApprovedAt = &now.CreatedAt
	approver := int64(2)
	now.ApprovedBy = &approver
	orders := &stubOrderRepository{orders: map[int64]*model.Order{10: now}}
	uc := newUseCaseFixture(orders, &stubUserRepository{}, &stubBenchmarkRepository{})

	updated, result, err := uc.ChangeStatus(context.Background(), 10, lifecycle.StatusPendingConfirmation, true)
	require.NoError(t, err)
	assert.False(t, result.RequiresConfirmation)
	assert.NotEmpty(t, result.Warnings, "forcing keeps the warnings visible")
	require.Len(t, orders.transitionCalls, 1)
	assert.True(t, orders.transitionCalls[0].ClearApproval)
	assert.Nil(t, updated.ApprovedAt)
	assert.Nil(t, updated.ApprovedBy)
}

func TestChangeStatusVersionConflictPropagates(t *testing.T) {
	orders := &stubOrderRepository{
		orders:        map[int64]*model.Order{10: newOrderFixture(lifecycle.StatusDraft)},
		transitionErr: domainErrors.ErrVersionConflict,
	}
	uc := newUseCaseFixture(orders, &stubUserRepository{}, &stubBenchmarkRepository{})

	_, _, err := uc.ChangeStatus(context.Background(), 10, lifecycle.StatusPendingConfirmation, false)
	require.ErrorIs(t, err, domainErrors.ErrVersionConflict)
}

func TestSubmitRecomputesTotalsAndCapturesBenchmark(t *testing.T) {
	orders := &stubOrderRepository{
		orders: map[int64]*model.Order{10: newOrderFixture(lifecycle.StatusDraft)},
		lineItems: []model.OrderLineItem{
			{ID: 1, GroupID: 1, RetailCents: 10000, WholesaleCents: 6000},
			{ID: 2, GroupID: 1, RetailCents: 5000, WholesaleCents: 3500},
		},
	}
	users := &stubUserRepository{byID: map[int64]*model.User{7: {ID: 7, Role: model.UserRoleInternal}}}
	benchmarks := &stubBenchmarkRepository{}
	uc := newUseCaseFixture(orders, users, benchmarks)

	result, err := uc.Submit(context.Background(), 10, 7)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusPendingConfirmation, result.Order.Status)
	assert.Equal(t, model.OrderStateAwaitingReview, result.Order.State)
	assert.False(t, result.IsQuickStart)

	require.Len(t, orders.submitted, 1)
	assert.Equal(t, int64(15000), orders.submitted[0].TotalRetailCents)
	assert.Equal(t, int64(15000), orders.submitted[0].SubtotalCents)
	assert.Equal(t, int64(5500), orders.submitted[0].ProfitMarginCents)

	require.NotNil(t, result.Benchmark)
	require.Len(t, benchmarks.created, 1)
	assert.Equal(t, model.BenchmarkReasonOrderSubmitted, benchmarks.created[0].CaptureReason)
	assert.Equal(t, int64(7), benchmarks.created[0].CapturedBy)
	assert.Len(t, benchmarks.created[0].Payload.LineItems, 2)
}

func TestSubmitQuickStartWithoutLineItems(t *testing.T) {
	orders := &stubOrderRepository{orders: map[int64]*model.Order{10: newOrderFixture(lifecycle.StatusDraft)}}
	users := &stubUserRepository{internal: &model.User{ID: 1, Role: model.UserRoleInternal}}
	uc := newUseCaseFixture(orders, users, &stubBenchmarkRepository{})

	result, err := uc.Submit(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.True(t, result.IsQuickStart)
	assert.Equal(t, int64(0), orders.submitted[0].TotalRetailCents)
}

func TestSubmitRejectsNonDraftOrder(t *testing.T) {
	for _, status := range []lifecycle.Status{
		lifecycle.StatusPendingConfirmation,
		lifecycle.StatusConfirmed,
		lifecycle.StatusPaid,
		lifecycle.StatusCompleted,
	} {
		t.Run(string(status), func(t *testing.T) {
			orders := &stubOrderRepository{orders: map[int64]*model.Order{10: newOrderFixture(status)}}
			uc := newUseCaseFixture(orders, &stubUserRepository{}, &stubBenchmarkRepository{})

			_, err := uc.Submit(context.Background(), 10, 1)
			var illegal lifecycle.IllegalTransitionError
			require.ErrorAs(t, err, &illegal)
			assert.Equal(t, status, illegal.From)
			assert.Empty(t, orders.submitted)
		})
	}
}

func TestSubmitDoesNotRollBackConfirmedOrder(t *testing.T) {
	approvedAt := time.Now()
	order := newOrderFixture(lifecycle.StatusConfirmed)
	order.ApprovedAt = &approvedAt
	order.ApprovedBy = int64Ptr(7)
	orders := &stubOrderRepository{orders: map[int64]*model.Order{10: order}}
	users := &stubUserRepository{internal: &model.User{ID: 1, Role: model.UserRoleInternal}}
	uc := newUseCaseFixture(orders, users, &stubBenchmarkRepository{})

	_, err := uc.Submit(context.Background(), 10, 7)
	require.Error(t, err, "submitting a confirmed order must not be treated as a rollback")
	assert.Empty(t, orders.submitted)

	stored := orders.orders[10]
	assert.Equal(t, lifecycle.StatusConfirmed, stored.Status)
	require.NotNil(t, stored.ApprovedAt)
	assert.NotNil(t, stored.ApprovedBy)
}

func TestSubmitRejectsUnknownStatus(t *testing.T) {
	orders := &stubOrderRepository{orders: map[int64]*model.Order{10: newOrderFixture(lifecycle.Status("archived"))}}
	uc := newUseCaseFixture(orders, &stubUserRepository{}, &stubBenchmarkRepository{})

	_, err := uc.Submit(context.Background(), 10, 1)
	require.ErrorIs(t, err, lifecycle.ErrUnknownStatus)
	assert.Empty(t, orders.submitted)
}

func TestSubmitSurvivesBenchmarkFailure(t *testing.T) {
	orders := &stubOrderRepository{orders: map[int64]*model.Order{10: newOrderFixture(lifecycle.StatusDraft)}}
	users := &stubUserRepository{internal: &model.User{ID: 1, Role: model.UserRoleInternal}}
	benchmarks := &stubBenchmarkRepository{err: errors.New("insert failed")}
	uc := newUseCaseFixture(orders, users, benchmarks)

	result, err := uc.Submit(context.Background(), 10, 1)
	require.NoError(t, err, "benchmark failure must not abort submission")
	assert.Equal(t, lifecycle.StatusPendingConfirmation, result.Order.Status)
	assert.Nil(t, result.Benchmark)
}

func TestSubmitSurvivesMissingInternalIdentity(t *testing.T) {
	orders := &stubOrderRepository{orders: map[int64]*model.Order{10: newOrderFixture(lifecycle.StatusDraft)}}
	benchmarks := &stubBenchmarkRepository{}
	uc := newUseCaseFixture(orders, &stubUserRepository{}, benchmarks)

	result, err := uc.Submit(context.Background(), 10, 99)
	require.NoError(t, err)
	assert.Nil(t, result.Benchmark)
	assert.Empty(t, benchmarks.created, "no benchmark may be attributed to an unresolved identity")
}

func TestSubmitSubstitutesExternalActor(t *testing.T) {
	orders := &stubOrderRepository{orders: map[int64]*model.Order{10: newOrderFixture(lifecycle.StatusDraft)}}
	users := &stubUserRepository{
		byID:     map[int64]*model.User{5: {ID: 5, Role: model.UserRoleAccount}},
		internal: &model.User{ID: 2, Role: model.UserRoleInternal},
	}
	benchmarks := &stubBenchmarkRepository{}
	uc := newUseCaseFixture(orders, users, benchmarks)

	result, err := uc.Submit(context.Background(), 10, 5)
	require.NoError(t, err)
	require.NotNil(t, result.Benchmark)
	assert.Equal(t, int64(2), benchmarks.created[0].CapturedBy)
}

func TestRefreshTotalsWritesRecomputedValues(t *testing.T) {
	orders := &stubOrderRepository{
		orders:    map[int64]*model.Order{10: newOrderFixture(lifecycle.StatusDraft)},
		lineItems: []model.OrderLineItem{{RetailCents: 2000, WholesaleCents: 1200}},
	}
	uc := newUseCaseFixture(orders, &stubUserRepository{}, &stubBenchmarkRepository{})

	require.NoError(t, uc.RefreshTotals(context.Background(), 10))
	require.Len(t, orders.totalsWritten, 1)
	assert.Equal(t, int64(2000), orders.totalsWritten[0].SubtotalCents)
	assert.Equal(t, int64(800), orders.totalsWritten[0].ProfitMarginCents)
}

func TestStatusOverviewReturnsTransitionsAndFlags(t *testing.T) {
	order := newOrderFixture(lifecycle.StatusPaid)
	order.PaidAt = &order.CreatedAt
	orders := &stubOrderRepository{orders: map[int64]*model.Order{10: order}}
	uc := newUseCaseFixture(orders, &stubUserRepository{}, &stubBenchmarkRepository{})

	overview, err := uc.StatusOverview(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []lifecycle.Status{lifecycle.StatusCompleted}, overview.Transitions.Forward)
	assert.Equal(t, []lifecycle.Status{lifecycle.StatusConfirmed}, overview.Transitions.Backward)
	assert.True(t, overview.Flags.IsPaid)
}
