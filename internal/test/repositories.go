package test

import (
	"context"

	domainErrors "github.com/linkmart/linkmart/internal/domain/errors"
	"github.com/linkmart/linkmart/internal/domain/model"
	"github.com/linkmart/linkmart/internal/domain/repository"
	"github.com/linkmart/linkmart/internal/lifecycle"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.UserRole) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// FirstInternal returns the internal user with the lowest identifier.
func (s *UserRepositoryStub) FirstInternal(ctx context.Context) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var found *model.User
	for _, user := range s.ByID {
		if !user.IsInternal() {
			continue
		}
		if found == nil || user.ID < found.ID {
			found = user
		}
	}
	if found == nil {
		return nil, domainErrors.ErrNotFound
	}
	return found, nil
}

// TransitionCall records one ApplyTransition invocation.
type TransitionCall struct {
	OrderID         int64
	ExpectedVersion int64
	Mutation        lifecycle.Mutation
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn          func(context.Context, int64, model.OrderState, model.OrderTotals, []repository.NewOrderGroup) (*model.Order, error)
	GetByIDFn         func(context.Context, int64) (*model.Order, error)
	ListByAccountFn   func(context.Context, int64) ([]model.Order, error)
	ListGroupsFn      func(context.Context, int64) ([]model.OrderGroup, error)
	ListLineItemsFn   func(context.Context, int64) ([]model.OrderLineItem, error)
	ApplyTransitionFn func(context.Context, int64, int64, lifecycle.Mutation) (*model.Order, error)
	SubmitFn          func(context.Context, int64, int64, model.OrderTotals, model.OrderState) (*model.Order, error)
	SelectStaleFn     func(context.Context, int) ([]model.Order, error)
	UpdateTotalsFn    func(context.Context, int64, model.OrderTotals) error

	Orders          []model.Order
	Groups          []model.OrderGroup
	LineItems       []model.OrderLineItem
	Stale           []model.Order
	TransitionCalls []TransitionCall
	TotalsCalls     []model.OrderTotals
}

// Create delegates to the override or returns a fresh draft order.
func (s *OrderRepositoryStub) Create(ctx context.Context, accountID int64, state model.OrderState, totals model.OrderTotals, groups []repository.NewOrderGroup) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, accountID, state, totals, groups)
	}
	return &model.Order{
		ID:                  1,
		AccountID:           accountID,
		Status:              lifecycle.StatusDraft,
		State:               state,
		SubtotalCents:       totals.SubtotalCents,
		TotalRetailCents:    totals.TotalRetailCents,
		TotalWholesaleCents: totals.TotalWholesaleCents,
		ProfitMarginCents:   totals.ProfitMarginCents,
		Version:             1,
	}, nil
}

// GetByID returns the matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, orderID)
	}
	for _, o := range s.Orders {
		if o.ID == orderID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByAccount returns orders from the configured slice.
func (s *OrderRepositoryStub) ListByAccount(ctx context.Context, accountID int64) ([]model.Order, error) {
	if s.ListByAccountFn != nil {
		return s.ListByAccountFn(ctx, accountID)
	}
	return s.Orders, nil
}

// ListGroups returns groups from the configured slice.
func (s *OrderRepositoryStub) ListGroups(ctx context.Context, orderID int64) ([]model.OrderGroup, error) {
	if s.ListGroupsFn != nil {
		return s.ListGroupsFn(ctx, orderID)
	}
	return s.Groups, nil
}

// ListLineItems returns line items from the configured slice.
func (s *OrderRepositoryStub) ListLineItems(ctx context.Context, orderID int64) ([]model.OrderLineItem, error) {
	if s.ListLineItemsFn != nil {
		return s.ListLineItemsFn(ctx, orderID)
	}
	return s.LineItems, nil
}

// ApplyTransition records the call and applies the mutation to the stored order.
func (s *OrderRepositoryStub) ApplyTransition(ctx context.Context, orderID, expectedVersion int64, m lifecycle.Mutation) (*model.Order, error) {
	s.TransitionCalls = append(s.TransitionCalls, TransitionCall{OrderID: orderID, ExpectedVersion: expectedVersion, Mutation: m})
	if s.ApplyTransitionFn != nil {
		return s.ApplyTransitionFn(ctx, orderID, expectedVersion, m)
	}
	for _, o := range s.Orders {
		if o.ID == orderID {
			order := o
			order.Status = m.Status
			if m.ClearApproval {
				order.ApprovedAt = nil
				order.ApprovedBy = nil
			}
			if m.ClearPayment {
				order.PaidAt = nil
			}
			order.Version++
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Submit marks the stored order as submitted with the given totals.
func (s *OrderRepositoryStub) Submit(ctx context.Context, orderID, expectedVersion int64, totals model.OrderTotals, state model.OrderState) (*model.Order, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, orderID, expectedVersion, totals, state)
	}
	for _, o := range s.Orders {
		if o.ID == orderID {
			order := o
			order.Status = lifecycle.StatusPendingConfirmation
			order.State = state
			order.SubtotalCents = totals.SubtotalCents
			order.TotalRetailCents = totals.TotalRetailCents
			order.TotalWholesaleCents = totals.TotalWholesaleCents
			order.ProfitMarginCents = totals.ProfitMarginCents
			order.Version++
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// SelectStaleTotalsBatch returns configured stale orders.
func (s *OrderRepositoryStub) SelectStaleTotalsBatch(ctx context.Context, limit int) ([]model.Order, error) {
	if s.SelectStaleFn != nil {
		return s.SelectStaleFn(ctx, limit)
	}
	return s.Stale, nil
}

// UpdateTotals records recomputed totals.
func (s *OrderRepositoryStub) UpdateTotals(ctx context.Context, orderID int64, totals model.OrderTotals) error {
	if s.UpdateTotalsFn != nil {
		return s.UpdateTotalsFn(ctx, orderID, totals)
	}
	s.TotalsCalls = append(s.TotalsCalls, totals)
	return nil
}

// BenchmarkRepositoryStub lets tests control benchmark persistence.
type BenchmarkRepositoryStub struct {
	CreateFn      func(context.Context, *model.OrderBenchmark) (*model.OrderBenchmark, error)
	ListByOrderFn func(context.Context, int64) ([]model.OrderBenchmark, error)
	RollbackFn    func(context.Context, int64) (model.PoolRollbackResult, error)

	Created        []*model.OrderBenchmark
	Items          []model.OrderBenchmark
	RollbackResult model.PoolRollbackResult
}

// Create stores the benchmark and echoes it back.
func (s *BenchmarkRepositoryStub) Create(ctx context.Context, benchmark *model.OrderBenchmark) (*model.OrderBenchmark, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, benchmark)
	}
	s.Created = append(s.Created, benchmark)
	return benchmark, nil
}

// ListByOrder returns the configured benchmarks.
func (s *BenchmarkRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.OrderBenchmark, error) {
	if s.ListByOrderFn != nil {
		return s.ListByOrderFn(ctx, orderID)
	}
	return s.Items, nil
}

// RollbackPoolMigration returns the configured rollback outcome.
func (s *BenchmarkRepositoryStub) RollbackPoolMigration(ctx context.Context, orderID int64) (model.PoolRollbackResult, error) {
	if s.RollbackFn != nil {
		return s.RollbackFn(ctx, orderID)
	}
	return s.RollbackResult, nil
}
