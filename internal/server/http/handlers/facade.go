package handlers

import (
	"context"

	"github.com/linkmart/linkmart/internal/domain/model"
	"github.com/linkmart/linkmart/internal/domain/repository"
	"github.com/linkmart/linkmart/internal/lifecycle"
	"github.com/linkmart/linkmart/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string, role model.UserRole) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, model.UserRole, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, accountID int64, state model.OrderState, groups []repository.NewOrderGroup) (*model.Order, error)
	Order(ctx context.Context, orderID int64) (*model.Order, error)
	Orders(ctx context.Context, accountID int64) ([]model.Order, error)
	OrderLineItems(ctx context.Context, orderID int64) ([]model.OrderLineItem, error)
	StatusOverview(ctx context.Context, orderID int64) (*usecase.StatusOverview, error)
	ChangeStatus(ctx context.Context, orderID int64, requested lifecycle.Status, force bool) (*model.Order, lifecycle.Result, error)
	SubmitOrder(ctx context.Context, orderID, actorID int64) (*usecase.SubmitResult, error)
}

// BenchmarkFacade provides benchmark and migration tooling operations.
type BenchmarkFacade interface {
	Benchmarks(ctx context.Context, orderID int64) ([]model.OrderBenchmark, error)
	PoolRollbackEligibility(ctx context.Context, orderID int64) (model.PoolRollbackEligibility, error)
	RollbackPoolMigration(ctx context.Context, orderID int64) (model.PoolRollbackResult, error)
}

// MarketFacade aggregates the full set of operations used across handlers.
type MarketFacade interface {
	AuthFacade
	OrderFacade
	BenchmarkFacade
}
