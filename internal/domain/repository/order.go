package repository

import (
	"context"

	"github.com/linkmart/linkmart/internal/domain/model"
	"github.com/linkmart/linkmart/internal/lifecycle"
)

// NewOrderGroup describes one group of an order being created.
type NewOrderGroup struct {
	ClientID  int64
	Name      string
	LineItems []NewOrderLineItem
}

// NewOrderLineItem describes one requested link placement of a new order.
type NewOrderLineItem struct {
	TargetPageURL  string
	AnchorText     string
	RetailCents    int64
	WholesaleCents int64
}

// OrderRepository describes persistence operations on the order aggregate.
// Mutating operations that take an expected version perform conditional
// updates and report ErrVersionConflict when the row moved underneath the
// caller.
type OrderRepository interface {
	Create(ctx context.Context, accountID int64, state model.OrderState, totals model.OrderTotals, groups []NewOrderGroup) (*model.Order, error)
	GetByID(ctx context.Context, orderID int64) (*model.Order, error)
	ListByAccount(ctx context.Context, accountID int64) ([]model.Order, error)
	ListGroups(ctx context.Context, orderID int64) ([]model.OrderGroup, error)
	ListLineItems(ctx context.Context, orderID int64) ([]model.OrderLineItem, error)
	ApplyTransition(ctx context.Context, orderID, expectedVersion int64, m lifecycle.Mutation) (*model.Order, error)
	Submit(ctx context.Context, orderID, expectedVersion int64, totals model.OrderTotals, state model.OrderState) (*model.Order, error)
	SelectStaleTotalsBatch(ctx context.Context, limit int) ([]model.Order, error)
	UpdateTotals(ctx context.Context, orderID int64, totals model.OrderTotals) error
}
