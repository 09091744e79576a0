package model

import (
	"time"

	"github.com/linkmart/linkmart/internal/lifecycle"
)

// OrderState is a secondary descriptive field tracked alongside the
// lifecycle status. It is not governed by the transition table.
type OrderState string

const (
	OrderStateConfiguring    OrderState = "configuring"
	OrderStateAwaitingReview OrderState = "awaiting_review"
	OrderStateAnalyzing      OrderState = "analyzing"
	OrderStateInProgress     OrderState = "in_progress"
)

// Order represents one customer purchase of guest-post services.
// Monetary amounts are integer cents. Milestone timestamps are nil until the
// corresponding lifecycle stage has been reached; rollbacks clear them again.
type Order struct {
	ID                  int64
	AccountID           int64
	Status              lifecycle.Status
	State               OrderState
	SubtotalCents       int64
	TotalRetailCents    int64
	TotalWholesaleCents int64
	ProfitMarginCents   int64
	ApprovedAt          *time.Time
	ApprovedBy          *int64
	PaidAt              *time.Time
	InvoicedAt          *time.Time
	Version             int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Flags derives the rollback-warning inputs from the milestone timestamps.
func (o *Order) Flags() lifecycle.OrderFlags {
	return lifecycle.OrderFlags{
		HasInvoice: o.InvoicedAt != nil,
		IsPaid:     o.PaidAt != nil,
		IsApproved: o.ApprovedAt != nil,
	}
}

// OrderTotals is the set of cached pricing aggregates recomputed from line
// items at submission time and by the totals refresher.
type OrderTotals struct {
	SubtotalCents       int64
	TotalRetailCents    int64
	TotalWholesaleCents int64
	ProfitMarginCents   int64
}
