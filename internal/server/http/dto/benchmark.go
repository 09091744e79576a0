package dto

import "time"

// BenchmarkResponse is the wire representation of one benchmark snapshot.
type BenchmarkResponse struct {
	ID            string           `json:"id"`
	OrderID       int64            `json:"orderId"`
	CapturedBy    int64            `json:"capturedBy"`
	CaptureReason string           `json:"captureReason"`
	Notes         string           `json:"notes,omitempty"`
	Payload       BenchmarkPayload `json:"payload"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// BenchmarkPayload is the denormalized snapshot data.
type BenchmarkPayload struct {
	SubtotalCents       int64               `json:"subtotalCents"`
	TotalRetailCents    int64               `json:"totalRetailCents"`
	TotalWholesaleCents int64               `json:"totalWholesaleCents"`
	ProfitMarginCents   int64               `json:"profitMarginCents"`
	LineItems           []BenchmarkLineItem `json:"lineItems"`
}

// BenchmarkLineItem is the snapshot form of one line item.
type BenchmarkLineItem struct {
	LineItemID     int64  `json:"lineItemId"`
	GroupID        int64  `json:"groupId"`
	TargetPageURL  string `json:"targetPageUrl"`
	AnchorText     string `json:"anchorText"`
	RetailCents    int64  `json:"retailCents"`
	WholesaleCents int64  `json:"wholesaleCents"`
	Status         string `json:"status,omitempty"`
	Pool           string `json:"pool,omitempty"`
}

// SubmitResponse reports the outcome of an order submission. Benchmark is
// null when the best-effort snapshot failed.
type SubmitResponse struct {
	Success      bool               `json:"success"`
	Order        *OrderResponse     `json:"order"`
	Benchmark    *BenchmarkResponse `json:"benchmark"`
	Message      string             `json:"message"`
	IsQuickStart bool               `json:"isQuickStart"`
}

// RollbackEligibilityResponse answers the migration rollback pre-check.
type RollbackEligibilityResponse struct {
	CanRollback                bool    `json:"canRollback"`
	SubmissionsWithoutPoolData []int64 `json:"submissionsWithoutPoolData"`
}

// RollbackResponse reports what the migration rollback touched.
type RollbackResponse struct {
	Success           bool  `json:"success"`
	LineItemsCleared  int64 `json:"lineItemsCleared"`
	BenchmarksDeleted int64 `json:"benchmarksDeleted"`
}
