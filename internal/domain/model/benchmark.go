package model

import (
	"time"

	"github.com/google/uuid"
)

// Benchmark capture reasons. The migration reason and notes sentinel scope
// the pool-to-status rollback: only benchmarks tagged with one of them may
// ever be deleted by it.
const (
	BenchmarkReasonOrderSubmitted       = "order_submitted"
	BenchmarkReasonMigrationRetroactive = "migration_retroactive"

	MigrationBenchmarkNotes = "retroactive benchmark created by pool-to-status migration"
)

// OrderBenchmark is an immutable point-in-time snapshot of an order's line
// items and pricing, captured at a lifecycle event. Rows are append-only.
type OrderBenchmark struct {
	ID            uuid.UUID
	OrderID       int64
	CapturedBy    int64
	CaptureReason string
	Notes         string
	Payload       BenchmarkPayload
	CreatedAt     time.Time
}

// BenchmarkPayload is the denormalized snapshot stored with a benchmark.
// It is a copy, not a live view of the line items.
type BenchmarkPayload struct {
	SubtotalCents       int64               `json:"subtotal_cents"`
	TotalRetailCents    int64               `json:"total_retail_cents"`
	TotalWholesaleCents int64               `json:"total_wholesale_cents"`
	ProfitMarginCents   int64               `json:"profit_margin_cents"`
	LineItems           []BenchmarkLineItem `json:"line_items"`
}

// BenchmarkLineItem is the snapshot form of one line item.
type BenchmarkLineItem struct {
	LineItemID     int64  `json:"line_item_id"`
	GroupID        int64  `json:"group_id"`
	TargetPageURL  string `json:"target_page_url"`
	AnchorText     string `json:"anchor_text"`
	RetailCents    int64  `json:"retail_cents"`
	WholesaleCents int64  `json:"wholesale_cents"`
	Status         string `json:"status"`
	Pool           string `json:"pool"`
}

// PoolRollbackResult reports what the pool-to-status rollback touched.
type PoolRollbackResult struct {
	LineItemsCleared  int64
	BenchmarksDeleted int64
}

// PoolRollbackEligibility is the answer of the rollback eligibility check.
type PoolRollbackEligibility struct {
	CanRollback                bool
	SubmissionsWithoutPoolData []int64
}
