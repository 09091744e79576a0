package model

import "time"

// OrderGroup bundles the link requests an order makes for one client.
type OrderGroup struct {
	ID        int64
	OrderID   int64
	ClientID  int64
	Name      string
	CreatedAt time.Time
}

// Line item pool values used before the pool-to-status migration.
const (
	PoolPrimary     = "primary"
	PoolAlternative = "alternative"
)

// OrderLineItem is one requested link placement. The status and
// status_migrated_at fields are populated by the pool-to-status schema
// migration for legacy rows; the rollback tooling clears exactly those.
type OrderLineItem struct {
	ID               int64
	OrderID          int64
	GroupID          int64
	TargetPageURL    string
	AnchorText       string
	RetailCents      int64
	WholesaleCents   int64
	Status           string
	Pool             string
	StatusMigratedAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
