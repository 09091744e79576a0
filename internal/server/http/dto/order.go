package dto

import "time"

// CreateOrderRequest describes a new order with its groups and line items.
type CreateOrderRequest struct {
	State  string                   `json:"state,omitempty"`
	Groups []CreateOrderGroup       `json:"groups"`
}

// CreateOrderGroup is one per-client group of a new order.
type CreateOrderGroup struct {
	ClientID  int64                 `json:"clientId"`
	Name      string                `json:"name"`
	LineItems []CreateOrderLineItem `json:"lineItems"`
}

// CreateOrderLineItem is one requested link placement.
type CreateOrderLineItem struct {
	TargetPageURL  string `json:"targetPageUrl"`
	AnchorText     string `json:"anchorText"`
	RetailCents    int64  `json:"retailCents"`
	WholesaleCents int64  `json:"wholesaleCents"`
}

// OrderResponse is the wire representation of an order.
type OrderResponse struct {
	ID                  int64      `json:"id"`
	AccountID           int64      `json:"accountId"`
	Status              string     `json:"status"`
	State               string     `json:"state"`
	SubtotalCents       int64      `json:"subtotalCents"`
	TotalRetailCents    int64      `json:"totalRetailCents"`
	TotalWholesaleCents int64      `json:"totalWholesaleCents"`
	ProfitMarginCents   int64      `json:"profitMarginCents"`
	ApprovedAt          *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy          *int64     `json:"approvedBy,omitempty"`
	PaidAt              *time.Time `json:"paidAt,omitempty"`
	InvoicedAt          *time.Time `json:"invoicedAt,omitempty"`
	Version             int64      `json:"version"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// LineItemResponse is the wire representation of an order line item.
type LineItemResponse struct {
	ID             int64  `json:"id"`
	GroupID        int64  `json:"groupId"`
	TargetPageURL  string `json:"targetPageUrl"`
	AnchorText     string `json:"anchorText"`
	RetailCents    int64  `json:"retailCents"`
	WholesaleCents int64  `json:"wholesaleCents"`
	Status         string `json:"status,omitempty"`
	Pool           string `json:"pool,omitempty"`
}
