package event

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Event types published to the order events topic.
const (
	TypeOrderStatusChanged = "order.status.changed"
	TypeOrderSubmitted     = "order.submitted"
)

const producerName = "linkmart-api"

// Envelope wraps every published event. Messages for one order share the
// order ID as partition key so consumers observe them in order.
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	OrderID    int64           `json:"order_id"`
	Payload    json.RawMessage `json:"payload"`
}

// StatusChangedPayload describes one applied status transition.
type StatusChangedPayload struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Backward bool     `json:"backward"`
	Forced   bool     `json:"forced"`
	Warnings []string `json:"warnings,omitempty"`
}

// SubmittedPayload describes one order submission.
type SubmittedPayload struct {
	AccountID        int64  `json:"account_id"`
	SubtotalCents    int64  `json:"subtotal_cents"`
	TotalRetailCents int64  `json:"total_retail_cents"`
	QuickStart       bool   `json:"quick_start"`
	BenchmarkID      string `json:"benchmark_id,omitempty"`
}

// NewEnvelope builds an envelope with a fresh event ID around the payload.
func NewEnvelope(eventType string, orderID int64, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode event payload: %w", err)
	}
	return Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Producer:   producerName,
		OrderID:    orderID,
		Payload:    raw,
	}, nil
}

// PartitionKey keeps all events of one order on the same partition.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
