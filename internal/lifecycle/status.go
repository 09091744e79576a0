package lifecycle

import (
	"errors"
	"fmt"
)

// Status is the primary lifecycle stage of an order.
type Status string

const (
	StatusDraft               Status = "draft"
	StatusPendingConfirmation Status = "pending_confirmation"
	StatusConfirmed           Status = "confirmed"
	StatusPaid                Status = "paid"
	StatusCompleted           Status = "completed"
)

// Transitions lists the statuses reachable from a given status, split into
// normal progression and rollback targets.
type Transitions struct {
	Forward  []Status
	Backward []Status
}

var table = map[Status]Transitions{
	StatusDraft:               {Forward: []Status{StatusPendingConfirmation}},
	StatusPendingConfirmation: {Forward: []Status{StatusConfirmed}, Backward: []Status{StatusDraft}},
	StatusConfirmed:           {Forward: []Status{StatusPaid}, Backward: []Status{StatusPendingConfirmation}},
	StatusPaid:                {Forward: []Status{StatusCompleted}, Backward: []Status{StatusConfirmed}},
	StatusCompleted:           {Backward: []Status{StatusPaid}},
}

// ErrUnknownStatus indicates a status value missing from the transition table.
var ErrUnknownStatus = errors.New("unknown order status")

// IllegalTransitionError names both sides of a transition that the table
// does not permit in either direction.
type IllegalTransitionError struct {
	From Status
	To   Status
}

func (e IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}

// Known reports whether the status has a transition table entry.
func Known(s Status) bool {
	_, ok := table[s]
	return ok
}

// Available returns copies of the transition lists for the given status.
func Available(current Status) (Transitions, error) {
	entry, ok := table[current]
	if !ok {
		return Transitions{}, fmt.Errorf("%w: %q", ErrUnknownStatus, current)
	}
	out := Transitions{
		Forward:  make([]Status, len(entry.Forward)),
		Backward: make([]Status, len(entry.Backward)),
	}
	copy(out.Forward, entry.Forward)
	copy(out.Backward, entry.Backward)
	return out, nil
}

func contains(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
