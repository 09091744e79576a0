package model

import (
	"testing"
	"time"
)

func TestOrderStateValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderState
		value string
	}{
		{"configuring", OrderStateConfiguring, "configuring"},
		{"awaiting review", OrderStateAwaitingReview, "awaiting_review"},
		{"analyzing", OrderStateAnalyzing, "analyzing"},
		{"in progress", OrderStateInProgress, "in_progress"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestOrderFlagsDerivedFromTimestamps(t *testing.T) {
	now := time.Now()
	userID := int64(3)

	empty := (&Order{}).Flags()
	if empty.HasInvoice || empty.IsPaid || empty.IsApproved {
		t.Fatalf("expected all flags false for fresh order, got %+v", empty)
	}

	full := (&Order{InvoicedAt: &now, PaidAt: &now, ApprovedAt: &now, ApprovedBy: &userID}).Flags()
	if !full.HasInvoice || !full.IsPaid || !full.IsApproved {
		t.Fatalf("expected all flags true, got %+v", full)
	}

	partial := (&Order{InvoicedAt: &now}).Flags()
	if !partial.HasInvoice || partial.IsPaid || partial.IsApproved {
		t.Fatalf("unexpected flags %+v", partial)
	}
}

func TestUserIsInternal(t *testing.T) {
	if !(&User{Role: UserRoleInternal}).IsInternal() {
		t.Fatal("expected internal user to report internal")
	}
	if (&User{Role: UserRoleAccount}).IsInternal() {
		t.Fatal("expected account user not to report internal")
	}
}
