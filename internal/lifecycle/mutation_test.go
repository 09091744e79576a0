package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMutationForwardHasNoResets(t *testing.T) {
	for _, target := range allStatuses {
		m := ComputeMutation(target, false)
		assert.Equal(t, target, m.Status)
		assert.False(t, m.ClearApproval, string(target))
		assert.False(t, m.ClearPayment, string(target))
	}
}

func TestComputeMutationRollbackToPendingConfirmationClearsApproval(t *testing.T) {
	m := ComputeMutation(StatusPendingConfirmation, true)
	assert.Equal(t, StatusPendingConfirmation, m.Status)
	assert.True(t, m.ClearApproval)
	assert.False(t, m.ClearPayment)

	// applying twice yields the same cleared state
	again := ComputeMutation(StatusPendingConfirmation, true)
	assert.Equal(t, m, again)
}

func TestComputeMutationRollbackToConfirmedClearsPayment(t *testing.T) {
	m := ComputeMutation(StatusConfirmed, true)
	assert.Equal(t, StatusConfirmed, m.Status)
	assert.True(t, m.ClearPayment)
	assert.False(t, m.ClearApproval)
}

func TestComputeMutationRollbackToOtherTargetsOnlyChangesStatus(t *testing.T) {
	for _, target := range []Status{StatusDraft, StatusPaid} {
		m := ComputeMutation(target, true)
		assert.Equal(t, target, m.Status)
		assert.False(t, m.ClearApproval, string(target))
		assert.False(t, m.ClearPayment, string(target))
	}
}
