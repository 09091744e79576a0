package lifecycle

// Mutation is the field update set a validated transition produces. The
// repository applying it always sets the new status and refreshes the
// order's updated_at; the clear flags additionally null out milestone
// fields on rollback.
type Mutation struct {
	Status        Status
	ClearApproval bool // approved_at and approved_by
	ClearPayment  bool // paid_at
}

// ComputeMutation derives the mutation for a validated transition. Forward
// moves never reset fields; backward moves reset the milestones of the
// stage being re-entered.
func ComputeMutation(requested Status, backward bool) Mutation {
	m := Mutation{Status: requested}
	if !backward {
		return m
	}
	switch requested {
	case StatusPendingConfirmation:
		m.ClearApproval = true
	case StatusConfirmed:
		m.ClearPayment = true
	}
	return m
}
