package lifecycle

// OrderFlags carries the milestone facts a rollback warning may depend on.
// Each flag is derived from the corresponding timestamp being set.
type OrderFlags struct {
	HasInvoice bool
	IsPaid     bool
	IsApproved bool
}

// Rollback warning texts surfaced to the caller before (and after) a forced
// backward transition.
const (
	WarnInvoiceRemains   = "an invoice exists for this order; rolling back will not delete it"
	WarnWorkflowsRemain  = "check whether content workflows have been generated; rolling back will not delete them"
	WarnPaymentHandling  = "order is marked as paid; ensure the payment is properly handled"
	WarnContentPublished = "order is completed and content may have been published; proceed with caution"
)

// warningRule is one declarative rollback warning. An empty `to` matches any
// backward target from `from`; a nil predicate always applies.
type warningRule struct {
	from    Status
	to      Status
	applies func(OrderFlags) bool
	text    string
}

var warningRules = []warningRule{
	{
		from:    StatusConfirmed,
		to:      StatusPendingConfirmation,
		applies: func(f OrderFlags) bool { return f.HasInvoice },
		text:    WarnInvoiceRemains,
	},
	{
		from: StatusPaid,
		to:   StatusConfirmed,
		text: WarnWorkflowsRemain,
	},
	{
		from:    StatusPaid,
		to:      StatusConfirmed,
		applies: func(f OrderFlags) bool { return f.IsPaid },
		text:    WarnPaymentHandling,
	},
	{
		from: StatusCompleted,
		text: WarnContentPublished,
	},
}

func rollbackWarnings(current, requested Status, flags OrderFlags) []string {
	var warnings []string
	for _, rule := range warningRules {
		if rule.from != current {
			continue
		}
		if rule.to != "" && rule.to != requested {
			continue
		}
		if rule.applies != nil && !rule.applies(flags) {
			continue
		}
		warnings = append(warnings, rule.text)
	}
	return warnings
}
