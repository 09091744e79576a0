package dto

// AvailableTransitions lists the statuses reachable from the current one.
type AvailableTransitions struct {
	Forward  []string `json:"forward"`
	Backward []string `json:"backward"`
}

// OrderStateFlags reports the milestone facts rollback warnings depend on.
type OrderStateFlags struct {
	HasInvoice bool `json:"hasInvoice"`
	IsPaid     bool `json:"isPaid"`
	IsApproved bool `json:"isApproved"`
}

// StatusResponse answers GET on the order status resource.
type StatusResponse struct {
	CurrentStatus        string               `json:"currentStatus"`
	AvailableTransitions AvailableTransitions `json:"availableTransitions"`
	OrderState           OrderStateFlags      `json:"orderState"`
}

// ChangeStatusRequest asks for one status transition.
type ChangeStatusRequest struct {
	NewStatus string `json:"newStatus"`
	Force     bool   `json:"force,omitempty"`
}

// ConfirmationResponse is returned when a backward transition carries
// unacknowledged warnings. No mutation has happened.
type ConfirmationResponse struct {
	RequiresConfirmation bool     `json:"requiresConfirmation"`
	Warnings             []string `json:"warnings"`
	Message              string   `json:"message"`
}

// ChangeStatusResponse reports a successfully applied transition. Warnings
// stay visible even when the caller forced the rollback.
type ChangeStatusResponse struct {
	Success  bool           `json:"success"`
	Order    *OrderResponse `json:"order"`
	Message  string         `json:"message"`
	Warnings []string       `json:"warnings,omitempty"`
}

// ErrorResponse carries a single error message.
type ErrorResponse struct {
	Error string `json:"error"`
}
