package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/linkmart/linkmart/internal/domain/errors"
	"github.com/linkmart/linkmart/internal/lifecycle"
	"github.com/linkmart/linkmart/internal/server/http/dto"
)

// StatusHandler serves the order status resource.
type StatusHandler struct {
	facade OrderFacade
}

// NewStatusHandler constructs StatusHandler.
func NewStatusHandler(facade OrderFacade) *StatusHandler {
	return &StatusHandler{facade: facade}
}

// Get handles GET /api/orders/:id/status.
func (h *StatusHandler) Get(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	overview, err := h.facade.StatusOverview(c.Request.Context(), orderID)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{
		CurrentStatus: string(overview.Order.Status),
		AvailableTransitions: dto.AvailableTransitions{
			Forward:  statusStrings(overview.Transitions.Forward),
			Backward: statusStrings(overview.Transitions.Backward),
		},
		OrderState: dto.OrderStateFlags{
			HasInvoice: overview.Flags.HasInvoice,
			IsPaid:     overview.Flags.IsPaid,
			IsApproved: overview.Flags.IsApproved,
		},
	})
}

// Change handles PATCH /api/orders/:id/status.
func (h *StatusHandler) Change(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, result, err := h.facade.ChangeStatus(c.Request.Context(), orderID, lifecycle.Status(req.NewStatus), req.Force)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	if result.RequiresConfirmation {
		c.JSON(http.StatusOK, dto.ConfirmationResponse{
			RequiresConfirmation: true,
			Warnings:             result.Warnings,
			Message:              "rolling back has side effects; repeat the request with force to proceed",
		})
		return
	}

	c.JSON(http.StatusOK, dto.ChangeStatusResponse{
		Success:  true,
		Order:    toOrderResponse(order),
		Message:  fmt.Sprintf("order status changed to %s", order.Status),
		Warnings: result.Warnings,
	})
}

// respondTransitionError maps lifecycle and lookup failures onto the HTTP
// error contract shared by the status and submission endpoints.
func respondTransitionError(c *gin.Context, err error) {
	var illegal lifecycle.IllegalTransitionError
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, lifecycle.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Unknown current status"})
	case errors.As(err, &illegal):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: fmt.Sprintf("Cannot transition from %s to %s", illegal.From, illegal.To)})
	case errors.Is(err, domainErrors.ErrVersionConflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "Order was modified concurrently, reload and retry"})
	default:
		c.Status(http.StatusInternalServerError)
	}
}
