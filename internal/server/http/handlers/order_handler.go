package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/linkmart/linkmart/internal/domain/errors"
	"github.com/linkmart/linkmart/internal/domain/model"
	"github.com/linkmart/linkmart/internal/domain/repository"
	"github.com/linkmart/linkmart/internal/server/http/dto"
)

// OrderHandler manages order CRUD and submission endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	groups := make([]repository.NewOrderGroup, 0, len(req.Groups))
	for _, g := range req.Groups {
		items := make([]repository.NewOrderLineItem, 0, len(g.LineItems))
		for _, li := range g.LineItems {
			if li.TargetPageURL == "" || li.RetailCents < 0 || li.WholesaleCents < 0 {
				c.Status(http.StatusBadRequest)
				return
			}
			items = append(items, repository.NewOrderLineItem{
				TargetPageURL:  li.TargetPageURL,
				AnchorText:     li.AnchorText,
				RetailCents:    li.RetailCents,
				WholesaleCents: li.WholesaleCents,
			})
		}
		groups = append(groups, repository.NewOrderGroup{ClientID: g.ClientID, Name: g.Name, LineItems: items})
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentUserID(c), model.OrderState(req.State), groups)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, *toOrderResponse(&orders[i]))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// LineItems handles GET /api/orders/:id/line-items.
func (h *OrderHandler) LineItems(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if _, err := h.facade.Order(c.Request.Context(), orderID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	items, err := h.facade.OrderLineItems(c.Request.Context(), orderID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.LineItemResponse, 0, len(items))
	for _, li := range items {
		response = append(response, dto.LineItemResponse{
			ID:             li.ID,
			GroupID:        li.GroupID,
			TargetPageURL:  li.TargetPageURL,
			AnchorText:     li.AnchorText,
			RetailCents:    li.RetailCents,
			WholesaleCents: li.WholesaleCents,
			Status:         li.Status,
			Pool:           li.Pool,
		})
	}

	c.JSON(http.StatusOK, response)
}

// Submit handles POST /api/orders/:id/submit.
func (h *OrderHandler) Submit(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.SubmitOrder(c.Request.Context(), orderID, CurrentUserID(c))
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	message := "order submitted for confirmation"
	if result.Benchmark == nil {
		message = "order submitted for confirmation; benchmark snapshot unavailable"
	}

	c.JSON(http.StatusOK, dto.SubmitResponse{
		Success:      true,
		Order:        toOrderResponse(result.Order),
		Benchmark:    toBenchmarkResponse(result.Benchmark),
		Message:      message,
		IsQuickStart: result.IsQuickStart,
	})
}
