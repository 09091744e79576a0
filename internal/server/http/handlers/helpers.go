package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/linkmart/linkmart/internal/domain/model"
	"github.com/linkmart/linkmart/internal/lifecycle"
	"github.com/linkmart/linkmart/internal/server/http/dto"
	"github.com/linkmart/linkmart/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// CurrentUserRole extracts the authenticated user's role from context.
func CurrentUserRole(c *gin.Context) model.UserRole {
	val, ok := c.Get(middleware.UserRoleContextKey)
	if !ok {
		return ""
	}
	role, _ := val.(model.UserRole)
	return role
}

func orderIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func toOrderResponse(order *model.Order) *dto.OrderResponse {
	if order == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:                  order.ID,
		AccountID:           order.AccountID,
		Status:              string(order.Status),
		State:               string(order.State),
		SubtotalCents:       order.SubtotalCents,
		TotalRetailCents:    order.TotalRetailCents,
		TotalWholesaleCents: order.TotalWholesaleCents,
		ProfitMarginCents:   order.ProfitMarginCents,
		ApprovedAt:          order.ApprovedAt,
		ApprovedBy:          order.ApprovedBy,
		PaidAt:              order.PaidAt,
		InvoicedAt:          order.InvoicedAt,
		Version:             order.Version,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
	}
}

func toBenchmarkResponse(b *model.OrderBenchmark) *dto.BenchmarkResponse {
	if b == nil {
		return nil
	}
	items := make([]dto.BenchmarkLineItem, 0, len(b.Payload.LineItems))
	for _, li := range b.Payload.LineItems {
		items = append(items, dto.BenchmarkLineItem{
			LineItemID:     li.LineItemID,
			GroupID:        li.GroupID,
			TargetPageURL:  li.TargetPageURL,
			AnchorText:     li.AnchorText,
			RetailCents:    li.RetailCents,
			WholesaleCents: li.WholesaleCents,
			Status:         li.Status,
			Pool:           li.Pool,
		})
	}
	return &dto.BenchmarkResponse{
		ID:            b.ID.String(),
		OrderID:       b.OrderID,
		CapturedBy:    b.CapturedBy,
		CaptureReason: b.CaptureReason,
		Notes:         b.Notes,
		Payload: dto.BenchmarkPayload{
			SubtotalCents:       b.Payload.SubtotalCents,
			TotalRetailCents:    b.Payload.TotalRetailCents,
			TotalWholesaleCents: b.Payload.TotalWholesaleCents,
			ProfitMarginCents:   b.Payload.ProfitMarginCents,
			LineItems:           items,
		},
		CreatedAt: b.CreatedAt,
	}
}

func statusStrings(statuses []lifecycle.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
