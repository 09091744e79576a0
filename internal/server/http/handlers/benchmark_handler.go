package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/linkmart/linkmart/internal/domain/errors"
	"github.com/linkmart/linkmart/internal/server/http/dto"
)

// BenchmarkHandler serves benchmark snapshots and the pool-to-status
// migration rollback tooling.
type BenchmarkHandler struct {
	facade BenchmarkFacade
}

// NewBenchmarkHandler constructs BenchmarkHandler.
func NewBenchmarkHandler(facade BenchmarkFacade) *BenchmarkHandler {
	return &BenchmarkHandler{facade: facade}
}

// List handles GET /api/orders/:id/benchmarks.
func (h *BenchmarkHandler) List(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	benchmarks, err := h.facade.Benchmarks(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.BenchmarkResponse, 0, len(benchmarks))
	for i := range benchmarks {
		response = append(response, *toBenchmarkResponse(&benchmarks[i]))
	}

	c.JSON(http.StatusOK, response)
}

// Eligibility handles GET /api/admin/pool-migration/orders/:id/eligibility.
func (h *BenchmarkHandler) Eligibility(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	eligibility, err := h.facade.PoolRollbackEligibility(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.RollbackEligibilityResponse{
		CanRollback:                eligibility.CanRollback,
		SubmissionsWithoutPoolData: eligibility.SubmissionsWithoutPoolData,
	})
}

// Rollback handles POST /api/admin/pool-migration/orders/:id/rollback.
func (h *BenchmarkHandler) Rollback(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.RollbackPoolMigration(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.RollbackResponse{
		Success:           true,
		LineItemsCleared:  result.LineItemsCleared,
		BenchmarksDeleted: result.BenchmarksDeleted,
	})
}
