package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/server/http/dto"
)

// DashboardHandler serves collection figures.
type DashboardHandler struct {
	facade DashboardFacade
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(facade DashboardFacade) *DashboardHandler {
	return &DashboardHandler{facade: facade}
}

// Summary handles GET /api/dashboard/summary. The figures are recomputed
// from the directory on every request.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.facade.PendingSummary(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewSummaryResponse(summary))
}
