package handlers

import (
	"github.com/gin-gonic/gin"

	"petstock/internal/domain/reports"
	"petstock/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles reporting endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// Totals handles GET /reports/totals
func (h *ReportsHandler) Totals(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ListItemsQuery
	if !h.BindQuery(c, &query) {
		return
	}

	totals, err := h.service.Totals(ctx, query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, totals)
}

// Dashboard handles GET /reports/dashboard
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dashboard)
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/totals", h.Totals)
	rg.GET("/dashboard", h.Dashboard)
}
