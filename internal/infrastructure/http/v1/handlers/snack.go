package handlers

import (
	"github.com/gin-gonic/gin"

	"petstock/internal/core/apperror"
	"petstock/internal/core/id"
	"petstock/internal/domain/snack"
	"petstock/internal/infrastructure/http/v1/dto"
)

// SnackHandler handles snack counter endpoints.
type SnackHandler struct {
	*BaseHandler
	service *snack.Service
}

// NewSnackHandler creates a new snack handler.
func NewSnackHandler(base *BaseHandler, service *snack.Service) *SnackHandler {
	return &SnackHandler{BaseHandler: base, service: service}
}

// Create handles POST /snacks
func (h *SnackHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateSnackRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sn := req.ToEntity()
	if err := h.service.Create(ctx, sn); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, sn.ID.String())
}

// List handles GET /snacks
func (h *SnackHandler) List(c *gin.Context) {
	snacks, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"snacks": snacks, "count": len(snacks)})
}

// Update handles PUT /snacks/:id
func (h *SnackHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	snackID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSnackRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sn, err := h.service.Update(ctx, snackID, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, sn)
}

// Delete handles DELETE /snacks/:id
func (h *SnackHandler) Delete(c *gin.Context) {
	snackID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), snackID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// RecordDaySales handles POST /snacks/day-sales
func (h *SnackHandler) RecordDaySales(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.DaySalesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	leftovers := make(map[id.ID]int, len(req.Leftovers))
	for rawID, leftover := range req.Leftovers {
		snackID, err := id.Parse(rawID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid snack id").WithDetail("id", rawID))
			return
		}
		leftovers[snackID] = leftover
	}

	result, err := h.service.RecordDaySales(ctx, leftovers)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// SalesHistory handles GET /snacks/sales-log
func (h *SnackHandler) SalesHistory(c *gin.Context) {
	entries, err := h.service.SalesHistory(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"entries": entries, "count": len(entries)})
}

// RegisterRoutes registers snack routes.
func (h *SnackHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/day-sales", h.RecordDaySales)
	rg.GET("/sales-log", h.SalesHistory)
}
