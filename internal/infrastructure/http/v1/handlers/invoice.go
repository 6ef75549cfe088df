package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petstock/internal/core/apperror"
	"petstock/internal/domain/invoice"
	"petstock/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler handles invoice submission, history, edit and delete.
type InvoiceHandler struct {
	*BaseHandler
	service *invoice.Service
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, service *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: base, service: service}
}

// Submit handles POST /invoices
func (h *InvoiceHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SubmitInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Submit(ctx, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Get handles GET /invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, inv)
}

// Edit handles PUT /invoices/:id
func (h *InvoiceHandler) Edit(c *gin.Context) {
	ctx := c.Request.Context()

	invoiceID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.EditInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.Edit(ctx, invoiceID, req.Supplier, req.ToLines()); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.SuccessResponse{Success: true, Message: "invoice updated"})
}

// Delete handles DELETE /invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	invoiceID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), invoiceID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// History handles GET /invoices?year=YYYY&month=MM
func (h *InvoiceHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	year := h.ParseIntQuery(c, "year", 0)
	month := h.ParseIntQuery(c, "month", 0)
	if year == 0 || month == 0 {
		h.Error(c, apperror.NewValidation("year and month are required").
			WithDetail("year", c.Query("year")).
			WithDetail("month", c.Query("month")))
		return
	}

	invoices, err := h.service.HistoryByMonth(ctx, year, month)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{
		"month":    invoice.MonthKey(year, month),
		"invoices": invoices,
		"count":    len(invoices),
	})
}

// Months handles GET /invoices/months
func (h *InvoiceHandler) Months(c *gin.Context) {
	months, err := h.service.AvailableMonths(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"months": months})
}

// RegisterRoutes registers invoice routes.
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Submit)
	rg.GET("", h.History)
	rg.GET("/months", h.Months)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Edit)
	rg.DELETE("/:id", h.Delete)
}
