package dto

import (
	"time"

	"petstock/internal/core/types"
	"petstock/internal/domain/invoice"
)

// SubmitInvoiceRequest proposes a new invoice.
type SubmitInvoiceRequest struct {
	Type     string              `json:"type" binding:"required"`
	Number   string              `json:"number" binding:"required"`
	Date     *time.Time          `json:"date"`
	Supplier string              `json:"supplier"`
	Lines    []SubmitLineRequest `json:"lines"`
}

// SubmitLineRequest is one proposed invoice line.
type SubmitLineRequest struct {
	Code          string      `json:"code" binding:"required"`
	Name          string      `json:"name"`
	Quantity      int         `json:"quantity"`
	PurchasePrice types.Money `json:"purchasePrice"`
	UnitPrice     types.Money `json:"unitPrice"`
	ExpiryDate    *time.Time  `json:"expiryDate"`
}

// ToInput converts the request to engine input.
func (r SubmitInvoiceRequest) ToInput() invoice.SubmitInput {
	in := invoice.SubmitInput{
		Type:     invoice.Type(r.Type),
		Number:   r.Number,
		Supplier: r.Supplier,
	}
	if r.Date != nil {
		in.Date = *r.Date
	}
	for _, line := range r.Lines {
		in.Lines = append(in.Lines, invoice.SubmitLine{
			Code:          line.Code,
			Name:          line.Name,
			Quantity:      line.Quantity,
			PurchasePrice: line.PurchasePrice,
			UnitPrice:     line.UnitPrice,
			ExpiryDate:    line.ExpiryDate,
		})
	}
	return in
}

// EditInvoiceRequest replaces an invoice's lines and supplier.
type EditInvoiceRequest struct {
	Supplier string            `json:"supplier"`
	Lines    []EditLineRequest `json:"lines" binding:"required"`
}

// EditLineRequest is one replacement line, persisted verbatim.
type EditLineRequest struct {
	Code     string      `json:"code" binding:"required"`
	Name     string      `json:"name"`
	Quantity int         `json:"quantity"`
	Price    types.Money `json:"price"`
}

// ToLines converts the request to domain lines.
func (r EditInvoiceRequest) ToLines() []invoice.Line {
	lines := make([]invoice.Line, 0, len(r.Lines))
	for _, line := range r.Lines {
		lines = append(lines, invoice.Line{
			Code:     line.Code,
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    line.Price,
		})
	}
	return lines
}
