// Package invoice provides purchase/sale invoices and the reconciliation
// engine that keeps item stock consistent with invoice history.
//
// The engine maintains one invariant: the on-hand quantity of an item
// always reflects the net effect of all non-deleted invoices that
// reference it, even as invoices are edited or deleted after the fact.
package invoice

import (
	"context"
	"time"

	"petstock/internal/core/apperror"
	"petstock/internal/core/id"
	"petstock/internal/core/types"
)

// Type discriminates purchase and sale invoices. Fixed per invoice:
// editing never changes it.
type Type string

const (
	TypePurchase Type = "purchase"
	TypeSale     Type = "sale"
)

// Invoice represents a recorded purchase or sale transaction.
type Invoice struct {
	ID id.ID `db:"id" json:"id"`

	// Number is user-supplied and not guaranteed unique.
	Number string `db:"number" json:"number"`

	Type Type `db:"type" json:"type"`

	// Date is the business (calendar) date; FullDate is the submission
	// timestamp used for ordering within a day.
	Date     time.Time `db:"date" json:"date"`
	FullDate time.Time `db:"full_date" json:"fullDate"`

	// Supplier is set for purchases only, empty otherwise.
	Supplier string `db:"supplier" json:"supplier"`

	// Lines are immutable once created except through the edit path.
	Lines []Line `db:"lines" json:"lines"`

	// Profit is computed and stored at creation time for sale invoices,
	// zero otherwise. Edits do not recompute it.
	Profit types.Money `db:"profit" json:"profit"`
}

// Line is one item-code/quantity/price entry within an invoice.
type Line struct {
	Code string `json:"code"`

	// Name is a denormalized snapshot of the item name at transaction
	// time; it may drift from the live item and is never re-derived.
	Name string `json:"name"`

	Quantity int `json:"quantity"`

	// Price is the unit price at transaction time: the purchase price
	// for purchase invoices, the sale price for sale invoices.
	Price types.Money `json:"price"`
}

// IsValidType reports whether t is a known invoice type.
func IsValidType(t Type) bool {
	return t == TypePurchase || t == TypeSale
}

// Validate checks stored-invoice invariants.
func (inv *Invoice) Validate(ctx context.Context) error {
	if inv.Number == "" {
		return apperror.NewValidation("invoice number is required").
			WithDetail("field", "number")
	}
	if !IsValidType(inv.Type) {
		return apperror.NewValidation("invalid invoice type").
			WithDetail("field", "type").
			WithDetail("value", string(inv.Type))
	}
	if inv.Type == TypePurchase && inv.Supplier == "" {
		return apperror.NewValidation("supplier is required for purchases").
			WithDetail("field", "supplier")
	}
	if len(inv.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	return nil
}
