// Package item provides the stocked-item catalog for the pet food store.
// Items are identified by a human-readable code, distinct from storage identity.
package item

import (
	"context"
	"time"

	"petstock/internal/core/apperror"
	"petstock/internal/core/id"
	"petstock/internal/core/types"
)

// Item represents a stocked product with quantity, pricing, and optional expiry.
type Item struct {
	ID id.ID `db:"id" json:"id"`

	// Code is the unique business key. Invoice lines reference items by
	// code, not by storage id.
	Code string `db:"code" json:"code"`

	Brand string `db:"brand" json:"brand"`
	Name  string `db:"name" json:"name"`

	// PurchasePrice is the cost per unit; UnitPrice is the sale price.
	PurchasePrice types.Money `db:"purchase_price" json:"purchasePrice"`
	UnitPrice     types.Money `db:"unit_price" json:"unitPrice"`

	// Quantity on hand. Never negative: any adjustment that would drive
	// it below zero is clamped to exactly zero.
	Quantity int `db:"quantity" json:"quantity"`

	InventoryDate time.Time  `db:"inventory_date" json:"inventoryDate"`
	ExpiryDate    *time.Time `db:"expiry_date" json:"expiryDate,omitempty"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewItem creates a new Item with generated ID.
func NewItem(code, brand, name string, purchasePrice, unitPrice types.Money, quantity int) *Item {
	now := time.Now().UTC()
	return &Item{
		ID:            id.New(),
		Code:          code,
		Brand:         brand,
		Name:          name,
		PurchasePrice: purchasePrice,
		UnitPrice:     unitPrice,
		Quantity:      quantity,
		InventoryDate: now,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate checks item invariants.
func (i *Item) Validate(ctx context.Context) error {
	if i.Code == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}
	if i.Brand == "" {
		return apperror.NewValidation("brand is required").
			WithDetail("field", "brand")
	}
	if i.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if i.PurchasePrice.IsNegative() {
		return apperror.NewValidation("purchase price cannot be negative").
			WithDetail("field", "purchasePrice")
	}
	if i.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}
	if i.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}
	return nil
}

// Touch updates the UpdatedAt timestamp and increments version.
func (i *Item) Touch() {
	i.UpdatedAt = time.Now().UTC()
	i.Version++
}

// AdjustQuantity applies a signed quantity adjustment, clamping at zero.
// The clamp is deliberate policy: stock is never observed negative.
func (i *Item) AdjustQuantity(delta int) {
	q := i.Quantity + delta
	if q < 0 {
		q = 0
	}
	i.Quantity = q
}
