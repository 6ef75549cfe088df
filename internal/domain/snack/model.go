// Package snack provides the snack counter stock and its day-sales log.
// Snack sales are leftover-count snapshots, not delta-based transactions.
package snack

import (
	"context"
	"time"

	"petstock/internal/core/apperror"
	"petstock/internal/core/id"
	"petstock/internal/core/types"
)

// Snack is a counter item with quantity and a single price.
type Snack struct {
	ID       id.ID       `db:"id" json:"id"`
	Name     string      `db:"name" json:"name"`
	Quantity int         `db:"quantity" json:"quantity"`
	Price    types.Money `db:"price" json:"price"`

	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewSnack creates a new Snack with generated ID.
func NewSnack(name string, quantity int, price types.Money) *Snack {
	now := time.Now().UTC()
	return &Snack{
		ID:        id.New(),
		Name:      name,
		Quantity:  quantity,
		Price:     price,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks snack invariants.
func (s *Snack) Validate(ctx context.Context) error {
	if s.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if s.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}
	if s.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}
	return nil
}

// Touch updates the UpdatedAt timestamp and increments version.
func (s *Snack) Touch() {
	s.UpdatedAt = time.Now().UTC()
	s.Version++
}

// SoldItem is one snack's contribution to a day-sales log entry.
type SoldItem struct {
	Name    string      `json:"name"`
	SoldQty int         `json:"soldQty"`
	Price   types.Money `json:"price"`
}

// SalesLogEntry records one day-sales calculation.
type SalesLogEntry struct {
	ID        id.ID       `db:"id" json:"id"`
	Date      time.Time   `db:"date" json:"date"`
	TotalSold types.Money `db:"total_sold" json:"totalSoldAmount"`
	Items     []SoldItem  `db:"items" json:"items"`
}
