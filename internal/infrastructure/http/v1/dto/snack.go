package dto

import (
	"petstock/internal/core/types"
	"petstock/internal/domain/snack"
)

// CreateSnackRequest adds a snack to the counter.
type CreateSnackRequest struct {
	Name     string      `json:"name" binding:"required"`
	Quantity int         `json:"quantity"`
	Price    types.Money `json:"price"`
}

// ToEntity converts the request to a new domain snack.
func (r CreateSnackRequest) ToEntity() *snack.Snack {
	return snack.NewSnack(r.Name, r.Quantity, r.Price)
}

// UpdateSnackRequest edits a snack; AddStock is an optional restock
// applied on top of Quantity.
type UpdateSnackRequest struct {
	Name     string      `json:"name" binding:"required"`
	Quantity int         `json:"quantity"`
	Price    types.Money `json:"price"`
	AddStock int         `json:"addStock"`
}

// ToInput converts the request to service input.
func (r UpdateSnackRequest) ToInput() snack.UpdateInput {
	return snack.UpdateInput{
		Name:     r.Name,
		Quantity: r.Quantity,
		Price:    r.Price,
		AddStock: r.AddStock,
	}
}

// DaySalesRequest carries leftover counts keyed by snack id. A snack
// absent from the map counts as fully unsold.
type DaySalesRequest struct {
	Leftovers map[string]int `json:"leftovers"`
}
