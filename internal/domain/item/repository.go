package item

import (
	"context"

	"petstock/internal/core/id"
)

// SortOrder for list queries.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListFilter narrows and orders the item list.
// Mirrors the filtering and sorting the inventory table offers.
type ListFilter struct {
	// NameFilter matches case-insensitive substrings of the item name.
	NameFilter string

	// SortField is one of: name, brand, code, quantity, purchasePrice,
	// unitPrice, inventoryDate, expiryDate. Empty means insertion order.
	SortField string
	SortOrder SortOrder
}

// Repository defines persistence operations for items.
type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, itemID id.ID) (*Item, error)
	GetByCode(ctx context.Context, code string) (*Item, error)
	List(ctx context.Context, filter ListFilter) ([]*Item, error)
	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, itemID id.ID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
