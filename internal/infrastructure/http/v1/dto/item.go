package dto

import (
	"time"

	"petstock/internal/core/types"
	"petstock/internal/domain/item"
)

// CreateItemRequest adds a new item to the catalog.
type CreateItemRequest struct {
	Code          string      `json:"code" binding:"required"`
	Brand         string      `json:"brand" binding:"required"`
	Name          string      `json:"name" binding:"required"`
	PurchasePrice types.Money `json:"purchasePrice"`
	UnitPrice     types.Money `json:"unitPrice"`
	Quantity      int         `json:"quantity"`
	ExpiryDate    *time.Time  `json:"expiryDate"`
}

// ToEntity converts the request to a new domain item.
func (r CreateItemRequest) ToEntity() *item.Item {
	it := item.NewItem(r.Code, r.Brand, r.Name, r.PurchasePrice, r.UnitPrice, r.Quantity)
	it.ExpiryDate = r.ExpiryDate
	return it
}

// UpdateItemRequest edits an item directly (outside reconciliation).
// The code is fixed at creation and cannot be changed.
type UpdateItemRequest struct {
	Brand         string      `json:"brand" binding:"required"`
	Name          string      `json:"name" binding:"required"`
	PurchasePrice types.Money `json:"purchasePrice"`
	UnitPrice     types.Money `json:"unitPrice"`
	Quantity      int         `json:"quantity"`
	InventoryDate *time.Time  `json:"inventoryDate"`
	ExpiryDate    *time.Time  `json:"expiryDate"`
}

// ApplyTo copies the editable fields onto an existing item.
func (r UpdateItemRequest) ApplyTo(it *item.Item) {
	it.Brand = r.Brand
	it.Name = r.Name
	it.PurchasePrice = r.PurchasePrice
	it.UnitPrice = r.UnitPrice
	it.Quantity = r.Quantity
	if r.InventoryDate != nil {
		it.InventoryDate = *r.InventoryDate
	}
	it.ExpiryDate = r.ExpiryDate
}

// ListItemsQuery filters and sorts the catalog listing.
type ListItemsQuery struct {
	Name      string `form:"name"`
	SortField string `form:"sortField"`
	SortOrder string `form:"sortOrder"`
}

// ToFilter converts query parameters to a domain filter.
func (q ListItemsQuery) ToFilter() item.ListFilter {
	order := item.SortAsc
	if q.SortOrder == "desc" {
		order = item.SortDesc
	}
	return item.ListFilter{
		NameFilter: q.Name,
		SortField:  q.SortField,
		SortOrder:  order,
	}
}
