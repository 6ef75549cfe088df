// Package reports derives dashboard figures and stock totals from the
// item catalog and invoice history.
package reports

import (
	"time"

	"petstock/internal/core/types"
	"petstock/internal/domain/item"
)

// Totals aggregates stock value over a (possibly filtered) item set.
type Totals struct {
	// TotalQuantity is the summed on-hand quantity.
	TotalQuantity int `json:"totalQuantity"`

	// PurchaseValue is Σ purchasePrice × quantity.
	PurchaseValue types.Money `json:"purchaseValue"`

	// SaleValue is Σ unitPrice × quantity.
	SaleValue types.Money `json:"saleValue"`

	// ItemCount is the number of items in the filtered set.
	ItemCount int `json:"itemCount"`
}

// ExpiryEntry is an item flagged by the expiry report.
type ExpiryEntry struct {
	*item.Item

	// DaysLeft is negative for already-expired items.
	DaysLeft int `json:"daysLeft"`
}

// TopSeller is one entry of the current month's best-seller ranking.
type TopSeller struct {
	Code string `json:"code"`
	Name string `json:"name"`

	// QuantitySold sums sale-invoice line quantities for the month.
	QuantitySold int `json:"quantitySold"`
}

// Dashboard summarizes the inventory for the landing page.
type Dashboard struct {
	TotalItems    int `json:"totalItems"`
	TotalQuantity int `json:"totalQuantity"`

	// TopSellers ranks the current month's best-selling items by quantity
	// sold, largest first, capped at five entries.
	TopSellers []TopSeller `json:"topSellers"`

	// NearExpiry lists unexpired items expiring within two calendar
	// months, soonest first. Only items with stock are flagged.
	NearExpiry []ExpiryEntry `json:"nearExpiry"`

	// Expired lists items past their expiry date with stock remaining,
	// oldest expiry first.
	Expired []ExpiryEntry `json:"expired"`

	GeneratedAt time.Time `json:"generatedAt"`
}
