package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"petstock/internal/core/types"
	"petstock/internal/domain/invoice"
	"petstock/internal/domain/item"
)

// Service computes reports over the item catalog and invoice history.
type Service struct {
	items    item.Repository
	invoices invoice.Repository
}

// NewService creates a new reports service.
func NewService(items item.Repository, invoices invoice.Repository) *Service {
	return &Service{items: items, invoices: invoices}
}

// Totals aggregates stock value over the filtered item set.
func (s *Service) Totals(ctx context.Context, filter item.ListFilter) (*Totals, error) {
	list, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	t := &Totals{
		PurchaseValue: types.Zero(),
		SaleValue:     types.Zero(),
		ItemCount:     len(list),
	}
	for _, it := range list {
		qty := types.NewMoneyFromInt(int64(it.Quantity))
		t.TotalQuantity += it.Quantity
		t.PurchaseValue = t.PurchaseValue.Add(it.PurchasePrice.Mul(qty))
		t.SaleValue = t.SaleValue.Add(it.UnitPrice.Mul(qty))
	}

	return t, nil
}

const topSellerLimit = 5

// Dashboard builds the landing-page summary: counts, this month's best
// sellers, and the near-expiry and expired item lists.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	list, err := s.items.List(ctx, item.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	d := &Dashboard{
		TotalItems:  len(list),
		GeneratedAt: now,
	}

	for _, it := range list {
		d.TotalQuantity += it.Quantity

		if it.ExpiryDate == nil || it.Quantity <= 0 {
			continue
		}

		expiry := *it.ExpiryDate
		daysLeft := int(expiry.Sub(today).Hours() / 24)
		entry := ExpiryEntry{Item: it, DaysLeft: daysLeft}

		if !expiry.After(today) {
			d.Expired = append(d.Expired, entry)
			continue
		}

		// Near expiry means within two calendar months, matching how a
		// shopkeeper reads the label rather than a fixed day count.
		monthsLeft := (expiry.Year()-today.Year())*12 + int(expiry.Month()) - int(today.Month())
		if monthsLeft <= 2 {
			d.NearExpiry = append(d.NearExpiry, entry)
		}
	}

	sort.Slice(d.NearExpiry, func(i, j int) bool {
		return d.NearExpiry[i].ExpiryDate.Before(*d.NearExpiry[j].ExpiryDate)
	})
	sort.Slice(d.Expired, func(i, j int) bool {
		return d.Expired[i].ExpiryDate.Before(*d.Expired[j].ExpiryDate)
	})

	sellers, err := s.topSellers(ctx, list, now)
	if err != nil {
		return nil, err
	}
	d.TopSellers = sellers

	return d, nil
}

// topSellers ranks the current month's sale volume per item code.
// Names come from the live catalog, falling back to the denormalized
// line name when the item has since been deleted.
func (s *Service) topSellers(ctx context.Context, catalog []*item.Item, now time.Time) ([]TopSeller, error) {
	invoices, err := s.invoices.ListByMonth(ctx, now.Year(), int(now.Month()))
	if err != nil {
		return nil, fmt.Errorf("list month invoices: %w", err)
	}

	sold := make(map[string]int)
	lineNames := make(map[string]string)
	for _, inv := range invoices {
		if inv.Type != invoice.TypeSale {
			continue
		}
		for _, line := range inv.Lines {
			sold[line.Code] += line.Quantity
			if _, seen := lineNames[line.Code]; !seen {
				lineNames[line.Code] = line.Name
			}
		}
	}
	if len(sold) == 0 {
		return nil, nil
	}

	names := make(map[string]string, len(catalog))
	for _, it := range catalog {
		names[it.Code] = it.Name
	}

	sellers := make([]TopSeller, 0, len(sold))
	for code, qty := range sold {
		name := names[code]
		if name == "" {
			name = lineNames[code]
		}
		sellers = append(sellers, TopSeller{Code: code, Name: name, QuantitySold: qty})
	}
	sort.Slice(sellers, func(i, j int) bool {
		if sellers[i].QuantitySold != sellers[j].QuantitySold {
			return sellers[i].QuantitySold > sellers[j].QuantitySold
		}
		return sellers[i].Code < sellers[j].Code
	})
	if len(sellers) > topSellerLimit {
		sellers = sellers[:topSellerLimit]
	}
	return sellers, nil
}

// AvailableMonths lists months that have invoice history, newest first.
func (s *Service) AvailableMonths(ctx context.Context) ([]string, error) {
	return s.invoices.AvailableMonths(ctx)
}
