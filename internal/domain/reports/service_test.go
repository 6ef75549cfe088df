package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petstock/internal/core/apperror"
	"petstock/internal/core/id"
	"petstock/internal/core/types"
	"petstock/internal/domain/invoice"
	"petstock/internal/domain/item"
)

type memItems struct {
	items []*item.Item
}

func (m *memItems) Create(ctx context.Context, it *item.Item) error {
	m.items = append(m.items, it)
	return nil
}

func (m *memItems) GetByID(ctx context.Context, itemID id.ID) (*item.Item, error) {
	return nil, apperror.NewNotFound("item", itemID.String())
}

func (m *memItems) GetByCode(ctx context.Context, code string) (*item.Item, error) {
	return nil, apperror.NewNotFound("item", code)
}

func (m *memItems) List(ctx context.Context, filter item.ListFilter) ([]*item.Item, error) {
	return m.items, nil
}

func (m *memItems) Update(ctx context.Context, it *item.Item) error { return nil }

func (m *memItems) Delete(ctx context.Context, itemID id.ID) error { return nil }

func (m *memItems) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return false, nil
}

type memInvoices struct {
	months   []string
	invoices []*invoice.Invoice
}

func (m *memInvoices) Create(ctx context.Context, inv *invoice.Invoice) error { return nil }

func (m *memInvoices) GetByID(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	return nil, apperror.NewNotFound("invoice", invoiceID.String())
}

func (m *memInvoices) UpdateLines(ctx context.Context, invoiceID id.ID, lines []invoice.Line, supplier string) error {
	return nil
}

func (m *memInvoices) Delete(ctx context.Context, invoiceID id.ID) error { return nil }

func (m *memInvoices) ListByMonth(ctx context.Context, year, month int) ([]*invoice.Invoice, error) {
	return m.invoices, nil
}

func (m *memInvoices) AvailableMonths(ctx context.Context) ([]string, error) {
	return m.months, nil
}

func testItem(code string, qty int, purchase, unit string, expiry *time.Time) *item.Item {
	it := item.NewItem(code, "Brand", "Item "+code, types.MustMoney(purchase), types.MustMoney(unit), qty)
	it.ExpiryDate = expiry
	return it
}

func daysFromNow(days int) *time.Time {
	t := time.Now().UTC().AddDate(0, 0, days)
	return &t
}

func TestTotals(t *testing.T) {
	items := &memItems{items: []*item.Item{
		testItem("A", 3, "100", "150", nil),
		testItem("B", 2, "200", "300", nil),
	}}
	svc := NewService(items, &memInvoices{})

	totals, err := svc.Totals(context.Background(), item.ListFilter{})
	require.NoError(t, err)

	assert.Equal(t, 5, totals.TotalQuantity)
	assert.Equal(t, 2, totals.ItemCount)
	// 3*100 + 2*200
	assert.True(t, totals.PurchaseValue.Equal(types.MustMoney("700")), "purchase = %s", totals.PurchaseValue)
	// 3*150 + 2*300
	assert.True(t, totals.SaleValue.Equal(types.MustMoney("1050")), "sale = %s", totals.SaleValue)
}

func TestDashboardClassifiesExpiry(t *testing.T) {
	items := &memItems{items: []*item.Item{
		testItem("FRESH", 5, "100", "150", daysFromNow(365)),
		testItem("SOON", 5, "100", "150", daysFromNow(20)),
		testItem("PAST", 5, "100", "150", daysFromNow(-10)),
		testItem("EMPTY", 0, "100", "150", daysFromNow(-10)),
		testItem("NODATE", 5, "100", "150", nil),
	}}
	svc := NewService(items, &memInvoices{})

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, d.TotalItems)
	assert.Equal(t, 20, d.TotalQuantity)

	require.Len(t, d.NearExpiry, 1)
	assert.Equal(t, "SOON", d.NearExpiry[0].Code)
	assert.Positive(t, d.NearExpiry[0].DaysLeft)

	// Out-of-stock and undated items are never flagged.
	require.Len(t, d.Expired, 1)
	assert.Equal(t, "PAST", d.Expired[0].Code)
	assert.Negative(t, d.Expired[0].DaysLeft)
}

func TestDashboardSortsBySoonestExpiry(t *testing.T) {
	items := &memItems{items: []*item.Item{
		testItem("LATER", 1, "100", "150", daysFromNow(40)),
		testItem("SOONER", 1, "100", "150", daysFromNow(5)),
	}}
	svc := NewService(items, &memInvoices{})

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, d.NearExpiry, 2)
	assert.Equal(t, "SOONER", d.NearExpiry[0].Code)
	assert.Equal(t, "LATER", d.NearExpiry[1].Code)
}

func saleInvoice(lines ...invoice.Line) *invoice.Invoice {
	return &invoice.Invoice{ID: id.New(), Type: invoice.TypeSale, Lines: lines}
}

func TestDashboardRanksTopSellers(t *testing.T) {
	items := &memItems{items: []*item.Item{
		testItem("A", 5, "100", "150", nil),
		testItem("B", 5, "100", "150", nil),
	}}
	invoices := &memInvoices{invoices: []*invoice.Invoice{
		saleInvoice(
			invoice.Line{Code: "A", Name: "Item A", Quantity: 2},
			invoice.Line{Code: "B", Name: "Item B", Quantity: 7},
		),
		saleInvoice(invoice.Line{Code: "A", Name: "Item A", Quantity: 4}),
		// Purchases never count toward sale volume.
		{ID: id.New(), Type: invoice.TypePurchase, Lines: []invoice.Line{
			{Code: "A", Name: "Item A", Quantity: 50},
		}},
	}}
	svc := NewService(items, invoices)

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, d.TopSellers, 2)
	assert.Equal(t, TopSeller{Code: "B", Name: "Item B", QuantitySold: 7}, d.TopSellers[0])
	assert.Equal(t, TopSeller{Code: "A", Name: "Item A", QuantitySold: 6}, d.TopSellers[1])
}

func TestDashboardTopSellersCappedAtFive(t *testing.T) {
	lines := []invoice.Line{
		{Code: "C1", Name: "Item C1", Quantity: 1},
		{Code: "C2", Name: "Item C2", Quantity: 2},
		{Code: "C3", Name: "Item C3", Quantity: 3},
		{Code: "C4", Name: "Item C4", Quantity: 4},
		{Code: "C5", Name: "Item C5", Quantity: 5},
		{Code: "C6", Name: "Item C6", Quantity: 6},
	}
	invoices := &memInvoices{invoices: []*invoice.Invoice{saleInvoice(lines...)}}
	svc := NewService(&memItems{}, invoices)

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, d.TopSellers, 5)
	assert.Equal(t, "C6", d.TopSellers[0].Code)
	assert.Equal(t, "C2", d.TopSellers[4].Code)

	// The catalog no longer has these items; names fall back to the
	// denormalized line names.
	assert.Equal(t, "Item C6", d.TopSellers[0].Name)
}

func TestDashboardTopSellersEmptyMonth(t *testing.T) {
	svc := NewService(&memItems{}, &memInvoices{})

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Empty(t, d.TopSellers)
}

func TestAvailableMonths(t *testing.T) {
	svc := NewService(&memItems{}, &memInvoices{months: []string{"2026-08", "2026-07"}})

	months, err := svc.AvailableMonths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08", "2026-07"}, months)
}
