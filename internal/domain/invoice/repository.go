package invoice

import (
	"context"

	"petstock/internal/core/id"
)

// Repository defines persistence operations for invoices.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)

	// UpdateLines replaces the stored line list and supplier verbatim.
	// Nothing else on the invoice changes.
	UpdateLines(ctx context.Context, invoiceID id.ID, lines []Line, supplier string) error

	Delete(ctx context.Context, invoiceID id.ID) error

	// ListByMonth returns invoices whose business date falls in the
	// given month, newest submission first.
	ListByMonth(ctx context.Context, year int, month int) ([]*Invoice, error)

	// AvailableMonths returns the distinct YYYY-MM keys that have
	// invoices, newest first.
	AvailableMonths(ctx context.Context) ([]string, error)
}
