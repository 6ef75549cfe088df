package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"petstock/internal/core/apperror"
	"petstock/internal/core/id"
	"petstock/internal/domain/invoice"
)

// Compile-time check.
var _ invoice.Repository = (*InvoiceRepo)(nil)

// InvoiceRepo is the PostgreSQL invoice repository. Lines are stored as
// a JSONB array on the invoice row: they are read and written as a
// whole, matching the document shape the engine reasons about.
type InvoiceRepo struct {
	txManager *TxManager
}

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txManager *TxManager) *InvoiceRepo {
	return &InvoiceRepo{txManager: txManager}
}

func (r *InvoiceRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new invoice.
func (r *InvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	lines, err := json.Marshal(inv.Lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}

	q := r.builder().
		Insert("invoices").
		Columns("id", "number", "type", "date", "full_date", "supplier", "lines", "profit").
		Values(inv.ID, inv.Number, inv.Type, inv.Date, inv.FullDate, inv.Supplier, lines, inv.Profit)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID retrieves an invoice with its lines.
func (r *InvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	q := r.builder().
		Select("id", "number", "type", "date", "full_date", "supplier", "lines", "profit").
		From("invoices").
		Where(squirrel.Eq{"id": invoiceID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...)
	inv, err := scanInvoice(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperror.NewNotFound("invoice", invoiceID.String())
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// UpdateLines replaces the stored line list and supplier verbatim.
func (r *InvoiceRepo) UpdateLines(ctx context.Context, invoiceID id.ID, lines []invoice.Line, supplier string) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}

	q := r.builder().
		Update("invoices").
		Set("lines", payload).
		Set("supplier", supplier).
		Where(squirrel.Eq{"id": invoiceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("invoice", invoiceID.String())
	}
	return nil
}

// Delete removes an invoice permanently.
func (r *InvoiceRepo) Delete(ctx context.Context, invoiceID id.ID) error {
	q := r.builder().
		Delete("invoices").
		Where(squirrel.Eq{"id": invoiceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("invoice", invoiceID.String())
	}
	return nil
}

// ListByMonth returns the invoices of one calendar month, newest
// submission first.
func (r *InvoiceRepo) ListByMonth(ctx context.Context, year, month int) ([]*invoice.Invoice, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	q := r.builder().
		Select("id", "number", "type", "date", "full_date", "supplier", "lines", "profit").
		From("invoices").
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.Lt{"date": end}).
		OrderBy("full_date DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.txManager.GetQuerier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// AvailableMonths returns distinct YYYY-MM keys with invoices, newest first.
func (r *InvoiceRepo) AvailableMonths(ctx context.Context) ([]string, error) {
	sql := `SELECT DISTINCT to_char(date, 'YYYY-MM') AS month
	        FROM invoices ORDER BY month DESC`

	rows, err := r.txManager.GetQuerier(ctx).Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list months: %w", err)
	}
	defer rows.Close()

	var months []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("scan month: %w", err)
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

// scanInvoice reads one invoice row, decoding the JSONB line array.
func scanInvoice(row pgx.Row) (*invoice.Invoice, error) {
	var (
		inv   invoice.Invoice
		lines []byte
	)
	if err := row.Scan(&inv.ID, &inv.Number, &inv.Type, &inv.Date, &inv.FullDate, &inv.Supplier, &lines, &inv.Profit); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &inv.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal lines: %w", err)
	}
	return &inv, nil
}
