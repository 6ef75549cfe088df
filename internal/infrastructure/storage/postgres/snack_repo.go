package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"petstock/internal/core/apperror"
	"petstock/internal/core/id"
	"petstock/internal/domain/snack"
)

var snackColumns = []string{
	"id", "name", "quantity", "price",
	"version", "created_at", "updated_at",
}

// Compile-time checks.
var (
	_ snack.Repository         = (*SnackRepo)(nil)
	_ snack.SalesLogRepository = (*SnackSalesLogRepo)(nil)
)

// SnackRepo is the PostgreSQL snack repository.
type SnackRepo struct {
	txManager *TxManager
}

// NewSnackRepo creates a new snack repository.
func NewSnackRepo(txManager *TxManager) *SnackRepo {
	return &SnackRepo{txManager: txManager}
}

func (r *SnackRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new snack.
func (r *SnackRepo) Create(ctx context.Context, sn *snack.Snack) error {
	q := r.builder().
		Insert("snacks").
		Columns(snackColumns...).
		Values(sn.ID, sn.Name, sn.Quantity, sn.Price, sn.Version, sn.CreatedAt, sn.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert snack: %w", err)
	}
	return nil
}

// GetByID retrieves a snack.
func (r *SnackRepo) GetByID(ctx context.Context, snackID id.ID) (*snack.Snack, error) {
	q := r.builder().
		Select(snackColumns...).
		From("snacks").
		Where(squirrel.Eq{"id": snackID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var sn snack.Snack
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &sn, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("snack", snackID.String())
		}
		return nil, fmt.Errorf("get snack: %w", err)
	}
	return &sn, nil
}

// List retrieves all snacks in insertion order.
func (r *SnackRepo) List(ctx context.Context) ([]*snack.Snack, error) {
	q := r.builder().
		Select(snackColumns...).
		From("snacks").
		OrderBy("id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var snacks []*snack.Snack
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &snacks, sql, args...); err != nil {
		return nil, fmt.Errorf("list snacks: %w", err)
	}
	return snacks, nil
}

// Update modifies an existing snack with optimistic locking.
func (r *SnackRepo) Update(ctx context.Context, sn *snack.Snack) error {
	q := r.builder().
		Update("snacks").
		Set("name", sn.Name).
		Set("quantity", sn.Quantity).
		Set("price", sn.Price).
		Set("version", sn.Version).
		Set("updated_at", sn.UpdatedAt).
		Where(squirrel.Eq{"id": sn.ID}).
		Where(squirrel.Eq{"version": sn.Version - 1})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update snack: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("snack", sn.ID.String())
	}
	return nil
}

// Delete removes a snack permanently.
func (r *SnackRepo) Delete(ctx context.Context, snackID id.ID) error {
	q := r.builder().
		Delete("snacks").
		Where(squirrel.Eq{"id": snackID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete snack: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("snack", snackID.String())
	}
	return nil
}

// SnackSalesLogRepo persists day-sales log entries. Sold items are a
// JSONB array per entry.
type SnackSalesLogRepo struct {
	txManager *TxManager
}

// NewSnackSalesLogRepo creates a new sales log repository.
func NewSnackSalesLogRepo(txManager *TxManager) *SnackSalesLogRepo {
	return &SnackSalesLogRepo{txManager: txManager}
}

// Append inserts a sales log entry.
func (r *SnackSalesLogRepo) Append(ctx context.Context, entry *snack.SalesLogEntry) error {
	items, err := json.Marshal(entry.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	sql := `INSERT INTO snack_sales_log (id, date, total_sold, items)
	        VALUES ($1, $2, $3, $4)`

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, entry.ID, entry.Date, entry.TotalSold, items); err != nil {
		return fmt.Errorf("insert sales log entry: %w", err)
	}
	return nil
}

// List retrieves sales log entries, newest first.
func (r *SnackSalesLogRepo) List(ctx context.Context) ([]*snack.SalesLogEntry, error) {
	sql := `SELECT id, date, total_sold, items
	        FROM snack_sales_log ORDER BY date DESC`

	rows, err := r.txManager.GetQuerier(ctx).Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list sales log: %w", err)
	}
	defer rows.Close()

	var entries []*snack.SalesLogEntry
	for rows.Next() {
		var (
			entry snack.SalesLogEntry
			items []byte
		)
		if err := rows.Scan(&entry.ID, &entry.Date, &entry.TotalSold, &items); err != nil {
			return nil, fmt.Errorf("scan sales log entry: %w", err)
		}
		if err := json.Unmarshal(items, &entry.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
