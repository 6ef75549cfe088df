package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"petstock/internal/core/apperror"
	"petstock/internal/core/id"
	"petstock/internal/domain/item"
)

var itemColumns = []string{
	"id", "code", "brand", "name",
	"purchase_price", "unit_price", "quantity",
	"inventory_date", "expiry_date",
	"version", "created_at", "updated_at",
}

// sortable maps API sort fields to columns. Whitelist doubles as SQL
// injection protection.
var itemSortColumns = map[string]string{
	"name":          "name",
	"brand":         "brand",
	"code":          "code",
	"quantity":      "quantity",
	"purchasePrice": "purchase_price",
	"unitPrice":     "unit_price",
	"inventoryDate": "inventory_date",
	"expiryDate":    "expiry_date",
}

// Compile-time check.
var _ item.Repository = (*ItemRepo)(nil)

// ItemRepo is the PostgreSQL item repository.
type ItemRepo struct {
	txManager *TxManager
}

// NewItemRepo creates a new item repository.
func NewItemRepo(txManager *TxManager) *ItemRepo {
	return &ItemRepo{txManager: txManager}
}

func (r *ItemRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new item.
func (r *ItemRepo) Create(ctx context.Context, it *item.Item) error {
	q := r.builder().
		Insert("items").
		Columns(itemColumns...).
		Values(
			it.ID, it.Code, it.Brand, it.Name,
			it.PurchasePrice, it.UnitPrice, it.Quantity,
			it.InventoryDate, it.ExpiryDate,
			it.Version, it.CreatedAt, it.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID retrieves an item by storage identity.
func (r *ItemRepo) GetByID(ctx context.Context, itemID id.ID) (*item.Item, error) {
	return r.getOne(ctx, squirrel.Eq{"id": itemID}, itemID.String())
}

// GetByCode retrieves an item by its business key.
func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*item.Item, error) {
	return r.getOne(ctx, squirrel.Eq{"code": code}, code)
}

func (r *ItemRepo) getOne(ctx context.Context, where squirrel.Eq, key string) (*item.Item, error) {
	q := r.builder().
		Select(itemColumns...).
		From("items").
		Where(where).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var it item.Item
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &it, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("item", key)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// List retrieves items with filtering and sorting.
func (r *ItemRepo) List(ctx context.Context, filter item.ListFilter) ([]*item.Item, error) {
	q := r.builder().
		Select(itemColumns...).
		From("items")

	if filter.NameFilter != "" {
		q = q.Where(squirrel.ILike{"name": "%" + filter.NameFilter + "%"})
	}

	if filter.SortField != "" {
		col, ok := itemSortColumns[filter.SortField]
		if !ok {
			return nil, apperror.NewValidation("invalid sort field").
				WithDetail("field", filter.SortField)
		}
		dir := "ASC"
		if filter.SortOrder == item.SortDesc {
			dir = "DESC"
		}
		q = q.OrderBy(col + " " + dir)
	} else {
		// Insertion order: UUIDv7 ids are time-ordered.
		q = q.OrderBy("id")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*item.Item
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Update modifies an existing item with optimistic locking.
// Callers Touch() the item first; the WHERE clause expects the
// pre-Touch version.
func (r *ItemRepo) Update(ctx context.Context, it *item.Item) error {
	q := r.builder().
		Update("items").
		Set("brand", it.Brand).
		Set("name", it.Name).
		Set("purchase_price", it.PurchasePrice).
		Set("unit_price", it.UnitPrice).
		Set("quantity", it.Quantity).
		Set("inventory_date", it.InventoryDate).
		Set("expiry_date", it.ExpiryDate).
		Set("version", it.Version).
		Set("updated_at", it.UpdatedAt).
		Where(squirrel.Eq{"id": it.ID}).
		Where(squirrel.Eq{"version": it.Version - 1})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("item", it.ID.String())
	}
	return nil
}

// Delete removes an item permanently.
func (r *ItemRepo) Delete(ctx context.Context, itemID id.ID) error {
	q := r.builder().
		Delete("items").
		Where(squirrel.Eq{"id": itemID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("item", itemID.String())
	}
	return nil
}

// ExistsByCode checks if an item with the given code exists.
func (r *ItemRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	sql := "SELECT EXISTS(SELECT 1 FROM items WHERE code = $1)"

	var exists bool
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by code: %w", err)
	}
	return exists, nil
}
