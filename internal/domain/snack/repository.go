package snack

import (
	"context"

	"petstock/internal/core/id"
)

// Repository defines persistence operations for snacks.
type Repository interface {
	Create(ctx context.Context, sn *Snack) error
	GetByID(ctx context.Context, snackID id.ID) (*Snack, error)
	List(ctx context.Context) ([]*Snack, error)
	Update(ctx context.Context, sn *Snack) error
	Delete(ctx context.Context, snackID id.ID) error
}

// SalesLogRepository persists day-sales log entries.
type SalesLogRepository interface {
	Append(ctx context.Context, entry *SalesLogEntry) error
	List(ctx context.Context) ([]*SalesLogEntry, error)
}
