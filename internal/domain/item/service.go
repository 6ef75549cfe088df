package item

import (
	"context"
	"fmt"

	"petstock/internal/core/apperror"
	"petstock/internal/core/id"
	"petstock/internal/core/tx"
	"petstock/pkg/logger"
)

// Invalidator is implemented by caches that must be flushed after any
// item mutation (the session snapshot cache).
type Invalidator interface {
	Invalidate()
}

// Snapshot is the session item snapshot: the full catalog is fetched
// once and reused until a mutation invalidates it.
type Snapshot interface {
	Invalidator
	Get() ([]*Item, bool)
	Set(items []*Item)
}

// Service provides business operations for the item catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
	snapshot  Snapshot
}

// NewService creates a new item service.
func NewService(repo Repository, txManager tx.Manager, snapshot Snapshot) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		snapshot:  snapshot,
	}
}

// Create adds a new item to the catalog. Codes are unique.
func (s *Service) Create(ctx context.Context, it *Item) error {
	if err := it.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByCode(ctx, it.Code)
	if err != nil {
		return fmt.Errorf("check code: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("item", "code", it.Code)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, it)
	})
	if err != nil {
		return err
	}

	s.invalidateSnapshot()
	logger.Info(ctx, "item created", "id", it.ID, "code", it.Code)
	return nil
}

// GetByID retrieves an item by storage identity.
func (s *Service) GetByID(ctx context.Context, itemID id.ID) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

// GetByCode retrieves an item by its business key.
func (s *Service) GetByCode(ctx context.Context, code string) (*Item, error) {
	return s.repo.GetByCode(ctx, code)
}

// List retrieves items with filtering and sorting. The unfiltered
// catalog is served from the session snapshot when one is valid;
// filtered and sorted queries always hit the store.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Item, error) {
	plain := filter == ListFilter{}

	if plain && s.snapshot != nil {
		if items, ok := s.snapshot.Get(); ok {
			return items, nil
		}
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if plain && s.snapshot != nil {
		s.snapshot.Set(items)
	}
	return items, nil
}

// Update modifies an existing item directly (not via reconciliation).
func (s *Service) Update(ctx context.Context, it *Item) error {
	if err := it.Validate(ctx); err != nil {
		return err
	}

	it.Touch()
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, it)
	})
	if err != nil {
		// Touch bumped version optimistically; restore on failure.
		it.Version--
		return err
	}

	s.invalidateSnapshot()
	logger.Info(ctx, "item updated", "id", it.ID, "code", it.Code)
	return nil
}

// Delete removes an item. Historical invoices keep referencing its code;
// the reference is weak and reconciliation skips unresolved codes.
func (s *Service) Delete(ctx context.Context, itemID id.ID) error {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, itemID)
	})
	if err != nil {
		return err
	}

	s.invalidateSnapshot()
	logger.Info(ctx, "item deleted", "id", itemID, "code", it.Code)
	return nil
}

func (s *Service) invalidateSnapshot() {
	if s.snapshot != nil {
		s.snapshot.Invalidate()
	}
}
