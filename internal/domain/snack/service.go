package snack

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"petstock/internal/core/apperror"
	"petstock/internal/core/id"
	"petstock/internal/core/tx"
	"petstock/internal/core/types"
	"petstock/pkg/logger"
)

// Service provides business operations for snacks and their sales log.
type Service struct {
	repo      Repository
	salesLog  SalesLogRepository
	txManager tx.Manager

	calculating atomic.Bool
}

// NewService creates a new snack service.
func NewService(repo Repository, salesLog SalesLogRepository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		salesLog:  salesLog,
		txManager: txManager,
	}
}

// Create adds a new snack.
func (s *Service) Create(ctx context.Context, sn *Snack) error {
	if err := sn.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, sn)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "snack created", "id", sn.ID, "name", sn.Name)
	return nil
}

// List retrieves all snacks.
func (s *Service) List(ctx context.Context) ([]*Snack, error) {
	return s.repo.List(ctx)
}

// UpdateInput carries an edit to a snack. AddStock is an optional
// restock: it is added on top of Quantity.
type UpdateInput struct {
	Name     string
	Quantity int
	Price    types.Money
	AddStock int
}

// Update edits a snack, applying any restock amount.
func (s *Service) Update(ctx context.Context, snackID id.ID, in UpdateInput) (*Snack, error) {
	sn, err := s.repo.GetByID(ctx, snackID)
	if err != nil {
		return nil, err
	}

	sn.Name = in.Name
	sn.Quantity = in.Quantity + in.AddStock
	sn.Price = in.Price

	if err := sn.Validate(ctx); err != nil {
		return nil, err
	}

	sn.Touch()
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, sn)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "snack updated", "id", sn.ID, "name", sn.Name, "restock", in.AddStock)
	return sn, nil
}

// Delete removes a snack.
func (s *Service) Delete(ctx context.Context, snackID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, snackID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "snack deleted", "id", snackID)
	return nil
}

// DaySalesResult reports one day-sales calculation.
type DaySalesResult struct {
	Total types.Money `json:"totalSoldAmount"`
	Items []SoldItem  `json:"items"`
}

// RecordDaySales closes out a day: for each snack the leftover count is
// the remaining quantity; sold = current − leftover. Snack quantities
// are overwritten with the leftovers and one sales-log entry is
// appended. A snack absent from leftovers counts as fully unsold.
func (s *Service) RecordDaySales(ctx context.Context, leftovers map[id.ID]int) (*DaySalesResult, error) {
	if !s.calculating.CompareAndSwap(false, true) {
		return nil, apperror.NewOperationInFlight("day-sales")
	}
	defer s.calculating.Store(false)

	snacks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list snacks: %w", err)
	}
	if len(snacks) == 0 {
		return nil, apperror.NewValidation("no snacks to calculate")
	}

	total := types.Zero()
	sold := make([]SoldItem, 0, len(snacks))

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, sn := range snacks {
			leftover, ok := leftovers[sn.ID]
			if !ok {
				leftover = sn.Quantity
			}

			soldQty := sn.Quantity - leftover
			total = total.Add(sn.Price.Mul(types.NewMoneyFromInt(int64(soldQty))))
			sold = append(sold, SoldItem{
				Name:    sn.Name,
				SoldQty: soldQty,
				Price:   sn.Price,
			})

			sn.Quantity = leftover
			sn.Touch()
			if err := s.repo.Update(ctx, sn); err != nil {
				return fmt.Errorf("update snack %s: %w", sn.Name, err)
			}
		}

		entry := &SalesLogEntry{
			ID:        id.New(),
			Date:      time.Now().UTC(),
			TotalSold: total,
			Items:     sold,
		}
		if err := s.salesLog.Append(ctx, entry); err != nil {
			return fmt.Errorf("append sales log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "day sales recorded", "total", total, "snacks", len(sold))
	return &DaySalesResult{Total: total, Items: sold}, nil
}

// SalesHistory lists recorded day-sales entries.
func (s *Service) SalesHistory(ctx context.Context) ([]*SalesLogEntry, error) {
	return s.salesLog.List(ctx)
}
