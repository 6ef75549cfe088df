package invoice

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"petstock/internal/core/apperror"
	"petstock/internal/core/id"
	"petstock/internal/core/tx"
	"petstock/internal/core/types"
	"petstock/internal/domain/item"
	"petstock/pkg/logger"
)

// HistoryCache caches month-keyed invoice lists (key "YYYY-MM") with a
// fetch-once-until-invalidated contract. Every mutation invalidates it.
type HistoryCache interface {
	Get(ctx context.Context, monthKey string) ([]*Invoice, bool, error)
	Set(ctx context.Context, monthKey string, invoices []*Invoice) error
	Invalidate()
}

// SnapshotInvalidator flushes the session item snapshot after mutations.
type SnapshotInvalidator interface {
	Invalidate()
}

// SubmitLine is one proposed entry of a new invoice.
type SubmitLine struct {
	Code string
	Name string

	Quantity int

	// PurchasePrice and UnitPrice both apply to purchases (a purchase is
	// also a price/metadata update point); sales use UnitPrice only.
	PurchasePrice types.Money
	UnitPrice     types.Money

	// ExpiryDate overwrites the item's expiry on purchases.
	ExpiryDate *time.Time
}

// SubmitInput describes a proposed new invoice.
type SubmitInput struct {
	Type     Type
	Number   string
	Date     time.Time
	Supplier string
	Lines    []SubmitLine
}

// LineWarning records a line skipped during submission.
type LineWarning struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Reason string `json:"reason"`

	// ReasonCode is the machine-readable error code behind the skip.
	ReasonCode string `json:"reasonCode"`
}

func lineWarning(line SubmitLine, cause *apperror.AppError) LineWarning {
	return LineWarning{
		Code:       line.Code,
		Name:       line.Name,
		Reason:     cause.Message,
		ReasonCode: cause.Code,
	}
}

// SubmitResult reports the created invoice and any skipped lines.
type SubmitResult struct {
	InvoiceID id.ID         `json:"invoiceId"`
	Kept      int           `json:"kept"`
	Warnings  []LineWarning `json:"warnings,omitempty"`
}

// Service is the invoice reconciliation engine.
//
// Submit and Delete apply their item updates sequentially, invoice
// document written last, with no rollback on later failure. Edit commits
// all writes in a single transaction. Each operation is guarded by an
// in-flight latch: a second concurrent call fails fast and mutates
// nothing.
type Service struct {
	repo      Repository
	items     item.Repository
	txManager tx.Manager
	history   HistoryCache
	snapshot  SnapshotInvalidator

	submitting atomic.Bool
	editing    atomic.Bool
	deleting   atomic.Bool
}

// NewService creates the reconciliation engine.
func NewService(repo Repository, items item.Repository, txManager tx.Manager, history HistoryCache, snapshot SnapshotInvalidator) *Service {
	return &Service{
		repo:      repo,
		items:     items,
		txManager: txManager,
		history:   history,
		snapshot:  snapshot,
	}
}

// Submit applies a new invoice: adjusts item stock per line, computes
// sale profit, and persists the invoice with only the kept lines.
//
// Per-line policy (partial success):
//   - unknown code: line skipped with a warning
//   - sale line that would drive stock negative: skipped with a warning
//
// If every line is rejected the operation aborts and nothing persists.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if !s.submitting.CompareAndSwap(false, true) {
		return nil, apperror.NewOperationInFlight("submit")
	}
	defer s.submitting.Store(false)

	if err := s.validateSubmit(in); err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	var (
		kept     []Line
		updated  []*item.Item
		profit   = types.Zero()
		warnings []LineWarning
	)

	for _, line := range in.Lines {
		// Re-read authoritative state per line; the session snapshot is
		// never trusted for reconciliation.
		it, err := s.items.GetByCode(ctx, line.Code)
		if err != nil {
			if apperror.IsNotFound(err) {
				warnings = append(warnings, lineWarning(line, apperror.NewNotFound("item", line.Code)))
				continue
			}
			return nil, fmt.Errorf("load item %s: %w", line.Code, err)
		}

		var price types.Money
		switch in.Type {
		case TypePurchase:
			// A purchase also updates item pricing and metadata.
			it.AdjustQuantity(line.Quantity)
			it.PurchasePrice = line.PurchasePrice
			it.UnitPrice = line.UnitPrice
			it.ExpiryDate = line.ExpiryDate
			it.InventoryDate = date
			price = line.PurchasePrice
		case TypeSale:
			if it.Quantity-line.Quantity < 0 {
				warnings = append(warnings, lineWarning(line, apperror.NewInsufficientStock(line.Code, line.Quantity, it.Quantity)))
				continue
			}
			// Profit uses the item's current purchase price, not a price
			// frozen at some earlier invoice.
			profit = profit.Add(line.UnitPrice.Sub(it.PurchasePrice).Mul(types.NewMoneyFromInt(int64(line.Quantity))))
			it.AdjustQuantity(-line.Quantity)
			price = line.UnitPrice
		}

		updated = append(updated, it)
		kept = append(kept, Line{
			Code:     line.Code,
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    price,
		})
	}

	if len(kept) == 0 {
		return nil, apperror.NewNoValidEntries()
	}

	// Item updates first, invoice last. Best-effort ordering: a failure
	// mid-way leaves earlier updates in place.
	for _, it := range updated {
		it.Touch()
		if err := s.items.Update(ctx, it); err != nil {
			return nil, fmt.Errorf("update item %s: %w", it.Code, err)
		}
	}

	inv := &Invoice{
		ID:       id.New(),
		Number:   in.Number,
		Type:     in.Type,
		Date:     date,
		FullDate: time.Now().UTC(),
		Lines:    kept,
		Profit:   types.Zero(),
	}
	switch in.Type {
	case TypePurchase:
		inv.Supplier = in.Supplier
	case TypeSale:
		inv.Profit = profit
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	s.invalidateCaches()
	logger.Info(ctx, "invoice submitted",
		"id", inv.ID,
		"number", inv.Number,
		"type", inv.Type,
		"kept", len(kept),
		"skipped", len(warnings),
	)

	return &SubmitResult{InvoiceID: inv.ID, Kept: len(kept), Warnings: warnings}, nil
}

func (s *Service) validateSubmit(in SubmitInput) error {
	if in.Number == "" {
		return apperror.NewValidation("invoice number is required").
			WithDetail("field", "number")
	}
	if !IsValidType(in.Type) {
		return apperror.NewValidation("invalid invoice type").
			WithDetail("field", "type").
			WithDetail("value", string(in.Type))
	}
	if in.Type == TypePurchase && in.Supplier == "" {
		return apperror.NewValidation("supplier is required for purchases").
			WithDetail("field", "supplier")
	}
	if len(in.Lines) == 0 {
		return apperror.NewValidation("no items selected").
			WithDetail("field", "lines")
	}
	for i, line := range in.Lines {
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be a positive integer").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1).
				WithDetail("code", line.Code)
		}
	}
	return nil
}

// Delete reverses an invoice's inventory effect and removes it.
//
// The stored lines are the only source of truth for what must be
// reversed; live item state is irrelevant. Not idempotent: a second
// delete fails with not-found and performs no mutation. Item updates are
// applied before the invoice document is removed; there is no rollback
// if a later step fails.
func (s *Service) Delete(ctx context.Context, invoiceID id.ID) error {
	if !s.deleting.CompareAndSwap(false, true) {
		return apperror.NewOperationInFlight("delete")
	}
	defer s.deleting.Store(false)

	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}

	for _, line := range inv.Lines {
		it, err := s.items.GetByCode(ctx, line.Code)
		if err != nil {
			if apperror.IsNotFound(err) {
				// Item was deleted after the invoice; nothing to reverse.
				continue
			}
			return fmt.Errorf("load item %s: %w", line.Code, err)
		}

		it.AdjustQuantity(reversalAdjustment(inv.Type, line.Quantity))
		it.Touch()
		if err := s.items.Update(ctx, it); err != nil {
			return fmt.Errorf("update item %s: %w", it.Code, err)
		}
	}

	if err := s.repo.Delete(ctx, invoiceID); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}

	s.invalidateCaches()
	logger.Info(ctx, "invoice deleted", "id", invoiceID, "type", inv.Type)
	return nil
}

// Edit replaces an invoice's lines and supplier, adjusting item stock by
// the per-code quantity delta between the stored lines and the new ones.
//
// The stored lines are the reconciliation baseline, not live quantities.
// Codes that no longer resolve to an item are silently skipped. The new
// lines are persisted verbatim: the edit path performs no positivity or
// stock re-validation (unlike Submit), and stored profit is not
// recomputed. All writes commit in a single transaction.
func (s *Service) Edit(ctx context.Context, invoiceID id.ID, supplier string, newLines []Line) error {
	if !s.editing.CompareAndSwap(false, true) {
		return apperror.NewOperationInFlight("edit")
	}
	defer s.editing.Store(false)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.repo.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}

		deltas := quantityDeltas(inv.Lines, newLines)

		for code, delta := range deltas {
			if delta == 0 {
				continue
			}

			it, err := s.items.GetByCode(ctx, code)
			if err != nil {
				if apperror.IsNotFound(err) {
					continue
				}
				return fmt.Errorf("load item %s: %w", code, err)
			}

			it.AdjustQuantity(signedAdjustment(inv.Type, delta))
			it.Touch()
			if err := s.items.Update(ctx, it); err != nil {
				return fmt.Errorf("update item %s: %w", code, err)
			}
		}

		if err := s.repo.UpdateLines(ctx, invoiceID, newLines, supplier); err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCaches()
	logger.Info(ctx, "invoice edited", "id", invoiceID, "lines", len(newLines))
	return nil
}

// GetByID retrieves a single invoice.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	return s.repo.GetByID(ctx, invoiceID)
}

// HistoryByMonth returns the invoices of a month, newest first, serving
// from the month cache until a mutation invalidates it.
func (s *Service) HistoryByMonth(ctx context.Context, year, month int) ([]*Invoice, error) {
	if year <= 0 || month < 1 || month > 12 {
		return nil, apperror.NewValidation("invalid year/month").
			WithDetail("year", year).
			WithDetail("month", month)
	}

	key := MonthKey(year, month)

	if s.history != nil {
		if cached, ok, err := s.history.Get(ctx, key); err == nil && ok {
			return cached, nil
		} else if err != nil {
			logger.Warn(ctx, "history cache read failed", "key", key, "error", err)
		}
	}

	invoices, err := s.repo.ListByMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("list by month: %w", err)
	}

	if s.history != nil {
		if err := s.history.Set(ctx, key, invoices); err != nil {
			logger.Warn(ctx, "history cache write failed", "key", key, "error", err)
		}
	}

	return invoices, nil
}

// AvailableMonths lists the months that have invoices, newest first.
func (s *Service) AvailableMonths(ctx context.Context) ([]string, error) {
	return s.repo.AvailableMonths(ctx)
}

// MonthKey formats the cache key for a month ("YYYY-MM").
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func (s *Service) invalidateCaches() {
	if s.history != nil {
		s.history.Invalidate()
	}
	if s.snapshot != nil {
		s.snapshot.Invalidate()
	}
}
