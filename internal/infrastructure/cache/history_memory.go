package cache

import (
	"context"
	"sync"

	"petstock/internal/domain/invoice"
)

// Compile-time check.
var _ invoice.HistoryCache = (*MemoryHistory)(nil)

// MemoryHistory is the in-process month cache for invoice history. Used
// when no Redis address is configured.
type MemoryHistory struct {
	mu     sync.RWMutex
	months map[string][]*invoice.Invoice
}

// NewMemoryHistory creates an empty in-memory history cache.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{months: make(map[string][]*invoice.Invoice)}
}

// Get returns the cached invoices for a month key.
func (c *MemoryHistory) Get(_ context.Context, monthKey string) ([]*invoice.Invoice, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	invoices, ok := c.months[monthKey]
	return invoices, ok, nil
}

// Set stores the invoices for a month key.
func (c *MemoryHistory) Set(_ context.Context, monthKey string, invoices []*invoice.Invoice) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.months[monthKey] = invoices
	return nil
}

// Invalidate drops every cached month.
func (c *MemoryHistory) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.months = make(map[string][]*invoice.Invoice)
}
