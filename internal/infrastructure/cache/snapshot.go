// Package cache provides the session item snapshot and the month-keyed
// invoice history cache, with in-memory and Redis backends.
package cache

import (
	"sync"

	"petstock/internal/domain/invoice"
	"petstock/internal/domain/item"
)

// Compile-time checks.
var (
	_ item.Snapshot               = (*ItemSnapshot)(nil)
	_ invoice.SnapshotInvalidator = (*ItemSnapshot)(nil)
)

// ItemSnapshot holds the full item catalog in memory, fetched once and
// reused until a mutation invalidates it.
type ItemSnapshot struct {
	mu    sync.RWMutex
	items []*item.Item
	valid bool
}

// NewItemSnapshot creates an empty, invalid snapshot.
func NewItemSnapshot() *ItemSnapshot {
	return &ItemSnapshot{}
}

// Get returns the cached catalog and whether it is valid.
func (c *ItemSnapshot) Get() ([]*item.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid {
		return nil, false
	}
	return c.items, true
}

// Set replaces the cached catalog and marks it valid.
func (c *ItemSnapshot) Set(items []*item.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.valid = true
}

// Invalidate discards the snapshot. The next read reloads from the
// store.
func (c *ItemSnapshot) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.valid = false
}
