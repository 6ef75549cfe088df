// Package basket provides the transient selection used to build a new
// invoice. It is session-scoped and never persisted.
package basket

import (
	"sync"
	"time"

	"petstock/internal/core/types"
	"petstock/internal/domain/item"
)

// Entry is one chosen item. Quantity and prices are editable before
// submission; Remaining snapshots the stock seen when the item was added.
type Entry struct {
	Code          string      `json:"code"`
	Name          string      `json:"name"`
	Quantity      int         `json:"quantity"`
	PurchasePrice types.Money `json:"purchasePrice"`
	UnitPrice     types.Money `json:"unitPrice"`
	ExpiryDate    *time.Time  `json:"expiryDate,omitempty"`
	Remaining     int         `json:"remaining"`
}

// Observer is notified after every basket change. Replaces the ambient
// event broadcast of the old UI with an explicit interface.
type Observer interface {
	BasketChanged(entries []Entry)
}

// Basket holds the current selection, keyed by item code.
type Basket struct {
	mu        sync.Mutex
	entries   []Entry
	observers []Observer
}

// New creates an empty basket.
func New() *Basket {
	return &Basket{}
}

// RegisterObserver subscribes o to basket changes.
func (b *Basket) RegisterObserver(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, o)
}

// Add selects an item with default quantity 1. Duplicate codes are
// ignored. Reports whether the item was added.
func (b *Basket) Add(it *item.Item) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range b.entries {
		if e.Code == it.Code {
			return false
		}
	}

	b.entries = append(b.entries, Entry{
		Code:          it.Code,
		Name:          it.Name,
		Quantity:      1,
		PurchasePrice: it.PurchasePrice,
		UnitPrice:     it.UnitPrice,
		ExpiryDate:    it.ExpiryDate,
		Remaining:     it.Quantity,
	})
	b.notifyLocked()
	return true
}

// Remove drops the entry with the given code, if present.
func (b *Basket) Remove(code string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, e := range b.entries {
		if e.Code == code {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			b.notifyLocked()
			return
		}
	}
}

// Update applies fn to the entry with the given code.
func (b *Basket) Update(code string, fn func(e *Entry)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.entries {
		if b.entries[i].Code == code {
			fn(&b.entries[i])
			b.notifyLocked()
			return true
		}
	}
	return false
}

// Clear empties the selection.
func (b *Basket) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == 0 {
		return
	}
	b.entries = nil
	b.notifyLocked()
}

// IsSelected reports whether a code is in the basket.
func (b *Basket) IsSelected(code string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range b.entries {
		if e.Code == code {
			return true
		}
	}
	return false
}

// Entries returns the selection in insertion order.
func (b *Basket) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.copyLocked()
}

// Len returns the number of selected items.
func (b *Basket) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

func (b *Basket) copyLocked() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b *Basket) notifyLocked() {
	snapshot := b.copyLocked()
	for _, o := range b.observers {
		o.BasketChanged(snapshot)
	}
}
