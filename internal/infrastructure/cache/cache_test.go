package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petstock/internal/core/id"
	"petstock/internal/core/types"
	"petstock/internal/domain/invoice"
	"petstock/internal/domain/item"
)

func TestItemSnapshotLifecycle(t *testing.T) {
	c := NewItemSnapshot()

	_, ok := c.Get()
	assert.False(t, ok)

	items := []*item.Item{
		item.NewItem("A", "Brand", "Item A", types.MustMoney("100"), types.MustMoney("150"), 3),
	}
	c.Set(items)

	got, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, items, got)

	c.Invalidate()
	_, ok = c.Get()
	assert.False(t, ok)
}

func TestItemSnapshotEmptyListIsValid(t *testing.T) {
	c := NewItemSnapshot()
	c.Set(nil)

	got, ok := c.Get()
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestMemoryHistory(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryHistory()

	_, ok, err := c.Get(ctx, "2026-08")
	require.NoError(t, err)
	assert.False(t, ok)

	invoices := []*invoice.Invoice{{ID: id.New(), Number: "S-001", Type: invoice.TypeSale}}
	require.NoError(t, c.Set(ctx, "2026-08", invoices))

	got, ok, err := c.Get(ctx, "2026-08")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, invoices, got)

	// Other months are unaffected until invalidation, which drops all.
	require.NoError(t, c.Set(ctx, "2026-07", nil))
	c.Invalidate()

	_, ok, err = c.Get(ctx, "2026-08")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = c.Get(ctx, "2026-07")
	require.NoError(t, err)
	assert.False(t, ok)
}
