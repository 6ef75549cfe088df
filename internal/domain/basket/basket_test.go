package basket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petstock/internal/core/types"
	"petstock/internal/domain/item"
)

type recordingObserver struct {
	notifications [][]Entry
}

func (r *recordingObserver) BasketChanged(entries []Entry) {
	r.notifications = append(r.notifications, entries)
}

func testItem(code string, qty int) *item.Item {
	return item.NewItem(code, "Brand", "Item "+code, types.MustMoney("100"), types.MustMoney("150"), qty)
}

func TestAddDefaultsAndSnapshotsStock(t *testing.T) {
	b := New()

	require.True(t, b.Add(testItem("A", 9)))

	entries := b.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Quantity)
	assert.Equal(t, 9, entries[0].Remaining)
	assert.True(t, b.IsSelected("A"))
}

func TestAddIgnoresDuplicates(t *testing.T) {
	b := New()

	require.True(t, b.Add(testItem("A", 5)))
	assert.False(t, b.Add(testItem("A", 5)))
	assert.Equal(t, 1, b.Len())
}

func TestUpdateEditsEntryInPlace(t *testing.T) {
	b := New()
	b.Add(testItem("A", 5))

	ok := b.Update("A", func(e *Entry) {
		e.Quantity = 3
		e.UnitPrice = types.MustMoney("200")
	})
	require.True(t, ok)

	entries := b.Entries()
	assert.Equal(t, 3, entries[0].Quantity)
	assert.True(t, entries[0].UnitPrice.Equal(types.MustMoney("200")))

	assert.False(t, b.Update("MISSING", func(e *Entry) {}))
}

func TestRemoveAndClear(t *testing.T) {
	b := New()
	b.Add(testItem("A", 5))
	b.Add(testItem("B", 5))

	b.Remove("A")
	assert.False(t, b.IsSelected("A"))
	assert.Equal(t, 1, b.Len())

	b.Clear()
	assert.Equal(t, 0, b.Len())
}

func TestObserverNotifiedOnEveryChange(t *testing.T) {
	b := New()
	obs := &recordingObserver{}
	b.RegisterObserver(obs)

	b.Add(testItem("A", 5))
	b.Update("A", func(e *Entry) { e.Quantity = 2 })
	b.Remove("A")

	require.Len(t, obs.notifications, 3)
	assert.Len(t, obs.notifications[0], 1)
	assert.Equal(t, 2, obs.notifications[1][0].Quantity)
	assert.Empty(t, obs.notifications[2])
}

func TestClearOnEmptyDoesNotNotify(t *testing.T) {
	b := New()
	obs := &recordingObserver{}
	b.RegisterObserver(obs)

	b.Clear()
	assert.Empty(t, obs.notifications)
}

func TestEntriesReturnsCopy(t *testing.T) {
	b := New()
	b.Add(testItem("A", 5))

	entries := b.Entries()
	entries[0].Quantity = 99

	assert.Equal(t, 1, b.Entries()[0].Quantity)
}
