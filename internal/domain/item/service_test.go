package item

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petstock/internal/core/apperror"
	"petstock/internal/core/id"
	"petstock/internal/core/types"
)

type memRepo struct {
	byCode    map[string]*Item
	listCalls int
	updateErr error
}

func newMemRepo(items ...*Item) *memRepo {
	m := &memRepo{byCode: make(map[string]*Item)}
	for _, it := range items {
		m.byCode[it.Code] = it
	}
	return m
}

func (m *memRepo) Create(ctx context.Context, it *Item) error {
	m.byCode[it.Code] = it
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, itemID id.ID) (*Item, error) {
	for _, it := range m.byCode {
		if it.ID == itemID {
			return it, nil
		}
	}
	return nil, apperror.NewNotFound("item", itemID.String())
}

func (m *memRepo) GetByCode(ctx context.Context, code string) (*Item, error) {
	if it, ok := m.byCode[code]; ok {
		return it, nil
	}
	return nil, apperror.NewNotFound("item", code)
}

func (m *memRepo) List(ctx context.Context, filter ListFilter) ([]*Item, error) {
	m.listCalls++
	out := make([]*Item, 0, len(m.byCode))
	for _, it := range m.byCode {
		out = append(out, it)
	}
	return out, nil
}

func (m *memRepo) Update(ctx context.Context, it *Item) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.byCode[it.Code] = it
	return nil
}

func (m *memRepo) Delete(ctx context.Context, itemID id.ID) error {
	for code, it := range m.byCode {
		if it.ID == itemID {
			delete(m.byCode, code)
			return nil
		}
	}
	return apperror.NewNotFound("item", itemID.String())
}

func (m *memRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, ok := m.byCode[code]
	return ok, nil
}

type stubTx struct{}

func (stubTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSnapshot struct {
	items       []*Item
	valid       bool
	invalidated int
}

func (f *fakeSnapshot) Get() ([]*Item, bool) {
	if !f.valid {
		return nil, false
	}
	return f.items, true
}

func (f *fakeSnapshot) Set(items []*Item) {
	f.items = items
	f.valid = true
}

func (f *fakeSnapshot) Invalidate() {
	f.invalidated++
	f.items = nil
	f.valid = false
}

func testItem(code string, qty int) *Item {
	return NewItem(code, "Brand", "Item "+code, types.MustMoney("100"), types.MustMoney("150"), qty)
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	repo := newMemRepo(testItem("A", 1))
	svc := NewService(repo, stubTx{}, &fakeSnapshot{})

	err := svc.Create(context.Background(), testItem("A", 5))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestCreateInvalidatesSnapshot(t *testing.T) {
	repo := newMemRepo()
	snapshot := &fakeSnapshot{}
	svc := NewService(repo, stubTx{}, snapshot)

	require.NoError(t, svc.Create(context.Background(), testItem("A", 1)))
	assert.Equal(t, 1, snapshot.invalidated)
}

func TestUpdateRestoresVersionOnFailure(t *testing.T) {
	it := testItem("A", 1)
	repo := newMemRepo(it)
	repo.updateErr = errors.New("store down")
	svc := NewService(repo, stubTx{}, &fakeSnapshot{})

	versionBefore := it.Version
	err := svc.Update(context.Background(), it)
	require.Error(t, err)
	assert.Equal(t, versionBefore, it.Version)
}

func TestListServesUnfilteredFromSnapshot(t *testing.T) {
	repo := newMemRepo(testItem("A", 1), testItem("B", 2))
	snapshot := &fakeSnapshot{}
	svc := NewService(repo, stubTx{}, snapshot)

	first, err := svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, repo.listCalls)

	// Second unfiltered read is a snapshot hit.
	_, err = svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	// Filtered reads always hit the store.
	_, err = svc.List(context.Background(), ListFilter{NameFilter: "Item"})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)

	// A mutation invalidates the snapshot.
	require.NoError(t, svc.Create(context.Background(), testItem("C", 3)))
	_, err = svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, repo.listCalls)
}

func TestDeleteInvalidatesSnapshot(t *testing.T) {
	it := testItem("A", 1)
	repo := newMemRepo(it)
	snapshot := &fakeSnapshot{}
	svc := NewService(repo, stubTx{}, snapshot)

	require.NoError(t, svc.Delete(context.Background(), it.ID))
	assert.Equal(t, 1, snapshot.invalidated)
}

func TestAdjustQuantityClampsAtZero(t *testing.T) {
	it := testItem("A", 3)
	it.AdjustQuantity(-5)
	assert.Equal(t, 0, it.Quantity)

	it.AdjustQuantity(4)
	assert.Equal(t, 4, it.Quantity)
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	valid := testItem("A", 1)
	require.NoError(t, valid.Validate(ctx))

	noCode := testItem("", 1)
	assert.Error(t, noCode.Validate(ctx))

	negative := testItem("B", 1)
	negative.Quantity = -1
	assert.Error(t, negative.Validate(ctx))

	badPrice := testItem("C", 1)
	badPrice.UnitPrice = types.MustMoney("-5")
	assert.Error(t, badPrice.Validate(ctx))
}
