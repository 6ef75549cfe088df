package snack

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petstock/internal/core/apperror"
	"petstock/internal/core/id"
	"petstock/internal/core/types"
)

type memRepo struct {
	byID  map[id.ID]*Snack
	order []id.ID
}

func newMemRepo(snacks ...*Snack) *memRepo {
	m := &memRepo{byID: make(map[id.ID]*Snack)}
	for _, sn := range snacks {
		m.byID[sn.ID] = sn
		m.order = append(m.order, sn.ID)
	}
	return m
}

func (m *memRepo) Create(ctx context.Context, sn *Snack) error {
	m.byID[sn.ID] = sn
	m.order = append(m.order, sn.ID)
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, snackID id.ID) (*Snack, error) {
	if sn, ok := m.byID[snackID]; ok {
		return sn, nil
	}
	return nil, apperror.NewNotFound("snack", snackID.String())
}

func (m *memRepo) List(ctx context.Context) ([]*Snack, error) {
	out := make([]*Snack, 0, len(m.order))
	for _, snackID := range m.order {
		if sn, ok := m.byID[snackID]; ok {
			out = append(out, sn)
		}
	}
	return out, nil
}

func (m *memRepo) Update(ctx context.Context, sn *Snack) error {
	m.byID[sn.ID] = sn
	return nil
}

func (m *memRepo) Delete(ctx context.Context, snackID id.ID) error {
	if _, ok := m.byID[snackID]; !ok {
		return apperror.NewNotFound("snack", snackID.String())
	}
	delete(m.byID, snackID)
	return nil
}

type memSalesLog struct {
	entries []*SalesLogEntry
}

func (m *memSalesLog) Append(ctx context.Context, entry *SalesLogEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memSalesLog) List(ctx context.Context) ([]*SalesLogEntry, error) {
	return m.entries, nil
}

type stubTx struct {
	calls int
}

func (s *stubTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.calls++
	return fn(ctx)
}

func TestUpdateAppliesRestock(t *testing.T) {
	sn := NewSnack("Biscuits", 5, types.MustMoney("20"))
	repo := newMemRepo(sn)
	svc := NewService(repo, &memSalesLog{}, &stubTx{})

	updated, err := svc.Update(context.Background(), sn.ID, UpdateInput{
		Name:     "Biscuits",
		Quantity: 5,
		Price:    types.MustMoney("25"),
		AddStock: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 17, updated.Quantity)
	assert.True(t, updated.Price.Equal(types.MustMoney("25")))
}

func TestRecordDaySales(t *testing.T) {
	counted := NewSnack("Biscuits", 10, types.MustMoney("20"))
	uncounted := NewSnack("Chews", 4, types.MustMoney("50"))
	repo := newMemRepo(counted, uncounted)
	salesLog := &memSalesLog{}
	txm := &stubTx{}
	svc := NewService(repo, salesLog, txm)

	result, err := svc.RecordDaySales(context.Background(), map[id.ID]int{
		counted.ID: 3, // 7 sold
	})
	require.NoError(t, err)

	// 7 * 20; the uncounted snack defaults to zero sold.
	assert.True(t, result.Total.Equal(types.MustMoney("140")), "total = %s", result.Total)
	require.Len(t, result.Items, 2)
	assert.Equal(t, 7, result.Items[0].SoldQty)
	assert.Equal(t, 0, result.Items[1].SoldQty)

	// Quantities overwritten with leftovers.
	assert.Equal(t, 3, counted.Quantity)
	assert.Equal(t, 4, uncounted.Quantity)

	// One log entry, all writes in one transaction.
	require.Len(t, salesLog.entries, 1)
	assert.True(t, salesLog.entries[0].TotalSold.Equal(types.MustMoney("140")))
	assert.Equal(t, 1, txm.calls)
}

func TestRecordDaySalesRequiresSnacks(t *testing.T) {
	svc := NewService(newMemRepo(), &memSalesLog{}, &stubTx{})

	_, err := svc.RecordDaySales(context.Background(), nil)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestRecordDaySalesRejectedWhileInFlight(t *testing.T) {
	sn := NewSnack("Biscuits", 10, types.MustMoney("20"))
	svc := NewService(newMemRepo(sn), &memSalesLog{}, &stubTx{})
	svc.calculating.Store(true)

	_, err := svc.RecordDaySales(context.Background(), nil)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeOperationInFlight, appErr.Code)
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, NewSnack("Biscuits", 1, types.MustMoney("10")).Validate(ctx))
	assert.Error(t, NewSnack("", 1, types.MustMoney("10")).Validate(ctx))
	assert.Error(t, NewSnack("Biscuits", -1, types.MustMoney("10")).Validate(ctx))
	assert.Error(t, NewSnack("Biscuits", 1, types.MustMoney("-10")).Validate(ctx))
}
