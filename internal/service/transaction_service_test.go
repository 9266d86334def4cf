package service

import (
	"testing"
	"time"

	"stockflow-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestCreateBatchInward(t *testing.T) {
	f := newFixture(t, true)
	svc := NewTransactionService(f.deps)

	created, err := svc.CreateBatch(f.staff(t), model.TxIn, []model.BatchItem{
		{ProductID: "1", Quantity: 5, Notes: "restock"},
		{ProductID: "2", Quantity: 10},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, 50, f.product(t, "1").Quantity)
	assert.Equal(t, 18, f.product(t, "2").Quantity)
	assert.Equal(t, "Wireless Ergonomic Mouse", created[0].ProductName)
	assert.Equal(t, fixedNow, created[0].Date)

	all := f.deps.Transactions.FindAll()
	require.Len(t, all, 4)
	assert.Equal(t, created[0].ID, all[0].ID)
	assert.Equal(t, created[1].ID, all[1].ID)

	logs := f.logs()
	assert.Equal(t, model.ActionInwardBatch, logs[0].Action)
	assert.Equal(t, model.ModuleOperations, logs[0].Module)
	assert.Equal(t, "Processed batch of 2 items.", logs[0].Details)
	assert.Equal(t, "u3", logs[0].UserID)

	events := f.notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventStateChanged, events[0].Type)
	assert.Equal(t, model.ActionInwardBatch, events[0].Action)
}

func TestCreateBatchOutwardRejectsWholeBatch(t *testing.T) {
	f := newFixture(t, true)
	svc := NewTransactionService(f.deps)
	logsBefore := len(f.logs())

	_, err := svc.CreateBatch(f.staff(t), model.TxOut, []model.BatchItem{
		{ProductID: "4", Quantity: 10},
		{ProductID: "1", Quantity: 60},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	var shortage *StockShortageError
	require.ErrorAs(t, err, &shortage)
	require.Len(t, shortage.Lines, 1)
	assert.Equal(t, "1", shortage.Lines[0].ProductID)
	assert.Equal(t, 60, shortage.Lines[0].Requested)
	assert.Equal(t, 45, shortage.Lines[0].Available)

	assert.Equal(t, 120, f.product(t, "4").Quantity)
	assert.Equal(t, 45, f.product(t, "1").Quantity)
	assert.Len(t, f.deps.Transactions.FindAll(), 2)
	assert.Len(t, f.logs(), logsBefore)
	assert.Empty(t, f.notifier.Events())
}

func TestCreateBatchOutwardChecksEachLineAgainstStartingStock(t *testing.T) {
	f := newFixture(t, true)
	svc := NewTransactionService(f.deps)

	created, err := svc.CreateBatch(f.staff(t), model.TxOut, []model.BatchItem{
		{ProductID: "1", Quantity: 30},
		{ProductID: "1", Quantity: 30},
	})
	require.NoError(t, err)
	assert.Len(t, created, 2)
	assert.Equal(t, -15, f.product(t, "1").Quantity)
}

func TestCreateBatchRepeatedProductCompounds(t *testing.T) {
	f := newFixture(t, true)
	svc := NewTransactionService(f.deps)

	_, err := svc.CreateBatch(f.admin(t), model.TxIn, []model.BatchItem{
		{ProductID: "3", Quantity: 1},
		{ProductID: "3", Quantity: 2},
		{ProductID: "3", Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 18, f.product(t, "3").Quantity)
}

func TestCreateBatchFiltersLines(t *testing.T) {
	f := newFixture(t, true)
	svc := NewTransactionService(f.deps)

	_, err := svc.CreateBatch(f.staff(t), model.TxIn, []model.BatchItem{
		{ProductID: "", Quantity: 5},
		{ProductID: "1", Quantity: 0},
		{ProductID: "1", Quantity: -3},
	})
	require.ErrorIs(t, err, ErrEmptyBatch)

	created, err := svc.CreateBatch(f.staff(t), model.TxIn, []model.BatchItem{
		{ProductID: "missing", Quantity: 5},
		{ProductID: "2", Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "Processed batch of 1 items.", f.logs()[0].Details)
}

func TestCreateBatchPermissions(t *testing.T) {
	f := newFixture(t, true)
	svc := NewTransactionService(f.deps)
	clerk := &model.User{ID: "x", Name: "Inward Only", Permissions: model.Permissions{InwardStock: true}}

	_, err := svc.CreateBatch(clerk, model.TxOut, []model.BatchItem{{ProductID: "1", Quantity: 1}})
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.CreateBatch(clerk, model.TxIn, []model.BatchItem{{ProductID: "1", Quantity: 1}})
	require.NoError(t, err)

	_, err = svc.CreateBatch(clerk, model.TransactionType("SIDEWAYS"), nil)
	require.ErrorIs(t, err, ErrInvalidDirection)
}

func TestEditTransactionAdjustsStock(t *testing.T) {
	f := newFixture(t, true)
	svc := NewTransactionService(f.deps)

	// OUT 5 -> OUT 2 returns 3 units to stock
	updated, err := svc.EditTransaction(f.admin(t), "t2", model.TransactionPatch{Quantity: intPtr(2), Notes: strPtr("corrected")})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Quantity)
	assert.Equal(t, "corrected", updated.Notes)
	assert.Equal(t, model.TxOut, updated.Type)
	assert.Equal(t, 48, f.product(t, "1").Quantity)

	entry := f.logs()[0]
	assert.Equal(t, model.ActionUpdateTransaction, entry.Action)
	assert.Equal(t, model.ModuleReports, entry.Module)
	assert.Contains(t, entry.Details, "Stock auto-adjusted by +3.")

	// IN 50 -> IN 20 takes 30 away without clamping
	_, err = svc.EditTransaction(f.admin(t), "t1", model.TransactionPatch{Quantity: intPtr(20)})
	require.NoError(t, err)
	assert.Equal(t, 18, f.product(t, "1").Quantity)
}

func TestEditTransactionWithoutQuantityChangeKeepsStock(t *testing.T) {
	f := newFixture(t, true)
	svc := NewTransactionService(f.deps)
	when := fixedNow.Add(-time.Hour)

	updated, err := svc.EditTransaction(f.admin(t), "t1", model.TransactionPatch{Date: &when})
	require.NoError(t, err)
	assert.Equal(t, when, updated.Date)
	assert.Equal(t, 45, f.product(t, "1").Quantity)
	assert.Equal(t, "Updated transaction t1.", f.logs()[0].Details)
}

func TestEditTransactionRejects(t *testing.T) {
	f := newFixture(t, true)
	svc := NewTransactionService(f.deps)

	_, err := svc.EditTransaction(f.staff(t), "t1", model.TransactionPatch{Quantity: intPtr(3)})
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.EditTransaction(f.admin(t), "t1", model.TransactionPatch{Quantity: intPtr(0)})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = svc.EditTransaction(f.admin(t), "nope", model.TransactionPatch{Quantity: intPtr(3)})
	require.ErrorIs(t, err, ErrTransactionNotFound)

	assert.Equal(t, 45, f.product(t, "1").Quantity)
}

func TestDeleteTransactionRevertsAndClamps(t *testing.T) {
	f := newFixture(t, true)
	svc := NewTransactionService(f.deps)

	// removing the initial IN 50 would leave -5, clamped to 0
	require.NoError(t, svc.DeleteTransaction(f.admin(t), "t1"))
	assert.Equal(t, 0, f.product(t, "1").Quantity)

	require.NoError(t, svc.DeleteTransaction(f.admin(t), "t2"))
	assert.Equal(t, 5, f.product(t, "1").Quantity)
	assert.Empty(t, f.deps.Transactions.FindAll())

	entry := f.logs()[0]
	assert.Equal(t, model.ActionDeleteTransaction, entry.Action)
	assert.Equal(t, "Deleted transaction t2 for Wireless Ergonomic Mouse. Stock reverted.", entry.Details)

	require.ErrorIs(t, svc.DeleteTransaction(f.admin(t), "t2"), ErrTransactionNotFound)
	require.ErrorIs(t, svc.DeleteTransaction(f.manager(t), "t1"), ErrPermissionDenied)
}

func TestDanglingTransactionsKeepWorking(t *testing.T) {
	f := newFixture(t, true)
	inventory := NewInventoryService(f.deps)
	svc := NewTransactionService(f.deps)

	require.NoError(t, inventory.DeleteProduct(f.admin(t), "1"))

	history := svc.ProductHistory("1")
	require.Len(t, history, 2)
	assert.Equal(t, "Wireless Ergonomic Mouse", history[0].ProductName)

	updated, err := svc.EditTransaction(f.admin(t), "t2", model.TransactionPatch{Quantity: intPtr(9)})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Quantity)
	assert.Equal(t, "Updated transaction t2.", f.logs()[0].Details)

	require.NoError(t, svc.DeleteTransaction(f.admin(t), "t1"))
	assert.Equal(t, "Deleted transaction t1 for Wireless Ergonomic Mouse.", f.logs()[0].Details)
}

func TestTransactionLifecycleScenario(t *testing.T) {
	f := newFixture(t, true)
	svc := NewTransactionService(f.deps)
	admin := f.admin(t)

	created, err := svc.CreateBatch(admin, model.TxIn, []model.BatchItem{{ProductID: "1", Quantity: 5}})
	require.NoError(t, err)
	assert.Equal(t, 50, f.product(t, "1").Quantity)

	_, err = svc.CreateBatch(admin, model.TxOut, []model.BatchItem{{ProductID: "1", Quantity: 60}})
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 50, f.product(t, "1").Quantity)

	_, err = svc.EditTransaction(admin, created[0].ID, model.TransactionPatch{Quantity: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 47, f.product(t, "1").Quantity)

	require.NoError(t, svc.DeleteTransaction(admin, created[0].ID))
	assert.Equal(t, 45, f.product(t, "1").Quantity)

	actions := []string{}
	for _, l := range f.logs()[:3] {
		actions = append(actions, l.Action)
	}
	assert.Equal(t, []string{model.ActionDeleteTransaction, model.ActionUpdateTransaction, model.ActionInwardBatch}, actions)
}

func TestGetAllTransactionsFilter(t *testing.T) {
	f := newFixture(t, true)
	svc := NewTransactionService(f.deps)

	assert.Len(t, svc.GetAllTransactions(TransactionFilter{}), 2)

	outs := svc.GetAllTransactions(TransactionFilter{Type: model.TxOut})
	require.Len(t, outs, 1)
	assert.Equal(t, "t2", outs[0].ID)

	bySearch := svc.GetAllTransactions(TransactionFilter{Search: "initial"})
	require.Len(t, bySearch, 1)
	assert.Equal(t, "t1", bySearch[0].ID)

	recent := svc.GetAllTransactions(TransactionFilter{From: fixedNow.Add(-30 * time.Hour)})
	require.Len(t, recent, 1)
	assert.Equal(t, "t2", recent[0].ID)

	_, err := svc.GetTransactionByID("missing")
	require.ErrorIs(t, err, ErrTransactionNotFound)
}
