package service

import (
	"bytes"
	"strings"
	"testing"

	"stockflow-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportProductsReplacesStore(t *testing.T) {
	f := newFixture(t, true)
	svc := NewSyncService(f.deps)

	data := "id,name,sku,category,quantity,minLevel,price,imageUrl\n" +
		"p9,Label Printer,OFF-9,Office,-3,2,120.5,\n" +
		",Toner,OFF-10,Office,7\n" +
		"broken,row\n"
	n, err := svc.ImportProducts(f.admin(t), data)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	products := f.deps.Products.FindAll()
	require.Len(t, products, 2)
	assert.Equal(t, "p9", products[0].ID)
	assert.Equal(t, 0, products[0].Quantity)
	assert.Equal(t, "id-1", products[1].ID)
	assert.Equal(t, model.DefaultImageURL, products[1].ImageURL)

	entry := f.logs()[0]
	assert.Equal(t, model.ActionImportData, entry.Action)
	assert.Equal(t, model.ModuleSystem, entry.Module)
}

func TestImportProductsEmptyChangesNothing(t *testing.T) {
	f := newFixture(t, true)
	svc := NewSyncService(f.deps)
	logsBefore := len(f.logs())

	_, err := svc.ImportProducts(f.admin(t), "id,name,sku\n")
	require.ErrorIs(t, err, ErrEmptyImport)
	assert.Len(t, f.deps.Products.FindAll(), 4)
	assert.Len(t, f.logs(), logsBefore)

	_, err = svc.ImportProducts(f.staff(t), "a,b,c,d,1")
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExportProducts(t *testing.T) {
	f := newFixture(t, true)
	svc := NewSyncService(f.deps)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportProducts(f.manager(t), &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "ID,Name,SKU,Category,Quantity,MinLevel,Price,ImageUrl,LastUpdated"))
	assert.True(t, strings.HasPrefix(lines[1], "1,Wireless Ergonomic Mouse,TECH-001,Electronics,45,10,29.99,"))

	require.ErrorIs(t, svc.ExportProducts(f.staff(t), &buf), ErrPermissionDenied)
}

func TestSmartUpdate(t *testing.T) {
	f := newFixture(t, true)
	svc := NewSyncService(f.deps)

	n, err := svc.SmartUpdate(f.manager(t), []SmartUpdate{
		{Action: SmartAddStock, ProductName: "mouse", Quantity: 10},
		{Action: SmartRemoveStock, ProductName: "KEYBOARD", Quantity: 20},
		{Action: SmartAddStock, ProductName: "teleporter", Quantity: 1},
		{Action: "RENAME", ProductName: "chair", Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, 55, f.product(t, "1").Quantity)
	assert.Equal(t, -12, f.product(t, "2").Quantity)

	all := f.deps.Transactions.FindAll()
	require.Len(t, all, 4)
	assert.Equal(t, "2", all[0].ProductID)
	assert.Equal(t, model.TxOut, all[0].Type)
	assert.Equal(t, "AI Smart Update", all[0].Notes)
	assert.Equal(t, "1", all[1].ProductID)

	entry := f.logs()[0]
	assert.Equal(t, model.ActionAISmartUpdate, entry.Action)
	assert.Equal(t, model.ModuleAIAssistant, entry.Module)
	assert.Equal(t, "AI Agent applied updates to 2 products", entry.Details)
}

func TestSmartUpdateFirstMatchWins(t *testing.T) {
	f := newFixture(t, true)
	svc := NewSyncService(f.deps)

	_, err := svc.SmartUpdate(f.admin(t), []SmartUpdate{{Action: SmartAddStock, ProductName: "e", Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, 46, f.product(t, "1").Quantity)
	assert.Equal(t, 8, f.product(t, "2").Quantity)
}

func TestSmartUpdateRequiresAddOrEdit(t *testing.T) {
	f := newFixture(t, true)
	svc := NewSyncService(f.deps)

	_, err := svc.SmartUpdate(f.staff(t), []SmartUpdate{{Action: SmartAddStock, ProductName: "mouse", Quantity: 1}})
	require.ErrorIs(t, err, ErrPermissionDenied)

	editor := &model.User{ID: "e", Name: "Editor", Permissions: model.Permissions{EditProduct: true}}
	n, err := svc.SmartUpdate(editor, []SmartUpdate{{Action: SmartAddStock, ProductName: "mouse", Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
