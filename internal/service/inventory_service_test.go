package service

import (
	"testing"

	"stockflow-api/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	f := newFixture(t, false)
	svc := NewInventoryService(f.deps)

	created, err := svc.CreateProduct(f.manager(t), &model.Product{
		Name:     "Standing Desk",
		SKU:      "FUR-010",
		Category: "Furniture",
		Quantity: 3,
		MinLevel: 1,
		Price:    decimal.RequireFromString("399.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, fixedNow, created.LastUpdated)
	assert.Equal(t, model.DefaultImageURL, created.ImageURL)

	stored := f.product(t, created.ID)
	assert.Equal(t, "Standing Desk", stored.Name)

	logs := f.logs()
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionCreateProduct, logs[0].Action)
	assert.Equal(t, "Created product: Standing Desk", logs[0].Details)
	assert.Equal(t, model.ModuleInventory, logs[0].Module)
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t, false)
	svc := NewInventoryService(f.deps)

	tests := []struct {
		name    string
		product model.Product
		field   string
	}{
		{"missing name", model.Product{Quantity: 1}, "Product.Name"},
		{"negative quantity", model.Product{Name: "x", Quantity: -1}, "Product.Quantity"},
		{"negative price", model.Product{Name: "x", Price: decimal.NewFromInt(-2)}, "Product.Price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(f.admin(t), &tt.product)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
	assert.Empty(t, f.logs())
}

func TestUpdateProductBypassesEngine(t *testing.T) {
	f := newFixture(t, true)
	svc := NewInventoryService(f.deps)

	updated, err := svc.UpdateProduct(f.manager(t), "2", model.ProductPatch{
		Name:     strPtr("Mechanical Keyboard TKL"),
		Quantity: intPtr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, 30, updated.Quantity)
	assert.Equal(t, "TECH-002", updated.SKU)
	assert.Equal(t, fixedNow, updated.LastUpdated)

	// no movement record for direct edits
	assert.Len(t, f.deps.Transactions.FindAll(), 2)
	assert.Equal(t, model.ActionUpdateProduct, f.logs()[0].Action)

	// transactions keep the name they were created with
	for _, tx := range f.deps.Transactions.FindAll() {
		assert.Equal(t, "Wireless Ergonomic Mouse", tx.ProductName)
	}
}

func TestUpdateProductErrors(t *testing.T) {
	f := newFixture(t, true)
	svc := NewInventoryService(f.deps)

	_, err := svc.UpdateProduct(f.staff(t), "1", model.ProductPatch{Name: strPtr("x")})
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.UpdateProduct(f.admin(t), "missing", model.ProductPatch{Name: strPtr("x")})
	require.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.UpdateProduct(f.admin(t), "1", model.ProductPatch{MinLevel: intPtr(-1)})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestBulkUpdate(t *testing.T) {
	f := newFixture(t, true)
	svc := NewInventoryService(f.deps)
	price := decimal.RequireFromString("10.00")

	n, err := svc.BulkUpdate(f.admin(t), []string{"1", "3", "ghost"}, model.ProductPatch{
		Category: strPtr("Clearance"),
		Price:    &price,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "Clearance", f.product(t, "1").Category)
	assert.Equal(t, "Clearance", f.product(t, "3").Category)
	assert.True(t, f.product(t, "3").Price.Equal(price))
	assert.Equal(t, "Electronics", f.product(t, "2").Category)
	assert.Equal(t, "Bulk updated 2 products.", f.logs()[0].Details)

	logsBefore := len(f.logs())
	n, err = svc.BulkUpdate(f.admin(t), nil, model.ProductPatch{Category: strPtr("x")})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, f.logs(), logsBefore)
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t, true)
	svc := NewInventoryService(f.deps)

	require.NoError(t, svc.DeleteProduct(f.admin(t), "1"))
	_, err := svc.GetProductByID("1")
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Len(t, f.deps.Transactions.FindAll(), 2)
	assert.Equal(t, "Deleted product: Wireless Ergonomic Mouse", f.logs()[0].Details)

	require.ErrorIs(t, svc.DeleteProduct(f.admin(t), "1"), ErrProductNotFound)
}

func TestGetAllProductsFilter(t *testing.T) {
	f := newFixture(t, true)
	svc := NewInventoryService(f.deps)

	assert.Len(t, svc.GetAllProducts(ProductFilter{}), 4)

	low := svc.GetAllProducts(ProductFilter{LowStockOnly: true})
	require.Len(t, low, 1)
	assert.Equal(t, "2", low[0].ID)

	bySKU := svc.GetAllProducts(ProductFilter{Search: "fur-"})
	require.Len(t, bySKU, 1)
	assert.Equal(t, "3", bySKU[0].ID)

	assert.Len(t, svc.GetAllProducts(ProductFilter{Category: "Electronics"}), 2)
	assert.Equal(t, []string{"Accessories", "Electronics", "Furniture"}, svc.Categories())
}

func TestUpdateProductWithNegativeStock(t *testing.T) {
	f := newFixture(t, true)
	txSvc := NewTransactionService(f.deps)
	svc := NewInventoryService(f.deps)
	admin := f.admin(t)

	created, err := txSvc.CreateBatch(admin, model.TxOut, []model.BatchItem{{ProductID: "1", Quantity: 40}})
	require.NoError(t, err)
	require.Len(t, created, 1)

	more := 60
	_, err = txSvc.EditTransaction(admin, created[0].ID, model.TransactionPatch{Quantity: &more})
	require.NoError(t, err)
	require.Equal(t, -15, f.product(t, "1").Quantity)

	name := "Renamed"
	updated, err := svc.UpdateProduct(admin, "1", model.ProductPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, -15, updated.Quantity)

	category := "Clearance"
	n, err := svc.BulkUpdate(admin, []string{"1"}, model.ProductPatch{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "Clearance", f.product(t, "1").Category)
}

func TestUpdateProductRejectsInvalidPatch(t *testing.T) {
	f := newFixture(t, true)
	svc := NewInventoryService(f.deps)

	empty := ""
	_, err := svc.UpdateProduct(f.admin(t), "1", model.ProductPatch{Name: &empty})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.NotEqual(t, "", f.product(t, "1").Name)
}
