package repository

import (
	"time"

	"stockflow-api/internal/model"
)

type ProductRepository interface {
	FindAll() []model.Product
	FindByID(id string) (*model.Product, error)

	// Writes take the working copy handed out by MemDB.Transaction
	Create(tx *Dataset, product model.Product)
	Update(tx *Dataset, product model.Product) error
	Delete(tx *Dataset, id string) (*model.Product, error)
	ReplaceAll(tx *Dataset, products []model.Product)
	UpdateStock(tx *Dataset, id string, newQuantity int, at time.Time) error
	Get(tx *Dataset, id string) (*model.Product, error)
}

type productRepo struct {
	db *MemDB
}

func NewProductRepo(db *MemDB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) FindAll() []model.Product {
	var products []model.Product
	r.db.View(func(d *Dataset) {
		products = append([]model.Product(nil), d.Products...)
	})
	return products
}

func (r *productRepo) FindByID(id string) (*model.Product, error) {
	var (
		product model.Product
		err     error
	)
	r.db.View(func(d *Dataset) {
		idx := indexOfProduct(d, id)
		if idx < 0 {
			err = ErrRecordNotFound
			return
		}
		product = d.Products[idx]
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Create(tx *Dataset, product model.Product) {
	tx.Products = append(tx.Products, product)
}

func (r *productRepo) Update(tx *Dataset, product model.Product) error {
	idx := indexOfProduct(tx, product.ID)
	if idx < 0 {
		return ErrRecordNotFound
	}
	tx.Products[idx] = product
	return nil
}

func (r *productRepo) Delete(tx *Dataset, id string) (*model.Product, error) {
	idx := indexOfProduct(tx, id)
	if idx < 0 {
		return nil, ErrRecordNotFound
	}
	removed := tx.Products[idx]
	tx.Products = append(tx.Products[:idx], tx.Products[idx+1:]...)
	return &removed, nil
}

func (r *productRepo) ReplaceAll(tx *Dataset, products []model.Product) {
	tx.Products = append([]model.Product(nil), products...)
}

// UpdateStock hanya menyentuh quantity dan lastUpdated
func (r *productRepo) UpdateStock(tx *Dataset, id string, newQuantity int, at time.Time) error {
	idx := indexOfProduct(tx, id)
	if idx < 0 {
		return ErrRecordNotFound
	}
	tx.Products[idx].Quantity = newQuantity
	tx.Products[idx].LastUpdated = at
	return nil
}

// Get returns a copy of the product as it stands in the working copy.
func (r *productRepo) Get(tx *Dataset, id string) (*model.Product, error) {
	idx := indexOfProduct(tx, id)
	if idx < 0 {
		return nil, ErrRecordNotFound
	}
	product := tx.Products[idx]
	return &product, nil
}

func indexOfProduct(d *Dataset, id string) int {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return i
		}
	}
	return -1
}
