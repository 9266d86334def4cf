package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"
)

// ProductFilter narrows product listings. Zero fields match all.
type ProductFilter struct {
	Search       string
	Category     string
	LowStockOnly bool
}

// Match reports whether p passes the filter. Search looks at name and SKU.
func (f ProductFilter) Match(p model.Product) bool {
	if f.LowStockOnly && !p.IsLowStock() {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" {
		return strings.Contains(strings.ToLower(p.Name), search) ||
			strings.Contains(strings.ToLower(p.SKU), search)
	}
	return true
}

type InventoryService interface {
	CreateProduct(actor *model.User, req *model.Product) (*model.Product, error)
	UpdateProduct(actor *model.User, id string, patch model.ProductPatch) (*model.Product, error)
	BulkUpdate(actor *model.User, ids []string, patch model.ProductPatch) (int, error)
	DeleteProduct(actor *model.User, id string) error
	GetAllProducts(filter ProductFilter) []model.Product
	GetProductByID(id string) (*model.Product, error)
	Categories() []string
}

type inventoryService struct {
	base
}

func NewInventoryService(deps Dependencies) InventoryService {
	return &inventoryService{newBase(deps)}
}

func (s *inventoryService) CreateProduct(actor *model.User, req *model.Product) (*model.Product, error) {
	if err := s.authorize(actor, model.CapAddProduct); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	product := *req
	product.ID = s.NewID()
	product.LastUpdated = s.Clock()
	if product.ImageURL == "" {
		product.ImageURL = model.DefaultImageURL
	}

	var entry model.LogEntry
	if err := s.DB.Transaction(func(tx *repository.Dataset) error {
		s.Products.Create(tx, product)
		entry = s.audit(tx, actor, model.ActionCreateProduct, fmt.Sprintf("Created product: %s", product.Name), model.ModuleInventory)
		return nil
	}); err != nil {
		return nil, err
	}

	s.committed(entry)
	return &product, nil
}

// UpdateProduct merges the patch into the stored product. Only the patch is
// validated, so a product whose stock went negative can still be renamed.
// Quantity edits here do not go through the transaction engine and leave no
// movement record.
func (s *inventoryService) UpdateProduct(actor *model.User, id string, patch model.ProductPatch) (*model.Product, error) {
	if err := s.authorize(actor, model.CapEditProduct); err != nil {
		return nil, err
	}
	if err := validate(&patch); err != nil {
		return nil, err
	}

	var (
		updated model.Product
		entry   model.LogEntry
	)
	err := s.DB.Transaction(func(tx *repository.Dataset) error {
		existing, err := s.Products.Get(tx, id)
		if err != nil {
			return ErrProductNotFound
		}
		patch.Apply(existing)
		existing.LastUpdated = s.Clock()
		if err := s.Products.Update(tx, *existing); err != nil {
			return err
		}
		updated = *existing
		entry = s.audit(tx, actor, model.ActionUpdateProduct, fmt.Sprintf("Updated product: %s", existing.Name), model.ModuleInventory)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.committed(entry)
	return &updated, nil
}

// BulkUpdate applies one patch to several products. Unknown ids are skipped.
func (s *inventoryService) BulkUpdate(actor *model.User, ids []string, patch model.ProductPatch) (int, error) {
	if err := s.authorize(actor, model.CapEditProduct); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := validate(&patch); err != nil {
		return 0, err
	}

	var (
		touched int
		entry   model.LogEntry
	)
	err := s.DB.Transaction(func(tx *repository.Dataset) error {
		now := s.Clock()
		for _, id := range ids {
			existing, err := s.Products.Get(tx, id)
			if err != nil {
				continue
			}
			patch.Apply(existing)
			existing.LastUpdated = now
			if err := s.Products.Update(tx, *existing); err != nil {
				return err
			}
			touched++
		}
		entry = s.audit(tx, actor, model.ActionBulkUpdate, fmt.Sprintf("Bulk updated %d products.", touched), model.ModuleInventory)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.committed(entry)
	return touched, nil
}

// DeleteProduct removes the product. Its transactions stay behind with a
// dangling product id and their recorded name.
func (s *inventoryService) DeleteProduct(actor *model.User, id string) error {
	if err := s.authorize(actor, model.CapDeleteProduct); err != nil {
		return err
	}

	var entry model.LogEntry
	err := s.DB.Transaction(func(tx *repository.Dataset) error {
		removed, err := s.Products.Delete(tx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		entry = s.audit(tx, actor, model.ActionDeleteProduct, fmt.Sprintf("Deleted product: %s", removed.Name), model.ModuleInventory)
		return nil
	})
	if err != nil {
		return err
	}

	s.committed(entry)
	return nil
}

func (s *inventoryService) GetAllProducts(filter ProductFilter) []model.Product {
	var result []model.Product
	for _, p := range s.Products.FindAll() {
		if filter.Match(p) {
			result = append(result, p)
		}
	}
	return result
}

func (s *inventoryService) GetProductByID(id string) (*model.Product, error) {
	p, err := s.Products.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// Categories lists distinct product categories in alphabetical order.
func (s *inventoryService) Categories() []string {
	seen := map[string]struct{}{}
	var categories []string
	for _, p := range s.Products.FindAll() {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories
}
