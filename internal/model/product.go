package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultImageURL is used when a product has no picture.
const DefaultImageURL = "https://picsum.photos/200/200"

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name" validate:"required"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	MinLevel    int             `json:"min_level" validate:"gte=0"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	ImageURL    string          `json:"image_url"`
	LastUpdated time.Time       `json:"last_updated"`
}

// IsLowStock reports whether quantity sits at or below the reorder level.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.MinLevel
}

// Value is price times quantity on hand.
func (p Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// ProductPatch carries optional fields for partial updates. Nil means unchanged.
type ProductPatch struct {
	Name     *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	SKU      *string          `json:"sku,omitempty"`
	Category *string          `json:"category,omitempty"`
	Quantity *int             `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	MinLevel *int             `json:"min_level,omitempty" validate:"omitempty,gte=0"`
	Price    *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gte=0"`
	ImageURL *string          `json:"image_url,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.SKU == nil && p.Category == nil && p.Quantity == nil &&
		p.MinLevel == nil && p.Price == nil && p.ImageURL == nil
}

// Apply merges the patch into the product. LastUpdated is left to the caller.
func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.SKU != nil {
		product.SKU = *p.SKU
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Quantity != nil {
		product.Quantity = *p.Quantity
	}
	if p.MinLevel != nil {
		product.MinLevel = *p.MinLevel
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.ImageURL != nil {
		product.ImageURL = *p.ImageURL
	}
}
