// Package catalog holds the thin product read model the inventory ledger
// consumes. Product maintenance lives elsewhere; this package exposes only
// what availability resolution needs.
package catalog

import (
	"context"

	"github.com/commercekit/inventory/internal/domain/shared"
	"github.com/commercekit/inventory/internal/domain/inventory"
)

// Product is the read-only slice of a catalog product referenced by SKU code
type Product struct {
	shared.BaseEntity
	SKUCode              string                         `gorm:"type:varchar(255);not null;uniqueIndex"`
	AvailabilityCriteria inventory.AvailabilityCriteria `gorm:"type:varchar(30);not null;default:'WHEN_IN_STOCK'"`
	MinOrderQuantity     int64                          `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// Availability returns the product's availability slice for the ledger
func (p *Product) Availability() inventory.SKUAvailability {
	return inventory.SKUAvailability{
		ProductID:        p.ID,
		Criteria:         p.AvailabilityCriteria,
		MinOrderQuantity: p.MinOrderQuantity,
	}
}

// ProductRepository finds products by SKU code
type ProductRepository interface {
	FindBySKUCode(ctx context.Context, skuCode string) (*Product, error)
}
