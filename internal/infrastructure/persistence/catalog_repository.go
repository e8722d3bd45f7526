package persistence

import (
	"context"
	"errors"

	"github.com/commercekit/inventory/internal/domain/catalog"
	"github.com/commercekit/inventory/internal/domain/inventory"
	"github.com/commercekit/inventory/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductCatalog implements both the product repository and the ledger's
// CatalogLookup over the products read model.
type GormProductCatalog struct {
	db *gorm.DB
}

// NewGormProductCatalog creates a new GormProductCatalog
func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// FindBySKUCode finds a product by its SKU code
func (r *GormProductCatalog) FindBySKUCode(ctx context.Context, skuCode string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("sku_code = ?", skuCode).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// ResolveAvailability resolves the availability slice for a SKU. SKUs the
// catalog does not know yet fall back to the in-stock policy with a minimum
// order quantity of one, so stock can be tracked ahead of catalog onboarding.
func (r *GormProductCatalog) ResolveAvailability(ctx context.Context, skuCode string) (inventory.SKUAvailability, error) {
	product, err := r.FindBySKUCode(ctx, skuCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return inventory.SKUAvailability{
				Criteria:         inventory.AvailabilityWhenInStock,
				MinOrderQuantity: 1,
			}, nil
		}
		return inventory.SKUAvailability{}, err
	}
	return product.Availability(), nil
}

// Ensure GormProductCatalog implements both contracts
var _ catalog.ProductRepository = (*GormProductCatalog)(nil)
var _ inventory.CatalogLookup = (*GormProductCatalog)(nil)
