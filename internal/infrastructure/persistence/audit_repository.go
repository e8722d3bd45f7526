package persistence

import (
	"context"

	"github.com/commercekit/inventory/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormInventoryAuditRepository implements InventoryAuditRepository using GORM.
// The trail is append-only, so the repository only inserts and reads.
type GormInventoryAuditRepository struct {
	db *gorm.DB
}

// NewGormInventoryAuditRepository creates a new GormInventoryAuditRepository
func NewGormInventoryAuditRepository(db *gorm.DB) *GormInventoryAuditRepository {
	return &GormInventoryAuditRepository{db: db}
}

// Append inserts one audit row
func (r *GormInventoryAuditRepository) Append(ctx context.Context, audit *inventory.InventoryAudit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

// FindBySKUAndWarehouse returns the full trail for a key in application order
func (r *GormInventoryAuditRepository) FindBySKUAndWarehouse(ctx context.Context, skuCode string, warehouseID int64) ([]inventory.InventoryAudit, error) {
	var entries []inventory.InventoryAudit
	if err := r.db.WithContext(ctx).
		Where("sku_code = ? AND warehouse_id = ?", skuCode, warehouseID).
		Order("transaction_date ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Ensure GormInventoryAuditRepository implements InventoryAuditRepository
var _ inventory.InventoryAuditRepository = (*GormInventoryAuditRepository)(nil)
