package persistence

import (
	"context"
	"errors"

	"github.com/commercekit/inventory/internal/domain/inventory"
	"github.com/commercekit/inventory/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInventoryRecordRepository implements InventoryRecordRepository using GORM
type GormInventoryRecordRepository struct {
	db *gorm.DB
}

// NewGormInventoryRecordRepository creates a new GormInventoryRecordRepository
func NewGormInventoryRecordRepository(db *gorm.DB) *GormInventoryRecordRepository {
	return &GormInventoryRecordRepository{db: db}
}

// FindBySKUAndWarehouse finds the record for a SKU-warehouse combination
func (r *GormInventoryRecordRepository) FindBySKUAndWarehouse(ctx context.Context, skuCode string, warehouseID int64) (*inventory.InventoryRecord, error) {
	var record inventory.InventoryRecord
	if err := r.db.WithContext(ctx).
		Where("sku_code = ? AND warehouse_id = ?", skuCode, warehouseID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindLowStock finds records among the given SKUs whose available quantity has
// reached their reorder minimum
func (r *GormInventoryRecordRepository) FindLowStock(ctx context.Context, skuCodes []string, warehouseID int64) ([]inventory.InventoryRecord, error) {
	if len(skuCodes) == 0 {
		return []inventory.InventoryRecord{}, nil
	}

	var records []inventory.InventoryRecord
	if err := r.db.WithContext(ctx).
		Where("sku_code IN ? AND warehouse_id = ? AND (quantity_on_hand - allocated_quantity) <= reorder_minimum", skuCodes, warehouseID).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Create inserts a new record
func (r *GormInventoryRecordRepository) Create(ctx context.Context, record *inventory.InventoryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Save creates or updates a record without a version check
func (r *GormInventoryRecordRepository) Save(ctx context.Context, record *inventory.InventoryRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormInventoryRecordRepository) SaveWithLock(ctx context.Context, record *inventory.InventoryRecord) error {
	result := r.db.WithContext(ctx).
		Model(record).
		Where("id = ? AND version = ?", record.ID, record.Version-1).
		Updates(map[string]interface{}{
			"quantity_on_hand":   record.QuantityOnHand,
			"allocated_quantity": record.AllocatedQuantity,
			"reorder_minimum":    record.ReorderMinimum,
			"reorder_quantity":   record.ReorderQuantity,
			"unit_cost":          record.UnitCost,
			"restock_date":       record.RestockDate,
			"version":            record.Version,
			"updated_at":         record.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes the record for a SKU-warehouse combination
func (r *GormInventoryRecordRepository) Delete(ctx context.Context, skuCode string, warehouseID int64) error {
	result := r.db.WithContext(ctx).
		Delete(&inventory.InventoryRecord{}, "sku_code = ? AND warehouse_id = ?", skuCode, warehouseID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormInventoryRecordRepository implements InventoryRecordRepository
var _ inventory.InventoryRecordRepository = (*GormInventoryRecordRepository)(nil)
