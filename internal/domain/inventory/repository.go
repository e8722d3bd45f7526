package inventory

import (
	"context"
)

// InventoryRecordRepository is the persistence contract for the ledger.
// Implementations return shared.ErrNotFound when no row exists for a key and
// shared.ErrConcurrencyConflict when an optimistic version check fails.
type InventoryRecordRepository interface {
	// FindBySKUAndWarehouse finds the record for a key
	FindBySKUAndWarehouse(ctx context.Context, skuCode string, warehouseID int64) (*InventoryRecord, error)
	// FindLowStock finds records among the given SKUs whose available quantity
	// has reached their reorder minimum
	FindLowStock(ctx context.Context, skuCodes []string, warehouseID int64) ([]InventoryRecord, error)
	// Create inserts a new record
	Create(ctx context.Context, record *InventoryRecord) error
	// Save creates or updates a record without a version check
	Save(ctx context.Context, record *InventoryRecord) error
	// SaveWithLock updates a record only if the stored version matches the
	// version the record was loaded at
	SaveWithLock(ctx context.Context, record *InventoryRecord) error
	// Delete removes the record for a key
	Delete(ctx context.Context, skuCode string, warehouseID int64) error
}

// InventoryAuditRepository is the persistence contract for the audit trail.
// The trail is append-only: there are deliberately no update or delete
// operations.
type InventoryAuditRepository interface {
	// Append inserts one audit row
	Append(ctx context.Context, audit *InventoryAudit) error
	// FindBySKUAndWarehouse returns the full trail for a key in application order
	FindBySKUAndWarehouse(ctx context.Context, skuCode string, warehouseID int64) ([]InventoryAudit, error)
}
