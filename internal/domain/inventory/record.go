package inventory

import (
	"time"

	"github.com/commercekit/inventory/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryRecord tracks stock for a single SKU at a single warehouse.
// It is the aggregate root for all stock-changing commands.
// The composite identifier is SKUCode + WarehouseID.
type InventoryRecord struct {
	shared.BaseAggregateRoot
	SKUCode           string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_inventory_record_sku_warehouse,priority:1"`
	WarehouseID       int64           `gorm:"not null;uniqueIndex:idx_inventory_record_sku_warehouse,priority:2"`
	QuantityOnHand    int64           `gorm:"not null;default:0"` // Physical stock in the warehouse
	AllocatedQuantity int64           `gorm:"not null;default:0"` // Reserved against demand, not yet released
	ReorderMinimum    int64           `gorm:"not null;default:0"`
	ReorderQuantity   int64           `gorm:"not null;default:0"`
	UnitCost          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Moving weighted average cost
	RestockDate       *time.Time      `gorm:"type:timestamptz"`
}

// TableName returns the table name for GORM
func (InventoryRecord) TableName() string {
	return "inventory_records"
}

// NewInventoryRecord creates an empty inventory record for a SKU-warehouse combination
func NewInventoryRecord(skuCode string, warehouseID int64) (*InventoryRecord, error) {
	if skuCode == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU code cannot be empty")
	}
	if warehouseID <= 0 {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID must be positive")
	}

	return &InventoryRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKUCode:           skuCode,
		WarehouseID:       warehouseID,
		UnitCost:          decimal.Zero,
	}, nil
}

// AvailableQuantityInStock returns the quantity available to sell:
// physical stock minus outstanding allocations. May be negative for
// pre-order and back-order SKUs.
func (r *InventoryRecord) AvailableQuantityInStock() int64 {
	return r.QuantityOnHand - r.AllocatedQuantity
}

// AdjustStock applies a signed administrative adjustment to the physical stock.
// Positive deltas represent received stock; when a unit cost is supplied the
// record's unit cost is recalculated as a moving weighted average.
// This is the only command that may drive QuantityOnHand negative.
func (r *InventoryRecord) AdjustStock(delta int64, unitCost *decimal.Decimal) (int64, error) {
	if delta == 0 {
		return 0, shared.ErrInvalidQuantity
	}
	if unitCost != nil && unitCost.IsNegative() {
		return 0, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	if delta > 0 && unitCost != nil {
		oldQuantity := r.QuantityOnHand
		if oldQuantity <= 0 || r.UnitCost.IsZero() {
			r.UnitCost = *unitCost
		} else {
			oldQty := decimal.NewFromInt(oldQuantity)
			newQty := decimal.NewFromInt(delta)
			totalValue := oldQty.Mul(r.UnitCost).Add(newQty.Mul(*unitCost))
			r.UnitCost = totalValue.Div(oldQty.Add(newQty)).Round(4)
		}
	}

	r.QuantityOnHand += delta
	r.touch()

	r.AddDomainEvent(NewStockAdjustedEvent(r, delta))
	return delta, nil
}

// AllocateStock reserves quantity against demand. Sufficiency is gated by the
// SKU's availability policy, not here: pre-order and back-order SKUs may
// legitimately drive the available quantity negative.
func (r *InventoryRecord) AllocateStock(quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, shared.ErrInvalidQuantity
	}

	r.AllocatedQuantity += quantity
	r.touch()

	r.AddDomainEvent(NewStockAllocatedEvent(r, quantity))
	return quantity, nil
}

// DeallocateStock returns reserved quantity to the available pool. The
// allocation is clamped at zero rather than rejected, so deallocating more
// than is reserved is a partial no-op. Returns the quantity actually removed
// from the allocation.
func (r *InventoryRecord) DeallocateStock(quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, shared.ErrInvalidQuantity
	}

	applied := quantity
	if applied > r.AllocatedQuantity {
		applied = r.AllocatedQuantity
	}
	r.AllocatedQuantity -= applied
	r.touch()

	r.AddDomainEvent(NewStockDeallocatedEvent(r, applied))
	return applied, nil
}

// ReleaseStock fulfils an allocation: stock physically leaves the warehouse
// and the matching reservation is removed in the same step. The allocation
// side is clamped at zero like DeallocateStock; the physical side always
// decreases by the full quantity.
func (r *InventoryRecord) ReleaseStock(quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, shared.ErrInvalidQuantity
	}

	deallocated := quantity
	if deallocated > r.AllocatedQuantity {
		deallocated = r.AllocatedQuantity
	}
	r.QuantityOnHand -= quantity
	r.AllocatedQuantity -= deallocated
	r.touch()

	r.AddDomainEvent(NewStockReleasedEvent(r, quantity))
	return quantity, nil
}

// IsLowStock returns true if the available quantity has reached the reorder minimum
func (r *InventoryRecord) IsLowStock() bool {
	return r.AvailableQuantityInStock() <= r.ReorderMinimum
}

// Snapshot returns an immutable copy of the record's quantities
func (r *InventoryRecord) Snapshot() InventorySnapshot {
	return InventorySnapshot{
		SKUCode:                  r.SKUCode,
		WarehouseID:              r.WarehouseID,
		QuantityOnHand:           r.QuantityOnHand,
		AllocatedQuantity:        r.AllocatedQuantity,
		AvailableQuantityInStock: r.AvailableQuantityInStock(),
		ReorderMinimum:           r.ReorderMinimum,
		ReorderQuantity:          r.ReorderQuantity,
		RestockDate:              r.RestockDate,
	}
}

func (r *InventoryRecord) touch() {
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}
