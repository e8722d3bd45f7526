package inventory

import "time"

// InventorySnapshot is a read-only copy of an inventory record's state
type InventorySnapshot struct {
	SKUCode                  string     `json:"sku_code"`
	WarehouseID              int64      `json:"warehouse_id"`
	QuantityOnHand           int64      `json:"quantity_on_hand"`
	AllocatedQuantity        int64      `json:"allocated_quantity"`
	AvailableQuantityInStock int64      `json:"available_quantity_in_stock"`
	ReorderMinimum           int64      `json:"reorder_minimum"`
	ReorderQuantity          int64      `json:"reorder_quantity"`
	RestockDate              *time.Time `json:"restock_date,omitempty"`
}

// ExecutionResult is the transient outcome of applying one inventory command.
// It is never persisted.
type ExecutionResult struct {
	// AppliedQuantity is the quantity the command actually applied, which may
	// differ from the requested quantity for clamped deallocations.
	AppliedQuantity int64
	// Inventory is the post-command state of the record, or nil when no record
	// exists for the key (always-available SKUs, lenient no-ops).
	Inventory *InventorySnapshot
}
