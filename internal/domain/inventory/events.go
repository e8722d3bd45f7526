package inventory

import (
	"github.com/commercekit/inventory/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeInventoryRecord = "InventoryRecord"

// Event type constants
const (
	EventNameStockAdjusted       = "StockAdjusted"
	EventNameStockAllocated      = "StockAllocated"
	EventNameStockDeallocated    = "StockDeallocated"
	EventNameStockReleased       = "StockReleased"
	EventNameRecordDeleted       = "InventoryRecordDeleted"
	EventNameAvailabilityChanged = "AvailabilityChanged"
)

// StockAdjustedEvent is raised when physical stock is adjusted. A positive
// delta represents received stock.
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	SKUCode        string `json:"sku_code"`
	WarehouseID    int64  `json:"warehouse_id"`
	Delta          int64  `json:"delta"`
	QuantityOnHand int64  `json:"quantity_on_hand"`
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(record *InventoryRecord, delta int64) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventNameStockAdjusted, AggregateTypeInventoryRecord, record.ID),
		SKUCode:         record.SKUCode,
		WarehouseID:     record.WarehouseID,
		Delta:           delta,
		QuantityOnHand:  record.QuantityOnHand,
	}
}

// EventType returns the event type name
func (e *StockAdjustedEvent) EventType() string {
	return EventNameStockAdjusted
}

// StockAllocatedEvent is raised when stock is reserved against demand
type StockAllocatedEvent struct {
	shared.BaseDomainEvent
	SKUCode           string `json:"sku_code"`
	WarehouseID       int64  `json:"warehouse_id"`
	Quantity          int64  `json:"quantity"`
	AllocatedQuantity int64  `json:"allocated_quantity"`
}

// NewStockAllocatedEvent creates a new StockAllocatedEvent
func NewStockAllocatedEvent(record *InventoryRecord, quantity int64) *StockAllocatedEvent {
	return &StockAllocatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventNameStockAllocated, AggregateTypeInventoryRecord, record.ID),
		SKUCode:           record.SKUCode,
		WarehouseID:       record.WarehouseID,
		Quantity:          quantity,
		AllocatedQuantity: record.AllocatedQuantity,
	}
}

// EventType returns the event type name
func (e *StockAllocatedEvent) EventType() string {
	return EventNameStockAllocated
}

// StockDeallocatedEvent is raised when a reservation is returned to the
// available pool. Quantity is the clamped, actually-applied amount.
type StockDeallocatedEvent struct {
	shared.BaseDomainEvent
	SKUCode           string `json:"sku_code"`
	WarehouseID       int64  `json:"warehouse_id"`
	Quantity          int64  `json:"quantity"`
	AllocatedQuantity int64  `json:"allocated_quantity"`
}

// NewStockDeallocatedEvent creates a new StockDeallocatedEvent
func NewStockDeallocatedEvent(record *InventoryRecord, quantity int64) *StockDeallocatedEvent {
	return &StockDeallocatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventNameStockDeallocated, AggregateTypeInventoryRecord, record.ID),
		SKUCode:           record.SKUCode,
		WarehouseID:       record.WarehouseID,
		Quantity:          quantity,
		AllocatedQuantity: record.AllocatedQuantity,
	}
}

// EventType returns the event type name
func (e *StockDeallocatedEvent) EventType() string {
	return EventNameStockDeallocated
}

// StockReleasedEvent is raised when an allocation is fulfilled at shipment
type StockReleasedEvent struct {
	shared.BaseDomainEvent
	SKUCode        string `json:"sku_code"`
	WarehouseID    int64  `json:"warehouse_id"`
	Quantity       int64  `json:"quantity"`
	QuantityOnHand int64  `json:"quantity_on_hand"`
}

// NewStockReleasedEvent creates a new StockReleasedEvent
func NewStockReleasedEvent(record *InventoryRecord, quantity int64) *StockReleasedEvent {
	return &StockReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventNameStockReleased, AggregateTypeInventoryRecord, record.ID),
		SKUCode:         record.SKUCode,
		WarehouseID:     record.WarehouseID,
		Quantity:        quantity,
		QuantityOnHand:  record.QuantityOnHand,
	}
}

// EventType returns the event type name
func (e *StockReleasedEvent) EventType() string {
	return EventNameStockReleased
}

// RecordDeletedEvent is raised when an inventory record is removed
type RecordDeletedEvent struct {
	shared.BaseDomainEvent
	SKUCode     string `json:"sku_code"`
	WarehouseID int64  `json:"warehouse_id"`
}

// NewRecordDeletedEvent creates a new RecordDeletedEvent
func NewRecordDeletedEvent(record *InventoryRecord) *RecordDeletedEvent {
	return &RecordDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventNameRecordDeleted, AggregateTypeInventoryRecord, record.ID),
		SKUCode:         record.SKUCode,
		WarehouseID:     record.WarehouseID,
	}
}

// EventType returns the event type name
func (e *RecordDeletedEvent) EventType() string {
	return EventNameRecordDeleted
}

// AvailabilityChangedEvent is raised when an in-stock SKU crosses its
// out-of-stock boundary in either direction. Exactly one event fires per
// transition; consumers use it to reindex the product in search.
type AvailabilityChangedEvent struct {
	shared.BaseDomainEvent
	SKUCode          string    `json:"sku_code"`
	WarehouseID      int64     `json:"warehouse_id"`
	ProductID        uuid.UUID `json:"product_id"`
	MinOrderQuantity int64     `json:"min_order_quantity"`
	AvailableBefore  int64     `json:"available_before"`
	AvailableAfter   int64     `json:"available_after"`
	OutOfStock       bool      `json:"out_of_stock"`
}

// NewAvailabilityChangedEvent creates a new AvailabilityChangedEvent
func NewAvailabilityChangedEvent(
	recordID uuid.UUID,
	skuCode string,
	warehouseID int64,
	productID uuid.UUID,
	minOrderQuantity int64,
	availableBefore int64,
	availableAfter int64,
	outOfStock bool,
) *AvailabilityChangedEvent {
	return &AvailabilityChangedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventNameAvailabilityChanged, AggregateTypeInventoryRecord, recordID),
		SKUCode:          skuCode,
		WarehouseID:      warehouseID,
		ProductID:        productID,
		MinOrderQuantity: minOrderQuantity,
		AvailableBefore:  availableBefore,
		AvailableAfter:   availableAfter,
		OutOfStock:       outOfStock,
	}
}

// EventType returns the event type name
func (e *AvailabilityChangedEvent) EventType() string {
	return EventNameAvailabilityChanged
}
