package inventory

import (
	"time"

	"github.com/commercekit/inventory/internal/domain/shared"
)

// InventoryAudit is an immutable record of one applied inventory command.
// Rows are append-only: corrections are made with new commands, never by
// mutating or deleting audit rows. Summing the signed deltas of all rows for
// a key in order reproduces the record's current quantities.
type InventoryAudit struct {
	shared.BaseEntity
	SKUCode         string    `gorm:"type:varchar(255);not null;index:idx_inventory_audit_key,priority:1"`
	WarehouseID     int64     `gorm:"not null;index:idx_inventory_audit_key,priority:2"`
	EventType       EventType `gorm:"type:varchar(30);not null"`
	Quantity        int64     `gorm:"not null"` // Applied quantity: signed for adjustments, positive magnitude otherwise
	OnHandDelta     int64     `gorm:"not null"` // Exact signed change to QuantityOnHand
	AllocatedDelta  int64     `gorm:"not null"` // Exact signed change to AllocatedQuantity
	OnHandAfter     int64     `gorm:"not null"`
	AllocatedAfter  int64     `gorm:"not null"`
	Reason          string    `gorm:"type:varchar(255)"`
	Originator      string    `gorm:"type:varchar(100)"`
	OrderReference  string    `gorm:"type:varchar(100)"`
	TransactionDate time.Time `gorm:"type:timestamptz;not null;index:idx_inventory_audit_key,priority:3"`
}

// TableName returns the table name for GORM
func (InventoryAudit) TableName() string {
	return "inventory_audits"
}

// NewInventoryAudit creates an audit row for one applied command. The deltas
// must be the exact signed changes the command made; the After columns record
// the resulting state for point-in-time reads.
func NewInventoryAudit(
	skuCode string,
	warehouseID int64,
	eventType EventType,
	quantity int64,
	onHandDelta int64,
	allocatedDelta int64,
	onHandAfter int64,
	allocatedAfter int64,
) (*InventoryAudit, error) {
	if skuCode == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU code cannot be empty")
	}
	if warehouseID <= 0 {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID must be positive")
	}
	if !eventType.IsValid() {
		return nil, shared.ErrUnknownEventType
	}

	return &InventoryAudit{
		BaseEntity:      shared.NewBaseEntity(),
		SKUCode:         skuCode,
		WarehouseID:     warehouseID,
		EventType:       eventType,
		Quantity:        quantity,
		OnHandDelta:     onHandDelta,
		AllocatedDelta:  allocatedDelta,
		OnHandAfter:     onHandAfter,
		AllocatedAfter:  allocatedAfter,
		TransactionDate: time.Now(),
	}, nil
}

// WithReason sets the reason for the command
func (a *InventoryAudit) WithReason(reason string) *InventoryAudit {
	a.Reason = reason
	return a
}

// WithOriginator sets who requested the command
func (a *InventoryAudit) WithOriginator(originator string) *InventoryAudit {
	a.Originator = originator
	return a
}

// WithOrderReference sets the order the command was made on behalf of
func (a *InventoryAudit) WithOrderReference(orderRef string) *InventoryAudit {
	a.OrderReference = orderRef
	return a
}

// ReplayAudits folds the signed deltas of an ordered audit trail into the
// quantities they reproduce. A DELETE row carries deltas that negate the
// state at the time of deletion, so plain summation holds across deletions.
func ReplayAudits(entries []InventoryAudit) (onHand, allocated int64) {
	for i := range entries {
		onHand += entries[i].OnHandDelta
		allocated += entries[i].AllocatedDelta
	}
	return onHand, allocated
}
