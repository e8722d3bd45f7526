package inventory

import (
	"github.com/commercekit/inventory/internal/domain/shared"
)

// AvailabilityCriteria is the per-product policy gating how a SKU may be sold
type AvailabilityCriteria string

const (
	// AvailabilityAlwaysAvailable sells unconditionally; no ledger is kept
	AvailabilityAlwaysAvailable AvailabilityCriteria = "ALWAYS_AVAILABLE"
	// AvailabilityWhenInStock sells only what is physically available
	AvailabilityWhenInStock AvailabilityCriteria = "WHEN_IN_STOCK"
	// AvailabilityPreOrder accepts demand ahead of the first stock arrival
	AvailabilityPreOrder AvailabilityCriteria = "PRE_ORDER"
	// AvailabilityBackOrder accepts demand beyond current stock
	AvailabilityBackOrder AvailabilityCriteria = "BACK_ORDER"
)

// String returns the string representation of AvailabilityCriteria
func (c AvailabilityCriteria) String() string {
	return string(c)
}

// IsValid returns true if the criteria is a known policy
func (c AvailabilityCriteria) IsValid() bool {
	switch c {
	case AvailabilityAlwaysAvailable,
		AvailabilityWhenInStock,
		AvailabilityPreOrder,
		AvailabilityBackOrder:
		return true
	}
	return false
}

// AvailabilityPolicy decides whether a requested allocation can be satisfied
// and applies a command's numeric effect to a record. Implementations are
// stateless and shared; the set is closed over the four availability criteria.
type AvailabilityPolicy interface {
	Criteria() AvailabilityCriteria
	// HasSufficientInventory reports whether the requested quantity could be
	// allocated right now. The record may be nil (no ledger row for the key).
	HasSufficientInventory(record *InventoryRecord, requested int64) bool
	// Apply delegates the command's numeric effect to the record and returns
	// the applied quantity. On error the record is unchanged.
	Apply(record *InventoryRecord, cmd Command) (int64, error)
}

var (
	alwaysAvailable = &alwaysAvailablePolicy{}
	whenInStock     = &ledgerPolicy{criteria: AvailabilityWhenInStock, gated: true}
	preOrder        = &ledgerPolicy{criteria: AvailabilityPreOrder}
	backOrder       = &ledgerPolicy{criteria: AvailabilityBackOrder}
)

// PolicyFor returns the shared policy instance for the given criteria.
// Unknown criteria fall back to the in-stock policy, the most conservative.
func PolicyFor(criteria AvailabilityCriteria) AvailabilityPolicy {
	switch criteria {
	case AvailabilityAlwaysAvailable:
		return alwaysAvailable
	case AvailabilityPreOrder:
		return preOrder
	case AvailabilityBackOrder:
		return backOrder
	default:
		return whenInStock
	}
}

// ledgerPolicy applies commands against the record with full conservation
// tracking. When gated, allocations beyond the available quantity are denied;
// otherwise demand may exceed on-hand stock (pre-order/back-order) and the
// available quantity goes negative, to be fulfilled later.
type ledgerPolicy struct {
	criteria AvailabilityCriteria
	gated    bool
}

// Criteria returns the availability criteria this policy implements
func (p *ledgerPolicy) Criteria() AvailabilityCriteria {
	return p.criteria
}

// HasSufficientInventory gates on available quantity only for the in-stock policy
func (p *ledgerPolicy) HasSufficientInventory(record *InventoryRecord, requested int64) bool {
	if !p.gated {
		return true
	}
	var available int64
	if record != nil {
		available = record.AvailableQuantityInStock()
	}
	return available >= requested
}

// Apply dispatches the command to the record
func (p *ledgerPolicy) Apply(record *InventoryRecord, cmd Command) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	switch c := cmd.(type) {
	case AdjustCommand:
		return record.AdjustStock(c.Delta, c.UnitCost)
	case AllocateCommand:
		if !p.HasSufficientInventory(record, c.Quantity) {
			return 0, shared.ErrInsufficientInventory
		}
		return record.AllocateStock(c.Quantity)
	case DeallocateCommand:
		return record.DeallocateStock(c.Quantity)
	case ReleaseCommand:
		return record.ReleaseStock(c.Quantity)
	case DeleteCommand:
		// Record removal is the executor's job; there is no numeric effect.
		return 0, nil
	default:
		return 0, shared.ErrUnknownEventType
	}
}

// alwaysAvailablePolicy sells unconditionally. Commands are accepted but have
// no effect on any physical record: no conservation tracking is needed, and
// always-available SKUs may have no record at all.
type alwaysAvailablePolicy struct{}

// Criteria returns AvailabilityAlwaysAvailable
func (p *alwaysAvailablePolicy) Criteria() AvailabilityCriteria {
	return AvailabilityAlwaysAvailable
}

// HasSufficientInventory always reports true
func (p *alwaysAvailablePolicy) HasSufficientInventory(_ *InventoryRecord, _ int64) bool {
	return true
}

// Apply validates the command and reports it as fully applied without
// touching the record
func (p *alwaysAvailablePolicy) Apply(_ *InventoryRecord, cmd Command) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	return commandQuantity(cmd), nil
}
