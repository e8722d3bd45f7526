package inventory

import (
	"github.com/commercekit/inventory/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EventType identifies the kind of stock-changing command, and is the value
// recorded in the audit trail for each applied command.
type EventType string

const (
	// EventTypeAdjustment is a signed administrative change to physical stock
	// (positive deltas represent received stock)
	EventTypeAdjustment EventType = "ADJUSTMENT"
	// EventTypeAllocate reserves stock against demand
	EventTypeAllocate EventType = "ALLOCATE"
	// EventTypeDeallocate returns reserved stock to the available pool
	EventTypeDeallocate EventType = "DEALLOCATE"
	// EventTypeRelease fulfils an allocation at shipment time
	EventTypeRelease EventType = "RELEASE"
	// EventTypeDelete removes the inventory record for a key
	EventTypeDelete EventType = "DELETE"
)

// String returns the string representation of EventType
func (t EventType) String() string {
	return string(t)
}

// IsValid returns true if the event type is valid
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeAdjustment,
		EventTypeAllocate,
		EventTypeDeallocate,
		EventTypeRelease,
		EventTypeDelete:
		return true
	}
	return false
}

// Command is one requested stock-changing operation. The set of
// implementations is closed: commands are dispatched by type switch inside
// the availability policies, and each variant validates itself before any
// state is touched.
type Command interface {
	EventType() EventType
	// Validate rejects malformed commands (non-positive magnitude where one is
	// required) before any policy or record is consulted.
	Validate() error

	isCommand()
}

// AdjustCommand applies a signed delta to physical stock. A positive delta is
// a receive; an optional unit cost feeds the moving-average cost calculation.
type AdjustCommand struct {
	Delta    int64
	UnitCost *decimal.Decimal
}

// EventType returns the audit event type for the command
func (AdjustCommand) EventType() EventType { return EventTypeAdjustment }

// Validate rejects zero deltas and negative unit costs
func (c AdjustCommand) Validate() error {
	if c.Delta == 0 {
		return shared.ErrInvalidQuantity
	}
	if c.UnitCost != nil && c.UnitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	return nil
}

func (AdjustCommand) isCommand() {}

// AllocateCommand reserves stock against demand; gated by the SKU's
// availability policy.
type AllocateCommand struct {
	Quantity int64
}

// EventType returns the audit event type for the command
func (AllocateCommand) EventType() EventType { return EventTypeAllocate }

// Validate rejects non-positive quantities
func (c AllocateCommand) Validate() error {
	if c.Quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	return nil
}

func (AllocateCommand) isCommand() {}

// DeallocateCommand returns reserved stock to the available pool, clamped at
// zero allocation.
type DeallocateCommand struct {
	Quantity int64
}

// EventType returns the audit event type for the command
func (DeallocateCommand) EventType() EventType { return EventTypeDeallocate }

// Validate rejects non-positive quantities
func (c DeallocateCommand) Validate() error {
	if c.Quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	return nil
}

func (DeallocateCommand) isCommand() {}

// ReleaseCommand fulfils an allocation: physical stock and the reservation
// decrease together in one step.
type ReleaseCommand struct {
	Quantity int64
}

// EventType returns the audit event type for the command
func (ReleaseCommand) EventType() EventType { return EventTypeRelease }

// Validate rejects non-positive quantities
func (c ReleaseCommand) Validate() error {
	if c.Quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	return nil
}

func (ReleaseCommand) isCommand() {}

// DeleteCommand removes the inventory record for a key. The audit trail is
// retained with a terminal DELETE row.
type DeleteCommand struct{}

// EventType returns the audit event type for the command
func (DeleteCommand) EventType() EventType { return EventTypeDelete }

// Validate always succeeds for deletes
func (DeleteCommand) Validate() error { return nil }

func (DeleteCommand) isCommand() {}

// CommandForEventType builds the command for an externally supplied event type
// string. The quantity is interpreted per type: signed for adjustments,
// positive magnitude for the rest, ignored for deletes.
func CommandForEventType(eventType string, quantity int64) (Command, error) {
	switch EventType(eventType) {
	case EventTypeAdjustment:
		return AdjustCommand{Delta: quantity}, nil
	case EventTypeAllocate:
		return AllocateCommand{Quantity: quantity}, nil
	case EventTypeDeallocate:
		return DeallocateCommand{Quantity: quantity}, nil
	case EventTypeRelease:
		return ReleaseCommand{Quantity: quantity}, nil
	case EventTypeDelete:
		return DeleteCommand{}, nil
	default:
		return nil, shared.ErrUnknownEventType
	}
}

// commandQuantity returns the quantity a command requests without applying it:
// the signed delta for adjustments, the positive magnitude for the rest.
func commandQuantity(cmd Command) int64 {
	switch c := cmd.(type) {
	case AdjustCommand:
		return c.Delta
	case AllocateCommand:
		return c.Quantity
	case DeallocateCommand:
		return c.Quantity
	case ReleaseCommand:
		return c.Quantity
	default:
		return 0
	}
}
