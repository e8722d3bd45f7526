package inventory

import (
	"context"
	"errors"

	"github.com/commercekit/inventory/internal/domain/inventory"
	"github.com/commercekit/inventory/internal/domain/shared"
	"go.uber.org/zap"
)

// InventoryService is the exposed, library-level API over the ledger. All
// stock-changing paths go through the CommandExecutor; reads hit the
// repository directly.
type InventoryService struct {
	executor   *CommandExecutor
	reconciler *Reconciler
	records    inventory.InventoryRecordRepository
	audits     inventory.InventoryAuditRepository
	catalog    inventory.CatalogLookup
	logger     *zap.Logger
}

// NewInventoryService creates an InventoryService
func NewInventoryService(
	executor *CommandExecutor,
	reconciler *Reconciler,
	records inventory.InventoryRecordRepository,
	audits inventory.InventoryAuditRepository,
	catalog inventory.CatalogLookup,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		executor:   executor,
		reconciler: reconciler,
		records:    records,
		audits:     audits,
		catalog:    catalog,
		logger:     logger,
	}
}

// RegisterInventoryListener appends a listener to the executor's collection.
// Listeners must be registered at wiring time, before commands are executed;
// the collection is read-only afterwards.
func (s *InventoryService) RegisterInventoryListener(listener InventoryListener) {
	s.executor.listeners = append(s.executor.listeners, listener)
}

// GetInventory returns the record snapshot for a key, or shared.ErrNotFound
// when no record exists. Always-available SKUs may legitimately have no
// record both before and after commands.
func (s *InventoryService) GetInventory(ctx context.Context, skuCode string, warehouseID int64) (*inventory.InventorySnapshot, error) {
	record, err := s.records.FindBySKUAndWarehouse(ctx, skuCode, warehouseID)
	if err != nil {
		return nil, err
	}
	snapshot := record.Snapshot()
	return &snapshot, nil
}

// SaveOrUpdate persists the record as given, without a ledger command. It is
// the administrative escape hatch for non-quantity maintenance (reorder
// thresholds, restock dates); quantity changes belong in Merge or
// ProcessInventoryUpdate so the audit trail stays replayable.
func (s *InventoryService) SaveOrUpdate(ctx context.Context, record *inventory.InventoryRecord) error {
	if record == nil {
		return shared.NewDomainError("INVALID_RECORD", "Inventory record cannot be nil")
	}
	return s.records.Save(ctx, record)
}

// Merge reconciles an absolute snapshot with the stored record, replaying the
// difference through the executor
func (s *InventoryService) Merge(ctx context.Context, req MergeRequest) (*inventory.InventorySnapshot, error) {
	return s.reconciler.Merge(ctx, req)
}

// ProcessInventoryUpdate builds the command for an external event type and
// executes it. Unknown event types are a programming error and fail with
// shared.ErrUnknownEventType.
func (s *InventoryService) ProcessInventoryUpdate(
	ctx context.Context,
	skuCode string,
	warehouseID int64,
	eventType string,
	quantity int64,
	reason string,
	originator string,
	orderReference string,
) (*inventory.ExecutionResult, error) {
	cmd, err := inventory.CommandForEventType(eventType, quantity)
	if err != nil {
		return nil, err
	}
	return s.executor.Execute(ctx, skuCode, warehouseID, cmd, CommandOptions{
		Reason:         reason,
		Originator:     originator,
		OrderReference: orderReference,
	})
}

// HasSufficientInventory reports whether the requested quantity could be
// allocated for the SKU right now under its availability policy
func (s *InventoryService) HasSufficientInventory(ctx context.Context, skuCode string, warehouseID int64, quantity int64) (bool, error) {
	if quantity <= 0 {
		return false, shared.ErrInvalidQuantity
	}

	avail, err := s.catalog.ResolveAvailability(ctx, skuCode)
	if err != nil {
		return false, err
	}
	policy := inventory.PolicyFor(avail.Criteria)

	var record *inventory.InventoryRecord
	if avail.Criteria == inventory.AvailabilityWhenInStock {
		record, err = s.records.FindBySKUAndWarehouse(ctx, skuCode, warehouseID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return false, err
		}
	}
	return policy.HasSufficientInventory(record, quantity), nil
}

// GetAvailableInStockQty returns the available-to-sell quantity for a key;
// a missing record counts as zero
func (s *InventoryService) GetAvailableInStockQty(ctx context.Context, skuCode string, warehouseID int64) (int64, error) {
	record, err := s.records.FindBySKUAndWarehouse(ctx, skuCode, warehouseID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return record.AvailableQuantityInStock(), nil
}

// FindLowStockInventories returns the records among the given SKUs whose
// available quantity has reached their reorder minimum
func (s *InventoryService) FindLowStockInventories(ctx context.Context, skuCodes []string, warehouseID int64) ([]inventory.InventorySnapshot, error) {
	records, err := s.records.FindLowStock(ctx, skuCodes, warehouseID)
	if err != nil {
		return nil, err
	}
	snapshots := make([]inventory.InventorySnapshot, 0, len(records))
	for i := range records {
		snapshots = append(snapshots, records[i].Snapshot())
	}
	return snapshots, nil
}

// GetAuditTrail returns the append-only audit trail for a key in application order
func (s *InventoryService) GetAuditTrail(ctx context.Context, skuCode string, warehouseID int64) ([]inventory.InventoryAudit, error) {
	return s.audits.FindBySKUAndWarehouse(ctx, skuCode, warehouseID)
}
