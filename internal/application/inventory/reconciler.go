package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/commercekit/inventory/internal/domain/inventory"
	"github.com/commercekit/inventory/internal/domain/shared"
	"go.uber.org/zap"
)

const reconciliationReason = "inventory reconciliation"

// MergeRequest is an externally supplied absolute snapshot for one key
type MergeRequest struct {
	SKUCode           string
	WarehouseID       int64
	QuantityOnHand    int64
	AllocatedQuantity int64
	ReorderMinimum    int64
	ReorderQuantity   int64
	RestockDate       *time.Time
	Originator        string
}

// Reconciler converts absolute snapshots into signed deltas replayed through
// the command executor. A blind overwrite would bypass the audit trail and
// the availability-flip and new-stock side effects; replaying keeps the
// audit-replay invariant intact.
type Reconciler struct {
	executor *CommandExecutor
	scope    TransactionScope
	logger   *zap.Logger
}

// NewReconciler creates a Reconciler
func NewReconciler(executor *CommandExecutor, scope TransactionScope, logger *zap.Logger) *Reconciler {
	return &Reconciler{executor: executor, scope: scope, logger: logger}
}

// Merge reconciles the stored record with the supplied snapshot: one signed
// adjustment for physical stock, one allocate or deallocate for the
// reservation, both replayed through the executor, then the non-quantity
// fields are written. A missing record is treated as a zero baseline. A
// negative allocated quantity in the snapshot is rejected.
func (r *Reconciler) Merge(ctx context.Context, req MergeRequest) (*inventory.InventorySnapshot, error) {
	if req.AllocatedQuantity < 0 {
		return nil, shared.ErrInvalidQuantity
	}

	var baselineOnHand, baselineAllocated int64
	err := r.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.Records().FindBySKUAndWarehouse(ctx, req.SKUCode, req.WarehouseID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil
			}
			return err
		}
		baselineOnHand = record.QuantityOnHand
		baselineAllocated = record.AllocatedQuantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	opts := CommandOptions{Reason: reconciliationReason, Originator: req.Originator}

	if delta := req.QuantityOnHand - baselineOnHand; delta != 0 {
		if _, err := r.executor.Execute(ctx, req.SKUCode, req.WarehouseID, inventory.AdjustCommand{Delta: delta}, opts); err != nil {
			return nil, err
		}
	}
	if delta := req.AllocatedQuantity - baselineAllocated; delta > 0 {
		if _, err := r.executor.Execute(ctx, req.SKUCode, req.WarehouseID, inventory.AllocateCommand{Quantity: delta}, opts); err != nil {
			return nil, err
		}
	} else if delta < 0 {
		if _, err := r.executor.Execute(ctx, req.SKUCode, req.WarehouseID, inventory.DeallocateCommand{Quantity: -delta}, opts); err != nil {
			return nil, err
		}
	}

	var snapshot inventory.InventorySnapshot
	err = r.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		records := repos.Records()
		record, err := records.FindBySKUAndWarehouse(ctx, req.SKUCode, req.WarehouseID)
		if errors.Is(err, shared.ErrNotFound) {
			// Snapshot matched the zero baseline with no deltas to replay;
			// create the row so the non-quantity fields have a home.
			record, err = inventory.NewInventoryRecord(req.SKUCode, req.WarehouseID)
			if err != nil {
				return err
			}
			record.ReorderMinimum = req.ReorderMinimum
			record.ReorderQuantity = req.ReorderQuantity
			record.RestockDate = req.RestockDate
			if err := records.Create(ctx, record); err != nil {
				return err
			}
			snapshot = record.Snapshot()
			return nil
		}
		if err != nil {
			return err
		}

		record.ReorderMinimum = req.ReorderMinimum
		record.ReorderQuantity = req.ReorderQuantity
		record.RestockDate = req.RestockDate
		record.UpdatedAt = time.Now()
		record.IncrementVersion()
		if err := records.SaveWithLock(ctx, record); err != nil {
			return err
		}
		snapshot = record.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("inventory snapshot reconciled",
		zap.String("sku_code", req.SKUCode),
		zap.Int64("warehouse_id", req.WarehouseID),
		zap.Int64("quantity_on_hand", snapshot.QuantityOnHand),
		zap.Int64("allocated_quantity", snapshot.AllocatedQuantity),
	)
	return &snapshot, nil
}
