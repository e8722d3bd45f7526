package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/commercekit/inventory/internal/domain/inventory"
	"github.com/commercekit/inventory/internal/domain/shared"
	"github.com/commercekit/inventory/internal/infrastructure/lock"
	"go.uber.org/zap"
)

const (
	// DefaultMaxRetries bounds how often a command is retried after an
	// optimistic version conflict before the conflict surfaces to the caller
	DefaultMaxRetries = 3
)

// CommandOptions carries the audit metadata for one command
type CommandOptions struct {
	Reason         string
	Originator     string
	OrderReference string
}

// CommandExecutor resolves a SKU's availability policy, applies one command
// against the locked inventory record, and persists the updated record
// together with exactly one audit row as a single atomic unit. Side effects
// (availability-flip events, new-stock listener callbacks) fire only after
// the transaction commits.
type CommandExecutor struct {
	scope      TransactionScope
	catalog    inventory.CatalogLookup
	keys       *lock.KeyedMutex
	publisher  shared.EventPublisher
	listeners  []InventoryListener
	logger     *zap.Logger
	maxRetries int
}

// NewCommandExecutor creates a CommandExecutor. The listener collection is
// fixed at construction; publisher may be nil when no event consumers are
// wired.
func NewCommandExecutor(
	scope TransactionScope,
	catalog inventory.CatalogLookup,
	publisher shared.EventPublisher,
	listeners []InventoryListener,
	logger *zap.Logger,
) *CommandExecutor {
	return &CommandExecutor{
		scope:      scope,
		catalog:    catalog,
		keys:       lock.NewKeyedMutex(),
		publisher:  publisher,
		listeners:  listeners,
		logger:     logger,
		maxRetries: DefaultMaxRetries,
	}
}

// WithMaxRetries overrides the bounded retry count for version conflicts
func (e *CommandExecutor) WithMaxRetries(n int) *CommandExecutor {
	if n > 0 {
		e.maxRetries = n
	}
	return e
}

// commandOutcome collects per-attempt state that outlives the transaction
type commandOutcome struct {
	result          *inventory.ExecutionResult
	record          *inventory.InventoryRecord
	availableBefore int64
	noop            bool
}

// Execute applies one stock-changing command for a key. On any failure no
// audit row is written and the record is unchanged.
func (e *CommandExecutor) Execute(
	ctx context.Context,
	skuCode string,
	warehouseID int64,
	cmd inventory.Command,
	opts CommandOptions,
) (*inventory.ExecutionResult, error) {
	if cmd == nil {
		return nil, shared.ErrUnknownEventType
	}
	if skuCode == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU code cannot be empty")
	}
	if warehouseID <= 0 {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID must be positive")
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	avail, err := e.catalog.ResolveAvailability(ctx, skuCode)
	if err != nil {
		return nil, err
	}
	policy := inventory.PolicyFor(avail.Criteria)

	// Always-available SKUs keep no ledger: the command succeeds without
	// touching storage and no audit row is written.
	if avail.Criteria == inventory.AvailabilityAlwaysAvailable {
		applied, err := policy.Apply(nil, cmd)
		if err != nil {
			return nil, err
		}
		e.logger.Debug("command applied as no-op for always-available sku",
			zap.String("sku_code", skuCode),
			zap.Int64("warehouse_id", warehouseID),
			zap.String("event_type", cmd.EventType().String()),
		)
		return &inventory.ExecutionResult{AppliedQuantity: applied}, nil
	}

	// All reads and writes for one key are linearized: the keyed mutex covers
	// in-process callers, the version check in SaveWithLock covers external
	// writers. Distinct keys proceed fully in parallel.
	unlock := e.keys.Lock(recordKey(skuCode, warehouseID))
	defer unlock()

	var outcome *commandOutcome
	for attempt := 0; ; attempt++ {
		outcome = &commandOutcome{}
		err = e.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			return e.applyInTransaction(ctx, repos, skuCode, warehouseID, policy, cmd, opts, outcome)
		})
		if err == nil || !errors.Is(err, shared.ErrConcurrencyConflict) {
			break
		}
		if attempt >= e.maxRetries {
			e.logger.Error("inventory command exhausted version-conflict retries",
				zap.String("sku_code", skuCode),
				zap.Int64("warehouse_id", warehouseID),
				zap.String("event_type", cmd.EventType().String()),
				zap.Int("attempts", attempt+1),
			)
			break
		}
		e.logger.Warn("inventory command hit a version conflict, retrying",
			zap.String("sku_code", skuCode),
			zap.Int64("warehouse_id", warehouseID),
			zap.Int("attempt", attempt+1),
		)
	}
	if err != nil {
		return nil, err
	}

	e.afterCommit(ctx, skuCode, warehouseID, avail, cmd, outcome)
	return outcome.result, nil
}

// applyInTransaction loads (or lazily creates) the record, delegates the
// numeric effect to the policy, and persists record plus audit row in the
// surrounding transaction.
func (e *CommandExecutor) applyInTransaction(
	ctx context.Context,
	repos TransactionalRepositories,
	skuCode string,
	warehouseID int64,
	policy inventory.AvailabilityPolicy,
	cmd inventory.Command,
	opts CommandOptions,
	out *commandOutcome,
) error {
	records := repos.Records()

	record, err := records.FindBySKUAndWarehouse(ctx, skuCode, warehouseID)
	created := false
	switch {
	case err == nil:
	case errors.Is(err, shared.ErrNotFound):
		switch cmd.(type) {
		case inventory.AdjustCommand, inventory.AllocateCommand:
			// Records are created lazily on their first stock-bearing command
			record, err = inventory.NewInventoryRecord(skuCode, warehouseID)
			if err != nil {
				return err
			}
			created = true
		default:
			// Deallocate/Release/Delete against a missing record is a lenient
			// zero-effect, matching the clamping semantics of the commands.
			e.logger.Warn("command against missing inventory record is a no-op",
				zap.String("sku_code", skuCode),
				zap.Int64("warehouse_id", warehouseID),
				zap.String("event_type", cmd.EventType().String()),
			)
			out.noop = true
			out.result = &inventory.ExecutionResult{}
			return nil
		}
	default:
		return err
	}

	out.availableBefore = record.AvailableQuantityInStock()
	onHandBefore := record.QuantityOnHand
	allocatedBefore := record.AllocatedQuantity

	applied, err := policy.Apply(record, cmd)
	if err != nil {
		return err
	}

	if _, isDelete := cmd.(inventory.DeleteCommand); isDelete {
		// The terminal row negates the state at deletion time so that replaying
		// the full trail still sums to the (now zero) quantities.
		audit, err := inventory.NewInventoryAudit(
			skuCode, warehouseID, inventory.EventTypeDelete,
			0, -onHandBefore, -allocatedBefore, 0, 0,
		)
		if err != nil {
			return err
		}
		audit.WithReason(opts.Reason).WithOriginator(opts.Originator).WithOrderReference(opts.OrderReference)

		if err := records.Delete(ctx, skuCode, warehouseID); err != nil {
			return err
		}
		if err := repos.Audits().Append(ctx, audit); err != nil {
			return err
		}
		record.AddDomainEvent(inventory.NewRecordDeletedEvent(record))
		out.record = record
		out.result = &inventory.ExecutionResult{}
		return nil
	}

	audit, err := inventory.NewInventoryAudit(
		skuCode, warehouseID, cmd.EventType(),
		applied,
		record.QuantityOnHand-onHandBefore,
		record.AllocatedQuantity-allocatedBefore,
		record.QuantityOnHand,
		record.AllocatedQuantity,
	)
	if err != nil {
		return err
	}
	audit.WithReason(opts.Reason).WithOriginator(opts.Originator).WithOrderReference(opts.OrderReference)

	if created {
		if err := records.Create(ctx, record); err != nil {
			return err
		}
	} else if err := records.SaveWithLock(ctx, record); err != nil {
		return err
	}
	if err := repos.Audits().Append(ctx, audit); err != nil {
		return err
	}

	snapshot := record.Snapshot()
	out.record = record
	out.result = &inventory.ExecutionResult{AppliedQuantity: applied, Inventory: &snapshot}
	return nil
}

// afterCommit publishes domain events, detects availability flips for the
// in-stock policy, and wakes new-stock listeners. Runs only after the
// transaction has committed.
func (e *CommandExecutor) afterCommit(
	ctx context.Context,
	skuCode string,
	warehouseID int64,
	avail inventory.SKUAvailability,
	cmd inventory.Command,
	out *commandOutcome,
) {
	if out.noop || out.record == nil {
		return
	}

	if e.publisher != nil {
		if events := out.record.GetDomainEvents(); len(events) > 0 {
			_ = e.publisher.Publish(ctx, events...)
		}
		out.record.ClearDomainEvents()
	}

	if avail.Criteria == inventory.AvailabilityWhenInStock && e.publisher != nil {
		threshold := avail.OutOfStockThreshold()
		var availableAfter int64 // deleted records count as fully out of stock
		if out.result.Inventory != nil {
			availableAfter = out.result.Inventory.AvailableQuantityInStock
		}
		outOfStockBefore := out.availableBefore < threshold
		outOfStockAfter := availableAfter < threshold
		if outOfStockBefore != outOfStockAfter {
			_ = e.publisher.Publish(ctx, inventory.NewAvailabilityChangedEvent(
				out.record.ID,
				skuCode,
				warehouseID,
				avail.ProductID,
				avail.MinOrderQuantity,
				out.availableBefore,
				availableAfter,
				outOfStockAfter,
			))
		}
	}

	if adjust, ok := cmd.(inventory.AdjustCommand); ok && adjust.Delta > 0 {
		for _, listener := range e.listeners {
			listener.OnNewStock(ctx, skuCode, warehouseID)
		}
	}
}

func recordKey(skuCode string, warehouseID int64) string {
	return fmt.Sprintf("%s#%d", skuCode, warehouseID)
}
