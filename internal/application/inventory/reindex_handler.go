package inventory

import (
	"context"
	"fmt"

	"github.com/commercekit/inventory/internal/domain/inventory"
	"github.com/commercekit/inventory/internal/domain/shared"
	"go.uber.org/zap"
)

// ReindexOnAvailabilityChangeHandler forwards availability transitions to the
// search reindex sink. The executor emits exactly one AvailabilityChanged
// event per transition, so the product is reindexed exactly once per flip.
type ReindexOnAvailabilityChangeHandler struct {
	notifier ReindexNotifier
	logger   *zap.Logger
}

// NewReindexOnAvailabilityChangeHandler creates the handler
func NewReindexOnAvailabilityChangeHandler(notifier ReindexNotifier, logger *zap.Logger) *ReindexOnAvailabilityChangeHandler {
	return &ReindexOnAvailabilityChangeHandler{notifier: notifier, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *ReindexOnAvailabilityChangeHandler) EventTypes() []string {
	return []string{inventory.EventNameAvailabilityChanged}
}

// Handle forwards one availability transition to the reindex sink
func (h *ReindexOnAvailabilityChangeHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*inventory.AvailabilityChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventNameAvailabilityChanged, event.EventType())
	}

	h.logger.Info("availability changed, reindexing product",
		zap.String("sku_code", changed.SKUCode),
		zap.Int64("warehouse_id", changed.WarehouseID),
		zap.String("product_id", changed.ProductID.String()),
		zap.Int64("available_before", changed.AvailableBefore),
		zap.Int64("available_after", changed.AvailableAfter),
		zap.Bool("out_of_stock", changed.OutOfStock),
	)

	return h.notifier.Notify(ctx, changed.ProductID)
}

// Ensure the handler implements shared.EventHandler
var _ shared.EventHandler = (*ReindexOnAvailabilityChangeHandler)(nil)
