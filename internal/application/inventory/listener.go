package inventory

import (
	"context"

	"github.com/google/uuid"
)

// InventoryListener is notified after stock physically arrives for a key.
// Listeners wake deferred fulfilment for pre-order and back-order demand.
// The listener collection is injected at construction and must not be
// modified once commands are being executed.
type InventoryListener interface {
	OnNewStock(ctx context.Context, skuCode string, warehouseID int64)
}

// ReindexNotifier is the sink for search reindex notifications. One
// notification is emitted per availability transition of a product.
type ReindexNotifier interface {
	Notify(ctx context.Context, productID uuid.UUID) error
}
