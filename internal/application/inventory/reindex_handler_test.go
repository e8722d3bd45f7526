package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/commercekit/inventory/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captureNotifier struct {
	mu       sync.Mutex
	notified []uuid.UUID
	err      error
}

func (n *captureNotifier) Notify(_ context.Context, productID uuid.UUID) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.err != nil {
		return n.err
	}
	n.notified = append(n.notified, productID)
	return nil
}

func TestReindexOnAvailabilityChangeHandler_EventTypes(t *testing.T) {
	handler := NewReindexOnAvailabilityChangeHandler(&captureNotifier{}, zap.NewNop())

	assert.Equal(t, []string{inventory.EventNameAvailabilityChanged}, handler.EventTypes())
}

func TestReindexOnAvailabilityChangeHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards the product to the reindex sink", func(t *testing.T) {
		notifier := &captureNotifier{}
		handler := NewReindexOnAvailabilityChangeHandler(notifier, zap.NewNop())
		productID := uuid.New()
		event := inventory.NewAvailabilityChangedEvent(uuid.New(), "SKU-001", 1, productID, 1, 0, 5, false)

		err := handler.Handle(ctx, event)

		require.NoError(t, err)
		require.Len(t, notifier.notified, 1)
		assert.Equal(t, productID, notifier.notified[0])
	})

	t.Run("rejects unexpected event types", func(t *testing.T) {
		notifier := &captureNotifier{}
		handler := NewReindexOnAvailabilityChangeHandler(notifier, zap.NewNop())
		record, err := inventory.NewInventoryRecord("SKU-001", 1)
		require.NoError(t, err)

		err = handler.Handle(ctx, inventory.NewRecordDeletedEvent(record))

		assert.Error(t, err)
		assert.Empty(t, notifier.notified)
	})

	t.Run("propagates notifier failures", func(t *testing.T) {
		notifier := &captureNotifier{err: assert.AnError}
		handler := NewReindexOnAvailabilityChangeHandler(notifier, zap.NewNop())
		event := inventory.NewAvailabilityChangedEvent(uuid.New(), "SKU-001", 1, uuid.New(), 1, 5, 0, true)

		err := handler.Handle(ctx, event)

		assert.Equal(t, assert.AnError, err)
	})
}
