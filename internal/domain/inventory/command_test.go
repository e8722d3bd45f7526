package inventory

import (
	"testing"

	"github.com/commercekit/inventory/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventType_IsValid(t *testing.T) {
	valid := []EventType{
		EventTypeAdjustment,
		EventTypeAllocate,
		EventTypeDeallocate,
		EventTypeRelease,
		EventTypeDelete,
	}
	for _, eventType := range valid {
		t.Run(eventType.String(), func(t *testing.T) {
			assert.True(t, eventType.IsValid())
		})
	}

	t.Run("rejects unknown event type", func(t *testing.T) {
		assert.False(t, EventType("RESTOCK").IsValid())
		assert.False(t, EventType("").IsValid())
	})
}

func TestCommandValidate(t *testing.T) {
	negativeCost := decimal.NewFromInt(-1)

	tests := []struct {
		name    string
		cmd     Command
		wantErr bool
	}{
		{"adjust with positive delta", AdjustCommand{Delta: 10}, false},
		{"adjust with negative delta", AdjustCommand{Delta: -10}, false},
		{"adjust with zero delta", AdjustCommand{Delta: 0}, true},
		{"adjust with negative cost", AdjustCommand{Delta: 10, UnitCost: &negativeCost}, true},
		{"allocate with positive quantity", AllocateCommand{Quantity: 5}, false},
		{"allocate with zero quantity", AllocateCommand{Quantity: 0}, true},
		{"allocate with negative quantity", AllocateCommand{Quantity: -5}, true},
		{"deallocate with positive quantity", DeallocateCommand{Quantity: 5}, false},
		{"deallocate with zero quantity", DeallocateCommand{Quantity: 0}, true},
		{"release with positive quantity", ReleaseCommand{Quantity: 5}, false},
		{"release with negative quantity", ReleaseCommand{Quantity: -5}, true},
		{"delete", DeleteCommand{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommandForEventType(t *testing.T) {
	t.Run("builds adjust command with signed quantity", func(t *testing.T) {
		cmd, err := CommandForEventType("ADJUSTMENT", -5)

		require.NoError(t, err)
		adjust, ok := cmd.(AdjustCommand)
		require.True(t, ok)
		assert.Equal(t, int64(-5), adjust.Delta)
	})

	t.Run("builds allocate command", func(t *testing.T) {
		cmd, err := CommandForEventType("ALLOCATE", 10)

		require.NoError(t, err)
		allocate, ok := cmd.(AllocateCommand)
		require.True(t, ok)
		assert.Equal(t, int64(10), allocate.Quantity)
	})

	t.Run("builds deallocate command", func(t *testing.T) {
		cmd, err := CommandForEventType("DEALLOCATE", 10)

		require.NoError(t, err)
		_, ok := cmd.(DeallocateCommand)
		assert.True(t, ok)
	})

	t.Run("builds release command", func(t *testing.T) {
		cmd, err := CommandForEventType("RELEASE", 10)

		require.NoError(t, err)
		_, ok := cmd.(ReleaseCommand)
		assert.True(t, ok)
	})

	t.Run("builds delete command ignoring quantity", func(t *testing.T) {
		cmd, err := CommandForEventType("DELETE", 999)

		require.NoError(t, err)
		_, ok := cmd.(DeleteCommand)
		assert.True(t, ok)
	})

	t.Run("rejects unknown event type", func(t *testing.T) {
		cmd, err := CommandForEventType("RESTOCK", 1)

		assert.Equal(t, shared.ErrUnknownEventType, err)
		assert.Nil(t, cmd)
	})
}
