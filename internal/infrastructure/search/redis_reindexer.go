// Package search contains the sink that hands product IDs to the search
// pipeline for reindexing.
package search

import (
	"context"
	"fmt"
	"time"

	appinv "github.com/commercekit/inventory/internal/application/inventory"
	"github.com/commercekit/inventory/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisReindexNotifier pushes product IDs onto a Redis list consumed by the
// search indexing workers. This is suitable for distributed deployments where
// the indexer runs as a separate process.
type RedisReindexNotifier struct {
	client   *redis.Client
	queueKey string
}

// NewRedisReindexNotifier creates a notifier with its own Redis client
func NewRedisReindexNotifier(cfg config.RedisConfig, queueKey string) (*RedisReindexNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReindexNotifier{client: client, queueKey: queueKey}, nil
}

// NewRedisReindexNotifierWithClient creates a notifier with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisReindexNotifierWithClient(client *redis.Client, queueKey string) *RedisReindexNotifier {
	return &RedisReindexNotifier{client: client, queueKey: queueKey}
}

// Notify enqueues a product for reindexing
func (n *RedisReindexNotifier) Notify(ctx context.Context, productID uuid.UUID) error {
	if err := n.client.LPush(ctx, n.queueKey, productID.String()).Err(); err != nil {
		return fmt.Errorf("failed to enqueue product for reindex: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (n *RedisReindexNotifier) Close() error {
	return n.client.Close()
}

// Ensure RedisReindexNotifier implements ReindexNotifier
var _ appinv.ReindexNotifier = (*RedisReindexNotifier)(nil)

// NoopReindexNotifier discards reindex notifications. Used when no search
// pipeline is wired.
type NoopReindexNotifier struct{}

// Notify does nothing
func (NoopReindexNotifier) Notify(context.Context, uuid.UUID) error { return nil }

// Ensure NoopReindexNotifier implements ReindexNotifier
var _ appinv.ReindexNotifier = NoopReindexNotifier{}
