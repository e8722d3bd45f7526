package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/commercekit/inventory/internal/domain/inventory"
	"github.com/commercekit/inventory/internal/domain/shared"
)

// memoryStore is an in-memory stand-in for the persistence layer. It applies
// the same optimistic-locking contract as the GORM repositories so executor
// behavior under version conflicts is observable in tests.
type memoryStore struct {
	mu      sync.Mutex
	records map[string]inventory.InventoryRecord
	audits  []inventory.InventoryAudit
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: make(map[string]inventory.InventoryRecord)}
}

func storeKey(skuCode string, warehouseID int64) string {
	return fmt.Sprintf("%s#%d", skuCode, warehouseID)
}

// Records returns the record repository view of the store
func (s *memoryStore) Records() inventory.InventoryRecordRepository {
	return &memoryRecordRepository{store: s}
}

// Audits returns the audit repository view of the store
func (s *memoryStore) Audits() inventory.InventoryAuditRepository {
	return &memoryAuditRepository{store: s}
}

// Execute satisfies TransactionScope. The store is mutated in place, so
// rollback on error is not simulated; tests that need failure atomicity
// assert on the error paths before any write happens.
func (s *memoryStore) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *memoryStore) auditTrail(skuCode string, warehouseID int64) []inventory.InventoryAudit {
	s.mu.Lock()
	defer s.mu.Unlock()

	var trail []inventory.InventoryAudit
	for _, audit := range s.audits {
		if audit.SKUCode == skuCode && audit.WarehouseID == warehouseID {
			trail = append(trail, audit)
		}
	}
	return trail
}

type memoryRecordRepository struct {
	store *memoryStore
}

func (r *memoryRecordRepository) FindBySKUAndWarehouse(_ context.Context, skuCode string, warehouseID int64) (*inventory.InventoryRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.records[storeKey(skuCode, warehouseID)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	record := stored
	return &record, nil
}

func (r *memoryRecordRepository) FindLowStock(_ context.Context, skuCodes []string, warehouseID int64) ([]inventory.InventoryRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []inventory.InventoryRecord
	for _, skuCode := range skuCodes {
		if stored, ok := r.store.records[storeKey(skuCode, warehouseID)]; ok && stored.IsLowStock() {
			result = append(result, stored)
		}
	}
	return result, nil
}

func (r *memoryRecordRepository) Create(_ context.Context, record *inventory.InventoryRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := storeKey(record.SKUCode, record.WarehouseID)
	if _, ok := r.store.records[key]; ok {
		return shared.ErrAlreadyExists
	}
	r.store.records[key] = *record
	return nil
}

func (r *memoryRecordRepository) Save(_ context.Context, record *inventory.InventoryRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.records[storeKey(record.SKUCode, record.WarehouseID)] = *record
	return nil
}

func (r *memoryRecordRepository) SaveWithLock(_ context.Context, record *inventory.InventoryRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := storeKey(record.SKUCode, record.WarehouseID)
	stored, ok := r.store.records[key]
	if !ok || stored.Version != record.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	r.store.records[key] = *record
	return nil
}

func (r *memoryRecordRepository) Delete(_ context.Context, skuCode string, warehouseID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := storeKey(skuCode, warehouseID)
	if _, ok := r.store.records[key]; !ok {
		return shared.ErrNotFound
	}
	delete(r.store.records, key)
	return nil
}

type memoryAuditRepository struct {
	store *memoryStore
}

func (r *memoryAuditRepository) Append(_ context.Context, audit *inventory.InventoryAudit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.audits = append(r.store.audits, *audit)
	return nil
}

func (r *memoryAuditRepository) FindBySKUAndWarehouse(_ context.Context, skuCode string, warehouseID int64) ([]inventory.InventoryAudit, error) {
	return r.store.auditTrail(skuCode, warehouseID), nil
}

// fakeCatalog resolves availability from a fixed map; unknown SKUs fall back
// to the in-stock policy like the real catalog lookup.
type fakeCatalog struct {
	entries map[string]inventory.SKUAvailability
}

func (c *fakeCatalog) ResolveAvailability(_ context.Context, skuCode string) (inventory.SKUAvailability, error) {
	if avail, ok := c.entries[skuCode]; ok {
		return avail, nil
	}
	return inventory.SKUAvailability{
		Criteria:         inventory.AvailabilityWhenInStock,
		MinOrderQuantity: 1,
	}, nil
}

// capturePublisher records every published event
type capturePublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *capturePublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, events...)
	return nil
}

func (p *capturePublisher) eventsOfType(eventType string) []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	var matched []shared.DomainEvent
	for _, event := range p.events {
		if event.EventType() == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

// countingListener records new-stock notifications
type countingListener struct {
	mu    sync.Mutex
	calls []string
}

func (l *countingListener) OnNewStock(_ context.Context, skuCode string, warehouseID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls = append(l.calls, storeKey(skuCode, warehouseID))
}

func (l *countingListener) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

// conflictingScope wraps a scope and forces SaveWithLock to fail with a
// version conflict a fixed number of times
type conflictingScope struct {
	inner     TransactionScope
	remaining int
	mu        sync.Mutex
}

func (s *conflictingScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return s.inner.Execute(ctx, func(repos TransactionalRepositories) error {
		return fn(&conflictingRepositories{inner: repos, scope: s})
	})
}

type conflictingRepositories struct {
	inner TransactionalRepositories
	scope *conflictingScope
}

func (r *conflictingRepositories) Records() inventory.InventoryRecordRepository {
	return &conflictingRecords{InventoryRecordRepository: r.inner.Records(), scope: r.scope}
}

func (r *conflictingRepositories) Audits() inventory.InventoryAuditRepository {
	return r.inner.Audits()
}

type conflictingRecords struct {
	inventory.InventoryRecordRepository
	scope *conflictingScope
}

func (r *conflictingRecords) SaveWithLock(ctx context.Context, record *inventory.InventoryRecord) error {
	r.scope.mu.Lock()
	if r.scope.remaining > 0 {
		r.scope.remaining--
		r.scope.mu.Unlock()
		return shared.ErrConcurrencyConflict
	}
	r.scope.mu.Unlock()
	return r.InventoryRecordRepository.SaveWithLock(ctx, record)
}
