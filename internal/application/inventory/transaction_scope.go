package inventory

import (
	"context"

	"github.com/commercekit/inventory/internal/domain/inventory"
)

// TransactionScope provides transactional access to the ledger repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. This is what guarantees a record update and its audit row
// are one all-or-nothing unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the ledger repositories within
// a transaction. All repositories returned share the same underlying database
// transaction.
type TransactionalRepositories interface {
	// Records returns the inventory record repository scoped to the current transaction
	Records() inventory.InventoryRecordRepository
	// Audits returns the audit repository scoped to the current transaction
	Audits() inventory.InventoryAuditRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests and for stores that are atomic on their own.
type NoOpTransactionScope struct {
	records inventory.InventoryRecordRepository
	audits  inventory.InventoryAuditRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	records inventory.InventoryRecordRepository,
	audits inventory.InventoryAuditRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{records: records, audits: audits}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Records returns the inventory record repository.
func (s *NoOpTransactionScope) Records() inventory.InventoryRecordRepository {
	return s.records
}

// Audits returns the audit repository.
func (s *NoOpTransactionScope) Audits() inventory.InventoryAuditRepository {
	return s.audits
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
