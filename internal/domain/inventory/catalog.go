package inventory

import (
	"context"

	"github.com/google/uuid"
)

// SKUAvailability is the slice of the product catalog the ledger needs:
// the availability policy gating sale and the minimum orderable quantity.
type SKUAvailability struct {
	ProductID        uuid.UUID
	Criteria         AvailabilityCriteria
	MinOrderQuantity int64
}

// OutOfStockThreshold returns the available quantity below which the SKU
// counts as out of stock. A zero minimum order quantity still means one unit
// must be orderable.
func (a SKUAvailability) OutOfStockThreshold() int64 {
	if a.MinOrderQuantity > 1 {
		return a.MinOrderQuantity
	}
	return 1
}

// CatalogLookup resolves a SKU's availability policy from the product catalog.
// The catalog is an opaque read-only collaborator: nothing beyond availability
// and minimum order quantity is consumed here.
type CatalogLookup interface {
	ResolveAvailability(ctx context.Context, skuCode string) (SKUAvailability, error)
}
