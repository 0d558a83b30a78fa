package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The order store is the saga's only shared mutable resource; every
// read-modify-persist sequence for the same order id must be serialized,
// which is what GetForUpdate provides inside a unit of work transaction.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate by id with a row lock held for
	// the remainder of the surrounding transaction, serializing concurrent
	// confirmation and compensation handlers for the same order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByOwner retrieves all orders submitted by the given owner.
	GetByOwner(ctx context.Context, ownerID string) ([]*order.Order, error)

	// GetSubmittedBefore retrieves orders still in Submitted status created
	// before the given cutoff. Used by the deadline sweep to find orders
	// whose legs went silent.
	GetSubmittedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
