package ports

import (
	"context"

	"logistics/internal/core/domain/model/order"
)

// LegRequestPublisher publishes outbound leg-request messages at order intake:
// one message per downstream leg, each carrying the full order record.
// Publishing is a single best-effort attempt; once a message is on the bus the
// leg request is fire-and-forget from the orchestrator's perspective.
type LegRequestPublisher interface {
	// PublishLegRequest publishes the order to the routing key of one leg.
	PublishLegRequest(ctx context.Context, leg order.Leg, aggregate *order.Order) error
}

// CompensationRequester publishes a compensation request for an order, keyed
// by order id. It is used by the reconciler when lookup retries exhaust and by
// the deadline sweep when an order's legs go silent.
type CompensationRequester interface {
	RequestCompensation(ctx context.Context, orderID string) error
}
