package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/ports"
)

// SweepOverdueOrdersCommandHandler escalates orders whose legs went silent.
// The saga itself has no timeout: once the leg requests are published they are
// fire-and-forget, and a downstream system that never confirms would leave the
// order Submitted forever. The sweep finds Submitted orders older than the
// deadline and publishes a compensation request for each, reusing the normal
// compensation path instead of mutating orders directly.
type SweepOverdueOrdersCommandHandler struct {
	uowFactory  OrderUoWFactory
	compensator ports.CompensationRequester
	logger      *slog.Logger
}

// NewSweepOverdueOrdersCommandHandler creates a handler for deadline sweeps.
func NewSweepOverdueOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	compensator ports.CompensationRequester,
	logger *slog.Logger,
) SweepOverdueOrdersCommandHandler {
	return SweepOverdueOrdersCommandHandler{
		uowFactory:  uowFactory,
		compensator: compensator,
		logger:      logger.With("component", "sweep_overdue_orders_handler"),
	}
}

// Handle finds overdue Submitted orders and escalates each to compensation.
// Escalation failures are logged per order and do not stop the sweep; the next
// run picks the order up again.
func (h *SweepOverdueOrdersCommandHandler) Handle(ctx context.Context, cmd SweepOverdueOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cutoff := time.Now().UTC().Add(-cmd.Deadline())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	overdue, err := uow.OrderRepository().GetSubmittedBefore(ctx, cutoff)

	// Read-only transaction, nothing to commit.
	_ = uow.Rollback(ctx)

	if err != nil {
		return err
	}

	if len(overdue) == 0 {
		return nil
	}

	h.logger.InfoContext(ctx, "Escalating overdue orders to compensation",
		"count", len(overdue), "deadline", cmd.Deadline().String())

	for _, aggregate := range overdue {
		orderID := aggregate.ID()
		if err = h.compensator.RequestCompensation(ctx, orderID.String()); err != nil {
			h.logger.ErrorContext(ctx, "Failed to escalate overdue order",
				"order_id", orderID.String(), "error", err)
		}
	}

	return nil
}
