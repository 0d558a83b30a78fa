package commands

import (
	"context"
	"errors"
	"log/slog"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// CompensateOrderCommandHandler consumes compensation requests and drives the
// affected order to the terminal Failed state, marking every leg failed
// regardless of prior individual successes.
//
// This is a blunt, idempotent, order-level rollback. It does not attempt to
// undo work already performed by the downstream systems; compensating external
// side effects is left to operational reconciliation. It only ensures the
// order's bookkeeping reflects failure so it is never mistaken for Completed.
type CompensateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewCompensateOrderCommandHandler creates a handler for compensation requests.
func NewCompensateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	logger *slog.Logger,
) CompensateOrderCommandHandler {
	return CompensateOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "compensate_order_handler"),
	}
}

// Handle processes one compensation request.
// An unknown order is a logged no-op: this path is expected when the original
// creation never actually happened. An already Completed order is logged as an
// inconsistency and left untouched; compensation never downgrades Completed.
func (h *CompensateOrderCommandHandler) Handle(ctx context.Context, cmd CompensateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Received compensation request",
		"order_id", cmd.OrderID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.InfoContext(ctx, "Nothing to compensate, order does not exist",
				"order_id", cmd.OrderID().String())
			return nil
		}
		return err
	}

	if err = aggregate.Fail(); err != nil {
		if errors.Is(err, order.ErrOrderIsCompleted) {
			h.logger.WarnContext(ctx, "Compensation requested for completed order, keeping completed state",
				"order_id", cmd.OrderID().String())
			return nil
		}
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Order rolled back to FAILED across all legs",
		"order_id", cmd.OrderID().String())

	return nil
}
