package commands

import (
	"context"
	"errors"
	"log/slog"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// ConfirmLegCommandHandler applies inbound leg confirmations to the saga.
//
// The per-order read-modify-persist sequence runs inside a unit of work that
// locks the order row (GetForUpdate), so two legs confirming concurrently for
// the same order serialize and the completion rule is evaluated correctly
// under any interleaving. Confirmations for different orders do not contend.
//
// A lookup miss does not fail the message: the order's creation transaction
// may not be visible yet, so the handler delegates to the
// ConfirmationReconciler, which retries the lookup with a bounded policy and
// escalates to compensation if the order never materializes.
type ConfirmLegCommandHandler struct {
	uowFactory OrderUoWFactory
	reconciler *ConfirmationReconciler
	logger     *slog.Logger
}

// NewConfirmLegCommandHandler creates a handler for leg confirmations.
func NewConfirmLegCommandHandler(
	uowFactory OrderUoWFactory,
	reconciler *ConfirmationReconciler,
	logger *slog.Logger,
) ConfirmLegCommandHandler {
	return ConfirmLegCommandHandler{
		uowFactory: uowFactory,
		reconciler: reconciler,
		logger:     logger.With("component", "confirm_leg_handler"),
	}
}

// Handle processes one leg confirmation.
// Terminal orders drop the confirmation as a duplicate or late arrival; this
// is logged only, never surfaced as an error. A missing order triggers the
// reconciler; its escalation path is also not an error for this message.
func (h *ConfirmLegCommandHandler) Handle(ctx context.Context, cmd ConfirmLegCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Received leg confirmation",
		"leg", cmd.Leg().String(), "order_id", cmd.OrderID().String())

	found, err := h.applyConfirmation(ctx, cmd)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	return h.reconciler.Reconcile(ctx, cmd.OrderID(), func(retryCtx context.Context) (bool, error) {
		return h.applyConfirmation(retryCtx, cmd)
	})
}

// applyConfirmation runs one transactional attempt. It reports found=false on
// a lookup miss so the caller can decide whether to retry. The lock acquired
// by GetForUpdate is held only for the duration of this attempt, never across
// a reconciler wait.
func (h *ConfirmLegCommandHandler) applyConfirmation(
	ctx context.Context,
	cmd ConfirmLegCommand,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}

	if err = aggregate.ConfirmLeg(cmd.Leg()); err != nil {
		if errors.Is(err, order.ErrOrderIsTerminal) {
			h.logger.InfoContext(ctx, "Dropping confirmation for terminal order",
				"leg", cmd.Leg().String(),
				"order_id", cmd.OrderID().String(),
				"status", aggregate.Status().String())
			return true, nil
		}
		return true, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return true, err
	}

	if err = uow.Commit(ctx); err != nil {
		return true, err
	}

	if aggregate.Status() == order.Completed {
		h.logger.InfoContext(ctx, "Saga complete, all legs confirmed",
			"order_id", cmd.OrderID().String())
	}

	return true, nil
}
