package commands

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
)

// Result messages returned to the submitting client. Only the submission call
// is synchronous; all leg outcomes are observable asynchronously.
const (
	msgOrderAccepted  = "Order received and processing asynchronously."
	msgOrderSavedOnly = "Order saved but failed to publish to queue. Order marked as FAILED."
	msgDatabaseError  = "Database error occurred while saving the order."
)

// SubmitOrderResult is the synchronous outcome of an order submission.
type SubmitOrderResult struct {
	OrderID *kernel.UUID
	Status  order.Status
	Message string
}

// SubmitOrderCommandHandler handles order intake: it persists the order with
// all legs pending and fans it out to the three downstream systems with a
// single best-effort publish per leg.
//
// Failure handling is deliberately asymmetric:
//   - persistence failure: nothing is published and no order exists (fail fast)
//   - publish failure: the whole order is rolled to Failed across all legs,
//     because a client cannot be told their order is half-submitted
type SubmitOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	legPublisher ports.LegRequestPublisher
	logger       *slog.Logger
}

// NewSubmitOrderCommandHandler creates a handler for order intake.
// Requires an OrderUoWFactory for transactional persistence and a
// LegRequestPublisher for the fan-out.
func NewSubmitOrderCommandHandler(
	uowFactory OrderUoWFactory,
	legPublisher ports.LegRequestPublisher,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory:   uowFactory,
		legPublisher: legPublisher,
		logger:       logger.With("component", "submit_order_handler"),
	}
}

// Handle processes the order submission.
// On full success the result carries the order id and Submitted status.
// On publish failure the result communicates degraded completion: the order is
// saved but marked Failed, and the error return stays nil because the caller
// still gets a definitive answer.
func (h *SubmitOrderCommandHandler) Handle(
	ctx context.Context,
	cmd SubmitOrderCommand,
) (SubmitOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitOrderResult{}, err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.OwnerID(),
		cmd.ClientName(),
		cmd.PackageDetails(),
		cmd.DeliveryAddress(),
	)
	if err != nil {
		return SubmitOrderResult{}, err
	}

	if err = h.persistNewOrder(ctx, newOrder); err != nil {
		h.logger.ErrorContext(ctx, "Failed to persist order", "error", err)
		return SubmitOrderResult{Status: order.Failed, Message: msgDatabaseError}, err
	}

	orderID := newOrder.ID()

	if err = h.publishLegRequests(ctx, newOrder); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish leg requests, rolling order back",
			"order_id", orderID.String(), "error", err)

		if rollbackErr := h.failOrder(ctx, newOrder); rollbackErr != nil {
			return SubmitOrderResult{}, rollbackErr
		}

		return SubmitOrderResult{
			OrderID: &orderID,
			Status:  order.Failed,
			Message: msgOrderSavedOnly,
		}, nil
	}

	h.logger.InfoContext(ctx, "Published order to middleware exchange for all three systems",
		"order_id", orderID.String())

	return SubmitOrderResult{
		OrderID: &orderID,
		Status:  order.Submitted,
		Message: msgOrderAccepted,
	}, nil
}

func (h *SubmitOrderCommandHandler) persistNewOrder(ctx context.Context, aggregate *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *SubmitOrderCommandHandler) publishLegRequests(ctx context.Context, aggregate *order.Order) error {
	for _, leg := range order.Legs() {
		if err := h.legPublisher.PublishLegRequest(ctx, leg, aggregate); err != nil {
			return err
		}
	}
	return nil
}

func (h *SubmitOrderCommandHandler) failOrder(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Fail(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
