// Package rabbitmq provides the AMQP consuming side of the saga: leg
// confirmations from the downstream systems and compensation requests.
package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	out_rabbitmq "logistics/internal/adapters/out/rabbitmq"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer drains the confirmation queues and the compensation queue, one
// goroutine per queue. Acknowledgement is manual: a message is acked once its
// handler returns, whether or not the handler succeeded. A handler error is
// terminal for that message only; redelivering it would hit the same error
// again, so it is logged and dropped instead. Malformed payloads are rejected
// without requeue.
type Consumer struct {
	ch          *amqp.Channel
	confirmer   commands.ConfirmLegCommandHandler
	compensator commands.CompensateOrderCommandHandler
	logger      *slog.Logger
}

// NewConsumer creates a consumer over an open channel. The channel is owned by
// the caller; the consumer never closes it.
func NewConsumer(
	ch *amqp.Channel,
	confirmer commands.ConfirmLegCommandHandler,
	compensator commands.CompensateOrderCommandHandler,
	logger *slog.Logger,
) *Consumer {
	return &Consumer{
		ch:          ch,
		confirmer:   confirmer,
		compensator: compensator,
		logger:      logger.With("component", "rabbitmq_consumer"),
	}
}

// Start subscribes to all four queues and launches their consuming goroutines.
// The goroutines stop when the context is cancelled or the channel closes.
func (c *Consumer) Start(ctx context.Context) error {
	for _, leg := range order.Legs() {
		queue, err := out_rabbitmq.ConfirmationQueueForLeg(leg)
		if err != nil {
			return err
		}

		if err = c.consume(ctx, queue, c.confirmationHandler(leg)); err != nil {
			return err
		}
	}

	return c.consume(ctx, out_rabbitmq.CompensationQueue, c.handleCompensation)
}

func (c *Consumer) consume(
	ctx context.Context,
	queue string,
	handle func(ctx context.Context, orderID kernel.UUID) error,
) error {
	deliveries, err := c.ch.Consume(
		queue,
		"",    // consumer tag, broker-generated
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queue, err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					c.logger.InfoContext(ctx, "Delivery channel closed", "queue", queue)
					return
				}
				c.dispatch(ctx, queue, delivery, handle)
			}
		}
	}()

	c.logger.InfoContext(ctx, "Consuming queue", "queue", queue)

	return nil
}

func (c *Consumer) dispatch(
	ctx context.Context,
	queue string,
	delivery amqp.Delivery,
	handle func(ctx context.Context, orderID kernel.UUID) error,
) {
	orderID, err := parseOrderID(delivery.Body)
	if err != nil {
		c.logger.ErrorContext(ctx, "Rejecting malformed message",
			"queue", queue, "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	if err = handle(ctx, orderID); err != nil {
		c.logger.ErrorContext(ctx, "Message handling failed",
			"queue", queue, "order_id", orderID.String(), "error", err)
	}

	_ = delivery.Ack(false)
}

func (c *Consumer) confirmationHandler(leg order.Leg) func(context.Context, kernel.UUID) error {
	return func(ctx context.Context, orderID kernel.UUID) error {
		cmd, err := commands.NewConfirmLegCommand(leg, orderID)
		if err != nil {
			return err
		}
		return c.confirmer.Handle(ctx, cmd)
	}
}

func (c *Consumer) handleCompensation(ctx context.Context, orderID kernel.UUID) error {
	cmd, err := commands.NewCompensateOrderCommand(orderID)
	if err != nil {
		return err
	}
	return c.compensator.Handle(ctx, cmd)
}

// parseOrderID extracts the bare order id from a message body. Bodies arrive
// either as the raw id or as a JSON string of it, depending on the sender.
func parseOrderID(body []byte) (kernel.UUID, error) {
	raw := strings.TrimSpace(string(body))
	raw = strings.Trim(raw, `"`)

	return kernel.UUIDFromString(raw)
}
