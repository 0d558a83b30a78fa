package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"logistics/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

// legRequestMessage is the JSON body published to each downstream system.
type legRequestMessage struct {
	OrderID         string `json:"orderId"`
	OwnerID         string `json:"ownerId"`
	ClientName      string `json:"clientName"`
	PackageDetails  string `json:"packageDetails"`
	DeliveryAddress string `json:"deliveryAddress"`
}

// Publisher publishes saga messages to the middleware exchange. It implements
// both outbound ports: leg request fan-out and compensation escalation.
//
// Messages are published persistent so they survive a broker restart together
// with the durable topology.
type Publisher struct {
	ch     *amqp.Channel
	logger *slog.Logger
}

// NewPublisher creates a publisher over an open channel. The channel is owned
// by the caller; the publisher never closes it.
func NewPublisher(ch *amqp.Channel, logger *slog.Logger) *Publisher {
	return &Publisher{
		ch:     ch,
		logger: logger.With("component", "rabbitmq_publisher"),
	}
}

// PublishLegRequest publishes the order to one downstream system's routing key.
func (p *Publisher) PublishLegRequest(ctx context.Context, leg order.Leg, aggregate *order.Order) error {
	routingKey, err := RoutingKeyForLeg(leg)
	if err != nil {
		return err
	}

	body, err := json.Marshal(legRequestMessage{
		OrderID:         aggregate.ID().String(),
		OwnerID:         aggregate.OwnerID(),
		ClientName:      aggregate.ClientName(),
		PackageDetails:  aggregate.PackageDetails(),
		DeliveryAddress: aggregate.DeliveryAddress(),
	})
	if err != nil {
		return fmt.Errorf("marshal leg request: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		Exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", routingKey, err)
	}

	p.logger.InfoContext(ctx, "Published leg request",
		"leg", leg.String(), "order_id", aggregate.ID().String())

	return nil
}

// RequestCompensation publishes one compensation escalation carrying the bare
// order id.
func (p *Publisher) RequestCompensation(ctx context.Context, orderID string) error {
	err := p.ch.PublishWithContext(ctx,
		Exchange,
		CompensationQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "text/plain",
			DeliveryMode: amqp.Persistent,
			Body:         []byte(orderID),
		},
	)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", CompensationQueue, err)
	}

	p.logger.InfoContext(ctx, "Published compensation request", "order_id", orderID)

	return nil
}
