// Package rabbitmq provides the AMQP publishing side of the saga: leg request
// fan-out to the downstream systems and compensation escalations.
package rabbitmq

import (
	"fmt"

	"logistics/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange and routing names shared with the downstream middleware. These are
// part of the external contract and must not change without coordinating with
// the CMS, WMS and ROS integrations.
const (
	Exchange = "middleware.exchange"

	CmsRoutingKey = "cms.routing.key"
	WmsRoutingKey = "wms.routing.key"
	RosRoutingKey = "ros.routing.key"

	CmsConfirmationQueue = "cms-confirmation"
	WmsConfirmationQueue = "wms-confirmation"
	RosConfirmationQueue = "ros-confirmation"

	CompensationQueue = "compensating-transactions"
)

// RoutingKeyForLeg maps a saga leg to the routing key its request is published
// with.
func RoutingKeyForLeg(leg order.Leg) (string, error) {
	switch leg {
	case order.CMS:
		return CmsRoutingKey, nil
	case order.WMS:
		return WmsRoutingKey, nil
	case order.ROS:
		return RosRoutingKey, nil
	default:
		return "", fmt.Errorf("no routing key for leg %d", leg)
	}
}

// ConfirmationQueueForLeg maps a saga leg to the queue its confirmations
// arrive on.
func ConfirmationQueueForLeg(leg order.Leg) (string, error) {
	switch leg {
	case order.CMS:
		return CmsConfirmationQueue, nil
	case order.WMS:
		return WmsConfirmationQueue, nil
	case order.ROS:
		return RosConfirmationQueue, nil
	default:
		return "", fmt.Errorf("no confirmation queue for leg %d", leg)
	}
}

// DeclareTopology declares the durable exchange and queues this service
// depends on. Declaration is idempotent; every connecting process calls it so
// startup order between this service and the middleware does not matter.
func DeclareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(
		Exchange,
		amqp.ExchangeDirect,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("declare exchange %s: %w", Exchange, err)
	}

	queues := []string{
		CmsConfirmationQueue,
		WmsConfirmationQueue,
		RosConfirmationQueue,
		CompensationQueue,
	}
	for _, queue := range queues {
		if _, err := ch.QueueDeclare(
			queue,
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			nil,
		); err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}
	}

	// Compensations route through the exchange to their queue; the leg request
	// routing keys are bound by the downstream middleware on its side.
	if err := ch.QueueBind(CompensationQueue, CompensationQueue, Exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", CompensationQueue, err)
	}

	return nil
}
