package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"
)

var ErrConfirmLegCommandIsNotConstructed = errors.New(
	"ConfirmLegCommand must be created via NewConfirmLegCommand constructor",
)

// ConfirmLegCommand represents one inbound confirmation message: a downstream
// system acknowledging that it processed an order. The three legs are handled
// symmetrically; only the leg identifier differs.
type ConfirmLegCommand struct { //nolint:recvcheck //using for validation
	leg     order.Leg
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmLegCommand creates a command to apply a leg confirmation.
// Validates that the leg identifies one of the three downstream systems and
// that the order id is valid.
func NewConfirmLegCommand(leg order.Leg, orderID kernel.UUID) (ConfirmLegCommand, error) {
	confirmCommand := ConfirmLegCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		confirmCommand.setLeg(leg),
		confirmCommand.setOrderID(orderID),
	); err != nil {
		return ConfirmLegCommand{}, err
	}

	return confirmCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrConfirmLegCommandIsNotConstructed if validation fails.
func (c ConfirmLegCommand) Validate() error {
	return c.guard.Validate(ErrConfirmLegCommandIsNotConstructed)
}

// Leg returns the downstream system that sent the confirmation.
func (c ConfirmLegCommand) Leg() order.Leg {
	return c.leg
}

// OrderID returns the identifier of the confirmed order.
func (c ConfirmLegCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *ConfirmLegCommand) setLeg(leg order.Leg) error {
	if err := leg.Validate(); err != nil {
		return err
	}

	c.leg = leg
	return nil
}

func (c *ConfirmLegCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
