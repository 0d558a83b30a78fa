package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCompensateOrderCommandIsNotConstructed = errors.New(
	"CompensateOrderCommand must be created via NewCompensateOrderCommand constructor",
)

// CompensateOrderCommand represents a request to roll an order back to the
// terminal Failed state, keyed by order id.
type CompensateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompensateOrderCommand creates a command to compensate an order.
func NewCompensateOrderCommand(orderID kernel.UUID) (CompensateOrderCommand, error) {
	compensateCommand := CompensateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := compensateCommand.setOrderID(orderID); err != nil {
		return CompensateOrderCommand{}, err
	}

	return compensateCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompensateOrderCommandIsNotConstructed if validation fails.
func (c CompensateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompensateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to compensate.
func (c CompensateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *CompensateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
