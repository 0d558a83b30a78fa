package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
	ErrOwnerIDIsRequired = errors.New("ownerID is required")
)

// SubmitOrderCommand represents a request to accept a new logistics order into
// the saga. Carries the owner identity and the opaque payload fields that are
// forwarded to the three downstream systems without interpretation.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewSubmitOrderCommand(orderID, ownerID, "Acme Corp", "2 boxes", "221B Baker Street")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	ownerID         string
	clientName      string
	packageDetails  string
	deliveryAddress string

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to submit a new order.
// Validates that the order ID is valid and the owner identity is present; the
// payload fields are opaque and accepted as given.
func NewSubmitOrderCommand(
	orderID kernel.UUID,
	ownerID, clientName, packageDetails, deliveryAddress string,
) (SubmitOrderCommand, error) {
	orderCommand := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setOwnerID(ownerID),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	orderCommand.clientName = clientName
	orderCommand.packageDetails = packageDetails
	orderCommand.deliveryAddress = deliveryAddress

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitOrderCommandIsNotConstructed if validation fails.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier assigned to the order.
func (c SubmitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OwnerID returns the identity of the submitting client.
func (c SubmitOrderCommand) OwnerID() string {
	return c.ownerID
}

// ClientName returns the opaque client name payload field.
func (c SubmitOrderCommand) ClientName() string {
	return c.clientName
}

// PackageDetails returns the opaque package details payload field.
func (c SubmitOrderCommand) PackageDetails() string {
	return c.packageDetails
}

// DeliveryAddress returns the opaque delivery address payload field.
func (c SubmitOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c *SubmitOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitOrderCommand) setOwnerID(ownerID string) error {
	if ownerID == "" {
		return ErrOwnerIDIsRequired
	}

	c.ownerID = ownerID
	return nil
}
