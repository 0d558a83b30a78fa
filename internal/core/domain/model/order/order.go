package order

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsTerminal is returned when a confirmation arrives for an order
	// that is already Completed or Failed. Callers treat it as a duplicate or
	// late arrival: logged and dropped, never applied.
	ErrOrderIsTerminal = errors.New("order is already in a terminal status")

	// ErrOrderIsCompleted is returned when compensation is requested for an
	// order that already completed. This indicates an inconsistency between
	// leg completion and compensation ordering; the completed state is kept.
	ErrOrderIsCompleted = errors.New("order is already completed and cannot be failed")
)

// Order is the aggregate root of the order saga. It owns the whole lifecycle:
// intake with all legs pending, per-leg confirmation tracking, completion
// detection, and compensation.
//
// Invariants:
//   - Must have a valid unique identifier and a non-empty owner
//   - Status becomes Completed only when all three legs are Confirmed at the
//     moment ConfirmLeg applies the last confirmation
//   - Leg statuses only move Pending -> Confirmed or any -> Failed
//   - Completed and Failed are terminal; late confirmations are rejected
//   - Can only be created through NewOrder or RestoreOrder
//
// The payload fields (client name, package details, delivery address) are
// opaque: the saga carries them to the downstream systems but never interprets
// them.
type Order struct {
	id kernel.UUID

	// ownerID identifies the client that submitted the order.
	ownerID string

	clientName      string
	packageDetails  string
	deliveryAddress string

	status      Status
	legStatuses map[Leg]LegStatus

	createdAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates an Order at intake: status Submitted, every leg Pending.
// This is the only way to create a fresh order, ensuring all business
// invariants hold from the start.
//
// The owner identifier is required; the payload fields are opaque and accepted
// as given.
func NewOrder(id kernel.UUID, ownerID, clientName, packageDetails, deliveryAddress string) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if ownerID == "" {
		return nil, errs.NewValueIsRequiredError("ownerID")
	}

	legStatuses := make(map[Leg]LegStatus, len(Legs()))
	for _, leg := range Legs() {
		legStatuses[leg] = LegPending
	}

	return &Order{
		id:              id,
		ownerID:         ownerID,
		clientName:      clientName,
		packageDetails:  packageDetails,
		deliveryAddress: deliveryAddress,
		status:          Submitted,
		legStatuses:     legStatuses,
		createdAt:       time.Now().UTC(),
		isConstructed:   true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence. All status values are
// validated against their closed enumerations; unknown values are rejected as
// data corruption rather than silently defaulted.
func RestoreOrder(
	id kernel.UUID,
	ownerID, clientName, packageDetails, deliveryAddress string,
	status Status,
	legStatuses map[Leg]LegStatus,
	createdAt time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if ownerID == "" {
		return nil, errs.NewValueIsRequiredError("ownerID")
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	restored := make(map[Leg]LegStatus, len(Legs()))
	for _, leg := range Legs() {
		legStatus, ok := legStatuses[leg]
		if !ok {
			return nil, errs.NewValueIsRequiredError("leg status for " + leg.String())
		}
		if err := legStatus.Validate(); err != nil {
			return nil, err
		}
		restored[leg] = legStatus
	}

	return &Order{
		id:              id,
		ownerID:         ownerID,
		clientName:      clientName,
		packageDetails:  packageDetails,
		deliveryAddress: deliveryAddress,
		status:          status,
		legStatuses:     restored,
		createdAt:       createdAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a
// constructor. This prevents bypassing validation by directly instantiating
// the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OwnerID returns the identity of the submitting client.
func (o *Order) OwnerID() string {
	return o.ownerID
}

// ClientName returns the opaque client name payload field.
func (o *Order) ClientName() string {
	return o.clientName
}

// PackageDetails returns the opaque package details payload field.
func (o *Order) PackageDetails() string {
	return o.packageDetails
}

// DeliveryAddress returns the opaque delivery address payload field.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// Status returns the current overall status of the saga.
func (o *Order) Status() Status {
	return o.status
}

// LegStatus returns the current status of a single leg.
// Returns LegUnknown for an invalid leg identifier.
func (o *Order) LegStatus(leg Leg) LegStatus {
	return o.legStatuses[leg]
}

// LegStatuses returns a copy of all leg statuses.
func (o *Order) LegStatuses() map[Leg]LegStatus {
	statuses := make(map[Leg]LegStatus, len(o.legStatuses))
	for leg, status := range o.legStatuses {
		statuses[leg] = status
	}
	return statuses
}

// CreatedAt returns the intake time of the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsTerminal reports whether the order reached Completed or Failed.
func (o *Order) IsTerminal() bool {
	return o.status.IsTerminal()
}

// ConfirmLeg applies a downstream confirmation for one leg and evaluates the
// completion rule: when this confirmation makes all three legs Confirmed, the
// order transitions to Completed in the same call. The rule is evaluated at
// the transition only, so the three legs may confirm in any order and
// completion happens exactly once.
//
// Returns ErrOrderIsTerminal when the order is already Completed or Failed;
// the confirmation is a duplicate or late arrival and must not be applied.
func (o *Order) ConfirmLeg(leg Leg) error {
	if err := leg.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return ErrOrderIsTerminal
	}

	newStatus, err := o.legStatuses[leg].Confirm()
	if err != nil {
		return err
	}
	o.legStatuses[leg] = newStatus

	if o.allLegsConfirmed() {
		o.status = Completed
	}

	return nil
}

// Fail drives the order to the terminal Failed state with every leg Failed,
// regardless of prior individual successes. This is the blunt order-level
// rollback used both for dispatch failures at intake and for compensation.
// It does not undo work already performed downstream; it only ensures the
// order's bookkeeping is never mistaken for Completed.
//
// Failing an already Failed order is a no-op. Failing a Completed order
// returns ErrOrderIsCompleted and leaves the order untouched.
func (o *Order) Fail() error {
	if o.status == Completed {
		return ErrOrderIsCompleted
	}

	o.status = Failed
	for _, leg := range Legs() {
		o.legStatuses[leg] = LegFailed
	}

	return nil
}

func (o *Order) allLegsConfirmed() bool {
	for _, leg := range Legs() {
		if o.legStatuses[leg] != LegConfirmed {
			return false
		}
	}
	return true
}
