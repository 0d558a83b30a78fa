package order

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status represents the overall lifecycle state of an order's saga.
//
// State transitions:
//
//	Submitted ──┬──> Completed   (all three legs confirmed)
//	            └──> Failed      (publish failure or compensation)
//
// Completed and Failed are terminal: once reached, the order never changes
// again, regardless of late or duplicate confirmations.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Submitted is the initial status assigned at order intake, while the
	// three downstream legs are still being confirmed.
	Submitted

	// Completed indicates every leg confirmed. Terminal.
	Completed

	// Failed indicates the saga was rolled back, either because the leg
	// requests could not be dispatched or through compensation. Terminal.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Submitted: "SUBMITTED",
		Completed: "COMPLETED",
		Failed:    "FAILED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Submitted: "SUBMITTED",
		Completed: "COMPLETED",
		Failed:    "FAILED",
	}
}

// Validate checks if the Status value is one of the closed set of valid
// statuses. Unknown (0) and any other values are invalid. Values read back
// from storage must pass this check before use; a failure means data
// corruption, not a business condition.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Failed
}

// String returns the wire name of the status ("SUBMITTED", "COMPLETED",
// "FAILED"), or "UNKNOWN" for invalid values. Implements fmt.Stringer and is
// safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// LegStatus represents the state of a single downstream leg within the saga.
//
// State transitions:
//
//	Pending ──┬──> Confirmed
//	          └──> Failed
//
// A leg never reverts to Pending, and a Failed leg never becomes Confirmed.
type LegStatus int

const (
	// LegUnknown represents an invalid or undefined leg status.
	LegUnknown LegStatus = iota

	// LegPending is the initial leg status assigned at order intake.
	LegPending

	// LegConfirmed indicates the downstream system acknowledged the leg.
	LegConfirmed

	// LegFailed indicates the leg was rolled back through compensation or a
	// dispatch failure.
	LegFailed
)

func getLegStatusStrings() map[LegStatus]string {
	return map[LegStatus]string{
		LegUnknown:   "UNKNOWN",
		LegPending:   "PENDING",
		LegConfirmed: "CONFIRMED",
		LegFailed:    "FAILED",
	}
}

func getValidLegStatusStrings() map[LegStatus]string {
	//nolint:exhaustive // LegUnknown is intentionally excluded as it's invalid
	return map[LegStatus]string{
		LegPending:   "PENDING",
		LegConfirmed: "CONFIRMED",
		LegFailed:    "FAILED",
	}
}

// Validate checks if the LegStatus value is one of the closed set of valid
// leg statuses. Unknown persisted values are rejected as corruption.
func (s LegStatus) Validate() error {
	if _, ok := getValidLegStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"leg status is invalid",
			fmt.Errorf("%d is not a valid leg status", s),
		)
	}
	return nil
}

// String returns the wire name of the leg status ("PENDING", "CONFIRMED",
// "FAILED"), or "UNKNOWN" for invalid values.
func (s LegStatus) String() string {
	if str, ok := getLegStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Confirm transitions the leg status to LegConfirmed.
//
// Valid transitions:
//   - Pending -> Confirmed
//   - Confirmed -> Confirmed (duplicate confirmation, idempotent)
//
// Invalid transitions:
//   - Failed -> Confirmed (a failed leg stays failed)
//   - Unknown -> Confirmed
func (s LegStatus) Confirm() (LegStatus, error) {
	if s != LegPending && s != LegConfirmed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"leg status is invalid",
			fmt.Errorf("%s is not a valid leg status to confirm", s.String()),
		)
	}

	return LegConfirmed, nil
}

// Fail transitions the leg status to LegFailed.
// Any valid leg status may fail; failing an already failed leg is idempotent.
func (s LegStatus) Fail() (LegStatus, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	return LegFailed, nil
}

// Leg identifies one of the three downstream systems an order fans out to.
type Leg int

const (
	// UnknownLeg represents an invalid or undefined leg identifier.
	UnknownLeg Leg = iota

	// CMS is the customer-management system leg.
	CMS

	// WMS is the warehouse-management system leg.
	WMS

	// ROS is the route-optimization system leg.
	ROS
)

func getLegStrings() map[Leg]string {
	return map[Leg]string{
		UnknownLeg: "UNKNOWN",
		CMS:        "CMS",
		WMS:        "WMS",
		ROS:        "ROS",
	}
}

// Legs returns the three downstream legs every order fans out to.
func Legs() []Leg {
	return []Leg{CMS, WMS, ROS}
}

// Validate checks if the Leg value identifies one of the three downstream systems.
func (l Leg) Validate() error {
	if l != CMS && l != WMS && l != ROS {
		return errs.NewValueIsInvalidErrorWithCause("leg is invalid", fmt.Errorf("%d is not a valid leg", l))
	}
	return nil
}

// String returns the leg name ("CMS", "WMS", "ROS"), or "UNKNOWN" for invalid values.
func (l Leg) String() string {
	if str, ok := getLegStrings()[l]; ok {
		return str
	}
	return "UNKNOWN"
}
