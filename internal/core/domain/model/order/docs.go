// Package order provides the domain model for the order saga in the logistics
// system. It implements the Order aggregate root that owns the saga lifecycle
// and the state machines for the overall and per-leg statuses.
//
// The package includes:
//   - Order: The aggregate root managing intake, confirmation tracking, completion, and compensation
//   - Status: The overall saga state machine (Submitted -> Completed | Failed)
//   - LegStatus: The per-leg state machine (Pending -> Confirmed | Failed)
//   - Leg: The closed set of downstream systems (CMS, WMS, ROS)
//
// Key business rules:
//   - An order completes only when all three legs are confirmed, evaluated at the transition
//   - Leg statuses never revert: Pending -> Confirmed, or any -> Failed
//   - Completed and Failed are terminal; late or duplicate confirmations are rejected
//   - Compensation fails every leg regardless of prior successes, but never downgrades a completed order
//
// The package follows Domain-Driven Design principles, keeping the completion
// and compensation logic in one place instead of duplicating it per leg.
package order
