package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
)

// Default reconciliation policy: the expected visibility skew between the
// intake transaction and the confirmation read path is sub-second, so a small
// fixed spacing beats an exponential schedule here.
const (
	DefaultReconcileAttempts = 5
	DefaultReconcileInterval = 100 * time.Millisecond
)

// ConfirmationReconciler handles the intake/confirmation race: a confirmation
// may arrive before the order's creation transaction is visible to the read
// path. On a lookup miss it retries the lookup up to a fixed bound, waiting on
// a timer between attempts, and escalates to the compensation topic when the
// order never materializes.
//
// The wait blocks only the handling path of the one message being reconciled.
// The retry callback owns its own transaction per attempt, so no lock or
// open transaction is held while waiting and unrelated confirmations keep
// making progress.
type ConfirmationReconciler struct {
	compensator ports.CompensationRequester
	attempts    int
	interval    time.Duration
	logger      *slog.Logger
}

// NewConfirmationReconciler creates a reconciler with the given retry bound.
// Use DefaultReconcileAttempts and DefaultReconcileInterval unless a test
// needs a tighter schedule.
func NewConfirmationReconciler(
	compensator ports.CompensationRequester,
	attempts int,
	interval time.Duration,
	logger *slog.Logger,
) *ConfirmationReconciler {
	return &ConfirmationReconciler{
		compensator: compensator,
		attempts:    attempts,
		interval:    interval,
		logger:      logger.With("component", "confirmation_reconciler"),
	}
}

// Reconcile retries the lookup until it reports found, the bound exhausts, or
// the context is cancelled. Exhaustion publishes exactly one compensation
// escalation for the order and returns its publish result; the order is
// assumed to never materialize at that point.
func (r *ConfirmationReconciler) Reconcile(
	ctx context.Context,
	orderID kernel.UUID,
	lookup func(ctx context.Context) (bool, error),
) error {
	timer := time.NewTimer(r.interval)
	defer timer.Stop()

	for attempt := 1; attempt <= r.attempts; attempt++ {
		r.logger.InfoContext(ctx, "Order not found, retrying lookup",
			"order_id", orderID.String(),
			"attempt", attempt,
			"interval", r.interval.String())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		found, err := lookup(ctx)
		if err != nil {
			return err
		}
		if found {
			return nil
		}

		if attempt < r.attempts {
			timer.Reset(r.interval)
		}
	}

	r.logger.ErrorContext(ctx, "Order not found after retries, initiating compensation",
		"order_id", orderID.String(),
		"attempts", r.attempts)

	return r.compensator.RequestCompensation(ctx, orderID.String())
}
