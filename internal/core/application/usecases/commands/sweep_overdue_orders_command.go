package commands

import (
	"errors"
	"time"

	"logistics/internal/pkg/guard"
)

var (
	ErrSweepOverdueOrdersCommandIsNotConstructed = errors.New(
		"SweepOverdueOrdersCommand must be created via NewSweepOverdueOrdersCommand constructor",
	)
	ErrDeadlineIsInvalid = errors.New("deadline must be greater than 0")
)

// SweepOverdueOrdersCommand requests a sweep over orders still Submitted past
// the configured deadline. A leg that never confirms leaves its order
// Submitted forever otherwise; the sweep escalates such orders to the
// compensation topic.
type SweepOverdueOrdersCommand struct { //nolint:recvcheck //using for validation
	deadline time.Duration

	guard guard.ConstructorGuard
}

// NewSweepOverdueOrdersCommand creates a sweep command with the given
// per-order deadline.
func NewSweepOverdueOrdersCommand(deadline time.Duration) (SweepOverdueOrdersCommand, error) {
	sweepCommand := SweepOverdueOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := sweepCommand.setDeadline(deadline); err != nil {
		return SweepOverdueOrdersCommand{}, err
	}

	return sweepCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSweepOverdueOrdersCommandIsNotConstructed if validation fails.
func (c SweepOverdueOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSweepOverdueOrdersCommandIsNotConstructed)
}

// Deadline returns the age after which a Submitted order is considered overdue.
func (c SweepOverdueOrdersCommand) Deadline() time.Duration {
	return c.deadline
}

func (c *SweepOverdueOrdersCommand) setDeadline(deadline time.Duration) error {
	if deadline <= 0 {
		return ErrDeadlineIsInvalid
	}

	c.deadline = deadline
	return nil
}
