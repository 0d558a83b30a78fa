package jobs

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderDeadlineJob periodically sweeps for orders stuck in Submitted past the
// configured deadline and escalates them to compensation. A downstream system
// that never confirms would otherwise leave its orders Submitted forever.
type OrderDeadlineJob struct {
	handler  commands.SweepOverdueOrdersCommandHandler
	deadline time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderDeadlineJob creates a job sweeping with the given per-order deadline.
func NewOrderDeadlineJob(
	handler commands.SweepOverdueOrdersCommandHandler,
	deadline time.Duration,
	logger *slog.Logger,
) *OrderDeadlineJob {
	return &OrderDeadlineJob{
		handler:  handler,
		deadline: deadline,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_deadline_job"),
	}
}

// Start begins the sweep, running every 30 seconds.
func (j *OrderDeadlineJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewSweepOverdueOrdersCommand(j.deadline)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Invalid sweep deadline", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Order deadline sweep failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Order deadline job started (running every 30 seconds)",
		"deadline", j.deadline.String())
	return nil
}

// Stop stops the sweep job.
func (j *OrderDeadlineJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order deadline job stopped")
}
