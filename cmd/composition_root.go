package cmd

import (
	"log/slog"

	in_rabbitmq "logistics/internal/adapters/in/rabbitmq"
	"logistics/internal/adapters/out/postgres"
	out_rabbitmq "logistics/internal/adapters/out/rabbitmq"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/jobs"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  *out_rabbitmq.Publisher
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	amqpChannel *amqp.Channel,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  out_rabbitmq.NewPublisher(amqpChannel, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateConfirmLegCommandHandler() commands.ConfirmLegCommandHandler {
	reconciler := commands.NewConfirmationReconciler(
		c.publisher,
		commands.DefaultReconcileAttempts,
		commands.DefaultReconcileInterval,
		c.logger,
	)
	return commands.NewConfirmLegCommandHandler(c.orderUoWFactory(), reconciler, c.logger)
}

func (c *CompositionRoot) CreateCompensateOrderCommandHandler() commands.CompensateOrderCommandHandler {
	return commands.NewCompensateOrderCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateSweepOverdueOrdersCommandHandler() commands.SweepOverdueOrdersCommandHandler {
	return commands.NewSweepOverdueOrdersCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetOwnerOrdersQueryHandler() queries.GetOwnerOrdersQueryHandler {
	return queries.NewGetOwnerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateConsumer(amqpChannel *amqp.Channel) *in_rabbitmq.Consumer {
	return in_rabbitmq.NewConsumer(
		amqpChannel,
		c.CreateConfirmLegCommandHandler(),
		c.CreateCompensateOrderCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSweepOverdueOrdersCommandHandler(),
		c.config.OrderDeadline,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
