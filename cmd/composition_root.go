package cmd

import (
	"log/slog"

	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/changefeed"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/services"
	"freight/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services, and use case handlers.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	resolver   services.AuthorityResolver
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		resolver:   services.NewAuthorityResolver(logger),
	}
}

// CreateServer builds the HTTP server with every command and query handler.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAdvanceOrderCommandHandler(),
		c.CreateSubmitPaymentCommandHandler(),
		c.CreateResubmitPaymentCommandHandler(),
		c.CreateValidatePaymentCommandHandler(),
		c.CreateRejectPaymentCommandHandler(),
		c.CreateAssignOperatorCommandHandler(),
		c.CreateCreateBoxCommandHandler(),
		c.CreatePackBoxCommandHandler(),
		c.CreateAttachOrderToBoxCommandHandler(),
		c.CreateAssignBoxToContainerCommandHandler(),
		c.CreateReceiveBoxCommandHandler(),
		c.CreateCreateContainerCommandHandler(),
		c.CreateDispatchContainerCommandHandler(),
		c.CreateReceiveContainerCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateActiveWorkCountQueryHandler(),
	)
}

// CreateChangeFeed builds the LISTEN/NOTIFY change feed adapter.
func (c *CompositionRoot) CreateChangeFeed() (*changefeed.PostgresChangeFeed, error) {
	return changefeed.NewPostgresChangeFeed(c.config.PostgresDSN(), c.gormDB, c.logger)
}

// CreateJobManager builds the background job manager around the feed's poll
// fallback.
func (c *CompositionRoot) CreateJobManager(feed *changefeed.PostgresChangeFeed) *jobs.JobManager {
	return jobs.NewJobManager(feed, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.orderUoWFactory(), c.resolver)
}

func (c *CompositionRoot) CreateSubmitPaymentCommandHandler() commands.SubmitPaymentCommandHandler {
	return commands.NewSubmitPaymentCommandHandler(c.orderUoWFactory(), c.resolver)
}

func (c *CompositionRoot) CreateResubmitPaymentCommandHandler() commands.ResubmitPaymentCommandHandler {
	return commands.NewResubmitPaymentCommandHandler(c.orderUoWFactory(), c.resolver)
}

func (c *CompositionRoot) CreateValidatePaymentCommandHandler() commands.ValidatePaymentCommandHandler {
	return commands.NewValidatePaymentCommandHandler(c.orderUoWFactory(), c.resolver)
}

func (c *CompositionRoot) CreateRejectPaymentCommandHandler() commands.RejectPaymentCommandHandler {
	return commands.NewRejectPaymentCommandHandler(c.orderUoWFactory(), c.resolver)
}

func (c *CompositionRoot) CreateAssignOperatorCommandHandler() commands.AssignOperatorCommandHandler {
	return commands.NewAssignOperatorCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCreateBoxCommandHandler() commands.CreateBoxCommandHandler {
	return commands.NewCreateBoxCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreatePackBoxCommandHandler() commands.PackBoxCommandHandler {
	return commands.NewPackBoxCommandHandler(c.shipmentUoWFactory(), c.resolver)
}

func (c *CompositionRoot) CreateAttachOrderToBoxCommandHandler() commands.AttachOrderToBoxCommandHandler {
	return commands.NewAttachOrderToBoxCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateAssignBoxToContainerCommandHandler() commands.AssignBoxToContainerCommandHandler {
	return commands.NewAssignBoxToContainerCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateReceiveBoxCommandHandler() commands.ReceiveBoxCommandHandler {
	return commands.NewReceiveBoxCommandHandler(c.shipmentUoWFactory(), c.resolver)
}

func (c *CompositionRoot) CreateCreateContainerCommandHandler() commands.CreateContainerCommandHandler {
	return commands.NewCreateContainerCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateDispatchContainerCommandHandler() commands.DispatchContainerCommandHandler {
	return commands.NewDispatchContainerCommandHandler(c.shipmentUoWFactory(), c.resolver)
}

func (c *CompositionRoot) CreateReceiveContainerCommandHandler() commands.ReceiveContainerCommandHandler {
	return commands.NewReceiveContainerCommandHandler(c.shipmentUoWFactory(), c.resolver)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateActiveWorkCountQueryHandler() queries.ActiveWorkCountQueryHandler {
	return queries.NewActiveWorkCountQueryHandler(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
