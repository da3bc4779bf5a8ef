package cmd

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/historyrepo"
	"orderflow/internal/adapters/out/redisstore"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/keyedlock"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	recovery   *services.WorkflowRecoveryService
	history    *historyrepo.GormTransitionHistoryRepository
	locks      *keyedlock.KeyedLock
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) CompositionRoot {
	recoveryConfig := services.DefaultWorkflowRecoveryConfig()
	if config.SnapshotKeyPrefix != "" {
		recoveryConfig.KeyPrefix = config.SnapshotKeyPrefix
	}
	if config.SnapshotTTLHours > 0 {
		recoveryConfig.SnapshotTTL = time.Duration(config.SnapshotTTLHours) * time.Hour
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		recovery: services.NewWorkflowRecoveryService(
			redisstore.NewRedisSnapshotStore(redisClient),
			recoveryConfig,
			logger,
		),
		history: historyrepo.NewGormTransitionHistoryRepository(gormDB),
		locks:   keyedlock.NewKeyedLock(),
		logger:  logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.recovery, c.logger)
}

func (c *CompositionRoot) CreateFireEventCommandHandler() commands.FireEventCommandHandler {
	return commands.NewFireEventCommandHandler(
		c.orderUoWFactory(), c.recovery, c.history, c.locks, c.logger)
}

func (c *CompositionRoot) CreateRefreshSnapshotsCommandHandler() commands.RefreshSnapshotsCommandHandler {
	return commands.NewRefreshSnapshotsCommandHandler(c.orderUoWFactory(), c.recovery, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByStateQueryHandler() queries.GetOrdersByStateQueryHandler {
	return queries.NewGetOrdersByStateQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLegalEventsQueryHandler() queries.GetLegalEventsQueryHandler {
	return queries.NewGetLegalEventsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
