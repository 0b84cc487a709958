package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "routetracker/internal/adapters/in/http"
	"routetracker/internal/adapters/in/ws"
	"routetracker/internal/adapters/out/pgnotify"
	"routetracker/internal/adapters/out/postgres"
	"routetracker/internal/adapters/out/redisrelay"
	"routetracker/internal/core/application/usecases/commands"
	"routetracker/internal/core/application/usecases/queries"
	"routetracker/internal/core/realtime"
	"routetracker/internal/jobs"
	"routetracker/internal/pkg/keylock"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// RelayRunner consumes events published by other instances.
type RelayRunner interface {
	Run(ctx context.Context) error
}

type CompositionRoot struct {
	configs     Config
	gormDB      *gorm.DB
	logger      *slog.Logger
	registry    *realtime.GroupRegistry
	broadcaster *realtime.Broadcaster
	relay       RelayRunner
	redis       *redis.Client
	uowFactory  *postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	registry := realtime.NewGroupRegistry()
	broadcaster := realtime.NewBroadcaster(registry, logger)

	c := &CompositionRoot{
		configs:     configs,
		gormDB:      gormDB,
		logger:      logger,
		registry:    registry,
		broadcaster: broadcaster,
	}

	var deliverer realtime.Deliverer
	switch configs.RelayBackend {
	case RelayLocal:
		deliverer = broadcaster
	case RelayRedis:
		c.redis = redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
		relay := redisrelay.New(c.redis, configs.RelayChannel, broadcaster, logger)
		deliverer, c.relay = relay, relay
	case RelayPostgres:
		relay := pgnotify.New(gormDB, configs.DSN(), configs.RelayChannel, broadcaster, logger)
		deliverer, c.relay = relay, relay
	default:
		return nil, fmt.Errorf("unknown relay backend %q", configs.RelayBackend)
	}

	hook := realtime.NewMutationHook(deliverer, logger)
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, keylock.New(0), logger, hook)
	return c, nil
}

// Registry is the process-wide group registry.
func (c *CompositionRoot) Registry() *realtime.GroupRegistry {
	return c.registry
}

// Relay returns the cross-instance consumer, or nil for the local backend.
func (c *CompositionRoot) Relay() RelayRunner {
	return c.relay
}

func (c *CompositionRoot) CreateSubscriptionEndpoint() *ws.Endpoint {
	return ws.NewEndpoint(c.registry, ws.Config{
		SendBuffer:   c.configs.WSSendBuffer,
		WriteTimeout: c.configs.WSWriteTimeout,
		PingInterval: c.configs.WSPingInterval,
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.registry, c.configs.RegistrySweepSchedule, c.logger)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(c.CreateHandlers(), c.registry, c.logger)
}

func (c *CompositionRoot) CreateHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateRoute:       c.CreateCreateRouteCommandHandler(),
		UpdateRouteStatus: c.CreateUpdateRouteStatusCommandHandler(),
		DeleteRoute:       c.CreateDeleteRouteCommandHandler(),
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
		DeleteOrder:       c.CreateDeleteOrderCommandHandler(),
		GetRoutes:         queries.NewGetRoutesQueryHandler(c.gormDB),
		GetRoute:          queries.NewGetRouteQueryHandler(c.gormDB),
		GetRouteOrders:    queries.NewGetRouteOrdersQueryHandler(c.gormDB),
		GetOrder:          queries.NewGetOrderQueryHandler(c.gormDB),
		ExportRoutesCSV:   queries.NewExportRoutesCSVQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateCreateRouteCommandHandler() *commands.CreateRouteCommandHandler {
	h := commands.NewCreateRouteCommandHandler(c.routeUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateUpdateRouteStatusCommandHandler() *commands.UpdateRouteStatusCommandHandler {
	h := commands.NewUpdateRouteStatusCommandHandler(c.routeUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateDeleteRouteCommandHandler() *commands.DeleteRouteCommandHandler {
	h := commands.NewDeleteRouteCommandHandler(c.fullUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.fullUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() *commands.UpdateOrderStatusCommandHandler {
	h := commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() *commands.DeleteOrderCommandHandler {
	h := commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
	return &h
}

// Close releases connections owned by the root.
func (c *CompositionRoot) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}

func (c *CompositionRoot) routeUoWFactory() commands.RouteUoWFactory {
	return FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
