package bootstrap

import (
	"context"
	"log"

	"survey-dashboard-be/internal/config"
	"survey-dashboard-be/internal/controller"
	"survey-dashboard-be/internal/handler"
	"survey-dashboard-be/internal/pkg/logger"
	"survey-dashboard-be/internal/repository/memory"
	"survey-dashboard-be/internal/service"
	"survey-dashboard-be/internal/websocket"

	pktNats "survey-dashboard-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	DashboardController controller.IDashboardController
	UIController        controller.IUIController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	LiveHandler  *handler.LiveHandler
	WebSocketHub *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires everything. Redis and NATS are optional: an empty URL
// skips them and a failed connection is logged and skipped.
func NewContainer(cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	return newContainer(cfg, sysLogger, logger.NewIsolatedLogger(cfg.App.LiveLogFilePath))
}

// NewTestContainer builds a container without external integrations or log files.
func NewTestContainer(cfg *config.Config) *Container {
	cfg.Broker.NatsURL = ""
	cfg.Broker.RedisURL = ""
	nop := logger.NewNopLogger()
	return newContainer(cfg, nop, nop)
}

func newContainer(cfg *config.Config, sysLogger, liveLogger logger.ILogger) *Container {
	c := &Container{Logger: sysLogger}

	// 1. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 2. Infrastructure
	var external service.EventPublisher
	if cfg.Broker.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Broker.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			external = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	var rdb *redis.Client
	if cfg.Broker.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.Broker.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.Broker.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// 3. Live updates
	wsHub := websocket.NewHub(rdb, liveLogger)
	hubCtx, stopHub := context.WithCancel(context.Background())
	go wsHub.Run(hubCtx)
	c.closers = append(c.closers, stopHub)

	// 4. Services
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.CleanupInterval)
	publisherService := service.NewPublisherService(cfg.Broker.ActivityTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Broker.ActivityTopic,
		wsHub,
		external,
		sysLogger,
	)
	dashboardService := service.NewDashboardService(sessionRepo, publisherService, sysLogger)

	// 5. Controllers
	c.DashboardController = controller.NewDashboardController(dashboardService)
	c.UIController = controller.NewUIController()
	c.LiveHandler = handler.NewLiveHandler(wsHub, liveLogger)
	c.WebSocketHub = wsHub
	c.ConsumerService = consumerService

	return c
}

// Close releases the bus and external connections in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
