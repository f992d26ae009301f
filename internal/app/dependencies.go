package app

import (
	"context"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/logitrack/internal/auth"
	cachememory "github.com/vladislavdragonenkov/logitrack/internal/cache/memory"
	cacheredis "github.com/vladislavdragonenkov/logitrack/internal/cache/redis"
	"github.com/vladislavdragonenkov/logitrack/internal/domain"
	"github.com/vladislavdragonenkov/logitrack/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/logitrack/internal/metrics"
	"github.com/vladislavdragonenkov/logitrack/internal/service/carrier"
	"github.com/vladislavdragonenkov/logitrack/internal/service/order"
	"github.com/vladislavdragonenkov/logitrack/internal/service/route"
	"github.com/vladislavdragonenkov/logitrack/internal/service/shipment"
	"github.com/vladislavdragonenkov/logitrack/internal/service/user"
	storagememory "github.com/vladislavdragonenkov/logitrack/internal/storage/memory"
	"github.com/vladislavdragonenkov/logitrack/internal/storage/postgres"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Users     *user.Service
	Orders    *order.Service
	Carriers  *carrier.Service
	Routes    *route.Service
	Shipments *shipment.Service

	Tokens  domain.TokenService
	Metrics *metrics.TrackingMetrics

	Store         *postgres.Store
	RedisCache    *cacheredis.Cache
	KafkaProducer *kafka.Producer

	Logger *log.Entry
}

// NewDependencies создаёт и инициализирует все зависимости приложения.
// Postgres, Redis и Kafka опциональны: без DSN/адреса используются
// in-memory реализации, без брокеров события не публикуются.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{
		Metrics: metrics.NewTrackingMetrics(),
		Logger:  logger,
	}

	secret := cfg.JWTSecret
	if secret == "" {
		// Без секрета сервис пригоден только для локальной разработки.
		logger.Warn("LOGITRACK_JWT_SECRET is not set, using an insecure development secret")
		secret = "insecure-dev-secret"
	}
	tokens, err := auth.NewTokenService(secret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}
	deps.Tokens = tokens

	var (
		shipmentRepo domain.ShipmentRepository
		orderRepo    domain.OrderRepository
		carrierRepo  domain.CarrierRepository
		routeRepo    domain.RouteRepository
		userRepo     domain.UserRepository
	)

	if cfg.PostgresDSN != "" {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		deps.Store = store

		shipmentRepo = postgres.NewShipmentRepository(store)
		orderRepo = postgres.NewOrderRepository(store)
		carrierRepo = postgres.NewCarrierRepository(store)
		routeRepo = postgres.NewRouteRepository(store)
		userRepo = postgres.NewUserRepository(store)
		logger.Info("postgres storage initialized")
	} else {
		logger.Warn("LOGITRACK_POSTGRES_DSN is not set, using in-memory storage")
		memOrders := storagememory.NewOrderRepository()
		memRoutes := storagememory.NewRouteRepository()
		memCarriers := storagememory.NewCarrierRepository(memRoutes)
		memShipments := storagememory.NewShipmentRepository(memOrders, memCarriers, memRoutes)
		memOrders.BindShipments(memShipments)

		shipmentRepo = memShipments
		orderRepo = memOrders
		carrierRepo = memCarriers
		routeRepo = memRoutes
		userRepo = storagememory.NewUserRepository()
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		redisCache, err := cacheredis.Open(ctx, cfg.RedisAddr)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.RedisCache = redisCache
		cache = redisCache
		logger.WithField("addr", cfg.RedisAddr).Info("redis cache initialized")
	} else {
		logger.Warn("LOGITRACK_REDIS_ADDR is not set, using in-memory cache")
		cache = cachememory.NewCache()
	}

	// Инициализация Kafka producer (опционально)
	var publisher domain.EventPublisher
	if kafkaBrokers := os.Getenv("KAFKA_BROKERS"); kafkaBrokers != "" {
		brokers := strings.Split(kafkaBrokers, ",")
		producer, err := kafka.NewProducer(brokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			deps.KafkaProducer = producer
			publisher = producer
			logger.WithField("brokers", brokers).Info("kafka producer initialized")
		}
	}

	tracking := shipment.NewTrackingCache(shipmentRepo, cache, cfg.CacheTTL, deps.Metrics, logger.WithField("component", "tracking-cache"))

	deps.Shipments = shipment.NewService(shipmentRepo, tracking, publisher, logger.WithField("component", "shipment-service"))
	deps.Orders = order.NewService(orderRepo, publisher, logger.WithField("component", "order-service"))
	deps.Carriers = carrier.NewService(carrierRepo)
	deps.Routes = route.NewService(routeRepo)
	deps.Users = user.NewService(userRepo, tokens, logger.WithField("component", "user-service"))

	return deps, nil
}

// Close освобождает внешние подключения в обратном порядке инициализации.
func (d *Dependencies) Close() {
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close kafka producer")
		}
	}
	if d.RedisCache != nil {
		if err := d.RedisCache.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close redis client")
		}
	}
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
