package app

import (
	"context"
	"fmt"
	"net/http"

	"go-roster/internal/config"
	"go-roster/internal/middleware"
	"go-roster/internal/shared/audit"
	"go-roster/internal/shared/connection"
	"go-roster/internal/staff"
	"go-roster/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App is the wired HTTP service plus whatever must be released on shutdown.
type App struct {
	Router *gin.Engine
	Audit  audit.Logger

	closers []func(context.Context)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i](ctx)
	}
}

func (a *App) onClose(fn func(context.Context)) {
	a.closers = append(a.closers, fn)
}

// BuildApp opens storage and the optional Redis and Kafka connections, then
// registers every module on a fresh router.
func BuildApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.L()
	}
	log := logger.Named("app")

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a := &App{Audit: audit.NewZapLogger(logger)}

	// 1. Setup Infrastructure
	kv, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	a.onClose(func(context.Context) {
		if err := kv.Close(); err != nil {
			log.Warn("close storage failed", zap.Error(err))
		}
	})
	log.Info("storage ready", zap.String("driver", cfg.Storage.Driver))

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Storage.MaxRetries)
		if err != nil {
			a.Close(context.Background())
			return nil, err
		}
		a.onClose(func(context.Context) { _ = rdb.Close() })
	} else {
		log.Info("REDIS_ADDR not set, sessions are kept in memory")
	}

	publisher, err := buildEventPublisher(a, kv, cfg.Kafka, log)
	if err != nil {
		a.Close(context.Background())
		return nil, err
	}

	// 2. Router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	a.Router = router

	// 3. Register Modules & Routes
	registerModules(router, modules{
		cfg:       cfg,
		kv:        kv,
		rdb:       rdb,
		publisher: publisher,
		audit:     a.Audit,
		logger:    logger,
	})

	return a, nil
}

// buildEventPublisher picks the lifecycle event path: none without a broker,
// a queued outbox kept in kv and drained by a worker, or direct writes.
func buildEventPublisher(a *App, kv storage.KV, cfg config.KafkaConfig, log *zap.Logger) (staff.EventPublisher, error) {
	if cfg.Broker == "" {
		log.Info("KAFKA_BROKER not set, lifecycle events are disabled")
		return staff.NewNoopEventPublisher(), nil
	}

	writer, err := connection.ConnectKafkaWithRetry(cfg.Broker, 5)
	if err != nil {
		return nil, err
	}
	a.onClose(func(context.Context) { _ = writer.Close() })

	if !cfg.Outbox {
		return staff.NewKafkaEventPublisher(writer), nil
	}

	publisher, stop, err := startOutboxWorker(kv, writer, cfg, log)
	if err != nil {
		return nil, err
	}
	a.onClose(stop)
	return publisher, nil
}
