package app

import (
	"time"

	"go-roster/internal/config"
	"go-roster/internal/middleware"
	"go-roster/internal/session"
	"go-roster/internal/shared/audit"
	"go-roster/internal/staff"
	"go-roster/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type modules struct {
	cfg       *config.Config
	kv        storage.KV
	rdb       *redis.Client
	publisher staff.EventPublisher
	audit     audit.Logger
	logger    *zap.Logger
}

func registerModules(router *gin.Engine, m modules) {
	// --- Session Gate ---
	var sessionStore session.Store
	if m.rdb != nil {
		sessionStore = session.NewRedisStore(m.rdb)
	} else {
		sessionStore = session.NewMemoryStore(time.Now)
	}
	tokens := session.NewTokenSigner(m.cfg.Session.Secret, m.cfg.Session.TTL, time.Now)
	sessionService := session.NewService(m.cfg.Session.Passcode, m.cfg.Session.TTL, sessionStore, tokens, m.logger)

	// --- Repositories ---
	staffRepo := staff.NewRepository(m.kv, m.logger)

	// --- Services ---
	staffService := staff.NewService(staffRepo, m.publisher, m.audit, m.logger)

	// --- Handlers ---
	sessionHandler := session.NewHandler(sessionService, m.cfg.Session.CookieName, m.cfg.App.IsProduction(), m.logger)
	staffHandler := staff.NewHandler(staffService, m.cfg.Import.MaxBytes, m.logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		session.RegisterRoutes(api, sessionHandler)
		staff.RegisterRoutes(
			api,
			staffHandler,
			middleware.RequireSession(sessionService, m.cfg.Session.CookieName),
			m.rdb,
			m.logger,
		)
	}
}
