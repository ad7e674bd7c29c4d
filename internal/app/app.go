package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/config"
	"github.com/portfolio-space/core/internal/database"
	"github.com/portfolio-space/core/internal/middleware"
	"github.com/portfolio-space/core/internal/modules/auth"
	"github.com/portfolio-space/core/internal/pkg/blob"
	"github.com/portfolio-space/core/internal/pkg/flash"
	jwtpkg "github.com/portfolio-space/core/internal/pkg/jwt"
	pkgredis "github.com/portfolio-space/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	db      *gorm.DB
	redis   *pkgredis.Client
	store   blob.Store
	metrics *middleware.Metrics
	logger  *zap.Logger
}

// New initializes the application: config → DB → Redis → blob store → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := applyRuntimeSettings(cfg); err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	if _, err := auth.NewService(db).EnsureAdmin(cfg.Admin.Username, cfg.Admin.Password, logger); err != nil {
		return nil, fmt.Errorf("bootstrap admin: %w", err)
	}

	var rc *pkgredis.Client
	if url := strings.TrimSpace(cfg.RedisURL); url != "" {
		if rc, err = pkgredis.Connect(url); err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	} else {
		logger.Info("redis_url is empty, using in-memory rate limiting and no API cache")
	}

	store, err := blob.Open(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	return build(logger, cfg, db, rc, store)
}

// build wires the router around already-opened dependencies. rc may be nil.
func build(logger *zap.Logger, cfg *config.AppConfig, db *gorm.DB, rc *pkgredis.Client, store blob.Store) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	flash.Secure = !cfg.Debug
	if secret := strings.TrimSpace(cfg.SecretKey); secret != "" {
		jwtpkg.SetSecret(secret)
	} else {
		logger.Warn("secret_key is empty, using built-in default secret")
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	metrics := middleware.NewMetrics()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(metrics.Middleware())
	router.Use(middleware.AllowedHosts(cfg.AllowedHosts, cfg.Debug))
	router.Use(middleware.SecurityHeaders(cfg.Debug))
	router.Use(cors.New(corsConfig(cfg)))

	a := &App{cfg: cfg, router: router, db: db, redis: rc, store: store, metrics: metrics, logger: logger}
	if err := a.registerRoutes(); err != nil {
		return nil, err
	}
	return a, nil
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-idempotence"},
		ExposeHeaders:    []string{"Content-Length", "x-portfolio-cache"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		c.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		c.AllowOriginFunc = func(string) bool { return true }
	}
	return c
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// DB exposes the database handle for management commands.
func (a *App) DB() *gorm.DB { return a.db }

// Shutdown releases the redis pool.
func (a *App) Shutdown() {
	if err := a.redis.Close(); err != nil {
		a.logger.Warn("close redis", zap.Error(err))
	}
}
