package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CodyCMAC/texas-lead-roper/internal/backend"
	"github.com/CodyCMAC/texas-lead-roper/internal/banner"
	"github.com/CodyCMAC/texas-lead-roper/internal/event"
	"github.com/CodyCMAC/texas-lead-roper/internal/form"
	"github.com/CodyCMAC/texas-lead-roper/internal/handler"
	"github.com/CodyCMAC/texas-lead-roper/internal/media"
	"github.com/CodyCMAC/texas-lead-roper/internal/middleware"
	"github.com/CodyCMAC/texas-lead-roper/internal/profile"
	"github.com/CodyCMAC/texas-lead-roper/internal/route"
	"github.com/CodyCMAC/texas-lead-roper/internal/session"
	"github.com/CodyCMAC/texas-lead-roper/internal/view"
	"github.com/CodyCMAC/texas-lead-roper/pkg/config"
	"github.com/CodyCMAC/texas-lead-roper/pkg/database"
	"github.com/CodyCMAC/texas-lead-roper/pkg/logger"
	"github.com/CodyCMAC/texas-lead-roper/pkg/metrics"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	log := logger.GetLogger()
	log.Info("Starting Lead Wrangler service...", cfg.LogConfig()...)

	// Backend: PostgreSQL through gorm, or process memory for demos
	var (
		db   backend.Client
		ping func(ctx context.Context) error
	)
	if cfg.DB.InMemory() {
		log.Warn("Using in-memory backend; data is lost on restart")
		db = backend.NewMemory()
	} else {
		gdb, err := database.Initialize(cfg.DB, log)
		if err != nil {
			log.Fatal("Failed to initialize database", zap.Error(err))
		}
		defer func() {
			if err := database.Close(gdb); err != nil {
				log.Error("Failed to close database", zap.Error(err))
			}
		}()
		db = backend.NewGorm(gdb)
		ping = func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}

	// Sessions
	registry := session.NewRegistry()
	tokens := session.NewTokens(cfg.JWT.SigningKey, time.Duration(cfg.JWT.ExpirationHours)*time.Hour)
	auth := session.NewAuth(db, tokens, registry)

	// Forms and their observers
	forms := form.NewService(db)
	forms.Subscribe(func(ctx context.Context, ev form.Event) {
		logger.FromContext(ctx).Debug("Record created",
			zap.String("entity", ev.Entity),
			zap.String("id", ev.ID.String()))
	})
	if cfg.Events.URL != "" {
		publisher, err := event.Dial(cfg.Events)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error("Failed to close RabbitMQ publisher", zap.Error(err))
			}
		}()
		forms.Subscribe(publisher.Observer())
	}

	avatars, err := media.NewCloudinary(cfg.Media.CloudinaryURL, cfg.Media.AvatarFolder)
	if err != nil {
		log.Fatal("Failed to initialize Cloudinary", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	feed := banner.NewFeed(cfg.Banner)
	if cfg.Banner.Enabled {
		go feed.Run(ctx)
	}

	h := handler.New(handler.Deps{
		Auth:     auth,
		Forms:    forms,
		Catalog:  view.NewCatalog(db),
		Profiles: profile.NewService(db, avatars),
		Banners:  feed,
		Ping:     ping,
	})

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestIDMiddleware)
	e.Use(middleware.SessionMiddleware(auth))
	e.Use(logger.Middleware())
	e.Use(metrics.NewHTTPMetrics(cfg.Metrics.ServiceName).Middleware())

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	route.Register(e, route.Table(h), h.NotFound)

	// Start server
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down server", zap.Error(err))
	}
}
