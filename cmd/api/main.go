package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockflow-api/internal/config"
	"stockflow-api/internal/handler"
	"stockflow-api/internal/metrics"
	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"
	"stockflow-api/internal/service"
	"stockflow-api/internal/ws"
	"stockflow-api/pkg/database"
	"stockflow-api/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := cfg.NewLogger()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. In-memory workspace
	db := repository.NewMemDB(repository.SeedDataset(cfg.SeedDemoData, time.Now()))
	deps := service.NewDependencies(db)

	// 3. Optional preference database
	if cfg.DatabaseURL != "" {
		gormDB, err := database.ConnectDB(cfg.DatabaseURL)
		if err != nil {
			log.Error("connect database", "error", err)
			os.Exit(1)
		}
		if err := gormDB.AutoMigrate(&model.PreferenceRecord{}); err != nil {
			log.Error("migrate preferences", "error", err)
			os.Exit(1)
		}
		deps.Preferences = repository.NewPreferenceRepo(gormDB)
	} else {
		log.Info("DATABASE_URL not set, theme preference kept in memory")
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(log)
	go wsHub.Run(ctx)

	// 5. Dependency Injection (Wiring Layers)
	deps.Notifier = wsHub
	deps.Metrics = metrics.Default()
	deps.Logger = log
	signer := jwt.NewSigner(cfg.JWTSecret, cfg.TokenTTL)
	router := handler.NewRouter(deps, signer)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		select {
		case wsHub.Register <- c:
		case <-ctx.Done():
			return
		}
		defer func() {
			select {
			case wsHub.Unregister <- c:
			case <-ctx.Done():
			}
		}()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Routes
	router.Register(app.Group("/api/v1"))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server exited")
}
