package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"screenhub/internal/config"
	"screenhub/internal/database"
	"screenhub/internal/database/postgres"
	"screenhub/internal/database/schema"
	"screenhub/internal/delivery/http/middleware"
	"screenhub/internal/delivery/http/routes"
	v1 "screenhub/internal/delivery/http/routes/v1"
	"screenhub/internal/infrastructure/cache"
	"screenhub/internal/infrastructure/llm"
	"screenhub/internal/infrastructure/mailer"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber *fiber.App

	db        database.DB
	cacheConn *cache.Redis
	logger    *log.Logger
}

// Bootstrap connects the process dependencies, applies the schema and wires
// the HTTP surface. The returned cleanup closes what was opened.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if err := schema.Ensure(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}

	cacheConn := cache.NewRedis(cfg.Redis, logger)
	notifier := mailer.NewSMTPNotifier(cfg.SMTP, logger)
	generator := llm.NewOllamaClient(cfg.Ollama, logger)

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, cfg, logger)

	deps := v1.Deps{
		Cfg:       cfg,
		DB:        db,
		Cache:     cacheConn,
		Notifier:  notifier,
		Generator: generator,
		Logger:    logger,
	}
	routes.NewRegistry(deps, cacheConn).Register(f)

	a := &App{Fiber: f, db: db, cacheConn: cacheConn, logger: logger}

	cleanup := func() error {
		if err := cacheConn.Close(); err != nil {
			logger.Printf("[App] cache close error: %v", err)
		}
		return db.Close()
	}
	return a, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
