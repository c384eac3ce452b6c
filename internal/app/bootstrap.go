package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"nextstep/internal/config"
	"nextstep/internal/database"
	"nextstep/internal/database/migration"
	dbpostgres "nextstep/internal/database/postgres"
	"nextstep/internal/delivery/http/middleware"
	"nextstep/internal/delivery/http/routes"
	"nextstep/internal/infrastructure/cache"
	"nextstep/internal/ws"
	"nextstep/migrations"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
	DB    database.DB
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	runner := migration.Runner{FS: migrations.FS}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	redisCache := cache.NewRedis(cfg.Redis, log.Default())

	hub := ws.NewHub(log.Default())
	go hub.Run()
	ws.SetDefaultHub(hub)
	wsHandler := ws.NewHandler(hub, log.Default())

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	errMw := middleware.NewErrorMiddleware()
	f.Use(errMw.Middleware())

	registry := routes.NewRegistry(cfg, db, redisCache, wsHandler)
	registry.Register(f)

	cleanup := func() error {
		_ = redisCache.Close()
		return db.Close()
	}

	return &App{Fiber: f, DB: db}, cleanup, nil
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
