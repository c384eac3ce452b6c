package routes

import (
	"nextstep/internal/config"
	"nextstep/internal/database"
	"nextstep/internal/delivery/http/handler"
	v1 "nextstep/internal/delivery/http/routes/v1"
	"nextstep/internal/usecase"
	"nextstep/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg       config.Config
	db        database.DB
	feedCache usecase.FeedCache
	wsHandler *ws.Handler

	health *handler.HealthHandler
}

func NewRegistry(cfg config.Config, db database.DB, feedCache usecase.FeedCache, wsHandler *ws.Handler) *Registry {
	return &Registry{
		cfg:       cfg,
		db:        db,
		feedCache: feedCache,
		wsHandler: wsHandler,
		health:    handler.NewHealthHandler(),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.cfg, r.db, r.feedCache)

	if r.wsHandler != nil {
		app.Get("/ws/applications", r.wsHandler.HandleApplicationsWS)
	}
}
