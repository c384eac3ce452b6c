package v1

import (
	"time"

	"nextstep/internal/config"
	"nextstep/internal/database"
	"nextstep/internal/delivery/http/handler"
	"nextstep/internal/delivery/http/middleware"
	"nextstep/internal/pkg/jwt"
	"nextstep/internal/repository"
	"nextstep/internal/search"
	"nextstep/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, feedCache usecase.FeedCache) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	applicationRepo := repository.NewPostgresApplicationRepository(db)

	feedUC := usecase.NewFeedUsecase(jobRepo, userRepo, search.NewKeywordRanker(), feedCache, cfg.Feed.MaxJobs)
	trackerUC := usecase.NewTrackerUsecase(applicationRepo, feedCache)
	applicationsUC := usecase.NewApplicationsUsecase(applicationRepo, userRepo)

	feedHandler := handler.NewFeedHandler(feedUC)
	trackerHandler := handler.NewTrackerHandler(trackerUC)
	applicationHandler := handler.NewApplicationHandler(applicationsUC)

	protected := r.Group("", authMw.Middleware())

	jobsGroup := protected.Group("/jobs")
	feedHandler.RegisterRoutes(jobsGroup)

	// Decision submissions are the only mutation a seeker can spam.
	trackerLimit := cfg.Feed.TrackerRateLimit
	if trackerLimit <= 0 {
		trackerLimit = 60
	}
	trackerGroup := protected.Group("/jobs", limiter.New(limiter.Config{
		Max:        trackerLimit,
		Expiration: time.Minute,
	}))
	trackerHandler.RegisterRoutes(trackerGroup)

	applicationsGroup := protected.Group("/applications")
	applicationHandler.RegisterRoutes(applicationsGroup)

	employerGroup := protected.Group("/employer", middleware.RequireEmployer())
	applicationHandler.RegisterEmployerRoutes(employerGroup)
}
