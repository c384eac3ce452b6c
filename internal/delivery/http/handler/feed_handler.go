package handler

import (
	"errors"

	"nextstep/internal/delivery/http/dto"
	"nextstep/internal/delivery/http/middleware"
	"nextstep/internal/pkg/response"
	"nextstep/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type FeedHandler struct {
	uc usecase.FeedUsecase
}

func NewFeedHandler(uc usecase.FeedUsecase) *FeedHandler {
	return &FeedHandler{uc: uc}
}

func (h *FeedHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/feed", h.GetFeed)
}

func (h *FeedHandler) GetFeed(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobs, err := h.uc.GetFeed(c.Context(), userID, c.Query("q"))
	if err != nil {
		return mapFeedError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJobs(jobs))
}

func mapFeedError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrIncompleteProfile):
		return middleware.NewAppError(fiber.StatusBadRequest,
			"Please complete your profile to get job recommendations",
			response.ErrorCode{Code: response.CodeIncompleteProfile}, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
