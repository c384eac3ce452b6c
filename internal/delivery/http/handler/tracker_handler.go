package handler

import (
	"errors"

	"nextstep/internal/delivery/http/dto"
	"nextstep/internal/delivery/http/middleware"
	"nextstep/internal/domain/application"
	"nextstep/internal/domain/job"
	"nextstep/internal/pkg/response"
	"nextstep/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type TrackerHandler struct {
	uc usecase.TrackerUsecase
}

func NewTrackerHandler(uc usecase.TrackerUsecase) *TrackerHandler {
	return &TrackerHandler{uc: uc}
}

func (h *TrackerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/tracker", h.TrackDecision)
}

func (h *TrackerHandler) TrackDecision(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.TrackDecisionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	rec, err := h.uc.SubmitDecision(c.Context(), userID, req.JobID, application.Decision(req.SwipeMode))
	if err != nil {
		return mapTrackerError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.TrackDecisionResponse{
		ApplicationID: rec.ID,
		JobID:         rec.JobID,
		UserID:        rec.UserID,
		Decision:      rec.Decision.String(),
	})
}

func mapTrackerError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id or swipe mode", nil, err)
	case errors.Is(err, job.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, application.ErrAlreadyDecided):
		// Structured code so clients never match on message text.
		return middleware.NewAppError(fiber.StatusConflict,
			"You've already applied for this job. Check your application status in 'My Jobs'.",
			response.ErrorCode{Code: response.CodeAlreadyDecided}, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
