package handler

import (
	"errors"

	"nextstep/internal/delivery/http/dto"
	"nextstep/internal/delivery/http/middleware"
	"nextstep/internal/domain/application"
	"nextstep/internal/pkg/response"
	"nextstep/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationsUsecase
}

func NewApplicationHandler(uc usecase.ApplicationsUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.ListApplications)
}

func (h *ApplicationHandler) RegisterEmployerRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Put("/applications/:id", h.UpdateStatus)
}

func (h *ApplicationHandler) ListApplications(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	rows, err := h.uc.ListForUser(c.Context(), userID)
	if err != nil {
		return mapApplicationsError(err)
	}

	out := make([]dto.ApplicationResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.FromApplicationRow(row))
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	employerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	rec, err := h.uc.UpdateStatus(c.Context(), employerID, applicationID, req.Status, req.Notes)
	if err != nil {
		return mapApplicationsError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromUpdatedRecord(rec))
}

func mapApplicationsError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden), errors.Is(err, usecase.ErrCompanyMismatch):
		return middleware.NewAppError(fiber.StatusForbidden, "Only employers can update application status", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request", nil, err)
	case errors.Is(err, application.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest,
			"Invalid status. Must be one of: Pending, Interviewing, Offered, Rejected", nil, err)
	case errors.Is(err, application.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, application.ErrNotApplied):
		return middleware.NewAppError(fiber.StatusConflict, "Record is not an application", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
