package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"nextstep/internal/domain/application"
	"nextstep/internal/domain/user"
	"nextstep/internal/repository"
	"nextstep/internal/ws"

	"github.com/google/uuid"
)

var ErrCompanyMismatch = errors.New("application does not belong to caller's company")

type ApplicationsUsecase interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]repository.ApplicationRow, error)
	// UpdateStatus is the employer surface. Status moves freely among the
	// four values; only Apply records carry a status at all.
	UpdateStatus(ctx context.Context, employerID, applicationID uuid.UUID, status, notes string) (application.Record, error)
}

type Applications struct {
	applications repository.ApplicationRepository
	users        repository.UserRepository
}

func NewApplicationsUsecase(applications repository.ApplicationRepository, users repository.UserRepository) *Applications {
	return &Applications{applications: applications, users: users}
}

func (u *Applications) ListForUser(ctx context.Context, userID uuid.UUID) ([]repository.ApplicationRow, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	rows, err := u.applications.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("[Applications] list failed user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: list applications: %v", ErrInternal, err)
	}
	return rows, nil
}

func (u *Applications) UpdateStatus(ctx context.Context, employerID, applicationID uuid.UUID, status, notes string) (application.Record, error) {
	if employerID == uuid.Nil {
		return application.Record{}, ErrUnauthorized
	}
	if applicationID == uuid.Nil {
		return application.Record{}, ErrInvalidInput
	}
	if !application.ValidStatus(status) {
		return application.Record{}, application.ErrInvalidStatus
	}

	employer, err := u.users.GetByID(ctx, employerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return application.Record{}, ErrUnauthorized
		}
		log.Printf("[Applications] employer load failed user=%s: %v", employerID, err)
		return application.Record{}, fmt.Errorf("%w: load employer: %v", ErrInternal, err)
	}
	if !employer.EmployerFlag || employer.CompanyID == uuid.Nil {
		return application.Record{}, ErrForbidden
	}

	rec, companyID, err := u.applications.GetForEmployer(ctx, applicationID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Record{}, application.ErrNotFound
		}
		log.Printf("[Applications] lookup failed application=%s: %v", applicationID, err)
		return application.Record{}, fmt.Errorf("%w: load application: %v", ErrInternal, err)
	}
	if companyID != employer.CompanyID {
		return application.Record{}, ErrCompanyMismatch
	}
	if rec.Decision != application.DecisionApply {
		// Exclusion markers never carry a follow-up status.
		return application.Record{}, application.ErrNotApplied
	}

	updated, err := u.applications.UpdateStatus(ctx, applicationID, status, notes)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Record{}, application.ErrNotFound
		}
		log.Printf("[Applications] status update failed application=%s: %v", applicationID, err)
		return application.Record{}, fmt.Errorf("%w: update status: %v", ErrInternal, err)
	}

	ws.NotifyStatusChanged(updated.ID, updated.Status)

	return updated, nil
}
