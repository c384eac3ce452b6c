package dto

import (
	"time"

	"nextstep/internal/domain/application"
	"nextstep/internal/repository"

	"github.com/google/uuid"
)

type TrackDecisionRequest struct {
	JobID     uuid.UUID `json:"_id"`
	SwipeMode int       `json:"swipeMode"`
}

type TrackDecisionResponse struct {
	ApplicationID uuid.UUID `json:"application_id"`
	JobID         uuid.UUID `json:"job_id"`
	UserID        uuid.UUID `json:"user_id"`
	Decision      string    `json:"decision"`
}

type ApplicationJobDetails struct {
	ID          uuid.UUID `json:"_id"`
	Title       string    `json:"title"`
	Locations   []string  `json:"locations"`
	SalaryRange string    `json:"salaryRange,omitempty"`
}

type ApplicationCompanyDetails struct {
	ID      uuid.UUID `json:"_id,omitempty"`
	Name    string    `json:"name"`
	Website string    `json:"website,omitempty"`
}

type ApplicationResponse struct {
	ID             uuid.UUID                 `json:"_id"`
	JobDetails     ApplicationJobDetails     `json:"jobDetails"`
	CompanyDetails ApplicationCompanyDetails `json:"companyDetails"`
	Decision       string                    `json:"decision"`
	Status         string                    `json:"status,omitempty"`
	Notes          string                    `json:"notes,omitempty"`
	DateApplied    time.Time                 `json:"date_applied"`
}

func FromApplicationRow(row repository.ApplicationRow) ApplicationResponse {
	return ApplicationResponse{
		ID: row.ID,
		JobDetails: ApplicationJobDetails{
			ID:          row.JobID,
			Title:       row.JobTitle,
			Locations:   row.JobLocations,
			SalaryRange: row.SalaryRange,
		},
		CompanyDetails: ApplicationCompanyDetails{
			ID:      row.CompanyID,
			Name:    row.CompanyName,
			Website: row.CompanyURL,
		},
		Decision:    row.Decision.String(),
		Status:      row.Status,
		Notes:       row.Notes,
		DateApplied: row.DecidedAt,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type UpdateStatusResponse struct {
	ApplicationID uuid.UUID `json:"application_id"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromUpdatedRecord(rec application.Record) UpdateStatusResponse {
	return UpdateStatusResponse{
		ApplicationID: rec.ID,
		Status:        rec.Status,
		Notes:         rec.Notes,
		UpdatedAt:     rec.UpdatedAt,
	}
}
