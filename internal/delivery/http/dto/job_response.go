package dto

import (
	"nextstep/internal/domain/job"

	"github.com/google/uuid"
)

// JobResponse keeps the wire shape the swipe surfaces already consume.
type JobResponse struct {
	ID             uuid.UUID `json:"_id"`
	Title          string    `json:"title"`
	CompanyID      uuid.UUID `json:"companyId,omitempty"`
	CompanyName    string    `json:"companyName"`
	CompanyWebsite string    `json:"companyWebsite,omitempty"`
	JobDescription string    `json:"jobDescription"`
	Locations      []string  `json:"locations"`
	SalaryRange    string    `json:"salaryRange,omitempty"`
	Schedule       string    `json:"schedule,omitempty"`
	Benefits       []string  `json:"benefits,omitempty"`
	Skills         []string  `json:"skills,omitempty"`
	ExternalURL    string    `json:"externalUrl,omitempty"`
}

func FromJob(j job.Job) JobResponse {
	return JobResponse{
		ID:             j.ID,
		Title:          j.Title,
		CompanyID:      j.CompanyID,
		CompanyName:    j.CompanyName,
		CompanyWebsite: j.CompanyURL,
		JobDescription: j.Description,
		Locations:      j.Locations,
		SalaryRange:    j.SalaryRange,
		Schedule:       j.Schedule,
		Benefits:       j.Benefits,
		Skills:         j.Skills,
		ExternalURL:    j.ExternalURL,
	}
}

func FromJobs(jobs []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, FromJob(j))
	}
	return out
}
