package job

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

// Job is immutable from the swipe core's perspective; postings are owned by
// the employer-facing management surface.
type Job struct {
	ID          uuid.UUID
	CompanyID   uuid.UUID
	CompanyName string
	CompanyURL  string
	Title       string
	Description string
	Locations   []string
	SalaryRange string
	Schedule    string
	Benefits    []string
	Skills      []string
	ExternalURL string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PrimaryLocation returns the first listed location.
func (j Job) PrimaryLocation() string {
	if len(j.Locations) == 0 {
		return ""
	}
	return j.Locations[0]
}

type Company struct {
	ID      uuid.UUID
	Name    string
	Website string
}
