package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

// Profile is the read-only ranking input owned by the account surface.
type Profile struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Skills       []string
	Location     string
	EmployerFlag bool
	CompanyID    uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Incomplete reports whether the profile carries no ranking signal at all.
func (p Profile) Incomplete() bool {
	return len(p.Skills) == 0 && p.Location == ""
}
