package application

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Decision is the outcome of a resolved swipe. The wire value is the
// swipeMode integer; the mapping below is canonical across every surface.
type Decision int

const (
	DecisionApply  Decision = 1
	DecisionReject Decision = 2
	DecisionSkip   Decision = 3
	DecisionSave   Decision = 4
)

const (
	StatusPending      = "Pending"
	StatusInterviewing = "Interviewing"
	StatusOffered      = "Offered"
	StatusRejected     = "Rejected"
)

var (
	ErrNotFound       = errors.New("application not found")
	ErrAlreadyDecided = errors.New("pair already decided")
	ErrNotApplied     = errors.New("record is not an application")
	ErrInvalidStatus  = errors.New("invalid application status")
)

// Record is one (user, job) decision. Status and Notes are only meaningful
// when Decision is DecisionApply; non-Apply records are exclusion markers
// that keep the job out of the user's feed.
type Record struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	JobID     uuid.UUID
	Decision  Decision
	Status    string
	Notes     string
	DecidedAt time.Time
	UpdatedAt time.Time
}

func (d Decision) Valid() bool {
	switch d {
	case DecisionApply, DecisionReject, DecisionSkip, DecisionSave:
		return true
	}
	return false
}

func (d Decision) String() string {
	switch d {
	case DecisionApply:
		return "apply"
	case DecisionReject:
		return "reject"
	case DecisionSkip:
		return "skip"
	case DecisionSave:
		return "save"
	}
	return "unknown"
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInterviewing, StatusOffered, StatusRejected:
		return true
	}
	return false
}
