package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"nextstep/internal/domain/application"
	"nextstep/internal/domain/job"
	"nextstep/internal/repository"
	"nextstep/internal/ws"

	"github.com/google/uuid"
)

type TrackerUsecase interface {
	// SubmitDecision records one decision for the (user, job) pair.
	// A duplicate Apply, or any write against an existing Apply, surfaces
	// application.ErrAlreadyDecided; non-Apply decisions overwrite one
	// another last-writer-wins.
	SubmitDecision(ctx context.Context, userID, jobID uuid.UUID, decision application.Decision) (application.Record, error)
}

type Tracker struct {
	applications repository.ApplicationRepository
	cache        FeedCache
}

func NewTrackerUsecase(applications repository.ApplicationRepository, cache FeedCache) *Tracker {
	return &Tracker{applications: applications, cache: cache}
}

func (u *Tracker) SubmitDecision(ctx context.Context, userID, jobID uuid.UUID, decision application.Decision) (application.Record, error) {
	if userID == uuid.Nil {
		return application.Record{}, ErrUnauthorized
	}
	if jobID == uuid.Nil || !decision.Valid() {
		return application.Record{}, ErrInvalidInput
	}

	rec, err := u.applications.RecordDecision(ctx, userID, jobID, decision)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrAlreadyDecided):
			return application.Record{}, application.ErrAlreadyDecided
		case errors.Is(err, job.ErrNotFound):
			return application.Record{}, job.ErrNotFound
		}
		log.Printf("[Tracker] record decision failed user=%s job=%s: %v", userID, jobID, err)
		return application.Record{}, fmt.Errorf("%w: record decision: %v", ErrInternal, err)
	}

	// The decided job must vanish from subsequent feed fetches.
	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, feedKeyPattern(userID)); err != nil {
			log.Printf("[Tracker] feed cache invalidation failed: %v", err)
		}
	}

	ws.NotifyApplicationRecorded(rec.JobID, rec.Decision.String())

	return rec, nil
}
