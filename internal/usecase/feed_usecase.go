package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"nextstep/internal/domain/job"
	"nextstep/internal/domain/user"
	"nextstep/internal/repository"
	"nextstep/internal/search"

	"github.com/google/uuid"
)

type FeedUsecase interface {
	// GetFeed returns ranked candidate jobs for userID with every decided
	// pair excluded server-side. When queryText is empty and the profile
	// has neither skills nor a location it fails with
	// ErrIncompleteProfile instead of returning an unranked result.
	GetFeed(ctx context.Context, userID uuid.UUID, queryText string) ([]job.Job, error)
}

type Feed struct {
	jobs    repository.JobRepository
	users   repository.UserRepository
	ranker  search.Ranker
	cache   FeedCache
	maxJobs int
}

func NewFeedUsecase(jobs repository.JobRepository, users repository.UserRepository, ranker search.Ranker, cache FeedCache, maxJobs int) *Feed {
	if maxJobs <= 0 {
		maxJobs = 50
	}
	return &Feed{jobs: jobs, users: users, ranker: ranker, cache: cache, maxJobs: maxJobs}
}

func (u *Feed) GetFeed(ctx context.Context, userID uuid.UUID, queryText string) ([]job.Job, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	profile, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		log.Printf("[Feed] profile load failed user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: load profile: %v", ErrInternal, err)
	}

	if queryText == "" && profile.Incomplete() {
		return nil, ErrIncompleteProfile
	}

	// Cached entries are invalidated on every recorded decision for this
	// user, so a hit is as fresh as a direct query.
	key := feedCacheKey(userID, queryText)
	if u.cache != nil {
		var cached []job.Job
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	candidates, err := u.jobs.FeedCandidates(ctx, userID, queryText, u.maxJobs)
	if err != nil {
		log.Printf("[Feed] candidate query failed user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: fetch candidates: %v", ErrInternal, err)
	}

	variants := search.ProfileVariants(profile.Skills, profile.Location, queryText)
	ranked := candidates
	if u.ranker != nil {
		ranked = u.ranker.Rank(candidates, variants)
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, ranked, 0); err != nil {
			log.Printf("[Feed] cache set failed: %v", err)
		}
	}

	return ranked, nil
}
