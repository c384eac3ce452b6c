package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"nextstep/internal/domain/application"
	"nextstep/internal/domain/job"
	"nextstep/internal/domain/user"
	"nextstep/internal/search"

	"github.com/google/uuid"
)

type stubUserRepo struct {
	profiles map[uuid.UUID]user.Profile
}

func (r *stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return p, nil
}

type stubJobRepo struct {
	mu        sync.Mutex
	jobs      []job.Job
	calls     int
	lastQuery string
	lastLimit int
}

func (r *stubJobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (job.Job, error) {
	for _, j := range r.jobs {
		if j.ID == jobID {
			return j, nil
		}
	}
	return job.Job{}, job.ErrNotFound
}

func (r *stubJobRepo) FeedCandidates(ctx context.Context, userID uuid.UUID, queryText string, limit int) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.lastQuery = queryText
	r.lastLimit = limit
	return r.jobs, nil
}

func feedFixture(profile user.Profile, jobs []job.Job, cache FeedCache) (*Feed, *stubJobRepo) {
	jobRepo := &stubJobRepo{jobs: jobs}
	userRepo := &stubUserRepo{profiles: map[uuid.UUID]user.Profile{profile.ID: profile}}
	return NewFeedUsecase(jobRepo, userRepo, search.NewKeywordRanker(), cache, 50), jobRepo
}

func TestFeed_IncompleteProfileWithoutQuery(t *testing.T) {
	profile := user.Profile{ID: uuid.New()}
	u, repo := feedFixture(profile, makeFeedJobs(2), nil)

	_, err := u.GetFeed(context.Background(), profile.ID, "")
	if !errors.Is(err, ErrIncompleteProfile) {
		t.Fatalf("expected incomplete profile error, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("no candidates should be fetched for an unrankable request")
	}
}

func TestFeed_QueryRescuesIncompleteProfile(t *testing.T) {
	profile := user.Profile{ID: uuid.New()}
	u, repo := feedFixture(profile, makeFeedJobs(2), nil)

	jobs, err := u.GetFeed(context.Background(), profile.ID, "golang")
	if err != nil {
		t.Fatalf("query must substitute for profile signal: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected candidates back, got %d", len(jobs))
	}
	if repo.lastQuery != "golang" {
		t.Fatalf("query must reach the candidate fetch, got %q", repo.lastQuery)
	}
}

func TestFeed_CompleteProfileWithoutQuery(t *testing.T) {
	profile := user.Profile{ID: uuid.New(), Skills: []string{"Go"}, Location: "Berlin"}
	u, _ := feedFixture(profile, makeFeedJobs(3), nil)

	jobs, err := u.GetFeed(context.Background(), profile.ID, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jobs))
	}
}

func TestFeed_RankedByProfileSkills(t *testing.T) {
	profile := user.Profile{ID: uuid.New(), Skills: []string{"Go"}, Location: ""}
	match := job.Job{ID: uuid.New(), Title: "Go Engineer", Skills: []string{"Go", "Postgres"}}
	other := job.Job{ID: uuid.New(), Title: "Accountant"}
	u, _ := feedFixture(profile, []job.Job{other, match}, nil)

	jobs, err := u.GetFeed(context.Background(), profile.ID, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs[0].ID != match.ID {
		t.Fatalf("skill match must rank first")
	}
}

func TestFeed_CacheHitSkipsCandidateFetch(t *testing.T) {
	profile := user.Profile{ID: uuid.New(), Skills: []string{"Go"}}
	cache := newRecordingCache()
	u, repo := feedFixture(profile, makeFeedJobs(2), cache)

	if _, err := u.GetFeed(context.Background(), profile.ID, "backend"); err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	if _, err := u.GetFeed(context.Background(), profile.ID, "backend"); err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("second fetch must be served from cache, got %d candidate queries", repo.calls)
	}
}

func TestFeed_CacheKeysVaryByQuery(t *testing.T) {
	profile := user.Profile{ID: uuid.New(), Skills: []string{"Go"}}
	cache := newRecordingCache()
	u, repo := feedFixture(profile, makeFeedJobs(2), cache)

	if _, err := u.GetFeed(context.Background(), profile.ID, "backend"); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if _, err := u.GetFeed(context.Background(), profile.ID, "frontend"); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if repo.calls != 2 {
		t.Fatalf("distinct queries must not share a cache entry, got %d queries", repo.calls)
	}
}

func TestFeed_DecisionInvalidatesCachedFeeds(t *testing.T) {
	profile := user.Profile{ID: uuid.New(), Skills: []string{"Go"}}
	cache := newRecordingCache()
	u, repo := feedFixture(profile, makeFeedJobs(2), cache)

	if _, err := u.GetFeed(context.Background(), profile.ID, ""); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	tracker := NewTrackerUsecase(newMemApplicationRepo(), cache)
	if _, err := tracker.SubmitDecision(context.Background(), profile.ID, uuid.New(), application.DecisionApply); err != nil {
		t.Fatalf("decision failed: %v", err)
	}

	if _, err := u.GetFeed(context.Background(), profile.ID, ""); err != nil {
		t.Fatalf("refetch failed: %v", err)
	}
	if repo.calls != 2 {
		t.Fatalf("decision must invalidate the cached feed, got %d candidate queries", repo.calls)
	}
}

func TestFeed_UnknownUser(t *testing.T) {
	u, _ := feedFixture(user.Profile{ID: uuid.New(), Skills: []string{"Go"}}, nil, nil)

	_, err := u.GetFeed(context.Background(), uuid.New(), "")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for unknown user, got %v", err)
	}
}

func makeFeedJobs(n int) []job.Job {
	jobs := make([]job.Job, n)
	for i := range jobs {
		jobs[i] = job.Job{ID: uuid.New(), Title: "Engineer"}
	}
	return jobs
}
