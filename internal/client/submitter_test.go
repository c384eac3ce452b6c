package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"nextstep/internal/domain/application"
	"nextstep/internal/domain/job"
	"nextstep/internal/swipe"

	"github.com/google/uuid"
)

func newSubmitterFixture(t *testing.T, handler http.Handler) (*Submitter, *swipe.Session, *swipe.Queue, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	session := swipe.NewSession("test-token")
	queue := swipe.NewQueue()
	api := NewAPIClient(srv.URL, session)
	return NewSubmitter(api, session, queue, nil), session, queue, srv
}

func trackerHandler(t *testing.T, status int, body string, hits *atomic.Int32) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		if r.URL.Path != "/api/v1/jobs/tracker" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" && status != http.StatusUnauthorized {
			t.Errorf("missing bearer token, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	})
}

func TestSubmitter_SubmitSuccess(t *testing.T) {
	var hits atomic.Int32
	s, session, queue, _ := newSubmitterFixture(t,
		trackerHandler(t, http.StatusCreated,
			`{"status":201,"message":"Job application recorded","data":{"_id":"x"}}`, &hits))

	jobID := uuid.New()
	queue.Replace([]job.Job{{ID: jobID}})

	res := s.Submit(context.Background(), jobID, application.DecisionApply)
	if res != ResultSuccess {
		t.Fatalf("expected success, got %v", res)
	}
	if !res.Final() {
		t.Fatalf("success must be final")
	}
	if queue.Len() != 0 {
		t.Fatalf("job must be removed from the queue")
	}
	if session.PendingCount() != 0 {
		t.Fatalf("pending mark must be released once resolved")
	}
	if hits.Load() != 1 {
		t.Fatalf("expected exactly one request, got %d", hits.Load())
	}
}

func TestSubmitter_ConflictIsFinal(t *testing.T) {
	s, session, queue, _ := newSubmitterFixture(t,
		trackerHandler(t, http.StatusConflict,
			`{"status":409,"message":"You've already applied for this job. Check your application status in 'My Jobs'.","data":{"code":"ALREADY_DECIDED"}}`, nil))

	jobID := uuid.New()
	queue.Replace([]job.Job{{ID: jobID}})

	res := s.Submit(context.Background(), jobID, application.DecisionApply)
	if res != ResultConflict {
		t.Fatalf("expected conflict, got %v", res)
	}
	if !res.Final() {
		t.Fatalf("conflict means the pair is decided server-side")
	}
	if queue.Len() != 0 {
		t.Fatalf("conflicted job must stay out of the queue")
	}
	if session.Token() == "" {
		t.Fatalf("conflict must not touch the token")
	}
}

func TestSubmitter_ConflictWithUnknownCode(t *testing.T) {
	s, _, queue, _ := newSubmitterFixture(t,
		trackerHandler(t, http.StatusConflict,
			`{"status":409,"message":"conflict","data":{"code":"SOMETHING_ELSE"}}`, nil))

	jobID := uuid.New()
	queue.Replace([]job.Job{{ID: jobID}})

	if res := s.Submit(context.Background(), jobID, application.DecisionApply); res != ResultValidation {
		t.Fatalf("unrecognized conflict code must not pass as decided, got %v", res)
	}
}

func TestSubmitter_AuthExpiredClearsTokenWithoutRetry(t *testing.T) {
	var hits atomic.Int32
	s, session, queue, _ := newSubmitterFixture(t,
		trackerHandler(t, http.StatusUnauthorized,
			`{"status":401,"message":"Unauthorized","data":null}`, &hits))

	jobID := uuid.New()
	queue.Replace([]job.Job{{ID: jobID}})

	res := s.Submit(context.Background(), jobID, application.DecisionReject)
	if res != ResultAuthExpired {
		t.Fatalf("expected auth expired, got %v", res)
	}
	if res.Final() {
		t.Fatalf("auth failure must not count as recorded")
	}
	if session.Token() != "" {
		t.Fatalf("expired token must be cleared")
	}
	if hits.Load() != 1 {
		t.Fatalf("no retry allowed, got %d requests", hits.Load())
	}
	if session.PendingCount() != 0 {
		t.Fatalf("pending mark must be released so the job can reappear")
	}
}

func TestSubmitter_RateLimited(t *testing.T) {
	s, _, queue, _ := newSubmitterFixture(t,
		trackerHandler(t, http.StatusTooManyRequests,
			`{"status":429,"message":"Too many requests","data":null}`, nil))

	jobID := uuid.New()
	queue.Replace([]job.Job{{ID: jobID}})

	if res := s.Submit(context.Background(), jobID, application.DecisionSkip); res != ResultRateLimited {
		t.Fatalf("expected rate limited, got %v", res)
	}
}

func TestSubmitter_NetworkErrorLosesDecision(t *testing.T) {
	var hits atomic.Int32
	s, session, queue, srv := newSubmitterFixture(t,
		trackerHandler(t, http.StatusCreated, `{}`, &hits))
	srv.Close()

	jobID := uuid.New()
	queue.Replace([]job.Job{{ID: jobID}})

	res := s.Submit(context.Background(), jobID, application.DecisionApply)
	if res != ResultNetworkError {
		t.Fatalf("expected network error, got %v", res)
	}
	if hits.Load() != 0 {
		t.Fatalf("server is down, no request should land")
	}
	// The card is already gone and stays gone; the decision is lost
	// rather than retried.
	if queue.Len() != 0 {
		t.Fatalf("queue must not restore the card on failure")
	}
	if session.PendingCount() != 0 {
		t.Fatalf("pending mark must be released on failure")
	}
}

func TestSubmitter_SubmitAsyncRemovesCardBeforeReturning(t *testing.T) {
	release := make(chan struct{})
	s, session, queue, _ := newSubmitterFixture(t,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"status":201,"message":"ok","data":null}`)
		}))

	first := job.Job{ID: uuid.New(), Title: "First"}
	second := job.Job{ID: uuid.New(), Title: "Second"}
	queue.Replace([]job.Job{first, second})

	done := make(chan Result, 1)
	s.SubmitAsync(context.Background(), first.ID, application.DecisionApply, func(res Result) {
		done <- res
	})

	// The request is still parked on the server; the queue and pending
	// set must already reflect the decision.
	current, ok := queue.Current()
	if !ok || current.ID != second.ID {
		t.Fatalf("next card must be current before the request resolves, got %v", current.Title)
	}
	if session.PendingCount() != 1 {
		t.Fatalf("pending mark must be set before the request resolves")
	}

	close(release)
	if res := <-done; res != ResultSuccess {
		t.Fatalf("expected success, got %v", res)
	}
	if session.PendingCount() != 0 {
		t.Fatalf("pending mark must be released once resolved")
	}
}

func TestSubmitter_RefreshSubtractsPending(t *testing.T) {
	keep := uuid.New()
	inFlight := uuid.New()

	s, session, queue, _ := newSubmitterFixture(t,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v1/jobs/feed" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w,
				`{"status":200,"message":"Job feed retrieved","data":[{"_id":"%s","title":"Backend Engineer"},{"_id":"%s","title":"Data Engineer"}]}`,
				keep, inFlight)
		}))

	session.MarkPending(inFlight)

	if err := s.Refresh(context.Background(), ""); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if queue.Len() != 1 {
		t.Fatalf("expected pending job subtracted, got %d jobs", queue.Len())
	}
	current, ok := queue.Current()
	if !ok || current.ID != keep {
		t.Fatalf("expected the non-pending job to be current")
	}
	if current.Title != "Backend Engineer" {
		t.Fatalf("job fields must survive decoding, got %q", current.Title)
	}
}

func TestSubmitter_RefreshEncodesQuery(t *testing.T) {
	const query = "c & c++ #senior"

	var got string
	s, _, _, _ := newSubmitterFixture(t,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.URL.Query().Get("q")
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"status":200,"message":"ok","data":[]}`)
		}))

	if err := s.Refresh(context.Background(), query); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if got != query {
		t.Fatalf("reserved characters must survive encoding, server saw %q", got)
	}
}

func TestSubmitter_RefreshAuthExpiredClearsToken(t *testing.T) {
	s, session, _, _ := newSubmitterFixture(t,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"status":401,"message":"Unauthorized","data":null}`)
		}))

	err := s.Refresh(context.Background(), "golang")
	if err == nil {
		t.Fatalf("expected error")
	}
	if session.Token() != "" {
		t.Fatalf("expired token must be cleared on refresh too")
	}
}
