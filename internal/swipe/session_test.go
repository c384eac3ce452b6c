package swipe

import (
	"testing"

	"github.com/google/uuid"
)

func TestSession_TokenLifecycle(t *testing.T) {
	s := NewSession("tok-1")
	if s.Token() != "tok-1" {
		t.Fatalf("expected initial token")
	}

	s.SetToken("tok-2")
	if s.Token() != "tok-2" {
		t.Fatalf("expected replaced token")
	}

	s.ClearToken()
	if s.Token() != "" {
		t.Fatalf("expected cleared token")
	}
}

func TestSession_FilterPendingSubtractsInFlightJobs(t *testing.T) {
	s := NewSession("tok")
	jobs := makeJobs(3)

	s.MarkPending(jobs[1].ID)

	filtered := s.FilterPending(jobs)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 jobs after subtraction, got %d", len(filtered))
	}
	for _, j := range filtered {
		if j.ID == jobs[1].ID {
			t.Fatalf("pending job must not survive the filter")
		}
	}
}

func TestSession_ResolveReleasesID(t *testing.T) {
	s := NewSession("tok")
	jobs := makeJobs(2)

	s.MarkPending(jobs[0].ID)
	if s.PendingCount() != 1 {
		t.Fatalf("expected one pending id")
	}

	s.Resolve(jobs[0].ID)
	if s.PendingCount() != 0 {
		t.Fatalf("expected no pending ids after resolve")
	}

	filtered := s.FilterPending(jobs)
	if len(filtered) != 2 {
		t.Fatalf("resolved job must reappear in fresh lists")
	}
}

func TestSession_FilterPendingEmptySetPassesThrough(t *testing.T) {
	s := NewSession("tok")
	jobs := makeJobs(2)

	filtered := s.FilterPending(jobs)
	if len(filtered) != len(jobs) {
		t.Fatalf("expected passthrough with no pending ids")
	}
}

func TestSession_ResolveUnknownIDIsNoop(t *testing.T) {
	s := NewSession("tok")
	s.MarkPending(uuid.New())
	s.Resolve(uuid.New())
	if s.PendingCount() != 1 {
		t.Fatalf("unrelated resolve must not drop other pending ids")
	}
}
