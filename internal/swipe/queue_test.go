package swipe

import (
	"testing"

	"nextstep/internal/domain/job"

	"github.com/google/uuid"
)

func makeJobs(n int) []job.Job {
	jobs := make([]job.Job, n)
	for i := range jobs {
		jobs[i] = job.Job{ID: uuid.New(), Title: "Job"}
	}
	return jobs
}

func TestQueue_StartsLoading(t *testing.T) {
	q := NewQueue()
	if q.State() != QueueLoading {
		t.Fatalf("expected loading state, got %v", q.State())
	}
	if _, ok := q.Current(); ok {
		t.Fatalf("empty queue must have no current job")
	}
}

func TestQueue_ReplaceSetsReady(t *testing.T) {
	q := NewQueue()
	jobs := makeJobs(3)
	q.Replace(jobs)

	if q.State() != QueueReady {
		t.Fatalf("expected ready, got %v", q.State())
	}
	current, ok := q.Current()
	if !ok || current.ID != jobs[0].ID {
		t.Fatalf("expected first job current")
	}
}

func TestQueue_ReplaceEmptyIsExhausted(t *testing.T) {
	q := NewQueue()
	q.Replace(nil)
	if q.State() != QueueExhausted {
		t.Fatalf("expected exhausted, got %v", q.State())
	}
}

func TestQueue_RemoveCurrentAdvances(t *testing.T) {
	q := NewQueue()
	jobs := makeJobs(3)
	q.Replace(jobs)

	if !q.RemoveByID(jobs[0].ID) {
		t.Fatalf("expected removal to report presence")
	}
	current, ok := q.Current()
	if !ok || current.ID != jobs[1].ID {
		t.Fatalf("expected cursor to resolve to the next job")
	}
	if q.Len() != 2 {
		t.Fatalf("expected 2 jobs left, got %d", q.Len())
	}
}

func TestQueue_RemoveOtherIDKeepsCurrent(t *testing.T) {
	q := NewQueue()
	jobs := makeJobs(3)
	q.Replace(jobs)

	q.RemoveByID(jobs[0].ID)
	current, _ := q.Current()
	if current.ID != jobs[1].ID {
		t.Fatalf("setup: expected second job current")
	}

	// Removing an id that is not current must not move what the user sees.
	q.RemoveByID(jobs[2].ID)
	current, ok := q.Current()
	if !ok || current.ID != jobs[1].ID {
		t.Fatalf("current job must survive removal of another id")
	}
}

func TestQueue_RemoveMissingIDIsNoop(t *testing.T) {
	q := NewQueue()
	jobs := makeJobs(2)
	q.Replace(jobs)

	if q.RemoveByID(uuid.New()) {
		t.Fatalf("unknown id must report absent")
	}
	if q.Len() != 2 {
		t.Fatalf("queue must be untouched")
	}
}

func TestQueue_RemoveLastIsExhausted(t *testing.T) {
	q := NewQueue()
	jobs := makeJobs(1)
	q.Replace(jobs)

	q.RemoveByID(jobs[0].ID)
	if q.State() != QueueExhausted {
		t.Fatalf("expected exhausted after last removal, got %v", q.State())
	}
	if _, ok := q.Current(); ok {
		t.Fatalf("exhausted queue must have no current job")
	}
}

func TestQueue_IDsPreserveOrder(t *testing.T) {
	q := NewQueue()
	jobs := makeJobs(4)
	q.Replace(jobs)
	q.RemoveByID(jobs[1].ID)

	ids := q.IDs()
	want := []uuid.UUID{jobs[0].ID, jobs[2].ID, jobs[3].ID}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("id order mismatch at %d", i)
		}
	}
}
