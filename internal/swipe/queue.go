package swipe

import (
	"sync"

	"nextstep/internal/domain/job"

	"github.com/google/uuid"
)

type QueueState int

const (
	QueueLoading QueueState = iota
	QueueReady
	// QueueExhausted means the feed ran dry - distinct from loading and
	// from errors so the surface can offer a refresh action.
	QueueExhausted
)

// Queue holds the ordered undecided jobs and a cursor over them. Removal
// is id-addressed: background refreshes can reorder the list between the
// moment a card was shown and the moment its decision is acknowledged, so
// positions cannot be trusted.
type Queue struct {
	mu     sync.Mutex
	jobs   []job.Job
	cursor int
	state  QueueState
}

func NewQueue() *Queue {
	return &Queue{state: QueueLoading}
}

func (q *Queue) State() QueueState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// Replace swaps in a freshly fetched list and renormalizes the cursor.
func (q *Queue) Replace(jobs []job.Job) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.jobs = make([]job.Job, len(jobs))
	copy(q.jobs, jobs)
	q.cursor = 0
	if len(q.jobs) == 0 {
		q.state = QueueExhausted
	} else {
		q.state = QueueReady
	}
}

// Current returns the job under the cursor.
func (q *Queue) Current() (job.Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.jobs) == 0 {
		return job.Job{}, false
	}
	return q.jobs[q.cursor], true
}

// RemoveByID drops the job wherever it sits and keeps the cursor in
// bounds, whether or not the removed id was the current item. It reports
// whether the id was present.
func (q *Queue) RemoveByID(id uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	idx := -1
	for i, j := range q.jobs {
		if j.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	q.jobs = append(q.jobs[:idx], q.jobs[idx+1:]...)

	if idx < q.cursor {
		q.cursor--
	}
	if q.cursor >= len(q.jobs) {
		q.cursor = 0
	}
	if q.cursor < 0 {
		q.cursor = 0
	}
	if len(q.jobs) == 0 {
		q.state = QueueExhausted
	}
	return true
}

// IDs returns the queued job ids in order.
func (q *Queue) IDs() []uuid.UUID {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]uuid.UUID, 0, len(q.jobs))
	for _, j := range q.jobs {
		out = append(out, j.ID)
	}
	return out
}
