package swipe

import (
	"sync"

	"nextstep/internal/domain/job"

	"github.com/google/uuid"
)

// Session carries the credential and the set of locally pending job ids
// for one swipe surface. The token lives here, passed explicitly to the
// API client, instead of in ambient global storage shared across screens.
//
// Pending ids bridge the race between a refresh and an in-flight
// submission: a refresh that completes while a decision for job J is
// still unresolved must not resurrect J, so J stays subtracted from
// fresh lists until its submission resolves either way.
type Session struct {
	mu      sync.Mutex
	token   string
	pending map[uuid.UUID]struct{}
}

func NewSession(token string) *Session {
	return &Session{
		token:   token,
		pending: make(map[uuid.UUID]struct{}),
	}
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// ClearToken drops the credential after the server reported it expired.
func (s *Session) ClearToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

func (s *Session) MarkPending(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id] = struct{}{}
}

// Resolve releases a pending id once its submission finished. After a
// Success or Conflict the server filters the job out of future feeds;
// after an auth or transport failure nothing changed server-side and the
// job may legitimately reappear on the next refresh.
func (s *Session) Resolve(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
}

func (s *Session) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// FilterPending subtracts locally pending ids from a freshly fetched list.
func (s *Session) FilterPending(jobs []job.Job) []job.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return jobs
	}

	out := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		if _, ok := s.pending[j.ID]; ok {
			continue
		}
		out = append(out, j)
	}
	return out
}
