package client

import (
	"context"
	"errors"
	"log"

	"nextstep/internal/domain/application"
	"nextstep/internal/swipe"

	"github.com/google/uuid"
)

type Result int

const (
	ResultSuccess Result = iota
	// ResultConflict means the pair was already decided server-side; for
	// queue purposes it is equivalent to success.
	ResultConflict
	ResultAuthExpired
	ResultValidation
	ResultRateLimited
	ResultServerError
	ResultNetworkError
)

func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultConflict:
		return "conflict"
	case ResultAuthExpired:
		return "auth expired"
	case ResultValidation:
		return "validation error"
	case ResultRateLimited:
		return "rate limited"
	case ResultServerError:
		return "server error"
	case ResultNetworkError:
		return "network error"
	}
	return "unknown"
}

// Final reports whether the decision is now recorded server-side.
func (r Result) Final() bool {
	return r == ResultSuccess || r == ResultConflict
}

// Submitter drives the decision flow: optimistic queue removal, pending
// tracking across refreshes, and outcome reconciliation. A failed
// submission is never retried automatically - once the user has moved on,
// a retry firing when connectivity returns could record a duplicate
// decision, so losing the decision is the accepted cost.
type Submitter struct {
	api     *APIClient
	session *swipe.Session
	queue   *swipe.Queue
	logger  *log.Logger
}

func NewSubmitter(api *APIClient, session *swipe.Session, queue *swipe.Queue, logger *log.Logger) *Submitter {
	return &Submitter{api: api, session: session, queue: queue, logger: logger}
}

// Submit records one decision. The card is removed from the queue before
// the request is sent and is not restored on failure; the pending mark
// keeps concurrent refreshes from resurrecting the job until the request
// resolves.
func (s *Submitter) Submit(ctx context.Context, jobID uuid.UUID, decision application.Decision) Result {
	s.begin(jobID)
	return s.send(ctx, jobID, decision)
}

// SubmitAsync removes the card and marks it pending before returning, so
// the caller sees the next card immediately; the network call resolves on
// its own goroutine and the result lands in onDone.
func (s *Submitter) SubmitAsync(ctx context.Context, jobID uuid.UUID, decision application.Decision, onDone func(Result)) {
	s.begin(jobID)
	go func() {
		res := s.send(ctx, jobID, decision)
		if onDone != nil {
			onDone(res)
		}
	}()
}

// begin is the synchronous half of a submission: the card leaves the
// queue and the pending mark is set before any network traffic starts.
func (s *Submitter) begin(jobID uuid.UUID) {
	s.queue.RemoveByID(jobID)
	s.session.MarkPending(jobID)
}

func (s *Submitter) send(ctx context.Context, jobID uuid.UUID, decision application.Decision) Result {
	defer s.session.Resolve(jobID)

	err := s.api.SubmitDecision(ctx, jobID, decision)
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, ErrAlreadyDecided):
		return ResultConflict
	case errors.Is(err, ErrAuthExpired):
		s.session.ClearToken()
		return ResultAuthExpired
	case errors.Is(err, ErrValidation):
		return ResultValidation
	case errors.Is(err, ErrRateLimited):
		return ResultRateLimited
	case errors.Is(err, ErrNetwork):
		if s.logger != nil {
			s.logger.Printf("[Submitter] decision lost job=%s decision=%s err=%v", jobID, decision, err)
		}
		return ResultNetworkError
	default:
		if s.logger != nil {
			s.logger.Printf("[Submitter] decision not persisted job=%s decision=%s err=%v", jobID, decision, err)
		}
		return ResultServerError
	}
}

// Refresh fetches the feed and swaps it into the queue with locally
// pending ids subtracted, so a refresh racing an in-flight decision never
// brings the job back.
func (s *Submitter) Refresh(ctx context.Context, queryText string) error {
	jobs, err := s.api.FetchFeed(ctx, queryText)
	if err != nil {
		if errors.Is(err, ErrAuthExpired) {
			s.session.ClearToken()
		}
		return err
	}
	s.queue.Replace(s.session.FilterPending(jobs))
	return nil
}
