package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nextstep/internal/delivery/http/dto"
	"nextstep/internal/domain/application"
	"nextstep/internal/domain/job"
	"nextstep/internal/pkg/response"
	"nextstep/internal/swipe"

	"github.com/google/uuid"
)

var (
	ErrAuthExpired    = errors.New("authentication expired")
	ErrAlreadyDecided = errors.New("pair already decided")
	ErrValidation     = errors.New("request rejected as invalid")
	ErrRateLimited    = errors.New("rate limited")
	ErrServer         = errors.New("server error")
	ErrNetwork        = errors.New("network unreachable")
)

// APIClient talks to the swipe endpoints with the session's bearer token.
type APIClient struct {
	baseURL string
	http    *http.Client
	session *swipe.Session
}

func NewAPIClient(baseURL string, session *swipe.Session) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		session: session,
	}
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// FetchFeed pulls the ranked feed, optionally narrowed by a query.
func (c *APIClient) FetchFeed(ctx context.Context, queryText string) ([]job.Job, error) {
	endpoint := c.baseURL + "/api/v1/jobs/feed"
	if q := strings.TrimSpace(queryText); q != "" {
		params := url.Values{}
		params.Set("q", q)
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	env, err := decodeEnvelope(resp.Body)
	if err != nil && resp.StatusCode < 400 {
		return nil, err
	}

	if outcome := outcomeFromStatus(resp.StatusCode, env); outcome != nil {
		return nil, outcome
	}

	var items []dto.JobResponse
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, err
	}

	out := make([]job.Job, 0, len(items))
	for _, it := range items {
		out = append(out, job.Job{
			ID:          it.ID,
			CompanyID:   it.CompanyID,
			CompanyName: it.CompanyName,
			CompanyURL:  it.CompanyWebsite,
			Title:       it.Title,
			Description: it.JobDescription,
			Locations:   it.Locations,
			SalaryRange: it.SalaryRange,
			Schedule:    it.Schedule,
			Benefits:    it.Benefits,
			Skills:      it.Skills,
			ExternalURL: it.ExternalURL,
		})
	}
	return out, nil
}

// SubmitDecision posts one decision; a nil return means the server
// accepted a new record.
func (c *APIClient) SubmitDecision(ctx context.Context, jobID uuid.UUID, decision application.Decision) error {
	body, err := json.Marshal(dto.TrackDecisionRequest{
		JobID:     jobID,
		SwipeMode: int(decision),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/jobs/tracker", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	env, _ := decodeEnvelope(resp.Body)
	return outcomeFromStatus(resp.StatusCode, env)
}

func (c *APIClient) authorize(req *http.Request) {
	if c.session == nil {
		return
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func decodeEnvelope(r io.Reader) (envelope, error) {
	var env envelope
	b, err := io.ReadAll(io.LimitReader(r, 1<<20))
	if err != nil {
		return env, err
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return env, err
	}
	return env, nil
}

// outcomeFromStatus maps an HTTP status onto the client error taxonomy.
// Conflicts are recognized by the structured code, never by matching
// message text.
func outcomeFromStatus(status int, env envelope) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return ErrAuthExpired
	case status == http.StatusConflict:
		var code response.ErrorCode
		if len(env.Data) > 0 {
			_ = json.Unmarshal(env.Data, &code)
		}
		if code.Code == response.CodeAlreadyDecided {
			return ErrAlreadyDecided
		}
		return fmt.Errorf("%w: unexpected conflict code %q", ErrValidation, code.Code)
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status >= 400 && status < 500:
		if env.Message != "" {
			return fmt.Errorf("%w: %s", ErrValidation, env.Message)
		}
		return ErrValidation
	default:
		return ErrServer
	}
}
