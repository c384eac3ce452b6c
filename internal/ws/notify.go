package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type ApplicationRecordedEvent struct {
	Type      string `json:"type"`
	JobID     string `json:"job_id"`
	Decision  string `json:"decision"`
	Timestamp string `json:"timestamp"`
}

type StatusChangedEvent struct {
	Type          string `json:"type"`
	ApplicationID string `json:"application_id"`
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyApplicationRecorded tells connected employer dashboards that a new
// decision landed. Polling stays the baseline; this is an additive signal.
func NotifyApplicationRecorded(jobID uuid.UUID, decision string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := ApplicationRecordedEvent{
		Type:      "application_recorded",
		JobID:     jobID.String(),
		Decision:  decision,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}

func NotifyStatusChanged(applicationID uuid.UUID, status string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := StatusChangedEvent{
		Type:          "status_changed",
		ApplicationID: applicationID.String(),
		Status:        status,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}
