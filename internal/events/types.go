package events

import (
	"encoding/json"
	"time"
)

// Event is the envelope published to the portal topic exchange. RoutingKey
// doubles as the event type.
type Event struct {
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload"`
}

func NewEvent(eventType string, payload map[string]any) *Event {
	return &Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

const (
	EventOrganisationProvisioned = "organisation.provisioned"
	EventRosterSaved             = "session.roster_saved"
	EventResultsRecorded         = "session.results_recorded"
	EventAttemptCompleted        = "quiz.attempt_completed"
)
