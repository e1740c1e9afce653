package notifications

import (
	"encoding/json"
	"time"

	"ticketly/internal/sessions"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeSessionsScheduled EventType = "SESSIONS_SCHEDULED"
)

const (
	messageVersion = "1.0"
	producerName   = "ticketly-scheduler"
)

// Message is the envelope written to Kafka.
type Message struct {
	ID         uuid.UUID               `json:"id"`
	Type       EventType               `json:"type"`
	Version    string                  `json:"version"`
	Producer   string                  `json:"producer"`
	OccurredAt time.Time               `json:"occurred_at"`
	Payload    sessions.ScheduledEvent `json:"payload"`
}

func NewSessionsScheduledMessage(event sessions.ScheduledEvent) *Message {
	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	return &Message{
		ID:         uuid.New(),
		Type:       EventTypeSessionsScheduled,
		Version:    messageVersion,
		Producer:   producerName,
		OccurredAt: occurred,
		Payload:    event,
	}
}

// GetPartitionKey keeps every event of a title on one partition.
func (m *Message) GetPartitionKey() string {
	return m.Payload.MovieID.String()
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
