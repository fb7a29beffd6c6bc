package events

import (
	"context"
	"log"
)

type Publisher interface {
	PublishOrganisationProvisioned(ctx context.Context, organisationID, userID string) error
	PublishRosterSaved(ctx context.Context, sessionID string, memberCount int) error
	PublishResultsRecorded(ctx context.Context, sessionID string, score float64) error
	PublishAttemptCompleted(ctx context.Context, sessionID, userID, quizType string, score int) error

	Close() error
}

type EventPublisher struct {
	rabbitMQ *RabbitMQClient
	enabled  bool
}

// NewEventPublisher returns a disabled publisher when no broker URI is
// configured; publishes then become no-ops instead of failing workflows.
func NewEventPublisher(rabbitURI, exchange string) (*EventPublisher, error) {
	if rabbitURI == "" {
		log.Println("RabbitMQ not configured, portal events will not be published")
		return &EventPublisher{enabled: false}, nil
	}
	client, err := NewRabbitMQClient(rabbitURI, exchange)
	if err != nil {
		return nil, err
	}
	return &EventPublisher{rabbitMQ: client, enabled: true}, nil
}

func (p *EventPublisher) publish(ctx context.Context, eventType string, payload map[string]any) error {
	if !p.enabled {
		return nil
	}
	body, err := NewEvent(eventType, payload).ToJSON()
	if err != nil {
		return err
	}
	if err := p.rabbitMQ.Publish(ctx, eventType, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
		return err
	}
	return nil
}

func (p *EventPublisher) PublishOrganisationProvisioned(ctx context.Context, organisationID, userID string) error {
	return p.publish(ctx, EventOrganisationProvisioned, map[string]any{
		"organisation_id": organisationID,
		"user_id":         userID,
	})
}

func (p *EventPublisher) PublishRosterSaved(ctx context.Context, sessionID string, memberCount int) error {
	return p.publish(ctx, EventRosterSaved, map[string]any{
		"session_id":   sessionID,
		"member_count": memberCount,
	})
}

func (p *EventPublisher) PublishResultsRecorded(ctx context.Context, sessionID string, score float64) error {
	return p.publish(ctx, EventResultsRecorded, map[string]any{
		"session_id": sessionID,
		"score":      score,
	})
}

func (p *EventPublisher) PublishAttemptCompleted(ctx context.Context, sessionID, userID, quizType string, score int) error {
	return p.publish(ctx, EventAttemptCompleted, map[string]any{
		"session_id": sessionID,
		"user_id":    userID,
		"quiz_type":  quizType,
		"score":      score,
	})
}

func (p *EventPublisher) Close() error {
	if p.rabbitMQ != nil {
		return p.rabbitMQ.Close()
	}
	return nil
}
