package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Event represents the base structure for all draft room events
type Event struct {
	ID        string          `json:"id"`         // Event UUID
	SessionID string          `json:"session_id"` // Session UUID
	Type      Type            `json:"type"`       // Event type
	Timestamp time.Time       `json:"timestamp"`  // Event creation time
	Data      json.RawMessage `json:"data"`       // Event-specific payload
}

// Type represents the type of draft room event
type Type string

const (
	TypeDraftStarted    Type = "DraftStarted"
	TypePlayerSelected  Type = "PlayerSelected"
	TypeSelectionUndone Type = "SelectionUndone"
	TypeTradeConfirmed  Type = "TradeConfirmed"
	TypeDraftCompleted  Type = "DraftCompleted"
	TypeDraftReset      Type = "DraftReset"
	TypeBoardCompleted  Type = "BoardCompleted"
)

// Publisher delivers events to whoever is listening
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
}

// New builds an event with a fresh id and the payload encoded as JSON
func New(sessionID string, eventType Type, payload any, at time.Time) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return &Event{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Type:      eventType,
		Timestamp: at.UTC(),
		Data:      data,
	}, nil
}

// Fanout publishes each event to every wrapped publisher.
// A failing publisher is logged and does not stop the others.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event *Event) error {
	var firstErr error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			log.Warn().
				Err(err).
				Str("event_id", event.ID).
				Str("event_type", string(event.Type)).
				Msg("publisher failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Discard drops every event
type Discard struct{}

func (Discard) Publish(context.Context, *Event) error { return nil }

// ParsePayload decodes event data into the payload struct for its type
func ParsePayload(event *Event) (any, error) {
	var target any
	switch event.Type {
	case TypeDraftStarted:
		target = &DraftStartedPayload{}
	case TypePlayerSelected:
		target = &PlayerSelectedPayload{}
	case TypeSelectionUndone:
		target = &SelectionUndonePayload{}
	case TypeTradeConfirmed:
		target = &TradeConfirmedPayload{}
	case TypeDraftCompleted:
		target = &DraftCompletedPayload{}
	case TypeDraftReset:
		target = &DraftResetPayload{}
	case TypeBoardCompleted:
		target = &BoardCompletedPayload{}
	default:
		return nil, nil // Unknown event type
	}
	if err := json.Unmarshal(event.Data, target); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s payload: %w", event.Type, err)
	}
	return target, nil
}
