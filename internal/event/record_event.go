package event

import (
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// RecordEvent describes a committed change to one record. Payload is nil for
// deletions.
type RecordEvent struct {
	ID         uuid.UUID `json:"id"`
	Collection string    `json:"collection"`
	Action     Action    `json:"action"`
	Key        string    `json:"key"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

func NewRecordEvent(collection string, action Action, key string, payload any) RecordEvent {
	return RecordEvent{
		ID:         uuid.New(),
		Collection: collection,
		Action:     action,
		Key:        key,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

func (e RecordEvent) RoutingKey() string {
	return e.Collection + "." + string(e.Action)
}
