package events

import (
	"encoding/json"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
)

// ActivityMessage is the broker representation of an activity log entry.
type ActivityMessage struct {
	ID           uuid.UUID              `json:"id"`
	ActorUserID  uuid.UUID              `json:"actor_user_id"`
	Action       string                 `json:"action"`
	EntityType   string                 `json:"entity_type"`
	EntityID     uuid.UUID              `json:"entity_id"`
	Scope        string                 `json:"scope"`
	TargetUserID *uuid.UUID             `json:"target_user_id,omitempty"`
	FamilyID     *uuid.UUID             `json:"family_id,omitempty"`
	Note         string                 `json:"note,omitempty"`
	Changes      map[string]interface{} `json:"changes,omitempty"`
	OccurredAt   time.Time              `json:"occurred_at"`
	Timestamp    time.Time              `json:"timestamp"`
}

// NewActivityMessage builds a message from a stored activity log entry
func NewActivityMessage(entry *models.ActivityLog) *ActivityMessage {
	return &ActivityMessage{
		ID:           entry.ID,
		ActorUserID:  entry.ActorUserID,
		Action:       entry.Action,
		EntityType:   entry.EntityType,
		EntityID:     entry.EntityID,
		Scope:        entry.Scope,
		TargetUserID: entry.TargetUserID,
		FamilyID:     entry.FamilyID,
		Note:         entry.Note,
		Changes:      entry.Changes,
		OccurredAt:   entry.CreatedAt,
		Timestamp:    time.Now(),
	}
}

// Type names the event, e.g. "savings_target.update".
func (m *ActivityMessage) Type() string {
	return m.EntityType + "." + m.Action
}

// ToJSON converts the message to JSON bytes
func (m *ActivityMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ActivityMessageFromJSON decodes a message published by Client
func ActivityMessageFromJSON(data []byte) (*ActivityMessage, error) {
	var msg ActivityMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
