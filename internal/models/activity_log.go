package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActivityActionCreate = "create"
	ActivityActionUpdate = "update"
	ActivityActionDelete = "delete"

	EntityTransaction   = "transaction"
	EntitySavingsTarget = "savings_target"
)

// ActivityLog records who changed which financial record. Family members
// read each other's entries in the monthly summary.
type ActivityLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ActorUserID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"actor_user_id"`
	Action       string     `gorm:"type:varchar(20);not null;index" json:"action"`
	EntityType   string     `gorm:"type:varchar(40);not null" json:"entity_type"`
	EntityID     uuid.UUID  `gorm:"type:uuid" json:"entity_id"`
	Scope        string     `gorm:"type:varchar(20);not null" json:"scope"`
	TargetUserID *uuid.UUID `gorm:"type:uuid" json:"target_user_id,omitempty"`
	FamilyID     *uuid.UUID `gorm:"type:uuid;index" json:"family_id,omitempty"`
	Note         string     `gorm:"type:text" json:"note,omitempty"`
	Changes      JSONBMap   `gorm:"type:text" json:"changes,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;index" json:"created_at"`
}

func (al *ActivityLog) SetChange(key string, value interface{}) {
	if al.Changes == nil {
		al.Changes = make(JSONBMap)
	}
	al.Changes[key] = value
}

func (al *ActivityLog) String() string {
	return fmt.Sprintf("ActivityLog[Actor: %s, Action: %s, Entity: %s/%s, Scope: %s, Time: %s]",
		al.ActorUserID, al.Action, al.EntityType, al.EntityID, al.Scope, al.CreatedAt.Format(time.RFC3339))
}

func (al *ActivityLog) TableName() string {
	return "activity_logs"
}

func (al *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.New()
	}
	if al.Scope == "" {
		al.Scope = ScopePersonal
	}
	if al.CreatedAt.IsZero() {
		al.CreatedAt = time.Now()
	}
	return nil
}

// JSONBMap is a JSON object column. It is stored as text so the same model
// works on PostgreSQL and SQLite.
type JSONBMap map[string]interface{}

func (m JSONBMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	bytes, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}

func (m *JSONBMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONBMap", value)
	}

	if len(bytes) == 0 {
		*m = nil
		return nil
	}

	return json.Unmarshal(bytes, m)
}
