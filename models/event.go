package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	EventStatusPending   = "pending"
	EventStatusCompleted = "completed"
)

// Event is an outbox row written in the same transaction as the change it
// describes and later published by the dispatcher.
type Event struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Event        string         `gorm:"not null" json:"event"`
	Version      int            `gorm:"not null" json:"version"`
	Entity       string         `gorm:"not null" json:"entity"`
	Operation    string         `gorm:"not null" json:"operation"`
	Timestamp    time.Time      `gorm:"not null" json:"timestamp"`
	Data         datatypes.JSON `gorm:"not null" json:"data"`
	Status       string         `gorm:"not null;default:'pending'" json:"status"`
	Dispatched   bool           `gorm:"not null;default:false;index" json:"dispatched"`
	DispatchedAt *time.Time     `json:"dispatched_at,omitempty"`
}

func NewEvent(event, entity, operation string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Event:     event,
		Version:   1,
		Entity:    entity,
		Operation: operation,
		Timestamp: time.Now().UTC(),
		Data:      datatypes.JSON(dataBytes),
		Status:    EventStatusPending,
	}, nil
}
