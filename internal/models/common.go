// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type SessionStatus string

const (
	SessionStatusActive     SessionStatus = "active"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusClosed     SessionStatus = "closed"
)

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusActive    EventStatus = "active"
	EventStatusCompleted EventStatus = "completed"
)

type ConsignmentStatus string

const (
	ConsignmentStatusActive   ConsignmentStatus = "active"
	ConsignmentStatusSold     ConsignmentStatus = "sold"
	ConsignmentStatusReturned ConsignmentStatus = "returned"
)

type UserAssetStatus string

const (
	UserAssetStatusOwned  UserAssetStatus = "owned"
	UserAssetStatusListed UserAssetStatus = "listed"
	UserAssetStatusSold   UserAssetStatus = "sold"
)
