// internal/models/event.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a show or storefront window sessions can be tied to.
type Event struct {
	BaseModel
	UserID   uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	Name     string      `json:"name" gorm:"size:255;not null"`
	Venue    string      `json:"venue" gorm:"size:255"`
	StartsAt *time.Time  `json:"starts_at"`
	EndsAt   *time.Time  `json:"ends_at"`
	Status   EventStatus `json:"status" gorm:"type:varchar(20);default:'upcoming';index"`
	Notes    string      `json:"notes,omitempty" gorm:"type:text"`
}
