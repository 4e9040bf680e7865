// internal/models/session.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one buying-desk working batch, persisted in buy_offers.
// The session number is advisory at generation time; uniqueness is
// enforced by the column constraint.
type Session struct {
	BaseModel
	UserID        uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	SessionNumber string        `json:"session_number" gorm:"size:20;not null;uniqueIndex"`
	EventID       *uuid.UUID    `json:"event_id" gorm:"type:uuid;index"`
	SellerID      *uuid.UUID    `json:"seller_id" gorm:"type:uuid;index"`
	Notes         string        `json:"notes,omitempty" gorm:"type:text"`
	Status        SessionStatus `json:"status" gorm:"type:varchar(20);default:'active';index"`
	Archived      bool          `json:"archived" gorm:"default:false;index"`
	SentAt        *time.Time    `json:"sent_at"`

	// Relationships
	Event  *Event  `json:"event,omitempty" gorm:"foreignKey:EventID"`
	Seller *Seller `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
}

func (Session) TableName() string { return "buy_offers" }
