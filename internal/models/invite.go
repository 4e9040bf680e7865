// internal/models/invite.go
package models

import (
	"time"
)

// InviteCode gates self-service signup. Only the bcrypt hash is stored.
type InviteCode struct {
	BaseModel
	CodeHash  string     `json:"-" gorm:"size:255;not null"`
	Label     string     `json:"label" gorm:"size:100"`
	MaxUses   int        `json:"max_uses" gorm:"default:0"` // 0 = unlimited
	UseCount  int        `json:"use_count" gorm:"default:0"`
	ExpiresAt *time.Time `json:"expires_at"`
	Active    bool       `json:"active" gorm:"default:true;index"`
}
