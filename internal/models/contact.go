// internal/models/contact.go
package models

import (
	"github.com/google/uuid"
)

// Contact is a person record scoped to its owning user. The same contact
// may back multiple role links (seller, consignor) matched by email.
type Contact struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name   string    `json:"name" gorm:"size:255;not null"`
	Email  string    `json:"email" gorm:"size:255;index"`
	Phone  string    `json:"phone" gorm:"size:50"`
	Notes  string    `json:"notes,omitempty" gorm:"type:text"`
}

// Seller links a contact into the buying-desk role. One link per
// (user, contact) pair.
type Seller struct {
	BaseModel
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_seller_user_contact"`
	ContactID uuid.UUID `json:"contact_id" gorm:"type:uuid;not null;uniqueIndex:idx_seller_user_contact"`

	Contact Contact `json:"contact,omitempty" gorm:"foreignKey:ContactID"`
}
