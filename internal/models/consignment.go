// internal/models/consignment.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Consignment is a third-party-owned card listed for sale on the desk
// owner's behalf, settled by split percentage.
type Consignment struct {
	BaseModel
	UserID             uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;index"`
	ConsignorContactID uuid.UUID         `json:"consignor_contact_id" gorm:"type:uuid;not null;index"`
	GlobalAssetID      uuid.UUID         `json:"global_asset_id" gorm:"type:uuid;not null;index"`
	AskingPrice        float64           `json:"asking_price" gorm:"type:decimal(12,2);not null"`
	SplitPercentage    float64           `json:"split_percentage" gorm:"type:decimal(5,2);not null"`
	Status             ConsignmentStatus `json:"status" gorm:"type:varchar(20);default:'active';index"`
	SoldPrice          *float64          `json:"sold_price" gorm:"type:decimal(12,2)"`
	SoldAt             *time.Time        `json:"sold_at"`
	Notes              string            `json:"notes,omitempty" gorm:"type:text"`

	Consignor   Contact     `json:"consignor,omitempty" gorm:"foreignKey:ConsignorContactID"`
	GlobalAsset GlobalAsset `json:"global_asset,omitempty" gorm:"foreignKey:GlobalAssetID"`
}
