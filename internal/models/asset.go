// internal/models/asset.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// GlobalAsset is the shared catalog record for a physical graded card,
// independent of any owner.
type GlobalAsset struct {
	BaseModel
	Title          string         `json:"title" gorm:"size:255;not null"`
	PlayerName     string         `json:"player_name" gorm:"size:255;index"`
	SetName        string         `json:"set_name" gorm:"size:255;index"`
	CardNumber     string         `json:"card_number" gorm:"size:50"`
	Year           int            `json:"year" gorm:"index"`
	Grade          string         `json:"grade" gorm:"size:20"`
	GradingCompany string         `json:"grading_company" gorm:"size:50;index"`
	CertNumber     string         `json:"cert_number" gorm:"size:50;index"`
	ImageURLs      pq.StringArray `json:"image_urls" gorm:"type:text[]"`
	MarketValue    float64        `json:"market_value" gorm:"type:decimal(12,2);default:0"`
	Attributes     JSONB          `json:"attributes" gorm:"type:jsonb"`
}

// UserAsset is an owned copy of a global asset.
type UserAsset struct {
	BaseModel
	UserID           uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	GlobalAssetID    uuid.UUID       `json:"global_asset_id" gorm:"type:uuid;not null;index"`
	AcquisitionPrice float64         `json:"acquisition_price" gorm:"type:decimal(12,2);default:0"`
	AcquiredAt       *time.Time      `json:"acquired_at"`
	Status           UserAssetStatus `json:"status" gorm:"type:varchar(20);default:'owned';index"`
	Notes            string          `json:"notes,omitempty" gorm:"type:text"`

	GlobalAsset GlobalAsset `json:"global_asset,omitempty" gorm:"foreignKey:GlobalAssetID"`
}

// EvaluationAsset is a card staged in a session, not yet priced. A card
// may appear at most once per session across evaluation and cart.
type EvaluationAsset struct {
	BaseModel
	SessionID     uuid.UUID `json:"session_id" gorm:"type:uuid;not null;uniqueIndex:idx_eval_session_asset"`
	GlobalAssetID uuid.UUID `json:"global_asset_id" gorm:"type:uuid;not null;uniqueIndex:idx_eval_session_asset"`
	Notes         string    `json:"notes,omitempty" gorm:"type:text"`

	GlobalAsset GlobalAsset `json:"global_asset,omitempty" gorm:"foreignKey:GlobalAssetID"`
}

func (EvaluationAsset) TableName() string { return "evaluation_assets" }

// CartEntry is a card with an assigned offer price, pending purchase.
type CartEntry struct {
	BaseModel
	SessionID      uuid.UUID `json:"session_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_session_asset"`
	GlobalAssetID  uuid.UUID `json:"global_asset_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_session_asset"`
	OfferPrice     float64   `json:"offer_price" gorm:"type:decimal(12,2);not null;default:0"`
	MarketValue    float64   `json:"market_value" gorm:"type:decimal(12,2);default:0"`
	ExpectedProfit float64   `json:"expected_profit" gorm:"type:decimal(12,2);default:0"`
	Notes          string    `json:"notes,omitempty" gorm:"type:text"`

	GlobalAsset GlobalAsset `json:"global_asset,omitempty" gorm:"foreignKey:GlobalAssetID"`
}

func (CartEntry) TableName() string { return "buy_list_cart" }

// PurchaseTransaction is the finalized record of a completed buy.
type PurchaseTransaction struct {
	BaseModel
	UserID          uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	GlobalAssetID   uuid.UUID  `json:"global_asset_id" gorm:"type:uuid;not null;index"`
	UserAssetID     *uuid.UUID `json:"user_asset_id" gorm:"type:uuid;index"`
	SellerContactID *uuid.UUID `json:"seller_contact_id" gorm:"type:uuid;index"`
	PurchasePrice   float64    `json:"purchase_price" gorm:"type:decimal(12,2);not null"`
	MarketPrice     float64    `json:"market_price" gorm:"type:decimal(12,2);default:0"`
	PurchasedAt     time.Time  `json:"purchased_at"`
	PaymentMethod   string     `json:"payment_method" gorm:"size:50"`
	Notes           string     `json:"notes,omitempty" gorm:"type:text"`

	GlobalAsset GlobalAsset `json:"global_asset,omitempty" gorm:"foreignKey:GlobalAssetID"`
}
