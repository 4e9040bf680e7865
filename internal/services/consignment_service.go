// internal/services/consignment_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slabdesk/slabdesk-backend/internal/models"
	"github.com/slabdesk/slabdesk-backend/internal/utils"
)

type ConsignmentService struct {
	db *gorm.DB
}

func NewConsignmentService(db *gorm.DB) *ConsignmentService {
	return &ConsignmentService{db: db}
}

type CreateConsignmentRequest struct {
	ConsignorContactID uuid.UUID `json:"consignor_contact_id" validate:"required"`
	GlobalAssetID      uuid.UUID `json:"global_asset_id" validate:"required"`
	AskingPrice        float64   `json:"asking_price" validate:"required,min=0.01"`
	SplitPercentage    float64   `json:"split_percentage" validate:"split_percentage"`
	Notes              string    `json:"notes,omitempty"`
}

type UpdateConsignmentRequest struct {
	AskingPrice     *float64 `json:"asking_price,omitempty" validate:"omitempty,min=0.01"`
	SplitPercentage *float64 `json:"split_percentage,omitempty" validate:"omitempty,split_percentage"`
	Status          *string  `json:"status,omitempty" validate:"omitempty,oneof=active sold returned"`
	Notes           *string  `json:"notes,omitempty"`
}

type SellConsignmentRequest struct {
	SoldPrice float64 `json:"sold_price" validate:"required,min=0.01"`
}

// Settlement is the split of one consignment sale.
type Settlement struct {
	SoldPrice      float64 `json:"sold_price"`
	ConsignorShare float64 `json:"consignor_share"`
	HouseShare     float64 `json:"house_share"`
	SplitPercent   float64 `json:"split_percent"`
}

func (s *ConsignmentService) ListConsignments(userID uuid.UUID, status *models.ConsignmentStatus) ([]models.Consignment, error) {
	query := s.db.Preload("Consignor").Preload("GlobalAsset").
		Where("user_id = ?", userID).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var consignments []models.Consignment
	if err := query.Find(&consignments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch consignments: %w", err)
	}
	return consignments, nil
}

func (s *ConsignmentService) GetConsignment(userID, consignmentID uuid.UUID) (*models.Consignment, error) {
	var consignment models.Consignment
	err := s.db.Preload("Consignor").Preload("GlobalAsset").
		Where("id = ? AND user_id = ?", consignmentID, userID).
		First(&consignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch consignment: %w", err)
	}
	return &consignment, nil
}

func (s *ConsignmentService) CreateConsignment(userID uuid.UUID, req *CreateConsignmentRequest) (*models.Consignment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var contact models.Contact
	err := s.db.Where("id = ? AND user_id = ?", req.ConsignorContactID, userID).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up consignor: %w", err)
	}

	consignment := &models.Consignment{
		UserID:             userID,
		ConsignorContactID: req.ConsignorContactID,
		GlobalAssetID:      req.GlobalAssetID,
		AskingPrice:        req.AskingPrice,
		SplitPercentage:    req.SplitPercentage,
		Status:             models.ConsignmentStatusActive,
		Notes:              req.Notes,
	}
	if err := s.db.Create(consignment).Error; err != nil {
		return nil, fmt.Errorf("failed to create consignment: %w", err)
	}

	return s.GetConsignment(userID, consignment.ID)
}

func (s *ConsignmentService) UpdateConsignment(userID, consignmentID uuid.UUID, req *UpdateConsignmentRequest) (*models.Consignment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	consignment, err := s.GetConsignment(userID, consignmentID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.AskingPrice != nil {
		updates["asking_price"] = *req.AskingPrice
	}
	if req.SplitPercentage != nil {
		updates["split_percentage"] = *req.SplitPercentage
	}
	if req.Status != nil {
		updates["status"] = models.ConsignmentStatus(*req.Status)
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(consignment).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update consignment: %w", err)
		}
	}

	return consignment, nil
}

func (s *ConsignmentService) DeleteConsignment(userID, consignmentID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ? AND status <> ?",
		consignmentID, userID, models.ConsignmentStatusSold).
		Delete(&models.Consignment{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete consignment: %w", result.Error)
	}
	return nil
}

// SellConsignment marks a consignment sold and returns the settlement.
func (s *ConsignmentService) SellConsignment(userID, consignmentID uuid.UUID, req *SellConsignmentRequest) (*Settlement, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var settlement Settlement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var consignment models.Consignment
		err := tx.Where("id = ? AND user_id = ?", consignmentID, userID).First(&consignment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to fetch consignment: %w", err)
		}

		if consignment.Status != models.ConsignmentStatusActive {
			return ErrConsignmentNotActive
		}

		settlement = SettlementFor(req.SoldPrice, consignment.SplitPercentage)

		now := time.Now()
		err = tx.Model(&consignment).Updates(map[string]interface{}{
			"status":     models.ConsignmentStatusSold,
			"sold_price": req.SoldPrice,
			"sold_at":    now,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to mark consignment sold: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &settlement, nil
}

// SettlementFor computes the consignor/house split of a sale, rounded
// to cents with the house absorbing the rounding remainder.
func SettlementFor(soldPrice, splitPercentage float64) Settlement {
	consignorShare := math.Round(soldPrice*splitPercentage) / 100
	return Settlement{
		SoldPrice:      soldPrice,
		ConsignorShare: consignorShare,
		HouseShare:     soldPrice - consignorShare,
		SplitPercent:   splitPercentage,
	}
}
