// internal/services/asset_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/slabdesk/slabdesk-backend/internal/models"
	"github.com/slabdesk/slabdesk-backend/internal/utils"
)

// AssetService moves cards through the session state machine:
// evaluating -> ready (cart) -> purchased, with reverts in both
// directions. Every multi-table transition runs in one transaction.
type AssetService struct {
	db           *gorm.DB
	pricing      *PricingService
	refreshDelay time.Duration
}

func NewAssetService(db *gorm.DB, pricing *PricingService, refreshDelay time.Duration) *AssetService {
	return &AssetService{
		db:           db,
		pricing:      pricing,
		refreshDelay: refreshDelay,
	}
}

type AddAssetRequest struct {
	GlobalAssetID uuid.UUID `json:"global_asset_id" validate:"required"`
	Notes         string    `json:"notes,omitempty"`
}

type MoveToCartRequest struct {
	GlobalAssetID uuid.UUID `json:"global_asset_id" validate:"required"`
	OfferPrice    float64   `json:"offer_price" validate:"min=0"`
	Notes         string    `json:"notes,omitempty"`
}

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
	Notes         string `json:"notes,omitempty"`
}

// SessionAssets is the full asset state of one session.
type SessionAssets struct {
	Evaluations []models.EvaluationAsset `json:"evaluations"`
	CartEntries []models.CartEntry       `json:"cart_entries"`
}

// MoveResult reports what a move-to-cart call did. AlreadyMoved marks
// the idempotent path where the evaluation row was gone and no cart row
// needed touching.
type MoveResult struct {
	CartEntry    *models.CartEntry `json:"cart_entry,omitempty"`
	AlreadyMoved bool              `json:"already_moved"`
}

func (s *AssetService) ListSessionAssets(userID, sessionID uuid.UUID) (*SessionAssets, error) {
	if _, err := s.ownedSession(s.db, userID, sessionID); err != nil {
		return nil, err
	}

	assets := &SessionAssets{
		Evaluations: []models.EvaluationAsset{},
		CartEntries: []models.CartEntry{},
	}

	err := s.db.Preload("GlobalAsset").
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&assets.Evaluations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch evaluation assets: %w", err)
	}

	err = s.db.Preload("GlobalAsset").
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&assets.CartEntries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart entries: %w", err)
	}

	return assets, nil
}

// AddAsset stages a card in the session's evaluation set. A card may be
// in at most one of {evaluation, cart} per session.
func (s *AssetService) AddAsset(userID, sessionID uuid.UUID, req *AddAssetRequest) (*models.EvaluationAsset, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var created models.EvaluationAsset
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedSession(tx, userID, sessionID); err != nil {
			return err
		}

		var asset models.GlobalAsset
		if err := tx.First(&asset, "id = ?", req.GlobalAssetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to fetch asset: %w", err)
		}

		inSession, err := s.assetInSession(tx, sessionID, req.GlobalAssetID)
		if err != nil {
			return err
		}
		if inSession {
			return ErrDuplicateAsset
		}

		// A graded card is one physical item; staging one the user has
		// already purchased would double-buy it at checkout.
		owned, err := s.alreadyPurchased(tx, userID, req.GlobalAssetID)
		if err != nil {
			return err
		}
		if owned {
			return ErrAlreadyOwned
		}

		created = models.EvaluationAsset{
			SessionID:     sessionID,
			GlobalAssetID: req.GlobalAssetID,
			Notes:         req.Notes,
		}
		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateAsset
			}
			return fmt.Errorf("failed to create evaluation asset: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Kick off a delayed sales-data refresh so the offer screen has a
	// fresh market value by the time the card is priced.
	s.pricing.RefreshAfter(req.GlobalAssetID, s.refreshDelay)

	if err := s.db.Preload("GlobalAsset").First(&created, "id = ?", created.ID).Error; err != nil {
		logrus.WithError(err).WithField("evaluation_id", created.ID).
			Warn("Failed to reload evaluation asset")
	}
	return &created, nil
}

// RemoveAsset drops a card from the evaluation set.
func (s *AssetService) RemoveAsset(userID, sessionID, evaluationID uuid.UUID) error {
	if _, err := s.ownedSession(s.db, userID, sessionID); err != nil {
		return err
	}

	result := s.db.Where("id = ? AND session_id = ?", evaluationID, sessionID).
		Delete(&models.EvaluationAsset{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove evaluation asset: %w", result.Error)
	}
	return nil
}

// MoveToCart prices a card and moves it from evaluation to the cart.
// Re-running the call updates the existing cart entry's price; a missing
// evaluation row means the move already happened and is reported as
// success, which tolerates double submission.
func (s *AssetService) MoveToCart(ctx context.Context, userID, sessionID uuid.UUID, req *MoveToCartRequest) (*MoveResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	result := &MoveResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedSession(tx, userID, sessionID); err != nil {
			return err
		}

		var cart models.CartEntry
		cartErr := tx.Where("session_id = ? AND global_asset_id = ?", sessionID, req.GlobalAssetID).
			First(&cart).Error
		if cartErr != nil && !errors.Is(cartErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up cart entry: %w", cartErr)
		}
		cartExists := cartErr == nil

		var eval models.EvaluationAsset
		evalErr := tx.Where("session_id = ? AND global_asset_id = ?", sessionID, req.GlobalAssetID).
			First(&eval).Error
		if evalErr != nil && !errors.Is(evalErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up evaluation asset: %w", evalErr)
		}
		evalExists := evalErr == nil

		if cartExists {
			// Natural-key idempotency: re-price instead of duplicating.
			updates := map[string]interface{}{
				"offer_price":     req.OfferPrice,
				"expected_profit": cart.MarketValue - req.OfferPrice,
			}
			if req.Notes != "" {
				updates["notes"] = req.Notes
			}
			if err := tx.Model(&cart).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update cart entry: %w", err)
			}
			if evalExists {
				if err := tx.Delete(&eval).Error; err != nil {
					return fmt.Errorf("failed to remove evaluation asset: %w", err)
				}
			}
			result.CartEntry = &cart
			return nil
		}

		if !evalExists {
			// Double submission: nothing staged and nothing carted means
			// the move was already completed and undone elsewhere.
			result.AlreadyMoved = true
			return nil
		}

		// Best-effort snapshot; a failed lookup prices the market at 0.
		marketValue, priceErr := s.pricing.MarketValue(ctx, req.GlobalAssetID)
		if priceErr != nil {
			logrus.WithError(priceErr).WithField("asset_id", req.GlobalAssetID).
				Warn("Market value lookup failed, defaulting to 0")
			marketValue = 0
		}

		cart = models.CartEntry{
			SessionID:      sessionID,
			GlobalAssetID:  req.GlobalAssetID,
			OfferPrice:     req.OfferPrice,
			MarketValue:    marketValue,
			ExpectedProfit: marketValue - req.OfferPrice,
			Notes:          req.Notes,
		}
		if err := tx.Create(&cart).Error; err != nil {
			return fmt.Errorf("failed to create cart entry: %w", err)
		}
		if err := tx.Delete(&eval).Error; err != nil {
			return fmt.Errorf("failed to remove evaluation asset: %w", err)
		}

		result.CartEntry = &cart
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.CartEntry != nil {
		if err := s.db.Preload("GlobalAsset").First(result.CartEntry, "id = ?", result.CartEntry.ID).Error; err != nil {
			logrus.WithError(err).WithField("cart_entry_id", result.CartEntry.ID).
				Warn("Failed to reload cart entry")
		}
	}
	return result, nil
}

// RemoveFromCart returns a carted card to evaluation. The path id may be
// either a cart-entry id or an evaluation id; the underlying asset is
// resolved either way so racing UI identifiers keep working.
func (s *AssetService) RemoveFromCart(userID, sessionID, entryID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedSession(tx, userID, sessionID); err != nil {
			return err
		}

		var assetID uuid.UUID

		var cart models.CartEntry
		err := tx.Where("id = ? AND session_id = ?", entryID, sessionID).First(&cart).Error
		switch {
		case err == nil:
			assetID = cart.GlobalAssetID
		case errors.Is(err, gorm.ErrRecordNotFound):
			var eval models.EvaluationAsset
			evalErr := tx.Where("id = ? AND session_id = ?", entryID, sessionID).First(&eval).Error
			if evalErr != nil {
				if errors.Is(evalErr, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return fmt.Errorf("failed to resolve cart entry: %w", evalErr)
			}
			assetID = eval.GlobalAssetID
		default:
			return fmt.Errorf("failed to resolve cart entry: %w", err)
		}

		err = tx.Where("session_id = ? AND global_asset_id = ?", sessionID, assetID).
			Delete(&models.CartEntry{}).Error
		if err != nil {
			return fmt.Errorf("failed to delete cart entry: %w", err)
		}

		var existing int64
		err = tx.Model(&models.EvaluationAsset{}).
			Where("session_id = ? AND global_asset_id = ?", sessionID, assetID).
			Count(&existing).Error
		if err != nil {
			return fmt.Errorf("failed to check evaluation assets: %w", err)
		}

		if existing == 0 {
			eval := models.EvaluationAsset{
				SessionID:     sessionID,
				GlobalAssetID: assetID,
			}
			if err := tx.Create(&eval).Error; err != nil {
				return fmt.Errorf("failed to restore evaluation asset: %w", err)
			}
		}

		return nil
	})
}

// Checkout finalizes every cart entry into a purchase transaction plus
// an owned asset, stamps sent_at, and completes the session.
func (s *AssetService) Checkout(userID, sessionID uuid.UUID, req *CheckoutRequest) ([]models.PurchaseTransaction, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var purchases []models.PurchaseTransaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		session, err := s.ownedSession(tx, userID, sessionID)
		if err != nil {
			return err
		}

		var entries []models.CartEntry
		if err := tx.Where("session_id = ?", sessionID).Find(&entries).Error; err != nil {
			return fmt.Errorf("failed to fetch cart entries: %w", err)
		}
		if len(entries) == 0 {
			return ErrCartEmpty
		}

		// The add-time guard covers one session; the same card staged in
		// two sessions still must not finalize twice.
		for _, entry := range entries {
			owned, err := s.alreadyPurchased(tx, userID, entry.GlobalAssetID)
			if err != nil {
				return err
			}
			if owned {
				return ErrAlreadyOwned
			}
		}

		var sellerContactID *uuid.UUID
		if session.SellerID != nil {
			var seller models.Seller
			if err := tx.First(&seller, "id = ?", *session.SellerID).Error; err == nil {
				sellerContactID = &seller.ContactID
			}
		}

		now := time.Now()
		for _, entry := range entries {
			owned := models.UserAsset{
				UserID:           userID,
				GlobalAssetID:    entry.GlobalAssetID,
				AcquisitionPrice: entry.OfferPrice,
				AcquiredAt:       &now,
				Status:           models.UserAssetStatusOwned,
			}
			if err := tx.Create(&owned).Error; err != nil {
				return fmt.Errorf("failed to create owned asset: %w", err)
			}

			purchase := models.PurchaseTransaction{
				UserID:          userID,
				GlobalAssetID:   entry.GlobalAssetID,
				UserAssetID:     &owned.ID,
				SellerContactID: sellerContactID,
				PurchasePrice:   entry.OfferPrice,
				MarketPrice:     entry.MarketValue,
				PurchasedAt:     now,
				PaymentMethod:   req.PaymentMethod,
				Notes:           req.Notes,
			}
			if err := tx.Create(&purchase).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrAlreadyOwned
				}
				return fmt.Errorf("failed to create purchase transaction: %w", err)
			}
			purchases = append(purchases, purchase)
		}

		err = tx.Where("session_id = ?", sessionID).Delete(&models.CartEntry{}).Error
		if err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		err = tx.Model(session).Updates(map[string]interface{}{
			"status":  models.SessionStatusCompleted,
			"sent_at": now,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to complete session: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return purchases, nil
}

// RevertPurchase undoes a finalized buy: the purchase transaction and
// owned asset go away, a zero-price cart entry comes back, and the
// session reopens so checkout can be re-attempted.
func (s *AssetService) RevertPurchase(userID, sessionID, globalAssetID uuid.UUID) (*models.CartEntry, error) {
	var restored models.CartEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		session, err := s.ownedSession(tx, userID, sessionID)
		if err != nil {
			return err
		}

		var purchase models.PurchaseTransaction
		err = tx.Where("user_id = ? AND global_asset_id = ?", userID, globalAssetID).
			Order("purchased_at DESC").
			First(&purchase).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to fetch purchase: %w", err)
		}

		if err := tx.Delete(&purchase).Error; err != nil {
			return fmt.Errorf("failed to delete purchase: %w", err)
		}

		if purchase.UserAssetID != nil {
			err = tx.Where("id = ? AND user_id = ?", *purchase.UserAssetID, userID).
				Delete(&models.UserAsset{}).Error
			if err != nil {
				return fmt.Errorf("failed to delete owned asset: %w", err)
			}
		}

		restored = models.CartEntry{
			SessionID:      sessionID,
			GlobalAssetID:  globalAssetID,
			OfferPrice:     0,
			MarketValue:    purchase.MarketPrice,
			ExpectedProfit: purchase.MarketPrice,
			Notes:          "Reverted from purchase",
		}
		if err := tx.Create(&restored).Error; err != nil {
			return fmt.Errorf("failed to restore cart entry: %w", err)
		}

		err = tx.Model(session).Updates(map[string]interface{}{
			"status":  models.SessionStatusInProgress,
			"sent_at": nil,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to reopen session: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &restored, nil
}

// ownedSession loads the session scoped to its owner; a foreign session
// is reported the same as a missing one.
func (s *AssetService) ownedSession(tx *gorm.DB, userID, sessionID uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := tx.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	return &session, nil
}

// alreadyPurchased reports whether the user holds an active purchase
// transaction for the asset; reverts delete the row, so presence means
// the card is currently bought.
func (s *AssetService) alreadyPurchased(tx *gorm.DB, userID, globalAssetID uuid.UUID) (bool, error) {
	var count int64
	err := tx.Model(&models.PurchaseTransaction{}).
		Where("user_id = ? AND global_asset_id = ?", userID, globalAssetID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check purchase transactions: %w", err)
	}
	return count > 0, nil
}

func (s *AssetService) assetInSession(tx *gorm.DB, sessionID, globalAssetID uuid.UUID) (bool, error) {
	var count int64
	err := tx.Model(&models.EvaluationAsset{}).
		Where("session_id = ? AND global_asset_id = ?", sessionID, globalAssetID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check evaluation assets: %w", err)
	}
	if count > 0 {
		return true, nil
	}

	err = tx.Model(&models.CartEntry{}).
		Where("session_id = ? AND global_asset_id = ?", sessionID, globalAssetID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check cart entries: %w", err)
	}
	return count > 0, nil
}
