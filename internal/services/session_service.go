// internal/services/session_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slabdesk/slabdesk-backend/internal/models"
	"github.com/slabdesk/slabdesk-backend/internal/utils"
)

const sessionNumberAttempts = 5

type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

type CreateSessionRequest struct {
	Notes     string     `json:"notes,omitempty"`
	SellerID  *uuid.UUID `json:"seller_id,omitempty"`
	ContactID *uuid.UUID `json:"contact_id,omitempty"`
	EventID   *uuid.UUID `json:"event_id,omitempty"`
}

// UpdateSessionRequest is a field-level patch. Pointer fields distinguish
// "absent" from "clear": an empty string normalizes to NULL.
type UpdateSessionRequest struct {
	Notes    *string `json:"notes,omitempty"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=active in_progress completed closed"`
	SellerID *string `json:"seller_id,omitempty" validate:"omitempty,uuid"`
	EventID  *string `json:"event_id,omitempty" validate:"omitempty,uuid"`
}

func (r *UpdateSessionRequest) Empty() bool {
	return r.Notes == nil && r.Status == nil && r.SellerID == nil && r.EventID == nil
}

// SessionSummary is the API-facing shape of a session row joined with its
// aggregates.
type SessionSummary struct {
	ID              uuid.UUID            `json:"id"`
	SessionNumber   string               `json:"session_number"`
	Status          models.SessionStatus `json:"status"`
	Archived        bool                 `json:"archived"`
	Notes           string               `json:"notes,omitempty"`
	EventID         *uuid.UUID           `json:"event_id,omitempty"`
	EventName       string               `json:"event_name"`
	SellerID        *uuid.UUID           `json:"seller_id,omitempty"`
	SellerName      string               `json:"seller_name"`
	EvaluationCount int64                `json:"evaluation_count"`
	CartCount       int64                `json:"cart_count"`
	AssetCount      int64                `json:"asset_count"`
	TotalValue      float64              `json:"total_value"`
	ExpectedProfit  float64              `json:"expected_profit"`
	SentAt          *time.Time           `json:"sent_at,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

type cartAggregate struct {
	SessionID      uuid.UUID `json:"session_id"`
	Count          int64     `json:"count"`
	TotalValue     float64   `json:"total_value"`
	ExpectedProfit float64   `json:"expected_profit"`
}

func (s *SessionService) ListSessions(userID uuid.UUID, eventID *uuid.UUID, archived *bool) ([]SessionSummary, error) {
	query := s.db.Preload("Event").Preload("Seller.Contact").
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if eventID != nil {
		query = query.Where("event_id = ?", *eventID)
	}
	if archived != nil {
		query = query.Where("archived = ?", *archived)
	}

	var sessions []models.Session
	if err := query.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}

	ids := make([]uuid.UUID, len(sessions))
	for i, sess := range sessions {
		ids[i] = sess.ID
	}

	evalCounts, cartAggs, err := s.fetchAggregates(ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]SessionSummary, len(sessions))
	for i, sess := range sessions {
		summaries[i] = mapSessionSummary(sess, evalCounts[sess.ID], cartAggs[sess.ID])
	}

	return summaries, nil
}

func (s *SessionService) GetSession(userID, sessionID uuid.UUID) (*SessionSummary, error) {
	var session models.Session
	err := s.db.Preload("Event").Preload("Seller.Contact").
		Where("id = ? AND user_id = ?", sessionID, userID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	evalCounts, cartAggs, err := s.fetchAggregates([]uuid.UUID{session.ID})
	if err != nil {
		return nil, err
	}

	summary := mapSessionSummary(session, evalCounts[session.ID], cartAggs[session.ID])
	return &summary, nil
}

func (s *SessionService) CreateSession(userID uuid.UUID, req *CreateSessionRequest) (*SessionSummary, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	sellerID := req.SellerID
	if sellerID != nil {
		if err := s.verifySellerOwned(userID, *sellerID); err != nil {
			return nil, err
		}
	} else if req.ContactID != nil {
		resolved, err := s.resolveSeller(userID, *req.ContactID)
		if err != nil {
			return nil, err
		}
		sellerID = &resolved.ID
	}

	if req.EventID != nil {
		if err := s.verifyEventOwned(userID, *req.EventID); err != nil {
			return nil, err
		}
	}

	// The generated number is advisory; the unique constraint is the
	// arbiter, so regenerate and retry on collision.
	for attempt := 0; attempt < sessionNumberAttempts; attempt++ {
		number, err := s.nextSessionNumber()
		if err != nil {
			return nil, err
		}

		session := &models.Session{
			UserID:        userID,
			SessionNumber: number,
			EventID:       req.EventID,
			SellerID:      sellerID,
			Notes:         req.Notes,
			Status:        models.SessionStatusActive,
		}

		err = s.db.Create(session).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}

		return s.GetSession(userID, session.ID)
	}

	return nil, ErrSessionNumberExhausted
}

func (s *SessionService) UpdateSession(userID, sessionID uuid.UUID, req *UpdateSessionRequest) (*SessionSummary, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var session models.Session
	err := s.db.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	updates := buildSessionUpdates(req)

	// Referenced rows must belong to the caller; a foreign seller or
	// event id reads the same as a missing one.
	sellerRef, eventRef := sessionRefs(updates)
	if sellerRef != nil {
		if err := s.verifySellerOwned(userID, *sellerRef); err != nil {
			return nil, err
		}
	}
	if eventRef != nil {
		if err := s.verifyEventOwned(userID, *eventRef); err != nil {
			return nil, err
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&session).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update session: %w", err)
		}
	}

	return s.GetSession(userID, sessionID)
}

func (s *SessionService) DeleteSession(userID, sessionID uuid.UUID) error {
	// Ownership-scoped hard delete; deleting a foreign or missing
	// session is a silent no-op.
	result := s.db.Where("id = ? AND user_id = ?", sessionID, userID).Delete(&models.Session{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	return nil
}

// resolveSeller returns the existing seller link for the contact or
// creates one. The contact must belong to the user.
func (s *SessionService) resolveSeller(userID, contactID uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	err := s.db.Where("user_id = ? AND contact_id = ?", userID, contactID).First(&seller).Error
	if err == nil {
		return &seller, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up seller: %w", err)
	}

	var contact models.Contact
	err = s.db.Where("id = ? AND user_id = ?", contactID, userID).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up contact: %w", err)
	}

	seller = models.Seller{UserID: userID, ContactID: contactID}
	if err := s.db.Create(&seller).Error; err != nil {
		// Lost a race with a concurrent create; reuse the winner's row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := s.db.Where("user_id = ? AND contact_id = ?", userID, contactID).First(&seller).Error; err != nil {
				return nil, fmt.Errorf("failed to look up seller: %w", err)
			}
			return &seller, nil
		}
		return nil, fmt.Errorf("failed to create seller: %w", err)
	}

	return &seller, nil
}

func (s *SessionService) verifySellerOwned(userID, sellerID uuid.UUID) error {
	var count int64
	err := s.db.Model(&models.Seller{}).
		Where("id = ? AND user_id = ?", sellerID, userID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to look up seller: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SessionService) verifyEventOwned(userID, eventID uuid.UUID) error {
	var count int64
	err := s.db.Model(&models.Event{}).
		Where("id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to look up event: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SessionService) nextSessionNumber() (string, error) {
	var maxSuffix int
	err := s.db.Raw(
		"SELECT COALESCE(MAX(CAST(SUBSTRING(session_number FROM 'BD-[0-9]{4}-([0-9]+)$') AS INTEGER)), 0) FROM buy_offers",
	).Scan(&maxSuffix).Error
	if err != nil {
		return "", fmt.Errorf("failed to scan session numbers: %w", err)
	}

	return formatSessionNumber(time.Now().Year(), maxSuffix+1), nil
}

// fetchAggregates returns the evaluation count and cart aggregate per
// session id. An empty id list short-circuits without querying.
func (s *SessionService) fetchAggregates(ids []uuid.UUID) (map[uuid.UUID]int64, map[uuid.UUID]cartAggregate, error) {
	evalCounts := make(map[uuid.UUID]int64)
	cartAggs := make(map[uuid.UUID]cartAggregate)

	if len(ids) == 0 {
		return evalCounts, cartAggs, nil
	}

	var evalRows []struct {
		SessionID uuid.UUID
		Count     int64
	}
	err := s.db.Model(&models.EvaluationAsset{}).
		Select("session_id, COUNT(*) AS count").
		Where("session_id IN ?", ids).
		Group("session_id").
		Scan(&evalRows).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count evaluation assets: %w", err)
	}
	for _, row := range evalRows {
		evalCounts[row.SessionID] = row.Count
	}

	var cartRows []cartAggregate
	err = s.db.Model(&models.CartEntry{}).
		Select("session_id, COUNT(*) AS count, COALESCE(SUM(offer_price), 0) AS total_value, COALESCE(SUM(expected_profit), 0) AS expected_profit").
		Where("session_id IN ?", ids).
		Group("session_id").
		Scan(&cartRows).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to aggregate cart entries: %w", err)
	}
	for _, row := range cartRows {
		cartAggs[row.SessionID] = row
	}

	return evalCounts, cartAggs, nil
}

// Pure helpers

func formatSessionNumber(year, seq int) string {
	return fmt.Sprintf("BD-%d-%04d", year, seq)
}

// sessionRefs pulls the seller and event ids a patch would attach, for
// ownership verification. Cleared (NULL) references need no check.
func sessionRefs(updates map[string]interface{}) (sellerID, eventID *uuid.UUID) {
	if id, ok := updates["seller_id"].(uuid.UUID); ok {
		sellerID = &id
	}
	if id, ok := updates["event_id"].(uuid.UUID); ok {
		eventID = &id
	}
	return sellerID, eventID
}

// buildSessionUpdates turns a patch request into a column update map.
// Setting status to "closed" also archives the session in the same
// write; empty-string notes and ids normalize to NULL.
func buildSessionUpdates(req *UpdateSessionRequest) map[string]interface{} {
	updates := make(map[string]interface{})

	if req.Notes != nil {
		if *req.Notes == "" {
			updates["notes"] = nil
		} else {
			updates["notes"] = *req.Notes
		}
	}

	if req.Status != nil {
		status := models.SessionStatus(*req.Status)
		updates["status"] = status
		if status == models.SessionStatusClosed {
			updates["archived"] = true
		}
	}

	if req.SellerID != nil {
		updates["seller_id"] = nullableUUID(*req.SellerID)
	}
	if req.EventID != nil {
		updates["event_id"] = nullableUUID(*req.EventID)
	}

	return updates
}

func nullableUUID(value string) interface{} {
	if value == "" {
		return nil
	}
	if id, err := uuid.Parse(value); err == nil {
		return id
	}
	return nil
}

// mapSessionSummary combines one session row with its aggregates. No
// side effects, no I/O.
func mapSessionSummary(session models.Session, evalCount int64, cart cartAggregate) SessionSummary {
	eventName := "Unknown Event"
	if session.Event != nil {
		eventName = session.Event.Name
	}

	sellerName := "—"
	if session.Seller != nil && session.Seller.Contact.Name != "" {
		sellerName = session.Seller.Contact.Name
	}

	return SessionSummary{
		ID:              session.ID,
		SessionNumber:   session.SessionNumber,
		Status:          session.Status,
		Archived:        session.Archived,
		Notes:           session.Notes,
		EventID:         session.EventID,
		EventName:       eventName,
		SellerID:        session.SellerID,
		SellerName:      sellerName,
		EvaluationCount: evalCount,
		CartCount:       cart.Count,
		AssetCount:      evalCount + cart.Count,
		TotalValue:      cart.TotalValue,
		ExpectedProfit:  cart.ExpectedProfit,
		SentAt:          session.SentAt,
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}
}
