// internal/services/event_service.go
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

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

type CreateEventRequest struct {
	Name     string     `json:"name" validate:"required,min=1,max=255"`
	Venue    string     `json:"venue,omitempty" validate:"omitempty,max=255"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	Notes    string     `json:"notes,omitempty"`
}

type UpdateEventRequest struct {
	Name     *string    `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Venue    *string    `json:"venue,omitempty" validate:"omitempty,max=255"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	Status   *string    `json:"status,omitempty" validate:"omitempty,oneof=upcoming active completed"`
	Notes    *string    `json:"notes,omitempty"`
}

func (s *EventService) ListEvents(userID uuid.UUID, status *models.EventStatus) ([]models.Event, error) {
	query := s.db.Where("user_id = ?", userID).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, nil
}

func (s *EventService) GetEvent(userID, eventID uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := s.db.Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}
	return &event, nil
}

func (s *EventService) CreateEvent(userID uuid.UUID, req *CreateEventRequest) (*models.Event, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	event := &models.Event{
		UserID:   userID,
		Name:     req.Name,
		Venue:    req.Venue,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Status:   models.EventStatusUpcoming,
		Notes:    req.Notes,
	}
	if err := s.db.Create(event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

func (s *EventService) UpdateEvent(userID, eventID uuid.UUID, req *UpdateEventRequest) (*models.Event, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	event, err := s.GetEvent(userID, eventID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Venue != nil {
		updates["venue"] = *req.Venue
	}
	if req.StartsAt != nil {
		updates["starts_at"] = *req.StartsAt
	}
	if req.EndsAt != nil {
		updates["ends_at"] = *req.EndsAt
	}
	if req.Status != nil {
		updates["status"] = models.EventStatus(*req.Status)
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(event).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update event: %w", err)
		}
	}

	return event, nil
}

func (s *EventService) DeleteEvent(userID, eventID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", eventID, userID).Delete(&models.Event{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete event: %w", result.Error)
	}
	return nil
}
