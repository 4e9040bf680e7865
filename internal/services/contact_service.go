// internal/services/contact_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slabdesk/slabdesk-backend/internal/models"
	"github.com/slabdesk/slabdesk-backend/internal/utils"
)

type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

type CreateContactRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Notes string `json:"notes,omitempty"`
}

type UpdateContactRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Notes *string `json:"notes,omitempty"`
}

func (s *ContactService) ListContacts(userID uuid.UUID, params utils.PaginationParams) ([]models.Contact, int64, error) {
	query := s.db.Model(&models.Contact{}).Where("user_id = ?", userID)

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "email"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var contacts []models.Contact
	if err := query.Find(&contacts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch contacts: %w", err)
	}

	return contacts, total, nil
}

func (s *ContactService) GetContact(userID, contactID uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := s.db.Where("id = ? AND user_id = ?", contactID, userID).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch contact: %w", err)
	}
	return &contact, nil
}

// CreateContact reuses an existing contact when the email already
// belongs to one, so the same person can back seller, consignor, and
// buyer roles without duplication.
func (s *ContactService) CreateContact(userID uuid.UUID, req *CreateContactRequest) (*models.Contact, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Email != "" {
		var existing models.Contact
		err := s.db.Where("user_id = ? AND LOWER(email) = ?", userID, strings.ToLower(req.Email)).
			First(&existing).Error
		if err == nil {
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up contact: %w", err)
		}
	}

	contact := &models.Contact{
		UserID: userID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Notes:  req.Notes,
	}
	if err := s.db.Create(contact).Error; err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return contact, nil
}

func (s *ContactService) UpdateContact(userID, contactID uuid.UUID, req *UpdateContactRequest) (*models.Contact, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	contact, err := s.GetContact(userID, contactID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(contact).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update contact: %w", err)
		}
	}

	return contact, nil
}

func (s *ContactService) DeleteContact(userID, contactID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", contactID, userID).Delete(&models.Contact{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", result.Error)
	}
	return nil
}
