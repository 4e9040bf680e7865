// internal/services/invite_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/slabdesk/slabdesk-backend/internal/models"
	"github.com/slabdesk/slabdesk-backend/internal/utils"
)

var ErrInvalidInvite = errors.New("invalid invite code")

type InviteService struct {
	db *gorm.DB
}

func NewInviteService(db *gorm.DB) *InviteService {
	return &InviteService{db: db}
}

type ValidateInviteRequest struct {
	Code string `json:"code" validate:"required,min=4,max=100"`
}

// ValidateInvite checks a code against the stored bcrypt hashes and
// consumes one use on success. The error is the same for unknown,
// expired, and exhausted codes.
func (s *InviteService) ValidateInvite(req *ValidateInviteRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var codes []models.InviteCode
	if err := s.db.Where("active = ?", true).Find(&codes).Error; err != nil {
		return fmt.Errorf("failed to fetch invite codes: %w", err)
	}

	now := time.Now()
	for i := range codes {
		code := &codes[i]

		if bcrypt.CompareHashAndPassword([]byte(code.CodeHash), []byte(req.Code)) != nil {
			continue
		}

		if code.ExpiresAt != nil && code.ExpiresAt.Before(now) {
			return ErrInvalidInvite
		}
		if code.MaxUses > 0 && code.UseCount >= code.MaxUses {
			return ErrInvalidInvite
		}

		err := s.db.Model(code).
			UpdateColumn("use_count", gorm.Expr("use_count + 1")).Error
		if err != nil {
			return fmt.Errorf("failed to consume invite code: %w", err)
		}
		return nil
	}

	return ErrInvalidInvite
}

func hashInviteCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash invite code: %w", err)
	}
	return string(hash), nil
}

// CreateInvite stores a new code hash. Exposed through the invites
// command, not over HTTP.
func (s *InviteService) CreateInvite(code, label string, maxUses int, expiresAt *time.Time) (*models.InviteCode, error) {
	hash, err := hashInviteCode(code)
	if err != nil {
		return nil, err
	}

	invite := &models.InviteCode{
		CodeHash:  hash,
		Label:     label,
		MaxUses:   maxUses,
		ExpiresAt: expiresAt,
		Active:    true,
	}
	if err := s.db.Create(invite).Error; err != nil {
		return nil, fmt.Errorf("failed to create invite code: %w", err)
	}

	return invite, nil
}
