// internal/services/catalog_service.go
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

// CatalogService manages the shared card catalog (global assets).
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type CreateAssetRequest struct {
	Title          string                 `json:"title" validate:"required,min=1,max=255"`
	PlayerName     string                 `json:"player_name,omitempty" validate:"omitempty,max=255"`
	SetName        string                 `json:"set_name,omitempty" validate:"omitempty,max=255"`
	CardNumber     string                 `json:"card_number,omitempty" validate:"omitempty,max=50"`
	Year           int                    `json:"year,omitempty" validate:"omitempty,min=1800,max=2100"`
	Grade          string                 `json:"grade,omitempty" validate:"omitempty,max=20"`
	GradingCompany string                 `json:"grading_company,omitempty" validate:"omitempty,max=50"`
	CertNumber     string                 `json:"cert_number,omitempty" validate:"omitempty,max=50"`
	ImageURLs      []string               `json:"image_urls,omitempty"`
	MarketValue    float64                `json:"market_value,omitempty" validate:"omitempty,min=0"`
	Attributes     map[string]interface{} `json:"attributes,omitempty"`
}

type AssetSearchParams struct {
	utils.PaginationParams
	GradingCompany string
	Year           *int
}

func (s *CatalogService) SearchAssets(params AssetSearchParams) ([]models.GlobalAsset, int64, error) {
	query := s.db.Model(&models.GlobalAsset{})

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(player_name) LIKE ? OR LOWER(set_name) LIKE ? OR cert_number = ?",
			searchTerm, searchTerm, searchTerm, params.Search,
		)
	}
	if params.GradingCompany != "" {
		query = query.Where("grading_company = ?", params.GradingCompany)
	}
	if params.Year != nil {
		query = query.Where("year = ?", *params.Year)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assets: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title", "year", "market_value"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var assets []models.GlobalAsset
	if err := query.Find(&assets).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch assets: %w", err)
	}

	return assets, total, nil
}

func (s *CatalogService) GetAsset(assetID uuid.UUID) (*models.GlobalAsset, error) {
	var asset models.GlobalAsset
	if err := s.db.First(&asset, "id = ?", assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch asset: %w", err)
	}
	return &asset, nil
}

// CreateAsset registers a card in the shared catalog, reusing an
// existing row when the cert number already identifies one.
func (s *CatalogService) CreateAsset(req *CreateAssetRequest) (*models.GlobalAsset, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.CertNumber != "" && req.GradingCompany != "" {
		var existing models.GlobalAsset
		err := s.db.Where("grading_company = ? AND cert_number = ?", req.GradingCompany, req.CertNumber).
			First(&existing).Error
		if err == nil {
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up asset: %w", err)
		}
	}

	asset := &models.GlobalAsset{
		Title:          req.Title,
		PlayerName:     req.PlayerName,
		SetName:        req.SetName,
		CardNumber:     req.CardNumber,
		Year:           req.Year,
		Grade:          req.Grade,
		GradingCompany: req.GradingCompany,
		CertNumber:     req.CertNumber,
		ImageURLs:      req.ImageURLs,
		MarketValue:    req.MarketValue,
		Attributes:     models.JSONB(req.Attributes),
	}
	if err := s.db.Create(asset).Error; err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	return asset, nil
}
