// internal/handlers/catalog.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slabdesk/slabdesk-backend/internal/services"
	"github.com/slabdesk/slabdesk-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
	storageService *services.StorageService
}

func NewCatalogHandler(catalogService *services.CatalogService, storageService *services.StorageService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		storageService: storageService,
	}
}

// GET /assets
func (h *CatalogHandler) SearchAssets(c *gin.Context) {
	params := services.AssetSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		GradingCompany:   c.Query("grading_company"),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid year", nil)
			return
		}
		params.Year = &year
	}

	assets, total, err := h.catalogService.SearchAssets(params)
	if err != nil {
		logrus.WithError(err).Error("Failed to search assets")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(
		gin.H{"assets": assets}, total, params.PaginationParams))
}

// GET /assets/:id
func (h *CatalogHandler) GetAsset(c *gin.Context) {
	assetID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	asset, err := h.catalogService.GetAsset(assetID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Asset")
			return
		}
		logrus.WithError(err).Error("Failed to fetch asset")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"asset": asset,
	})
}

// POST /assets
func (h *CatalogHandler) CreateAsset(c *gin.Context) {
	var req services.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	asset, err := h.catalogService.CreateAsset(&req)
	if err != nil {
		logrus.WithError(err).Error("Failed to create asset")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"asset": asset,
	})
}

// POST /assets/upload-images
func (h *CatalogHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form", err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No images provided", nil)
		return
	}
	if len(files) > 10 {
		utils.BadRequestResponse(c, "Too many images, maximum is 10", nil)
		return
	}

	options := h.storageService.CardImageOptions()
	uploads := make([]*services.UploadResult, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.BadRequestResponse(c, "Failed to read uploaded file", err.Error())
			return
		}

		result, err := h.storageService.UploadFile(file, header, options)
		file.Close()
		if err != nil {
			logrus.WithError(err).WithField("filename", header.Filename).Error("Failed to upload image")
			utils.BadRequestResponse(c, "Upload failed", err.Error())
			return
		}
		uploads = append(uploads, result)
	}

	utils.CreatedResponse(c, gin.H{
		"uploads": uploads,
	})
}
