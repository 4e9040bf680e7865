// internal/handlers/consignment.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slabdesk/slabdesk-backend/internal/models"
	"github.com/slabdesk/slabdesk-backend/internal/services"
	"github.com/slabdesk/slabdesk-backend/internal/utils"
)

type ConsignmentHandler struct {
	consignmentService *services.ConsignmentService
}

func NewConsignmentHandler(consignmentService *services.ConsignmentService) *ConsignmentHandler {
	return &ConsignmentHandler{consignmentService: consignmentService}
}

// GET /consignments
func (h *ConsignmentHandler) GetConsignments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var status *models.ConsignmentStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := models.ConsignmentStatus(statusStr)
		status = &s
	}

	consignments, err := h.consignmentService.ListConsignments(userID, status)
	if err != nil {
		logrus.WithError(err).Error("Failed to list consignments")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"consignments": consignments,
	})
}

// GET /consignments/:id
func (h *ConsignmentHandler) GetConsignment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	consignmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	consignment, err := h.consignmentService.GetConsignment(userID, consignmentID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Consignment")
			return
		}
		logrus.WithError(err).Error("Failed to fetch consignment")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"consignment": consignment,
	})
}

// POST /consignments
func (h *ConsignmentHandler) CreateConsignment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateConsignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	consignment, err := h.consignmentService.CreateConsignment(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Consignor contact")
			return
		}
		logrus.WithError(err).Error("Failed to create consignment")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"consignment": consignment,
	})
}

// PATCH /consignments/:id
func (h *ConsignmentHandler) UpdateConsignment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	consignmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateConsignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	consignment, err := h.consignmentService.UpdateConsignment(userID, consignmentID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Consignment")
			return
		}
		logrus.WithError(err).Error("Failed to update consignment")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"consignment": consignment,
	})
}

// DELETE /consignments/:id
func (h *ConsignmentHandler) DeleteConsignment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	consignmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.consignmentService.DeleteConsignment(userID, consignmentID); err != nil {
		logrus.WithError(err).Error("Failed to delete consignment")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.NoContentResponse(c)
}

// POST /consignments/:id/sell
func (h *ConsignmentHandler) SellConsignment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	consignmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.SellConsignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	settlement, err := h.consignmentService.SellConsignment(userID, consignmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, "Consignment")
		case errors.Is(err, services.ErrConsignmentNotActive):
			utils.ConflictResponse(c, "Consignment is not active")
		default:
			logrus.WithError(err).Error("Failed to sell consignment")
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"settlement": settlement,
	})
}
