// internal/handlers/contact.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slabdesk/slabdesk-backend/internal/services"
	"github.com/slabdesk/slabdesk-backend/internal/utils"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// GET /contacts
func (h *ContactHandler) GetContacts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	contacts, total, err := h.contactService.ListContacts(userID, params)
	if err != nil {
		logrus.WithError(err).Error("Failed to list contacts")
		utils.InternalErrorResponse(c, "")
		return
	}

	result := utils.CreatePaginationResult(contacts, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /contacts/:id
func (h *ContactHandler) GetContact(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	contactID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	contact, err := h.contactService.GetContact(userID, contactID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Contact")
			return
		}
		logrus.WithError(err).Error("Failed to fetch contact")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"contact": contact,
	})
}

// POST /contacts
func (h *ContactHandler) CreateContact(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	contact, err := h.contactService.CreateContact(userID, &req)
	if err != nil {
		logrus.WithError(err).Error("Failed to create contact")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"contact": contact,
	})
}

// PATCH /contacts/:id
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	contactID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	contact, err := h.contactService.UpdateContact(userID, contactID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Contact")
			return
		}
		logrus.WithError(err).Error("Failed to update contact")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"contact": contact,
	})
}

// DELETE /contacts/:id
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	contactID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.contactService.DeleteContact(userID, contactID); err != nil {
		logrus.WithError(err).Error("Failed to delete contact")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.NoContentResponse(c)
}
