// internal/handlers/event.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slabdesk/slabdesk-backend/internal/models"
	"github.com/slabdesk/slabdesk-backend/internal/services"
	"github.com/slabdesk/slabdesk-backend/internal/utils"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// GET /events
func (h *EventHandler) GetEvents(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var status *models.EventStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := models.EventStatus(statusStr)
		status = &s
	}

	events, err := h.eventService.ListEvents(userID, status)
	if err != nil {
		logrus.WithError(err).Error("Failed to list events")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"events": events,
	})
}

// GET /events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(userID, eventID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Event")
			return
		}
		logrus.WithError(err).Error("Failed to fetch event")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"event": event,
	})
}

// POST /events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	event, err := h.eventService.CreateEvent(userID, &req)
	if err != nil {
		logrus.WithError(err).Error("Failed to create event")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"event": event,
	})
}

// PATCH /events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	event, err := h.eventService.UpdateEvent(userID, eventID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Event")
			return
		}
		logrus.WithError(err).Error("Failed to update event")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"event": event,
	})
}

// DELETE /events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(userID, eventID); err != nil {
		logrus.WithError(err).Error("Failed to delete event")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.NoContentResponse(c)
}
