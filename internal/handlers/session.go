// internal/handlers/session.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/slabdesk/slabdesk-backend/internal/services"
	"github.com/slabdesk/slabdesk-backend/internal/utils"
)

type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// GET /buying-desk/sessions
func (h *SessionHandler) GetSessions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var eventID *uuid.UUID
	if eventIDStr := c.Query("eventId"); eventIDStr != "" {
		id, err := uuid.Parse(eventIDStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid eventId", nil)
			return
		}
		eventID = &id
	}

	var archived *bool
	if archivedStr := c.Query("archived"); archivedStr != "" {
		val, err := strconv.ParseBool(archivedStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid archived flag", nil)
			return
		}
		archived = &val
	}

	summaries, err := h.sessionService.ListSessions(userID, eventID, archived)
	if err != nil {
		logrus.WithError(err).Error("Failed to list sessions")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"sessions": summaries,
	})
}

// GET /buying-desk/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	summary, err := h.sessionService.GetSession(userID, sessionID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Session")
			return
		}
		logrus.WithError(err).Error("Failed to fetch session")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"session": summary,
	})
}

// POST /buying-desk/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	summary, err := h.sessionService.CreateSession(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrSessionNumberExhausted) {
			utils.ErrorResponse(c, http.StatusInternalServerError, "SESSION_NUMBER_EXHAUSTED",
				"Failed to allocate a session number", gin.H{
					"reason": "session number generation exhausted after retries",
				})
			return
		}
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Referenced contact, seller, or event")
			return
		}
		if validationErrors := utils.GetValidationErrors(errors.Unwrap(err)); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		logrus.WithError(err).Error("Failed to create session")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"session": summary,
	})
}

// PATCH /buying-desk/sessions/:id
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if req.Empty() {
		utils.BadRequestResponse(c, "At least one field is required", nil)
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	summary, err := h.sessionService.UpdateSession(userID, sessionID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Session or referenced resource")
			return
		}
		logrus.WithError(err).Error("Failed to update session")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"session": summary,
	})
}

// DELETE /buying-desk/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.sessionService.DeleteSession(userID, sessionID); err != nil {
		logrus.WithError(err).Error("Failed to delete session")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.NoContentResponse(c)
}
