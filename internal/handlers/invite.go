// internal/handlers/invite.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slabdesk/slabdesk-backend/internal/services"
	"github.com/slabdesk/slabdesk-backend/internal/utils"
)

type InviteHandler struct {
	inviteService *services.InviteService
}

func NewInviteHandler(inviteService *services.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

// POST /invites/validate
//
// Public endpoint, rate limited at the router. The response never says
// why a code was rejected.
func (h *InviteHandler) ValidateInvite(c *gin.Context) {
	var req services.ValidateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if err := h.inviteService.ValidateInvite(&req); err != nil {
		if errors.Is(err, services.ErrInvalidInvite) {
			utils.UnauthorizedResponse(c, "Invalid invite code")
			return
		}
		logrus.WithError(err).Error("Failed to validate invite code")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"valid": true,
	})
}
