// internal/handlers/session_assets.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slabdesk/slabdesk-backend/internal/services"
	"github.com/slabdesk/slabdesk-backend/internal/utils"
)

// SessionAssetHandler exposes asset movement within a session:
// evaluation staging, cart pricing, checkout, and purchase reverts.
type SessionAssetHandler struct {
	assetService *services.AssetService
}

func NewSessionAssetHandler(assetService *services.AssetService) *SessionAssetHandler {
	return &SessionAssetHandler{assetService: assetService}
}

// GET /buying-desk/sessions/:id/assets
func (h *SessionAssetHandler) GetSessionAssets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	assets, err := h.assetService.ListSessionAssets(userID, sessionID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Session")
			return
		}
		logrus.WithError(err).Error("Failed to list session assets")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, assets)
}

// POST /buying-desk/sessions/:id/assets
func (h *SessionAssetHandler) AddAsset(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.AddAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	evaluation, err := h.assetService.AddAsset(userID, sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateAsset):
			utils.ConflictResponse(c, "Asset is already in this session")
		case errors.Is(err, services.ErrAlreadyOwned):
			utils.ConflictResponse(c, "Asset was already purchased")
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, "Session or asset")
		default:
			logrus.WithError(err).Error("Failed to add asset to session")
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"evaluation": evaluation,
	})
}

// DELETE /buying-desk/sessions/:id/assets/:assetId
func (h *SessionAssetHandler) RemoveAsset(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	evaluationID, ok := pathUUID(c, "assetId")
	if !ok {
		return
	}

	if err := h.assetService.RemoveAsset(userID, sessionID, evaluationID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Session")
			return
		}
		logrus.WithError(err).Error("Failed to remove asset from session")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.NoContentResponse(c)
}

// POST /buying-desk/sessions/:id/cart/move
func (h *SessionAssetHandler) MoveToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.MoveToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.assetService.MoveToCart(c.Request.Context(), userID, sessionID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Session")
			return
		}
		logrus.WithError(err).Error("Failed to move asset to cart")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, result)
}

// DELETE /buying-desk/sessions/:id/cart/:cartId
func (h *SessionAssetHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	entryID, ok := pathUUID(c, "cartId")
	if !ok {
		return
	}

	if err := h.assetService.RemoveFromCart(userID, sessionID, entryID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Cart entry")
			return
		}
		logrus.WithError(err).Error("Failed to remove cart entry")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.NoContentResponse(c)
}

// POST /buying-desk/sessions/:id/checkout
func (h *SessionAssetHandler) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	purchases, err := h.assetService.Checkout(userID, sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, "Session")
		case errors.Is(err, services.ErrCartEmpty):
			utils.BadRequestResponse(c, "Cart is empty", nil)
		case errors.Is(err, services.ErrAlreadyOwned):
			utils.ConflictResponse(c, "An asset in the cart was already purchased")
		default:
			logrus.WithError(err).Error("Failed to checkout session")
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"purchases": purchases,
	})
}

// POST /buying-desk/sessions/:id/revert/:assetId
func (h *SessionAssetHandler) RevertPurchase(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	assetID, ok := pathUUID(c, "assetId")
	if !ok {
		return
	}

	restored, err := h.assetService.RevertPurchase(userID, sessionID, assetID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Purchase")
			return
		}
		logrus.WithError(err).Error("Failed to revert purchase")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"cart_entry": restored,
	})
}
