package debitcard

import (
	"debitcard-backend/internal/middleware"
	"debitcard-backend/internal/services"
	"debitcard-backend/internal/utils"
	"debitcard-backend/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const forbiddenMessage = "This action is unauthorized."

func respondError(c *gin.Context, err error, message string) {
	if services.IsForbidden(err) {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, forbiddenMessage))
		return
	}
	logger.Log.Error(message, zap.Error(err))
	c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, message))
}

// cardID parses the :id path parameter. Anything that is not a positive
// integer is handled like a card the caller does not own.
func cardID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, forbiddenMessage))
		return 0, false
	}
	return uint(id), true
}

func currentUserID(c *gin.Context) (uint, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return 0, false
	}
	return user.ID, true
}

// ListDebitCards godoc
// @Summary List debit cards
// @Description List the caller's active and disabled debit cards. Deleted cards are never returned.
// @Tags debit-cards
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]DebitCardResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /debit-cards [get]
func ListDebitCards(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cards, err := services.ListDebitCards(userID)
	if err != nil {
		respondError(c, err, "Failed to fetch debit cards")
		return
	}

	items := make([]DebitCardResponse, 0, len(cards))
	for i := range cards {
		items = append(items, NewDebitCardResponse(&cards[i]))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Debit cards retrieved successfully", items))
}

// CreateDebitCard godoc
// @Summary Create a debit card
// @Description Issue a new active debit card to the caller. Number and expiration date are assigned by the server.
// @Tags debit-cards
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body CreateDebitCardRequest true "Card type"
// @Success 201 {object} utils.Response{data=DebitCardResponse}
// @Failure 401 {object} utils.Response
// @Failure 422 {object} utils.Response{data=utils.ValidationErrorData}
// @Failure 500 {object} utils.Response
// @Router /debit-cards [post]
func CreateDebitCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateDebitCardRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	card, err := services.CreateDebitCard(userID, req.Type)
	if err != nil {
		respondError(c, err, "Failed to create debit card")
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Debit card created successfully", NewDebitCardResponse(card)))
}

// GetDebitCard godoc
// @Summary Get a debit card
// @Description Get one of the caller's debit cards
// @Tags debit-cards
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Debit card ID"
// @Success 200 {object} utils.Response{data=DebitCardResponse}
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /debit-cards/{id} [get]
func GetDebitCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := cardID(c)
	if !ok {
		return
	}

	card, err := services.GetDebitCard(userID, id)
	if err != nil {
		respondError(c, err, "Failed to fetch debit card")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Debit card retrieved successfully", NewDebitCardResponse(card)))
}

// UpdateDebitCard godoc
// @Summary Activate or deactivate a debit card
// @Tags debit-cards
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Debit card ID"
// @Param input body UpdateDebitCardRequest true "Activation flag"
// @Success 200 {object} utils.Response{data=DebitCardResponse}
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 422 {object} utils.Response{data=utils.ValidationErrorData}
// @Failure 500 {object} utils.Response
// @Router /debit-cards/{id} [put]
func UpdateDebitCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := cardID(c)
	if !ok {
		return
	}

	var req UpdateDebitCardRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	card, err := services.SetDebitCardActive(userID, id, *req.IsActive)
	if err != nil {
		respondError(c, err, "Failed to update debit card")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Debit card updated successfully", NewDebitCardResponse(card)))
}

// DeleteDebitCard godoc
// @Summary Delete a debit card
// @Description Soft-delete one of the caller's debit cards. Cards with transactions cannot be deleted.
// @Tags debit-cards
// @Security ApiKeyAuth
// @Param id path int true "Debit card ID"
// @Success 204
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /debit-cards/{id} [delete]
func DeleteDebitCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := cardID(c)
	if !ok {
		return
	}

	if err := services.DeleteDebitCard(userID, id); err != nil {
		respondError(c, err, "Failed to delete debit card")
		return
	}

	c.Status(http.StatusNoContent)
}
