package user

import (
	"debitcard-backend/internal/middleware"
	"debitcard-backend/internal/services"
	"debitcard-backend/internal/utils"
	"debitcard-backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CurrentUser godoc
// @Summary Get current user
// @Description Get current user's information and how many debit cards they hold
// @Tags user
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=user.UserResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /auth/user [get]
func CurrentUser(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	count, err := services.CountDebitCards(u.ID)
	if err != nil {
		logger.Log.Error("count debit cards", zap.Uint("user_id", u.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load user information"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User information retrieved successfully", UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		DebitCardCount: count,
	}))
}
