package middleware

import (
	"debitcard-backend/internal/models"
	"debitcard-backend/internal/services"
	"debitcard-backend/internal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is where AuthMiddleware stores the authenticated models.User.
const ContextUserKey = "user"

// AuthMiddleware rejects the request unless it carries a valid, unrevoked
// bearer token for an existing user. Revocation is looked up by the jti claim.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := utils.ExtractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid or expired token"))
			return
		}

		tokenID, err := utils.TokenID(claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid token ID"))
			return
		}

		isDenylisted, err := services.IsDenylisted(tokenID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to check token status"))
			return
		}
		if isDenylisted {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Token has been revoked"))
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok || userIDFloat < 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid user ID in token"))
			return
		}

		user, err := services.FindUserByID(uint(userIDFloat))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "User not found"))
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok && user.ID != 0
}
