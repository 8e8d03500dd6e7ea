package debitcard

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	cards := router.Group("/debit-cards")
	cards.GET("", ListDebitCards)
	cards.POST("", CreateDebitCard)
	cards.GET("/:id", GetDebitCard)
	cards.PUT("/:id", UpdateDebitCard)
	cards.DELETE("/:id", DeleteDebitCard)
}
