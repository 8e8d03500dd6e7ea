package debitcardtransaction

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	transactions := router.Group("/debit-card-transactions")
	transactions.GET("", ListDebitCardTransactions)
	transactions.POST("", CreateDebitCardTransaction)
	transactions.GET("/:id", GetDebitCardTransaction)
}
