package debitcardtransaction

import (
	"debitcard-backend/internal/middleware"
	"debitcard-backend/internal/models"
	"debitcard-backend/internal/services"
	"debitcard-backend/internal/utils"
	"debitcard-backend/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const forbiddenMessage = "This action is unauthorized."

// maxAmount is the first value that no longer fits a decimal(16,2) column.
var maxAmount = decimal.New(1, 14)

func respondError(c *gin.Context, err error, message string) {
	if services.IsForbidden(err) {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, forbiddenMessage))
		return
	}
	logger.Log.Error(message, zap.Error(err))
	c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, message))
}

func currentUserID(c *gin.Context) (uint, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return 0, false
	}
	return user.ID, true
}

// parseID turns a path or query id into a key. Anything that is not a
// positive integer gets the same 403 as a resource the caller does not own.
func parseID(c *gin.Context, raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, forbiddenMessage))
		return 0, false
	}
	return uint(id), true
}

// validateAmount reports problems the binding tags cannot express.
func validateAmount(amount decimal.Decimal) []utils.ValidationErrorDetail {
	detail := utils.ValidationErrorDetail{Field: "amount", Received: amount.String()}
	switch {
	case !amount.IsPositive():
		detail.Message = "Field 'amount' must be greater than 0"
		detail.Expected = "positive number"
	case !amount.Equal(amount.Round(2)):
		detail.Message = "Field 'amount' must have at most 2 decimal places"
		detail.Expected = "2 decimal places"
	case amount.GreaterThanOrEqual(maxAmount):
		detail.Message = "Field 'amount' is too large"
		detail.Expected = "less than " + maxAmount.String()
	default:
		return nil
	}
	return []utils.ValidationErrorDetail{detail}
}

// ListDebitCardTransactions godoc
// @Summary List debit card transactions
// @Description List the transactions recorded against one of the caller's debit cards
// @Tags debit-card-transactions
// @Produce json
// @Security ApiKeyAuth
// @Param debit_card_id query int true "Debit card ID"
// @Success 200 {object} utils.Response{data=[]DebitCardTransactionResponse}
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 422 {object} utils.Response{data=utils.ValidationErrorData}
// @Failure 500 {object} utils.Response
// @Router /debit-card-transactions [get]
func ListDebitCardTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var query ListDebitCardTransactionsQuery
	if !utils.BindQueryAndValidate(c, &query) {
		return
	}

	cardID, ok := parseID(c, query.DebitCardID)
	if !ok {
		return
	}

	transactions, err := services.ListDebitCardTransactions(userID, cardID)
	if err != nil {
		respondError(c, err, "Failed to fetch debit card transactions")
		return
	}

	items := make([]DebitCardTransactionResponse, 0, len(transactions))
	for i := range transactions {
		items = append(items, NewDebitCardTransactionResponse(&transactions[i]))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Debit card transactions retrieved successfully", items))
}

// CreateDebitCardTransaction godoc
// @Summary Record a debit card transaction
// @Tags debit-card-transactions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body CreateDebitCardTransactionRequest true "Transaction"
// @Success 201 {object} utils.Response{data=DebitCardTransactionResponse}
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 422 {object} utils.Response{data=utils.ValidationErrorData}
// @Failure 500 {object} utils.Response
// @Router /debit-card-transactions [post]
func CreateDebitCardTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateDebitCardTransactionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if details := validateAmount(*req.Amount); details != nil {
		utils.RespondValidationErrors(c, details)
		return
	}

	transaction, err := services.CreateDebitCardTransaction(userID, req.DebitCardID, *req.Amount, models.CurrencyCode(req.CurrencyCode))
	if err != nil {
		respondError(c, err, "Failed to create debit card transaction")
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Debit card transaction created successfully", NewDebitCardTransactionResponse(transaction)))
}

// GetDebitCardTransaction godoc
// @Summary Get a debit card transaction
// @Tags debit-card-transactions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Debit card transaction ID"
// @Success 200 {object} utils.Response{data=DebitCardTransactionResponse}
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /debit-card-transactions/{id} [get]
func GetDebitCardTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}

	transaction, err := services.GetDebitCardTransaction(userID, id)
	if err != nil {
		respondError(c, err, "Failed to fetch debit card transaction")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Debit card transaction retrieved successfully", NewDebitCardTransactionResponse(transaction)))
}
