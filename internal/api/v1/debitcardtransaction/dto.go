package debitcardtransaction

import (
	"debitcard-backend/internal/models"
	"time"

	"github.com/shopspring/decimal"
)

// ListDebitCardTransactionsQuery keeps debit_card_id as text so a malformed id
// is answered like any other card the caller does not own.
type ListDebitCardTransactionsQuery struct {
	DebitCardID string `form:"debit_card_id" binding:"required"`
}

// CreateDebitCardTransactionRequest accepts amount as a JSON number or a
// numeric string.
type CreateDebitCardTransactionRequest struct {
	DebitCardID  uint             `json:"debit_card_id" binding:"required"`
	Amount       *decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string           `json:"currency_code" binding:"required,currency"`
}

type DebitCardTransactionResponse struct {
	ID           uint      `json:"id"`
	DebitCardID  uint      `json:"debit_card_id"`
	Amount       string    `json:"amount"`
	CurrencyCode string    `json:"currency_code"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewDebitCardTransactionResponse(t *models.DebitCardTransaction) DebitCardTransactionResponse {
	return DebitCardTransactionResponse{
		ID:           t.ID,
		DebitCardID:  t.DebitCardID,
		Amount:       t.Amount.StringFixed(2),
		CurrencyCode: string(t.CurrencyCode),
		CreatedAt:    t.CreatedAt,
	}
}
