package services

import (
	"context"
	"debitcard-backend/internal/database"
	"debitcard-backend/internal/events"
	"debitcard-backend/internal/models"
	"debitcard-backend/pkg/logger"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListDebitCardTransactions returns the transactions of a card owned by userID.
func ListDebitCardTransactions(userID, debitCardID uint) ([]models.DebitCardTransaction, error) {
	card, err := findOwnedDebitCard(database.DB, userID, debitCardID, false)
	if err != nil {
		return nil, err
	}

	var transactions []models.DebitCardTransaction
	if err := database.DB.Where("debit_card_id = ?", card.ID).Order("id").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("list debit card transactions: %w", err)
	}
	for i := range transactions {
		transactions[i].DebitCard = *card
	}
	return transactions, nil
}

// CreateDebitCardTransaction records a transaction against a card owned by
// userID. It locks the same card row as DeleteDebitCard.
func CreateDebitCardTransaction(userID, debitCardID uint, amount decimal.Decimal, currency models.CurrencyCode) (*models.DebitCardTransaction, error) {
	var transaction *models.DebitCardTransaction

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		card, err := findOwnedDebitCard(tx, userID, debitCardID, true)
		if err != nil {
			return err
		}

		t := &models.DebitCardTransaction{
			DebitCardID:  card.ID,
			Amount:       amount,
			CurrencyCode: currency,
		}
		if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
			return fmt.Errorf("create debit card transaction: %w", err)
		}
		t.DebitCard = *card
		transaction = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("debit card transaction created",
		zap.Uint("debit_card_id", debitCardID),
		zap.Uint("debit_card_transaction_id", transaction.ID))
	events.Emit(context.Background(), events.NewEvent(events.DebitCardTransactionCreated, userID, debitCardID, map[string]interface{}{
		"debit_card_transaction_id": transaction.ID,
		"amount":                    transaction.Amount.String(),
		"currency_code":             string(transaction.CurrencyCode),
	}))

	return transaction, nil
}

// GetDebitCardTransaction loads one transaction and checks ownership through
// its card. The card is loaded unscoped so history stays resolvable.
func GetDebitCardTransaction(userID, id uint) (*models.DebitCardTransaction, error) {
	if id == 0 {
		return nil, ErrForbidden
	}

	var transaction models.DebitCardTransaction
	err := database.DB.
		Preload("DebitCard", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("id = ?", id).
		First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("load debit card transaction %d: %w", id, err)
	}

	if !models.BelongsTo(&transaction, userID) {
		return nil, ErrForbidden
	}
	return &transaction, nil
}
