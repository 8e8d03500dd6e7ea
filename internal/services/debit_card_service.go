package services

import (
	"context"
	"debitcard-backend/internal/database"
	"debitcard-backend/internal/events"
	"debitcard-backend/internal/models"
	"debitcard-backend/internal/utils"
	"debitcard-backend/pkg/logger"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CardIssuing controls how new card numbers and expirations are assigned.
type CardIssuing struct {
	BINPrefix     string
	ValidityYears int
}

var (
	issuingMu sync.RWMutex
	issuing   = CardIssuing{BINPrefix: "4", ValidityYears: 1}
)

func SetCardIssuing(cfg CardIssuing) {
	issuingMu.Lock()
	defer issuingMu.Unlock()
	issuing = cfg
}

func currentCardIssuing() CardIssuing {
	issuingMu.RLock()
	defer issuingMu.RUnlock()
	return issuing
}

// findOwnedDebitCard loads a live card and applies the ownership check.
// Missing, soft-deleted and foreign cards all yield ErrForbidden.
func findOwnedDebitCard(db *gorm.DB, userID, id uint, lock bool) (*models.DebitCard, error) {
	if id == 0 {
		return nil, ErrForbidden
	}

	query := db
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var card models.DebitCard
	if err := query.Where("id = ?", id).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("load debit card %d: %w", id, err)
	}

	if !models.BelongsTo(&card, userID) {
		return nil, ErrForbidden
	}
	return &card, nil
}

// ListDebitCards returns every live card owned by userID.
func ListDebitCards(userID uint) ([]models.DebitCard, error) {
	var cards []models.DebitCard
	if err := database.DB.Where("user_id = ?", userID).Order("id").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("list debit cards: %w", err)
	}
	return cards, nil
}

// maxCardNumberAttempts bounds how often CreateDebitCard draws a new number
// after hitting the unique index on debit_cards.number.
const maxCardNumberAttempts = 5

var generateCardNumber = utils.GenerateCardNumber

// isDuplicateKey reports whether err is a unique-constraint violation,
// whether or not the connection was opened with TranslateError.
func isDuplicateKey(db *gorm.DB, err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if translator, ok := db.Dialector.(gorm.ErrorTranslator); ok {
		return errors.Is(translator.Translate(err), gorm.ErrDuplicatedKey)
	}
	return false
}

// CreateDebitCard issues a new active card to userID.
func CreateDebitCard(userID uint, cardType string) (*models.DebitCard, error) {
	cfg := currentCardIssuing()
	now := time.Now()

	var card *models.DebitCard
	for attempt := 1; ; attempt++ {
		number, err := generateCardNumber(cfg.BINPrefix, utils.CardNumberLength)
		if err != nil {
			return nil, fmt.Errorf("generate card number: %w", err)
		}

		card = &models.DebitCard{
			UserID:         userID,
			Number:         number,
			Type:           cardType,
			ExpirationDate: utils.CardExpiration(now, cfg.ValidityYears),
		}

		err = database.DB.Omit(clause.Associations).Create(card).Error
		if err == nil {
			break
		}
		if !isDuplicateKey(database.DB, err) || attempt == maxCardNumberAttempts {
			return nil, fmt.Errorf("create debit card: %w", err)
		}
		logger.Log.Warn("card number collision, retrying", zap.Uint("user_id", userID), zap.Int("attempt", attempt))
	}

	logger.Log.Info("debit card created", zap.Uint("user_id", userID), zap.Uint("debit_card_id", card.ID))
	events.Emit(context.Background(), events.NewEvent(events.DebitCardCreated, userID, card.ID, map[string]interface{}{
		"type": card.Type,
	}))

	return card, nil
}

func GetDebitCard(userID, id uint) (*models.DebitCard, error) {
	return findOwnedDebitCard(database.DB, userID, id, false)
}

// SetDebitCardActive clears disabled_at when active is true and stamps it
// with the current time otherwise.
func SetDebitCardActive(userID, id uint, active bool) (*models.DebitCard, error) {
	var card *models.DebitCard

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		c, err := findOwnedDebitCard(tx, userID, id, true)
		if err != nil {
			return err
		}

		var disabledAt *time.Time
		if !active {
			now := time.Now()
			disabledAt = &now
		}

		if err := tx.Model(c).Update("disabled_at", disabledAt).Error; err != nil {
			return fmt.Errorf("update debit card %d: %w", id, err)
		}
		c.DisabledAt = disabledAt
		card = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	eventType := events.DebitCardActivated
	if !active {
		eventType = events.DebitCardDeactivated
	}
	logger.Log.Info("debit card status changed", zap.Uint("debit_card_id", card.ID), zap.Bool("is_active", active))
	events.Emit(context.Background(), events.NewEvent(eventType, userID, card.ID, nil))

	return card, nil
}

// DeleteDebitCard soft-deletes a card with no transactions. The transaction
// count and the delete share one DB transaction with the card row locked, so
// CreateDebitCardTransaction cannot slip a row in between.
func DeleteDebitCard(userID, id uint) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		card, err := findOwnedDebitCard(tx, userID, id, true)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.DebitCardTransaction{}).Where("debit_card_id = ?", card.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("count debit card transactions: %w", err)
		}
		if count > 0 {
			logger.Log.Warn("refused to delete debit card with transactions",
				zap.Uint("debit_card_id", card.ID), zap.Int64("transactions", count))
			return ErrDebitCardHasTransactions
		}

		if err := tx.Delete(card).Error; err != nil {
			return fmt.Errorf("delete debit card %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Log.Info("debit card deleted", zap.Uint("user_id", userID), zap.Uint("debit_card_id", id))
	events.Emit(context.Background(), events.NewEvent(events.DebitCardDeleted, userID, id, nil))
	return nil
}
