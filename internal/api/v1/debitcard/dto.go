package debitcard

import (
	"debitcard-backend/internal/models"
	"time"
)

type CreateDebitCardRequest struct {
	Type string `json:"type" binding:"required,max=50"`
}

// UpdateDebitCardRequest uses a pointer so a missing is_active is told apart from false.
type UpdateDebitCardRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type DebitCardResponse struct {
	ID             uint      `json:"id"`
	Number         string    `json:"number"`
	Type           string    `json:"type"`
	ExpirationDate time.Time `json:"expiration_date"`
	IsActive       bool      `json:"is_active"`
}

func NewDebitCardResponse(card *models.DebitCard) DebitCardResponse {
	return DebitCardResponse{
		ID:             card.ID,
		Number:         card.Number,
		Type:           card.Type,
		ExpirationDate: card.ExpirationDate,
		IsActive:       card.IsActive(),
	}
}
