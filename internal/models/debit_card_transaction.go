package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CurrencyCode string

const (
	CurrencyIDR CurrencyCode = "IDR"
	CurrencySGD CurrencyCode = "SGD"
	CurrencyTHB CurrencyCode = "THB"
	CurrencyVND CurrencyCode = "VND"
)

// Currencies lists every accepted currency code.
var Currencies = []CurrencyCode{CurrencyIDR, CurrencySGD, CurrencyTHB, CurrencyVND}

func (c CurrencyCode) Valid() bool {
	for _, known := range Currencies {
		if c == known {
			return true
		}
	}
	return false
}

// DebitCardTransaction is append-only; nothing updates or deletes it.
type DebitCardTransaction struct {
	ID           uint            `gorm:"primarykey"`
	CreatedAt    time.Time       `gorm:"precision:3"`
	UpdatedAt    time.Time       `gorm:"precision:3"`
	DebitCardID  uint            `gorm:"index;not null"`
	DebitCard    DebitCard       `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Amount       decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	CurrencyCode CurrencyCode    `gorm:"type:varchar(3);not null"`
}

func (DebitCardTransaction) TableName() string {
	return "debit_card_transactions"
}

// OwnerID resolves through the parent card, which must be loaded.
func (t *DebitCardTransaction) OwnerID() uint {
	return t.DebitCard.UserID
}
