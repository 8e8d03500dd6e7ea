package models

import (
	"time"

	"gorm.io/gorm"
)

type DebitCard struct {
	ID             uint           `gorm:"primarykey"`
	CreatedAt      time.Time      `gorm:"precision:3"`
	UpdatedAt      time.Time      `gorm:"precision:3"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
	UserID         uint           `gorm:"index;not null"`
	User           User           `json:"-"`
	Number         string         `gorm:"type:varchar(19);uniqueIndex;not null"` // PAN digits, never numeric
	Type           string         `gorm:"type:varchar(50);not null"`
	ExpirationDate time.Time      `gorm:"not null"`
	DisabledAt     *time.Time

	Transactions []DebitCardTransaction `json:"-"`
}

func (DebitCard) TableName() string {
	return "debit_cards"
}

// IsActive is derived from DisabledAt only.
func (c *DebitCard) IsActive() bool {
	return c.DisabledAt == nil
}

func (c *DebitCard) OwnerID() uint {
	return c.UserID
}
