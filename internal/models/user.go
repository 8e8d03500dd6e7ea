package models

import "time"

type User struct {
	ID         uint `gorm:"primarykey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Name       string      `gorm:"type:varchar(255);not null"`
	Email      string      `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password   string      `gorm:"not null" json:"-"`
	DebitCards []DebitCard `json:"-"`
}
