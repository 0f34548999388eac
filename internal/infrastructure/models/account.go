package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'student'"`
	Phone        *string   `gorm:"type:varchar(20)"`
	BalanceCents int64     `gorm:"not null;default:0"`
	IsVerified   bool      `gorm:"not null;default:false"`
	ReferralCode string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	ReferredBy   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
