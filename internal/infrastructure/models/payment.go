package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type          string     `gorm:"type:varchar(50);not null"`
	AmountCents   int64      `gorm:"not null"`
	MpesaCode     *string    `gorm:"type:varchar(50)"`
	BankTxCode    *string    `gorm:"type:varchar(50)"`
	ScreenshotURL *string    `gorm:"type:varchar(255)"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	VerifiedBy    *uuid.UUID `gorm:"type:uuid"`
	VerifiedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
