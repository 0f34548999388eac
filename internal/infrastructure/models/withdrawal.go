package models

import (
	"time"

	"github.com/google/uuid"
)

type Withdrawal struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	AmountCents int64      `gorm:"not null"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	ProcessedBy *uuid.UUID `gorm:"type:uuid"`
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
