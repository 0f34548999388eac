package models

import (
	"time"

	"github.com/google/uuid"
)

type Referral struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReferrerID uuid.UUID `gorm:"type:uuid;not null;index"`
	ReferredID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	RewardPaid bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
}
