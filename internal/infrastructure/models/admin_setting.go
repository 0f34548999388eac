package models

import (
	"time"

	"github.com/google/uuid"
)

type AdminSetting struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SettingKey   string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	SettingValue string     `gorm:"type:text"`
	UpdatedBy    *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt    time.Time
}
