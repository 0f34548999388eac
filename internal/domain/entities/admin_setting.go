package entities

import (
	"time"

	"github.com/google/uuid"
)

// AdminSetting is a key-value platform setting editable by admins
type AdminSetting struct {
	ID        uuid.UUID  `json:"id"`
	Key       string     `json:"key"`
	Value     string     `json:"value"`
	UpdatedBy *uuid.UUID `json:"updatedBy,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// AdminSettingInput represents input for updating a setting
type AdminSettingInput struct {
	Value string `json:"value" binding:"required"`
}
