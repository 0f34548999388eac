package models

import (
	"time"

	"github.com/google/uuid"
)

type Enrollment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	StudentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	MentorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending'"`
	EnrolledAt time.Time
}
