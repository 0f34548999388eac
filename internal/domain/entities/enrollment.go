package entities

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentStatus represents a student-mentor pairing status
type EnrollmentStatus string

const (
	EnrollmentStatusPending  EnrollmentStatus = "pending"
	EnrollmentStatusActive   EnrollmentStatus = "active"
	EnrollmentStatusInactive EnrollmentStatus = "inactive"
)

// Valid reports whether the enrollment status is known
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentStatusPending, EnrollmentStatusActive, EnrollmentStatusInactive:
		return true
	}
	return false
}

// Enrollment pairs a student with a mentor
type Enrollment struct {
	ID         uuid.UUID        `json:"id"`
	StudentID  uuid.UUID        `json:"studentId"`
	MentorID   uuid.UUID        `json:"mentorId"`
	Status     EnrollmentStatus `json:"status"`
	EnrolledAt time.Time        `json:"enrolledAt"`
}

// EnrollInput represents input for enrolling with a mentor
type EnrollInput struct {
	MentorID string `json:"mentorId" binding:"required"`
}

// EnrollmentStatusInput represents a status change request
type EnrollmentStatusInput struct {
	Status EnrollmentStatus `json:"status" binding:"required"`
}
