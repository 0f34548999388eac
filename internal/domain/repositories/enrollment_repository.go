package repositories

import (
	"context"

	"github.com/google/uuid"

	"trade-palace.backend/internal/domain/entities"
)

// EnrollmentRepository defines student-mentor enrollment operations
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *entities.Enrollment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Enrollment, error)
	GetByPair(ctx context.Context, studentID, mentorID uuid.UUID) (*entities.Enrollment, error)
	ListByStudentID(ctx context.Context, studentID uuid.UUID) ([]*entities.Enrollment, error)
	ListByMentorID(ctx context.Context, mentorID uuid.UUID) ([]*entities.Enrollment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.EnrollmentStatus) error
}

// AdminSettingRepository defines platform setting operations
type AdminSettingRepository interface {
	Get(ctx context.Context, key string) (*entities.AdminSetting, error)
	Upsert(ctx context.Context, setting *entities.AdminSetting) error
	List(ctx context.Context) ([]*entities.AdminSetting, error)
}
