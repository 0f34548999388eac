package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trade-palace.backend/internal/domain/entities"
	domainerrors "trade-palace.backend/internal/domain/errors"
	"trade-palace.backend/internal/infrastructure/models"
)

// EnrollmentRepository implements student-mentor enrollment operations
type EnrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create creates an enrollment
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *entities.Enrollment) error {
	db := GetDB(ctx, r.db)

	if enrollment.ID == uuid.Nil {
		enrollment.ID = uuid.New()
	}
	m := &models.Enrollment{
		ID:         enrollment.ID,
		StudentID:  enrollment.StudentID,
		MentorID:   enrollment.MentorID,
		Status:     string(enrollment.Status),
		EnrolledAt: time.Now(),
	}

	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	enrollment.EnrolledAt = m.EnrolledAt
	return nil
}

// GetByID gets an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Enrollment, error) {
	db := GetDB(ctx, r.db)
	var m models.Enrollment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return enrollmentToEntity(&m), nil
}

// GetByPair gets the enrollment for a student-mentor pair, if any
func (r *EnrollmentRepository) GetByPair(ctx context.Context, studentID, mentorID uuid.UUID) (*entities.Enrollment, error) {
	db := GetDB(ctx, r.db)
	var m models.Enrollment
	err := db.WithContext(ctx).Where("student_id = ? AND mentor_id = ?", studentID, mentorID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return enrollmentToEntity(&m), nil
}

// ListByStudentID lists a student's enrollments
func (r *EnrollmentRepository) ListByStudentID(ctx context.Context, studentID uuid.UUID) ([]*entities.Enrollment, error) {
	return r.listBy(ctx, "student_id = ?", studentID)
}

// ListByMentorID lists a mentor's enrollments
func (r *EnrollmentRepository) ListByMentorID(ctx context.Context, mentorID uuid.UUID) ([]*entities.Enrollment, error) {
	return r.listBy(ctx, "mentor_id = ?", mentorID)
}

func (r *EnrollmentRepository) listBy(ctx context.Context, cond string, arg interface{}) ([]*entities.Enrollment, error) {
	db := GetDB(ctx, r.db)
	var rows []models.Enrollment
	if err := db.WithContext(ctx).Where(cond, arg).Order("enrolled_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	enrollments := make([]*entities.Enrollment, 0, len(rows))
	for i := range rows {
		enrollments = append(enrollments, enrollmentToEntity(&rows[i]))
	}
	return enrollments, nil
}

// UpdateStatus updates an enrollment's status
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.EnrollmentStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("id = ?", id).
		UpdateColumn("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func enrollmentToEntity(m *models.Enrollment) *entities.Enrollment {
	return &entities.Enrollment{
		ID:         m.ID,
		StudentID:  m.StudentID,
		MentorID:   m.MentorID,
		Status:     entities.EnrollmentStatus(m.Status),
		EnrolledAt: m.EnrolledAt,
	}
}
