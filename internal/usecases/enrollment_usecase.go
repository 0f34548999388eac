package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"trade-palace.backend/internal/domain/entities"
	domainerrors "trade-palace.backend/internal/domain/errors"
	"trade-palace.backend/internal/domain/repositories"
)

// EnrollmentUsecase handles student-mentor enrollments
type EnrollmentUsecase struct {
	enrollmentRepo repositories.EnrollmentRepository
	accountRepo    repositories.AccountRepository
}

// NewEnrollmentUsecase creates a new enrollment usecase
func NewEnrollmentUsecase(
	enrollmentRepo repositories.EnrollmentRepository,
	accountRepo repositories.AccountRepository,
) *EnrollmentUsecase {
	return &EnrollmentUsecase{
		enrollmentRepo: enrollmentRepo,
		accountRepo:    accountRepo,
	}
}

// Enroll requests enrollment with a mentor. One enrollment per student-mentor
// pair; it starts pending until the mentor activates it.
func (u *EnrollmentUsecase) Enroll(ctx context.Context, studentID uuid.UUID, input *entities.EnrollInput) (*entities.Enrollment, error) {
	mentorID, err := uuid.Parse(input.MentorID)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput
	}
	if mentorID == studentID {
		return nil, domainerrors.ErrInvalidInput
	}

	mentor, err := u.accountRepo.GetByID(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if mentor.Role != entities.RoleMentor {
		return nil, domainerrors.ErrInvalidInput
	}

	if _, err := u.enrollmentRepo.GetByPair(ctx, studentID, mentorID); err == nil {
		return nil, domainerrors.ErrAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	enrollment := &entities.Enrollment{
		StudentID: studentID,
		MentorID:  mentorID,
		Status:    entities.EnrollmentStatusPending,
	}
	if err := u.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// ListForAccount lists enrollments from the caller's side of the pairing:
// mentors see their mentees, everyone else sees their own enrollments.
func (u *EnrollmentUsecase) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*entities.Enrollment, error) {
	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Role == entities.RoleMentor {
		return u.enrollmentRepo.ListByMentorID(ctx, accountID)
	}
	return u.enrollmentRepo.ListByStudentID(ctx, accountID)
}

// SetStatus changes an enrollment's status. Mentors may only manage their own
// enrollments; admins may manage any.
func (u *EnrollmentUsecase) SetStatus(ctx context.Context, actorID uuid.UUID, enrollmentID uuid.UUID, status entities.EnrollmentStatus) (*entities.Enrollment, error) {
	if !status.Valid() {
		return nil, domainerrors.ErrInvalidInput
	}

	actor, err := u.accountRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanManageEnrollments() {
		return nil, domainerrors.ErrForbidden
	}

	enrollment, err := u.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if actor.Role == entities.RoleMentor && enrollment.MentorID != actorID {
		return nil, domainerrors.ErrForbidden
	}

	if err := u.enrollmentRepo.UpdateStatus(ctx, enrollmentID, status); err != nil {
		return nil, err
	}
	enrollment.Status = status
	return enrollment, nil
}
