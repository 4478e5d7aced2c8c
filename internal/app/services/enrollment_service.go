package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emres/studentportal/internal/app/models"
	"github.com/emres/studentportal/internal/pkg/apperrors"
)

// DefaultSemester is the term new registrations are filed under.
const DefaultSemester = "Fall 2024"

// EnrollmentService enforces the course registration invariants on top of
// the store's atomic enroll/drop units.
type EnrollmentService struct {
	enrollments EnrollmentStore
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(enrollments EnrollmentStore, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		logger:      logger,
	}
}

// Enroll registers the student for the course. The duplicate pre-check is
// a fast path only; the store's unique constraint decides races. All store
// failures other than the named outcomes collapse into the generic
// ErrRegistrationFailed so internals never leak to the page.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID int64, semester string) error {
	exists, err := s.enrollments.Exists(ctx, studentID, courseID, semester)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).
			Msg("Failed advisory duplicate check")
		return apperrors.ErrRegistrationFailed
	}
	if exists {
		return apperrors.ErrAlreadyRegistered
	}

	if err := s.enrollments.Enroll(ctx, studentID, courseID, semester); err != nil {
		if apperrors.Is(err, apperrors.ErrAlreadyRegistered, apperrors.ErrCourseFull, apperrors.ErrCourseNotFound) {
			return err
		}
		s.logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).
			Msg("Enrollment transaction failed")
		return apperrors.ErrRegistrationFailed
	}
	return nil
}

// Registrations returns the student's current registrations, newest
// first.
func (s *EnrollmentService) Registrations(ctx context.Context, studentID int64) ([]models.Registration, error) {
	registrations, err := s.enrollments.ListRegistrations(ctx, studentID)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Failed to list registrations")
		return nil, apperrors.ErrStoreUnavailable
	}
	return registrations, nil
}

// Drop removes the student's registration for the course. Dropping a
// course the student is not registered for is not an error; it reports
// dropped=false and leaves all state untouched.
func (s *EnrollmentService) Drop(ctx context.Context, studentID, courseID int64) (bool, error) {
	dropped, err := s.enrollments.Drop(ctx, studentID, courseID)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).
			Msg("Drop transaction failed")
		return false, apperrors.ErrRegistrationFailed
	}
	return dropped, nil
}
