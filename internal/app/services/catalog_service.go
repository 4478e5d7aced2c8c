package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emres/studentportal/internal/app/models"
	"github.com/emres/studentportal/internal/pkg/apperrors"
)

// CatalogService serves the read-only projections: courses, the student's
// own registrations, grades and announcements.
type CatalogService struct {
	courses       CourseStore
	grades        GradeStore
	announcements AnnouncementStore
	logger        zerolog.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(courses CourseStore, grades GradeStore, announcements AnnouncementStore, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		courses:       courses,
		grades:        grades,
		announcements: announcements,
		logger:        logger,
	}
}

// ListCourses returns the full catalog.
func (s *CatalogService) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list courses")
		return nil, apperrors.ErrStoreUnavailable
	}
	return courses, nil
}

// ListStudentCourses returns the courses the student is registered for.
func (s *CatalogService) ListStudentCourses(ctx context.Context, studentID int64) ([]models.Course, error) {
	courses, err := s.courses.GetByStudentID(ctx, studentID)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Failed to list student courses")
		return nil, apperrors.ErrStoreUnavailable
	}
	return courses, nil
}

// ListGrades returns the student's grades, newest academic year first.
func (s *CatalogService) ListGrades(ctx context.Context, studentID int64) ([]models.GradeReport, error) {
	grades, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Failed to list grades")
		return nil, apperrors.ErrStoreUnavailable
	}
	return grades, nil
}

// ListAnnouncements returns all announcements, newest first.
func (s *CatalogService) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	announcements, err := s.announcements.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list announcements")
		return nil, apperrors.ErrStoreUnavailable
	}
	return announcements, nil
}
