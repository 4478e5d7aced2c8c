// Package services contains the portal's application logic.
package services

import (
	"context"

	"github.com/emres/studentportal/internal/app/models"
)

// AccountStore is the persistence surface the auth service depends on.
type AccountStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName, major string) error
	EmailExists(ctx context.Context, email string) (bool, error)
	StudentNoExists(ctx context.Context, studentNo string) (bool, error)
}

// EnrollmentStore is the persistence surface of the enrollment engine.
// Enroll and Drop are atomic units: registration row and course counter
// move together or not at all.
type EnrollmentStore interface {
	Exists(ctx context.Context, studentID, courseID int64, semester string) (bool, error)
	Enroll(ctx context.Context, studentID, courseID int64, semester string) error
	Drop(ctx context.Context, studentID, courseID int64) (bool, error)
	ListRegistrations(ctx context.Context, studentID int64) ([]models.Registration, error)
}

// CourseStore provides read access to the course catalog.
type CourseStore interface {
	GetAll(ctx context.Context) ([]models.Course, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]models.Course, error)
}

// GradeStore provides read access to grade records.
type GradeStore interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.GradeReport, error)
}

// AnnouncementStore provides read access to announcements.
type AnnouncementStore interface {
	GetAll(ctx context.Context) ([]models.Announcement, error)
}
