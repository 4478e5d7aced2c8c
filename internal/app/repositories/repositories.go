// Package repositories contains the data access layer for the portal.
package repositories

import (
	"github.com/emres/studentportal/internal/db"
)

// Repositories bundles all repositories for dependency injection.
type Repositories struct {
	StudentRepository      *StudentRepository
	CourseRepository       *CourseRepository
	RegistrationRepository *RegistrationRepository
	GradeRepository        *GradeRepository
	AnnouncementRepository *AnnouncementRepository
}

// NewRepositories creates all repositories over one connection pool.
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		StudentRepository:      NewStudentRepository(database.Pool),
		CourseRepository:       NewCourseRepository(database.Pool),
		RegistrationRepository: NewRegistrationRepository(database),
		GradeRepository:        NewGradeRepository(database.Pool),
		AnnouncementRepository: NewAnnouncementRepository(database.Pool),
	}
}
