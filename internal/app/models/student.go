package models

import (
	"time"
)

// Student defines the account model based on the 'students' table
type Student struct {
	ID             int64     `json:"id" db:"id"`
	StudentNo      string    `json:"studentNo" db:"student_no"` // External student identifier, unique
	FirstName      string    `json:"firstName" db:"first_name"`
	LastName       string    `json:"lastName" db:"last_name"`
	Email          string    `json:"email" db:"email"` // Unique
	Password       string    `json:"-" db:"password"`  // bcrypt hash, excluded from JSON
	Major          string    `json:"major" db:"major"`
	EnrollmentYear int       `json:"enrollmentYear" db:"enrollment_year"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// DisplayName is the name cached in the session at login.
func (s *Student) DisplayName() string {
	return s.FirstName + " " + s.LastName
}
