package models

import "time"

// Registration links a student to a course for a given term. At most one
// active registration may exist per (student, course, semester), enforced
// by a unique constraint in the store.
type Registration struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	CourseID     int64     `json:"courseId" db:"course_id"`
	Semester     string    `json:"semester" db:"semester"`
	RegisteredAt time.Time `json:"registeredAt" db:"registered_at"`
}
