package models

// Course represents a course offered in the catalog.
type Course struct {
	ID         int64  `json:"id" db:"id"`
	CourseCode string `json:"courseCode" db:"course_code"`
	CourseName string `json:"courseName" db:"course_name"`
	Credits    int    `json:"credits" db:"credits"`
	// CurrentEnrollment mirrors the count of active registrations for the
	// course; it is only ever written inside the enrollment transaction.
	CurrentEnrollment int `json:"currentEnrollment" db:"current_enrollment"`
	MaxCapacity       int `json:"maxCapacity" db:"max_capacity"`
}

// Full reports whether the course has reached capacity.
func (c Course) Full() bool {
	return c.CurrentEnrollment >= c.MaxCapacity
}
