package apperrors

import "errors"

// Store errors
var (
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrConstraintViolation = errors.New("constraint violation")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

// Account errors
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailExists     = errors.New("email already exists")
	ErrStudentNoExists = errors.New("student number already exists")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password too short")
)

// Enrollment errors
var (
	ErrAlreadyRegistered  = errors.New("already registered for this course")
	ErrCourseFull         = errors.New("course is full")
	ErrCourseNotFound     = errors.New("course not found")
	ErrRegistrationFailed = errors.New("registration failed")
)

// Is reports whether err matches target or any of the additional errors.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
