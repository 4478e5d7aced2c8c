// Package controllers handles HTTP request handling for the portal pages.
package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/emres/studentportal/internal/middleware"
	"github.com/emres/studentportal/internal/pkg/apperrors"
	"github.com/emres/studentportal/internal/pkg/flash"
)

// render writes an HTML page with the shared template data: the pending
// flash notice and, on protected routes, the session identity. A handler
// re-rendering a form in the same response can pre-set "Notice" in data.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Notice"]; !ok {
		data["Notice"] = flash.Pop(c.Writer, c.Request)
	}
	if identity := middleware.CurrentIdentity(c); identity != nil {
		data["StudentName"] = identity.DisplayName
	}
	c.HTML(status, name, data)
}

// notice builds an inline flash for same-response form re-renders.
func notice(category, message string) *flash.Notice {
	return &flash.Notice{Category: category, Message: message}
}

// userMessage translates an operation error into the transient notice
// shown to the student. Raw store errors never surface here.
func userMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrPasswordMismatch):
		return "Passwords do not match!"
	case errors.Is(err, apperrors.ErrPasswordTooShort):
		return "Password must be at least 6 characters long!"
	case apperrors.Is(err, apperrors.ErrStudentNoExists, apperrors.ErrEmailExists, apperrors.ErrConstraintViolation):
		return "Error: Student ID or Email already exists!"
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return "Invalid email or password!"
	case errors.Is(err, apperrors.ErrAlreadyRegistered):
		return "You are already registered for this course!"
	case errors.Is(err, apperrors.ErrCourseNotFound):
		return "Course not found!"
	case apperrors.Is(err, apperrors.ErrCourseFull, apperrors.ErrRegistrationFailed):
		return "Registration failed! Course might be full."
	case errors.Is(err, apperrors.ErrValidationFailed):
		return "Please check the form and try again!"
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		return "Database connection error!"
	default:
		return "Something went wrong! Please try again."
	}
}
