package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emres/studentportal/internal/app/services"
	"github.com/emres/studentportal/internal/middleware"
	"github.com/emres/studentportal/internal/pkg/flash"
)

// CourseController handles the course catalog and enroll/drop actions.
type CourseController struct {
	catalogService    *services.CatalogService
	enrollmentService *services.EnrollmentService
	logger            zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(catalogService *services.CatalogService, enrollmentService *services.EnrollmentService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		catalogService:    catalogService,
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// Courses renders the catalog with the student's own registrations
// marked, so the page can flip each row between Enroll and Drop.
func (c *CourseController) Courses(ctx *gin.Context) {
	identity := middleware.CurrentIdentity(ctx)

	courses, err := c.catalogService.ListCourses(ctx.Request.Context())
	if err != nil {
		flash.Set(ctx.Writer, flash.Error, userMessage(err))
		ctx.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	registered, err := c.catalogService.ListStudentCourses(ctx.Request.Context(), identity.AccountID)
	if err != nil {
		flash.Set(ctx.Writer, flash.Error, userMessage(err))
		ctx.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	registeredIDs := make(map[int64]bool, len(registered))
	for _, course := range registered {
		registeredIDs[course.ID] = true
	}

	render(ctx, http.StatusOK, "courses.html", gin.H{
		"Courses":       courses,
		"RegisteredIDs": registeredIDs,
	})
}

// Enroll registers the student for the course in the path parameter and
// redirects back to the catalog with the outcome as a flash notice.
func (c *CourseController) Enroll(ctx *gin.Context) {
	identity := middleware.CurrentIdentity(ctx)

	courseID, err := strconv.ParseInt(ctx.Param("course_id"), 10, 64)
	if err != nil {
		flash.Set(ctx.Writer, flash.Error, "Course not found!")
		ctx.Redirect(http.StatusSeeOther, "/courses")
		return
	}

	err = c.enrollmentService.Enroll(ctx.Request.Context(), identity.AccountID, courseID, services.DefaultSemester)
	if err != nil {
		flash.Set(ctx.Writer, flash.Error, userMessage(err))
		ctx.Redirect(http.StatusSeeOther, "/courses")
		return
	}

	flash.Set(ctx.Writer, flash.Success, "Successfully registered for the course!")
	ctx.Redirect(http.StatusSeeOther, "/courses")
}

// Drop removes the student's registration for the course. Dropping a
// course the student never registered for still reports success.
func (c *CourseController) Drop(ctx *gin.Context) {
	identity := middleware.CurrentIdentity(ctx)

	courseID, err := strconv.ParseInt(ctx.Param("course_id"), 10, 64)
	if err != nil {
		flash.Set(ctx.Writer, flash.Error, "Course not found!")
		ctx.Redirect(http.StatusSeeOther, "/courses")
		return
	}

	if _, err := c.enrollmentService.Drop(ctx.Request.Context(), identity.AccountID, courseID); err != nil {
		flash.Set(ctx.Writer, flash.Error, userMessage(err))
		ctx.Redirect(http.StatusSeeOther, "/courses")
		return
	}

	flash.Set(ctx.Writer, flash.Info, "Course dropped successfully.")
	ctx.Redirect(http.StatusSeeOther, "/courses")
}
