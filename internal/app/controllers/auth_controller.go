package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emres/studentportal/internal/app/services"
	"github.com/emres/studentportal/internal/middleware"
	"github.com/emres/studentportal/internal/pkg/flash"
	"github.com/emres/studentportal/internal/pkg/session"
)

// registerForm carries the registration page fields.
type registerForm struct {
	StudentNo       string `form:"student_id" binding:"required,student_no"`
	FirstName       string `form:"first_name" binding:"required"`
	LastName        string `form:"last_name" binding:"required"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required"`
	Major           string `form:"major"`
	EnrollmentYear  int    `form:"enrollment_year"`
}

// loginForm carries the login page fields.
type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// AuthController handles the public pages, registration, login and
// logout, plus the dashboard.
type AuthController struct {
	authService       *services.AuthService
	enrollmentService *services.EnrollmentService
	sessions          *session.Manager
	logger            zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, enrollmentService *services.EnrollmentService, sessions *session.Manager, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService:       authService,
		enrollmentService: enrollmentService,
		sessions:          sessions,
		logger:            logger,
	}
}

// Home renders the landing page. A student with a live session is sent
// straight to the dashboard.
func (c *AuthController) Home(ctx *gin.Context) {
	if _, err := c.sessions.Read(ctx.Request); err == nil {
		ctx.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	render(ctx, http.StatusOK, "index.html", nil)
}

// ShowRegister renders the registration form.
func (c *AuthController) ShowRegister(ctx *gin.Context) {
	render(ctx, http.StatusOK, "register.html", gin.H{"Form": registerForm{}})
}

// Register handles the registration form submission.
func (c *AuthController) Register(ctx *gin.Context) {
	var form registerForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration form")
		render(ctx, http.StatusBadRequest, "register.html", gin.H{
			"Notice": notice(flash.Error, "Please check the form and try again!"),
			"Form":   form,
		})
		return
	}

	_, err := c.authService.Register(ctx.Request.Context(), &services.RegisterInput{
		StudentNo:       form.StudentNo,
		FirstName:       form.FirstName,
		LastName:        form.LastName,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
		Major:           form.Major,
		EnrollmentYear:  form.EnrollmentYear,
	})
	if err != nil {
		render(ctx, http.StatusOK, "register.html", gin.H{
			"Notice": notice(flash.Error, userMessage(err)),
			"Form":   form,
		})
		return
	}

	flash.Set(ctx.Writer, flash.Success, "Registration successful! Please login.")
	ctx.Redirect(http.StatusSeeOther, "/login")
}

// ShowLogin renders the login form.
func (c *AuthController) ShowLogin(ctx *gin.Context) {
	render(ctx, http.StatusOK, "login.html", nil)
}

// Login handles the login form submission. On success the session cookie
// is issued with the student's display name cached in it.
func (c *AuthController) Login(ctx *gin.Context) {
	var form loginForm
	if err := ctx.ShouldBind(&form); err != nil {
		render(ctx, http.StatusOK, "login.html", gin.H{
			"Notice": notice(flash.Error, "Invalid email or password!"),
		})
		return
	}

	student, err := c.authService.Login(ctx.Request.Context(), form.Email, form.Password)
	if err != nil {
		render(ctx, http.StatusOK, "login.html", gin.H{
			"Notice": notice(flash.Error, userMessage(err)),
		})
		return
	}

	if err := c.sessions.Issue(ctx.Writer, session.Identity{
		AccountID:   student.ID,
		DisplayName: student.DisplayName(),
	}); err != nil {
		c.logger.Error().Err(err).Int64("id", student.ID).Msg("Failed to issue session")
		render(ctx, http.StatusInternalServerError, "login.html", gin.H{
			"Notice": notice(flash.Error, "Something went wrong! Please try again."),
		})
		return
	}

	flash.Set(ctx.Writer, flash.Success, fmt.Sprintf("Welcome back, %s!", student.FirstName))
	ctx.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout destroys the session and returns to the landing page.
func (c *AuthController) Logout(ctx *gin.Context) {
	c.sessions.Clear(ctx.Writer)
	flash.Set(ctx.Writer, flash.Info, "You have been logged out.")
	ctx.Redirect(http.StatusSeeOther, "/")
}

// Dashboard renders the student's home page with a summary of their
// current registrations.
func (c *AuthController) Dashboard(ctx *gin.Context) {
	identity := middleware.CurrentIdentity(ctx)

	registrations, err := c.enrollmentService.Registrations(ctx.Request.Context(), identity.AccountID)
	if err != nil {
		// The dashboard still renders; the summary is best-effort.
		registrations = nil
	}

	render(ctx, http.StatusOK, "dashboard.html", gin.H{
		"RegistrationCount": len(registrations),
		"Semester":          services.DefaultSemester,
	})
}
