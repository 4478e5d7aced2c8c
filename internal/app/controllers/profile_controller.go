package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emres/studentportal/internal/app/services"
	"github.com/emres/studentportal/internal/middleware"
	"github.com/emres/studentportal/internal/pkg/apperrors"
	"github.com/emres/studentportal/internal/pkg/flash"
	"github.com/emres/studentportal/internal/pkg/session"
)

// profileForm carries the editable profile fields.
type profileForm struct {
	FirstName string `form:"first_name" binding:"required"`
	LastName  string `form:"last_name" binding:"required"`
	Major     string `form:"major"`
}

// ProfileController handles viewing and updating the student's own
// account record.
type ProfileController struct {
	authService *services.AuthService
	sessions    *session.Manager
	logger      zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(authService *services.AuthService, sessions *session.Manager, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// Show renders the profile page.
func (c *ProfileController) Show(ctx *gin.Context) {
	identity := middleware.CurrentIdentity(ctx)

	student, err := c.authService.GetProfile(ctx.Request.Context(), identity.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			// Session refers to an account that no longer exists.
			c.sessions.Clear(ctx.Writer)
			ctx.Redirect(http.StatusSeeOther, "/login")
			return
		}
		flash.Set(ctx.Writer, flash.Error, userMessage(err))
		ctx.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	render(ctx, http.StatusOK, "profile.html", gin.H{
		"Student": student,
	})
}

// Update handles the profile form submission. On success the session is
// re-issued so the cached display name matches the stored record; on any
// failure the session cookie is left untouched.
func (c *ProfileController) Update(ctx *gin.Context) {
	identity := middleware.CurrentIdentity(ctx)

	var form profileForm
	if err := ctx.ShouldBind(&form); err != nil {
		flash.Set(ctx.Writer, flash.Error, "Please check the form and try again!")
		ctx.Redirect(http.StatusSeeOther, "/profile")
		return
	}

	student, err := c.authService.UpdateProfile(ctx.Request.Context(), identity.AccountID, &services.UpdateProfileInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Major:     form.Major,
	})
	if err != nil {
		flash.Set(ctx.Writer, flash.Error, userMessage(err))
		ctx.Redirect(http.StatusSeeOther, "/profile")
		return
	}

	if err := c.sessions.Issue(ctx.Writer, session.Identity{
		AccountID:   student.ID,
		DisplayName: student.DisplayName(),
	}); err != nil {
		c.logger.Error().Err(err).Int64("id", student.ID).Msg("Failed to re-issue session after profile update")
	}

	flash.Set(ctx.Writer, flash.Success, "Profile updated successfully!")
	ctx.Redirect(http.StatusSeeOther, "/profile")
}
