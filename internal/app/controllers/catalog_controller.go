package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emres/studentportal/internal/app/services"
	"github.com/emres/studentportal/internal/middleware"
	"github.com/emres/studentportal/internal/pkg/flash"
)

// CatalogController handles the read-only grades and announcements pages.
type CatalogController struct {
	catalogService *services.CatalogService
	logger         zerolog.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService, logger zerolog.Logger) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		logger:         logger,
	}
}

// Grades renders the student's grade report, newest academic year first.
func (c *CatalogController) Grades(ctx *gin.Context) {
	identity := middleware.CurrentIdentity(ctx)

	grades, err := c.catalogService.ListGrades(ctx.Request.Context(), identity.AccountID)
	if err != nil {
		flash.Set(ctx.Writer, flash.Error, userMessage(err))
		ctx.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	render(ctx, http.StatusOK, "grades.html", gin.H{
		"Grades": grades,
	})
}

// Announcements renders all announcements, newest first.
func (c *CatalogController) Announcements(ctx *gin.Context) {
	announcements, err := c.catalogService.ListAnnouncements(ctx.Request.Context())
	if err != nil {
		flash.Set(ctx.Writer, flash.Error, userMessage(err))
		ctx.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	render(ctx, http.StatusOK, "announcements.html", gin.H{
		"Announcements": announcements,
	})
}
