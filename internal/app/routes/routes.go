package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emres/studentportal/internal/app/controllers"
	"github.com/emres/studentportal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	courseController *controllers.CourseController,
	catalogController *controllers.CatalogController,
	sessionMiddleware *middleware.SessionMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public routes ---
	router.GET("/", authController.Home)
	router.GET("/register", authController.ShowRegister)
	router.POST("/register", authController.Register)
	router.GET("/login", authController.ShowLogin)
	router.POST("/login", authController.Login)

	// --- Session-protected routes ---
	protected := router.Group("")
	protected.Use(sessionMiddleware.RequireSession())
	{
		protected.GET("/dashboard", authController.Dashboard)
		protected.GET("/logout", authController.Logout)

		protected.GET("/profile", profileController.Show)
		protected.POST("/profile/update", profileController.Update)

		protected.GET("/courses", courseController.Courses)
		protected.GET("/register_course/:course_id", courseController.Enroll)
		protected.GET("/drop_course/:course_id", courseController.Drop)

		protected.GET("/grades", catalogController.Grades)
		protected.GET("/announcements", catalogController.Announcements)
	}
}
