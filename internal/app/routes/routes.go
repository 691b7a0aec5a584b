package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/emredk/scholaris/internal/app/controllers"
	"github.com/emredk/scholaris/internal/middleware"
)

// SetupRouter configures all application routes. Access rules that depend on
// the target entity (self-or-admin, the admin-deletion guard) are decided in
// the services; the router only distinguishes public, authenticated and
// admin-only groups.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	professorController *controllers.ProfessorController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	installController *controllers.InstallController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	v1 := router.Group("/api/v1")

	users := v1.Group("/users")
	{
		users.POST("", authController.Register)
		users.POST("/login", authController.Login)

		usersAuth := users.Group("")
		usersAuth.Use(authMiddleware.RequireAuth())
		{
			usersAuth.POST("/admin", authMiddleware.RequireAdmin(), authController.CreateAdmin)
			usersAuth.PUT("/:id", userController.Update)
			usersAuth.DELETE("/:id", userController.Delete)
			usersAuth.GET("", authMiddleware.RequireAdmin(), userController.List)
		}
	}

	professors := v1.Group("/professors")
	{
		professors.GET("", professorController.List)

		professorsAuth := professors.Group("")
		professorsAuth.Use(authMiddleware.RequireAuth())
		{
			professorsAuth.POST("", authMiddleware.RequireAdmin(), professorController.Create)
			professorsAuth.GET("/:id", professorController.Get)
			professorsAuth.PUT("/:id", professorController.Update)
			professorsAuth.DELETE("/:id", authMiddleware.RequireAdmin(), professorController.Delete)
		}
	}

	students := v1.Group("/students")
	{
		students.GET("", studentController.List)

		studentsAuth := students.Group("")
		studentsAuth.Use(authMiddleware.RequireAuth())
		{
			studentsAuth.POST("", authMiddleware.RequireAdmin(), studentController.Create)
			studentsAuth.GET("/:enrollmentNumber", studentController.Get)
			studentsAuth.PUT("/:enrollmentNumber", studentController.Update)
			studentsAuth.DELETE("/:enrollmentNumber", authMiddleware.RequireAdmin(), studentController.Delete)
		}
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.List)
		courses.GET("/summary", courseController.Summary)
		courses.GET("/:id", courseController.Get)

		coursesAdmin := courses.Group("")
		coursesAdmin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			coursesAdmin.POST("", courseController.Create)
			coursesAdmin.PUT("/:id", courseController.Update)
			coursesAdmin.DELETE("/:id", courseController.Delete)
		}
	}

	v1.POST("/install", authMiddleware.RequireAuth(), authMiddleware.RequireAdmin(), installController.Install)
}
