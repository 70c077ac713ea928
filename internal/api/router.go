package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/polyhub/timetable-back/docs"
	"github.com/polyhub/timetable-back/internal/auth"
	"github.com/polyhub/timetable-back/internal/config"
)

// @title           Timetable Dashboard API
// @version         1.0
// @description     Class timetable and notification API for the dashboard.
// @host            localhost:8000
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func SetupRouter(cfg *config.Config, h *Handler) *gin.Engine {
	r := gin.Default()

	// Public routes
	r.GET("/health", h.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/departments", h.GetDepartments)

	r.POST("/auth/login", auth.LoginHandler(cfg))
	r.POST("/auth/refresh", auth.RefreshHandler(cfg))

	// Protected
	authGroup := r.Group("/")
	authGroup.Use(auth.AuthMiddleware(cfg))
	{
		authGroup.GET("/user/me", h.GetMe)

		authGroup.GET("/timetable/class", h.GetClassSchedule)
		authGroup.GET("/timetable/lecturer", h.GetLecturerSchedule)
		authGroup.GET("/lecturer/courses", h.GetLecturerCourses)

		authGroup.GET("/notifications", h.ListNotifications)
		authGroup.POST("/notifications", h.AddNotification)
		authGroup.PATCH("/notifications/:id/read", h.MarkNotificationRead)
		authGroup.POST("/notifications/read-all", h.MarkAllNotificationsRead)
		authGroup.DELETE("/notifications", h.ClearNotifications)

		lecturerGroup := authGroup.Group("/")
		lecturerGroup.Use(auth.LecturerOnly())
		{
			lecturerGroup.POST("/timetable/slots", h.CreateTimeSlot)
			lecturerGroup.PATCH("/timetable/slots/:id", h.UpdateTimeSlot)
			lecturerGroup.DELETE("/timetable/slots/:id", h.DeleteTimeSlot)
			lecturerGroup.POST("/timetable/slots/:id/confirm", h.ConfirmLecture)
			lecturerGroup.POST("/timetable/slots/:id/unconfirm", h.UnconfirmLecture)
			lecturerGroup.POST("/lecturer/courses", h.AssignCourse)
			lecturerGroup.DELETE("/lecturer/courses/:courseId", h.UnassignCourse)
			lecturerGroup.POST("/timetable/import", h.ImportTimetable)
		}
	}

	return r
}
