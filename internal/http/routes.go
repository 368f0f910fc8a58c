package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "taskdeck.com/taskdeck/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.GET("/reviews", h.ListReviews)

	authed := e.Group("", middleware.SessionToken())

	authed.POST("/auth/logout", h.Logout)
	authed.GET("/profile", h.GetProfile)
	authed.PUT("/profile", h.UpdateProfile)

	authed.GET("/tasks", h.ListTasks)
	authed.POST("/tasks", h.CreateTask)
	authed.DELETE("/tasks", h.DeleteAllTasks)
	authed.GET("/tasks/stats", h.GetTaskStats)
	authed.GET("/tasks/recent", h.GetRecentTasks)
	authed.GET("/tasks/:id", h.GetTask)
	authed.PUT("/tasks/:id", h.UpdateTask)
	authed.DELETE("/tasks/:id", h.DeleteTask)

	authed.GET("/categories", h.ListCategories)
	authed.POST("/categories", h.CreateCategory)
	authed.GET("/categories/:id", h.GetCategory)
	authed.PUT("/categories/:id", h.UpdateCategory)
	authed.DELETE("/categories/:id", h.DeleteCategory)
}
