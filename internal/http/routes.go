package http

import (
	"time"

	"github.com/labstack/echo/v4"

	"daytrack.com/daytrack/internal/auth"
	middleware "daytrack.com/daytrack/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, authService *auth.Service, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.POST("/auth/signup", h.SignUp)
	e.POST("/auth/login", h.Login)

	authed := e.Group("", middleware.RequireAuth(authService))
	authed.POST("/auth/logout", h.Logout)
	authed.GET("/me", h.Me)

	authed.GET("/board", h.GetBoard)
	authed.POST("/board/prev", h.BoardPrevDay)
	authed.POST("/board/next", h.BoardNextDay)
	authed.POST("/board/today", h.BoardToday)
	authed.POST("/board/tasks", h.CreateBoardTask)
	authed.POST("/board/tasks/:id/timer", h.ToggleTaskTimer)
	authed.POST("/board/tasks/:id/complete", h.ToggleTaskComplete)
	authed.DELETE("/board/tasks/:id", h.DeleteBoardTask)
	authed.POST("/board/college", h.ToggleCollegeDay)

	authed.GET("/settings/schedule-url", h.GetScheduleURL)

	hr := authed.Group("/hr", middleware.RequireHR(authService))
	hr.GET("/tasks", h.HRTasks)
	hr.GET("/marks", h.HRMarks)
	hr.PUT("/settings/schedule-url", h.SetScheduleURL)
}
