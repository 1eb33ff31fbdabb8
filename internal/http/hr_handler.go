package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"daytrack.com/daytrack/internal/board"
	apperrors "daytrack.com/daytrack/internal/errors"
	"daytrack.com/daytrack/internal/services"
)

func dateParam(c echo.Context) (string, error) {
	date := c.QueryParam("date")
	if date == "" {
		return time.Now().Format(board.DateLayout), nil
	}
	if !board.ValidDate(date) {
		return "", echo.NewHTTPError(apperrors.ErrInvalidDate.StatusCode, apperrors.ErrInvalidDate.Message)
	}
	return date, nil
}

// HRTasks returns every user's tasks for a date grouped per owner.
func (h *Handler) HRTasks(c echo.Context) error {
	date, err := dateParam(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.AllTasksForDate(c.Request().Context(), date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tasks")
	}

	groups := services.GroupTasksByUser(tasks)

	return c.JSON(http.StatusOK, echo.Map{
		"date":  date,
		"count": len(tasks),
		"users": groups,
	})
}

// HRMarks lists who marked the date, with display names attached.
func (h *Handler) HRMarks(c echo.Context) error {
	date, err := dateParam(c)
	if err != nil {
		return err
	}

	marks, err := h.scheduleService.MarksForDate(c.Request().Context(), date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list marks")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"date":  date,
		"count": len(marks),
		"marks": marks,
	})
}
