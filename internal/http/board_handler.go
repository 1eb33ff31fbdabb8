package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"daytrack.com/daytrack/internal/board"
	dto "daytrack.com/daytrack/internal/data_models"
	apperrors "daytrack.com/daytrack/internal/errors"
	middleware "daytrack.com/daytrack/internal/http/middlewares"
	"daytrack.com/daytrack/internal/http/validators"
)

func (h *Handler) board(c echo.Context) (*board.Board, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)

	b, err := h.boards.Get(c.Request().Context(), userID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to load board")
	}
	return b, nil
}

// GetBoard returns the live day view, switching the selected date first
// when the query names a different one.
func (h *Handler) GetBoard(c echo.Context) error {
	b, err := h.board(c)
	if err != nil {
		return err
	}

	if date := c.QueryParam("date"); date != "" && date != b.Date() {
		if err := b.SetDate(c.Request().Context(), date); err != nil {
			return httpError(err, "failed to switch date")
		}
	}

	return c.JSON(http.StatusOK, b.Snapshot())
}

func (h *Handler) BoardPrevDay(c echo.Context) error {
	return h.shiftBoardDate(c, -1)
}

func (h *Handler) BoardNextDay(c echo.Context) error {
	return h.shiftBoardDate(c, 1)
}

func (h *Handler) shiftBoardDate(c echo.Context, days int) error {
	b, err := h.board(c)
	if err != nil {
		return err
	}

	if err := b.ChangeDate(c.Request().Context(), days); err != nil {
		return httpError(err, "failed to switch date")
	}
	return c.JSON(http.StatusOK, b.Snapshot())
}

func (h *Handler) BoardToday(c echo.Context) error {
	b, err := h.board(c)
	if err != nil {
		return err
	}

	if err := b.GoToToday(c.Request().Context()); err != nil {
		return httpError(err, "failed to switch date")
	}
	return c.JSON(http.StatusOK, b.Snapshot())
}

// CreateBoardTask answers with the optimistic entry before the row exists;
// its id changes once the board reconciles with the store.
func (h *Handler) CreateBoardTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	b, err := h.board(c)
	if err != nil {
		return err
	}

	task, err := b.AddTask(req.Content)
	if err != nil {
		return httpError(err, "failed to add task")
	}

	return c.JSON(http.StatusAccepted, task)
}

func (h *Handler) ToggleTaskTimer(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(apperrors.ErrTaskIDRequired.StatusCode, apperrors.ErrTaskIDRequired.Message)
	}

	b, err := h.board(c)
	if err != nil {
		return err
	}

	b.ToggleTimer(id)
	return c.JSON(http.StatusOK, b.Snapshot())
}

func (h *Handler) ToggleTaskComplete(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(apperrors.ErrTaskIDRequired.StatusCode, apperrors.ErrTaskIDRequired.Message)
	}

	b, err := h.board(c)
	if err != nil {
		return err
	}

	b.ToggleComplete(id)
	return c.JSON(http.StatusOK, b.Snapshot())
}

// DeleteBoardTask assumes the caller already confirmed the removal.
func (h *Handler) DeleteBoardTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(apperrors.ErrTaskIDRequired.StatusCode, apperrors.ErrTaskIDRequired.Message)
	}

	b, err := h.board(c)
	if err != nil {
		return err
	}

	if err := b.DeleteTask(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete task")
	}
	return c.JSON(http.StatusOK, b.Snapshot())
}

func (h *Handler) ToggleCollegeDay(c echo.Context) error {
	b, err := h.board(c)
	if err != nil {
		return err
	}

	b.ToggleCollege(c.Request().Context())
	return c.JSON(http.StatusOK, b.Snapshot())
}
