package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"daytrack.com/daytrack/internal/auth"
	"daytrack.com/daytrack/internal/board"
	dto "daytrack.com/daytrack/internal/data_models"
	apperrors "daytrack.com/daytrack/internal/errors"
	middleware "daytrack.com/daytrack/internal/http/middlewares"
	"daytrack.com/daytrack/internal/http/validators"
	model "daytrack.com/daytrack/internal/models"
	"daytrack.com/daytrack/internal/services"
)

type Handler struct {
	authService     *auth.Service
	boards          *board.Manager
	taskService     *services.TaskService
	scheduleService *services.ScheduleService
}

func NewHandler(
	authService *auth.Service,
	boards *board.Manager,
	taskService *services.TaskService,
	scheduleService *services.ScheduleService,
) *Handler {
	return &Handler{
		authService:     authService,
		boards:          boards,
		taskService:     taskService,
		scheduleService: scheduleService,
	}
}

// httpError maps typed application errors to their status and message; any
// other error becomes a 500 with the fallback text.
func httpError(err error, fallback string) error {
	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(appErr.StatusCode, appErr.Message)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, fallback)
}

func (h *Handler) SignUp(c echo.Context) error {
	var req dto.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateSignUpRequest(&req); err != nil {
		return err
	}

	role := model.Role(req.Role)
	if req.Role == "" {
		role = model.RoleMember
	}

	ctx := c.Request().Context()

	user, err := h.authService.SignUp(ctx, req.Email, req.Password, role)
	if err != nil {
		return httpError(err, "failed to sign up")
	}

	// Sign the fresh account straight in; when that fails the account
	// still exists and the client can log in explicitly.
	token, _, err := h.authService.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusCreated, echo.Map{
			"user":    user,
			"message": "account created, please sign in",
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user":  user,
		"token": token,
	})
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateLoginRequest(&req); err != nil {
		return err
	}

	token, user, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err, "failed to sign in")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":  user,
		"token": token,
	})
}

func (h *Handler) Logout(c echo.Context) error {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	token, _ := c.Get(middleware.ContextToken).(string)

	if err := h.authService.SignOut(c.Request().Context(), token); err != nil {
		return httpError(err, "failed to sign out")
	}
	h.boards.Remove(userID)

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Me(c echo.Context) error {
	userID, _ := c.Get(middleware.ContextUserID).(string)

	profile, err := h.authService.ProfileByID(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load profile")
	}
	if profile == nil {
		// Sign-up writes the profile best-effort; a missing row still
		// yields a usable member identity.
		return c.JSON(http.StatusOK, echo.Map{
			"id":   userID,
			"role": model.RoleMember,
		})
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) GetScheduleURL(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"url": h.scheduleService.ScheduleURL(c.Request().Context()),
	})
}

func (h *Handler) SetScheduleURL(c echo.Context) error {
	var req dto.SetScheduleURLRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateScheduleURLRequest(&req); err != nil {
		return err
	}

	if err := h.scheduleService.SetScheduleURL(c.Request().Context(), req.URL); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save schedule url")
	}

	return c.JSON(http.StatusOK, echo.Map{"url": req.URL})
}
