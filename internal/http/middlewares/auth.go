package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"daytrack.com/daytrack/internal/auth"
	apperrors "daytrack.com/daytrack/internal/errors"
	model "daytrack.com/daytrack/internal/models"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextUserID = "user_id"
	ContextToken  = "token"
)

// RequireAuth resolves the bearer token to a user id and rejects requests
// without a live session.
func RequireAuth(authService *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrUnauthorized.Message)
			}

			userID, err := authService.Authenticate(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
			}

			c.Set(ContextUserID, userID)
			c.Set(ContextToken, token)
			return next(c)
		}
	}
}

// RequireHR gates a route on the caller's role. This is the single role
// dispatch point; a missing or unreadable profile counts as member.
func RequireHR(authService *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(ContextUserID).(string)

			role := model.RoleMember
			profile, err := authService.ProfileByID(c.Request().Context(), userID)
			if err == nil && profile != nil && profile.Role.Valid() {
				role = profile.Role
			}

			switch role {
			case model.RoleHR:
				return next(c)
			case model.RoleMember:
				return echo.NewHTTPError(apperrors.ErrForbidden.StatusCode, apperrors.ErrForbidden.Message)
			}
			return echo.NewHTTPError(apperrors.ErrForbidden.StatusCode, apperrors.ErrForbidden.Message)
		}
	}
}
