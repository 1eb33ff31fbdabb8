package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "daytrack.com/daytrack/internal/data_models"
)

func ValidateSignUpRequest(r *dto.SignUpRequest) error {
	if strings.TrimSpace(r.Email) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	if r.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	return nil
}

func ValidateLoginRequest(r *dto.LoginRequest) error {
	if strings.TrimSpace(r.Email) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	if r.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	return nil
}
