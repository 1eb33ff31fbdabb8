package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "daytrack.com/daytrack/internal/data_models"
)

func ValidateScheduleURLRequest(r *dto.SetScheduleURLRequest) error {
	if strings.TrimSpace(r.URL) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url is required")
	}
	return nil
}
