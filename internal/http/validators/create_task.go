package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "daytrack.com/daytrack/internal/data_models"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if strings.TrimSpace(r.Content) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	}
	return nil
}
