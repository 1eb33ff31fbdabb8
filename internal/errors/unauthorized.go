package errors

import "net/http"

var ErrUnauthorized = &Exception{
	Message:    "authentication required",
	StatusCode: http.StatusUnauthorized,
}
