package errors

import "net/http"

var ErrEmptyContent = &Exception{
	Message:    "task content must not be empty",
	StatusCode: http.StatusBadRequest,
}
