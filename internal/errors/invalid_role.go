package errors

import "net/http"

var ErrInvalidRole = &Exception{
	Message:    "role must be member or hr",
	StatusCode: http.StatusBadRequest,
}
