package errors

import "net/http"

var ErrForbidden = &Exception{
	Message:    "this view requires the hr role",
	StatusCode: http.StatusForbidden,
}
