package errors

import "net/http"

var ErrEmailTaken = &Exception{
	Message:    "this email is already registered",
	StatusCode: http.StatusConflict,
}
