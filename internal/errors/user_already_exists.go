package errors

import "net/http"

var ErrUserAlreadyExists = &Exception{
	Message:    "an account with this email already exists",
	StatusCode: http.StatusConflict,
}
