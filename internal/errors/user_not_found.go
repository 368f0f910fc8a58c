package errors

import "net/http"

var ErrUserNotFound = &Exception{
	Message:    "no account with this email",
	StatusCode: http.StatusNotFound,
}
