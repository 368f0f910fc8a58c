package errors

import "net/http"

var ErrUnauthorized = &Exception{
	Message:    "missing or invalid session token",
	StatusCode: http.StatusUnauthorized,
}
