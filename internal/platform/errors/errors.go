package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrNoCredential    = errors.New("not logged in")
	ErrUnauthorized    = errors.New("session expired")
	ErrPaymentRequired = errors.New("insufficient credits")
	ErrRateLimited     = errors.New("too many requests")
	ErrServer          = errors.New("server error")
	ErrRequest         = errors.New("request failed")
	ErrNetwork         = errors.New("network error")
)
