package flash

import "errors"

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidInput      = errors.New("invalid input")
	ErrMalformedResponse = errors.New("malformed response")
	ErrServerError       = errors.New("server error")

	// ErrNoOpenOrder marks a table whose order list holds no "Aberta" entry.
	ErrNoOpenOrder = errors.New("no open order")
)
