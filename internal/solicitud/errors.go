package solicitud

import "errors"

var (
	ErrNotFound     = errors.New("solicitud: not found")
	ErrForbidden    = errors.New("solicitud: forbidden")
	ErrInvalidInput = errors.New("solicitud: invalid input")
)
