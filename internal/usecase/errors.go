package usecase

import "errors"

// Sentinel errors shared across usecases. Handlers map these onto the HTTP
// surface; causes stay wrapped so internal detail never reaches a client.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrSessionCompleted   = errors.New("session already completed")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrGenerationFailed   = errors.New("question generation failed")
	ErrInternal           = errors.New("internal error")
)
