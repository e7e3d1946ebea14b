package domain

import "errors"

// Domain errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidPDF      = errors.New("invalid or corrupted PDF file")
)
