package services

import "errors"

// Common errors
var (
	ErrBoardNotFound  = errors.New("board not found")
	ErrNoteNotFound   = errors.New("note not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrEventPublisher = errors.New("event publisher not configured")
)
