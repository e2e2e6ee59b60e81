package domain

import "errors"

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrChecklistNotFound = errors.New("checklist not found")
	ErrStepOutOfRange    = errors.New("step index out of range")
)
