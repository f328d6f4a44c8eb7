package services

import "errors"

// Common service-level errors
var (
	ErrJobNotFound     = errors.New("job not found")
	ErrNoteNotFound    = errors.New("note not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrTaskFinished    = errors.New("task already completed or cancelled")
	ErrCompanyNotFound = errors.New("company not found")
	ErrPlanNotFound    = errors.New("plan not found")
)
