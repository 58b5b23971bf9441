package scheduler

import "errors"

var (
	// ErrInvalidSchedule is returned when the cron expression cannot be parsed
	ErrInvalidSchedule = errors.New("invalid cron schedule")

	// ErrAlreadyRunning is returned when a manual run overlaps a scheduled one
	ErrAlreadyRunning = errors.New("sweep already in progress")
)
